/**
 * @description
 * API Route definitions.
 * Sets up the router groups and assigns handlers.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/api/handlers
 * - backend/internal/services
 */

package api

import (
	"github.com/foodlens-project/backend/internal/api/handlers"
	"github.com/foodlens-project/backend/internal/services"
	"github.com/foodlens-project/backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client) {
	// 1. Initialize Services
	statsService := services.NewStatsService(store.New(db), rdb)

	// 2. Initialize Handlers
	statsHandler := handlers.NewStatsHandler(statsService)

	// 3. Define Routes
	api := app.Group("/api")
	v1 := api.Group("/v1")

	v1.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	stats := v1.Group("/stats")
	stats.Get("/grocery", statsHandler.GetGroceryStats)
	stats.Get("/nutrition", statsHandler.GetNutritionStats)

	meals := v1.Group("/meals")
	meals.Get("/top", statsHandler.GetTopMeals)
}
