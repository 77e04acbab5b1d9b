/**
 * @description
 * Main entry point for the FoodLens Stats API.
 * Initializes the Fiber web server, loads configuration, and sets up routes.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2: Web framework
 * - github.com/foodlens-project/backend/internal/config: Config loader
 * - github.com/foodlens-project/backend/internal/db: Database connections
 *
 * @notes
 * - Opens the SQLite file and a redis cache on startup.
 * - Sets up basic middleware (CORS, Logger, Recover).
 */

package main

import (
	"log"

	"github.com/foodlens-project/backend/internal/api"
	"github.com/foodlens-project/backend/internal/config"
	"github.com/foodlens-project/backend/internal/db"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize Database Connections
	gdb, err := db.ConnectSQLite(cfg)
	if err != nil {
		log.Fatalf("Failed to open SQLite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	redisClient, closeRedis, err := db.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer closeRedis()

	// 3. Initialize Fiber App
	app := fiber.New(fiber.Config{
		AppName:       "FoodLens Stats API",
		StrictRouting: true,
		CaseSensitive: true,
	})

	// 4. Global Middleware
	app.Use(recover.New()) // Panic recovery
	app.Use(logger.New())  // Request logging
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, OPTIONS",
	}))

	// 5. Routes
	api.SetupRoutes(app, gdb, redisClient)

	// 6. Start Server
	log.Printf("🚀 Starting FoodLens Stats API on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
