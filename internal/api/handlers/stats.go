/**
 * @description
 * Stats API Handlers.
 * Exposes the aggregator's outputs (grocery price stats, meal nutrition stats)
 * as JSON.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"github.com/foodlens-project/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	Service *services.StatsService
}

func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{Service: service}
}

// GetGroceryStats returns price-per-unit, average price, and brand aggregates
// GET /api/v1/stats/grocery
func (h *StatsHandler) GetGroceryStats(c *fiber.Ctx) error {
	stats, err := h.Service.CachedGroceryStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute grocery stats",
		})
	}
	return c.JSON(stats)
}

// GetNutritionStats returns per-meal and per-cuisine nutrition aggregates
// GET /api/v1/stats/nutrition
func (h *StatsHandler) GetNutritionStats(c *fiber.Ctx) error {
	stats, err := h.Service.CachedNutritionStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute nutrition stats",
		})
	}
	return c.JSON(stats)
}

// GetTopMeals returns the five meals with the highest nutrition index
// GET /api/v1/meals/top
func (h *StatsHandler) GetTopMeals(c *fiber.Ctx) error {
	stats, err := h.Service.CachedNutritionStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute nutrition stats",
		})
	}
	return c.JSON(stats.TopMeals)
}
