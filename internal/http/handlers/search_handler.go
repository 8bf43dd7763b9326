package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "flipwatch/internal/log"
	"flipwatch/internal/services"
	"flipwatch/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

// Search serves GET /api/search?q=, a direct lookup of the precomputed
// search index. An unknown term is an empty result, never an error.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if rawQ == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Query parameter required"})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		applog.Warn(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query"})
	}

	ids, err := h.Catalog.SearchByTerm(q)
	if err != nil {
		applog.Error(c, "search.fail", err, map[string]any{"term": q})
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "item store unavailable"})
	}
	return c.JSON(ids)
}
