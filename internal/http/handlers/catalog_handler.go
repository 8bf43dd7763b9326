package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "flipwatch/internal/log"
	"flipwatch/internal/services"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// Categories serves the distinct search terms that discovered items.
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.Categories()
	if err != nil {
		applog.Error(c, "categories.fail", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "item store unavailable"})
	}
	return c.JSON(cats)
}

// ProductCategories serves the finer-grained category names.
func (h *CatalogHandler) ProductCategories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ProductCategories()
	if err != nil {
		applog.Error(c, "product_categories.fail", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "item store unavailable"})
	}
	return c.JSON(cats)
}

func (h *CatalogHandler) Locations(c *fiber.Ctx) error {
	return c.JSON(h.Catalog.Locations())
}
