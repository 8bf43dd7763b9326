package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "flipwatch/internal/log"
	"flipwatch/internal/services"
	"flipwatch/internal/validate"
)

type FavoritesHandler struct {
	Sets *services.FavoritesService
}

func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	ids, err := h.Sets.Load()
	if err != nil {
		applog.Error(c, "favorites.load.fail", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "item store unavailable"})
	}
	return c.JSON(ids)
}

func (h *FavoritesHandler) Add(c *fiber.Ctx) error {
	var body struct {
		ItemID string `json:"item_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	id, ok := validate.ID(body.ItemID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing item_id"})
	}
	if err := h.Sets.Add(id); err != nil {
		applog.Error(c, "favorites.add.fail", err, map[string]any{"item": id})
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "item store unavailable"})
	}
	applog.Audit(c, "favorites.add", map[string]any{"item": id})
	return c.JSON(fiber.Map{"status": "success"})
}

func (h *FavoritesHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Query("item_id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing item_id"})
	}
	if err := h.Sets.Remove(id); err != nil {
		applog.Error(c, "favorites.remove.fail", err, map[string]any{"item": id})
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "item store unavailable"})
	}
	applog.Audit(c, "favorites.remove", map[string]any{"item": id})
	return c.JSON(fiber.Map{"status": "success"})
}
