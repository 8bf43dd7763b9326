package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"flipwatch/internal/domain"
	applog "flipwatch/internal/log"
	"flipwatch/internal/services"
)

type SettingsHandler struct {
	Catalog *services.CatalogService
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	cfg, err := h.Catalog.Settings()
	if err != nil {
		applog.Error(c, "settings.load.fail", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "item store unavailable"})
	}
	return c.JSON(cfg)
}

func (h *SettingsHandler) Put(c *fiber.Ctx) error {
	var cfg domain.Settings
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid settings body"})
	}
	if err := h.Catalog.PutSettings(cfg); err != nil {
		if errors.Is(err, services.ErrValidation) {
			applog.Warn(c, "settings.validation.fail", map[string]any{"reason": err.Error()})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		applog.Error(c, "settings.save.fail", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "item store unavailable"})
	}
	applog.Audit(c, "settings.save", nil)
	return c.JSON(fiber.Map{"success": true})
}
