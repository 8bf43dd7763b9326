package handlers

import (
	"github.com/gofiber/fiber/v2"

	"flipwatch/internal/domain"
	applog "flipwatch/internal/log"
	"flipwatch/internal/services"
	"flipwatch/internal/validate"
)

// PromisingHandler manages the shortlist. Only ids are persisted; the GET
// response resolves them against the catalog so clients receive full item
// objects without the store duplicating item state.
type PromisingHandler struct {
	Sets    *services.FavoritesService
	Catalog *services.CatalogService
}

func (h *PromisingHandler) List(c *fiber.Ctx) error {
	ids, err := h.Sets.Load()
	if err != nil {
		applog.Error(c, "promising.load.fail", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "item store unavailable"})
	}
	items, err := h.Catalog.Items()
	if err != nil {
		applog.Error(c, "promising.items.fail", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "item store unavailable"})
	}

	member := map[string]bool{}
	for _, id := range ids {
		member[id] = true
	}
	out := []domain.Item{}
	for _, it := range items {
		if member[it.ID] {
			out = append(out, it)
		}
	}
	return c.JSON(out)
}

func (h *PromisingHandler) Add(c *fiber.Ctx) error {
	// Clients post the whole item object; only its id is persisted.
	var body struct {
		ID string `json:"id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	id, ok := validate.ID(body.ID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing id"})
	}
	if err := h.Sets.Add(id); err != nil {
		applog.Error(c, "promising.add.fail", err, map[string]any{"item": id})
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "item store unavailable"})
	}
	applog.Audit(c, "promising.add", map[string]any{"item": id})
	return c.JSON(fiber.Map{"success": true})
}
