package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "flipwatch/internal/log"
	"flipwatch/internal/query"
	"flipwatch/internal/services"
)

// DashboardHandler renders the server-side ops page: catalog size and the
// current best deals by margin.
type DashboardHandler struct {
	Catalog   *services.CatalogService
	Favorites *services.FavoritesService
}

func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	items, err := h.Catalog.Items()
	if err != nil {
		applog.Error(c, "dashboard.fail", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).SendString("item store unavailable")
	}
	favs, err := h.Favorites.Load()
	if err != nil {
		favs = []string{}
	}

	zero := 0.0
	top := query.Run(items, query.Spec{MarginEnabled: true, MinMargin: &zero})
	if len(top) > 10 {
		top = top[:10]
	}

	return c.Render("dashboard", fiber.Map{
		"ItemCount":     len(items),
		"FavoriteCount": len(favs),
		"TopDeals":      top,
	})
}
