package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "flipwatch/internal/log"
	"flipwatch/internal/metrics"
	"flipwatch/internal/query"
	"flipwatch/internal/services"
	"flipwatch/internal/validate"
)

type ItemsHandler struct {
	Catalog   *services.CatalogService
	Favorites *services.FavoritesService
	Promising *services.FavoritesService
	Metrics   *metrics.Metrics
}

// List serves GET /api/items. With no query parameters it returns the whole
// catalog; any subset of the filter parameters narrows and ranks it through
// the query engine.
func (h *ItemsHandler) List(c *fiber.Ctx) error {
	items, err := h.Catalog.Items()
	if err != nil {
		applog.Error(c, "items.load.fail", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "item store unavailable"})
	}
	if h.Metrics != nil {
		h.Metrics.CatalogItems.Set(float64(len(items)))
	}

	spec, err := h.specFromQuery(c)
	if err != nil {
		applog.Error(c, "items.members.fail", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "item store unavailable"})
	}

	start := time.Now()
	out := query.Run(items, spec)
	if h.Metrics != nil {
		h.Metrics.QueryDuration.Observe(time.Since(start).Seconds())
	}
	return c.JSON(out)
}

func (h *ItemsHandler) specFromQuery(c *fiber.Ctx) (query.Spec, error) {
	spec := query.Spec{
		Text:        c.Query("q"),
		SearchTerms: multiQuery(c, "search_term"),
		Categories:  multiQuery(c, "category"),
		SellerNames: multiQuery(c, "seller_name"),
		SellerIDs:   multiQuery(c, "seller_id"),
		MinPrice:    validate.Number(c.Query("min_price")),
		MaxPrice:    validate.Number(c.Query("max_price")),
	}
	if min := validate.Number(c.Query("min_margin")); min != nil {
		spec.MarginEnabled = true
		spec.MinMargin = min
	}

	switch view := c.Query("view"); view {
	case query.ViewFavorites:
		ids, err := h.Favorites.Load()
		if err != nil {
			return spec, err
		}
		spec.ViewMode = view
		spec.Members = toMembers(ids)
	case query.ViewPromising:
		ids, err := h.Promising.Load()
		if err != nil {
			return spec, err
		}
		spec.ViewMode = view
		spec.Members = toMembers(ids)
	}
	return spec, nil
}

func multiQuery(c *fiber.Ctx, name string) []string {
	var out []string
	for _, v := range c.Context().QueryArgs().PeekMulti(name) {
		if len(v) > 0 {
			out = append(out, string(v))
		}
	}
	return out
}

func toMembers(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
