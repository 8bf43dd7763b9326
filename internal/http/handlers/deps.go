package handlers

import (
	"flipwatch/internal/metrics"
	"flipwatch/internal/services"
	"flipwatch/internal/store"
)

type Deps struct {
	ItemsHandler     *ItemsHandler
	CatalogHandler   *CatalogHandler
	SettingsHandler  *SettingsHandler
	FavoritesHandler *FavoritesHandler
	PromisingHandler *PromisingHandler
	SearchHandler    *SearchHandler
	DashboardHandler *DashboardHandler
}

func NewDeps(kv *store.KV, m *metrics.Metrics) *Deps {
	catalogSvc := services.NewCatalogService(kv)
	favSvc := services.NewFavoritesService(kv, store.KeyFavorites)
	promSvc := services.NewFavoritesService(kv, store.KeyPromising)

	return &Deps{
		ItemsHandler:     &ItemsHandler{Catalog: catalogSvc, Favorites: favSvc, Promising: promSvc, Metrics: m},
		CatalogHandler:   &CatalogHandler{Catalog: catalogSvc},
		SettingsHandler:  &SettingsHandler{Catalog: catalogSvc},
		FavoritesHandler: &FavoritesHandler{Sets: favSvc},
		PromisingHandler: &PromisingHandler{Sets: promSvc, Catalog: catalogSvc},
		SearchHandler:    &SearchHandler{Catalog: catalogSvc},
		DashboardHandler: &DashboardHandler{Catalog: catalogSvc, Favorites: favSvc},
	}
}
