package services_test

import (
	"errors"
	"testing"

	"flipwatch/internal/domain"
	"flipwatch/internal/services"
	"flipwatch/internal/store"
)

func fp(v float64) *float64 { return &v }

func TestItemsEmptyWhenUnset(t *testing.T) {
	svc := services.NewCatalogService(memkv(t))
	items, err := svc.Items()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("want empty catalog, got %d items", len(items))
	}
}

func TestReplaceItemsAndDerivedViews(t *testing.T) {
	svc := services.NewCatalogService(memkv(t))
	err := svc.ReplaceItems([]domain.Item{
		{ID: "1", SearchTerm: "camera", CategoryName: "Electronics", Price: fp(10), EbayPrice: fp(20)},
		{ID: "2", SearchTerm: "camera", CategoryName: ""},
		{ID: "3", SearchTerm: "radio", CategoryName: "Electronics"},
		{ID: "4", SearchTerm: ""},
	})
	if err != nil {
		t.Fatal(err)
	}

	cats, err := svc.Categories()
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 2 || cats[0] != "camera" || cats[1] != "radio" {
		t.Fatalf("want [camera radio], got %v", cats)
	}

	pcats, err := svc.ProductCategories()
	if err != nil {
		t.Fatal(err)
	}
	if len(pcats) != 1 || pcats[0] != "Electronics" {
		t.Fatalf("want [Electronics], got %v", pcats)
	}

	items, err := svc.Items()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 4 {
		t.Fatalf("want 4 items back, got %d", len(items))
	}
	if items[0].Price == nil || *items[0].Price != 10 {
		t.Fatalf("price lost in round trip: %+v", items[0])
	}
	if items[1].Price != nil {
		t.Fatal("absent price must stay absent, not become 0")
	}
}

func TestSettingsDefaultsWhenUnset(t *testing.T) {
	svc := services.NewCatalogService(memkv(t))
	cfg, err := svc.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MarginThreshold != 50 || cfg.UpdateFrequency != "daily" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestPutSettingsRejectsEmptyRequiredLists(t *testing.T) {
	svc := services.NewCatalogService(memkv(t))

	good := domain.DefaultSettings()
	if err := svc.PutSettings(good); err != nil {
		t.Fatal(err)
	}

	for name, bad := range map[string]func(*domain.Settings){
		"no search terms":    func(s *domain.Settings) { s.SearchTerms = nil },
		"blank search terms": func(s *domain.Settings) { s.SearchTerms = []string{"", ""} },
		"no seller ids":      func(s *domain.Settings) { s.SellerIDs = []string{} },
		"margin over 100":    func(s *domain.Settings) { s.MarginThreshold = 101 },
		"negative margin":    func(s *domain.Settings) { s.MarginThreshold = -1 },
		"bad notification":   func(s *domain.Settings) { s.NotificationType = "pigeon" },
		"bad frequency":      func(s *domain.Settings) { s.UpdateFrequency = "sometimes" },
		"bad email":          func(s *domain.Settings) { s.NotificationEmail = "not-an-email" },
		"bad phone":          func(s *domain.Settings) { s.NotificationPhone = "call me" },
	} {
		cfg := domain.DefaultSettings()
		bad(&cfg)
		err := svc.PutSettings(cfg)
		if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("%s: want ErrValidation, got %v", name, err)
		}
	}

	// The rejected edit must not have been applied.
	cfg, err := svc.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.SearchTerms) == 0 {
		t.Fatal("rejected edit was persisted")
	}
}

func TestSearchByTerm(t *testing.T) {
	kv := memkv(t)
	svc := services.NewCatalogService(kv)

	// Unknown term: empty sequence, no error.
	ids, err := svc.SearchByTerm("camera")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Fatalf("want empty, got %v", ids)
	}

	if err := kv.Put(store.SearchKey("camera"), []byte(`["1","7","9"]`)); err != nil {
		t.Fatal(err)
	}
	ids, err = svc.SearchByTerm("camera")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 || ids[0] != "1" || ids[2] != "9" {
		t.Fatalf("want [1 7 9], got %v", ids)
	}

	// Cached result survives a raw store overwrite until the next bulk
	// replace drops the cache.
	if err := kv.Put(store.SearchKey("camera"), []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	ids, _ = svc.SearchByTerm("camera")
	if len(ids) != 3 {
		t.Fatalf("expected cached ids, got %v", ids)
	}
	if err := svc.ReplaceItems(nil); err != nil {
		t.Fatal(err)
	}
	ids, _ = svc.SearchByTerm("camera")
	if len(ids) != 0 {
		t.Fatalf("cache should have been purged, got %v", ids)
	}
}
