package services

import (
	"encoding/json"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"flipwatch/internal/domain"
	"flipwatch/internal/store"
	"flipwatch/internal/validate"
)

// ErrValidation marks a rejected settings edit.
var ErrValidation = errors.New("invalid settings")

// CatalogService reads and writes catalog state through the KV store.
// Missing keys read as empty collections, never as errors.
type CatalogService struct {
	Store *store.KV

	searchCache *lru.Cache[string, []string]
}

func NewCatalogService(kv *store.KV) *CatalogService {
	// Index lookups are tiny; 128 recent terms is plenty.
	cache, _ := lru.New[string, []string](128)
	return &CatalogService{Store: kv, searchCache: cache}
}

func (s *CatalogService) Items() ([]domain.Item, error) {
	raw, err := s.Store.Get(store.KeyItems)
	if errors.Is(err, store.ErrNotFound) {
		return []domain.Item{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []domain.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

// ReplaceItems is the bulk write path used by the ingestion job. There is no
// partial-item update; the whole collection is swapped and the search cache
// dropped.
func (s *CatalogService) ReplaceItems(items []domain.Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.Store.Put(store.KeyItems, raw); err != nil {
		return err
	}
	s.searchCache.Purge()
	return nil
}

// Categories returns the distinct non-empty search terms across all items.
func (s *CatalogService) Categories() ([]string, error) {
	items, err := s.Items()
	if err != nil {
		return nil, err
	}
	return distinct(items, func(it domain.Item) string { return it.SearchTerm }), nil
}

// ProductCategories is the same derivation over the finer category names.
func (s *CatalogService) ProductCategories() ([]string, error) {
	items, err := s.Items()
	if err != nil {
		return nil, err
	}
	return distinct(items, func(it domain.Item) string { return it.CategoryName }), nil
}

func distinct(items []domain.Item, field func(domain.Item) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, it := range items {
		v := field(it)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Locations is static reference data, not derived from items.
func (s *CatalogService) Locations() map[string]string { return sellerMap }

func (s *CatalogService) Settings() (domain.Settings, error) {
	raw, err := s.Store.Get(store.KeySettings)
	if errors.Is(err, store.ErrNotFound) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, err
	}
	var cfg domain.Settings
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return domain.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return cfg, nil
}

// PutSettings validates and overwrites the settings singleton. An edit that
// would leave no search term or no seller id is rejected, not applied.
func (s *CatalogService) PutSettings(cfg domain.Settings) error {
	if err := validateSettings(cfg); err != nil {
		return err
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.Store.Put(store.KeySettings, raw)
}

func validateSettings(cfg domain.Settings) error {
	if len(nonEmpty(cfg.SearchTerms)) == 0 {
		return fmt.Errorf("%w: at least one search term required", ErrValidation)
	}
	if len(nonEmpty(cfg.SellerIDs)) == 0 {
		return fmt.Errorf("%w: at least one seller id required", ErrValidation)
	}
	if cfg.MarginThreshold < 0 || cfg.MarginThreshold > 100 {
		return fmt.Errorf("%w: margin threshold must be 0-100", ErrValidation)
	}
	switch cfg.NotificationType {
	case "email", "sms", "both":
	default:
		return fmt.Errorf("%w: unknown notification type %q", ErrValidation, cfg.NotificationType)
	}
	if cfg.NotificationEmail != "" {
		if _, ok := validate.Email(cfg.NotificationEmail); !ok {
			return fmt.Errorf("%w: invalid notification email", ErrValidation)
		}
	}
	if cfg.NotificationPhone != "" {
		if _, ok := validate.Phone(cfg.NotificationPhone); !ok {
			return fmt.Errorf("%w: invalid notification phone", ErrValidation)
		}
	}
	switch cfg.UpdateFrequency {
	case "hourly", "twice_daily", "daily", "weekly":
	default:
		return fmt.Errorf("%w: unknown update frequency %q", ErrValidation, cfg.UpdateFrequency)
	}
	return nil
}

func nonEmpty(vals []string) []string {
	out := vals[:0:0]
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// SearchByTerm reads the precomputed search index for term. Absent terms
// return an empty list. Results are LRU-cached until the next bulk replace.
func (s *CatalogService) SearchByTerm(term string) ([]string, error) {
	if ids, ok := s.searchCache.Get(term); ok {
		return ids, nil
	}
	raw, err := s.Store.Get(store.SearchKey(term))
	if errors.Is(err, store.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode search index %q: %w", term, err)
	}
	s.searchCache.Add(term, ids)
	return ids, nil
}
