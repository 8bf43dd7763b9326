package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"flipwatch/internal/store"
)

// FavoritesService maintains the favorites and promising id sets. Every
// mutation is a single atomic read-modify-write against the backing key, so
// concurrent toggles cannot lose updates. A failed write surfaces to the
// caller; there is no silent local-only success state.
type FavoritesService struct {
	Store *store.KV
	Key   string // store.KeyFavorites or store.KeyPromising
}

func NewFavoritesService(kv *store.KV, key string) *FavoritesService {
	return &FavoritesService{Store: kv, Key: key}
}

// Load fetches the persisted set. A missing key is an empty set; any other
// failure propagates so the caller can decide about cached fallbacks.
func (s *FavoritesService) Load() ([]string, error) {
	raw, err := s.Store.Get(s.Key)
	if errors.Is(err, store.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeIDs(raw, s.Key)
}

// Save overwrites the persisted set. Idempotent.
func (s *FavoritesService) Save(ids []string) error {
	raw, err := json.Marshal(dedupe(ids))
	if err != nil {
		return err
	}
	return s.Store.Put(s.Key, raw)
}

// Add inserts id if absent.
func (s *FavoritesService) Add(id string) error {
	return s.mutate(func(ids []string) []string {
		for _, v := range ids {
			if v == id {
				return ids
			}
		}
		return append(ids, id)
	})
}

// Remove deletes id if present.
func (s *FavoritesService) Remove(id string) error {
	return s.mutate(func(ids []string) []string {
		out := ids[:0]
		for _, v := range ids {
			if v != id {
				out = append(out, v)
			}
		}
		return out
	})
}

// Toggle flips membership of id. Two applications restore the original set.
func (s *FavoritesService) Toggle(id string) error {
	return s.mutate(func(ids []string) []string {
		out := ids[:0]
		found := false
		for _, v := range ids {
			if v == id {
				found = true
				continue
			}
			out = append(out, v)
		}
		if !found {
			out = append(out, id)
		}
		return out
	})
}

func (s *FavoritesService) IsMember(id string) (bool, error) {
	ids, err := s.Load()
	if err != nil {
		return false, err
	}
	for _, v := range ids {
		if v == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *FavoritesService) mutate(fn func([]string) []string) error {
	return s.Store.Update(s.Key, func(cur []byte) ([]byte, error) {
		ids := []string{}
		if cur != nil {
			var err error
			if ids, err = decodeIDs(cur, s.Key); err != nil {
				return nil, err
			}
		}
		return json.Marshal(dedupe(fn(ids)))
	})
}

func decodeIDs(raw []byte, key string) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return ids, nil
}

func dedupe(ids []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
