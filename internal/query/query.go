// Package query is the catalog filter/ranking engine. It is a pure
// computation over an already-fetched item collection: no I/O, no shared
// state, safe for concurrent use.
package query

import (
	"sort"
	"strings"

	"flipwatch/internal/domain"
)

// View modes restrict the result to a membership set supplied by the caller.
const (
	ViewAll       = "all"
	ViewFavorites = "favorites"
	ViewPromising = "promising"
)

// Spec describes one query. All criteria are conjunctive; an empty or unset
// criterion matches everything, never nothing. Numeric bounds are pointers
// because an unparsable or missing bound must degrade to "no bound".
type Spec struct {
	Text        string
	SearchTerms []string
	Categories  []string
	SellerNames []string
	SellerIDs   []string

	MinPrice *float64
	MaxPrice *float64

	MarginEnabled bool
	MinMargin     *float64

	ViewMode string
	// Members holds the favorites or promising id set when ViewMode
	// restricts to one of them.
	Members map[string]bool
}

// Run filters and ranks items according to spec. The input slice is never
// mutated; ties keep input order so results are reproducible.
func Run(items []domain.Item, spec Spec) []domain.Item {
	text := strings.ToLower(spec.Text)
	terms := toSet(spec.SearchTerms)
	cats := toSet(spec.Categories)
	sellers := toSet(spec.SellerNames)
	sellerIDs := toSet(spec.SellerIDs)

	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if !matches(it, spec, text, terms, cats, sellers, sellerIDs) {
			continue
		}
		out = append(out, it)
	}

	if spec.MarginEnabled {
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].MarginPercentage() > out[b].MarginPercentage()
		})
	} else {
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].PriceDifference() > out[b].PriceDifference()
		})
	}
	return out
}

func matches(it domain.Item, spec Spec, text string, terms, cats, sellers, sellerIDs map[string]bool) bool {
	if text != "" && !strings.Contains(strings.ToLower(it.ProductName), text) {
		return false
	}
	if len(terms) > 0 && !terms[it.SearchTerm] {
		return false
	}
	if len(cats) > 0 && !cats[it.CategoryName] {
		return false
	}
	if len(sellers) > 0 && !sellers[it.SellerName] {
		return false
	}
	if len(sellerIDs) > 0 && !sellerIDs[it.SellerID] {
		return false
	}
	price := it.PriceValue()
	if spec.MinPrice != nil && price < *spec.MinPrice {
		return false
	}
	if spec.MaxPrice != nil && price > *spec.MaxPrice {
		return false
	}
	if spec.MarginEnabled && spec.MinMargin != nil {
		if it.EbayPriceValue() <= 0 || it.MarginPercentage() < *spec.MinMargin {
			return false
		}
	}
	switch spec.ViewMode {
	case ViewFavorites, ViewPromising:
		if !spec.Members[it.ID] {
			return false
		}
	}
	return true
}

func toSet(vals []string) map[string]bool {
	if len(vals) == 0 {
		return nil
	}
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		if v != "" {
			m[v] = true
		}
	}
	return m
}
