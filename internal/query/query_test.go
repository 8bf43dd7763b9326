package query_test

import (
	"testing"

	"flipwatch/internal/domain"
	"flipwatch/internal/query"
)

func fp(v float64) *float64 { return &v }

func item(id string, price, ebay *float64) domain.Item {
	return domain.Item{ID: id, ProductName: "Item " + id, Price: price, EbayPrice: ebay}
}

func ids(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func wantIDs(t *testing.T, got []domain.Item, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("want ids %v, got %v", want, g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("want ids %v, got %v", want, g)
		}
	}
}

func TestRunNoFilters(t *testing.T) {
	items := []domain.Item{
		item("1", fp(10), fp(20)), // diff 10
		item("2", fp(15), fp(18)), // diff 3
		item("3", fp(5), fp(30)),  // diff 25
	}
	got := query.Run(items, query.Spec{})
	wantIDs(t, got, "3", "1", "2")
}

func TestRunStableTies(t *testing.T) {
	// Same price difference everywhere: input order must survive.
	items := []domain.Item{
		item("a", fp(10), fp(15)),
		item("b", fp(20), fp(25)),
		item("c", fp(1), fp(6)),
	}
	got := query.Run(items, query.Spec{})
	wantIDs(t, got, "a", "b", "c")
}

func TestRunMarginFilter(t *testing.T) {
	items := []domain.Item{
		item("1", fp(10), fp(20)), // 50% margin
		item("2", fp(15), fp(18)), // ~16.7% margin
	}
	got := query.Run(items, query.Spec{MarginEnabled: true, MinMargin: fp(40)})
	wantIDs(t, got, "1")
}

func TestRunMarginFilterExcludesMissingResale(t *testing.T) {
	items := []domain.Item{
		item("1", fp(10), fp(20)),
		item("2", fp(5), nil),     // no resale estimate
		item("3", fp(5), fp(0)),   // zero resale
	}
	got := query.Run(items, query.Spec{MarginEnabled: true, MinMargin: fp(10)})
	wantIDs(t, got, "1")
}

func TestRunMarginEnabledWithoutThreshold(t *testing.T) {
	// Enabled checkbox with an empty threshold filters nothing but still
	// ranks by margin.
	items := []domain.Item{
		item("1", fp(10), fp(20)), // 50%
		item("2", fp(1), fp(30)),  // ~96.7%
	}
	got := query.Run(items, query.Spec{MarginEnabled: true})
	wantIDs(t, got, "2", "1")
}

func TestRunPriceBounds(t *testing.T) {
	items := []domain.Item{
		item("1", fp(10), fp(20)),
		item("2", fp(15), fp(18)),
	}
	got := query.Run(items, query.Spec{MinPrice: fp(5), MaxPrice: fp(12)})
	wantIDs(t, got, "1")
}

func TestRunPriceBoundExact(t *testing.T) {
	items := []domain.Item{
		item("1", fp(10), fp(20)),
		item("2", nil, fp(18)), // absent price compares as 0
		item("3", fp(12), fp(20)),
	}
	got := query.Run(items, query.Spec{MinPrice: fp(10), MaxPrice: fp(10)})
	wantIDs(t, got, "1")

	got = query.Run(items, query.Spec{MinPrice: fp(0), MaxPrice: fp(0)})
	wantIDs(t, got, "2")
}

func TestRunEmptyCollection(t *testing.T) {
	got := query.Run(nil, query.Spec{Text: "anything", MarginEnabled: true, MinMargin: fp(50)})
	if len(got) != 0 {
		t.Fatalf("want empty, got %v", ids(got))
	}
}

func TestRunTextFilter(t *testing.T) {
	items := []domain.Item{
		{ID: "1", ProductName: "Vintage Camera", Price: fp(10), EbayPrice: fp(20)},
		{ID: "2", ProductName: "Microwave", Price: fp(5), EbayPrice: fp(40)},
	}
	got := query.Run(items, query.Spec{Text: "CAMERA"})
	wantIDs(t, got, "1")
}

func TestRunSetFilters(t *testing.T) {
	items := []domain.Item{
		{ID: "1", SearchTerm: "camera", SellerName: "WA, Spokane", CategoryName: "Electronics"},
		{ID: "2", SearchTerm: "radio", SellerName: "WA, Tacoma", CategoryName: "Electronics"},
		{ID: "3", SearchTerm: "camera", SellerName: "WA, Tacoma"},
	}
	got := query.Run(items, query.Spec{SearchTerms: []string{"camera"}})
	wantIDs(t, got, "1", "3")

	got = query.Run(items, query.Spec{SearchTerms: []string{"camera"}, SellerNames: []string{"WA, Tacoma"}})
	wantIDs(t, got, "3")

	got = query.Run(items, query.Spec{Categories: []string{"Electronics"}})
	wantIDs(t, got, "1", "2")

	// Empty criterion sets are no-ops, not empty-result filters.
	got = query.Run(items, query.Spec{SearchTerms: []string{}, Categories: nil})
	wantIDs(t, got, "1", "2", "3")
}

func TestRunViewModeIsConjunctive(t *testing.T) {
	items := []domain.Item{
		item("1", fp(10), fp(20)),
		item("2", fp(15), fp(18)),
	}
	// Favorites restriction is an additional AND filter: a favorited item
	// that fails another filter stays excluded.
	got := query.Run(items, query.Spec{
		ViewMode: query.ViewFavorites,
		Members:  map[string]bool{"2": true},
	})
	wantIDs(t, got, "2")

	got = query.Run(items, query.Spec{
		ViewMode: query.ViewFavorites,
		Members:  map[string]bool{"2": true},
		MaxPrice: fp(12),
	})
	wantIDs(t, got)
}

func TestRunDoesNotMutateInput(t *testing.T) {
	items := []domain.Item{
		item("1", fp(10), fp(20)),
		item("2", nil, nil),
	}
	_ = query.Run(items, query.Spec{MarginEnabled: true, MinMargin: fp(10)})
	if items[0].ID != "1" || items[1].ID != "2" {
		t.Fatal("input order changed")
	}
	if items[1].Price != nil || items[1].EbayPrice != nil {
		t.Fatal("absent fields were filled in")
	}
}

func TestMarginPercentageNeverDividesByZero(t *testing.T) {
	for _, it := range []domain.Item{
		item("1", fp(10), nil),
		item("2", fp(10), fp(0)),
		item("3", nil, nil),
	} {
		if m := it.MarginPercentage(); m != 0 {
			t.Fatalf("item %s: want margin 0, got %v", it.ID, m)
		}
	}
}
