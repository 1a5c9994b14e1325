// Package results turns raw flight records into what the listing page shows:
// a sorted order, formatted fields, scarcity badges and page controls.
package results

import (
	"slices"

	"github.com/Domenick1991/airbooking-web/internal/domain"
)

type SortKey string

const (
	SortPrice    SortKey = "price"
	SortTime     SortKey = "time"
	SortDuration SortKey = "duration"
)

// ParseSortKey falls back to price for anything it does not recognize.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortTime, SortDuration:
		return k
	}
	return SortPrice
}

// Sort returns an ascending copy of flights ordered by key. Ties keep their
// fetch order; the input is not modified.
func Sort(flights []domain.Flight, key SortKey) []domain.Flight {
	out := slices.Clone(flights)
	slices.SortStableFunc(out, compareBy(key))
	return out
}

func compareBy(key SortKey) func(a, b domain.Flight) int {
	switch key {
	case SortTime:
		return func(a, b domain.Flight) int { return a.DepartureTime.Compare(b.DepartureTime) }
	case SortDuration:
		return func(a, b domain.Flight) int { return a.Duration - b.Duration }
	default:
		return func(a, b domain.Flight) int { return a.Price.Cmp(b.Price) }
	}
}
