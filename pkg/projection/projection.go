// Package projection computes the filtered, sorted view of a cached
// collection for display. It is pure: no state of its own, recomputed from
// the current collection plus transient UI parameters on every render.
package projection

import (
	"sort"
	"strings"
)

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// SortSpec is transient, view-scoped sort state.
type SortSpec struct {
	Field string
	Order Order
}

// Toggle returns the spec after a user clicks a column header: clicking the
// already-sorted field flips the direction, clicking a new field resets to
// ascending.
func (s SortSpec) Toggle(field string) SortSpec {
	if s.Field == field {
		if s.Order == Asc {
			s.Order = Desc
		} else {
			s.Order = Asc
		}
		return s
	}
	return SortSpec{Field: field, Order: Asc}
}

// View describes how one tabular view reads records of type T: which fields
// the search box matches against, and how a named field maps to a string
// value. Value must return "" for unknown or absent fields.
type View[T any] struct {
	SearchFields []string
	Value        func(item T, field string) string
}

// Project filters items by a case-insensitive substring match of term across
// the view's search fields (an empty term matches everything), then sorts by
// spec.Field with a case-insensitive three-way comparison. Ties are broken
// arbitrarily; the comparison sort is not stable. The input slice is never
// mutated.
func Project[T any](items []T, term string, spec SortSpec, view View[T]) []T {
	out := make([]T, 0, len(items))

	needle := strings.ToLower(term)
	for _, item := range items {
		if needle == "" || matches(item, needle, view) {
			out = append(out, item)
		}
	}

	if spec.Field != "" {
		sort.Slice(out, func(i, j int) bool {
			a := strings.ToLower(view.Value(out[i], spec.Field))
			b := strings.ToLower(view.Value(out[j], spec.Field))
			if spec.Order == Desc {
				return a > b
			}
			return a < b
		})
	}

	return out
}

// matches reports whether any configured field contains the lowercased term.
func matches[T any](item T, needle string, view View[T]) bool {
	for _, field := range view.SearchFields {
		if strings.Contains(strings.ToLower(view.Value(item, field)), needle) {
			return true
		}
	}
	return false
}
