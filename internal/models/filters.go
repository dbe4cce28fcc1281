// internal/models/filters.go
package models

// FilterSet is the normalized form of the listing search query string.
// Absent enums are empty strings, absent numbers are nil.
type FilterSet struct {
	Search       string
	PropertyType PropertyType
	ListingType  ListingType
	Price        RangeFilter
	Bedrooms     RangeFilter
	Bathrooms    RangeFilter
	CarSpaces    RangeFilter
	FloorSize    RangeFilter
	LotSize      RangeFilter
	BuildingSize RangeFilter
	Cursor       Cursor
}

// RangeFilter is an inclusive (min, max) pair.
type RangeFilter struct {
	Min *float64
	Max *float64
}

// Active reports whether both bounds are present. A bound that normalized to
// zero counts as absent.
func (r RangeFilter) Active() bool {
	return present(r.Min) && present(r.Max)
}

// Cursor carries the raw before/after values from the request.
type Cursor struct {
	Before *float64
	After  *float64
}

// HasAfter reports whether after is present and non-zero.
func (c Cursor) HasAfter() bool { return present(c.After) }

// HasBefore reports whether before is present and non-zero.
func (c Cursor) HasBefore() bool { return present(c.Before) }

func present(v *float64) bool {
	return v != nil && *v != 0
}

// Float returns a pointer to v. Handy for building filters in code and tests.
func Float(v float64) *float64 {
	return &v
}
