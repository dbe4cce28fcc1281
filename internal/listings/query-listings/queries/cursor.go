// internal/listings/query-listings/queries/cursor.go
package queries

import (
	"math"

	"property-listings/internal/models"
)

// Direction is the pagination direction requested by the cursor pair.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// ResolveDirection applies the precedence rule: after wins over before.
func ResolveDirection(c models.Cursor) Direction {
	switch {
	case c.HasAfter():
		return DirectionForward
	case c.HasBefore():
		return DirectionBackward
	default:
		return DirectionNone
	}
}

// CursorPredicate compares the plan's sort key with the bound cursor value.
// Forward pages walk down the descending sort key, backward pages up.
type CursorPredicate struct {
	Direction Direction
	Column    string
	Value     any
}

// Active reports whether the predicate contributes to the WHERE clause.
func (p CursorPredicate) Active() bool {
	return p.Direction != DirectionNone
}

func (p CursorPredicate) render(b *binder) string {
	op := "<"
	if p.Direction == DirectionBackward {
		op = ">"
	}
	return p.Column + " " + op + " " + b.bind(p.Value)
}

// idCursor builds the predicate for integer listing ids. A fractional after
// binds as its ceiling and a fractional before as its floor, which selects
// exactly the ids the fractional comparison would.
func idCursor(c models.Cursor) CursorPredicate {
	p := CursorPredicate{Direction: ResolveDirection(c), Column: "listing.id"}
	switch p.Direction {
	case DirectionForward:
		p.Value = clampInt64(math.Ceil(*c.After))
	case DirectionBackward:
		p.Value = clampInt64(math.Floor(*c.Before))
	}
	return p
}

// clampInt64 converts an integral float to int64, saturating at the int64
// bounds instead of wrapping.
func clampInt64(v float64) int64 {
	switch {
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v)
}

// scoreCursor builds the predicate for similarity scores, bound as-is.
func scoreCursor(c models.Cursor) CursorPredicate {
	p := CursorPredicate{Direction: ResolveDirection(c), Column: "description_similarity"}
	switch p.Direction {
	case DirectionForward:
		p.Value = *c.After
	case DirectionBackward:
		p.Value = *c.Before
	}
	return p
}

// NextCursors derives the cursor pair for the page just fetched: before is
// the sort key of the first row and after that of the last. Both are nil for
// an empty page, whatever the direction of the request.
func NextCursors(plan QueryPlan, rows []models.ListingRecord) (before, after any) {
	if len(rows) == 0 {
		return nil, nil
	}
	return plan.SortValue(&rows[0]), plan.SortValue(&rows[len(rows)-1])
}
