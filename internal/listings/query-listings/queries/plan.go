// internal/listings/query-listings/queries/plan.go
package queries

import (
	"math"
	"strconv"
	"strings"

	"property-listings/internal/models"
)

const (
	// PageSize is the fixed number of rows per page.
	PageSize = 5
	// SimilarityThreshold is the minimum word similarity a row must exceed.
	SimilarityThreshold = 0.1
)

// PlanKind tags the two query shapes.
type PlanKind int

const (
	PlanStandard PlanKind = iota
	PlanSimilarityRanked
)

func (k PlanKind) String() string {
	if k == PlanSimilarityRanked {
		return "similarity"
	}
	return "standard"
}

// QueryPlan is a compiled, immutable listing query. The concrete type is
// either *StandardPlan or *SimilarityPlan.
type QueryPlan interface {
	Kind() PlanKind
	// Query is the SQL text; every filter value is a positional placeholder.
	Query() string
	// Args are the values for $1..$n in order.
	Args() []any
	// SortValue extracts the sort key of a returned row.
	SortValue(rec *models.ListingRecord) any
	// Cursor is the cursor predicate, inactive when no cursor was given.
	Cursor() CursorPredicate

	sealed()
}

// StandardPlan orders by listing id, newest first.
type StandardPlan struct {
	Predicates []string
	CursorPred CursorPredicate
	query      string
	args       []any
}

func (p *StandardPlan) Kind() PlanKind          { return PlanStandard }
func (p *StandardPlan) Query() string           { return p.query }
func (p *StandardPlan) Args() []any             { return append([]any(nil), p.args...) }
func (p *StandardPlan) Cursor() CursorPredicate { return p.CursorPred }
func (p *StandardPlan) sealed()                 {}

func (p *StandardPlan) SortValue(rec *models.ListingRecord) any {
	return rec.ID
}

// SimilarityPlan ranks by word similarity between the description and the
// search term. The score is computed once in a CTE and reused as both filter
// and sort key.
type SimilarityPlan struct {
	SearchTerm string
	Threshold  float64
	Predicates []string
	CursorPred CursorPredicate
	query      string
	args       []any
}

func (p *SimilarityPlan) Kind() PlanKind          { return PlanSimilarityRanked }
func (p *SimilarityPlan) Query() string           { return p.query }
func (p *SimilarityPlan) Args() []any             { return append([]any(nil), p.args...) }
func (p *SimilarityPlan) Cursor() CursorPredicate { return p.CursorPred }
func (p *SimilarityPlan) sealed()                 {}

func (p *SimilarityPlan) SortValue(rec *models.ListingRecord) any {
	if rec.DescriptionSimilarity == nil {
		return nil
	}
	return *rec.DescriptionSimilarity
}

// binder hands out placeholders in order of appearance.
type binder struct {
	args []any
}

func (b *binder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// Compile turns a FilterSet into a plan. It is pure and total: a non-empty
// search term selects the similarity plan, anything else the standard plan.
func Compile(fs models.FilterSet) QueryPlan {
	if strings.TrimSpace(fs.Search) != "" {
		return compileSimilarity(fs)
	}
	return compileStandard(fs)
}

func compileStandard(fs models.FilterSet) *StandardPlan {
	b := &binder{}
	preds := filterPredicates(fs, b)
	cursor := idCursor(fs.Cursor)

	where := preds
	if cursor.Active() {
		where = append(where[:len(where):len(where)], cursor.render(b))
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(ListingProjection)
	sb.WriteString(" FROM ")
	sb.WriteString(ListingJoins)
	sb.WriteString(" WHERE ")
	sb.WriteString(strings.Join(where, " AND "))
	sb.WriteString(" ORDER BY listing.id DESC LIMIT ")
	sb.WriteString(strconv.Itoa(PageSize))

	return &StandardPlan{
		Predicates: preds,
		CursorPred: cursor,
		query:      sb.String(),
		args:       b.args,
	}
}

func compileSimilarity(fs models.FilterSet) *SimilarityPlan {
	term := strings.TrimSpace(fs.Search)
	b := &binder{}

	score := "word_similarity(listing.description, " + b.bind(term) + ") AS description_similarity"
	preds := filterPredicates(fs, b)

	outer := []string{"description_similarity > " + b.bind(SimilarityThreshold)}
	cursor := scoreCursor(fs.Cursor)
	if cursor.Active() {
		outer = append(outer, cursor.render(b))
	}

	var sb strings.Builder
	sb.WriteString("WITH similarity AS (SELECT ")
	sb.WriteString(ListingProjection)
	sb.WriteString(", ")
	sb.WriteString(score)
	sb.WriteString(" FROM ")
	sb.WriteString(ListingJoins)
	sb.WriteString(" WHERE ")
	sb.WriteString(strings.Join(preds, " AND "))
	sb.WriteString(") SELECT * FROM similarity WHERE ")
	sb.WriteString(strings.Join(outer, " AND "))
	sb.WriteString(" ORDER BY description_similarity DESC LIMIT ")
	sb.WriteString(strconv.Itoa(PageSize))

	return &SimilarityPlan{
		SearchTerm: term,
		Threshold:  SimilarityThreshold,
		Predicates: preds,
		CursorPred: cursor,
		query:      sb.String(),
		args:       b.args,
	}
}

// filterPredicates emits the base status predicate followed by the type and
// range predicates in fixed order. Price, floor, lot and building size ranges
// are carried by the FilterSet but never compiled.
func filterPredicates(fs models.FilterSet, b *binder) []string {
	preds := []string{"property_status.slug = " + b.bind(models.PropertyStatusAvailable)}

	if fs.PropertyType != "" {
		preds = append(preds, "property_type.slug = "+b.bind(string(fs.PropertyType)))
	}
	if fs.ListingType != "" {
		preds = append(preds, "listing_type.slug = "+b.bind(string(fs.ListingType)))
	}

	ranges := []struct {
		column string
		r      models.RangeFilter
	}{
		{"property.bedrooms", fs.Bedrooms},
		{"property.bathrooms", fs.Bathrooms},
		{"property.parking_space", fs.CarSpaces},
	}
	for _, rg := range ranges {
		if !rg.r.Active() {
			continue
		}
		// Integer columns: ceil(min) and floor(max) keep the fractional
		// semantics while binding integers.
		lo := clampInt64(math.Ceil(*rg.r.Min))
		hi := clampInt64(math.Floor(*rg.r.Max))
		preds = append(preds, rg.column+" >= "+b.bind(lo)+" AND "+rg.column+" <= "+b.bind(hi))
	}
	return preds
}
