// internal/listings/query-listings/queries/execute.go
package queries

import (
	"context"
	"database/sql"
	"fmt"

	"property-listings/internal/models"
)

// Executor runs a read query. *sql.DB and database.PostgresClient satisfy it.
type Executor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Run executes plan once and scans every returned row. The result is never
// nil.
func Run(ctx context.Context, db Executor, plan QueryPlan) ([]models.ListingRecord, error) {
	rows, err := db.QueryContext(ctx, plan.Query(), plan.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	withSimilarity := plan.Kind() == PlanSimilarityRanked
	results := make([]models.ListingRecord, 0, PageSize)
	for rows.Next() {
		rec, err := ScanListing(rows, withSimilarity)
		if err != nil {
			return nil, err
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return results, nil
}
