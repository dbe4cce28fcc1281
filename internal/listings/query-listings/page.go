// internal/listings/query-listings/page.go
package querylistings

import "property-listings/internal/models"

// ResultPage is the response envelope for one page of listings. Before and
// After hold listing ids for the standard plan and similarity scores for the
// ranked plan; both are nil on an empty page.
type ResultPage struct {
	Success bool                   `json:"success"`
	Before  any                    `json:"before"`
	After   any                    `json:"after"`
	Data    []models.ListingRecord `json:"data"`
}

// AssemblePage wraps rows and their cursors. Data is never nil.
func AssemblePage(rows []models.ListingRecord, before, after any) *ResultPage {
	if rows == nil {
		rows = []models.ListingRecord{}
	}
	if len(rows) == 0 {
		before, after = nil, nil
	}
	return &ResultPage{
		Success: true,
		Before:  before,
		After:   after,
		Data:    rows,
	}
}
