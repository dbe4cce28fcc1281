// internal/listings/get-listing/handler.go
package getlisting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	apperrors "property-listings/internal/common/errors"
	"property-listings/internal/common/logger"
	parselistingfilters "property-listings/internal/listings/parse-listing-filters"
	"property-listings/internal/listings/query-listings/queries"
	"property-listings/internal/models"
)

const TaskType = "get-listing"

var (
	ErrListingNotFound      = errors.New("LISTING_NOT_FOUND")
	ErrQueryExecutionFailed = errors.New("QUERY_EXECUTION_FAILED")
)

// Output is the single-listing response body.
type Output struct {
	Success bool                  `json:"success"`
	Data    *models.ListingRecord `json:"data"`
}

type Handler struct {
	timeout time.Duration
	db      queries.Executor
	logger  logger.Logger
}

func NewHandler(timeout time.Duration, db queries.Executor, log logger.Logger) *Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Handler{
		timeout: timeout,
		db:      db,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// ParseID applies the tolerant number parse to a path segment and truncates
// toward zero.
func ParseID(raw string) int64 {
	n := parselistingfilters.ParseNumber(raw)
	if n >= math.MaxInt64 || n <= math.MinInt64 {
		return 0
	}
	return int64(n)
}

// Execute loads one listing by id, whatever its status.
func (h *Handler) Execute(ctx context.Context, id int64) (*Output, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	rows, err := h.db.QueryContext(ctx, queries.ListingByIDQuery, id)
	if err != nil {
		return nil, h.fail(ctx, id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, h.fail(ctx, id, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrListingNotFound, apperrors.NewListingNotFoundError(id))
	}

	rec, err := queries.ScanListing(rows, false)
	if err != nil {
		return nil, h.fail(ctx, id, err)
	}

	return &Output{Success: true, Data: &rec}, nil
}

func (h *Handler) fail(ctx context.Context, id int64, err error) error {
	h.logger.Error("listing lookup failed", map[string]interface{}{
		"listingId": id,
		"error":     err,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrListingNotFound, apperrors.NewListingNotFoundError(id))
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.NewQueryTimeoutError(TaskType, err)
	}
	return apperrors.NewQueryExecutionFailedError(TaskType, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err))
}
