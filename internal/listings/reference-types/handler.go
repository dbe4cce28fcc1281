// internal/listings/reference-types/handler.go
package referencetypes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"property-listings/internal/common/database"
	apperrors "property-listings/internal/common/errors"
	"property-listings/internal/common/logger"
	"property-listings/internal/common/metrics"
	"property-listings/internal/listings/query-listings/queries"
	"property-listings/internal/models"
)

const TaskType = "reference-types"

// Table names one of the reference tables. Only the constants below have a
// query in tableQueries.
type Table string

const (
	TablePropertyType Table = "property_type"
	TableListingType  Table = "listing_type"
)

var ErrUnknownTable = errors.New("unknown reference table")

var tableQueries = map[Table]string{
	TablePropertyType: "SELECT id, name, slug FROM property_type ORDER BY id",
	TableListingType:  "SELECT id, name, slug FROM listing_type ORDER BY id",
}

// Cache is the JSON cache in front of the reference tables;
// *database.RedisClient satisfies it.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

type Handler struct {
	db     queries.Executor
	cache  Cache
	ttl    time.Duration
	logger logger.Logger
}

func NewHandler(db queries.Executor, cache Cache, ttl time.Duration, log logger.Logger) *Handler {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Handler{
		db:     db,
		cache:  cache,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func cacheKey(table Table) string {
	return "ref:" + string(table)
}

// List returns every row of table. The cache is read first; a miss or a cache
// failure falls through to Postgres and the result is written back.
func (h *Handler) List(ctx context.Context, table Table) ([]models.TypeRecord, error) {
	query, ok := tableQueries[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	key := cacheKey(table)
	if h.cache != nil {
		var cached []models.TypeRecord
		err := h.cache.GetJSON(ctx, key, &cached)
		switch {
		case err == nil:
			metrics.ReferenceCacheLookups.WithLabelValues(string(table), "hit").Inc()
			return cached, nil
		case errors.Is(err, database.ErrCacheMiss):
			metrics.ReferenceCacheLookups.WithLabelValues(string(table), "miss").Inc()
		default:
			metrics.ReferenceCacheLookups.WithLabelValues(string(table), "error").Inc()
			h.logger.Warn("reference cache read failed", map[string]interface{}{
				"table": string(table),
				"error": err,
			})
		}
	}

	records, err := h.load(ctx, query)
	if err != nil {
		return nil, apperrors.NewReferenceLookupFailedError(string(table), err)
	}

	if h.cache != nil {
		if err := h.cache.SetJSON(ctx, key, records, h.ttl); err != nil {
			h.logger.Warn("reference cache write failed", map[string]interface{}{
				"table": string(table),
				"error": err,
			})
		}
	}
	return records, nil
}

func (h *Handler) load(ctx context.Context, query string) ([]models.TypeRecord, error) {
	rows, err := h.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.TypeRecord{}
	for rows.Next() {
		var r models.TypeRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Slug); err != nil {
			return nil, fmt.Errorf("scan reference row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
