// internal/listings/query-listings/handler.go
package querylistings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "property-listings/internal/common/errors"
	"property-listings/internal/common/logger"
	"property-listings/internal/common/metrics"
	"property-listings/internal/common/observability"
	"property-listings/internal/listings/query-listings/queries"
	"property-listings/internal/models"
)

const (
	TaskType = "query-listings"
)

var (
	ErrQueryExecutionFailed = errors.New("QUERY_EXECUTION_FAILED")
	ErrQueryTimeout         = errors.New("QUERY_TIMEOUT")
)

// Executor is the storage collaborator; *sql.DB satisfies it.
type Executor = queries.Executor

type Handler struct {
	config *Config
	db     Executor
	logger logger.Logger
	obs    *observability.Observability
}

func NewHandler(config *Config, db Executor, log logger.Logger, obs *observability.Observability) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	return &Handler{
		config: config,
		db:     db,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		obs:    obs,
	}
}

// CompileAndRun compiles filters into a plan, executes it once and assembles
// the page. Failures are terminal: no retry, no partial page.
func (h *Handler) CompileAndRun(ctx context.Context, filters models.FilterSet) (*ResultPage, error) {
	plan := queries.Compile(filters)
	kind := plan.Kind().String()

	if h.config.LogSQL {
		h.logger.Debug("property listing sql query", map[string]interface{}{
			"plan":      kind,
			"sql":       plan.Query(),
			"argCount":  len(plan.Args()),
			"direction": plan.Cursor().Direction.String(),
		})
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	ctx, span := h.obs.StartSpan(ctx, "listings.query",
		attribute.String("plan", kind),
		attribute.String("direction", plan.Cursor().Direction.String()),
	)
	defer span.End()

	start := time.Now()
	rows, err := queries.Run(ctx, h.db, plan)
	elapsed := time.Since(start)

	if err != nil {
		wrapped := h.classify(ctx, err)
		span.RecordError(wrapped)
		span.SetStatus(codes.Error, "query failed")
		h.obs.RecordSearch(ctx, kind, "error", elapsed)
		metrics.SearchQueriesTotal.WithLabelValues(kind, "error").Inc()
		h.logger.Error("listing query failed", map[string]interface{}{
			"plan":       kind,
			"error":      err,
			"durationMs": elapsed.Milliseconds(),
		})
		return nil, wrapped
	}

	h.obs.RecordSearch(ctx, kind, "ok", elapsed)
	metrics.SearchQueriesTotal.WithLabelValues(kind, "ok").Inc()
	metrics.SearchRowsReturned.WithLabelValues(kind).Observe(float64(len(rows)))
	span.SetAttributes(attribute.Int("rows", len(rows)))

	before, after := queries.NextCursors(plan, rows)
	h.logger.Info("listing page served", map[string]interface{}{
		"plan":       kind,
		"rowCount":   len(rows),
		"durationMs": elapsed.Milliseconds(),
	})
	return AssemblePage(rows, before, after), nil
}

// classify wraps err with the sentinel matching its cause, inside a
// StandardError carrying the matching code.
func (h *Handler) classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.NewQueryTimeoutError(TaskType, fmt.Errorf("%w: %v", ErrQueryTimeout, err))
	}
	return apperrors.NewQueryExecutionFailedError(TaskType, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err))
}
