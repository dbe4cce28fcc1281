// internal/api/router.go
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"property-listings/internal/common/auth"
	apperrors "property-listings/internal/common/errors"
	"property-listings/internal/common/logger"
	getlisting "property-listings/internal/listings/get-listing"
	parselistingfilters "property-listings/internal/listings/parse-listing-filters"
	querylistings "property-listings/internal/listings/query-listings"
	referencetypes "property-listings/internal/listings/reference-types"
	"property-listings/internal/models"
)

// Searcher runs a listing search. *querylistings.Handler satisfies it.
type Searcher interface {
	CompileAndRun(ctx context.Context, filters models.FilterSet) (*querylistings.ResultPage, error)
}

// ListingGetter loads one listing. *getlisting.Handler satisfies it.
type ListingGetter interface {
	Execute(ctx context.Context, id int64) (*getlisting.Output, error)
}

// ReferenceLister reads a reference table. *referencetypes.Handler satisfies it.
type ReferenceLister interface {
	List(ctx context.Context, table referencetypes.Table) ([]models.TypeRecord, error)
}

// Pinger is checked by /ready.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the router dispatches to. Auth may be nil, in
// which case /v1 routes are open.
type Deps struct {
	Filters    *parselistingfilters.Handler
	Search     Searcher
	Listing    ListingGetter
	References ReferenceLister
	Database   Pinger
	Auth       auth.Authenticator
	Logger     logger.Logger
}

type server struct {
	deps   Deps
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

// NewRouter builds the gin engine with middleware and every route mounted.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = logger.NewNoOpLogger()
	}
	if deps.Filters == nil {
		deps.Filters = parselistingfilters.NewHandler(deps.Logger)
	}
	s := &server{
		deps:   deps,
		errors: apperrors.NewErrorHandler(deps.Logger),
		logger: deps.Logger,
	}

	r := gin.New()
	r.Use(requestID(), s.accessLog(), s.recovery())

	r.GET("/health", s.health)
	r.GET("/ready", s.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	if deps.Auth != nil {
		v1.Use(s.authenticate(deps.Auth))
	}
	v1.GET("/property-listings", s.searchListings)
	v1.GET("/property-listings/:id", s.getListing)
	v1.GET("/property-types", s.listReference(referencetypes.TablePropertyType))
	v1.GET("/listing-types", s.listReference(referencetypes.TableListingType))

	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "Not found")
	})
	return r
}
