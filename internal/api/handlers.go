// internal/api/handlers.go
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	getlisting "property-listings/internal/listings/get-listing"
	parselistingfilters "property-listings/internal/listings/parse-listing-filters"
	referencetypes "property-listings/internal/listings/reference-types"
	"property-listings/internal/models"
)

func (s *server) searchListings(c *gin.Context) {
	out := s.deps.Filters.Execute(c.Request.Context(), &parselistingfilters.Input{
		Query: c.Request.URL.Query(),
	})

	page, err := s.deps.Search.CompileAndRun(c.Request.Context(), out.Filters)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *server) getListing(c *gin.Context) {
	id := getlisting.ParseID(c.Param("id"))

	out, err := s.deps.Listing.Execute(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) listReference(table referencetypes.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := s.deps.References.List(c.Request.Context(), table)
		if err != nil {
			s.respondError(c, err)
			return
		}
		if rows == nil {
			rows = []models.TypeRecord{}
		}
		ok(c, rows)
	}
}

func (s *server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *server) ready(c *gin.Context) {
	if s.deps.Database != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.deps.Database.Ping(ctx); err != nil {
			s.logger.Warn("readiness check failed", map[string]interface{}{"error": err})
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
