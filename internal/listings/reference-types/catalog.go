// internal/listings/reference-types/catalog.go
package referencetypes

import (
	"context"

	"property-listings/internal/models"
)

// Catalog maps the closed filter enumerations onto reference table ids. It is
// built once at start-up to detect drift between the enumerations and the
// reference tables; filters bind slugs, so nothing reads the ids afterwards.
type Catalog struct {
	PropertyTypes map[models.PropertyType]int64
	ListingTypes  map[models.ListingType]int64
	// Missing lists "table:slug" for every variant without a matching row.
	Missing []string
}

// ResolveCatalog loads both reference tables once and checks that every
// PropertyType and ListingType variant has a row. Missing variants are logged;
// filtering on them simply matches nothing.
func (h *Handler) ResolveCatalog(ctx context.Context) (*Catalog, error) {
	propertyRows, err := h.List(ctx, TablePropertyType)
	if err != nil {
		return nil, err
	}
	listingRows, err := h.List(ctx, TableListingType)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{
		PropertyTypes: make(map[models.PropertyType]int64, len(models.PropertyTypes)),
		ListingTypes:  make(map[models.ListingType]int64, len(models.ListingTypes)),
	}

	propertyBySlug := indexBySlug(propertyRows)
	for _, pt := range models.PropertyTypes {
		if id, ok := propertyBySlug[string(pt)]; ok {
			cat.PropertyTypes[pt] = id
			continue
		}
		cat.Missing = append(cat.Missing, string(TablePropertyType)+":"+string(pt))
	}

	listingBySlug := indexBySlug(listingRows)
	for _, lt := range models.ListingTypes {
		if id, ok := listingBySlug[string(lt)]; ok {
			cat.ListingTypes[lt] = id
			continue
		}
		cat.Missing = append(cat.Missing, string(TableListingType)+":"+string(lt))
	}

	for _, m := range cat.Missing {
		h.logger.Warn("filter variant has no reference row", map[string]interface{}{
			"variant": m,
		})
	}
	h.logger.Info("reference catalog resolved", map[string]interface{}{
		"propertyTypes": len(cat.PropertyTypes),
		"listingTypes":  len(cat.ListingTypes),
		"missing":       len(cat.Missing),
	})
	return cat, nil
}

func indexBySlug(rows []models.TypeRecord) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Slug] = r.ID
	}
	return out
}
