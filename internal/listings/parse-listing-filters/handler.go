// internal/listings/parse-listing-filters/handler.go
package parselistingfilters

import (
	"context"
	"net/url"
	"strings"

	"property-listings/internal/common/logger"
	"property-listings/internal/models"
)

const TaskType = "parse-listing-filters"

type Handler struct {
	logger logger.Logger
}

func NewHandler(log logger.Logger) *Handler {
	return &Handler{
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute normalizes the raw query string. It never fails.
func (h *Handler) Execute(_ context.Context, input *Input) *Output {
	var query url.Values
	if input != nil {
		query = input.Query
	}
	filters := Parse(query)

	h.logger.Debug("filters parsed", map[string]interface{}{
		"search":       filters.Search,
		"propertyType": string(filters.PropertyType),
		"listingType":  string(filters.ListingType),
		"hasAfter":     filters.Cursor.HasAfter(),
		"hasBefore":    filters.Cursor.HasBefore(),
	})

	return &Output{Filters: filters}
}

// Parse converts query parameters into a FilterSet. Unknown enum values and
// unparsable numbers never produce an error: enums are dropped and numbers
// become zero.
func Parse(query url.Values) models.FilterSet {
	var fs models.FilterSet
	if query == nil {
		return fs
	}

	fs.Search = strings.TrimSpace(query.Get(ParamSearch))

	if pt, ok := models.ParsePropertyType(query.Get(ParamPropertyType)); ok {
		fs.PropertyType = pt
	}
	if lt, ok := models.ParseListingType(query.Get(ParamListingType)); ok {
		fs.ListingType = lt
	}

	fs.Price = parseRange(query, ParamMinPrice, ParamMaxPrice)
	fs.Bedrooms = parseRange(query, ParamMinBedrooms, ParamMaxBedrooms)
	fs.Bathrooms = parseRange(query, ParamMinBathrooms, ParamMaxBathrooms)
	fs.CarSpaces = parseRange(query, ParamMinCarSpaces, ParamMaxCarSpaces)
	fs.FloorSize = parseRange(query, ParamMinFloorSize, ParamMaxFloorSize)
	fs.LotSize = parseRange(query, ParamMinLotSize, ParamMaxLotSize)
	fs.BuildingSize = parseRange(query, ParamMinBuildingSize, ParamMaxBuildingSize)

	fs.Cursor = models.Cursor{
		Before: parseOptional(query, ParamBefore),
		After:  parseOptional(query, ParamAfter),
	}
	return fs
}

func parseRange(query url.Values, minKey, maxKey string) models.RangeFilter {
	return models.RangeFilter{
		Min: parseOptional(query, minKey),
		Max: parseOptional(query, maxKey),
	}
}

// parseOptional returns nil when the parameter is absent. A present but
// empty or unparsable value yields 0.
func parseOptional(query url.Values, key string) *float64 {
	values, ok := query[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return models.Float(ParseNumber(values[0]))
}
