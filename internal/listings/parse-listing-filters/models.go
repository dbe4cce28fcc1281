// internal/listings/parse-listing-filters/models.go
package parselistingfilters

import (
	"net/url"

	"property-listings/internal/models"
)

type Input struct {
	Query url.Values
}

type Output struct {
	Filters models.FilterSet
}

// Query parameter names accepted by GET /v1/property-listings.
const (
	ParamSearch          = "search"
	ParamPropertyType    = "property_type"
	ParamListingType     = "listing_type"
	ParamMinPrice        = "min_price"
	ParamMaxPrice        = "max_price"
	ParamMinBedrooms     = "min_bedrooms"
	ParamMaxBedrooms     = "max_bedrooms"
	ParamMinBathrooms    = "min_bathrooms"
	ParamMaxBathrooms    = "max_bathrooms"
	ParamMinCarSpaces    = "min_car_spaces"
	ParamMaxCarSpaces    = "max_car_spaces"
	ParamMinFloorSize    = "min_floor_size"
	ParamMaxFloorSize    = "max_floor_size"
	ParamMinLotSize      = "min_lot_size"
	ParamMaxLotSize      = "max_lot_size"
	ParamMinBuildingSize = "min_building_size"
	ParamMaxBuildingSize = "max_building_size"
	ParamBefore          = "before"
	ParamAfter           = "after"
)
