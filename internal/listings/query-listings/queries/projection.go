// internal/listings/query-listings/queries/projection.go
package queries

import (
	"database/sql"
	"fmt"
	"strings"

	"property-listings/internal/models"
)

// listingColumns is the flattened listing projection, in scan order.
var listingColumns = []string{
	"listing.id",
	"INITCAP(listing.listing_title) AS listing_title",
	"listing.listing_url",
	"listing.price",
	"listing.price_formatted",
	"listing_type.name AS listing_type",
	"property_status.name AS property_status",
	"property_type.name AS property_type",
	"listing.sub_category",
	"property.building_name",
	"property.subdivision_name",
	"property.floor_area",
	"property.lot_area",
	"property.building_size",
	"property.bedrooms",
	"property.bathrooms",
	"property.parking_space",
	"city.name AS city",
	"property.area",
	"property.address",
	"property.features",
	"property.main_image_url",
	"ST_AsGeoJSON(listing.coordinates)::json->'coordinates' AS coordinates",
	"listing.latitude_in_text",
	"listing.longitude_in_text",
	"listing.description",
	"listing.created_at",
}

// ListingProjection is the SELECT list shared by search and single lookup.
var ListingProjection = strings.Join(listingColumns, ", ")

// ListingJoins is the FROM clause joining a listing to its reference rows.
const ListingJoins = "listing" +
	" INNER JOIN listing_type ON listing_type.id = listing.listing_type_id" +
	" INNER JOIN property_status ON property_status.id = listing.property_status_id" +
	" INNER JOIN property ON property.listing_id = listing.id" +
	" INNER JOIN property_type ON property_type.id = property.property_type_id" +
	" INNER JOIN city ON city.id = property.city_id"

// ListingByIDQuery selects one listing regardless of its status.
var ListingByIDQuery = "SELECT " + ListingProjection + " FROM " + ListingJoins + " WHERE listing.id = $1"

// Scanner is satisfied by *sql.Rows and *sql.Row.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanListing reads one projection row. withSimilarity expects the trailing
// description_similarity column.
func ScanListing(s Scanner, withSimilarity bool) (models.ListingRecord, error) {
	var (
		rec         models.ListingRecord
		description sql.NullString
		similarity  float64
	)

	dest := []any{
		&rec.ID,
		&rec.ListingTitle,
		&rec.ListingURL,
		&rec.Price,
		&rec.PriceFormatted,
		&rec.ListingType,
		&rec.PropertyStatus,
		&rec.PropertyType,
		&rec.SubCategory,
		&rec.BuildingName,
		&rec.SubdivisionName,
		&rec.FloorArea,
		&rec.LotArea,
		&rec.BuildingSize,
		&rec.Bedrooms,
		&rec.Bathrooms,
		&rec.ParkingSpace,
		&rec.City,
		&rec.Area,
		&rec.Address,
		&rec.Features,
		&rec.MainImageURL,
		&rec.Coordinates,
		&rec.LatitudeInText,
		&rec.LongitudeInText,
		&description,
		&rec.CreatedAt,
	}
	if withSimilarity {
		dest = append(dest, &similarity)
	}

	if err := s.Scan(dest...); err != nil {
		return models.ListingRecord{}, fmt.Errorf("scan listing: %w", err)
	}

	rec.Description = description.String
	if rec.Features == nil {
		rec.Features = []string{}
	}
	if withSimilarity {
		rec.DescriptionSimilarity = &similarity
	}
	return rec, nil
}
