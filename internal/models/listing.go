// internal/models/listing.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// ListingRecord is one row of the flattened listing projection. It is built
// fresh for every query and never cached.
type ListingRecord struct {
	ID                    int64          `json:"id"`
	ListingTitle          string         `json:"listing_title"`
	ListingURL            string         `json:"listing_url"`
	Price                 float64        `json:"price"`
	PriceFormatted        string         `json:"price_formatted"`
	ListingType           string         `json:"listing_type"`
	PropertyStatus        string         `json:"property_status"`
	PropertyType          string         `json:"property_type"`
	SubCategory           *string        `json:"sub_category"`
	BuildingName          *string        `json:"building_name"`
	SubdivisionName       *string        `json:"subdivision_name"`
	FloorArea             *float64       `json:"floor_area"`
	LotArea               *float64       `json:"lot_area"`
	BuildingSize          *float64       `json:"building_size"`
	Bedrooms              *int64         `json:"bedrooms"`
	Bathrooms             *int64         `json:"bathrooms"`
	ParkingSpace          *int64         `json:"parking_space"`
	City                  string         `json:"city"`
	Area                  *string        `json:"area"`
	Address               *string        `json:"address"`
	Features              pq.StringArray `json:"features"`
	MainImageURL          *string        `json:"main_image_url"`
	Coordinates           Coordinates    `json:"coordinates"`
	LatitudeInText        *string        `json:"latitude_in_text"`
	LongitudeInText       *string        `json:"longitude_in_text"`
	Description           string         `json:"description"`
	CreatedAt             time.Time      `json:"created_at"`
	DescriptionSimilarity *float64       `json:"description_similarity,omitempty"`
}

// Coordinates holds the GeoJSON coordinate array produced by
// ST_AsGeoJSON(...)::json->'coordinates', passed through untouched.
type Coordinates json.RawMessage

// Scan implements sql.Scanner. The driver buffer is copied.
func (c *Coordinates) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*c = nil
	case []byte:
		*c = append(Coordinates(nil), v...)
	case string:
		*c = Coordinates(v)
	default:
		return fmt.Errorf("coordinates: unsupported type %T", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (c Coordinates) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return []byte(c), nil
}

func (c Coordinates) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	return []byte(c), nil
}

func (c *Coordinates) UnmarshalJSON(data []byte) error {
	*c = append((*c)[:0], data...)
	return nil
}
