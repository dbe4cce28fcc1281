// internal/models/reference.go
package models

// PropertyType is the closed set of property type slugs accepted as a filter.
type PropertyType string

const (
	PropertyTypeCondominium PropertyType = "condominium"
	PropertyTypeHouse       PropertyType = "house"
	PropertyTypeWarehouse   PropertyType = "warehouse"
	PropertyTypeLand        PropertyType = "land"
)

// PropertyTypes lists every variant in declaration order.
var PropertyTypes = []PropertyType{
	PropertyTypeCondominium,
	PropertyTypeHouse,
	PropertyTypeWarehouse,
	PropertyTypeLand,
}

// ParsePropertyType reports whether s is exactly one of the variants.
func ParsePropertyType(s string) (PropertyType, bool) {
	for _, pt := range PropertyTypes {
		if string(pt) == s {
			return pt, true
		}
	}
	return "", false
}

// ListingType is the closed set of listing type slugs accepted as a filter.
type ListingType string

const (
	ListingTypeForSale ListingType = "for-sale"
	ListingTypeForRent ListingType = "for-rent"
)

var ListingTypes = []ListingType{
	ListingTypeForSale,
	ListingTypeForRent,
}

func ParseListingType(s string) (ListingType, bool) {
	for _, lt := range ListingTypes {
		if string(lt) == s {
			return lt, true
		}
	}
	return "", false
}

// PropertyStatusAvailable is the only status the search ever returns.
const PropertyStatusAvailable = "available"

// TypeRecord is a row of the property_type or listing_type reference tables.
type TypeRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
