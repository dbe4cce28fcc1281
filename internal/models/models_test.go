package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePropertyType(t *testing.T) {
	for _, pt := range PropertyTypes {
		got, ok := ParsePropertyType(string(pt))
		assert.True(t, ok)
		assert.Equal(t, pt, got)
	}

	for _, bad := range []string{"", "House", "condo", " house", "apartment"} {
		_, ok := ParsePropertyType(bad)
		assert.False(t, ok, bad)
	}
}

func TestParseListingType(t *testing.T) {
	got, ok := ParseListingType("for-rent")
	assert.True(t, ok)
	assert.Equal(t, ListingTypeForRent, got)

	_, ok = ParseListingType("for_sale")
	assert.False(t, ok)
}

func TestCoordinates_ScanAndMarshal(t *testing.T) {
	buf := []byte("[121.05, 14.55]")
	var c Coordinates
	require.NoError(t, c.Scan(buf))
	buf[1] = '9'

	out, err := json.Marshal(struct {
		C Coordinates `json:"c"`
	}{c})
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":[121.05,14.55]}`, string(out))

	require.NoError(t, c.Scan(nil))
	out, err = json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	assert.Error(t, c.Scan(42))
}

func TestListingRecord_JSONShape(t *testing.T) {
	beds := int64(2)
	rec := ListingRecord{ID: 7, ListingTitle: "Sunny Loft", Bedrooms: &beds, Features: []string{"pool"}}

	out, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.EqualValues(t, 7, decoded["id"])
	assert.EqualValues(t, 2, decoded["bedrooms"])
	assert.Nil(t, decoded["bathrooms"])
	assert.Contains(t, decoded, "bathrooms")
	assert.NotContains(t, decoded, "description_similarity")
	assert.Equal(t, []interface{}{"pool"}, decoded["features"])
}

func TestRangeFilter_Active(t *testing.T) {
	tests := []struct {
		name string
		r    RangeFilter
		want bool
	}{
		{"both", RangeFilter{Min: Float(1), Max: Float(3)}, true},
		{"lone min", RangeFilter{Min: Float(1)}, false},
		{"lone max", RangeFilter{Max: Float(3)}, false},
		{"zero min", RangeFilter{Min: Float(0), Max: Float(3)}, false},
		{"zero max", RangeFilter{Min: Float(1), Max: Float(0)}, false},
		{"neither", RangeFilter{}, false},
		{"negative bounds", RangeFilter{Min: Float(-1), Max: Float(-2)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Active())
		})
	}
}

func TestCursor_Presence(t *testing.T) {
	c := Cursor{Before: Float(50), After: Float(0)}
	assert.True(t, c.HasBefore())
	assert.False(t, c.HasAfter())
	assert.False(t, Cursor{}.HasBefore())
}
