package referencetypes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-listings/internal/common/database"
	apperrors "property-listings/internal/common/errors"
	"property-listings/internal/common/logger"
	"property-listings/internal/models"
)

const (
	propertyTypeQuery = "SELECT id, name, slug FROM property_type ORDER BY id"
	listingTypeQuery  = "SELECT id, name, slug FROM listing_type ORDER BY id"
)

func propertyTypeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "slug"}).
		AddRow(int64(1), "Condominium", "condominium").
		AddRow(int64(2), "House", "house").
		AddRow(int64(3), "Warehouse", "warehouse").
		AddRow(int64(4), "Land", "land")
}

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newMiniredisCache(t *testing.T) (*database.RedisClient, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := database.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestList_CacheMissThenHit(t *testing.T) {
	db, mock := newSQLMock(t)
	cache, mr := newMiniredisCache(t)
	h := NewHandler(db, cache, time.Minute, logger.NewTestLogger(t))

	mock.ExpectQuery(propertyTypeQuery).WillReturnRows(propertyTypeRows())

	first, err := h.List(context.Background(), TablePropertyType)
	require.NoError(t, err)
	require.Len(t, first, 4)
	assert.Equal(t, models.TypeRecord{ID: 2, Name: "House", Slug: "house"}, first[1])
	assert.True(t, mr.Exists("ref:property_type"))
	assert.Equal(t, time.Minute, mr.TTL("ref:property_type"))

	second, err := h.List(context.Background(), TablePropertyType)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.NoError(t, mock.ExpectationsWereMet(), "second call served from cache")
}

func TestList_ExpiredCacheReloads(t *testing.T) {
	db, mock := newSQLMock(t)
	cache, mr := newMiniredisCache(t)
	h := NewHandler(db, cache, time.Minute, logger.NewTestLogger(t))

	mock.ExpectQuery(listingTypeQuery).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "slug"}).AddRow(int64(1), "For Sale", "for-sale"))
	mock.ExpectQuery(listingTypeQuery).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(int64(1), "For Sale", "for-sale").
			AddRow(int64(2), "For Rent", "for-rent"))

	first, err := h.List(context.Background(), TableListingType)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	mr.FastForward(2 * time.Minute)

	second, err := h.List(context.Background(), TableListingType)
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_CacheFailureFallsBackToPostgres(t *testing.T) {
	db, mock := newSQLMock(t)
	client, redisMock := redismock.NewClientMock()
	h := NewHandler(db, database.NewRedisFromClient(client), time.Minute, logger.NewTestLogger(t))

	redisMock.ExpectGet("ref:property_type").SetErr(errors.New("connection refused"))
	mock.ExpectQuery(propertyTypeQuery).WillReturnRows(propertyTypeRows())

	records, err := h.List(context.Background(), TablePropertyType)
	require.NoError(t, err)
	assert.Len(t, records, 4)

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestList_WithoutCache(t *testing.T) {
	db, mock := newSQLMock(t)
	h := NewHandler(db, nil, 0, logger.NewTestLogger(t))

	mock.ExpectQuery(listingTypeQuery).WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}))

	records, err := h.List(context.Background(), TableListingType)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestList_DatabaseFailure(t *testing.T) {
	db, mock := newSQLMock(t)
	cache, _ := newMiniredisCache(t)
	h := NewHandler(db, cache, time.Minute, logger.NewTestLogger(t))

	mock.ExpectQuery(propertyTypeQuery).WillReturnError(errors.New("too many connections"))

	_, err := h.List(context.Background(), TablePropertyType)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeReferenceLookupFailed, apperrors.Normalize(err).Code)
}

func TestList_UnknownTable(t *testing.T) {
	db, _ := newSQLMock(t)
	h := NewHandler(db, nil, time.Minute, logger.NewTestLogger(t))

	_, err := h.List(context.Background(), Table("agent"))
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestResolveCatalog(t *testing.T) {
	db, mock := newSQLMock(t)
	h := NewHandler(db, nil, time.Minute, logger.NewTestLogger(t))

	mock.ExpectQuery(propertyTypeQuery).WillReturnRows(propertyTypeRows())
	mock.ExpectQuery(listingTypeQuery).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "slug"}).AddRow(int64(1), "For Sale", "for-sale"))

	cat, err := h.ResolveCatalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), cat.PropertyTypes[models.PropertyTypeLand])
	assert.Equal(t, int64(1), cat.ListingTypes[models.ListingTypeForSale])
	assert.Equal(t, []string{"listing_type:for-rent"}, cat.Missing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveCatalog_PropagatesFailure(t *testing.T) {
	db, mock := newSQLMock(t)
	h := NewHandler(db, nil, time.Minute, logger.NewTestLogger(t))

	mock.ExpectQuery(propertyTypeQuery).WillReturnError(errors.New("boom"))

	_, err := h.ResolveCatalog(context.Background())
	require.Error(t, err)
}
