package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"property-listings/internal/common/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresClient_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	client := NewPostgresFromDB(db)
	defer client.Close()

	mock.ExpectPing()
	assert.NoError(t, client.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err = client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres ping failed")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_QueryContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	client := NewPostgresFromDB(db)
	defer client.Close()

	mock.ExpectQuery("SELECT id FROM listing WHERE id = \\$1").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	rows, err := client.QueryContext(context.Background(), "SELECT id FROM listing WHERE id = $1", 9)
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var id int64
	require.NoError(t, rows.Scan(&id))
	assert.Equal(t, int64(9), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgres_DoesNotDial(t *testing.T) {
	client, err := NewPostgres(config.PostgresConfig{
		Host: "127.0.0.1", Port: 1, Database: "listings", User: "reader",
		SSLMode: "disable", MaxConnections: 2, MaxIdle: 1,
	})
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}

func TestRedisClient_JSONRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer client.Close()
	ctx := context.Background()

	type entry struct {
		ID   int64  `json:"id"`
		Slug string `json:"slug"`
	}

	var got []entry
	assert.ErrorIs(t, client.GetJSON(ctx, "ref:property_type", &got), ErrCacheMiss)

	want := []entry{{ID: 1, Slug: "condominium"}, {ID: 2, Slug: "house"}}
	require.NoError(t, client.SetJSON(ctx, "ref:property_type", want, time.Minute))
	require.NoError(t, client.GetJSON(ctx, "ref:property_type", &got))
	assert.Equal(t, want, got)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, client.GetJSON(ctx, "ref:property_type", &got), ErrCacheMiss)
}

func TestRedisClient_CorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer client.Close()

	require.NoError(t, mr.Set("ref:listing_type", "not-json"))
	var got []string
	err := client.GetJSON(context.Background(), "ref:listing_type", &got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestRedisClient_PingAndDel(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()
	ctx := context.Background()

	require.NoError(t, client.Ping(ctx))
	require.NoError(t, mr.Set("ref:listing_type", "[]"))
	require.NoError(t, client.Del(ctx, "ref:listing_type"))
	assert.False(t, mr.Exists("ref:listing_type"))

	mr.Close()
	assert.Error(t, client.Ping(ctx))
}

func TestNewRedis_AcceptsURL(t *testing.T) {
	client, err := NewRedis(config.RedisConfig{Address: "redis://:pw@cache.internal:6380/2"})
	require.NoError(t, err)
	defer client.Close()

	opts := client.Client.Options()
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
}
