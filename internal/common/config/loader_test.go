package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	for _, k := range []string{"DATABASE_URL", "DB_USER", "DB_PASSWORD", "REDIS_URL", "NODE_ENV", "LISTINGS_DB_PASSWORD"} {
		t.Setenv(k, "")
	}
}

func TestLoadFromFile_DefaultsApplied(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
database:
  postgres:
    host: db.internal
    database: listings
    user: reader
  redis:
    address: cache.internal:6379
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "property-listings", cfg.App.Name)
	assert.Equal(t, ":8787", cfg.Server.Address)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, 25, cfg.Database.Postgres.MaxConnections)
	assert.Equal(t, 30000, cfg.Search.Timeout)
	assert.Equal(t, 300, cfg.Search.ReferenceCacheTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "property-listings", cfg.Observability.ServiceName)
	assert.Equal(t,
		"host=db.internal port=5432 user=reader password= dbname=listings sslmode=disable",
		cfg.Database.Postgres.GetDSN())
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	clearEnv(t)
	t.Setenv("LISTINGS_DB_PASSWORD", "s3cret")
	path := writeConfig(t, `
database:
  postgres:
    url: ${DATABASE_URL}
    host: db.internal
    database: listings
    user: reader
    password: ${LISTINGS_DB_PASSWORD}
  redis:
    address: cache.internal:6379
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Empty(t, cfg.Database.Postgres.URL)
}

func TestLoadFromFile_DatabaseURLOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://reader@neon.example/listings")
	path := writeConfig(t, `
database:
  redis:
    address: cache.internal:6379
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://reader@neon.example/listings", cfg.Database.Postgres.GetDSN())
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "missing postgres host",
			body: `
database:
  redis:
    address: cache:6379
`,
			wantErr: "database.postgres.host or database.postgres.url is required",
		},
		{
			name: "missing redis",
			body: `
database:
  postgres:
    host: db
    database: listings
    user: reader
`,
			wantErr: "database.redis.address is required",
		},
		{
			name: "auth enabled without keycloak",
			body: `
database:
  postgres:
    host: db
    database: listings
    user: reader
  redis:
    address: cache:6379
auth:
  enabled: true
`,
			wantErr: "auth.keycloak.url and auth.keycloak.realm are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}

func TestAppConfig_IsDevelopment(t *testing.T) {
	assert.True(t, AppConfig{Environment: "development"}.IsDevelopment())
	assert.False(t, AppConfig{Environment: "production"}.IsDevelopment())
}
