// internal/listings/query-listings/config.go
package querylistings

import (
	"time"

	"property-listings/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// LogSQL logs every compiled query at debug level.
	LogSQL bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}

// ConfigFrom derives the handler settings from the application config.
func ConfigFrom(cfg *config.Config) *Config {
	c := LoadConfig()
	if cfg == nil {
		return c
	}
	if cfg.Search.Timeout > 0 {
		c.Timeout = config.GetDuration(cfg.Search.Timeout)
	}
	c.LogSQL = cfg.App.IsDevelopment()
	return c
}
