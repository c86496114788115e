// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"runtime"
	"time"

	"github.com/okian/lootcouncil/internal/domain/scoring"
)

// Store drivers accepted by StoreDriver.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory evaluation job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of scoring workers.
	WorkerCount int `koanf:"worker_count"`

	// StaleAfter is the snapshot age past which a source is reported outdated.
	StaleAfter time.Duration `koanf:"stale_after"`

	// CatalogPath points to the YAML item catalog. Empty starts with an empty catalog.
	CatalogPath string `koanf:"catalog_path"`

	// StoreDriver selects where assignments live: memory or sqlite.
	StoreDriver string `koanf:"store_driver"`

	// DBPath is the sqlite database file used by the sqlite driver.
	DBPath string `koanf:"db_path"`

	// EnvFile is an optional dotenv file read before the environment layer.
	EnvFile string `koanf:"env_file"`

	// Score multipliers.
	DPSFloor               float64 `koanf:"dps_floor"`
	TrackUpgradeMultiplier float64 `koanf:"track_upgrade_multiplier"`
	Tier2pMultiplier       float64 `koanf:"tier_2p_multiplier"`
	Tier4pMultiplier       float64 `koanf:"tier_4p_multiplier"`
	BisBonus               float64 `koanf:"bis_bonus"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Addr:                   ":9080",
		QueueSize:              10_000,
		WorkerCount:            runtime.NumCPU() * 2,
		StaleAfter:             24 * time.Hour,
		StoreDriver:            StoreMemory,
		DBPath:                 "lootcouncil.db",
		EnvFile:                ".env",
		DPSFloor:               0.01,
		TrackUpgradeMultiplier: 1.1,
		Tier2pMultiplier:       2,
		Tier4pMultiplier:       4,
	}
}

// Weights returns the score multipliers as scoring weights.
func (c *Config) Weights() scoring.Weights {
	return scoring.Weights{
		DPSFloor: c.DPSFloor,
		Track:    c.TrackUpgradeMultiplier,
		Tier2p:   c.Tier2pMultiplier,
		Tier4p:   c.Tier4pMultiplier,
		BIS:      c.BisBonus,
	}
}
