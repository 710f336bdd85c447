// Package config loads engine configuration from a TOML file.
//
// Configuration is optional everywhere: a missing file yields the
// defaults, and every field left unset in the file keeps its default.
// The same Config feeds the CLI and the HTTP server, so both agree on
// the storage backend and the layout tuning.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/errors"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/layout"
)

// Storage backend names accepted in [Store].Backend.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config is the root configuration document.
type Config struct {
	Server Server `toml:"server"`
	Store  Store  `toml:"store"`
	Layout Layout `toml:"layout"`
}

// Server configures the HTTP API.
type Server struct {
	// Addr is the listen address, host:port.
	Addr string `toml:"addr"`

	// CacheDir holds cached layout and render artifacts. Empty disables
	// caching.
	CacheDir string `toml:"cache_dir"`

	// CacheTTLMinutes bounds the age of cached artifacts. Zero means no
	// expiration.
	CacheTTLMinutes int `toml:"cache_ttl_minutes"`
}

// Store selects and configures the persistence backend.
type Store struct {
	// Backend is one of "memory", "file", "redis", "mongo".
	Backend string `toml:"backend"`

	// Dir is the data directory for the file backend.
	Dir string `toml:"dir"`

	// Redis connection settings.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	// Mongo connection settings.
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Layout tunes the layout engines. Zero-valued fields fall back to the
// engine defaults.
type Layout struct {
	HSpacing     float64 `toml:"h_spacing"`
	VSpacing     float64 `toml:"v_spacing"`
	LinkDistance float64 `toml:"link_distance"`
	Charge       float64 `toml:"charge"`
	Iterations   int     `toml:"iterations"`
	RadialStep   float64 `toml:"radial_step"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			CacheTTLMinutes: 60,
		},
		Store: Store{
			Backend:         BackendMemory,
			RedisAddr:       "localhost:6379",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   "mindmap",
			MongoCollection: "maps",
		},
	}
}

// Load reads a TOML config file at path, layered over [Default]. A
// missing file is not an error: the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendMongo:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
	}
}

// CacheTTL returns the artifact cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Server.CacheTTLMinutes) * time.Minute
}

// LayoutConfig converts the layout section to engine configuration,
// filling unset fields with the engine defaults.
func (c Config) LayoutConfig() layout.Config {
	out := layout.DefaultConfig()
	if c.Layout.HSpacing > 0 {
		out.HSpacing = c.Layout.HSpacing
	}
	if c.Layout.VSpacing > 0 {
		out.VSpacing = c.Layout.VSpacing
	}
	if c.Layout.LinkDistance > 0 {
		out.LinkDistance = c.Layout.LinkDistance
	}
	if c.Layout.Charge != 0 {
		out.Charge = c.Layout.Charge
	}
	if c.Layout.Iterations > 0 {
		out.Iterations = c.Layout.Iterations
	}
	if c.Layout.RadialStep > 0 {
		out.RadialStep = c.Layout.RadialStep
	}
	return out
}
