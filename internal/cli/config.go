package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/teasort/pkg/bench"
	"github.com/matzehuels/teasort/pkg/errors"
)

// Backend names accepted in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
)

// Server defaults.
const (
	defaultAddr         = ":8080"
	defaultMaxBenchSize = 1 << 16
)

// Config is the contents of config.toml. Every field is optional; flags
// override whatever the file sets.
type Config struct {
	Bench  bench.Options `toml:"bench"`
	Cache  CacheConfig   `toml:"cache"`
	Store  StoreConfig   `toml:"store"`
	Server ServerConfig  `toml:"server"`
	Log    LogConfig     `toml:"log"`
}

// CacheConfig selects the cache backend for benchmark rows.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	TTL           time.Duration `toml:"ttl"`
}

// StoreConfig selects where finished benchmark reports are kept.
type StoreConfig struct {
	Backend  string `toml:"backend"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// ServerConfig configures "teasort serve".
type ServerConfig struct {
	Addr string `toml:"addr"`

	// MaxBenchSize caps the largest size a GET /v1/bench request may ask
	// for.
	MaxBenchSize int `toml:"max_bench_size"`
}

// LogConfig controls rotation of the --log-file output.
type LogConfig struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Cache:  CacheConfig{Backend: backendFile},
		Store:  StoreConfig{Backend: backendFile},
		Server: ServerConfig{Addr: defaultAddr, MaxBenchSize: defaultMaxBenchSize},
		Log:    LogConfig{MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28},
	}
}

// LoadConfig reads the config file at path. An empty path means the default
// location, which may be missing; an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	return ParseConfig(string(data))
}

// ParseConfig decodes TOML text on top of DefaultConfig and validates the
// result. Unknown keys are rejected.
func ParseConfig(data string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks backend names and the connection settings they need.
// Benchmark options are validated when a run starts, after flags are applied.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case backendFile, backendNone:
	case backendRedis:
		if err := errors.ValidateRedisAddr(c.Cache.RedisAddr); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be file, redis or none)", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case backendFile, backendNone:
	case backendMongo:
		if err := errors.ValidateMongoURI(c.Store.MongoURI); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q (must be file, mongo or none)", c.Store.Backend)
	}

	if err := errors.ValidateSizeRange(2, c.Server.MaxBenchSize); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "server.max_bench_size")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl cannot be negative: %s", c.Cache.TTL)
	}
	return nil
}

// configPath returns $XDG_CONFIG_HOME/teasort/config.toml, falling back to
// ~/.config/teasort/config.toml.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
