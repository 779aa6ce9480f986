package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/teasort/pkg/errors"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(`
[bench]
min_size = 64
max_size = 4096
iterations = 8
seed = 42

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "12h"

[store]
backend = "mongo"
mongo_uri = "mongodb://localhost:27017"
database = "bench"

[server]
addr = ":9090"

[log]
file = "/var/log/teasort.log"
compress = true
`)
	if err != nil {
		t.Fatalf("ParseConfig error: %v", err)
	}

	if cfg.Bench.MinSize != 64 || cfg.Bench.MaxSize != 4096 || cfg.Bench.Iterations != 8 || cfg.Bench.Seed != 42 {
		t.Errorf("bench = %+v", cfg.Bench)
	}
	if cfg.Cache.Backend != backendRedis || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL != 12*time.Hour {
		t.Errorf("cache ttl = %s, want 12h", cfg.Cache.TTL)
	}
	if cfg.Store.Backend != backendMongo || cfg.Store.Database != "bench" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.MaxBenchSize != defaultMaxBenchSize {
		t.Errorf("unset max_bench_size = %d, want default %d", cfg.Server.MaxBenchSize, defaultMaxBenchSize)
	}
	if cfg.Log.File != "/var/log/teasort.log" || !cfg.Log.Compress || cfg.Log.MaxSizeMB != 10 {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := ParseConfig("")
	if err != nil {
		t.Fatalf("ParseConfig(\"\") error: %v", err)
	}
	def := DefaultConfig()
	if cfg.Cache != def.Cache || cfg.Store != def.Store || cfg.Server != def.Server || cfg.Log != def.Log {
		t.Errorf("empty config = %+v, want defaults %+v", cfg, def)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"syntax", "[bench\nmin_size = 1", errors.ErrCodeInvalidConfig},
		{"unknown key", "[bench]\nminsize = 4", errors.ErrCodeInvalidConfig},
		{"unknown section", "[database]\nurl = \"x\"", errors.ErrCodeInvalidConfig},
		{"cache backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidConfig},
		{"redis without addr", "[cache]\nbackend = \"redis\"", errors.ErrCodeInvalidConfig},
		{"redis url", "[cache]\nbackend = \"redis\"\nredis_addr = \"redis://x:6379\"", errors.ErrCodeInvalidConfig},
		{"store backend", "[store]\nbackend = \"sqlite\"", errors.ErrCodeInvalidConfig},
		{"mongo without uri", "[store]\nbackend = \"mongo\"", errors.ErrCodeInvalidConfig},
		{"negative ttl", "[cache]\nttl = \"-1h\"", errors.ErrCodeInvalidConfig},
		{"tiny bench limit", "[server]\nmax_bench_size = 1", errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(tt.data)
			if err == nil {
				t.Fatal("ParseConfig should fail")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	// Missing default file means defaults.
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig without file error: %v", err)
	}
	if cfg.Server.Addr != defaultAddr {
		t.Errorf("default addr = %q, want %q", cfg.Server.Addr, defaultAddr)
	}

	// The default location is read when present.
	path := filepath.Join(dir, appName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[server]\naddr = \":7070\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q, want :7070", cfg.Server.Addr)
	}

	// An explicit path must exist.
	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("LoadConfig(missing) error = %v, want %s", err, errors.ErrCodeInvalidPath)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	got, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-config", appName, "config.toml"); got != want {
		t.Errorf("configPath() = %q, want %q", got, want)
	}
}
