package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/euclid-tools/densify/pkg/densify"
	"github.com/euclid-tools/densify/pkg/pipeline"
	"github.com/euclid-tools/densify/pkg/server"
)

const configFile = "config.toml"

// Cache backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the on-disk configuration. Command-line flags that are set
// explicitly take precedence over it.
type Config struct {
	Step           float64  `toml:"step"`
	Policy         string   `toml:"policy"`
	Workers        int      `toml:"workers"`
	SkipDegenerate bool     `toml:"skip_degenerate"`
	MaxPoints      int      `toml:"max_points"`
	Formats        []string `toml:"formats"`
	Width          float64  `toml:"width"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string   `toml:"backend"` // file | redis | none
	TTL           duration `toml:"ttl"`
	Dir           string   `toml:"dir"`
	Prefix        string   `toml:"prefix"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
}

// ServerConfig configures `densify serve`.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// duration decodes TOML strings such as "24h" or "90m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func defaultConfig() Config {
	return Config{
		Step:      pipeline.DefaultStep,
		Policy:    pipeline.DefaultPolicy,
		Workers:   runtime.NumCPU(),
		MaxPoints: densify.DefaultMaxPoints,
		Formats:   []string{pipeline.FormatJSON},
		Width:     pipeline.DefaultWidth,
		Cache: CacheConfig{
			Backend:   backendFile,
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{
			Addr:         server.DefaultAddr,
			MaxBodyBytes: server.DefaultMaxBodyBytes,
		},
	}
}

// loadConfig reads the config file at path on top of the defaults. With an
// empty path the default location is tried and a missing file is not an
// error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return fmt.Errorf("invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if err := pipeline.ValidateStep(c.Step); err != nil {
		return err
	}
	if err := pipeline.ValidatePolicy(c.Policy); err != nil {
		return err
	}
	return pipeline.ValidateFormats(c.Formats)
}

// defaultConfigHint describes the default config location for flag help.
func defaultConfigHint() string {
	return filepath.Join("$XDG_CONFIG_HOME", appName, configFile)
}
