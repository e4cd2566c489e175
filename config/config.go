package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix namespaces the environment overrides, e.g.
// INKWELL_DB__HOST maps to db.host.
const EnvPrefix = "INKWELL_"

var defaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/inkwell/config.yaml",
}

type Config struct {
	Addr        string   `koanf:"addr"`
	GinMode     string   `koanf:"gin_mode"`
	CORSOrigins []string `koanf:"cors_origins"`
	// PageSize is the single page size shared by every listing surface:
	// index, group, profile, feed and group list.
	PageSize int           `koanf:"page_size"`
	DB       DBConfig      `koanf:"db"`
	Cache    CacheConfig   `koanf:"cache"`
	Storage  StorageConfig `koanf:"storage"`
}

type DBConfig struct {
	User     string `koanf:"user"`
	Pass     string `koanf:"pass"`
	Host     string `koanf:"host"`
	Name     string `koanf:"name"`
	TLS      bool   `koanf:"tls"`
	MaxConns int    `koanf:"max_conns"`
}

// DSN builds the go-sql-driver connection string.
func (dc *DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?tls=%v&parseTime=true",
		dc.User, dc.Pass, dc.Host, dc.Name, dc.TLS)
}

type CacheConfig struct {
	// Backend selects the page-cache implementation: "memory" or "redis".
	Backend string `koanf:"backend"`
	// IndexTTL bounds index staleness. Writes never invalidate the index
	// cache; entries age out or are flushed explicitly.
	IndexTTL      time.Duration `koanf:"index_ttl"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
}

type StorageConfig struct {
	Bucket string `koanf:"bucket"`
}

func defaultConfig() *Config {
	return &Config{
		Addr:        ":8080",
		GinMode:     "release",
		CORSOrigins: []string{"http://localhost:3000"},
		PageSize:    10,
		DB: DBConfig{
			Host:     "127.0.0.1:3306",
			Name:     "inkwell",
			TLS:      false,
			MaxConns: 50,
		},
		Cache: CacheConfig{
			Backend:   "memory",
			IndexTTL:  20 * time.Second,
			RedisAddr: "127.0.0.1:6379",
		},
	}
}

// Load layers defaults, an optional yaml file and INKWELL_* env vars, in
// increasing priority.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("error loading config defaults: %w", err)
	}

	if path := configFilePath(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config file %v: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKeyToPath), nil); err != nil {
		return nil, fmt.Errorf("error loading config env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configFilePath() string {
	if path, ok := os.LookupEnv(ConfigPathEnvVar); ok {
		return path
	}
	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envKeyToPath maps INKWELL_CACHE__INDEX_TTL to cache.index_ttl.
func envKeyToPath(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func (c *Config) validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be positive, got %v", c.PageSize)
	}
	if c.Cache.IndexTTL <= 0 {
		return fmt.Errorf("cache.index_ttl must be positive, got %v", c.Cache.IndexTTL)
	}
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}
