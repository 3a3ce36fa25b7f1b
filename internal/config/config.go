// Package config loads menuval settings from menuval.yaml, the environment
// (MENUVAL_ prefix) and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. MENUVAL_PROVIDER_API_KEY.
const EnvPrefix = "MENUVAL"

// Config is the resolved configuration.
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Log         LogConfig         `mapstructure:"log"`
	Source      SourceConfig      `mapstructure:"source"`
	Snapshot    SnapshotConfig    `mapstructure:"snapshot"`
	Provider    ProviderConfig    `mapstructure:"provider"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Terminology TerminologyConfig `mapstructure:"terminology"`
	Server      ServerConfig      `mapstructure:"server"`
	Workers     int               `mapstructure:"workers"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type SourceConfig struct {
	Kind            string        `mapstructure:"kind"`
	SpreadsheetID   string        `mapstructure:"spreadsheet_id"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	APIKey          string        `mapstructure:"api_key"`
	Path            string        `mapstructure:"path"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

type SnapshotConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type ProviderConfig struct {
	Kind            string        `mapstructure:"kind"`
	APIKey          string        `mapstructure:"api_key"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	Model           string        `mapstructure:"model"`
	BaseURL         string        `mapstructure:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxRetries      int           `mapstructure:"max_retries"`
	RatePerMinute   int           `mapstructure:"rate_per_minute"`
	Concurrency     int           `mapstructure:"concurrency"`
}

type CacheConfig struct {
	Size     int           `mapstructure:"size"`
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
	File     string        `mapstructure:"file"`
}

type TerminologyConfig struct {
	Conflicts string `mapstructure:"conflicts"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// SetDefaults registers a default for every key so env overrides are always bound.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("log.level", "info")

	v.SetDefault("source.kind", "none")
	v.SetDefault("source.spreadsheet_id", "")
	v.SetDefault("source.credentials_file", "")
	v.SetDefault("source.api_key", "")
	v.SetDefault("source.path", "")
	v.SetDefault("source.timeout", 30*time.Second)

	v.SetDefault("snapshot.ttl", time.Hour)

	v.SetDefault("provider.kind", "none")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.credentials_file", "")
	v.SetDefault("provider.model", "")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.timeout", 10*time.Second)
	v.SetDefault("provider.max_retries", 2)
	v.SetDefault("provider.rate_per_minute", 0)
	v.SetDefault("provider.concurrency", 4)

	v.SetDefault("cache.size", 10000)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", 7*24*time.Hour)
	v.SetDefault("cache.file", "")

	v.SetDefault("terminology.conflicts", "keep-last")
	v.SetDefault("server.port", "8080")
	v.SetDefault("workers", 8)
}

// New returns a viper instance with defaults, env binding and the config search path.
// An explicit file, when given, replaces the search.
func New(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("menuval")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Read loads the config file if there is one. A missing file found by search is not an error;
// a missing explicit file is.
func Read(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load reads and decodes the configuration.
func Load(v *viper.Viper) (*Config, error) {
	if err := Read(v); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be fixed by defaults.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Source.Kind) {
	case "sheets":
		if c.Source.SpreadsheetID == "" {
			return errors.New("source.spreadsheet_id is required for the sheets source")
		}
	case "yaml", "csv":
		if c.Source.Path == "" {
			return fmt.Errorf("source.path is required for the %s source", c.Source.Kind)
		}
	case "none", "":
	default:
		return fmt.Errorf("unknown source.kind %q", c.Source.Kind)
	}

	switch strings.ToLower(c.Provider.Kind) {
	case "google", "openai", "mock", "none", "":
	default:
		return fmt.Errorf("unknown provider.kind %q", c.Provider.Kind)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Provider.MaxRetries < 0 {
		return fmt.Errorf("provider.max_retries must not be negative")
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size must not be negative, got %d", c.Cache.Size)
	}
	return nil
}
