package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	DriverSupabase = "supabase"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Engine   EngineConfig   `mapstructure:"engine"`
}

// ServerConfig: CORSOrigins lists allowed origins; entries may use one
// leading wildcard label (https://*.example.com). Empty allows all.
type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	Env         string   `mapstructure:"env"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	Backend string `mapstructure:"backend"`
}

// StorageConfig selects where events, mood entries, feedback and
// suggestions live. DSN is required for the SQL drivers.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type SupabaseConfig struct {
	URL        string `mapstructure:"url"`
	ServiceKey string `mapstructure:"service_key"`
}

// RedisConfig backs the recent-suggestion store. An empty address keeps
// that store in process memory.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig: with a JWT secret, bearer tokens are verified locally (HS256);
// otherwise they are checked against Supabase.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// EngineConfig tunes the scheduling engine windows and background jobs.
// Timezone is the IANA zone days are bucketed in unless a request names one.
type EngineConfig struct {
	LookbackDays     int           `mapstructure:"lookback_days"`
	LookaheadDays    int           `mapstructure:"lookahead_days"`
	DistributionDays int           `mapstructure:"distribution_days"`
	DefaultLimit     int           `mapstructure:"default_limit"`
	RecentWindow     time.Duration `mapstructure:"recent_window"`
	SuggestionMaxAge time.Duration `mapstructure:"suggestion_max_age"`
	ExpirySchedule   string        `mapstructure:"expiry_schedule"`
	SweepConcurrency int           `mapstructure:"sweep_concurrency"`
	Timezone         string        `mapstructure:"timezone"`
}

// Location resolves Timezone, defaulting to UTC
func (e EngineConfig) Location() (*time.Location, error) {
	if e.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(e.Timezone)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.cors_origins", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.backend", "slog")

	v.SetDefault("storage.driver", DriverSupabase)
	v.SetDefault("storage.dsn", "")

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "")

	v.SetDefault("engine.lookback_days", 45)
	v.SetDefault("engine.lookahead_days", 7)
	v.SetDefault("engine.distribution_days", 14)
	v.SetDefault("engine.default_limit", 6)
	v.SetDefault("engine.recent_window", "48h")
	v.SetDefault("engine.suggestion_max_age", "168h")
	v.SetDefault("engine.expiry_schedule", "@hourly")
	v.SetDefault("engine.sweep_concurrency", 4)
	v.SetDefault("engine.timezone", "UTC")
}

// Load reads configuration from .env, config.yaml and the environment
func Load() (*Config, error) {
	// A missing .env is the normal case outside local development
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TEMPO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names used by the hosting platform
	_ = v.BindEnv("server.port", "TEMPO_SERVER_PORT", "PORT")
	_ = v.BindEnv("supabase.url", "TEMPO_SUPABASE_URL", "SUPABASE_URL")
	_ = v.BindEnv("supabase.service_key", "TEMPO_SUPABASE_SERVICE_KEY", "SUPABASE_SERVICE_KEY")
	_ = v.BindEnv("storage.dsn", "TEMPO_STORAGE_DSN", "DATABASE_URL")
	_ = v.BindEnv("redis.address", "TEMPO_REDIS_ADDRESS", "REDIS_URL")
	_ = v.BindEnv("server.cors_origins", "TEMPO_SERVER_CORS_ORIGINS", "CORS_ALLOWED_ORIGINS")
	_ = v.BindEnv("auth.jwt_secret", "TEMPO_AUTH_JWT_SECRET", "SUPABASE_JWT_SECRET")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks driver requirements and numeric bounds
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSupabase:
		if c.Supabase.URL == "" {
			return fmt.Errorf("SUPABASE_URL is required for the supabase driver")
		}
		if c.Supabase.ServiceKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY is required for the supabase driver")
		}
	case DriverPostgres, DriverSQLite:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the %s driver", c.Storage.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	e := c.Engine
	if e.LookbackDays < 1 {
		return fmt.Errorf("engine.lookback_days must be positive")
	}
	if e.LookaheadDays < 1 {
		return fmt.Errorf("engine.lookahead_days must be positive")
	}
	if e.DistributionDays < e.LookaheadDays {
		return fmt.Errorf("engine.distribution_days must be >= engine.lookahead_days")
	}
	if e.DefaultLimit < 5 || e.DefaultLimit > 10 {
		return fmt.Errorf("engine.default_limit must be between 5 and 10")
	}
	if e.RecentWindow <= 0 {
		return fmt.Errorf("engine.recent_window must be positive")
	}
	if e.SuggestionMaxAge <= 0 {
		return fmt.Errorf("engine.suggestion_max_age must be positive")
	}
	if e.SweepConcurrency < 1 {
		return fmt.Errorf("engine.sweep_concurrency must be at least 1")
	}
	if _, err := e.Location(); err != nil {
		return fmt.Errorf("engine.timezone: %w", err)
	}
	if _, err := cron.ParseStandard(e.ExpirySchedule); err != nil {
		return fmt.Errorf("engine.expiry_schedule: %w", err)
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
