package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/unievents/internal/domain/calendar"
	"github.com/yanqian/unievents/pkg/util"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Calendar CalendarConfig `yaml:"calendar"`
	Auth     AuthConfig     `yaml:"auth"`
	Storage  StorageConfig  `yaml:"storage"`
	Seed     SeedConfig     `yaml:"seed"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// CalendarConfig sets the visible grid and the zone used for "today".
type CalendarConfig struct {
	StartHour int           `yaml:"startHour"`
	EndHour   int           `yaml:"endHour"`
	Timezone  string        `yaml:"timezone"`
	CacheTTL  time.Duration `yaml:"cacheTtl"`
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	Secret          string        `yaml:"secret"`
	TokenTTL        time.Duration `yaml:"tokenTtl"`
	RefreshTokenTTL time.Duration `yaml:"refreshTokenTtl"`
}

// StorageConfig groups the optional backing services. Each falls back to memory when unset.
type StorageConfig struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	Valkey        ValkeyConfig        `yaml:"valkey"`
	ObjectStorage ObjectStorageConfig `yaml:"objectStorage"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for cache storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// ObjectStorageConfig configures the S3 compatible bucket holding club logos.
type ObjectStorageConfig struct {
	Endpoint     string `yaml:"endpoint"`
	AccessKey    string `yaml:"accessKey"`
	SecretKey    string `yaml:"secretKey"`
	Bucket       string `yaml:"bucket"`
	Region       string `yaml:"region"`
	MaxLogoBytes int64  `yaml:"maxLogoBytes"`
}

// Configured reports whether enough settings are present to reach a bucket.
func (c ObjectStorageConfig) Configured() bool {
	return strings.TrimSpace(c.Endpoint) != "" && strings.TrimSpace(c.Bucket) != ""
}

// SeedConfig controls the demo data loaded into empty stores.
type SeedConfig struct {
	DemoData bool `yaml:"demoData"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("CALENDAR_START_HOUR"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Calendar.StartHour = parsed
		}
	}
	if v := os.Getenv("CALENDAR_END_HOUR"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Calendar.EndHour = parsed
		}
	}
	if v := os.Getenv("CALENDAR_TIMEZONE"); v != "" {
		cfg.Calendar.Timezone = v
	}
	if v := os.Getenv("CALENDAR_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Calendar.CacheTTL = parsed
		}
	}
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("AUTH_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = parsed
		}
	}
	if v := os.Getenv("AUTH_REFRESH_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.RefreshTokenTTL = parsed
		}
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Storage.Postgres.DSN = v
	}
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Storage.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Storage.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("VALKEY_ENABLED"); v != "" {
		cfg.Storage.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("VALKEY_ADDR"); v != "" {
		cfg.Storage.Valkey.Addr = v
	}
	if v := os.Getenv("OBJECT_STORAGE_ENDPOINT"); v != "" {
		cfg.Storage.ObjectStorage.Endpoint = v
	}
	if v := os.Getenv("OBJECT_STORAGE_ACCESS_KEY"); v != "" {
		cfg.Storage.ObjectStorage.AccessKey = v
	}
	if v := os.Getenv("OBJECT_STORAGE_SECRET_KEY"); v != "" {
		cfg.Storage.ObjectStorage.SecretKey = v
	}
	if v := os.Getenv("OBJECT_STORAGE_BUCKET"); v != "" {
		cfg.Storage.ObjectStorage.Bucket = v
	}
	if v := os.Getenv("OBJECT_STORAGE_REGION"); v != "" {
		cfg.Storage.ObjectStorage.Region = v
	}
	if v := os.Getenv("SEED_DEMO_DATA"); v != "" {
		cfg.Seed.DemoData = parseBool(v)
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			AllowedOrigins: []string{"http://localhost:3000"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/clubs/:slug/logo",
				},
			},
		},
		Calendar: CalendarConfig{
			StartHour: 9,
			EndHour:   19,
			Timezone:  "Local",
			CacheTTL:  5 * time.Minute,
		},
		Auth: AuthConfig{
			Secret:          "change-me-in-production",
			TokenTTL:        time.Hour,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		Storage: StorageConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
			Valkey: ValkeyConfig{
				Prefix: "unievents",
			},
			ObjectStorage: ObjectStorageConfig{
				Bucket:       "club-logos",
				Region:       "auto",
				MaxLogoBytes: 2 << 20,
			},
		},
		Seed: SeedConfig{
			DemoData: true,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	grid := calendar.GridConfig{StartHour: c.Calendar.StartHour, EndHour: c.Calendar.EndHour}
	if err := grid.Validate(); err != nil {
		return fmt.Errorf("calendar: %w", err)
	}
	if _, err := util.LoadLocation(c.Calendar.Timezone); err != nil {
		return fmt.Errorf("calendar.timezone is invalid: %w", err)
	}
	if c.Calendar.CacheTTL < 0 {
		return errors.New("calendar.cacheTtl cannot be negative")
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret cannot be empty")
	}
	if c.Auth.TokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return errors.New("auth token ttls must be positive")
	}
	if c.Storage.Valkey.Enabled && strings.TrimSpace(c.Storage.Valkey.Addr) == "" {
		return errors.New("storage.valkey.addr cannot be empty when valkey is enabled")
	}
	if c.Storage.ObjectStorage.MaxLogoBytes <= 0 {
		return errors.New("storage.objectStorage.maxLogoBytes must be positive")
	}
	return nil
}
