package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/unievents/internal/domain/calendar"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)

	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 9, cfg.Calendar.StartHour)
	require.Equal(t, 19, cfg.Calendar.EndHour)
	require.True(t, cfg.Seed.DemoData)
	require.False(t, cfg.Storage.ObjectStorage.Configured())
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
http:
  address: ":9090"
  allowedOrigins: ["https://events.example.edu"]
calendar:
  startHour: 8
  endHour: 20
  timezone: UTC
auth:
  secret: file-secret
storage:
  valkey:
    enabled: true
    addr: localhost:6379
  objectStorage:
    endpoint: https://r2.example.com
    bucket: logos
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("CALENDAR_END_HOUR", "22")
	t.Setenv("AUTH_TOKEN_TTL", "15m")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example.edu, https://b.example.edu")
	t.Setenv("SEED_DEMO_DATA", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, []string{"https://a.example.edu", "https://b.example.edu"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, 8, cfg.Calendar.StartHour)
	require.Equal(t, 22, cfg.Calendar.EndHour)
	require.Equal(t, "UTC", cfg.Calendar.Timezone)
	require.Equal(t, "file-secret", cfg.Auth.Secret)
	require.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	require.True(t, cfg.Storage.Valkey.Enabled)
	require.True(t, cfg.Storage.ObjectStorage.Configured())
	require.False(t, cfg.Seed.DemoData)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty address", mutate: func(c *Config) { c.HTTP.Address = "" }},
		{name: "zero start hour", mutate: func(c *Config) { c.Calendar.StartHour = 0 }},
		{name: "end before start", mutate: func(c *Config) { c.Calendar.EndHour = 8 }},
		{name: "end past midnight", mutate: func(c *Config) { c.Calendar.EndHour = 25 }},
		{name: "unknown zone", mutate: func(c *Config) { c.Calendar.Timezone = "Mars/Olympus" }},
		{name: "empty secret", mutate: func(c *Config) { c.Auth.Secret = " " }},
		{name: "valkey without addr", mutate: func(c *Config) { c.Storage.Valkey.Enabled = true }},
		{name: "rate limit without rpm", mutate: func(c *Config) { c.HTTP.RateLimit.RequestsPerMinute = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestValidateUsesGridRules(t *testing.T) {
	cfg := defaultConfig()
	cfg.Calendar.EndHour = 25
	err := cfg.Validate()
	require.Error(t, err)

	want := calendar.GridConfig{StartHour: cfg.Calendar.StartHour, EndHour: 25}.Validate()
	require.ErrorContains(t, err, want.Error())
}
