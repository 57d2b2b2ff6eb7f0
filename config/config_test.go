package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":9090"
  root_path: "/gateway/v2/"
services:
  flights_url: "http://flights/flights"
  tickets_url: "http://tickets/tickets"
  privilege_url: "http://bonus/privilege"
  request_timeout_seconds: 3
redis:
  addr: "redis:6379"
  flights_cache_ttl_seconds: 60
kafka:
  brokers: ["kafka:9092"]
  ticket_events_topic: "ticket-events"
log:
  env: production
  level: warn
`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, "gateway/v2", cfg.HTTP.RootPath)
	assert.Equal(t, "http://flights/flights", cfg.Services.FlightsURL)
	assert.Equal(t, 3*time.Second, cfg.Services.RequestTimeout())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Minute, cfg.Redis.FlightsCacheTTL())
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, "gateway-ticket-events", cfg.Kafka.GroupID)
	assert.Equal(t, "production", cfg.Log.Env)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "api/v1", cfg.HTTP.RootPath)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout())
	assert.Equal(t, "http://localhost:8060/flights", cfg.Services.FlightsURL)
	assert.Equal(t, "http://localhost:8070/tickets", cfg.Services.TicketsURL)
	assert.Equal(t, "http://localhost:8050/privilege", cfg.Services.PrivilegeURL)
	assert.Equal(t, time.Duration(0), cfg.Services.RequestTimeout())
	assert.Equal(t, 1, cfg.Paging.DefaultPage)
	assert.Equal(t, 10, cfg.Paging.DefaultSize)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "development", cfg.Log.Env)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
services:
  flights_url: "http://from-yaml/flights"
`)
	t.Setenv("FLIGHTS_URL", "http://from-env/flights")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REDIS_ADDR", "cache:6379")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "http://from-env/flights", cfg.Services.FlightsURL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.False(t, cfg.Redis.Enabled(), "ttl not set keeps the cache off")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "http: [unterminated")

	cfg, err := LoadConfig(path)

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}
