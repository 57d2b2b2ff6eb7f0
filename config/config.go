package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Services ServicesConfig `yaml:"services"`
	Paging   PagingConfig   `yaml:"paging"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address                string `yaml:"address"`
	RootPath               string `yaml:"root_path"`
	SwaggerDir             string `yaml:"swagger_dir"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

func (h HTTPConfig) ShutdownTimeout() time.Duration {
	return time.Duration(h.ShutdownTimeoutSeconds) * time.Second
}

type ServicesConfig struct {
	FlightsURL            string `yaml:"flights_url"`
	TicketsURL            string `yaml:"tickets_url"`
	PrivilegeURL          string `yaml:"privilege_url"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

func (s ServicesConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

type PagingConfig struct {
	DefaultPage int `yaml:"default_page"`
	DefaultSize int `yaml:"default_size"`
}

type RedisConfig struct {
	Addr                   string `yaml:"addr"`
	Password               string `yaml:"password"`
	DB                     int    `yaml:"db"`
	FlightsCacheTTLSeconds int    `yaml:"flights_cache_ttl_seconds"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != "" && r.FlightsCacheTTLSeconds > 0
}

func (r RedisConfig) FlightsCacheTTL() time.Duration {
	return time.Duration(r.FlightsCacheTTLSeconds) * time.Second
}

type KafkaConfig struct {
	Brokers           []string `yaml:"brokers"`
	TicketEventsTopic string   `yaml:"ticket_events_topic"`
	GroupID           string   `yaml:"group_id"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.TicketEventsTopic != ""
}

type LogConfig struct {
	Env        string `yaml:"env"`
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// LoadConfig reads the YAML file at path, then applies environment overrides
// (an optional .env file is loaded first) and defaults. A missing file is
// not an error: the gateway can run from environment alone.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.HTTP.Address, "GATEWAY_HTTP_ADDRESS")
	setString(&c.Services.FlightsURL, "FLIGHTS_URL")
	setString(&c.Services.TicketsURL, "TICKETS_URL")
	setString(&c.Services.PrivilegeURL, "PRIVILEGE_URL")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Env, "ENV")
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
}

func (c *Config) applyDefaults() {
	setDefault(&c.HTTP.Address, ":8080")
	setDefault(&c.HTTP.RootPath, "api/v1")
	c.HTTP.RootPath = strings.Trim(c.HTTP.RootPath, "/")
	if c.HTTP.ShutdownTimeoutSeconds <= 0 {
		c.HTTP.ShutdownTimeoutSeconds = 5
	}
	setDefault(&c.Services.FlightsURL, "http://localhost:8060/flights")
	setDefault(&c.Services.TicketsURL, "http://localhost:8070/tickets")
	setDefault(&c.Services.PrivilegeURL, "http://localhost:8050/privilege")
	if c.Paging.DefaultPage <= 0 {
		c.Paging.DefaultPage = 1
	}
	if c.Paging.DefaultSize <= 0 {
		c.Paging.DefaultSize = 10
	}
	setDefault(&c.Kafka.GroupID, "gateway-ticket-events")
	setDefault(&c.Log.Env, "development")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDefault(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
