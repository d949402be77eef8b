// Package config provides centralized configuration management for the
// service. It loads configuration from environment variables with sensible
// defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import "time"

// Config holds all service configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server    ServerConfig
	Warehouse WarehouseConfig
	Search    SearchConfig
	Storage   StorageConfig
	Pipeline  PipelineConfig
	Logging   LoggingConfig
}

// ServerConfig holds HTTP server settings for the event webhook.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 0,
	// pipeline runs complete inside the request)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"0s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// WarehouseConfig holds warehouse connection settings.
type WarehouseConfig struct {
	// URL is the PostgreSQL connection string (required)
	// Supports both DATABASE_URL and WAREHOUSE_URL env vars
	URL string `env:"DATABASE_URL" envAlt:"WAREHOUSE_URL" required:"true"`

	// Table is the target table, fully replaced each run (default: transactions)
	Table string `env:"WAREHOUSE_TABLE" default:"transactions"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// SearchConfig holds search engine connection settings.
type SearchConfig struct {
	// Addresses is a comma-separated list of Elasticsearch node URLs (required)
	Addresses []string `env:"ELASTIC_ADDRESSES" required:"true"`

	// Username for basic auth (default: elastic)
	Username string `env:"ELASTIC_USERNAME" default:"elastic"`

	// Password for basic auth
	Password string `env:"ELASTIC_PASSWORD"`

	// Index is the target index; documents are upserted by listing id
	// (default: listings)
	Index string `env:"ELASTIC_INDEX" default:"listings"`
}

// StorageConfig holds object store settings.
type StorageConfig struct {
	// Region is the S3 region (default: us-east-1)
	Region string `env:"AWS_REGION" default:"us-east-1"`

	// Endpoint overrides the S3 endpoint for S3-compatible stores
	// (e.g. MinIO in development); empty means AWS
	Endpoint string `env:"S3_ENDPOINT"`
}

// PipelineConfig holds run settings.
type PipelineConfig struct {
	// RunTimeout is the maximum duration for one ingestion run (default: 5m)
	RunTimeout time.Duration `env:"PIPELINE_RUN_TIMEOUT" default:"5m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
