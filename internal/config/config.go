package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v10"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `env:"DB_HOST"`
	Port               string `env:"DB_PORT" envDefault:"5432"`
	User               string `env:"DB_USER"`
	Password           string `env:"DB_PASSWORD"`
	Name               string `env:"DB_NAME"`
	SSLMode            string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns       int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns       int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetimeSec int    `env:"DB_CONN_MAX_LIFETIME_SEC" envDefault:"300"`
}

// MinIOConfig holds object storage settings for developer snapshots.
// Storage is optional; leave MINIO_ENDPOINT empty to disable exports.
type MinIOConfig struct {
	Endpoint  string        `env:"MINIO_ENDPOINT"`
	AccessKey string        `env:"MINIO_ACCESS_KEY"`
	SecretKey string        `env:"MINIO_SECRET_KEY"`
	Bucket    string        `env:"MINIO_BUCKET"`
	UseSSL    bool          `env:"MINIO_USE_SSL" envDefault:"false"`
	URLExpiry time.Duration `env:"SNAPSHOT_URL_EXPIRY" envDefault:"15m"`
}

// Enabled reports whether an object storage endpoint was configured.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// TracingConfig holds the OpenTelemetry settings. The OTLP exporters read
// their endpoint and header variables themselves; the endpoints are kept here
// for the startup log.
type TracingConfig struct {
	Disabled       bool   `env:"OTEL_SDK_DISABLED" envDefault:"false"`
	ServiceName    string `env:"OTEL_SERVICE_NAME" envDefault:"devapi"`
	Protocol       string `env:"OTEL_EXPORTER_OTLP_PROTOCOL" envDefault:"grpc"`
	Endpoint       string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	TracesEndpoint string `env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"`
	Sampler        string `env:"OTEL_TRACES_SAMPLER" envDefault:"parentbased_traceidratio"`
	SamplerArg     string `env:"OTEL_TRACES_SAMPLER_ARG" envDefault:"1.0"`
}

// ExporterEndpoint returns the traces endpoint, falling back to the generic one.
func (c TracingConfig) ExporterEndpoint() string {
	if c.TracesEndpoint != "" {
		return c.TracesEndpoint
	}
	return c.Endpoint
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost     string `env:"APP_HOST" envDefault:"localhost:8080"`
	Port        string `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`
	Timezone    string `env:"TIMEZONE" envDefault:"UTC"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	Database DatabaseConfig
	MinIO    MinIOConfig
	Tracing  TracingConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
