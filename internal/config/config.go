package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the relay service.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"genrelay"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"GENRELAY_PORT" envDefault:"3000"`
	LogLevel        string        `env:"GENRELAY_LOG_LEVEL" envDefault:"info"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Gemini Provider (required, no default)
	GeminiAPIKey    string        `env:"GEMINI_API_KEY,notEmpty"`
	GeminiModel     string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	GenerateTimeout time.Duration `env:"GENERATE_TIMEOUT" envDefault:"60s"`

	// Temporary Uploads
	UploadDir      string `env:"GENRELAY_UPLOAD_DIR"` // Defaults to the OS temp dir when empty
	MaxUploadBytes int64  `env:"GENRELAY_MAX_UPLOAD_BYTES" envDefault:"20971520"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.GeminiAPIKey = strings.TrimSpace(cfg.GeminiAPIKey)
	cfg.GeminiModel = strings.TrimSpace(cfg.GeminiModel)
	cfg.UploadDir = strings.TrimSpace(cfg.UploadDir)
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must not be blank")
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20 * 1024 * 1024
	}
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 60 * time.Second
	}
	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
