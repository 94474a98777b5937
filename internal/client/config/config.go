package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "AFFILIATE_"

// Config holds runtime settings for the affiliate CLI.
type Config struct {
	APIBaseURL    string `json:"api_base_url" env:"API_BASE_URL" validate:"required,url"`
	PublicBaseURL string `json:"public_base_url" env:"PUBLIC_BASE_URL" validate:"required,url"`
	DatabasePath  string `json:"database_path" env:"DATABASE_PATH" validate:"required"`
	LogLevel      string `json:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat     string `json:"log_format" env:"LOG_FORMAT" validate:"oneof=text json"`
	LogBackend    string `json:"log_backend" env:"LOG_BACKEND" validate:"oneof=slog zerolog"`
}

// LoadDefaults populates c with defaults suitable for a local API.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.PublicBaseURL = "http://localhost:5173"
	c.DatabasePath = "affiliate.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.LogBackend = "slog"
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig builds the configuration from the process arguments and
// environment.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
