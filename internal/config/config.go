// Package config loads runtime configuration from the environment.
//
// A `.env` file in the working directory is loaded first (godotenv autoload).
// Variables use the PORTFOLIO_ prefix and a double underscore for nesting:
//
//	PORTFOLIO_SERVER__PORT=8080        -> server.port
//	PORTFOLIO_ADMIN__SESSION_SECRET=.. -> admin.session_secret
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	Prefix = "PORTFOLIO_"

	EnvDevelopment = "development"
	EnvProduction  = "production"

	// Development-only admin credentials, used when none are configured.
	devAdminEmail    = "admin@localhost"
	devAdminPassword = "admin123"
	devSessionSecret = "development-session-secret-change-me"
)

type Config struct {
	Primary Primary       `koanf:"primary" validate:"required"`
	Server  ServerConfig  `koanf:"server" validate:"required"`
	Storage StorageConfig `koanf:"storage" validate:"required"`
	Admin   AdminConfig   `koanf:"admin" validate:"required"`
	Media   MediaConfig   `koanf:"media" validate:"required"`
	Limits  LimitsConfig  `koanf:"limits" validate:"required"`
}

type Primary struct {
	Env      string `koanf:"env" validate:"required,oneof=development production"`
	LogLevel string `koanf:"log_level" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

type StorageConfig struct {
	Path string `koanf:"path" validate:"required"`
}

type AdminConfig struct {
	Email         string        `koanf:"email" validate:"required"`
	Password      string        `koanf:"password" validate:"required"`
	SessionSecret string        `koanf:"session_secret" validate:"required,min=32"`
	SessionTTL    time.Duration `koanf:"session_ttl" validate:"required"`
	SecureCookie  bool          `koanf:"secure_cookie"`
}

type MediaConfig struct {
	Provider       string        `koanf:"provider" validate:"required,oneof=local cloudinary"`
	LocalDir       string        `koanf:"local_dir"`
	PublicPath     string        `koanf:"public_path"`
	CloudName      string        `koanf:"cloud_name" validate:"required_if=Provider cloudinary"`
	APIKey         string        `koanf:"api_key" validate:"required_if=Provider cloudinary"`
	APISecret      string        `koanf:"api_secret" validate:"required_if=Provider cloudinary"`
	UploadPreset   string        `koanf:"upload_preset"`
	MaxUploadBytes int64         `koanf:"max_upload_bytes" validate:"required"`
	Timeout        time.Duration `koanf:"timeout" validate:"required"`
}

// LimitsConfig bounds the public POST endpoints per client IP.
type LimitsConfig struct {
	LoginPerMinute   int `koanf:"login_per_minute" validate:"required"`
	ContactPerMinute int `koanf:"contact_per_minute" validate:"required"`
}

// Default returns the configuration used for keys that are not set.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: EnvDevelopment, LogLevel: "info"},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Storage: StorageConfig{Path: "data/portfolio.db"},
		Admin:   AdminConfig{SessionTTL: 24 * time.Hour},
		Media: MediaConfig{
			Provider:       "local",
			LocalDir:       "uploads",
			PublicPath:     "/uploads",
			MaxUploadBytes: 5 << 20,
			Timeout:        30 * time.Second,
		},
		Limits: LimitsConfig{LoginPerMinute: 10, ContactPerMinute: 5},
	}
}

// Load reads PORTFOLIO_* variables over Default and validates the result.
// In development, missing admin credentials fall back to local defaults and
// are reported in the returned warnings.
func Load() (*Config, []string, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(Prefix, ".", envKey), nil); err != nil {
		return nil, nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Hosting platforms set PORT directly.
	if port := os.Getenv("PORT"); port != "" && !k.Exists("server.port") {
		cfg.Server.Port = port
	}

	warnings := cfg.applyDevDefaults()

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, warnings, fmt.Errorf("validate config: %w", err)
	}
	return cfg, warnings, nil
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == EnvProduction
}

func (c *Config) applyDevDefaults() []string {
	if c.IsProduction() {
		return nil
	}
	var warnings []string
	if c.Admin.Email == "" {
		c.Admin.Email = devAdminEmail
		warnings = append(warnings, "using default admin email; set PORTFOLIO_ADMIN__EMAIL")
	}
	if c.Admin.Password == "" {
		c.Admin.Password = devAdminPassword
		warnings = append(warnings, "using default admin password; set PORTFOLIO_ADMIN__PASSWORD")
	}
	if c.Admin.SessionSecret == "" {
		c.Admin.SessionSecret = devSessionSecret
		warnings = append(warnings, "using default session secret; set PORTFOLIO_ADMIN__SESSION_SECRET")
	}
	return warnings
}

// envKey maps PORTFOLIO_SERVER__READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	s = strings.TrimPrefix(s, Prefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}
