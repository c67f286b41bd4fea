// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const insecureDevSecret = "dev-secret-change-in-production"

// AuthConfig holds authentication and identity provider configuration.
type AuthConfig struct {
	// JWTSecret signs the HS256 session tokens this server mints on login.
	JWTSecret string
	// SessionTTL bounds how long a minted session token is valid.
	SessionTTL time.Duration

	// Optional external IdP: when IssuerURL or JWKSURL is set, bearer tokens
	// from that issuer are also accepted on the API.
	IssuerURL      string
	JWKSURL        string
	Audience       string
	AllowedIssuers []string
}

// OIDCEnabled returns true when an external identity provider is configured.
func (a *AuthConfig) OIDCEnabled() bool {
	return a.IssuerURL != "" || a.JWKSURL != ""
}

// Config holds the configuration for the control plane server.
type Config struct {
	DBPath            string // path to the SQLite database file
	ListenAddr        string // HTTP listen address (default ":8080")
	TLSCertFile       string // TLS certificate file path (optional)
	TLSKeyFile        string // TLS private key file path (optional)
	AllowInsecureHTTP bool   // allow non-TLS listener in production (for trusted TLS termination)
	LogLevel          string // log level: debug, info, warn, error (default "info")
	Env               string // environment: "development" (default) or "production"

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 100)
	RateLimitBurst int     // burst capacity (default 200)

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	// SeedDemoData controls whether demo companies and users are created on
	// first start (default true outside production).
	SeedDemoData bool
	// SeedPassword is the initial password for seeded demo users.
	SeedPassword string

	// SnapshotSchedule is the cron expression for nightly report snapshots.
	SnapshotSchedule string

	// Auth holds token and identity provider configuration.
	Auth AuthConfig

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when the server is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// fileOverlay mirrors the subset of Config settable from an optional YAML
// file. Environment variables take precedence over file values.
type fileOverlay struct {
	DBPath           string   `yaml:"db_path"`
	ListenAddr       string   `yaml:"listen_addr"`
	LogLevel         string   `yaml:"log_level"`
	Env              string   `yaml:"env"`
	SnapshotSchedule string   `yaml:"snapshot_schedule"`
	CORSOrigins      []string `yaml:"cors_allowed_origins"`
}

// LoadFromEnv loads configuration from environment variables, optionally
// overlaid on a YAML file named by CONFIG_FILE.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		DBPath:           os.Getenv("DB_PATH"),
		ListenAddr:       os.Getenv("LISTEN_ADDR"),
		TLSCertFile:      os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:       os.Getenv("TLS_KEY_FILE"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		Env:              os.Getenv("ENV"),
		SeedPassword:     os.Getenv("SEED_PASSWORD"),
		SnapshotSchedule: os.Getenv("SNAPSHOT_SCHEDULE"),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFileOverlay(cfg, path); err != nil {
			return nil, err
		}
	}

	// Rate limiting
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitBurst = n
		}
	}

	// CORS
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = origins
	}
	if strings.EqualFold(os.Getenv("ALLOW_INSECURE_HTTP"), "true") {
		cfg.AllowInsecureHTTP = true
	}

	// Auth config
	cfg.Auth = AuthConfig{
		JWTSecret: os.Getenv("JWT_SECRET"),
		IssuerURL: os.Getenv("AUTH_ISSUER_URL"),
		JWKSURL:   os.Getenv("AUTH_JWKS_URL"),
		Audience:  os.Getenv("AUTH_AUDIENCE"),
	}
	if v := os.Getenv("AUTH_ALLOWED_ISSUERS"); v != "" {
		cfg.Auth.AllowedIssuers = strings.Split(v, ",")
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Auth.SessionTTL = d
		}
	}

	cfg.SeedDemoData = parseBoolEnvDefault("SEED_DEMO_DATA", true)

	// Defaults
	if cfg.DBPath == "" {
		cfg.DBPath = "tiretrack.sqlite"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return nil, fmt.Errorf("both TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = insecureDevSecret
		cfg.Warnings = append(cfg.Warnings, "JWT_SECRET not set — using insecure default. Set JWT_SECRET in production!")
	}
	if cfg.Auth.SessionTTL == 0 {
		cfg.Auth.SessionTTL = 24 * time.Hour
	}
	if cfg.Auth.IssuerURL != "" && cfg.Auth.Audience == "" {
		return nil, fmt.Errorf("AUTH_AUDIENCE is required when AUTH_ISSUER_URL is set")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 100
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 200
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}
	if cfg.SeedPassword == "" {
		cfg.SeedPassword = "123"
		if cfg.SeedDemoData {
			cfg.Warnings = append(cfg.Warnings, "SEED_PASSWORD not set — seeded demo users get the default password")
		}
	}
	if cfg.SnapshotSchedule == "" {
		cfg.SnapshotSchedule = "0 2 * * *"
	}

	// Production mode: insecure defaults are fatal errors.
	if cfg.IsProduction() {
		if cfg.Auth.JWTSecret == insecureDevSecret {
			return nil, fmt.Errorf("JWT_SECRET must be set in production (ENV=production)")
		}
		if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
			return nil, fmt.Errorf("CORS wildcard (*) is not allowed in production (ENV=production)")
		}
		if cfg.TLSCertFile == "" && !cfg.AllowInsecureHTTP {
			return nil, fmt.Errorf("TLS_CERT_FILE/TLS_KEY_FILE must be set in production unless ALLOW_INSECURE_HTTP=true")
		}
		if cfg.SeedDemoData {
			cfg.Warnings = append(cfg.Warnings, "SEED_DEMO_DATA is enabled in production")
		}
	}

	return cfg, nil
}

func applyFileOverlay(cfg *Config, path string) error {
	raw, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var overlay fileOverlay
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	// Env vars win: only fill values the environment left empty.
	if cfg.DBPath == "" {
		cfg.DBPath = overlay.DBPath
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = overlay.ListenAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = overlay.LogLevel
	}
	if cfg.Env == "" {
		cfg.Env = overlay.Env
	}
	if cfg.SnapshotSchedule == "" {
		cfg.SnapshotSchedule = overlay.SnapshotSchedule
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = overlay.CORSOrigins
	}
	return nil
}

func parseBoolEnvDefault(key string, defaultVal bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if v == "" {
		return defaultVal
	}
	if v == "0" || v == "false" || v == "no" || v == "off" {
		return false
	}
	if v == "1" || v == "true" || v == "yes" || v == "on" {
		return true
	}
	return defaultVal
}

// LoadDotEnv reads a .env file and sets any variables not already in the environment.
// Lines must be in KEY=VALUE format. Comments (#) and blank lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = stripQuotes(value)
		// Only set if not already in the environment (env vars take precedence)
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
// Only strips if both the first and last characters are matching quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
