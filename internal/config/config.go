// Package config loads the process configuration once at startup.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, e.g. CLUB_ADDR.
const Prefix = "club"

// EnvProduction enables strict secrets and hides internal error messages.
const EnvProduction = "production"

// Config is immutable after Load and passed by value.
type Config struct {
	Env      string `envconfig:"ENV" default:"development"`
	Addr     string `envconfig:"ADDR" default:":5000"`
	DBPath   string `envconfig:"DB_PATH" default:"club.db"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	JWTSecret  string        `envconfig:"JWT_SECRET"`
	TokenTTL   time.Duration `envconfig:"TOKEN_TTL" default:"168h"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"10"`

	SuperAdminEmail    string `envconfig:"SUPER_ADMIN_EMAIL" default:"superadmin@aiclub.local"`
	SuperAdminPassword string `envconfig:"SUPER_ADMIN_PASSWORD"`
	SuperAdminName     string `envconfig:"SUPER_ADMIN_NAME" default:"Super Admin"`

	CSRFKey            string `envconfig:"CSRF_KEY"`
	RateLimitPerSecond int    `envconfig:"RATE_LIMIT_PER_SECOND" default:"10"`
	SlowQueryMs        int    `envconfig:"SLOW_QUERY_MS" default:"50"`
	SlowRequestMs      int    `envconfig:"SLOW_REQUEST_MS" default:"200"`

	ResendKey      string        `envconfig:"RESEND_KEY"`
	EmailFrom      string        `envconfig:"EMAIL_FROM" default:"AI Club <noreply@aiclub.local>"`
	ReplyTo        string        `envconfig:"REPLY_TO"`
	OutboxInterval time.Duration `envconfig:"OUTBOX_INTERVAL" default:"1m"`
}

// IsProduction reports whether strict production rules apply.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// CSRFKeyBytes decodes CSRFKey. In development an empty key yields a random one.
func (c Config) CSRFKeyBytes() ([]byte, error) {
	if c.CSRFKey == "" {
		return randomBytes(32)
	}
	key, err := hex.DecodeString(c.CSRFKey)
	if err != nil {
		return nil, fmt.Errorf("CLUB_CSRF_KEY must be hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("CLUB_CSRF_KEY must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

// SlogLevel maps LogLevel onto slog, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Load reads an optional .env file, then the CLUB_* environment.
// PRE: none
// POST: returns a validated Config; development gets generated secrets
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv processes the environment without touching .env files.
func FromEnv() (Config, error) {
	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := c.finalize(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// finalize validates c and fills development-only secrets.
func (c *Config) finalize() error {
	c.SuperAdminEmail = strings.ToLower(strings.TrimSpace(c.SuperAdminEmail))
	if c.SuperAdminEmail == "" {
		return errors.New("CLUB_SUPER_ADMIN_EMAIL is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("CLUB_TOKEN_TTL must be positive")
	}
	if c.RateLimitPerSecond <= 0 {
		return errors.New("CLUB_RATE_LIMIT_PER_SECOND must be positive")
	}
	if c.OutboxInterval <= 0 {
		return errors.New("CLUB_OUTBOX_INTERVAL must be positive")
	}

	if c.IsProduction() {
		if c.JWTSecret == "" {
			return errors.New("CLUB_JWT_SECRET is required in production")
		}
		if c.CSRFKey == "" {
			return errors.New("CLUB_CSRF_KEY is required in production")
		}
		if c.SuperAdminPassword == "" {
			return errors.New("CLUB_SUPER_ADMIN_PASSWORD is required in production")
		}
	}
	if _, err := c.CSRFKeyBytes(); c.CSRFKey != "" && err != nil {
		return err
	}

	if c.JWTSecret == "" {
		secret, err := randomBytes(32)
		if err != nil {
			return err
		}
		c.JWTSecret = hex.EncodeToString(secret)
		slog.Warn("config_generated_jwt_secret", "note", "tokens will not survive a restart")
	}
	if c.SuperAdminPassword == "" {
		c.SuperAdminPassword = "admin123"
		slog.Warn("config_default_super_admin_password", "email", c.SuperAdminEmail)
	}
	if c.ReplyTo == "" {
		c.ReplyTo = c.SuperAdminEmail
	}
	return nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generate random key: %w", err)
	}
	return b, nil
}
