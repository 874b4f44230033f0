// Package config reads the server settings from the environment.
package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable name.
const Prefix = "SITE_"

var validate = validator.New(validator.WithRequiredStructEnabled())

type Config struct {
	Addr     string `env:"ADDR" envDefault:":8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	GinMode  string `env:"GIN_MODE" envDefault:"release" validate:"oneof=debug release test"`

	// SessionSecret signs the session cookie. A random secret is used when
	// empty, so sessions do not survive a restart.
	SessionSecret string `env:"SESSION_SECRET" validate:"omitempty,min=16"`

	AssetsDir         string        `env:"ASSETS_DIR" envDefault:"./assets" validate:"required"`
	AssetScanInterval time.Duration `env:"ASSET_SCAN_INTERVAL" envDefault:"1h" validate:"gt=0"`

	SlideInterval time.Duration `env:"SLIDE_INTERVAL" envDefault:"6s" validate:"gt=0"`
	MaxViewers    int           `env:"MAX_VIEWERS" envDefault:"1000" validate:"gte=0"`
	ContactDelay  time.Duration `env:"CONTACT_DELAY" envDefault:"1500ms" validate:"gte=0"`

	S3Bucket       string        `env:"S3_BUCKET"`
	AWSProfile     string        `env:"AWS_PROFILE"`
	S3SyncInterval time.Duration `env:"S3_SYNC_INTERVAL" envDefault:"1h" validate:"gt=0"`
}

// Load reads the given dotenv files, or .env when none are named, and then
// parses the environment. Missing files are skipped. Variables already set
// in the environment win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("no env file found", "path", f)
				continue
			}
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse(nil)
}

// Parse reads the configuration from environment, or from the process
// environment when it is nil.
func Parse(environment map[string]string) (Config, error) {
	opts := env.Options{Prefix: Prefix}
	if environment != nil {
		opts.Environment = environment
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SlogLevel converts LogLevel.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// SessionKey returns the key for the session cookie store.
func (c Config) SessionKey() ([]byte, error) {
	if c.SessionSecret != "" {
		return []byte(c.SessionSecret), nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate session key: %w", err)
	}
	slog.Warn("no session secret configured, using a random key", "variable", Prefix+"SESSION_SECRET")
	return key, nil
}

// RemoteSyncEnabled reports whether images are mirrored from S3.
func (c Config) RemoteSyncEnabled() bool {
	return c.S3Bucket != ""
}
