package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/credform/internal/qualification"
)

// Config holds runtime configuration for credform.
type Config struct {
	// WebhookURL receives submitted forms as JSON. Empty means submissions
	// are printed to stdout instead.
	WebhookURL string

	// WebhookTimeout bounds a single submission request. Default: 10s.
	WebhookTimeout time.Duration

	// MinYear is the oldest selectable passing year. Default: 1990. It may
	// not be later than the current year.
	MinYear int

	// MaxUploadBytes is the largest accepted attachment. It can only lower
	// the 2 MiB default.
	MaxUploadBytes int64

	// LogFile receives diagnostic logs. Empty discards them while the
	// form is on screen.
	LogFile string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		WebhookTimeout: 10 * time.Second,
		MinYear:        qualification.DefaultMinYear,
		MaxUploadBytes: qualification.DefaultMaxDocumentSize,
	}
}

// Load reads envFile (default ".env") into the environment if it exists,
// then builds a Config from the environment. Variables already set in the
// environment win over the file.
func Load(envFile string) (Config, error) {
	explicit := envFile != ""
	if !explicit {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg, err := ConfigFromEnv()
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if u := os.Getenv("CREDFORM_WEBHOOK_URL"); u != "" {
		cfg.WebhookURL = u
	}
	if t := os.Getenv("CREDFORM_WEBHOOK_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return Config{}, fmt.Errorf("CREDFORM_WEBHOOK_TIMEOUT: %w", err)
		}
		cfg.WebhookTimeout = d
	}
	if y := os.Getenv("CREDFORM_MIN_YEAR"); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil {
			return Config{}, fmt.Errorf("CREDFORM_MIN_YEAR: %w", err)
		}
		cfg.MinYear = n
	}
	if b := os.Getenv("CREDFORM_MAX_UPLOAD_BYTES"); b != "" {
		n, err := strconv.ParseInt(b, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("CREDFORM_MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.MaxUploadBytes = n
	}
	if f := os.Getenv("CREDFORM_LOG_FILE"); f != "" {
		cfg.LogFile = f
	}

	return cfg, nil
}

// Validate checks the configuration for values the form cannot work with.
func (c Config) Validate() error {
	if c.WebhookURL != "" {
		u, err := url.Parse(c.WebhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("CREDFORM_WEBHOOK_URL must be an http(s) URL, got %q", c.WebhookURL)
		}
	}
	if c.WebhookTimeout <= 0 {
		return fmt.Errorf("webhook timeout must be positive, got %s", c.WebhookTimeout)
	}
	if c.MinYear < 1900 || c.MinYear > time.Now().Year() {
		return fmt.Errorf("minimum passing year %d is out of range", c.MinYear)
	}
	if c.MaxUploadBytes <= 0 || c.MaxUploadBytes > qualification.DefaultMaxDocumentSize {
		return fmt.Errorf("maximum upload size must be between 1 and %d bytes, got %d",
			qualification.DefaultMaxDocumentSize, c.MaxUploadBytes)
	}
	return nil
}

// HasWebhook reports whether submissions go to a webhook.
func (c Config) HasWebhook() bool {
	return c.WebhookURL != ""
}

// Options returns the form options for the given moment.
func (c Config) Options(now time.Time) qualification.Options {
	opts := qualification.DefaultOptions(now)
	opts.Years = qualification.YearRange(now.Year(), c.MinYear)
	opts.MaxDocumentSize = c.MaxUploadBytes
	return opts
}
