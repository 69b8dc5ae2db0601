package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/handiism/bingpot/internal/bing"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultArchiveURL   = bing.DefaultArchiveURL
	defaultImageBaseURL = bing.DefaultImageBaseURL
	defaultUserAgent    = "bingpot"
	defaultJPEGQuality  = 90
)

// Settings holds all configuration options.
type Settings struct {
	// Endpoints
	ArchiveURL   string `toml:"archive_url"`
	ImageBaseURL string `toml:"image_base_url"`

	// HTTP
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"` // 0 disables the timeout

	// Output encoding
	JPEGQuality int `toml:"jpeg_quality"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		ArchiveURL:     defaultArchiveURL,
		ImageBaseURL:   defaultImageBaseURL,
		UserAgent:      defaultUserAgent,
		TimeoutSeconds: 0,
		JPEGQuality:    defaultJPEGQuality,
	}
}

// Load reads settings from a TOML file.
//
// A missing file is not an error: defaults are returned. Keys absent from
// the file keep their default values.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	resolved, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a TOML file, creating parent directories.
func (s *Settings) Save(path string) error {
	resolved, err := ResolvePath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(resolved, data, 0644)
}

// Validate rejects values that cannot work.
func (s *Settings) Validate() error {
	s.ArchiveURL = strings.TrimSpace(s.ArchiveURL)
	s.ImageBaseURL = strings.TrimSpace(s.ImageBaseURL)
	if s.ArchiveURL == "" {
		s.ArchiveURL = defaultArchiveURL
	}
	if s.ImageBaseURL == "" {
		s.ImageBaseURL = defaultImageBaseURL
	}
	if s.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", s.TimeoutSeconds)
	}
	if s.JPEGQuality < 1 || s.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be between 1 and 100, got %d", s.JPEGQuality)
	}
	return nil
}

// Timeout returns the HTTP timeout; zero means none.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "bingpot.toml"
	}
	return filepath.Join(dir, "bingpot", "config.toml")
}

// ResolvePath maps a --config value to a file path. Empty means
// DefaultPath and a leading "~" is the home directory.
func ResolvePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return DefaultPath(), nil
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return trimmed, nil
}
