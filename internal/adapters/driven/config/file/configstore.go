package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/conflu-cli/internal/core/domain"
)

// Config holds everything the CLI needs to reach a Confluence site and
// lay out the local mirror.
type Config struct {
	// BaseURL is the site root, e.g. https://example.atlassian.net.
	BaseURL string `toml:"base_url"`
	// Email and APIToken authenticate with basic auth.
	Email    string `toml:"email"`
	APIToken string `toml:"api_token"`
	// BearerToken takes precedence over basic auth when set.
	BearerToken string `toml:"bearer_token"`

	// PagesDir is where page bodies and metadata are cached.
	PagesDir string `toml:"pages_dir"`
	// IndexPath is the page index file. Defaults to index.json inside
	// PagesDir.
	IndexPath string `toml:"index_path"`
	// Spaces are the default space keys for sync and index commands.
	Spaces []string `toml:"spaces"`
}

// DefaultPath returns the default config file location,
// ~/.conflu/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".conflu", "config.toml"), nil
}

// Load reads the TOML config at path and applies environment overrides.
// A missing file is not an error; the environment alone can carry the
// connection settings.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Fall through to env overrides.
	default:
		return nil, err
	}

	applyEnv(cfg)
	cfg.applyDefaults()
	return cfg, nil
}

// applyEnv layers environment variables over file values. Both the
// CONFLUENCE_* names and the older ATLASSIAN_* aliases are honoured,
// with CONFLUENCE_* winning when both are set.
func applyEnv(cfg *Config) {
	for _, name := range []string{"ATLASSIAN_URL", "CONFLUENCE_URL"} {
		if v := os.Getenv(name); v != "" {
			cfg.BaseURL = v
		}
	}
	for _, name := range []string{"ATLASSIAN_EMAIL", "CONFLUENCE_EMAIL"} {
		if v := os.Getenv(name); v != "" {
			cfg.Email = v
		}
	}
	for _, name := range []string{"ATLASSIAN_TOKEN", "CONFLUENCE_TOKEN"} {
		if v := os.Getenv(name); v != "" {
			cfg.APIToken = v
		}
	}
	if v := os.Getenv("CONFLUENCE_BEARER_TOKEN"); v != "" {
		cfg.BearerToken = v
	}
}

func (c *Config) applyDefaults() {
	if c.PagesDir == "" {
		c.PagesDir = "pages"
	}
	if c.IndexPath == "" {
		c.IndexPath = filepath.Join(c.PagesDir, "index.json")
	}
}

// Validate checks that the connection settings are usable. It reports
// domain.ErrNotConfigured so callers can print setup guidance rather
// than a transport failure.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base_url (or CONFLUENCE_URL) is required", domain.ErrNotConfigured)
	}
	if c.BearerToken == "" && (c.Email == "" || c.APIToken == "") {
		return fmt.Errorf("%w: set email and api_token, or a bearer_token", domain.ErrNotConfigured)
	}
	return nil
}
