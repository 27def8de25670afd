// Package config loads the token from the environment and optional settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
)

const (
	// TokenEnv holds the GitHub token. It is required.
	TokenEnv = "GITHUB_TOKEN"
	// APIURLEnv overrides api_url from the config file.
	APIURLEnv = "GITHUB_API_URL"

	maxPageSize = 100
)

var validSorts = map[string]bool{"": true, "created": true, "updated": true, "pushed": true, "full_name": true}

// Config represents the github-repo-cleaner configuration
type Config struct {
	Token string `yaml:"-"`

	APIURL   string   `yaml:"api_url"`
	PageSize int      `yaml:"page_size"`
	Sort     string   `yaml:"sort"`
	ListUser string   `yaml:"list_user"`
	Targets  []string `yaml:"targets"`
}

// Load reads .env (if present), the config file at path (if present) and the environment.
// An empty path means the default location.
func Load(path string) (*Config, error) {
	// .env is optional and never overrides variables that are already set
	_ = godotenv.Load()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	if v := os.Getenv(APIURLEnv); v != "" {
		cfg.APIURL = v
	}
	cfg.Token = os.Getenv(TokenEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads the YAML file at path. A missing file yields defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{PageSize: maxPageSize, Sort: "updated"}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &domain.ConfigError{Field: path, Msg: fmt.Sprintf("failed to parse config file: %v", err)}
	}
	return cfg, nil
}

// DefaultPath returns the default configuration file path
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".github-repo-cleaner", "config.yaml"), nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Token == "" {
		return &domain.ConfigError{Field: TokenEnv, Msg: "environment variable is not set (e.g. export GITHUB_TOKEN='your_token_here')"}
	}
	if c.PageSize < 1 || c.PageSize > maxPageSize {
		return &domain.ConfigError{Field: "page_size", Msg: fmt.Sprintf("must be between 1 and %d, got %d", maxPageSize, c.PageSize)}
	}
	if !validSorts[c.Sort] {
		return &domain.ConfigError{Field: "sort", Msg: fmt.Sprintf("unsupported value %q", c.Sort)}
	}
	for _, t := range c.Targets {
		if _, _, err := domain.SplitFullName(t); err != nil {
			return &domain.ConfigError{Field: "targets", Msg: err.Error()}
		}
	}
	return nil
}
