package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL = "http://localhost:8080/api/v1"

	defaultRequestTimeout = 15 * time.Second
)

type Config struct {
	// BaseURL is the root of the medtrack REST API.
	BaseURL string
	// RequestTimeout bounds every network call made by the client.
	RequestTimeout time.Duration
	// HomeDir holds the token file, the offline cache and the log file.
	HomeDir   string
	TokenPath string
	CachePath string
	LogPath   string
}

// fileConfig is the on-disk shape of ~/.medtrack/config.yaml. Every field is
// optional; absent fields keep their defaults.
type fileConfig struct {
	BaseURL        string `yaml:"base_url"`
	RequestTimeout string `yaml:"request_timeout"`
}

// Load builds a Config rooted at homeDir, applying config.yaml overrides if
// the file exists. An empty homeDir resolves to ~/.medtrack.
func Load(homeDir string) (Config, error) {
	if homeDir == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		homeDir = filepath.Join(userHome, ".medtrack")
	}

	cfg := Config{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: defaultRequestTimeout,
		HomeDir:        homeDir,
		TokenPath:      filepath.Join(homeDir, "token.json"),
		CachePath:      filepath.Join(homeDir, "cache.db"),
		LogPath:        filepath.Join(homeDir, "medtrack.log"),
	}

	payload, err := os.ReadFile(filepath.Join(homeDir, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("request_timeout must be positive")
		}
		cfg.RequestTimeout = d
	}
	return cfg, nil
}
