package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	RegistryURL      string   `toml:"registry_url"`
	PerPage          int      `toml:"per_page"`
	RequestTimeout   duration `toml:"request_timeout"`
	ClipboardEnabled bool     `toml:"clipboard_enabled"`
}

// duration wraps time.Duration so it round-trips as a TOML string.
type duration time.Duration

func (d duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// Timeout returns the configured request timeout as a time.Duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout)
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		RegistryURL:      "https://crates.io/api/v1",
		PerPage:          5,
		RequestTimeout:   duration(10 * time.Second),
		ClipboardEnabled: true,
	}
}

// Service handles configuration management
type Service interface {
	Load() (*Config, error)
	Save(cfg *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(cfg *Config, path string) error
}

type service struct {
	filePath string
}

// NewService creates a config service rooted at the user config directory.
func NewService() Service {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	appDir := filepath.Join(configDir, "crateseek")
	os.MkdirAll(appDir, 0755)

	return &service{filePath: filepath.Join(appDir, "config.toml")}
}

// Load loads the configuration, returning defaults when no file exists.
func (s *service) Load() (*Config, error) {
	return s.LoadFromPath(s.filePath)
}

// Save writes the configuration to the default location.
func (s *service) Save(cfg *Config) error {
	return s.SaveToPath(cfg, s.filePath)
}

// LoadFromPath loads the configuration from an explicit path.
func (s *service) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.PerPage <= 0 {
		cfg.PerPage = DefaultConfig().PerPage
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultConfig().RequestTimeout
	}
	return cfg, nil
}

// SaveToPath writes the configuration to an explicit path.
func (s *service) SaveToPath(cfg *Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
