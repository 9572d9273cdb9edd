// Package config loads the application configuration from YAML and
// supplies defaults for anything the file leaves out.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/odvcencio/stax/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultTickRate        = 250 * time.Millisecond
	DefaultFrameRate       = 50 * time.Millisecond
	DefaultProviderURL     = "https://yewtu.be"
	DefaultProviderTimeout = 10 * time.Second
	DefaultMaxResults      = 15
)

// Config is the complete application configuration.
type Config struct {
	// TickRate paces input-side housekeeping (multi-key buffer reset,
	// background-task polling).
	TickRate time.Duration `yaml:"tick_rate"`
	// FrameRate paces render requests.
	FrameRate time.Duration `yaml:"frame_rate"`

	DatabasePath    string `yaml:"database_path"`
	LogDir          string `yaml:"log_dir"`
	KeybindingsPath string `yaml:"keybindings_path"`

	Provider ProviderConfig `yaml:"provider"`
}

// ProviderConfig configures the remote catalog search.
type ProviderConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxResults int           `yaml:"max_results"`
}

// Default returns a configuration with every field at its default.
func Default() *Config {
	dataDir := defaultDataDir()
	return &Config{
		TickRate:     DefaultTickRate,
		FrameRate:    DefaultFrameRate,
		DatabasePath: filepath.Join(dataDir, "stax.db"),
		LogDir:       filepath.Join(dataDir, "logs"),
		Provider: ProviderConfig{
			BaseURL:    DefaultProviderURL,
			Timeout:    DefaultProviderTimeout,
			MaxResults: DefaultMaxResults,
		},
	}
}

// Load reads path and overlays it on the defaults. A missing file is not
// an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.CodeConfigLoad, "read config", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.CodeConfigParse, "parse config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the runtime cannot work with.
func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return errors.New(errors.CodeConfigParse, "tick_rate must be positive")
	}
	if c.FrameRate <= 0 {
		return errors.New(errors.CodeConfigParse, "frame_rate must be positive")
	}
	if c.Provider.Timeout <= 0 {
		return errors.New(errors.CodeConfigParse, "provider.timeout must be positive")
	}
	if c.Provider.MaxResults <= 0 {
		return errors.New(errors.CodeConfigParse, "provider.max_results must be positive")
	}
	return nil
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "stax")
	}
	return ".stax"
}
