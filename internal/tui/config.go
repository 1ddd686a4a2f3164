package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration for TOML string parsing ("5s", "1m").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	return nil
}

// ThemeConfig holds optional color overrides. Empty strings use the
// defaults. Values can be ANSI numbers ("1"), 256-palette numbers
// ("196"), or hex ("#ff0000").
type ThemeConfig struct {
	Fg       string `toml:"fg"`
	FgDim    string `toml:"fg_dim"`
	Border   string `toml:"border"`
	Accent   string `toml:"accent"`
	Healthy  string `toml:"healthy"`
	Warning  string `toml:"warning"`
	Critical string `toml:"critical"`
}

// Config is the dashboard configuration.
type Config struct {
	// Refresh is the interval between overview refreshes.
	Refresh Duration `toml:"refresh"`
	// DockerBin is the docker binary to invoke.
	DockerBin string `toml:"docker_bin"`
	// TopN is the initial size of the usage panel (3, 5 or 10).
	TopN int `toml:"top_n"`
	// Watch enables the engine-event refresh trigger.
	Watch bool `toml:"watch"`

	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`

	Theme ThemeConfig `toml:"theme"`
}

// DefaultConfigPath returns ~/.config/stevedore/config.toml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "stevedore", "config.toml")
}

// LoadConfig reads the config file at path. A missing file is not an
// error: the defaults apply.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Refresh.Duration == 0 {
		cfg.Refresh.Duration = 5 * time.Second
	}
	if cfg.DockerBin == "" {
		cfg.DockerBin = "docker"
	}
	if cfg.TopN == 0 {
		cfg.TopN = 5
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
}

func validate(cfg *Config) error {
	if cfg.Refresh.Duration < time.Second {
		return fmt.Errorf("refresh interval %s is below 1s", cfg.Refresh.Duration)
	}
	switch cfg.TopN {
	case 3, 5, 10:
	default:
		return fmt.Errorf("top_n must be 3, 5 or 10, got %d", cfg.TopN)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	return nil
}
