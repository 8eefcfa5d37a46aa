// Package config loads the clipkeep YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	FileName = "config.yaml"

	defaultMaxEntries   = 50
	defaultPollInterval = 500 * time.Millisecond
	defaultPasteDelay   = 100 * time.Millisecond
	minPollInterval     = 50 * time.Millisecond
)

type Config struct {
	// MaxEntries caps the history length.
	MaxEntries int `yaml:"max_entries"`
	// PollInterval and PasteDelay are Go duration strings ("500ms").
	PollInterval string            `yaml:"poll_interval"`
	PasteDelay   string            `yaml:"paste_delay"`
	Logging      LoggingConfig     `yaml:"logging"`
	Templates    map[string]string `yaml:"templates,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
	// File is relative to the data directory unless absolute. "stderr"
	// logs to the terminal.
	File string `yaml:"file"`
}

func Default() *Config {
	return &Config{
		MaxEntries:   defaultMaxEntries,
		PollInterval: defaultPollInterval.String(),
		PasteDelay:   defaultPasteDelay.String(),
		Logging: LoggingConfig{
			Level: "info",
			File:  "clipkeep.log",
		},
		Templates: map[string]string{
			"email-signature": "Best regards,\n",
			"meeting-notes":   "Meeting notes\n\nAttendees:\n\nAgenda:\n\nAction items:\n",
		},
	}
}

// Path returns the config file location inside a data directory.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Load reads a config file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			cfg.validate()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.validate()
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CLIPKEEP_MAX_ENTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxEntries = n
		}
	}
	if v := os.Getenv("CLIPKEEP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// validate replaces unusable values with defaults rather than failing, so a
// hand-edited file never keeps the tool from starting.
func (c *Config) validate() {
	if c.MaxEntries <= 0 {
		c.MaxEntries = defaultMaxEntries
	}
	if d, err := time.ParseDuration(c.PollInterval); err != nil || d < minPollInterval {
		c.PollInterval = defaultPollInterval.String()
	}
	if d, err := time.ParseDuration(c.PasteDelay); err != nil || d < 0 {
		c.PasteDelay = defaultPasteDelay.String()
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Logging.Level = "info"
	}
}

func (c *Config) GetPollInterval() time.Duration {
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil {
		return defaultPollInterval
	}
	return d
}

func (c *Config) GetPasteDelay() time.Duration {
	d, err := time.ParseDuration(c.PasteDelay)
	if err != nil {
		return defaultPasteDelay
	}
	return d
}
