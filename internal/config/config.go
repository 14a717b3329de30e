// Package config provides configuration management for tracksync.
// It supports YAML configuration files, environment variables, and sensible
// defaults.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"tracksync/internal/model"
)

// defaultPriority is used for enabled providers without an explicit
// priority value, placing them after every explicitly ranked provider.
const defaultPriority = 999

// Config represents the complete tracksync configuration.
type Config struct {
	// HomeTimezone is the user's display time zone. Correlation always
	// uses a fixed reference zone regardless of this setting.
	HomeTimezone string `yaml:"home_timezone"`

	// Debug enables debug logging by default.
	Debug bool `yaml:"debug"`

	// Providers configures each fitness data provider.
	Providers map[model.Provider]ProviderConfig `yaml:"providers"`
}

// ProviderConfig holds the per-provider reconciliation settings.
type ProviderConfig struct {
	// Enabled includes the provider in pulls, authority resolution,
	// and diff scanning.
	Enabled bool `yaml:"enabled"`

	// Priority ranks the provider for authority resolution; lower is
	// more authoritative. 0 means unset and is treated as 999.
	Priority int `yaml:"priority,omitempty"`

	// SyncName enables name reconciliation for this provider.
	// Unset means enabled.
	SyncName *bool `yaml:"sync_name,omitempty"`

	// SyncEquipment enables equipment reconciliation for this provider.
	// Unset means enabled.
	SyncEquipment *bool `yaml:"sync_equipment,omitempty"`

	// Path is the local data location for directory-backed providers.
	Path string `yaml:"path,omitempty"`
}

// SyncNameEnabled reports whether name sync is on (default true).
func (pc ProviderConfig) SyncNameEnabled() bool {
	return pc.SyncName == nil || *pc.SyncName
}

// SyncEquipmentEnabled reports whether equipment sync is on (default true).
func (pc ProviderConfig) SyncEquipmentEnabled() bool {
	return pc.SyncEquipment == nil || *pc.SyncEquipment
}

// EffectivePriority returns the configured priority, or the default for
// providers ranked implicitly.
func (pc ProviderConfig) EffectivePriority() int {
	if pc.Priority == 0 {
		return defaultPriority
	}
	return pc.Priority
}

// Provider returns the settings for the named provider. Unknown providers
// get the zero config: disabled, default priority, sync flags on.
func (c *Config) Provider(name model.Provider) ProviderConfig {
	return c.Providers[name]
}

// PriorityOrder returns the enabled providers sorted by priority, most
// authoritative first. Ties break on provider name so the ordering is
// deterministic across runs.
func (c *Config) PriorityOrder() []model.Provider {
	var enabled []model.Provider
	for name, pc := range c.Providers {
		if pc.Enabled {
			enabled = append(enabled, name)
		}
	}
	sort.Slice(enabled, func(i, j int) bool {
		pi := c.Providers[enabled[i]].EffectivePriority()
		pj := c.Providers[enabled[j]].EffectivePriority()
		if pi != pj {
			return pi < pj
		}
		return enabled[i] < enabled[j]
	})
	return enabled
}

func boolPtr(b bool) *bool { return &b }

// Default returns the default configuration: every provider present but
// disabled, with the conventional priority ranking spreadsheet (1),
// ridewithgps (2), strava (3).
func Default() *Config {
	return &Config{
		HomeTimezone: "UTC",
		Providers: map[model.Provider]ProviderConfig{
			model.Strava: {
				Priority: 3,
			},
			model.RideWithGPS: {
				Priority: 2,
			},
			model.Garmin: {
				SyncEquipment: boolPtr(false),
			},
			model.Spreadsheet: {
				Priority: 1,
			},
			model.File: {
				SyncName:      boolPtr(false),
				SyncEquipment: boolPtr(false),
			},
			model.StravaJSON: {
				SyncName:      boolPtr(false),
				SyncEquipment: boolPtr(false),
			},
		},
	}
}

// configFileName is the name of the config file.
const configFileName = "config.yaml"

// Dir returns the tracksync configuration directory.
func Dir() string {
	if v := os.Getenv("TRACKSYNC_CONFIG_DIR"); v != "" {
		return v
	}
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "tracksync")
}

// FilePath returns the path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), configFileName)
}

// Load loads the configuration from file, merging with defaults.
// If the config file doesn't exist, returns default configuration.
func Load() (*Config, error) {
	configPath := FilePath()
	// #nosec G304 - configPath is constructed from trusted config directory
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			cfg.applyEnvironment()
			return cfg, nil
		}
		return nil, err
	}
	return parse(data)
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	// #nosec G304 - path is provided by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyEnvironment()
	return cfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	return c.SaveToPath(FilePath())
}

// SaveToPath writes the configuration to a specific path.
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(path, data, 0o644)
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern TRACKSYNC_<KEY>.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("TRACKSYNC_HOME_TIMEZONE"); v != "" {
		c.HomeTimezone = v
	}
	if v := os.Getenv("TRACKSYNC_DEBUG"); v != "" {
		c.Debug = parseBool(v)
	}
	if v := os.Getenv("TRACKSYNC_FILE_PATH"); v != "" {
		pc := c.Providers[model.File]
		pc.Path = v
		c.Providers[model.File] = pc
	}
	if v := os.Getenv("TRACKSYNC_SPREADSHEET_PATH"); v != "" {
		pc := c.Providers[model.Spreadsheet]
		pc.Path = v
		c.Providers[model.Spreadsheet] = pc
	}
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// Exists returns true if a config file exists.
func Exists() bool {
	_, err := os.Stat(FilePath())
	return err == nil
}
