// Package config loads nodalfs's static configuration: mount point, the
// embedded store's database path, logging, and the metrics listener.
// Configuration sources are layered the way the rest of the ecosystem
// layers them: CLI flags highest, then environment variables, then a
// config file, then built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config is the top-level configuration for a single mount.
type Config struct {
	// Mount configures the mount point and the VFS gateway's connection
	// to this core.
	Mount MountConfig `mapstructure:"mount" yaml:"mount"`

	// Store configures the embedded ordered key-value store backing the
	// object model.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Metrics contains Prometheus metrics server configuration.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// MountConfig configures the mount point the gateway attaches to.
type MountConfig struct {
	// Path is the mount point directory.
	Path string `mapstructure:"path" yaml:"path"`

	// AllowOther permits non-owner access to the mount, mirroring the
	// gateway's allow_other mount option.
	AllowOther bool `mapstructure:"allow_other" yaml:"allow_other"`
}

// StoreConfig configures the embedded KV store.
type StoreConfig struct {
	// DataDir is the directory holding the store's on-disk files.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output: DEBUG, INFO, WARN, ERROR.
	Level string `mapstructure:"level" yaml:"level"`

	// Format specifies the log output format: text or json.
	Format string `mapstructure:"format" yaml:"format"`

	// Output specifies where logs are written: stdout, stderr, or a file
	// path.
	Output string `mapstructure:"output" yaml:"output"`
}

// MetricsConfig controls the Prometheus metrics listener.
type MetricsConfig struct {
	// Enabled turns the metrics HTTP listener on.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Address is the listen address, e.g. ":9100".
	Address string `mapstructure:"address" yaml:"address"`
}

// GetDefaultConfig returns a Config with every field set to its built-in
// default.
func GetDefaultConfig() *Config {
	return &Config{
		Mount: MountConfig{
			Path:       "/mnt/nodalfs",
			AllowOther: false,
		},
		Store: StoreConfig{
			DataDir: "./nodalfs.db",
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
			Output: "stdout",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Address: ":9100",
		},
	}
}

// Load reads configuration from built-in defaults, a config file, and
// environment variables, in that ascending order of precedence. An empty configPath
// searches the default location; a missing config file is not an error,
// since every field has a default, and NODALFS_* environment variables
// still apply on top of those defaults either way.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if _, err := readConfigFile(v); err != nil {
		return nil, err
	}

	cfg := GetDefaultConfig()
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("NODALFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	registerDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.AddConfigPath(defaultConfigDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

// registerDefaults seeds viper with every field's default under its
// mapstructure key, so AutomaticEnv has a key set to intercept NODALFS_*
// overrides against even when no config file is present on disk.
func registerDefaults(v *viper.Viper) {
	defaults := GetDefaultConfig()
	v.SetDefault("mount.path", defaults.Mount.Path)
	v.SetDefault("mount.allow_other", defaults.Mount.AllowOther)
	v.SetDefault("store.data_dir", defaults.Store.DataDir)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.output", defaults.Logging.Output)
	v.SetDefault("metrics.enabled", defaults.Metrics.Enabled)
	v.SetDefault("metrics.address", defaults.Metrics.Address)
}

func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

func defaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nodalfs")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "nodalfs")
}
