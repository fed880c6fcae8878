// Package config loads stackctl settings from flags, environment variables
// and an optional config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// STACKCTL_PROJECT_DIR.
const EnvPrefix = "STACKCTL"

// Config represents the complete stackctl configuration
type Config struct {
	// ProjectDir is the compose project root. Empty means discover it by
	// walking up from the current directory.
	ProjectDir string `mapstructure:"project_dir"`

	// LogLevel is one of trace, debug, info, warn, error, disabled.
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is "console" or "json".
	LogFormat string `mapstructure:"log_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// flagKeys maps viper keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"project_dir": "project-dir",
	"log_level":   "log-level",
	"log_format":  "log-format",
}

// SetDefaults registers default values with v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("project_dir", defaults.ProjectDir)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
}

// Load builds the configuration. configFile, when non-empty, must exist;
// otherwise .stackctl.yaml is looked up in the current directory and in
// the user config directory, and its absence is not an error. flags may be
// nil.
func Load(flags *pflag.FlagSet, configFile string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".stackctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "stackctl"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log_format %q (valid: console, json)", c.LogFormat)
	}
	return nil
}
