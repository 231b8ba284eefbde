// Package config handles configuration management using Viper
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the seat engine's tunable configuration: key repeat
// timing, scroll thresholds, pointer constraint behavior, and device
// overrides, which an embedding compositor may want to override without
// a rebuild.
type Config struct {
	Repeat RepeatConfig `mapstructure:"repeat"`
	Scroll ScrollConfig `mapstructure:"scroll"`
	Constraint ConstraintConfig `mapstructure:"constraint"`
	Devices DevicesConfig `mapstructure:"devices"`
}

// RepeatConfig controls the key-repeat timer (C8).
type RepeatConfig struct {
	Enabled bool `mapstructure:"enabled"`
	DelayMS int `mapstructure:"delay_ms"`
	IntervalMS int `mapstructure:"interval_ms"`
}

// ScrollConfig controls the continuous-to-discrete scroll accumulator (C13).
type ScrollConfig struct {
	DiscreteStep float64 `mapstructure:"discrete_step"`
}

// ConstraintConfig controls edge barriers and pointer-constraint hysteresis
// (C5/C6).
type ConstraintConfig struct {
	EdgeThresholdPX float64 `mapstructure:"edge_threshold_px"`
	HysteresisPX float64 `mapstructure:"hysteresis_px"`
	GrabTimeoutMS int `mapstructure:"grab_timeout_ms"`
}

// DevicesConfig controls which physical devices the event source ignores.
type DevicesConfig struct {
	ExcludeNamePatterns []string `mapstructure:"exclude_name_patterns"`
}

var (
	// DefaultConfig holds the engine's bit-exact default constants so a
	// seat behaves identically with or without a config file present.
	DefaultConfig = Config{
		Repeat: RepeatConfig{
			Enabled: true,
			DelayMS: 250,
			IntervalMS: 33,
		},
		Scroll: ScrollConfig{
			DiscreteStep: 10.0,
		},
		Constraint: ConstraintConfig{
			EdgeThresholdPX: 1.0,
			HysteresisPX: 4.0,
			GrabTimeoutMS: 2000,
		},
		Devices: DevicesConfig{
			ExcludeNamePatterns: []string{"Virtual", "seatengine virtual"},
		},
	}

	cfg *Config
)

// Init initializes the configuration system, reading seatengine.toml from
// /etc/seatengine, the user's config dir, or the current directory (in
// that order of precedence), falling back to DefaultConfig for anything
// unset.
func Init() error {
	viper.SetConfigName("seatengine")
	viper.SetConfigType("toml")

	viper.AddConfigPath("/etc/seatengine")
	if home := os.Getenv("HOME"); home != "" {
		viper.AddConfigPath(filepath.Join(home, ".config", "seatengine"))
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("SEATENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("repeat", DefaultConfig.Repeat)
	viper.SetDefault("scroll", DefaultConfig.Scroll)
	viper.SetDefault("constraint", DefaultConfig.Constraint)
	viper.SetDefault("devices", DefaultConfig.Devices)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return nil
}

// Get returns the current configuration, or DefaultConfig if Init was
// never called (e.g. in unit tests exercising a package directly).
func Get() *Config {
	if cfg == nil {
		return &DefaultConfig
	}
	return cfg
}

// Save persists the current configuration to GetConfigPath().
func Save() error {
	configPath := GetConfigPath()
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		if os.IsPermission(err) && strings.Contains(configPath, "/etc/") {
			return fmt.Errorf("failed to create config directory %s: permission denied. Try running with sudo", dir)
		}
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetConfigPath returns the path to the config file in use, or the
// default write location if none has been loaded yet.
func GetConfigPath() string {
	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}
	if os.Getuid() == 0 {
		return "/etc/seatengine/seatengine.toml"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "/etc/seatengine/seatengine.toml"
	}
	return filepath.Join(home, ".config", "seatengine", "seatengine.toml")
}

// ExcludeDevice reports whether name matches one of the configured
// exclude patterns (simple substring match, mirroring the original
// device-name filtering in all_devices_capture.go).
func ExcludeDevice(name string) bool {
	for _, pattern := range Get().Devices.ExcludeNamePatterns {
		if pattern != "" && strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}
