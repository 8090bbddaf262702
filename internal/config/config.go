// Package config manages Ascend configuration and the data directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Data     DataConfig     `toml:"data"`
	Calendar CalendarConfig `toml:"calendar"`
	Shop     ShopConfig     `toml:"shop"`
}

// DataConfig controls where state lives on disk.
type DataConfig struct {
	Dir string `toml:"dir"`
}

// CalendarConfig controls day-boundary arithmetic. Streaks, daily
// resets, and penalty sweeps all interpret "today" in this timezone.
type CalendarConfig struct {
	Timezone string `toml:"timezone"`
}

// ShopConfig controls reward shop behavior.
type ShopConfig struct {
	SeedDefaults bool `toml:"seed_defaults"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Data: DataConfig{
			Dir: filepath.Join(ascendHome(), "data"),
		},
		Calendar: CalendarConfig{
			Timezone: "Local",
		},
		Shop: ShopConfig{
			SeedDefaults: true,
		},
	}
}

// LoadConfig reads config from $ASCEND_HOME/config.toml, falling back
// to defaults. A .env file in the working directory is honored for
// ASCEND_HOME before the path is resolved.
func LoadConfig() (Config, error) {
	_ = godotenv.Load() // optional, missing .env is fine

	cfg := DefaultConfig()
	path := filepath.Join(ascendHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the config to $ASCEND_HOME/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(ascendHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// Location resolves the configured calendar timezone.
func (c Config) Location() (*time.Location, error) {
	tz := c.Calendar.Timezone
	if tz == "" || tz == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar timezone %q: %w", tz, err)
	}
	return loc, nil
}

// ascendHome returns the Ascend data directory.
func ascendHome() string {
	if env := os.Getenv("ASCEND_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ascend")
}

// AscendHome is exported for use by other packages.
func AscendHome() string {
	return ascendHome()
}
