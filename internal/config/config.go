// Package config loads driver configuration from file and
// environment.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete driver configuration.
type Config struct {
	Seed            int64         `mapstructure:"seed"`
	DBPath          string        `mapstructure:"db_path"`
	CatalogPath     string        `mapstructure:"catalog_path"`
	TickInterval    time.Duration `mapstructure:"tick_interval"`
	Speed           float64       `mapstructure:"speed"`
	AutosaveMinutes int64         `mapstructure:"autosave_minutes"`
	LogLevel        string        `mapstructure:"log_level"`
}

// Load reads configuration from an optional file, with environment
// overrides (TRADEWINDS_*) and defaults for everything.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TRADEWINDS")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 42)
	v.SetDefault("db_path", "data/tradewinds.db")
	v.SetDefault("catalog_path", "")
	v.SetDefault("tick_interval", time.Second)
	v.SetDefault("speed", 1.0)
	v.SetDefault("autosave_minutes", 1440)
	v.SetDefault("log_level", "info")
}

func (c *Config) validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.Speed < 0 {
		return fmt.Errorf("speed must be non-negative, got %f", c.Speed)
	}
	if c.AutosaveMinutes <= 0 {
		return fmt.Errorf("autosave_minutes must be positive, got %d", c.AutosaveMinutes)
	}
	return nil
}
