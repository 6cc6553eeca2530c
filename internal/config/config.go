// Package config loads server configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the engine server.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Rules   RulesConfig   `mapstructure:"rules"`
}

// ServerConfig configures the WebSocket demo server.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RulesConfig overrides the standard ruleset parameters.
type RulesConfig struct {
	VictoryThreshold int   `mapstructure:"victory_threshold"`
	MorningDraw      int   `mapstructure:"morning_draw"`
	InitialHand      int   `mapstructure:"initial_hand"`
	ReserveLimit     int   `mapstructure:"reserve_limit"`
	LandmarkLimit    int   `mapstructure:"landmark_limit"`
	Seed             int64 `mapstructure:"seed"`
}

// Load reads configuration from the given path. A missing file is not an
// error: defaults plus environment overrides apply. Environment variables
// use the ALTERED_ prefix, e.g. ALTERED_SERVER_ADDRESS.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ALTERED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("rules.victory_threshold", 7)
	v.SetDefault("rules.morning_draw", 2)
	v.SetDefault("rules.initial_hand", 6)
	v.SetDefault("rules.reserve_limit", 2)
	v.SetDefault("rules.landmark_limit", 3)
	v.SetDefault("rules.seed", 0)
}
