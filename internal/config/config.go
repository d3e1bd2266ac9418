// Package config loads the engine configuration: logging setup, game rule
// knobs, and the card data location. Values come from defaults overridden by
// an optional YAML file.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the full configuration tree.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
	Data    DataConfig    `mapstructure:"data"`
}

// LoggingConfig controls the zap logger construction.
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Encoding    string `mapstructure:"encoding"`
	Development bool   `mapstructure:"development"`
}

// GameConfig carries the rule knobs.
type GameConfig struct {
	MarketSize int `mapstructure:"market_size"`
	MaxActions int `mapstructure:"max_actions"`
}

// DataConfig locates the static card data.
type DataConfig struct {
	// Dir holds the per-kind card database JSON files and the roster.
	Dir string `mapstructure:"dir"`
	// DeckFile is the YAML deck composition file.
	DeckFile string `mapstructure:"deck_file"`
}

// Load reads configuration from the given file over the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.encoding", "console")
	v.SetDefault("logging.development", false)
	v.SetDefault("game.market_size", 4)
	v.SetDefault("game.max_actions", 2)
	v.SetDefault("data.dir", "data/cards")
	v.SetDefault("data.deck_file", "data/decks.yaml")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
