package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Encoding)
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, 4, cfg.Game.MarketSize)
	assert.Equal(t, 2, cfg.Game.MaxActions)
	assert.Equal(t, "data/cards", cfg.Data.Dir)
	assert.Equal(t, "data/decks.yaml", cfg.Data.DeckFile)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
logging:
  level: debug
  development: true
game:
  market_size: 6
data:
  dir: /tmp/cards
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 6, cfg.Game.MarketSize)
	assert.Equal(t, "/tmp/cards", cfg.Data.Dir)

	// untouched keys keep their defaults
	assert.Equal(t, 2, cfg.Game.MaxActions)
	assert.Equal(t, "data/decks.yaml", cfg.Data.DeckFile)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
