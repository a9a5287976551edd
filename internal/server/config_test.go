package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", cfg.Addr())
	require.Len(t, cfg.Tables, 1)
	assert.Equal(t, "main", cfg.Tables[0].Name)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigParsesHCL(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "server.hcl")
	content := `
server {
  address        = "0.0.0.0"
  port           = 9000
  action_timeout = 10
  hand_delay     = 2
}

table "low" {
  small_blind = 1
  big_blind   = 2
}

table "high" {
  small_blind    = 25
  big_blind      = 50
  max_players    = 9
  straddle_limit = -1
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, 10, cfg.Server.ActionTimeout)
	require.Len(t, cfg.Tables, 2)

	low := cfg.Tables[0]
	assert.Equal(t, 6, low.MaxPlayers, "default applied")
	assert.Equal(t, 100, low.BuyInMin, "50 big blinds")
	assert.Equal(t, 1000, low.BuyInMax, "500 big blinds")

	high := cfg.Tables[1]
	assert.Equal(t, 9, high.MaxPlayers)
	assert.Equal(t, -1, high.StraddleLimit)

	settings := high.TableSettings()
	assert.Equal(t, 25, settings.SmallBlind)
	assert.Equal(t, 50, settings.BigBlind)
	assert.Equal(t, -1, settings.StraddleLimit)
}

func TestLoadConfigRejectsBadHCL(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`server { port = `), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	base := func() *Config {
		cfg := DefaultConfig()
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, false},
		{"zero timeout", func(c *Config) { c.Server.ActionTimeout = 0 }, false},
		{"zero small blind", func(c *Config) { c.Tables[0].SmallBlind = 0 }, false},
		{"big blind below small", func(c *Config) { c.Tables[0].BigBlind = 1 }, false},
		{"inverted buy-in", func(c *Config) { c.Tables[0].BuyInMin = 2000 }, false},
		{"bad straddle limit", func(c *Config) { c.Tables[0].StraddleLimit = -2 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
