package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/wkantaros/poker-ftb/internal/table"
)

// Config is the complete server configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Tables []TableConfig  `hcl:"table,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address        string `hcl:"address,optional"`
	Port           int    `hcl:"port,optional"`
	LogLevel       string `hcl:"log_level,optional"`
	ActionTimeout  int    `hcl:"action_timeout,optional"`  // seconds until an actor is folded
	HandDelay      int    `hcl:"hand_delay,optional"`      // seconds between hands
	AllowOpenTable bool   `hcl:"allow_open_table,optional"` // accept POST /tables
}

// TableConfig defines one table opened at startup.
type TableConfig struct {
	Name          string `hcl:"name,label"`
	SmallBlind    int    `hcl:"small_blind"`
	BigBlind      int    `hcl:"big_blind"`
	MinPlayers    int    `hcl:"min_players,optional"`
	MaxPlayers    int    `hcl:"max_players,optional"`
	BuyInMin      int    `hcl:"buy_in_min,optional"`
	BuyInMax      int    `hcl:"buy_in_max,optional"`
	StraddleLimit int    `hcl:"straddle_limit,optional"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:        "localhost",
			Port:           8080,
			LogLevel:       "info",
			ActionTimeout:  30,
			HandDelay:      5,
			AllowOpenTable: true,
		},
		Tables: []TableConfig{
			{
				Name:       "main",
				SmallBlind: 1,
				BigBlind:   2,
				MinPlayers: 2,
				MaxPlayers: 6,
				BuyInMin:   100,
				BuyInMax:   1000,
			},
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields
// the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Server.ActionTimeout == 0 {
		config.Server.ActionTimeout = 30
	}
	if config.Server.HandDelay == 0 {
		config.Server.HandDelay = 5
	}

	for i := range config.Tables {
		applyTableDefaults(&config.Tables[i])
	}
	return &config, nil
}

func applyTableDefaults(t *TableConfig) {
	if t.MinPlayers == 0 {
		t.MinPlayers = 2
	}
	if t.MaxPlayers == 0 {
		t.MaxPlayers = 6
	}
	if t.BuyInMin == 0 {
		t.BuyInMin = t.BigBlind * 50
	}
	if t.BuyInMax == 0 {
		t.BuyInMax = t.BigBlind * 500
	}
}

// Validate checks the configuration for mistakes a typo could produce.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.ActionTimeout < 1 {
		return fmt.Errorf("action timeout must be positive, got %d", c.Server.ActionTimeout)
	}

	for _, t := range c.Tables {
		if t.SmallBlind <= 0 {
			return fmt.Errorf("table %s: small blind must be positive", t.Name)
		}
		if t.BigBlind <= t.SmallBlind {
			return fmt.Errorf("table %s: big blind must be greater than small blind", t.Name)
		}
		if t.BuyInMin >= t.BuyInMax {
			return fmt.Errorf("table %s: buy-in minimum must be less than maximum", t.Name)
		}
		if t.StraddleLimit < -1 {
			return fmt.Errorf("table %s: straddle limit must be -1, 0 or positive", t.Name)
		}
	}
	return nil
}

// Addr returns the host:port the server binds.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// ActionTimeout returns the per-turn deadline as a duration.
func (c *Config) ActionTimeout() time.Duration {
	return time.Duration(c.Server.ActionTimeout) * time.Second
}

// HandDelay returns the inter-hand pause as a duration.
func (c *Config) HandDelay() time.Duration {
	return time.Duration(c.Server.HandDelay) * time.Second
}

// TableSettings converts a table block to the engine's configuration.
func (t TableConfig) TableSettings() table.Config {
	return table.Config{
		SmallBlind:    t.SmallBlind,
		BigBlind:      t.BigBlind,
		MinPlayers:    t.MinPlayers,
		MaxPlayers:    t.MaxPlayers,
		MinBuyIn:      t.BuyInMin,
		MaxBuyIn:      t.BuyInMax,
		StraddleLimit: t.StraddleLimit,
	}
}
