package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Tables []TableConfig  `hcl:"table,block"`
	Bots   []BotConfig    `hcl:"bot,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address           string `hcl:"address,optional"`
	Port              int    `hcl:"port,optional"`
	LogLevel          string `hcl:"log_level,optional"`
	ReconnectGraceSec int    `hcl:"reconnect_grace_seconds,optional"`
}

// TableConfig defines one euchre table created at startup
type TableConfig struct {
	Name string `hcl:"name,label"`
	Seed *int64 `hcl:"seed,optional"`
}

// BotConfig defines bots the spawn command seats at tables
type BotConfig struct {
	Name   string   `hcl:"name,label"`
	Tables []string `hcl:"tables,optional"`
	Seat   string   `hcl:"seat,optional"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:           "localhost",
			Port:              8080,
			LogLevel:          "info",
			ReconnectGraceSec: 30,
		},
		Tables: []TableConfig{{Name: "main"}},
	}
}

// LoadConfig loads server configuration from an HCL file, falling back to
// defaults when the file doesn't exist.
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
	if config.Server.ReconnectGraceSec == 0 {
		config.Server.ReconnectGraceSec = 30
	}
	if len(config.Tables) == 0 {
		config.Tables = []TableConfig{{Name: "main"}}
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.ReconnectGraceSec < 0 {
		return fmt.Errorf("reconnect grace must not be negative")
	}

	seen := make(map[string]bool, len(c.Tables))
	for _, table := range c.Tables {
		if table.Name == "" {
			return fmt.Errorf("table name must not be empty")
		}
		if seen[table.Name] {
			return fmt.Errorf("duplicate table %q", table.Name)
		}
		seen[table.Name] = true
	}

	for _, bot := range c.Bots {
		for _, table := range bot.Tables {
			if !seen[table] {
				return fmt.Errorf("bot %s: unknown table %q", bot.Name, table)
			}
		}
	}
	return nil
}

// ListenAddress returns the host:port the server binds to
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// ReconnectGrace returns how long a dropped player's seat stays reserved
func (c *Config) ReconnectGrace() time.Duration {
	return time.Duration(c.Server.ReconnectGraceSec) * time.Second
}
