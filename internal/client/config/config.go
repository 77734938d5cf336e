package config

import (
	"os"
	"time"
)

// RoleHome is one entry of the role priority list.
type RoleHome struct {
	Role string `json:"role"`
	Path string `json:"path"`
}

// Config holds runtime settings for the clinicdesk CLI.
type Config struct {
	APIBaseURL          string
	StoragePath         string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	LogLevel            string
	// RolePriority empty means the built-in order.
	RolePriority []RoleHome
}

// LoadDefaults populates c with defaults suitable for a local API.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://localhost:7215/api"
	c.StoragePath = "clinicdesk.db"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 10 * time.Second
	c.LogLevel = "warn"
	c.RolePriority = nil
}

// LoadConfig constructs a Config from defaults, then the JSON file (if
// any), then flags. Later sources take precedence.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
