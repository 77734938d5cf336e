package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/clinicdesk/internal/flagx"
	"github.com/dmitrijs2005/clinicdesk/internal/timex"
)

// jsonConfig is the file representation. Pointer fields tell "absent"
// apart from "zero" so a partial file only overrides what it names.
type jsonConfig struct {
	APIBaseURL          *string         `json:"api_base_url"`
	StoragePath         *string         `json:"storage_path"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	LogLevel            *string         `json:"log_level"`
	RolePriority        []RoleHome      `json:"role_priority"`
}

// parseJSON overlays cfg with the file named by -c/-config or
// $CLINICDESK_CONFIG. No file configured is not an error.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.StoragePath != nil {
		cfg.StoragePath = *jc.StoragePath
	}
	if jc.RequestTimeout != nil {
		if jc.RequestTimeout.Duration <= 0 {
			return fmt.Errorf("parse config %s: request_timeout must be positive, got %s", path, jc.RequestTimeout.Duration)
		}
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		if jc.OnlineCheckInterval.Duration <= 0 {
			return fmt.Errorf("parse config %s: online_check_interval must be positive, got %s", path, jc.OnlineCheckInterval.Duration)
		}
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if len(jc.RolePriority) > 0 {
		for i, rh := range jc.RolePriority {
			if rh.Role == "" || rh.Path == "" {
				return fmt.Errorf("parse config %s: role_priority[%d] needs role and path", path, i)
			}
		}
		cfg.RolePriority = jc.RolePriority
	}
	return nil
}
