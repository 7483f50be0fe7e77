package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/realamirrezajoulani/rental-admin-cli/internal/flagx"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. The timeout
// is a Go duration string like "15s"; after parsing, values are copied into
// the runtime Config.
type JSONConfig struct {
	BaseURL     string `json:"base_url"`
	HTTPTimeout string `json:"http_timeout"`
	StateDBPath string `json:"state_db_path"`
}

// parseJSON overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Empty JSON fields leave the current Config value in place. Read and
// unmarshal errors panic; the config layer runs before anything the user
// could lose.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JSONConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.HTTPTimeout != "" {
		d, err := time.ParseDuration(jc.HTTPTimeout)
		if err != nil {
			panic(err)
		}
		cfg.HTTPTimeout = d
	}
	if jc.StateDBPath != "" {
		cfg.StateDBPath = jc.StateDBPath
	}
}
