package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/affiliate/internal/flagx"
)

// parseJSON overlays cfg with the JSON file named by -c/-config. Keys that
// are absent from the file keep their current value.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}
