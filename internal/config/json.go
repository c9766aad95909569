package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// parseJSON overlays the keys present in the JSON file at path. Absent
// keys keep their current value; unknown keys are rejected.
func parseJSON(c *Config, path string) error {
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(file, &raw); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	for _, s := range c.settings() {
		v, ok := raw[s.key]
		if !ok {
			continue
		}
		delete(raw, s.key)

		var target any = s.str
		if s.i64 != nil {
			target = s.i64
		}
		if err := json.Unmarshal(v, target); err != nil {
			return fmt.Errorf("config %s: %s: %w", path, s.key, err)
		}
	}

	for k := range raw {
		return fmt.Errorf("config %s: unknown key %q", path, k)
	}
	return nil
}
