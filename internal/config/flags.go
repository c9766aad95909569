package config

import (
	"strings"

	"github.com/spf13/pflag"
)

// RegisterFlags adds one flag per configuration key to fs, e.g.
// --database-dsn. Defaults shown in help come from LoadDefaults.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	for _, s := range d.settings() {
		name := flagName(s.key)
		if fs.Lookup(name) != nil {
			continue
		}
		if s.i64 != nil {
			fs.Int64(name, *s.i64, s.usage)
			continue
		}
		fs.String(name, *s.str, s.usage)
	}
}

// applyFlags copies the flags the user actually set on top of c.
func applyFlags(c *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	for _, s := range c.settings() {
		name := flagName(s.key)
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			continue
		}
		if s.i64 != nil {
			v, err := fs.GetInt64(name)
			if err != nil {
				return err
			}
			*s.i64 = v
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*s.str = v
	}
	return nil
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
