package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const envPrefix = "DOCQA_"

var (
	loadDotenv = func() error { return godotenv.Load() }
	lookupEnv  = os.LookupEnv
)

// parseEnv loads ./.env into the process environment (existing variables
// win) and then applies DOCQA_* variables.
func parseEnv(c *Config) error {
	if err := loadDotenv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	for _, s := range c.settings() {
		name := envPrefix + strings.ToUpper(s.key)
		v, ok := lookupEnv(name)
		if !ok {
			continue
		}
		if s.i64 != nil {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*s.i64 = n
			continue
		}
		*s.str = v
	}
	return nil
}
