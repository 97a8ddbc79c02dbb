package memstore

import (
	"fmt"
	"os"
)

// Config selects the record store backend.
type Config struct {
	Backend string `toml:"backend"`
}

// ConfigEnv maps config fields to environment variable names for
// override injection.
type ConfigEnv struct {
	Backend string
}

// Finalize applies defaults, environment variable overrides, and
// validation.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
}

func (c *Config) loadDefaults() {
	if c.Backend == "" {
		c.Backend = "postgres"
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	if env.Backend != "" {
		if v := os.Getenv(env.Backend); v != "" {
			c.Backend = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Backend {
	case "postgres", "memory":
		return nil
	default:
		return fmt.Errorf("backend must be postgres or memory, got %q", c.Backend)
	}
}
