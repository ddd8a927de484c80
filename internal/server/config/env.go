package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// portEnv carries the PORT shorthand used by most PaaS runtimes.
type portEnv struct {
	Port string `env:"PORT"`
}

// parseEnv overlays SHAREBOX_* environment variables from the env tags on
// Config. Unset or empty variables keep the current value. PORT is honoured
// as a shorthand for ":<port>" when SHAREBOX_ADDR is not set.
func parseEnv(c *Config) error {
	var p portEnv
	if err := env.Parse(&p); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if p.Port != "" {
		c.HTTPAddr = ":" + p.Port
	}

	if err := env.Parse(c); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}
