package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into cfg, which must be a pointer to a
// struct using `env` and `envDefault` tags:
//
//	type Config struct {
//	    Port     int    `env:"HTTP_PORT" envDefault:"8080"`
//	    LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
// Slice fields are split on envSeparator. Values are trimmed of surrounding
// whitespace before conversion.
func Load(cfg any) error {
	if err := env.ParseWithOptions(cfg, env.Options{
		FuncMap: trimmedParsers(),
	}); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
