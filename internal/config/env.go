package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays config with FACTKEEPER_* environment variables. Unset
// variables keep the value from the earlier layers.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}
}
