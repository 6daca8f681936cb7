package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable read by ParseEnv, e.g. SUREUV_BOX_SIZE.
const EnvPrefix = "SUREUV_"

// ParseEnv overrides cfg with values from SUREUV_* environment variables.
// Unset variables leave the current value alone.
func ParseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
