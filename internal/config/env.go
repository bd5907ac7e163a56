// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [ClientConfig] and its nested types; all lookups carry the
// application prefix "CONSOLE_".
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type).
func parseEnv(cfg any) error {
	err := env.ParseWithOptions(cfg, env.Options{Prefix: "CONSOLE_"})
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
