package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// structValidator validates `validate:` struct tags across the whole Config.
var structValidator = validator.New()

// Validate checks the configuration for invalid or inconsistent values.
//
// Struct tag validation (required, oneof, ranges) runs first, then
// cross-field rules that tags cannot express. Validation never mutates the
// configuration; normalization happens in ApplyDefaults.
func Validate(cfg *Config) error {
	if err := structValidator.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q validation (value: %v)",
					fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(msgs, "\n  - "))
		}
		return err
	}

	// Cross-field rules.
	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry is enabled but no endpoint is configured")
	}
	if cfg.Telemetry.Profiling.Enabled && cfg.Telemetry.Profiling.Endpoint == "" {
		return fmt.Errorf("profiling is enabled but no endpoint is configured")
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Port == 0 {
		return fmt.Errorf("metrics are enabled but no port is configured")
	}
	if cfg.Cache.SweepInterval > cfg.Cache.TTL {
		return fmt.Errorf("cache sweep_interval (%s) must not exceed ttl (%s)",
			cfg.Cache.SweepInterval, cfg.Cache.TTL)
	}

	return nil
}
