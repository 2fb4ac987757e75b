// Package limits aggregates per-joint and Cartesian motion bounds from the
// robot description and operator-supplied overrides. The result configures
// the trajectory blender and the reference planner.
package limits

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/seqplan/seqplan/pkg/domain"
)

// Override restricts a joint limit from configuration. Nil fields leave the
// base limit untouched. An override may only tighten a bound the robot
// description already declares, never relax it.
type Override struct {
	MaxVelocity     *float64 `yaml:"max_velocity,omitempty"`
	MaxAcceleration *float64 `yaml:"max_acceleration,omitempty"`
	MaxDeceleration *float64 `yaml:"max_deceleration,omitempty"`
}

// Config is the on-disk limits document.
type Config struct {
	Joints    map[string]Override    `yaml:"joints"`
	Cartesian domain.CartesianLimits `yaml:"cartesian"`
}

// Load reads a limits configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading limits file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing limits file %s: %w", path, err)
	}
	return cfg, nil
}

// Aggregate merges base limits from the robot description with overrides.
// Joints named only in the overrides are rejected, as are overrides looser
// than the base bound.
func Aggregate(base map[string]domain.JointLimit, cfg Config) (domain.Limits, error) {
	joints := make(map[string]domain.JointLimit, len(base))
	for name, limit := range base {
		joints[name] = limit
	}

	for name, ov := range cfg.Joints {
		limit, ok := joints[name]
		if !ok {
			return domain.Limits{}, fmt.Errorf("limit override for unknown joint %q", name)
		}
		if ov.MaxVelocity != nil {
			if limit.HasVelocity && *ov.MaxVelocity > limit.MaxVelocity {
				return domain.Limits{}, fmt.Errorf("velocity override for joint %q (%g) exceeds robot description limit (%g)",
					name, *ov.MaxVelocity, limit.MaxVelocity)
			}
			limit.MaxVelocity = *ov.MaxVelocity
			limit.HasVelocity = true
		}
		if ov.MaxAcceleration != nil {
			if limit.HasAcceleration && *ov.MaxAcceleration > limit.MaxAcceleration {
				return domain.Limits{}, fmt.Errorf("acceleration override for joint %q (%g) exceeds robot description limit (%g)",
					name, *ov.MaxAcceleration, limit.MaxAcceleration)
			}
			limit.MaxAcceleration = *ov.MaxAcceleration
			limit.HasAcceleration = true
		}
		if ov.MaxDeceleration != nil {
			if limit.HasDeceleration && *ov.MaxDeceleration > limit.MaxDeceleration {
				return domain.Limits{}, fmt.Errorf("deceleration override for joint %q (%g) exceeds robot description limit (%g)",
					name, *ov.MaxDeceleration, limit.MaxDeceleration)
			}
			limit.MaxDeceleration = *ov.MaxDeceleration
			limit.HasDeceleration = true
		}
		joints[name] = limit
	}

	return domain.Limits{Joints: joints, Cartesian: cfg.Cartesian}, nil
}
