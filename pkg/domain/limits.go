package domain

// JointLimit bounds one joint's motion. Zero-valued fields mean "unbounded";
// HasX flags distinguish an explicit zero from "not configured".
type JointLimit struct {
	MaxVelocity     float64 `json:"max_velocity,omitempty" yaml:"max_velocity,omitempty"`
	HasVelocity     bool    `json:"has_velocity,omitempty" yaml:"has_velocity,omitempty"`
	MaxAcceleration float64 `json:"max_acceleration,omitempty" yaml:"max_acceleration,omitempty"`
	HasAcceleration bool    `json:"has_acceleration,omitempty" yaml:"has_acceleration,omitempty"`
	MaxDeceleration float64 `json:"max_deceleration,omitempty" yaml:"max_deceleration,omitempty"`
	HasDeceleration bool    `json:"has_deceleration,omitempty" yaml:"has_deceleration,omitempty"`
}

// CartesianLimits bounds translational motion of a tip frame.
type CartesianLimits struct {
	MaxTransVelocity     float64 `json:"max_trans_velocity,omitempty" yaml:"max_trans_velocity,omitempty"`
	MaxTransAcceleration float64 `json:"max_trans_acceleration,omitempty" yaml:"max_trans_acceleration,omitempty"`
	MaxTransDeceleration float64 `json:"max_trans_deceleration,omitempty" yaml:"max_trans_deceleration,omitempty"`
	MaxRotVelocity       float64 `json:"max_rot_velocity,omitempty" yaml:"max_rot_velocity,omitempty"`
}

// Limits aggregates joint and Cartesian bounds. It configures the trajectory
// builder and the reference planner; the sequencer itself never reads it.
type Limits struct {
	// Joints maps joint name to its aggregated limit.
	Joints map[string]JointLimit `json:"joints,omitempty" yaml:"joints,omitempty"`

	Cartesian CartesianLimits `json:"cartesian,omitempty" yaml:"cartesian,omitempty"`
}
