// Package ports defines the collaborator contracts the sequencer consumes:
// the single-request planner service, the kinematic model, the trajectory
// builder, and the optional result store. The core depends only on these
// interfaces; concrete implementations live under pkg/adapters.
package ports
