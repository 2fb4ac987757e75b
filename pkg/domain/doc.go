// Package domain holds the motion-sequence data model shared by the
// sequencer core, the collaborator ports, and all adapters: requests,
// trajectories, limits, and the typed errors a solve can fail with.
package domain
