// Package seqplan composes ordered motion planning requests into continuous
// per-group trajectories. Each segment of a sequence is solved by an
// external planner service, chained so that a segment starts where the
// previous segment of its group ended, and adjacent segments are optionally
// blended into a smooth hand-off within a configured radius.
//
// The library validates sequences before planning, aborts on the first
// failed segment, rejects geometrically ambiguous blend configurations, and
// guarantees strictly increasing waypoint timestamps on its output.
package seqplan
