// Package simulation drives the tick-by-tick orchestration of the airfield
// model: it owns the graph, the reservation arbiters, and every live
// aircraft, and is itself the World an aircraft steps against.
package simulation

import "context"

// Model is a runnable tick-driven simulation. Run advances it to
// completion (either maxTicks elapses, every spawned aircraft has left the
// field, or an invariant violation halts the run) and returns the final
// step count. A non-nil error from Step is always an
// *segment.InvariantError, and so is one from Run, except that Run returns
// ctx.Err() when its context is cancelled. Ordinary resource-contention
// failures are handled internally by retrying, never surfaced as an error.
type Model interface {
	Step() error
	Run(ctx context.Context, maxTicks int) (ticksRun int, err error)
}
