// Package trace provides move-trace recording for post-run analysis of
// movement policies.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// MoveRecord captures a single relocation.
type MoveRecord struct {
	Tick      int64
	AgentID   int
	Color     string
	FromX     int
	FromY     int
	ToX       int
	ToY       int
	Distance  int  // taxicab distance between source and destination
	ToContent bool // mover's happiness after the move
}
