package sim

import "math/rand"

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce identical trajectories.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// NewRand returns the single RNG a run draws from.
//
// Draw order is part of the reproducibility contract:
//   - Setup: one permutation of all cells (placement), then one permutation of
//     the agents (which half becomes ColorB).
//   - Step: one draw to pick the discontent agent, then one draw for the
//     destination (the uniform pick doubles as the tie-break for
//     closest-content-cell and best-cell).
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
func (k SimulationKey) NewRand() *rand.Rand {
	return rand.New(rand.NewSource(int64(k)))
}
