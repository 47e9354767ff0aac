// Package sim provides the Schelling-Sakoda segregation simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - grid.go: bounded lattice with incremental occupancy (agent index per cell)
//   - neighborhood.go and happiness.go: Moore-neighborhood counts and the content rule
//   - movement.go: the four movement rules, dispatched by a single switch
//   - simulator.go: Setup, Step and the cancellable run loop
//
// # Architecture
//
// A Simulator owns every piece of mutable state for one run: the Grid, the
// agent slice, the RNG, the tick counter and the derived Stats. Agents live
// in a slice indexed by ID and the Grid stores those indices, so there are no
// pointers between agents and cells.
//
// Sub-packages:
//   - sim/trace/: optional per-move records and their summary
//
// # Reproducibility
//
// A run draws from exactly one seeded *rand.Rand in a fixed order (see
// SimulationKey.NewRand). Identical Config values, Seed included, produce
// identical trajectories; StateHash makes that cheap to check.
package sim
