package sim

import (
	"testing"

	"github.com/schelling-sim/schelling-sim/sim/trace"
)

// gridFromRows builds a grid from rows of '.', 'A', 'B' and 'O'. 'O' marks an
// empty cell and is returned as origin (the zero Cell if absent). Agents get
// IDs in row-major order.
func gridFromRows(t *testing.T, rows ...string) (*Grid, Cell) {
	t.Helper()
	g := NewGrid(len(rows[0]), len(rows))
	var origin Cell
	id := 0
	for y, row := range rows {
		if len(row) != g.Width {
			t.Fatalf("row %d has width %d, want %d", y, len(row), g.Width)
		}
		for x, ch := range row {
			c := Cell{X: x, Y: y}
			switch ch {
			case 'A':
				g.Place(c, id, ColorA)
				id++
			case 'B':
				g.Place(c, id, ColorB)
				id++
			case 'O':
				origin = c
			case '.':
			default:
				t.Fatalf("unexpected %q at %v", ch, c)
			}
		}
	}
	return g, origin
}

// testConfig returns a valid config for a width×height grid.
func testConfig(width, height, agents int, threshold float64, rule MovementRule, seed int64) Config {
	return Config{
		Width:                width,
		Height:               height,
		NumAgents:            agents,
		PercentSimilarWanted: threshold,
		MovementRule:         rule,
		Seed:                 seed,
	}
}

// mustSetup creates a Simulator and runs Setup, failing the test on error.
func mustSetup(t *testing.T, cfg Config) *Simulator {
	t.Helper()
	s := NewSimulator(traceOff)
	if err := s.Setup(cfg); err != nil {
		t.Fatalf("Setup(%+v): %v", cfg, err)
	}
	return s
}

// assertInvariants fails the test if the simulator's invariants do not hold.
func assertInvariants(t *testing.T, s *Simulator) {
	t.Helper()
	if err := s.CheckInvariants(); err != nil {
		t.Fatalf("tick %d: invariant violation: %v", s.Tick(), err)
	}
}

// traceOff disables move tracing.
var traceOff = trace.TraceConfig{Level: trace.TraceLevelNone}

var allRules = []MovementRule{RandomCell, RandomContentCell, ClosestContentCell, BestCell}
