// sim/simulator.go
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/schelling-sim/schelling-sim/sim/trace"
)

// State is the lifecycle stage of a Simulator.
type State int

const (
	// StateUninitialized means Setup has not succeeded yet.
	StateUninitialized State = iota
	// StateReady means Setup succeeded and no step has run (tick 0).
	StateReady
	// StateRunning means at least one agent has moved.
	StateRunning
	// StateConverged is terminal: a step found no discontent agent.
	StateConverged
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateConverged:
		return "converged"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrNotSetup is returned by Step and Run before a successful Setup.
	ErrNotSetup = errors.New("simulation not set up")
	// ErrConverged is returned by Step once convergence has been detected.
	ErrConverged = errors.New("simulation already converged")
)

// StepResult describes what one call to Step did.
type StepResult struct {
	Tick      int64 // tick after the step
	Converged bool  // true if the step found no discontent agent and moved nobody
	AgentID   int
	From      Cell
	To        Cell
}

// StepObserver is called after every step that moved an agent.
type StepObserver func(res StepResult, stats Stats)

// Placement pins one agent to a cell for SetupWithPlacement.
type Placement struct {
	Cell  Cell
	Color Color
}

// Simulator owns all mutable state of one run: grid, agents, RNG, statistics
// and tick counter. Every step runs to completion before the next begins.
//
// Thread-safety: NOT thread-safe. Must be driven from a single goroutine.
type Simulator struct {
	config Config
	state  State
	tick   int64
	grid   *Grid
	agents []Agent
	rng    *rand.Rand
	stats  Stats

	// Metrics holds the per-tick statistics history of the current run.
	Metrics *Metrics
	// Trace holds move records when tracing is enabled; nil otherwise.
	Trace *trace.SimulationTrace
	// Observer, if set, is invoked after each move.
	Observer StepObserver

	traceConfig trace.TraceConfig
}

// NewSimulator creates a Simulator in StateUninitialized. Tracing follows
// traceConfig for every subsequent Setup.
func NewSimulator(traceConfig trace.TraceConfig) *Simulator {
	return &Simulator{
		state:       StateUninitialized,
		Metrics:     NewMetrics(),
		traceConfig: traceConfig,
	}
}

// Setup validates cfg and starts a new run with agents on distinct random
// cells, half of them (chosen at random) ColorB. On error the Simulator is
// left exactly as it was.
func (s *Simulator) Setup(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	rng := NewSimulationKey(cfg.Seed).NewRand()
	grid := NewGrid(cfg.Width, cfg.Height)

	cells := rng.Perm(grid.Size())[:cfg.NumAgents]
	colors := make([]Color, cfg.NumAgents)
	for _, i := range rng.Perm(cfg.NumAgents)[:cfg.NumAgents/2] {
		colors[i] = ColorB
	}

	agents := make([]Agent, cfg.NumAgents)
	for i := range agents {
		agents[i] = Agent{ID: i, Color: colors[i], Cell: grid.cellAt(cells[i])}
		grid.Place(agents[i].Cell, i, colors[i])
	}
	s.install(cfg, rng, grid, agents)
	return nil
}

// SetupWithPlacement starts a new run with agents at fixed cells instead of
// random ones. len(placements) must equal cfg.NumAgents, cells must be
// distinct and in bounds, and exactly half the placements must be ColorB.
// The RNG is still seeded from cfg.Seed and first used by Step.
func (s *Simulator) SetupWithPlacement(cfg Config, placements []Placement) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(placements) != cfg.NumAgents {
		return fmt.Errorf("%w: %d placements for %d agents", ErrInvalidConfig, len(placements), cfg.NumAgents)
	}
	grid := NewGrid(cfg.Width, cfg.Height)
	agents := make([]Agent, len(placements))
	perColor := [numColors]int{}
	for i, p := range placements {
		if p.Color != ColorA && p.Color != ColorB {
			return fmt.Errorf("%w: placement %d has unknown color %v", ErrInvalidConfig, i, p.Color)
		}
		if !grid.InBounds(p.Cell) {
			return fmt.Errorf("%w: placement %d at %v is outside the %dx%d grid", ErrInvalidConfig, i, p.Cell, cfg.Width, cfg.Height)
		}
		if grid.IsOccupied(p.Cell) {
			return fmt.Errorf("%w: placement %d at %v duplicates another placement", ErrInvalidConfig, i, p.Cell)
		}
		perColor[p.Color]++
		agents[i] = Agent{ID: i, Color: p.Color, Cell: p.Cell}
		grid.Place(p.Cell, i, p.Color)
	}
	if perColor[ColorA] != perColor[ColorB] {
		return fmt.Errorf("%w: placements must split colors evenly, got %d A and %d B",
			ErrInvalidConfig, perColor[ColorA], perColor[ColorB])
	}
	s.install(cfg, NewSimulationKey(cfg.Seed).NewRand(), grid, agents)
	return nil
}

// install commits a freshly built run. Nothing before this point touches s.
func (s *Simulator) install(cfg Config, rng *rand.Rand, grid *Grid, agents []Agent) {
	for i := range agents {
		agents[i].applyHappiness(EvaluateHappiness(grid, &agents[i], cfg.PercentSimilarWanted))
	}
	s.config = cfg
	s.rng = rng
	s.grid = grid
	s.agents = agents
	s.tick = 0
	s.state = StateReady
	s.stats = computeStats(agents, 0)
	s.Metrics = NewMetrics()
	s.Metrics.Record(s.stats)
	s.Trace = nil
	if s.traceConfig.Enabled() {
		s.Trace = trace.NewSimulationTrace(s.traceConfig)
	}
	if err := s.CheckInvariants(); err != nil {
		logrus.Panicf("Simulator.Setup: %v", err)
	}
	logrus.Infof("Setup: %dx%d grid, %d agents, %.1f%% similar wanted, rule=%s, seed=%d, discontent=%d",
		cfg.Width, cfg.Height, cfg.NumAgents, cfg.PercentSimilarWanted, cfg.MovementRule, cfg.Seed, s.stats.DiscontentAgents)
}

// Step moves one uniformly chosen discontent agent with the configured
// movement rule. If no agent is discontent the run becomes converged and
// nothing moves; convergence is therefore detected on the step after the
// last discontent agent was satisfied.
func (s *Simulator) Step() (StepResult, error) {
	switch s.state {
	case StateUninitialized:
		return StepResult{}, ErrNotSetup
	case StateConverged:
		return StepResult{Tick: s.tick, Converged: true}, ErrConverged
	}

	discontent := s.discontentAgents()
	if len(discontent) == 0 {
		s.state = StateConverged
		logrus.Infof("Converged at tick %d", s.tick)
		return StepResult{Tick: s.tick, Converged: true}, nil
	}

	mover := &s.agents[discontent[s.rng.Intn(len(discontent))]]
	from := mover.Cell
	before := s.occupantsAround(from)

	// Lift the mover off its cell so it does not count as its own neighbor
	// when destinations are scored.
	if id := s.grid.Remove(from); id != mover.ID {
		logrus.Panicf("Simulator.Step: cell %v held agent %d, expected %d", from, id, mover.ID)
	}
	to := selectDestination(s.config.MovementRule, s.grid, moveRequest{
		Color:     mover.Color,
		Origin:    from,
		Threshold: s.config.PercentSimilarWanted,
	}, s.rng)
	s.grid.Place(to, mover.ID, mover.Color)
	mover.Cell = to

	s.refreshHappiness(mover.ID)
	for _, id := range before {
		s.refreshHappiness(id)
	}
	for _, id := range s.occupantsAround(to) {
		s.refreshHappiness(id)
	}
	if s.grid.OccupiedCount() != len(s.agents) {
		logrus.Panicf("Simulator.Step: %d occupied cells for %d agents", s.grid.OccupiedCount(), len(s.agents))
	}

	s.tick++
	s.state = StateRunning
	s.stats = computeStats(s.agents, s.tick)
	s.Metrics.Record(s.stats)

	res := StepResult{Tick: s.tick, AgentID: mover.ID, From: from, To: to}
	s.Trace.RecordMove(trace.MoveRecord{
		Tick:      s.tick,
		AgentID:   mover.ID,
		Color:     mover.Color.String(),
		FromX:     from.X,
		FromY:     from.Y,
		ToX:       to.X,
		ToY:       to.Y,
		Distance:  TaxicabDistance(from, to),
		ToContent: mover.Content,
	})
	logrus.Debugf("[tick %07d] agent %d (%v) %v -> %v, discontent=%d",
		s.tick, mover.ID, mover.Color, from, to, s.stats.DiscontentAgents)
	if s.Observer != nil {
		s.Observer(res, s.stats)
	}
	return res, nil
}

// Run steps until convergence, until maxTicks ticks have elapsed (0 means no
// cap), or until ctx is cancelled. Cancellation is checked between steps only.
// Returns ctx.Err() on cancellation and nil otherwise.
func (s *Simulator) Run(ctx context.Context, maxTicks int64) error {
	if s.state == StateUninitialized {
		return ErrNotSetup
	}
	for s.state != StateConverged {
		if err := ctx.Err(); err != nil {
			return err
		}
		if maxTicks > 0 && s.tick >= maxTicks {
			return nil
		}
		if _, err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunUntilConverged steps until no agent is discontent or ctx is cancelled.
// It has no iteration cap and may run forever on configurations that never
// settle.
func (s *Simulator) RunUntilConverged(ctx context.Context) error {
	return s.Run(ctx, 0)
}

// discontentAgents returns the IDs of discontent agents in ascending order.
func (s *Simulator) discontentAgents() []int {
	var ids []int
	for i := range s.agents {
		if !s.agents[i].Content {
			ids = append(ids, i)
		}
	}
	return ids
}

// occupantsAround returns the IDs of agents in c's Moore neighborhood.
func (s *Simulator) occupantsAround(c Cell) []int {
	var ids []int
	for _, n := range s.grid.Neighbors(c) {
		if id, ok := s.grid.Occupant(n); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *Simulator) refreshHappiness(id int) {
	a := &s.agents[id]
	a.applyHappiness(EvaluateHappiness(s.grid, a, s.config.PercentSimilarWanted))
}

// Config returns the configuration of the current run.
func (s *Simulator) Config() Config { return s.config }

// State returns the lifecycle state.
func (s *Simulator) State() State { return s.state }

// Tick returns the number of moves performed in the current run.
func (s *Simulator) Tick() int64 { return s.tick }

// Stats returns the statistics after the latest Setup or Step.
func (s *Simulator) Stats() Stats { return s.stats }

// Agents returns a copy of every agent's state, indexed by ID.
func (s *Simulator) Agents() []Agent {
	out := make([]Agent, len(s.agents))
	copy(out, s.agents)
	return out
}

// SimilarityRatios returns SimilarNeighbors/TotalNeighbors for each agent that
// has at least one neighbor, in ID order.
func (s *Simulator) SimilarityRatios() []float64 {
	return similarityRatios(s.agents)
}

// SimilarityHistogram buckets SimilarityRatios into bins equal-width bins.
func (s *Simulator) SimilarityHistogram(bins int) []int {
	return Histogram(s.SimilarityRatios(), bins)
}

// History returns the statistics since the latest Setup: one sample per tick
// for the first DefaultHistoryLimit ticks, thinned evenly after that.
func (s *Simulator) History() []Stats {
	out := make([]Stats, len(s.Metrics.History))
	copy(out, s.Metrics.History)
	return out
}

// IsOccupied reports whether c holds an agent. Panics before Setup.
func (s *Simulator) IsOccupied(c Cell) bool {
	return s.grid.IsOccupied(c)
}
