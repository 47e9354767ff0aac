package sim

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
)

// MovementRule names the policy a discontent agent uses to pick a destination.
type MovementRule string

const (
	// RandomCell moves to any empty cell, uniformly.
	RandomCell MovementRule = "random-cell"
	// RandomContentCell moves to a uniformly chosen good cell, or any empty
	// cell if there is none.
	RandomContentCell MovementRule = "random-content-cell"
	// ClosestContentCell moves to the good cell nearest (taxicab) to the
	// agent's current position, or any empty cell if there is none.
	ClosestContentCell MovementRule = "closest-content-cell"
	// BestCell moves to the empty cell with the highest share of same-color
	// neighbors.
	BestCell MovementRule = "best-cell"
)

// ValidMovementRules is the set of recognized movement rule names.
// Shared by Config.Validate() and selectDestination().
var ValidMovementRules = map[MovementRule]bool{
	RandomCell:         true,
	RandomContentCell:  true,
	ClosestContentCell: true,
	BestCell:           true,
}

// IsValidMovementRule returns true if name is a recognized movement rule.
func IsValidMovementRule(name string) bool {
	return ValidMovementRules[MovementRule(name)]
}

// MovementRuleNames returns the recognized rule names, sorted.
func MovementRuleNames() []string {
	names := make([]string, 0, len(ValidMovementRules))
	for r := range ValidMovementRules {
		names = append(names, string(r))
	}
	sort.Strings(names)
	return names
}

// moveRequest carries everything a policy needs to choose a destination.
// The mover has already been lifted off Origin, so Origin reads as empty in
// neighbor counts; it is still excluded from the candidate set.
type moveRequest struct {
	Color     Color
	Origin    Cell
	Threshold float64
}

// selectDestination dispatches to the policy for rule. Every policy draws from
// rng exactly once per decision: the uniform pick among its final candidate
// set (which is also the tie-break for closest-content-cell and best-cell).
//
// Panics if there is no candidate cell; Config.Validate guarantees at least
// one empty cell besides the mover's origin.
func selectDestination(rule MovementRule, g *Grid, req moveRequest, rng *rand.Rand) Cell {
	candidates := destinationCandidates(g, req.Origin)
	if len(candidates) == 0 {
		panic(fmt.Sprintf("selectDestination: no empty cell available for agent at %v", req.Origin))
	}
	switch rule {
	case RandomCell:
		return randomCell(candidates, rng)
	case RandomContentCell:
		return randomContentCell(g, req, candidates, rng)
	case ClosestContentCell:
		return closestContentCell(g, req, candidates, rng)
	case BestCell:
		return bestCell(g, req, candidates, rng)
	default:
		logrus.Panicf("unknown movement rule: %s", rule)
		return Cell{}
	}
}

// destinationCandidates returns all empty cells other than origin, in
// row-major order.
func destinationCandidates(g *Grid, origin Cell) []Cell {
	empty := g.EmptyCells()
	out := empty[:0]
	for _, c := range empty {
		if c != origin {
			out = append(out, c)
		}
	}
	return out
}

func pick(cells []Cell, rng *rand.Rand) Cell {
	return cells[rng.Intn(len(cells))]
}

func randomCell(candidates []Cell, rng *rand.Rand) Cell {
	return pick(candidates, rng)
}

func goodCells(g *Grid, req moveRequest, candidates []Cell) []Cell {
	var good []Cell
	for _, c := range candidates {
		if IsGoodForColor(g, c, req.Color, req.Threshold) {
			good = append(good, c)
		}
	}
	return good
}

func randomContentCell(g *Grid, req moveRequest, candidates []Cell, rng *rand.Rand) Cell {
	if good := goodCells(g, req, candidates); len(good) > 0 {
		return pick(good, rng)
	}
	return pick(candidates, rng)
}

// closestContentCell picks uniformly among the good cells at minimum taxicab
// distance from the origin.
func closestContentCell(g *Grid, req moveRequest, candidates []Cell, rng *rand.Rand) Cell {
	good := goodCells(g, req, candidates)
	if len(good) == 0 {
		return pick(candidates, rng)
	}
	var nearest []Cell
	best := -1
	for _, c := range good {
		d := TaxicabDistance(req.Origin, c)
		switch {
		case best < 0 || d < best:
			best = d
			nearest = append(nearest[:0], c)
		case d == best:
			nearest = append(nearest, c)
		}
	}
	return pick(nearest, rng)
}

// bestCell picks uniformly among the candidates that maximize
// ProportionSimilarForColor. It never falls back: the maximum is taken over
// every candidate.
func bestCell(g *Grid, req moveRequest, candidates []Cell, rng *rand.Rand) Cell {
	var top []Cell
	best := -1.0
	for _, c := range candidates {
		p := ProportionSimilarForColor(g, c, req.Color)
		switch {
		case p > best:
			best = p
			top = append(top[:0], c)
		case p == best:
			top = append(top, c)
		}
	}
	return pick(top, rng)
}
