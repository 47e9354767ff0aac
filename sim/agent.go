package sim

import "fmt"

// Color is one of the two agent populations.
type Color int

const (
	ColorA Color = iota
	ColorB
)

// numColors is the number of agent populations.
const numColors = 2

// String returns "A" or "B".
func (c Color) String() string {
	switch c {
	case ColorA:
		return "A"
	case ColorB:
		return "B"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

// ParseColor maps "A"/"a" and "B"/"b" to a Color.
func ParseColor(s string) (Color, error) {
	switch s {
	case "A", "a":
		return ColorA, nil
	case "B", "b":
		return ColorB, nil
	default:
		return 0, fmt.Errorf("unknown color %q (want A or B)", s)
	}
}

// Agent is one member of the population. Agents live in the Simulator's
// agent slice; ID is the agent's index in that slice and is what the Grid
// stores for occupied cells.
//
// Cell changes only on relocation; the neighbor counts and Content change only
// when happiness is recomputed.
type Agent struct {
	ID    int
	Color Color
	Cell  Cell

	TotalNeighbors   int
	SimilarNeighbors int
	Content          bool
}

// SimilarRatio returns SimilarNeighbors/TotalNeighbors and false when the
// agent has no neighbors.
func (a *Agent) SimilarRatio() (float64, bool) {
	if a.TotalNeighbors == 0 {
		return 0, false
	}
	return float64(a.SimilarNeighbors) / float64(a.TotalNeighbors), true
}

// applyHappiness stores an evaluation result in the agent's cached fields.
func (a *Agent) applyHappiness(h Happiness) {
	a.TotalNeighbors = h.TotalNeighbors
	a.SimilarNeighbors = h.SimilarNeighbors
	a.Content = h.Content
}
