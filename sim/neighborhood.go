package sim

// NeighborCounts is the color composition of a Moore neighborhood.
type NeighborCounts struct {
	ByColor [numColors]int
	Total   int
}

// Of returns the number of neighbors with color c.
func (n NeighborCounts) Of(c Color) int {
	return n.ByColor[c]
}

// NeighborColorCounts counts occupied cells around c by color. The cell c
// itself is never part of its own neighborhood, so an agent standing on c is
// excluded from its own counts and an empty candidate cell needs no special
// handling.
func NeighborColorCounts(g *Grid, c Cell) NeighborCounts {
	var counts NeighborCounts
	for _, off := range mooreOffsets {
		n := Cell{X: c.X + off.X, Y: c.Y + off.Y}
		if !g.InBounds(n) {
			continue
		}
		if color, ok := g.ColorAt(n); ok {
			counts.ByColor[color]++
			counts.Total++
		}
	}
	return counts
}

// ProportionSimilarForColor returns the share of c's neighbors that have the
// given color. A cell with no neighbors scores exactly 1.0: best-cell and the
// good-cell test both treat isolation as ideal.
func ProportionSimilarForColor(g *Grid, c Cell, color Color) float64 {
	counts := NeighborColorCounts(g, c)
	if counts.Total == 0 {
		return 1.0
	}
	return float64(counts.Of(color)) / float64(counts.Total)
}

// IsGoodForColor reports whether an agent of the given color placed on c
// would be content at the threshold (a percentage in [0, 100]). This is
// 100*ProportionSimilarForColor >= threshold, evaluated on the integer counts
// so that it agrees exactly with EvaluateHappiness.
func IsGoodForColor(g *Grid, c Cell, color Color, thresholdPercent float64) bool {
	counts := NeighborColorCounts(g, c)
	return isContent(counts.Of(color), counts.Total, thresholdPercent)
}
