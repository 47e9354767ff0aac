package sim

// Happiness is the result of evaluating one agent against its neighborhood.
type Happiness struct {
	Content          bool
	TotalNeighbors   int
	SimilarNeighbors int
}

// EvaluateHappiness computes the happiness of agent a at its current cell.
// An agent with no neighbors is always content; otherwise it is content when
// similar*100 >= threshold*total. The comparison stays in integer-scaled form
// so thresholds such as 100 or 0 are exact.
func EvaluateHappiness(g *Grid, a *Agent, thresholdPercent float64) Happiness {
	counts := NeighborColorCounts(g, a.Cell)
	similar := counts.Of(a.Color)
	return Happiness{
		Content:          isContent(similar, counts.Total, thresholdPercent),
		TotalNeighbors:   counts.Total,
		SimilarNeighbors: similar,
	}
}

func isContent(similar, total int, thresholdPercent float64) bool {
	if total == 0 {
		return true
	}
	return float64(similar)*100 >= thresholdPercent*float64(total)
}
