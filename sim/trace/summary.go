package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalMoves       int
	ContentArrivals  int // moves after which the mover was content
	MeanDistance     float64
	MaxDistance      int
	UniqueMovers     int
	MovesByColor     map[string]int // color → number of moves
	MovesPerAgentMax int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		MovesByColor: make(map[string]int),
	}
	if st == nil || len(st.Moves) == 0 {
		return summary
	}

	perAgent := make(map[int]int)
	totalDistance := 0
	for _, m := range st.Moves {
		summary.MovesByColor[m.Color]++
		perAgent[m.AgentID]++
		totalDistance += m.Distance
		if m.Distance > summary.MaxDistance {
			summary.MaxDistance = m.Distance
		}
		if m.ToContent {
			summary.ContentArrivals++
		}
	}
	summary.TotalMoves = len(st.Moves)
	summary.MeanDistance = float64(totalDistance) / float64(len(st.Moves))
	summary.UniqueMovers = len(perAgent)
	for _, n := range perAgent {
		if n > summary.MovesPerAgentMax {
			summary.MovesPerAgentMax = n
		}
	}
	return summary
}
