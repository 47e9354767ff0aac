package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelMoves})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalMoves != 0 {
		t.Errorf("expected 0 moves, got %d", summary.TotalMoves)
	}
	if summary.MeanDistance != 0 || summary.MaxDistance != 0 {
		t.Error("expected 0 distance values")
	}
	if len(summary.MovesByColor) != 0 {
		t.Error("expected empty color distribution")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalMoves != 0 || summary.MovesByColor == nil {
		t.Errorf("expected zero summary with initialized map, got %+v", summary)
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN moves by three agents of both colors
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelMoves})
	st.RecordMove(MoveRecord{Tick: 1, AgentID: 0, Color: "A", Distance: 2, ToContent: true})
	st.RecordMove(MoveRecord{Tick: 2, AgentID: 1, Color: "B", Distance: 5, ToContent: false})
	st.RecordMove(MoveRecord{Tick: 3, AgentID: 0, Color: "A", Distance: 1, ToContent: true})
	st.RecordMove(MoveRecord{Tick: 4, AgentID: 2, Color: "B", Distance: 4, ToContent: true})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts and distance statistics match
	if summary.TotalMoves != 4 {
		t.Errorf("expected 4 moves, got %d", summary.TotalMoves)
	}
	if summary.ContentArrivals != 3 {
		t.Errorf("expected 3 content arrivals, got %d", summary.ContentArrivals)
	}
	if summary.MeanDistance != 3.0 {
		t.Errorf("expected mean distance 3.0, got %f", summary.MeanDistance)
	}
	if summary.MaxDistance != 5 {
		t.Errorf("expected max distance 5, got %d", summary.MaxDistance)
	}
	if summary.UniqueMovers != 3 {
		t.Errorf("expected 3 unique movers, got %d", summary.UniqueMovers)
	}
	if summary.MovesPerAgentMax != 2 {
		t.Errorf("expected agent 0 to move twice, got max %d", summary.MovesPerAgentMax)
	}
	if summary.MovesByColor["A"] != 2 || summary.MovesByColor["B"] != 2 {
		t.Errorf("expected 2 moves per color, got %v", summary.MovesByColor)
	}
}
