package trace

// TraceLevel controls the verbosity of move tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelMoves captures every relocation performed by the engine.
	TraceLevelMoves TraceLevel = "moves"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelMoves: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether moves should be recorded.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelMoves
}

// SimulationTrace collects move records during a run.
type SimulationTrace struct {
	Config TraceConfig
	Moves  []MoveRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Moves:  make([]MoveRecord, 0),
	}
}

// RecordMove appends a move record. No-op on a nil trace.
func (st *SimulationTrace) RecordMove(record MoveRecord) {
	if st == nil {
		return
	}
	st.Moves = append(st.Moves, record)
}
