// Tracks simulation-wide segregation statistics such as:
//   - average percentage of similar neighbors
//   - percentage of discontent agents
//   - the per-agent similarity distribution behind the histogram

package sim

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// Stats is the aggregate view of the population at one tick. It is derived
// from agent state and recomputed after every step; nothing mutates it
// independently.
type Stats struct {
	Tick              int64
	AvgPercentSimilar float64 // mean of similar/total over agents with neighbors, in percent
	HasSimilarity     bool    // false when no agent has any neighbor ("N/A")
	PercentDiscontent float64
	DiscontentAgents  int
	NumAgents         int
}

// AvgPercentSimilarString renders AvgPercentSimilar or "N/A".
func (s Stats) AvgPercentSimilarString() string {
	if !s.HasSimilarity {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", s.AvgPercentSimilar)
}

// computeStats derives Stats from the agents.
func computeStats(agents []Agent, tick int64) Stats {
	st := Stats{Tick: tick, NumAgents: len(agents)}
	sum, withNeighbors := 0.0, 0
	for i := range agents {
		a := &agents[i]
		if !a.Content {
			st.DiscontentAgents++
		}
		if r, ok := a.SimilarRatio(); ok {
			sum += r
			withNeighbors++
		}
	}
	if withNeighbors > 0 {
		st.HasSimilarity = true
		st.AvgPercentSimilar = 100 * sum / float64(withNeighbors)
	}
	if len(agents) > 0 {
		st.PercentDiscontent = 100 * float64(st.DiscontentAgents) / float64(len(agents))
	}
	return st
}

// similarityRatios returns SimilarNeighbors/TotalNeighbors for every agent
// with at least one neighbor, in agent ID order.
func similarityRatios(agents []Agent) []float64 {
	out := make([]float64, 0, len(agents))
	for i := range agents {
		if r, ok := agents[i].SimilarRatio(); ok {
			out = append(out, r)
		}
	}
	return out
}

// Histogram buckets ratios in [0, 1] into bins equal-width bins. A ratio of
// exactly 1 lands in the last bin. Panics if bins <= 0.
func Histogram(ratios []float64, bins int) []int {
	if bins <= 0 {
		panic(fmt.Sprintf("Histogram: bins must be positive, got %d", bins))
	}
	counts := make([]int, bins)
	for _, r := range ratios {
		b := int(r * float64(bins))
		if b >= bins {
			b = bins - 1
		}
		if b < 0 {
			b = 0
		}
		counts[b]++
	}
	return counts
}

// DefaultHistoryLimit is the number of samples a Metrics keeps before it
// starts thinning its history.
const DefaultHistoryLimit = 100_000

// Metrics keeps the history of Stats for a run. Every tick is kept until
// History would exceed Limit; then every other sample is dropped and only
// every stride-th tick is kept from there on, so an unbounded run uses
// bounded memory. History[0] is always the first sample, and each sample
// carries its own Tick. Last always returns the most recent sample.
type Metrics struct {
	History []Stats
	Limit   int // <= 0 disables thinning

	stride   int64
	recorded int64
	latest   Stats
}

// NewMetrics creates an empty Metrics holding at most DefaultHistoryLimit samples.
func NewMetrics() *Metrics {
	return &Metrics{History: make([]Stats, 0), Limit: DefaultHistoryLimit, stride: 1}
}

// Record adds a sample.
func (m *Metrics) Record(s Stats) {
	if m.stride == 0 {
		m.stride = 1
	}
	if m.recorded%m.stride == 0 {
		m.History = append(m.History, s)
	}
	m.recorded++
	m.latest = s
	if m.Limit > 0 && len(m.History) > m.Limit {
		m.thin()
	}
}

// thin keeps the even-indexed samples and doubles the stride.
func (m *Metrics) thin() {
	kept := m.History[:0]
	for i := 0; i < len(m.History); i += 2 {
		kept = append(kept, m.History[i])
	}
	m.History = kept
	m.stride *= 2
}

// Recorded returns the number of samples passed to Record, kept or not.
func (m *Metrics) Recorded() int64 {
	return m.recorded
}

// Last returns the most recent sample and false if there is none.
func (m *Metrics) Last() (Stats, bool) {
	if m.recorded == 0 {
		return Stats{}, false
	}
	return m.latest, true
}

// Print writes a final report: the latest statistics and a text histogram of
// the similarity distribution.
func (m *Metrics) Print(w io.Writer, ratios []float64, bins int) {
	last, ok := m.Last()
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	if !ok {
		fmt.Fprintln(w, "No samples recorded")
		return
	}
	fmt.Fprintf(w, "Ticks                : %s\n", humanize.Comma(last.Tick))
	fmt.Fprintf(w, "Agents               : %s\n", humanize.Comma(int64(last.NumAgents)))
	fmt.Fprintf(w, "Avg %% similar        : %s\n", last.AvgPercentSimilarString())
	fmt.Fprintf(w, "%% discontent         : %.2f (%d agents)\n", last.PercentDiscontent, last.DiscontentAgents)
	if m.recorded > 1 {
		first := m.History[0]
		if first.HasSimilarity && last.HasSimilarity {
			fmt.Fprintf(w, "Similarity change    : %+.2f points\n", last.AvgPercentSimilar-first.AvgPercentSimilar)
		}
	}
	if bins <= 0 || len(ratios) == 0 {
		return
	}
	fmt.Fprintln(w, "=== Similarity Distribution ===")
	counts := Histogram(ratios, bins)
	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}
	for i, c := range counts {
		lo := 100 * float64(i) / float64(bins)
		hi := 100 * float64(i+1) / float64(bins)
		bar := 0
		if maxCount > 0 {
			bar = c * 40 / maxCount
		}
		fmt.Fprintf(w, "%5.1f-%5.1f%% | %-40s %d\n", lo, hi, strings.Repeat("#", bar), c)
	}
}
