package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeighborColorCounts_CountsByColor(t *testing.T) {
	g, _ := gridFromRows(t,
		"AB.",
		".A.",
		"BB.",
	)
	// Center (1,1) sees A at (0,0), B at (1,0), B at (0,2), B at (1,2); itself excluded.
	counts := NeighborColorCounts(g, Cell{1, 1})
	assert.Equal(t, 4, counts.Total)
	assert.Equal(t, 1, counts.Of(ColorA))
	assert.Equal(t, 3, counts.Of(ColorB))

	// Empty corner (2,0) sees B at (1,0) and A at (1,1).
	counts = NeighborColorCounts(g, Cell{2, 0})
	assert.Equal(t, 2, counts.Total)
	assert.Equal(t, 1, counts.Of(ColorA))
	assert.Equal(t, 1, counts.Of(ColorB))
}

func TestProportionSimilarForColor_NoNeighbors_IsExactlyOne(t *testing.T) {
	g, _ := gridFromRows(t,
		"A...",
		"....",
		"...B",
	)
	for _, color := range []Color{ColorA, ColorB} {
		assert.Equal(t, 1.0, ProportionSimilarForColor(g, Cell{2, 0}, color), "color %v", color)
		assert.Equal(t, 1.0, ProportionSimilarForColor(g, Cell{0, 2}, color), "color %v", color)
	}
}

func TestProportionSimilarForColor_MixedNeighborhood(t *testing.T) {
	g, _ := gridFromRows(t,
		"AAB",
		"B.A",
		"...",
	)
	// (1,1) neighbors: A A B B A → 3 A of 5
	assert.InDelta(t, 0.6, ProportionSimilarForColor(g, Cell{1, 1}, ColorA), 1e-12)
	assert.InDelta(t, 0.4, ProportionSimilarForColor(g, Cell{1, 1}, ColorB), 1e-12)
}

func TestIsGoodForColor_ThresholdBoundaries(t *testing.T) {
	g, _ := gridFromRows(t,
		"AB",
		"..",
	)
	// (0,1) sees A and B: exactly 50% similar for either color.
	c := Cell{0, 1}
	assert.True(t, IsGoodForColor(g, c, ColorA, 50))
	assert.False(t, IsGoodForColor(g, c, ColorA, 51))
	assert.True(t, IsGoodForColor(g, c, ColorB, 0))

	// A lone empty region is good at any threshold.
	lone, _ := gridFromRows(t, "A..", "...", "...")
	assert.True(t, IsGoodForColor(lone, Cell{2, 2}, ColorB, 100))
}

func TestIsGoodForColor_AgreesWithProportion(t *testing.T) {
	g, _ := gridFromRows(t,
		"ABAB",
		"B..A",
		"AABB",
	)
	for _, c := range g.EmptyCells() {
		for _, color := range []Color{ColorA, ColorB} {
			for thr := 0.0; thr <= 100; thr += 5 {
				want := 100*ProportionSimilarForColor(g, c, color) >= thr
				assert.Equal(t, want, IsGoodForColor(g, c, color, thr), "cell %v color %v threshold %v", c, color, thr)
			}
		}
	}
}
