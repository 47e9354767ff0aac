package sim

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

// CheckInvariants verifies that the grid and the agents agree: one agent per
// occupied cell, occupancy count equal to the population, an even color
// split, and cached happiness matching a fresh evaluation. Returns nil before
// Setup. Any error here is a programming fault.
func (s *Simulator) CheckInvariants() error {
	if s.grid == nil {
		return nil
	}
	var errs []error
	if got := s.grid.OccupiedCount(); got != len(s.agents) {
		errs = append(errs, fmt.Errorf("occupied cells = %d, want %d", got, len(s.agents)))
	}
	perColor := [numColors]int{}
	for i := range s.agents {
		a := &s.agents[i]
		if a.ID != i {
			errs = append(errs, fmt.Errorf("agent at index %d has ID %d", i, a.ID))
		}
		perColor[a.Color]++
		if id, ok := s.grid.Occupant(a.Cell); !ok || id != a.ID {
			errs = append(errs, fmt.Errorf("agent %d at %v, grid holds %d (occupied=%v)", a.ID, a.Cell, id, ok))
		}
		h := EvaluateHappiness(s.grid, a, s.config.PercentSimilarWanted)
		if h.TotalNeighbors != a.TotalNeighbors || h.SimilarNeighbors != a.SimilarNeighbors || h.Content != a.Content {
			errs = append(errs, fmt.Errorf("agent %d cached happiness %d/%d content=%v, actual %d/%d content=%v",
				a.ID, a.SimilarNeighbors, a.TotalNeighbors, a.Content, h.SimilarNeighbors, h.TotalNeighbors, h.Content))
		}
	}
	if perColor[ColorA] != len(s.agents)/2 || perColor[ColorB] != len(s.agents)/2 {
		errs = append(errs, fmt.Errorf("color split %d A / %d B for %d agents", perColor[ColorA], perColor[ColorB], len(s.agents)))
	}
	if s.grid.EmptyCount() < 1 {
		errs = append(errs, errors.New("no empty cell left"))
	}
	return errors.Join(errs...)
}

// StateHash returns an FNV-1a digest of the tick, every agent's position,
// color and cached happiness, and the aggregate statistics. Two runs with the
// same configuration and seed have equal hashes at every tick.
func (s *Simulator) StateHash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	put(uint64(s.tick))
	put(uint64(s.state))
	for i := range s.agents {
		a := &s.agents[i]
		put(uint64(a.Cell.X))
		put(uint64(a.Cell.Y))
		put(uint64(a.Color))
		put(uint64(a.TotalNeighbors))
		put(uint64(a.SimilarNeighbors))
		if a.Content {
			put(1)
		} else {
			put(0)
		}
	}
	put(math.Float64bits(s.stats.AvgPercentSimilar))
	put(math.Float64bits(s.stats.PercentDiscontent))
	return h.Sum64()
}

// Render draws the grid one row per line: '.' for an empty cell, 'A'/'B' for
// a content agent and 'a'/'b' for a discontent one. Returns "" before Setup.
func (s *Simulator) Render() string {
	if s.grid == nil {
		return ""
	}
	var sb strings.Builder
	for y := 0; y < s.grid.Height; y++ {
		for x := 0; x < s.grid.Width; x++ {
			id, ok := s.grid.Occupant(Cell{X: x, Y: y})
			if !ok {
				sb.WriteByte('.')
				continue
			}
			a := &s.agents[id]
			ch := byte('A' + a.Color)
			if !a.Content {
				ch += 'a' - 'A'
			}
			sb.WriteByte(ch)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
