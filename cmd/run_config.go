package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/schelling-sim/schelling-sim/sim"
)

// RunConfig is the YAML form of a run. Nil pointer fields mean "not set in
// YAML" and leave the default (or flag) value alone; empty strings likewise.
type RunConfig struct {
	Width                *int            `yaml:"width"`
	Height               *int            `yaml:"height"`
	Agents               *int            `yaml:"agents"`
	PercentSimilarWanted *float64        `yaml:"percent_similar_wanted"`
	MovementRule         string          `yaml:"movement_rule"`
	Seed                 *int64          `yaml:"seed"`
	MaxTicks             *int64          `yaml:"max_ticks"`
	Placements           []PlacementSpec `yaml:"placements"`
}

// PlacementSpec pins one agent to a cell. Color is "A" or "B".
type PlacementSpec struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Color string `yaml:"color"`
}

// LoadRunConfig parses a YAML run configuration.
// Uses strict field checking: typos must cause errors.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var rc RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rc); err != nil {
		return nil, fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return &rc, nil
}

// ApplyTo copies every field set in the YAML onto cfg.
func (rc *RunConfig) ApplyTo(cfg *sim.Config) {
	if rc.Width != nil {
		cfg.Width = *rc.Width
	}
	if rc.Height != nil {
		cfg.Height = *rc.Height
	}
	if rc.Agents != nil {
		cfg.NumAgents = *rc.Agents
	}
	if rc.PercentSimilarWanted != nil {
		cfg.PercentSimilarWanted = *rc.PercentSimilarWanted
	}
	if rc.MovementRule != "" {
		cfg.MovementRule = sim.MovementRule(rc.MovementRule)
	}
	if rc.Seed != nil {
		cfg.Seed = *rc.Seed
	}
}

// SimPlacements converts the placement list. Returns nil for an empty list.
func (rc *RunConfig) SimPlacements() ([]sim.Placement, error) {
	if len(rc.Placements) == 0 {
		return nil, nil
	}
	out := make([]sim.Placement, len(rc.Placements))
	for i, p := range rc.Placements {
		color, err := sim.ParseColor(p.Color)
		if err != nil {
			return nil, fmt.Errorf("placement %d: %w", i, err)
		}
		out[i] = sim.Placement{Cell: sim.Cell{X: p.X, Y: p.Y}, Color: color}
	}
	return out, nil
}
