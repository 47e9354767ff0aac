package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schelling-sim/schelling-sim/sim"
	"github.com/schelling-sim/schelling-sim/sim/trace"
)

func traceOff() trace.TraceConfig {
	return trace.TraceConfig{Level: trace.TraceLevelNone}
}

// These tests share runCmd's package-level flag state and run in file order:
// the YAML-only case must come before any flag is marked as changed.

func TestResolveRunConfig_YAMLOnly(t *testing.T) {
	configPath = writeTempYAML(t, "agents: 40\nmovement_rule: closest-content-cell\nmax_ticks: 12\n")
	defer func() { configPath = "" }()

	cfg, placements, horizon, err := resolveRunConfig(runCmd)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.NumAgents)
	assert.Equal(t, sim.ClosestContentCell, cfg.MovementRule)
	assert.Equal(t, sim.DefaultSeed, int(cfg.Seed))
	assert.Equal(t, int64(12), horizon)
	assert.Nil(t, placements)
}

func TestResolveRunConfig_PlacementsWithoutAgents_SetsPopulation(t *testing.T) {
	// GIVEN a YAML file that pins four agents but does not set agents
	configPath = writeTempYAML(t, `width: 4
height: 4
placements:
  - {x: 0, y: 0, color: A}
  - {x: 1, y: 1, color: A}
  - {x: 2, y: 2, color: B}
  - {x: 0, y: 3, color: B}
`)
	defer func() { configPath = "" }()

	// WHEN the run config is resolved
	cfg, placements, _, err := resolveRunConfig(runCmd)
	require.NoError(t, err)

	// THEN the population follows the placement list and Setup accepts it
	assert.Equal(t, 4, cfg.NumAgents)
	require.Len(t, placements, 4)
	s := sim.NewSimulator(traceOff())
	require.NoError(t, s.SetupWithPlacement(cfg, placements))
	assert.Equal(t, sim.StateReady, s.State())
}

func TestResolveRunConfig_NoYAML_UsesFlags(t *testing.T) {
	cfg, _, horizon, err := resolveRunConfig(runCmd)
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultConfig(), cfg)
	assert.Equal(t, int64(0), horizon)
}

func TestResolveRunConfig_ChangedFlagOverridesYAML(t *testing.T) {
	configPath = writeTempYAML(t, "seed: 5\nagents: 40\n")
	defer func() { configPath = "" }()
	require.NoError(t, runCmd.Flags().Set("seed", "99"))

	cfg, _, _, err := resolveRunConfig(runCmd)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 40, cfg.NumAgents)
}

func TestProgressObserver_VerifyPassesOnHealthyRun(t *testing.T) {
	s := sim.NewSimulator(traceOff())
	require.NoError(t, s.Setup(sim.DefaultConfig()))
	s.Observer = newProgressObserver(s, 1, true)
	for i := 0; i < 10; i++ {
		res, err := s.Step()
		require.NoError(t, err)
		if res.Converged {
			break
		}
	}
}
