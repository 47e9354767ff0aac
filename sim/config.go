package sim

import (
	"errors"
	"fmt"
	"math"
)

// Reference defaults for a run.
const (
	DefaultWidth                = 16
	DefaultHeight               = 13
	DefaultNumAgents            = 150
	DefaultPercentSimilarWanted = 50.0
	DefaultMovementRule         = RandomCell
	DefaultSeed                 = 42
)

// MaxCells bounds Width*Height. Setup allocates several slices of this length
// and draws a permutation over it.
const MaxCells = 1 << 24

// ErrInvalidConfig is wrapped by every error Config.Validate returns.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config groups the parameters of one run. It is immutable once Setup accepts it.
type Config struct {
	Width                int          // grid width in cells (> 0)
	Height               int          // grid height in cells (> 0)
	NumAgents            int          // even, 0 < NumAgents < Width*Height
	PercentSimilarWanted float64      // content threshold, in [0, 100]
	MovementRule         MovementRule // one of ValidMovementRules
	Seed                 int64        // master seed for the run's RNG
}

// DefaultConfig returns the reference configuration (16×13 grid, 150 agents,
// 50% similar wanted, random-cell).
func DefaultConfig() Config {
	return Config{
		Width:                DefaultWidth,
		Height:               DefaultHeight,
		NumAgents:            DefaultNumAgents,
		PercentSimilarWanted: DefaultPercentSimilarWanted,
		MovementRule:         DefaultMovementRule,
		Seed:                 DefaultSeed,
	}
}

// Cells returns Width*Height. Only meaningful once Validate has accepted the
// dimensions; larger products may overflow.
func (c Config) Cells() int {
	return c.Width * c.Height
}

// Validate checks dimensions (at most MaxCells cells), population size, threshold range and rule name.
// Returned errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: grid dimensions must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Width > MaxCells/c.Height {
		return fmt.Errorf("%w: grid %dx%d exceeds %d cells", ErrInvalidConfig, c.Width, c.Height, MaxCells)
	}
	if c.NumAgents <= 0 {
		return fmt.Errorf("%w: number of agents must be positive, got %d", ErrInvalidConfig, c.NumAgents)
	}
	if c.NumAgents%2 != 0 {
		return fmt.Errorf("%w: number of agents must be even, got %d", ErrInvalidConfig, c.NumAgents)
	}
	if c.NumAgents >= c.Cells() {
		return fmt.Errorf("%w: number of agents (%d) must be less than the number of cells (%d)",
			ErrInvalidConfig, c.NumAgents, c.Cells())
	}
	if math.IsNaN(c.PercentSimilarWanted) || c.PercentSimilarWanted < 0 || c.PercentSimilarWanted > 100 {
		return fmt.Errorf("%w: percent similar wanted must be in [0, 100], got %g", ErrInvalidConfig, c.PercentSimilarWanted)
	}
	if !ValidMovementRules[c.MovementRule] {
		return fmt.Errorf("%w: unknown movement rule %q (valid: %v)", ErrInvalidConfig, c.MovementRule, MovementRuleNames())
	}
	return nil
}
