package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schelling-sim/schelling-sim/sim"
	"github.com/schelling-sim/schelling-sim/sim/trace"
)

var (
	// CLI flags for the model
	seed                 int64   // Seed for the run's RNG
	width                int     // Grid width in cells
	height               int     // Grid height in cells
	numAgents            int     // Population size (even)
	percentSimilarWanted float64 // Content threshold in percent
	movementRule         string  // Movement rule name

	// CLI flags for the run
	maxTicks      int64  // Tick cap (0 = run until converged)
	logLevel      string // Log verbosity level
	configPath    string // Optional YAML run config
	traceLevel    string // Move trace verbosity
	histogramBins int    // Bins in the similarity histogram report
	reportEvery   int64  // Log progress every N ticks (0 = off)
	showGrid      bool   // Print the final grid
	verify        bool   // Check invariants after every step
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "schelling-sim",
	Short: "Schelling-Sakoda spatial segregation simulator",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the segregation simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q (valid: none, moves)", traceLevel)
		}

		cfg, placements, horizon, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		s := sim.NewSimulator(trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		if placements != nil {
			err = s.SetupWithPlacement(cfg, placements)
		} else {
			err = s.Setup(cfg)
		}
		if err != nil {
			logrus.Fatalf("Setup failed: %v", err)
		}
		s.Observer = newProgressObserver(s, reportEvery, verify)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		startTime := time.Now()
		err = s.Run(ctx, horizon)
		switch {
		case errors.Is(err, context.Canceled):
			logrus.Warnf("Interrupted at tick %d", s.Tick())
		case err != nil:
			logrus.Fatalf("Run failed: %v", err)
		}

		s.Metrics.Print(os.Stdout, s.SimilarityRatios(), histogramBins)
		fmt.Printf("State                : %s\n", s.State())
		if showGrid {
			fmt.Println("=== Grid ===")
			fmt.Print(s.Render())
		}
		if s.Trace != nil {
			printTraceSummary(trace.Summarize(s.Trace))
		}
		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// resolveRunConfig layers defaults, the optional YAML file and explicitly
// set flags, in that order.
func resolveRunConfig(cmd *cobra.Command) (sim.Config, []sim.Placement, int64, error) {
	cfg := sim.DefaultConfig()
	horizon := int64(0)
	var placements []sim.Placement

	if configPath != "" {
		rc, err := LoadRunConfig(configPath)
		if err != nil {
			return cfg, nil, 0, err
		}
		rc.ApplyTo(&cfg)
		if rc.MaxTicks != nil {
			horizon = *rc.MaxTicks
		}
		placements, err = rc.SimPlacements()
		if err != nil {
			return cfg, nil, 0, err
		}
		if rc.Agents == nil && placements != nil {
			cfg.NumAgents = len(placements)
		}
	}

	flags := cmd.Flags()
	if configPath == "" || flags.Changed("seed") {
		cfg.Seed = seed
	}
	if configPath == "" || flags.Changed("width") {
		cfg.Width = width
	}
	if configPath == "" || flags.Changed("height") {
		cfg.Height = height
	}
	if configPath == "" || flags.Changed("agents") {
		cfg.NumAgents = numAgents
	}
	if configPath == "" || flags.Changed("similar-wanted") {
		cfg.PercentSimilarWanted = percentSimilarWanted
	}
	if configPath == "" || flags.Changed("movement-rule") {
		cfg.MovementRule = sim.MovementRule(movementRule)
	}
	if configPath == "" || flags.Changed("horizon") {
		horizon = maxTicks
	}
	if horizon < 0 {
		return cfg, nil, 0, fmt.Errorf("horizon must be non-negative, got %d", horizon)
	}
	return cfg, placements, horizon, nil
}

// newProgressObserver logs progress every n ticks and, when verify is set,
// aborts on the first invariant violation.
func newProgressObserver(s *sim.Simulator, n int64, verify bool) sim.StepObserver {
	return func(res sim.StepResult, stats sim.Stats) {
		if verify {
			if err := s.CheckInvariants(); err != nil {
				logrus.Fatalf("Invariant violation at tick %d: %v", res.Tick, err)
			}
		}
		if n > 0 && res.Tick%n == 0 {
			logrus.Infof("tick %s: %.2f%% discontent, avg %% similar %s",
				humanize.Comma(res.Tick), stats.PercentDiscontent, stats.AvgPercentSimilarString())
		}
	}
}

func printTraceSummary(ts *trace.TraceSummary) {
	fmt.Println("=== Move Trace ===")
	fmt.Printf("Moves                : %s\n", humanize.Comma(int64(ts.TotalMoves)))
	fmt.Printf("Content arrivals     : %d\n", ts.ContentArrivals)
	fmt.Printf("Distinct movers      : %d (max %d moves by one agent)\n", ts.UniqueMovers, ts.MovesPerAgentMax)
	fmt.Printf("Mean distance        : %.2f (max %d)\n", ts.MeanDistance, ts.MaxDistance)
	fmt.Printf("Moves by color       : A=%d B=%d\n", ts.MovesByColor["A"], ts.MovesByColor["B"])
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {

	runCmd.Flags().Int64Var(&seed, "seed", sim.DefaultSeed, "Seed for the simulation RNG")
	runCmd.Flags().IntVar(&width, "width", sim.DefaultWidth, "Grid width in cells")
	runCmd.Flags().IntVar(&height, "height", sim.DefaultHeight, "Grid height in cells")
	runCmd.Flags().IntVar(&numAgents, "agents", sim.DefaultNumAgents, "Number of agents (even, fewer than width*height)")
	runCmd.Flags().Float64Var(&percentSimilarWanted, "similar-wanted", sim.DefaultPercentSimilarWanted, "Percentage of similar neighbors an agent wants (0-100)")
	runCmd.Flags().StringVar(&movementRule, "movement-rule", string(sim.DefaultMovementRule), fmt.Sprintf("Movement rule %v", sim.MovementRuleNames()))

	runCmd.Flags().Int64Var(&maxTicks, "horizon", 0, "Maximum number of ticks (0 = run until converged)")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML run config; explicitly set flags override it")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Move trace level (none, moves)")
	runCmd.Flags().IntVar(&histogramBins, "histogram-bins", 10, "Bins in the similarity histogram (0 = no histogram)")
	runCmd.Flags().Int64Var(&reportEvery, "report-every", 0, "Log progress every N ticks (0 = off)")
	runCmd.Flags().BoolVar(&showGrid, "show-grid", false, "Print the final grid")
	runCmd.Flags().BoolVar(&verify, "verify", false, "Check all invariants after every step")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
