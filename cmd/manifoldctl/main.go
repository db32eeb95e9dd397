package main

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/plannerkit/manifold/base"
	"github.com/plannerkit/manifold/control"
	"github.com/plannerkit/manifold/internal/config"
	"github.com/plannerkit/manifold/internal/scenario"
	"github.com/plannerkit/manifold/internal/trace"
	"github.com/plannerkit/manifold/names"
)

var (
	steps      int
	duration   float64
	seed       int64
	exportPath string
	configFile string
	plotIndex  int
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00"))
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	rootCmd := &cobra.Command{
		Use:   "manifoldctl",
		Short: "exercise control manifolds: compose, sample, propagate, project",
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "propagate a trajectory under randomly sampled controls",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of control segments")
	runCmd.Flags().Float64Var(&duration, "duration", config.DefaultControlDuration, "duration per control segment")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().StringVar(&exportPath, "export", "", "write trajectory json to this path")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().IntVar(&plotIndex, "plot", 0, "state component to plot")

	inspectCmd := &cobra.Command{
		Use:   "inspect [scenario]",
		Short: "print a scenario's manifold settings",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectScenario,
	}

	projectCmd := &cobra.Command{
		Use:   "project [scenario]",
		Short: "propagate and print projected cell coordinates",
		Args:  cobra.ExactArgs(1),
		RunE:  projectScenario,
	}
	projectCmd.Flags().IntVar(&steps, "steps", 20, "number of control segments")
	projectCmd.Flags().Float64Var(&duration, "duration", config.DefaultControlDuration, "duration per control segment")
	projectCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			ns := scenario.NewRegistry().Names()
			sort.Strings(ns)
			for _, n := range ns {
				fmt.Println(n)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, inspectCmd, projectCmd, listCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadRunConfig(args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Scenario = args[0]
	}
	if steps != config.DefaultSteps {
		cfg.Steps = steps
	}
	if duration != config.DefaultControlDuration {
		cfg.ControlDuration = duration
	}
	if exportPath != "" {
		cfg.Export = exportPath
	}
	if cfg.Seed == 0 {
		cfg.Seed = seed
	}
	return cfg, cfg.Validate()
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(args)
	if err != nil {
		return err
	}

	setup, err := scenario.NewRegistry().Build(cfg.Scenario, names.Default)
	if err != nil {
		return err
	}
	defer setup.Close()
	if err := setup.Manifold.Setup(); err != nil {
		return err
	}

	log.Info().
		Str("scenario", cfg.Scenario).
		Str("manifold", setup.Manifold.Name()).
		Int("dimension", setup.Manifold.Dimension()).
		Int("steps", cfg.Steps).
		Float64("control_duration", cfg.ControlDuration).
		Int64("seed", cfg.Seed).
		Msg("running")

	tr, err := propagateTrajectory(setup, cfg, false)
	if err != nil {
		return err
	}

	data := tr.Component(plotIndex)
	if len(data) > 1 {
		fmt.Println(headerStyle.Render(fmt.Sprintf("state[%d] over %d segments", plotIndex, cfg.Steps)))
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(cfg.Scenario)))
	}

	if cfg.Export != "" {
		if err := tr.ExportJSON(cfg.Export); err != nil {
			return err
		}
		log.Info().Str("path", cfg.Export).Msg("trajectory exported")
	}
	return nil
}

func propagateTrajectory(setup *scenario.Setup, cfg *config.Config, project bool) (*trace.Trajectory, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	sampler := setup.Manifold.AllocSampler(rng)
	ctrl := setup.Manifold.AllocControl()
	defer setup.Manifold.FreeControl(ctrl)

	state := setup.Initial
	result := setup.StateManifold.AllocState()
	tr := trace.New(cfg.Scenario, cfg.ControlDuration)
	tr.Record(0, state, nil)

	t := 0.0
	for i := 0; i < cfg.Steps; i++ {
		if err := sampler.Sample(ctrl); err != nil {
			return nil, err
		}
		if err := setup.Manifold.Propagate(state, ctrl, cfg.ControlDuration, result); err != nil {
			return nil, err
		}
		if !base.StateIsValid(result) {
			log.Warn().Float64("t", t).Msg("propagation left finite range, stopping")
			break
		}
		t += cfg.ControlDuration
		tr.Record(t, result, controlValues(setup.Manifold, ctrl))
		if project {
			coord, err := setup.Projection.Project(projectableState(result))
			if err != nil {
				return nil, err
			}
			tr.RecordCell(coord)
		}
		state, result = result, state
	}
	return tr, nil
}

// controlValues flattens a control through the manifold's global scalar
// addressing.
func controlValues(m control.Manifold, c control.Control) []float64 {
	var out []float64
	for i := 0; ; i++ {
		p := m.ValueAt(c, i)
		if p == nil {
			return out
		}
		out = append(out, *p)
	}
}

// projectableState unwraps the first component of a compound state, since
// the demo projections are defined on the first sub-system.
func projectableState(s base.State) base.State {
	if cs, ok := s.(*base.CompoundState); ok && len(cs.Components) > 0 {
		return cs.Components[0]
	}
	return s
}

func inspectScenario(cmd *cobra.Command, args []string) error {
	setup, err := scenario.NewRegistry().Build(args[0], names.Default)
	if err != nil {
		return err
	}
	defer setup.Close()
	if err := setup.Manifold.Setup(); err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("manifold settings"))
	setup.Manifold.PrintSettings(os.Stdout)
	fmt.Printf("control dimension: %d\n", setup.Manifold.Dimension())
	fmt.Printf("projection dimension: %d (cell sizes %v)\n", setup.Projection.Dimension(), setup.Projection.CellSizes())
	if setup.Manifold.CanPropagateBackward() {
		fmt.Println(okStyle.Render("backward propagation: supported"))
	} else {
		fmt.Println(warnStyle.Render("backward propagation: not supported"))
	}
	return nil
}

func projectScenario(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Scenario = args[0]
	cfg.Steps = steps
	cfg.ControlDuration = duration
	cfg.Seed = seed
	if err := cfg.Validate(); err != nil {
		return err
	}

	setup, err := scenario.NewRegistry().Build(cfg.Scenario, names.Default)
	if err != nil {
		return err
	}
	defer setup.Close()
	if err := setup.Manifold.Setup(); err != nil {
		return err
	}

	tr, err := propagateTrajectory(setup, cfg, true)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("projected cells (%d dims)", setup.Projection.Dimension())))
	for i, coord := range tr.CellCoord {
		fmt.Printf("%6.2f  %v\n", tr.Times[i+1], coord)
	}
	return nil
}
