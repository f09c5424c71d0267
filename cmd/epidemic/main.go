package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/config"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/epi"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/export"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/metrics"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/model"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/sim"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/solver"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/storage"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/sweep"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/viz"
)

var (
	dataDir    string
	population float64
	horizon    float64
	step       float64
	beta       float64
	gamma      float64
	sigma      float64
	infected   float64
	exposed    float64
	recovered  float64
	integrator string
	tolerance  float64
	configFile string
	preset     string
	tidy       bool
	outFile    string
	// sweep
	sweepParam  string
	sweepFrom   float64
	sweepTo     float64
	sweepPoints int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "epidemic",
		Short: "compartmental outbreak simulator (SI, SIS, SIR, SEIR)",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".epidemic", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [variant]",
		Short: "run an outbreak simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&integrator, "integrator", "dopri45", "integrator (euler, rk4, dopri45)")
	runCmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "solver error tolerance")
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().BoolVar(&tidy, "tidy", false, "long format: one row per (time, compartment, value)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a saved run as an SVG chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output file (default <run_id>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets [variant]",
		Short: "list preset scenarios for a variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for variant: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [variant]",
		Short: "sweep one parameter across a range of values",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "beta", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1.0, "last value")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 10, "number of values")

	liveCmd := &cobra.Command{
		Use:   "live [variant]",
		Short: "watch the outbreak evolve live in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, sweepCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&population, "population", config.DefaultPopulation, "total population")
	cmd.Flags().Float64Var(&horizon, "horizon", config.DefaultHorizon, "time horizon")
	cmd.Flags().Float64Var(&step, "step", config.DefaultStep, "reporting step")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "transmission rate")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "recovery rate")
	cmd.Flags().Float64Var(&sigma, "sigma", 0.2, "progression rate (seir)")
	cmd.Flags().Float64Var(&infected, "infected", 1, "initial infectious count")
	cmd.Flags().Float64Var(&exposed, "exposed", 0, "initial exposed count (seir)")
	cmd.Flags().Float64Var(&recovered, "recovered", 0, "initial recovered count")
}

// scenario resolves the effective configuration: defaults, then preset, then
// config file, then any flag the user set explicitly.
func scenario(cmd *cobra.Command, variant string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Variant = variant

	if preset != "" {
		p := config.GetPreset(variant, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(variant))
		}
		// presets describe the outbreak, not the solver
		if p.Integrator == "" {
			p.Integrator = cfg.Integrator
		}
		if p.Tolerance == 0 {
			p.Tolerance = cfg.Tolerance
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		cfg.Variant = variant
	}

	if cfg.Params == nil {
		cfg.Params = map[string]float64{}
	}
	if cfg.Initial == nil {
		cfg.Initial = map[string]float64{}
	}

	if cmd.Flags().Changed("population") {
		cfg.Population = population
	}
	if cmd.Flags().Changed("horizon") {
		cfg.Horizon = horizon
	}
	if cmd.Flags().Changed("step") {
		cfg.Step = step
	}
	// Zero is a valid rate (beta=0 is the no-transmission scenario), so only
	// parameters the source left absent fall back to the flag default.
	setParam := func(name string, val float64) {
		if cmd.Flags().Changed(name) {
			cfg.Params[name] = val
			return
		}
		if _, ok := cfg.Params[name]; !ok {
			cfg.Params[name] = val
		}
	}
	setParam("beta", beta)
	setParam("gamma", gamma)
	setParam("sigma", sigma)
	if cmd.Flags().Changed("infected") || len(cfg.Initial) == 0 {
		cfg.Initial["I"] = infected
	}
	if cmd.Flags().Changed("exposed") {
		cfg.Initial["E"] = exposed
	}
	if cmd.Flags().Changed("recovered") {
		cfg.Initial["R"] = recovered
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("tolerance") {
		cfg.Tolerance = tolerance
	}

	return cfg, nil
}

// setup builds the validated pieces of a run from a resolved scenario. The
// initial map is pruned to compartments the variant declares so the shared
// flag set works across variants.
func setup(cfg *config.Config) (*model.Definition, epi.Params, map[string]float64, error) {
	v, ok := model.ParseVariant(cfg.Variant)
	if !ok {
		return nil, nil, nil, fmt.Errorf("unknown variant: %s (one of si, sis, sir, seir)", cfg.Variant)
	}
	def, err := model.New(v)
	if err != nil {
		return nil, nil, nil, err
	}

	params := epi.Params{}
	for _, name := range def.RequiredParams() {
		if val, ok := cfg.Params[name]; ok {
			params[name] = val
		}
	}

	initial := map[string]float64{}
	for name, val := range cfg.Initial {
		if _, ok := def.Index(name); ok && name != def.Susceptible() && val != 0 {
			initial[name] = val
		}
	}

	return def, params, initial, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd, args[0])
	if err != nil {
		return err
	}
	def, params, initial, err := setup(cfg)
	if err != nil {
		return err
	}

	st, err := solver.New(cfg.Integrator)
	if err != nil {
		return err
	}
	grid, err := sim.Grid(cfg.Horizon, cfg.Step)
	if err != nil {
		return err
	}

	opts := solver.DefaultOptions()
	opts.Tol = cfg.Tolerance

	fmt.Printf("running %s simulation...\n", cfg.Variant)
	start := time.Now()

	result, err := sim.RunWith(def, cfg.Population, initial, params, grid, st, opts)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	summary := metrics.Summary(result, cfg.Population)
	violations := sim.Check(result, cfg.Population, 1e-4*cfg.Population)

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(storage.RunMetadata{
		Population: cfg.Population,
		Horizon:    cfg.Horizon,
		Step:       cfg.Step,
		Integrator: cfg.Integrator,
		Params:     params,
		Metrics:    summary,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("points: %d\n", result.Len())
	fmt.Println("\nmetrics:")
	for name, val := range summary {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	if len(violations) > 0 {
		fmt.Printf("\nwarning: %d invariant violation(s), first: %s\n", len(violations), violations[0])
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVARIANT\tTIME\tPOPULATION\tHORIZON\tSTEP\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%.1f\t%.2f\t%s\n",
			run.ID,
			run.Variant,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Population,
			run.Horizon,
			run.Step,
			run.Integrator,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}

	compartments, _, states, err := store.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("variant: %s\n", meta.Variant)
	fmt.Printf("samples: %d\n\n", len(states))

	captions := map[string]string{
		"S": "S (susceptible)",
		"E": "E (exposed)",
		"I": "I (infectious)",
		"R": "R (recovered)",
	}

	for idx, name := range compartments {
		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][idx]
		}

		caption, ok := captions[name]
		if !ok {
			caption = name
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func loadResult(runID string) (*storage.RunMetadata, *sim.Result, error) {
	store := storage.New(dataDir)
	meta, err := store.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	compartments, times, states, err := store.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}

	result := &sim.Result{
		Variant:      model.Variant(meta.Variant),
		Compartments: compartments,
		Times:        times,
		States:       make([]epi.State, len(states)),
	}
	for i, s := range states {
		result.States[i] = s
	}
	return meta, result, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	if tidy {
		return export.WriteTidyCSV(os.Stdout, result)
	}
	return export.WriteCSV(os.Stdout, result)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, meta.Population, result, meta.Metrics)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, result, err := loadResult(args[0])
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = args[0] + ".svg"
	}
	if err := os.WriteFile(path, []byte(export.CurvesSVG(result, 720, 420)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd, args[0])
	if err != nil {
		return err
	}
	def, params, initial, err := setup(cfg)
	if err != nil {
		return err
	}

	req := sweep.Request{
		Variant:    def.Variant(),
		Population: cfg.Population,
		Initial:    initial,
		Params:     params,
		Horizon:    cfg.Horizon,
		Step:       cfg.Step,
	}

	values := sweep.Values(sweepFrom, sweepTo, sweepPoints)
	fmt.Printf("sweeping %s over [%.4f, %.4f] in %d runs\n\n", sweepParam, sweepFrom, sweepTo, len(values))

	points, err := sweep.Run(req, sweepParam, values)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPEAK_I\tPEAK_T\tATTACK_RATE\tFINAL_I\n", sweepParam)
	for _, p := range points {
		fmt.Fprintf(w, "%.4f\t%.1f\t%.1f\t%.4f\t%.2f\n",
			p.Value,
			p.Metrics["peak_infected"],
			p.Metrics["peak_time"],
			p.Metrics["attack_rate"],
			p.Metrics["final_infected"],
		)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd, args[0])
	if err != nil {
		return err
	}
	def, params, initial, err := setup(cfg)
	if err != nil {
		return err
	}
	if err := def.Validate(params); err != nil {
		return err
	}

	x0, err := sim.InitialState(def, cfg.Population, initial)
	if err != nil {
		return err
	}

	m := viz.NewModel(def, x0, params, cfg.Population, cfg.Step/4)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
