package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/trackdrive/internal/config"
	"github.com/san-kum/trackdrive/internal/driver"
	"github.com/san-kum/trackdrive/internal/export"
	"github.com/san-kum/trackdrive/internal/logging"
	"github.com/san-kum/trackdrive/internal/metrics"
	"github.com/san-kum/trackdrive/internal/sim"
	"github.com/san-kum/trackdrive/internal/storage"
	"github.com/san-kum/trackdrive/internal/tui"
	"github.com/san-kum/trackdrive/internal/vehicle"
	"github.com/spf13/cobra"
)

var (
	dataDir   string
	logLevel  string
	logFormat string

	configFile   string
	dt           float64
	duration     float64
	sampleEvery  int
	forwardSpeed float64
	coupling     float64
	driverName   string
	throttle     float64
	brake        float64
	until        float64
	kp           float64
	ki           float64
	kd           float64
	target       float64
	stopOnFault  bool
	noSave       bool
	sideViewSVG  string

	plotField string
	plotWheel string
	plotSVG   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "trackdrive",
		Short:         "wheel suspension and coupled drivetrain simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".trackdrive", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario and store its telemetry",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&stopOnFault, "stop-on-fault", false, "abort when a wheel faults")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().StringVar(&sideViewSVG, "svg", "", "write a side view of the final state to this svg file")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "drive a scenario interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata and metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a telemetry field",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotField, "field", "height", "field: "+strings.Join(storage.SeriesFields(), ", "))
	plotCmd.Flags().StringVar(&plotWheel, "wheel", "", "wheel name (default first wheel)")
	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "also write the plot to this svg file")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and telemetry to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tWHEELS\tGROUPS\tDRIVER\tDURATION")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%.1fs\n", name, len(cfg.Wheels), len(cfg.Groups), cfg.Driver.Name, cfg.Duration)
			}
			return w.Flush()
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate [preset|file.yaml]",
		Short: "check a scenario for errors and wheel issues",
		Args:  cobra.ExactArgs(1),
		RunE:  validateScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset...]",
		Short: "run several scenarios concurrently and compare metrics",
		RunE:  sweepScenarios,
	}
	sweepCmd.Flags().Float64Var(&duration, "time", 0, "override duration for every scenario")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, showCmd, plotCmd, exportJSONCmd, presetsCmd, validateCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() (*slog.Logger, error) {
	return logging.New(os.Stderr, logLevel, logFormat)
}

func runScenario(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	v, d, err := cfg.Build(log, nil)
	if err != nil {
		return err
	}
	if issues := v.Issues(); issues != nil {
		fmt.Fprintf(os.Stderr, "warning: wheels excluded from distribution:\n%v\n", issues)
	}

	s := sim.New(v, d, log)
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s (%d wheels, %s driver)...\n", cfg.Name, len(cfg.Wheels), cfg.Driver.Name)
	start := time.Now()
	result, runErr := s.Run(ctx, sim.Config{
		Duration:    cfg.Duration,
		SampleEvery: cfg.SampleEvery,
		StopOnFault: stopOnFault,
	})
	if result == nil {
		return runErr
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	if len(result.Faults) > 0 {
		fmt.Printf("faulted wheels: %s\n", strings.Join(result.Faults, ", "))
	}
	printMetrics(result.Metrics)
	printFinal(result.Final())

	if sideViewSVG != "" {
		if err := writeSideView(sideViewSVG, cfg, result.Final()); err != nil {
			return err
		}
		fmt.Printf("side view: %s\n", sideViewSVG)
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %-18s %.6g\n", name, m[name])
	}
}

func printFinal(s vehicle.Snapshot) {
	fmt.Printf("\nfinal t=%.2fs height=%.3f distance=%.2f\n", s.Time, s.ChassisHeight, s.Distance)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tRPM\tTRACK RPM\tBELT\tMEMBERS\tAIRBORNE")
	for _, g := range s.Groups {
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.3f\t%d\t%d\n", g.Name, g.ReferenceRPM, g.TrackRPM, g.BeltSpeed, g.Report.Members, g.Report.Airborne)
	}
	w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	scenarios := config.ListPresets()
	if len(args) > 0 {
		scenarios = []string{args[0]}
	}
	if configFile != "" {
		scenarios = []string{configFile}
	}

	// log output would corrupt the alternate screen
	if logLevel != "debug" {
		log = logging.Nop()
	}

	return tui.Run(scenarios, func(name string) (*vehicle.Vehicle, error) {
		cfg, err := resolve(name)
		if err != nil {
			return nil, err
		}
		v, _, err := cfg.Build(log, nil)
		return v, err
	})
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tDRIVER\tFAULTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Driver,
			len(run.Faults),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run:      %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("time:     %s\n", meta.Timestamp.Format(time.RFC3339))
	fmt.Printf("steps:    %d (%d samples, dt=%.4f)\n", meta.Steps, meta.Samples, meta.Dt)
	fmt.Printf("driver:   %s\n", meta.Driver)
	if len(meta.Faults) > 0 {
		fmt.Printf("faults:   %s\n", strings.Join(meta.Faults, ", "))
	}
	printMetrics(meta.Metrics)
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, err := st.LoadTelemetry(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	data, err := storage.Series(rows, plotField, plotWheel)
	if err != nil {
		return err
	}

	wheelName := plotWheel
	if wheelName == "" {
		wheelName = rows[0].Wheel
	}
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(data))

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s (%s) vs time", plotField, wheelName)),
	)
	fmt.Println(graph)

	if plotSVG != "" {
		times, err := storage.Series(rows, "time", wheelName)
		if err != nil {
			return err
		}
		svg, err := export.SeriesSVG(export.Points(times, data), 800, 300, "#00ff00")
		if err != nil {
			return err
		}
		if err := os.WriteFile(plotSVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nsvg: %s\n", plotSVG)
	}
	return nil
}

func writeSideView(path string, cfg *config.Config, snap vehicle.Snapshot) error {
	radii := make(map[string]float64, len(cfg.Wheels))
	for _, w := range cfg.Wheels {
		radii[w.Name] = w.Radius
	}
	svg, err := export.SideViewSVG(snap, func(name string) float64 { return radii[name] }, 800, 300)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(svg), 0644)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadTelemetry(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*storage.RunMetadata
		Telemetry []storage.TelemetryRow `json:"telemetry"`
	}{meta, rows})
}

func validateScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(args[0])
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s is invalid:\n%w", cfg.Name, err)
	}
	if issues := cfg.Issues(); issues != nil {
		fmt.Printf("%s: runnable, wheels with issues are excluded from distribution:\n%v\n", cfg.Name, issues)
		return nil
	}
	fmt.Printf("%s: ok\n", cfg.Name)
	return nil
}

func sweepScenarios(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}

	cases := make([]sim.Case, 0, len(names))
	for _, name := range names {
		cfg, err := resolve(name)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("time") {
			cfg.Duration = duration
		}
		cases = append(cases, sim.Case{
			Name:     cfg.Name,
			Duration: cfg.Duration,
			Build: func() (*vehicle.Vehicle, driver.Driver, error) {
				return cfg.Build(log.With("case", cfg.Name), nil)
			},
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := sim.NewSweep(cases, metrics.Default).Run(ctx, sim.Config{SampleEvery: 100})
	if err != nil {
		return err
	}
	fmt.Printf("%d scenarios in %v\n\n", len(results), time.Since(start))

	cols := []string{"torque_residual", "momentum_residual", "grounded_ratio", "velocity_spread", "peak_compression", "skipped_ticks"}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\t"+strings.ToUpper(strings.Join(cols, "\t")))
	for i, r := range results {
		fmt.Fprint(w, cases[i].Name)
		for _, c := range cols {
			fmt.Fprintf(w, "\t%.4g", r.Metrics[c])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
