package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pitcheck/adapters/artifact"
	"pitcheck/adapters/excel"
	"pitcheck/adapters/plot"
	"pitcheck/adapters/rng"
	"pitcheck/app"
	"pitcheck/domain/pit"
	"pitcheck/internal"
	"pitcheck/internal/testkit"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pitcheck-cli",
		Short: "LOO-PIT calibration diagnostics for posterior predictive draws",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newDemoCmd(),
		newReferenceCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var seed int64
	var refSeries, frames int
	var bandwidth float64
	var outDir string
	var animate bool

	cmd := &cobra.Command{
		Use:   "run [obs-file] [draws-file]",
		Short: "Run the calibration pipeline on an observation table and draw matrix",
		Long: `Run the full pipeline: raw PIT, boundary correction, reference band,
diagnostics, plots and report.

Example: pitcheck-cli run observations.csv draws.gob --seed 12345 --out ./out`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newService()
			result, err := service.Run(cmd.Context(), app.RunRequest{
				ObsPath:         args[0],
				DrawsPath:       args[1],
				OutDir:          outDir,
				Seed:            seed,
				RefSeries:       refSeries,
				AnimationFrames: frames,
				Bandwidth:       bandwidth,
				Animate:         animate,
			})
			if err != nil {
				return err
			}
			printResult(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for the reference band")
	cmd.Flags().IntVar(&refSeries, "ref-series", 50, "Number of uniform reference series")
	cmd.Flags().IntVar(&frames, "frames", 40, "Animation frame count")
	cmd.Flags().Float64Var(&bandwidth, "bandwidth", 0, "Fixed kernel bandwidth (0 = Silverman's rule)")
	cmd.Flags().StringVar(&outDir, "out", "./out", "Output directory")
	cmd.Flags().BoolVar(&animate, "animate", true, "Render the ECDF accumulation GIF")

	return cmd
}

func newDemoCmd() *cobra.Command {
	var seed int64
	var nObs, nDraws int
	var scenario string
	var outDir string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the pipeline end-to-end on a synthetic fixture",
		Long: `Generate a synthetic hierarchical-regression fixture with a known
dispersion defect, write its artifacts, and run the pipeline on them.

Scenarios: calibrated, overdispersed, underdispersed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), testkit.Scenario(scenario), seed, nObs, nDraws, outDir)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for fixture and reference band")
	cmd.Flags().IntVar(&nObs, "observations", 200, "Number of synthetic observations")
	cmd.Flags().IntVar(&nDraws, "draws", 3000, "Posterior draws per observation")
	cmd.Flags().StringVar(&scenario, "scenario", string(testkit.ScenarioCalibrated), "Dispersion scenario")
	cmd.Flags().StringVar(&outDir, "out", "./out/demo", "Output directory")

	return cmd
}

func newReferenceCmd() *cobra.Command {
	var seed int64
	var nSeries, nPoints int

	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Print deviation stats for boundary-corrected uniform reference series",
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := pit.GenerateReferenceSeries(rand.New(rand.NewSource(seed)), nSeries, nPoints)
			if err != nil {
				return err
			}
			for i, s := range series {
				fmt.Printf("series %2d: mean |dev| from identity = %.5f\n", i, meanAbsDeviation(s))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")
	cmd.Flags().IntVar(&nSeries, "series", 10, "Number of reference series")
	cmd.Flags().IntVar(&nPoints, "points", 200, "Points per series")

	return cmd
}

func runDemo(ctx context.Context, scenario testkit.Scenario, seed int64, nObs, nDraws int, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	fixture := testkit.NewFixture(rand.New(rand.NewSource(seed)), scenario, nObs, nDraws)

	drawsPath := filepath.Join(outDir, "draws.gob")
	store := artifact.NewGobStore()
	if err := store.Save(drawsPath, fixture.Matrix); err != nil {
		return err
	}

	obsPath := filepath.Join(outDir, "observations.csv")
	if err := writeObservationsCSV(obsPath, fixture.Observations); err != nil {
		return err
	}

	result, err := newService().Run(ctx, app.RunRequest{
		ObsPath:   obsPath,
		DrawsPath: drawsPath,
		OutDir:    outDir,
		Seed:      seed,
		RefSeries: 50,
		Animate:   true,
	})
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s -> verdict %s\n", scenario, result.Diagnostics.Verdict)
	printResult(result)
	return nil
}

func newService() *app.CalibrationService {
	return app.NewCalibrationService(
		excel.NewDataReader(),
		artifact.NewGobStore(),
		plot.NewRenderer(plot.DefaultStyle()),
		rng.NewStreamFactory(),
		nil,
		internal.NewDefaultLogger(),
	)
}

func printResult(result *app.RunResult) {
	d := result.Diagnostics
	fmt.Printf("n=%d mean=%.4f variance=%.4f (uniform %.4f) KS=%.4f p=%.3f\n",
		d.N, d.Mean, d.Variance, 1.0/12.0, d.KSStatistic, d.KSPValue)
	fmt.Printf("verdict: %s\n", d.Verdict)
	fmt.Printf("report: %s\n", result.ReportPath)
}

func writeObservationsCSV(path string, observations []pit.Observation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, "response,covariate,group"); err != nil {
		return err
	}
	for _, obs := range observations {
		if _, err := fmt.Fprintf(f, "%g,%g,%s\n", obs.Response, obs.Covariate, obs.Group); err != nil {
			return err
		}
	}
	return nil
}

func meanAbsDeviation(sorted []float64) float64 {
	n := float64(len(sorted))
	var sum float64
	for i, v := range sorted {
		expected := (float64(i) + 0.5) / n
		sum += math.Abs(v - expected)
	}
	return sum / n
}
