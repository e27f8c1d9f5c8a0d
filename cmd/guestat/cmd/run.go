package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spectralab/guestat/internal/config"
	"github.com/spectralab/guestat/internal/experiment"
	"github.com/spectralab/guestat/internal/logger"
	"github.com/spectralab/guestat/internal/report"
)

var (
	runChannel  string
	runParallel bool
	runPlots    bool
	runHist     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the spacing-statistics experiment",
	Long: `Run executes the full pipeline for every configured channel:
zero scan over the grid, bisection refinement, density unfolding, and
spacing statistics (KS vs Poisson, KS vs GUE, mean r-statistic).

Outputs per channel: zeros_<channel>.csv (index, t) and an aggregated
summary.json, plus optional PNG spacing histograms.

Example:
  guestat run --config guestat.yaml --parallel --plots`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runChannel, "channel", "",
		"Run a single channel instead of all configured channels")
	runCmd.Flags().BoolVar(&runParallel, "parallel", false,
		"Run channels in parallel (one worker per channel)")
	runCmd.Flags().BoolVar(&runPlots, "plots", false,
		"Write PNG spacing histograms")
	runCmd.Flags().BoolVar(&runHist, "hist", false,
		"Print ASCII spacing histograms per channel")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if runChannel != "" {
		cfg.Channels = []string{runChannel}
	}
	cfg.ApplyOverrides(config.Overrides{Parallel: runParallel, Plots: runPlots})

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Infow("Starting experiment run",
		"config", GetConfigFile(),
		"channels", cfg.Channels,
		"outdir", cfg.Output.Dir,
	)

	runner, err := experiment.NewRunner(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}
	if err := runner.Initialize(); err != nil {
		return fmt.Errorf("experiment initialization failed: %w", err)
	}

	// Handle graceful shutdown between channels
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Warn("Received shutdown signal - completing current channel...")
		cancel()
	}()

	result, err := runner.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Experiment run cancelled by user")
			return nil
		}
		return fmt.Errorf("experiment run failed: %w", err)
	}

	writer, err := report.NewWriter(cfg.Output.Dir, log)
	if err != nil {
		return err
	}
	for el := result.Channels.Front(); el != nil; el = el.Next() {
		cr := el.Value
		if cr.Err != nil {
			continue
		}
		if _, err := writer.WriteZerosCSV(cr.Channel, cr.Zeros); err != nil {
			return err
		}
		if cfg.Output.Plots {
			if _, err := writer.SavePlot(cr.Channel, cr.Spacings); err != nil {
				return err
			}
		}
	}
	summaryPath, err := writer.WriteSummaryJSON(cfg, result)
	if err != nil {
		return err
	}

	// Display results
	fmt.Printf("\n=== Experiment Complete ===\n")
	fmt.Printf("Duration: %s\n", result.Duration)
	fmt.Printf("Summary: %s\n\n", summaryPath)
	fmt.Print(report.RenderTable(result))

	if runHist {
		for el := result.Channels.Front(); el != nil; el = el.Next() {
			if el.Value.Err != nil {
				continue
			}
			fmt.Printf("\n--- %s ---\n", el.Key)
			fmt.Print(report.RenderHistogram(el.Value.Spacings))
		}
	}

	if len(result.Errors) > 0 {
		fmt.Printf("\nErrors:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %v\n", e)
		}
		return fmt.Errorf("experiment completed with errors")
	}

	return nil
}
