package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spectralab/guestat/internal/experiment"
	"github.com/spectralab/guestat/internal/logger"
	"github.com/spectralab/guestat/internal/report"
)

var scanChannel string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a single channel for zeros",
	Long: `Scan locates the real zeros of one model channel over the configured
window and writes them as a two-column CSV (index, t), without computing
spacing statistics.

Example:
  guestat scan --channel riemann_siegel --t-min 10 --t-max 200 --dt 0.02`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanChannel, "channel", "",
		"Channel to scan (required)")
	scanCmd.MarkFlagRequired("channel")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Channels = []string{scanChannel}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	runner, err := experiment.NewRunner(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}
	if err := runner.Initialize(); err != nil {
		return fmt.Errorf("scan initialization failed: %w", err)
	}

	result, err := runner.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	cr, ok := result.Channels.Get(scanChannel)
	if !ok {
		return fmt.Errorf("no result for channel %q", scanChannel)
	}
	if cr.Err != nil {
		return fmt.Errorf("channel %s failed: %w", scanChannel, cr.Err)
	}

	writer, err := report.NewWriter(cfg.Output.Dir, log)
	if err != nil {
		return err
	}
	path, err := writer.WriteZerosCSV(cr.Channel, cr.Zeros)
	if err != nil {
		return err
	}

	fmt.Printf("Channel:  %s\n", cr.Channel)
	fmt.Printf("Window:   [%g, %g] dt=%g\n", cfg.Scan.TMin, cfg.Scan.TMax, cfg.Scan.Dt)
	fmt.Printf("Zeros:    %d (cap %d)\n", len(cr.Zeros), cfg.Scan.MaxZeros)
	fmt.Printf("Output:   %s\n", path)
	if len(cr.Zeros) == 0 {
		fmt.Println("No sign changes found: the window may hold no zeros, or dt may be too coarse.")
	}

	return nil
}
