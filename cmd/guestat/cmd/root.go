package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/spectralab/guestat/internal/config"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	tMin      float64
	tMax      float64
	dt        float64
	maxZeros  int
	pMax      int
	kMax      int
	seed      uint64
	outDir    string
)

var rootCmd = &cobra.Command{
	Use:   "guestat",
	Short: "Zero-spacing statistics suite for spectral models",
	Long: `A numerical experiment suite that probes whether functional-equation
style global constraints turn Poisson-like zero spacings into GUE-like
level repulsion.

It scans model channels for real zeros, unfolds the spacings to unit
mean density, and compares the empirical spacing distribution against
the Poisson and GUE Wigner-surmise reference laws.

Channels:
  - independent_primes   partial Euler product baseline (expected Poisson)
  - riemann_siegel       Riemann-Siegel Z(t) main sum (carries the symmetry)
  - full_zeta            zeta on the critical line (ground truth)
  - fake_primes_jitter   negative control: jittered primes
  - rs_phase_randomized  negative control: randomized phases`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "guestat.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Scan window overrides
	rootCmd.PersistentFlags().Float64Var(&tMin, "t-min", 0,
		"Override scan window start")
	rootCmd.PersistentFlags().Float64Var(&tMax, "t-max", 0,
		"Override scan window end")
	rootCmd.PersistentFlags().Float64Var(&dt, "dt", 0,
		"Override scan grid step")
	rootCmd.PersistentFlags().IntVar(&maxZeros, "max-zeros", 0,
		"Override maximum zeros per channel")

	// Model overrides
	rootCmd.PersistentFlags().IntVar(&pMax, "p-max", 0,
		"Override max prime for the Euler product channels")
	rootCmd.PersistentFlags().IntVar(&kMax, "k-max", 0,
		"Override Euler product power truncation (k >= 1)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0,
		"Override seed for the negative-control channels")

	// Output override
	rootCmd.PersistentFlags().StringVar(&outDir, "outdir", "",
		"Override output directory")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// GetCLIOverrides returns the CLI flag override values. The seed is only
// treated as set when the flag was passed, since zero is a valid seed.
func GetCLIOverrides() config.Overrides {
	return config.Overrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		TMin:      tMin,
		TMax:      tMax,
		Dt:        dt,
		MaxZeros:  maxZeros,
		PMax:      pMax,
		KMax:      kMax,
		Seed:      seed,
		SeedSet:   rootCmd.PersistentFlags().Changed("seed"),
		OutDir:    outDir,
	}
}

// loadConfig loads the configuration file if present, falling back to
// defaults when the default config file does not exist, and applies CLI
// overrides. An explicitly passed --config that cannot be read is an error.
func loadConfig() (*config.Config, error) {
	configFile := GetConfigFile()

	var cfg *config.Config
	if _, err := os.Stat(configFile); os.IsNotExist(err) && !rootCmd.PersistentFlags().Changed("config") {
		cfg = config.DefaultConfig()
	} else {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyOverrides(GetCLIOverrides())
	return cfg, nil
}
