// Package config provides configuration structures and loading for guestat.
package config

// ChannelNames is the closed set of model channels, in canonical order.
var ChannelNames = []string{
	"independent_primes",
	"riemann_siegel",
	"full_zeta",
	"fake_primes_jitter",
	"rs_phase_randomized",
}

// Config represents the complete application configuration.
type Config struct {
	Scan     ScanConfig    `yaml:"scan" mapstructure:"scan"`
	Model    ModelConfig   `yaml:"model" mapstructure:"model"`
	Channels []string      `yaml:"channels" mapstructure:"channels"`
	Run      RunConfig     `yaml:"run" mapstructure:"run"`
	Output   OutputConfig  `yaml:"output" mapstructure:"output"`
	Logging  LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// ScanConfig defines the sampling grid for the zero search.
// dt must be small enough to resolve the fastest oscillation of the chosen
// channel, otherwise sign changes are missed; that is a precondition on the
// caller, not something the finder can detect.
type ScanConfig struct {
	TMin     float64 `yaml:"t_min" mapstructure:"t_min"`
	TMax     float64 `yaml:"t_max" mapstructure:"t_max"`
	Dt       float64 `yaml:"dt" mapstructure:"dt"`
	MaxZeros int     `yaml:"max_zeros" mapstructure:"max_zeros"`
}

// ModelConfig carries the per-channel model parameters.
type ModelConfig struct {
	PMax        int     `yaml:"p_max" mapstructure:"p_max"`               // max prime for the Euler product channels
	KMax        int     `yaml:"k_max" mapstructure:"k_max"`               // Euler factor power truncation (k >= 1)
	Seed        uint64  `yaml:"seed" mapstructure:"seed"`                 // seed for the two negative controls
	JitterWidth float64 `yaml:"jitter_width" mapstructure:"jitter_width"` // uniform half-width for prime jitter
	Precision   float64 `yaml:"precision" mapstructure:"precision"`       // target truncation error for full_zeta
}

// RunConfig controls experiment execution.
type RunConfig struct {
	Parallel bool `yaml:"parallel" mapstructure:"parallel"` // one worker per channel
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	Dir   string `yaml:"dir" mapstructure:"dir"`
	Plots bool   `yaml:"plots" mapstructure:"plots"` // write PNG spacing histograms
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
// The scan window and model parameters match the reference experiment.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			TMin:     10.0,
			TMax:     200.0,
			Dt:       0.02,
			MaxZeros: 120,
		},
		Model: ModelConfig{
			PMax:        2000,
			KMax:        1,
			Seed:        0,
			JitterWidth: 0.5,
			Precision:   1e-10,
		},
		Channels: append([]string(nil), ChannelNames...),
		Run: RunConfig{
			Parallel: false,
		},
		Output: OutputConfig{
			Dir:   "out_gue",
			Plots: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// Overrides contains CLI flag values that override config file settings.
type Overrides struct {
	LogLevel  string
	LogFormat string
	TMin      float64
	TMax      float64
	Dt        float64
	MaxZeros  int
	PMax      int
	KMax      int
	Seed      uint64
	SeedSet   bool
	OutDir    string
	Parallel  bool
	Plots     bool
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only set/non-zero values are applied.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if o.TMin != 0 {
		c.Scan.TMin = o.TMin
	}
	if o.TMax != 0 {
		c.Scan.TMax = o.TMax
	}
	if o.Dt > 0 {
		c.Scan.Dt = o.Dt
	}
	if o.MaxZeros > 0 {
		c.Scan.MaxZeros = o.MaxZeros
	}
	if o.PMax > 0 {
		c.Model.PMax = o.PMax
	}
	if o.KMax > 0 {
		c.Model.KMax = o.KMax
	}
	if o.SeedSet {
		c.Model.Seed = o.Seed
	}
	if o.OutDir != "" {
		c.Output.Dir = o.OutDir
	}
	if o.Parallel {
		c.Run.Parallel = true
	}
	if o.Plots {
		c.Output.Plots = true
	}
}
