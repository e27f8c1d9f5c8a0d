// Package experiment orchestrates the per-channel pipeline: zero scan,
// density unfolding, and spacing statistics.
package experiment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/spectralab/guestat/internal/config"
	"github.com/spectralab/guestat/internal/logger"
	"github.com/spectralab/guestat/internal/model"
	"github.com/spectralab/guestat/internal/scan"
	"github.com/spectralab/guestat/internal/spacing"
	"github.com/spectralab/guestat/internal/unfold"
)

// DegenerateThreshold is the spacing count below which statistics are valid
// numbers but statistically meaningless. Degenerate results are flagged, not
// suppressed.
const DegenerateThreshold = 100

// ChannelResult holds one channel's pipeline output.
type ChannelResult struct {
	Channel    string
	Zeros      scan.Zeros
	Spacings   unfold.Spacings
	Metrics    spacing.Metrics
	Degenerate bool
	Duration   time.Duration
	Err        error
}

// Result aggregates a full experiment run. Channels preserves config order.
type Result struct {
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
	Channels    *orderedmap.OrderedMap[string, *ChannelResult]
	Errors      []error
	Success     bool
}

// Runner executes the experiment described by a validated Config.
// Each channel's evaluation depends only on its own inputs, so channels may
// run in parallel with no locking beyond result collection.
type Runner struct {
	cfg         *config.Config
	log         *logger.Logger
	channels    []model.Channel
	initialized bool
}

// NewRunner creates a runner. The configuration must already be validated;
// Initialize rechecks it before building any channel.
func NewRunner(cfg *config.Config, log *logger.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Runner{cfg: cfg, log: log}, nil
}

// Initialize validates the configuration and constructs the channel set.
// Configuration defects abort here, before any channel executes.
func (r *Runner) Initialize() error {
	if r.initialized {
		return nil
	}

	if err := r.cfg.Validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	params := model.Params{
		PMax:        r.cfg.Model.PMax,
		KMax:        r.cfg.Model.KMax,
		Seed:        r.cfg.Model.Seed,
		JitterWidth: r.cfg.Model.JitterWidth,
		Precision:   r.cfg.Model.Precision,
	}

	r.channels = r.channels[:0]
	for _, name := range r.cfg.Channels {
		ch, err := model.New(name, params)
		if err != nil {
			return fmt.Errorf("failed to build channel: %w", err)
		}
		r.channels = append(r.channels, ch)
	}

	r.initialized = true

	r.log.Infow("Experiment initialized",
		"channels", r.cfg.Channels,
		"t_min", r.cfg.Scan.TMin,
		"t_max", r.cfg.Scan.TMax,
		"dt", r.cfg.Scan.Dt,
		"max_zeros", r.cfg.Scan.MaxZeros,
		"p_max", r.cfg.Model.PMax,
		"k_max", r.cfg.Model.KMax,
		"seed", r.cfg.Model.Seed,
	)

	return nil
}

// Run executes the pipeline for every configured channel. A failure inside
// one channel (precision underflow in full_zeta, for example) is recorded on
// that channel's result and in Result.Errors; the remaining channels still
// run. The context is consulted between channels only; the numerical core has
// no cancellation semantics.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if !r.initialized {
		return nil, fmt.Errorf("runner not initialized")
	}
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}

	result := &Result{
		StartedAt: time.Now(),
		Channels:  orderedmap.NewOrderedMap[string, *ChannelResult](),
	}

	results := make([]*ChannelResult, len(r.channels))

	if r.cfg.Run.Parallel {
		var wg sync.WaitGroup
		for i, ch := range r.channels {
			wg.Add(1)
			go func(i int, ch model.Channel) {
				defer wg.Done()
				results[i] = r.runChannel(ch)
			}(i, ch)
		}
		wg.Wait()
	} else {
		for i, ch := range r.channels {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
			}
			results[i] = r.runChannel(ch)
		}
	}

	for _, cr := range results {
		result.Channels.Set(cr.Channel, cr)
		if cr.Err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("channel %s: %w", cr.Channel, cr.Err))
		}
	}

	result.CompletedAt = time.Now()
	result.Duration = result.CompletedAt.Sub(result.StartedAt)
	result.Success = len(result.Errors) == 0

	r.log.Infow("Experiment complete",
		"duration", result.Duration,
		"channels", result.Channels.Len(),
		"errors", len(result.Errors),
	)

	return result, nil
}

// runChannel executes scan -> unfold -> summarize for one channel.
func (r *Runner) runChannel(ch model.Channel) *ChannelResult {
	log := r.log.WithChannel(ch.Name())
	cr := &ChannelResult{Channel: ch.Name()}
	start := time.Now()
	defer func() { cr.Duration = time.Since(start) }()

	finder, err := scan.NewFinder(scan.Config{
		TMin:     r.cfg.Scan.TMin,
		TMax:     r.cfg.Scan.TMax,
		Dt:       r.cfg.Scan.Dt,
		MaxZeros: r.cfg.Scan.MaxZeros,
	}, log)
	if err != nil {
		cr.Err = err
		return cr
	}

	log.Debug("Scanning for zeros")
	zeros, err := finder.Find(ch)
	if err != nil {
		cr.Err = err
		return cr
	}
	cr.Zeros = zeros

	spacings, err := unfold.Unfold(zeros)
	if err != nil {
		cr.Err = err
		return cr
	}
	cr.Spacings = spacings

	metrics, err := spacing.Summarize(spacings)
	if err != nil {
		cr.Err = err
		return cr
	}
	cr.Metrics = metrics
	cr.Degenerate = metrics.N < DegenerateThreshold

	log.Infow("Channel complete",
		"zeros", len(zeros),
		"spacings", metrics.N,
		"mean_spacing", metrics.Mean,
		"mean_r", metrics.MeanR,
		"ks_poisson", metrics.KSPoisson.D,
		"ks_gue", metrics.KSGUE.D,
		"degenerate", cr.Degenerate,
	)

	return cr
}
