package config

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
// Configuration defects are rejected here, before any channel executes;
// values are never silently clamped.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateScan()...)
	errors = append(errors, c.validateModel()...)
	errors = append(errors, c.validateChannels()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateScan() ValidationErrors {
	var errors ValidationErrors

	if c.Scan.Dt <= 0 {
		errors = append(errors, ValidationError{
			Field:   "scan.dt",
			Message: "dt must be positive",
		})
	}

	if c.Scan.TMin >= c.Scan.TMax {
		errors = append(errors, ValidationError{
			Field:   "scan.t_min",
			Message: "t_min must be less than t_max",
		})
	}

	// The unfolding density log(t/2pi)/(2pi) is only positive above 2pi.
	if c.Scan.TMin <= 2*math.Pi {
		errors = append(errors, ValidationError{
			Field:   "scan.t_min",
			Message: "t_min must be greater than 2*pi for density unfolding",
		})
	}

	if c.Scan.MaxZeros <= 0 {
		errors = append(errors, ValidationError{
			Field:   "scan.max_zeros",
			Message: "max_zeros must be positive",
		})
	}

	return errors
}

func (c *Config) validateModel() ValidationErrors {
	var errors ValidationErrors

	if c.Model.PMax < 2 {
		errors = append(errors, ValidationError{
			Field:   "model.p_max",
			Message: "p_max must be at least 2 (the smallest prime)",
		})
	}

	if c.Model.KMax < 1 {
		errors = append(errors, ValidationError{
			Field:   "model.k_max",
			Message: "k_max must be at least 1",
		})
	}

	if c.Model.JitterWidth < 0 {
		errors = append(errors, ValidationError{
			Field:   "model.jitter_width",
			Message: "jitter_width cannot be negative",
		})
	}

	if c.Model.Precision <= 0 {
		errors = append(errors, ValidationError{
			Field:   "model.precision",
			Message: "precision must be positive",
		})
	}

	return errors
}

func (c *Config) validateChannels() ValidationErrors {
	var errors ValidationErrors

	if len(c.Channels) == 0 {
		errors = append(errors, ValidationError{
			Field:   "channels",
			Message: "at least one channel must be selected",
		})
	}

	known := make(map[string]bool, len(ChannelNames))
	for _, name := range ChannelNames {
		known[name] = true
	}

	seen := make(map[string]bool, len(c.Channels))
	for i, name := range c.Channels {
		field := fmt.Sprintf("channels[%d]", i)
		if !known[name] {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("unknown channel %q (valid: %s)", name, strings.Join(ChannelNames, ", ")),
			})
			continue
		}
		if seen[name] {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("channel %q selected more than once", name),
			})
		}
		seen[name] = true
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	if c.Output.Dir == "" {
		errors = append(errors, ValidationError{
			Field:   "output.dir",
			Message: "output directory is required",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
