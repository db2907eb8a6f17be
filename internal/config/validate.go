package config

import (
	"fmt"
	"math"
	"strings"

	"ursbench/internal/spec"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

const weightSumTolerance = 1e-9

// Validate checks a normalized config for correctness.
func Validate(cfg *spec.Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if strings.TrimSpace(cfg.Corpus.Dir) == "" {
		add("corpus.dir", "is required")
	}
	if strings.TrimSpace(cfg.Corpus.FilePattern) == "" {
		add("corpus.file_pattern", "is required")
	}

	if cfg.Complexity.RequirementCeiling <= 0 {
		add("complexity.requirement_ceiling", "must be > 0")
	}
	if cfg.Complexity.GradeCeiling <= 0 {
		add("complexity.grade_ceiling", "must be > 0")
	}
	weights := cfg.Complexity.Weights
	weightFields := []struct {
		field string
		value float64
	}{
		{"complexity.weights.requirement_density", weights.RequirementDensity},
		{"complexity.weights.readability", weights.Readability},
		{"complexity.weights.integration_density", weights.IntegrationDensity},
		{"complexity.weights.ambiguity_rate", weights.AmbiguityRate},
		{"complexity.weights.custom_rate", weights.CustomRate},
	}
	for _, w := range weightFields {
		if w.value < 0 || w.value > 1 {
			add(w.field, "must be in [0, 1]")
		}
	}
	sum := weights.RequirementDensity + weights.Readability +
		weights.IntegrationDensity + weights.AmbiguityRate + weights.CustomRate
	if math.Abs(sum-1.0) > weightSumTolerance {
		add("complexity.weights", fmt.Sprintf("must sum to 1.0, got %.6f", sum))
	}

	if cfg.Folds.Count < 2 {
		add("folds.count", "must be >= 2")
	}
	if cfg.Folds.TierLow <= 0 || cfg.Folds.TierLow >= 1 {
		add("folds.tier_low", "must be in (0, 1)")
	}
	if cfg.Folds.TierHigh <= 0 || cfg.Folds.TierHigh >= 1 {
		add("folds.tier_high", "must be in (0, 1)")
	}
	if cfg.Folds.TierLow >= cfg.Folds.TierHigh {
		add("folds.tier_low", "must be below folds.tier_high")
	}

	if cfg.Statistics.BootstrapIterations < 1 {
		add("statistics.bootstrap_iterations", "must be >= 1")
	}
	if cfg.Statistics.Alpha <= 0 || cfg.Statistics.Alpha >= 1 {
		add("statistics.alpha", "must be in (0, 1)")
	}
	if baseline := cfg.Statistics.BaselineSuccessRate; baseline != nil {
		if *baseline < 0 || *baseline > 1 {
			add("statistics.baseline_success_rate", "must be in [0, 1]")
		}
	}

	if cfg.Generator.Workers < 1 {
		add("generator.workers", "must be >= 1")
	}
	if cfg.Generator.TimeoutSeconds < 1 {
		add("generator.timeout_seconds", "must be >= 1")
	}
	if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
		add("generator.output_dir", "is required")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
