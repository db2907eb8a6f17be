package config

import "ursbench/internal/spec"

// Defaults applied by Normalize when fields are unset.
const (
	DefaultFilePattern         = "URS-*.md"
	DefaultRequirementCeiling  = 40
	DefaultGradeCeiling        = 20.0
	DefaultFoldCount           = 5
	DefaultTierLow             = 0.3
	DefaultTierHigh            = 0.7
	DefaultBootstrapIterations = 1000
	DefaultAlpha               = 0.05
	DefaultWorkers             = 4
	DefaultTimeoutSeconds      = 300
	DefaultOutputDir           = "./ursbench-out"
)

// DefaultWeights are the composite complexity weights.
var DefaultWeights = spec.ComplexityWeights{
	RequirementDensity: 0.25,
	Readability:        0.15,
	IntegrationDensity: 0.20,
	AmbiguityRate:      0.15,
	CustomRate:         0.25,
}

// Default keyword sets for the complexity sub-scores. Matching is
// case-insensitive on whole words or phrases.
var (
	DefaultIntegrationKeywords = []string{
		"interface", "integration", "integrate", "api", "middleware",
		"lims", "erp", "mes", "sap", "scada", "historian", "web service",
		"data exchange", "synchronization",
	}
	DefaultAmbiguityKeywords = []string{
		"tbd", "tba", "should", "enhanced", "appropriate", "adequate",
		"as needed", "etc", "user-friendly", "flexible", "efficient",
		"improved", "optimal",
	}
	DefaultCustomKeywords = []string{
		"custom", "bespoke", "proprietary", "in-house", "tailored",
		"custom-developed", "algorithm", "purpose-built",
	}
)

// Normalize fills unset config fields with defaults.
func Normalize(cfg *spec.Config) {
	if cfg.Corpus.FilePattern == "" {
		cfg.Corpus.FilePattern = DefaultFilePattern
	}
	if cfg.Complexity.RequirementCeiling == 0 {
		cfg.Complexity.RequirementCeiling = DefaultRequirementCeiling
	}
	if cfg.Complexity.GradeCeiling == 0 {
		cfg.Complexity.GradeCeiling = DefaultGradeCeiling
	}
	if cfg.Complexity.Weights == (spec.ComplexityWeights{}) {
		cfg.Complexity.Weights = DefaultWeights
	}
	if len(cfg.Complexity.IntegrationKeywords) == 0 {
		cfg.Complexity.IntegrationKeywords = append([]string(nil), DefaultIntegrationKeywords...)
	}
	if len(cfg.Complexity.AmbiguityKeywords) == 0 {
		cfg.Complexity.AmbiguityKeywords = append([]string(nil), DefaultAmbiguityKeywords...)
	}
	if len(cfg.Complexity.CustomKeywords) == 0 {
		cfg.Complexity.CustomKeywords = append([]string(nil), DefaultCustomKeywords...)
	}
	if cfg.Folds.Count == 0 {
		cfg.Folds.Count = DefaultFoldCount
	}
	if cfg.Folds.TierLow == 0 {
		cfg.Folds.TierLow = DefaultTierLow
	}
	if cfg.Folds.TierHigh == 0 {
		cfg.Folds.TierHigh = DefaultTierHigh
	}
	if cfg.Statistics.BootstrapIterations == 0 {
		cfg.Statistics.BootstrapIterations = DefaultBootstrapIterations
	}
	if cfg.Statistics.Alpha == 0 {
		cfg.Statistics.Alpha = DefaultAlpha
	}
	if cfg.Generator.Workers == 0 {
		cfg.Generator.Workers = DefaultWorkers
	}
	if cfg.Generator.TimeoutSeconds == 0 {
		cfg.Generator.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.Generator.OutputDir == "" {
		cfg.Generator.OutputDir = DefaultOutputDir
	}
}
