package spec

// Config is the parsed .ursbench.yml evaluation configuration.
type Config struct {
	Version    int              `yaml:"version"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Complexity ComplexityConfig `yaml:"complexity"`
	Folds      FoldsConfig      `yaml:"folds"`
	Statistics StatisticsConfig `yaml:"statistics"`
	Generator  GeneratorConfig  `yaml:"generator"`
}

// CorpusConfig locates the labeled requirements corpus.
type CorpusConfig struct {
	Dir         string `yaml:"dir"`
	FilePattern string `yaml:"file_pattern"`
}

// ComplexityConfig controls the composite complexity score.
type ComplexityConfig struct {
	RequirementCeiling  int               `yaml:"requirement_ceiling"`
	GradeCeiling        float64           `yaml:"grade_ceiling"`
	Weights             ComplexityWeights `yaml:"weights"`
	IntegrationKeywords []string          `yaml:"integration_keywords"`
	AmbiguityKeywords   []string          `yaml:"ambiguity_keywords"`
	CustomKeywords      []string          `yaml:"custom_keywords"`
}

// ComplexityWeights are the component weights of the composite score.
// They must sum to 1.0.
type ComplexityWeights struct {
	RequirementDensity float64 `yaml:"requirement_density"`
	Readability        float64 `yaml:"readability"`
	IntegrationDensity float64 `yaml:"integration_density"`
	AmbiguityRate      float64 `yaml:"ambiguity_rate"`
	CustomRate         float64 `yaml:"custom_rate"`
}

// FoldsConfig controls stratified cross-validation fold assignment.
type FoldsConfig struct {
	Count    int     `yaml:"count"`
	TierLow  float64 `yaml:"tier_low"`
	TierHigh float64 `yaml:"tier_high"`
}

// StatisticsConfig controls aggregation and hypothesis testing.
type StatisticsConfig struct {
	BootstrapIterations int      `yaml:"bootstrap_iterations"`
	BootstrapSeed       *int64   `yaml:"bootstrap_seed"`
	Alpha               float64  `yaml:"alpha"`
	BaselineSuccessRate *float64 `yaml:"baseline_success_rate"`
}

// GeneratorConfig describes the external test-generation command the
// run driver invokes once per test document.
type GeneratorConfig struct {
	Command        []string `yaml:"command"`
	Workers        int      `yaml:"workers"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	OutputDir      string   `yaml:"output_dir"`
}
