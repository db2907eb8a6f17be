// Package complexity computes composite complexity scores for
// requirements documents from structural and lexical features.
package complexity

import (
	"math"

	"ursbench/internal/corpus"
	"ursbench/internal/spec"
)

// integrationPer100Ceiling is the integration-keyword density (matches
// per 100 words) that maps to a sub-score of 1.0.
const integrationPer100Ceiling = 5.0

// Breakdown holds the composite score and its sub-scores.
type Breakdown struct {
	Composite          float64 `json:"composite"`
	RequirementDensity float64 `json:"requirement_density"`
	Readability        float64 `json:"readability"`
	IntegrationDensity float64 `json:"integration_density"`
	AmbiguityRate      float64 `json:"ambiguity_rate"`
	CustomRate         float64 `json:"custom_rate"`
	GradeLevel         float64 `json:"grade_level"`
	Warning            string  `json:"warning,omitempty"`
}

// Scorer computes complexity scores under a fixed configuration.
type Scorer struct {
	cfg         spec.ComplexityConfig
	integration *keywordMatcher
	ambiguity   *keywordMatcher
	custom      *keywordMatcher
}

// NewScorer compiles keyword matchers for the given configuration.
func NewScorer(cfg spec.ComplexityConfig) (*Scorer, error) {
	integration, err := newKeywordMatcher(cfg.IntegrationKeywords)
	if err != nil {
		return nil, err
	}
	ambiguity, err := newKeywordMatcher(cfg.AmbiguityKeywords)
	if err != nil {
		return nil, err
	}
	custom, err := newKeywordMatcher(cfg.CustomKeywords)
	if err != nil {
		return nil, err
	}
	return &Scorer{
		cfg:         cfg,
		integration: integration,
		ambiguity:   ambiguity,
		custom:      custom,
	}, nil
}

// Score computes the composite complexity for a document. The result is
// deterministic for identical document content. A document without any
// requirement counts scores 0.0 and carries a diagnostic warning; a
// document without text is invalid.
func (s *Scorer) Score(doc *corpus.Document) (Breakdown, error) {
	if doc == nil || doc.Text == "" {
		id, path := "", ""
		if doc != nil {
			id, path = doc.ID, doc.Path
		}
		return Breakdown{}, &corpus.InvalidDocumentError{
			ID:     id,
			Path:   path,
			Reason: "document has no text to score",
		}
	}

	total := doc.TotalRequirements()
	if total == 0 {
		return Breakdown{
			Warning: "no requirements detected; complexity defined as 0.0",
		}, nil
	}

	words := countWords(doc.Text)
	grade := gradeLevel(doc.Text)

	breakdown := Breakdown{
		RequirementDensity: clamp01(float64(total) / float64(s.cfg.RequirementCeiling)),
		Readability:        clamp01(grade / s.cfg.GradeCeiling),
		IntegrationDensity: integrationScore(s.integration.Count(doc.Text), words),
		AmbiguityRate:      clamp01(float64(s.ambiguity.Count(doc.Text)) / float64(total)),
		CustomRate:         clamp01(float64(s.custom.Count(doc.Text)) / float64(total)),
		GradeLevel:         grade,
	}

	weights := s.cfg.Weights
	breakdown.Composite = clamp01(
		weights.RequirementDensity*breakdown.RequirementDensity +
			weights.Readability*breakdown.Readability +
			weights.IntegrationDensity*breakdown.IntegrationDensity +
			weights.AmbiguityRate*breakdown.AmbiguityRate +
			weights.CustomRate*breakdown.CustomRate)
	return breakdown, nil
}

// integrationScore normalizes keyword matches per 100 words against the
// density ceiling.
func integrationScore(matches, words int) float64 {
	if words == 0 {
		return 0
	}
	per100 := float64(matches) * 100 / float64(words)
	return clamp01(per100 / integrationPer100Ceiling)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
