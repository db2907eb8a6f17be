package report

import (
	"ursbench/internal/complexity"
	"ursbench/internal/corpus"
)

// DocumentMetrics is the per-document metrics record consumed for
// reporting and fold stratification.
type DocumentMetrics struct {
	ID            string                     `json:"id"`
	Category      corpus.Category            `json:"category"`
	Path          string                     `json:"path"`
	SectionCounts map[corpus.SectionKind]int `json:"requirement_counts"`
	Total         int                        `json:"total_requirements"`
	Complexity    complexity.Breakdown       `json:"complexity"`
}

// BuildDocumentMetrics scores every corpus document in load order.
func BuildDocumentMetrics(c *corpus.Corpus, scorer *complexity.Scorer) ([]DocumentMetrics, error) {
	docs := c.Documents()
	records := make([]DocumentMetrics, 0, len(docs))
	for _, doc := range docs {
		breakdown, err := scorer.Score(doc)
		if err != nil {
			return nil, err
		}
		counts := make(map[corpus.SectionKind]int, len(doc.SectionCounts))
		for kind, count := range doc.SectionCounts {
			counts[kind] = count
		}
		records = append(records, DocumentMetrics{
			ID:            doc.ID,
			Category:      doc.Category,
			Path:          doc.Path,
			SectionCounts: counts,
			Total:         doc.TotalRequirements(),
			Complexity:    breakdown,
		})
	}
	return records, nil
}

// ScoresByID extracts composite scores keyed by document id.
func ScoresByID(records []DocumentMetrics) map[string]float64 {
	scores := make(map[string]float64, len(records))
	for _, record := range records {
		scores[record.ID] = record.Complexity.Composite
	}
	return scores
}
