package aggregate

// RunResult is the outcome of evaluating the external generator against
// one document. Produced by the run driver (or supplied as JSON),
// consumed only by the aggregator.
type RunResult struct {
	DocumentID          string  `json:"document_id"`
	FoldIndex           int     `json:"fold_index"`
	Success             bool    `json:"success"`
	DurationSeconds     float64 `json:"duration_seconds"`
	Cost                float64 `json:"cost"`
	RequirementsCovered int     `json:"requirements_covered"`
	FailureReason       string  `json:"failure_reason,omitempty"`
}

// Metric names produced by the aggregator.
const (
	MetricSuccessRate         = "success_rate"
	MetricDurationSeconds     = "duration_seconds"
	MetricCost                = "cost"
	MetricRequirementsCovered = "requirements_covered"
)

// metricValue extracts one metric's value from a result. Boolean success
// maps to 0/1 so proportions fall out of the mean.
func metricValue(name string, result RunResult) float64 {
	switch name {
	case MetricSuccessRate:
		if result.Success {
			return 1
		}
		return 0
	case MetricDurationSeconds:
		return result.DurationSeconds
	case MetricCost:
		return result.Cost
	case MetricRequirementsCovered:
		return float64(result.RequirementsCovered)
	default:
		return 0
	}
}

// metricNames returns the aggregated metrics in report order.
func metricNames() []string {
	return []string{
		MetricSuccessRate,
		MetricDurationSeconds,
		MetricCost,
		MetricRequirementsCovered,
	}
}
