package aggregate

import (
	"fmt"
	"sort"

	"ursbench/internal/stats"
)

// Compare attaches paired t-tests to a report for two result sets that
// share document ids (two operating modes over the same corpus).
func Compare(a, b []RunResult, label string, params Params) (*Report, error) {
	report, err := Aggregate(a, params)
	if err != nil {
		return nil, err
	}
	report.ComparedWith = label

	byID := make(map[string]RunResult, len(b))
	for _, result := range b {
		byID[result.DocumentID] = result
	}

	ids := make([]string, 0, len(a))
	matchedA := make(map[string]RunResult, len(a))
	for _, result := range a {
		if _, ok := byID[result.DocumentID]; !ok {
			return nil, fmt.Errorf("document %s missing from comparison set", result.DocumentID)
		}
		ids = append(ids, result.DocumentID)
		matchedA[result.DocumentID] = result
	}
	sort.Strings(ids)

	for _, name := range metricNames() {
		left := make([]float64, 0, len(ids))
		right := make([]float64, 0, len(ids))
		for _, id := range ids {
			left = append(left, metricValue(name, matchedA[id]))
			right = append(right, metricValue(name, byID[id]))
		}
		test, err := stats.PairedTTest(left, right, params.Alpha)
		if err != nil {
			return nil, err
		}
		report.PairedTests = append(report.PairedTests, NamedTest{Metric: name, Test: test})
	}
	return report, nil
}
