// Package aggregate turns per-document run results into point estimates,
// bootstrap confidence intervals, and hypothesis tests.
package aggregate

import (
	"fmt"
	"sort"

	"ursbench/internal/stats"
)

// defaultConfidence is the two-sided confidence level for intervals.
const defaultConfidence = 0.95

// Params configures one aggregation pass.
type Params struct {
	BootstrapIterations int
	BootstrapSeed       *int64
	Alpha               float64
	// BaselineSuccessRate, when set, attaches a one-sample t-test of the
	// success values against the baseline.
	BaselineSuccessRate *float64
}

// Metric is one aggregated metric record.
type Metric struct {
	Name       string            `json:"name"`
	N          int               `json:"n"`
	Estimate   float64           `json:"estimate"`
	CI         stats.Interval    `json:"ci_95"`
	Iterations int               `json:"bootstrap_iterations"`
	Seed       *int64            `json:"bootstrap_seed,omitempty"`
	Test       *stats.TestResult `json:"test,omitempty"`
}

// GroupMetrics holds metrics restricted to one group of results.
type GroupMetrics struct {
	Group   string   `json:"group"`
	N       int      `json:"n"`
	Metrics []Metric `json:"metrics"`
}

// NamedTest attaches a hypothesis test to a metric name.
type NamedTest struct {
	Metric string           `json:"metric"`
	Test   stats.TestResult `json:"test"`
}

// Report is the immutable output of an aggregation pass.
type Report struct {
	N             int            `json:"n"`
	Reproducible  bool           `json:"bootstrap_reproducible"`
	Metrics       []Metric       `json:"metrics"`
	Groups        []GroupMetrics `json:"groups,omitempty"`
	GroupTests    []NamedTest    `json:"group_tests,omitempty"`
	PairedTests   []NamedTest    `json:"paired_tests,omitempty"`
	ComparedWith  string         `json:"compared_with,omitempty"`
	GroupedByAttr string         `json:"grouped_by,omitempty"`
}

// Aggregate computes metrics over run results. An empty result set is an
// error, not a degenerate report.
func Aggregate(results []RunResult, params Params) (*Report, error) {
	if len(results) == 0 {
		return nil, &stats.InsufficientSampleError{Metric: "aggregate", Need: 1, Got: 0}
	}

	report := &Report{
		N:            len(results),
		Reproducible: params.BootstrapSeed != nil,
	}
	for _, name := range metricNames() {
		metric, err := aggregateMetric(name, results, params)
		if err != nil {
			return nil, err
		}
		if name == MetricSuccessRate && params.BaselineSuccessRate != nil {
			test, err := stats.OneSampleTTest(
				metricValues(name, results), *params.BaselineSuccessRate, params.Alpha)
			if err != nil {
				return nil, err
			}
			metric.Test = &test
		}
		report.Metrics = append(report.Metrics, metric)
	}
	return report, nil
}

// AggregateGrouped aggregates per group and attaches a one-way ANOVA per
// metric when three or more groups are present.
func AggregateGrouped(results []RunResult, attr string, groupOf func(documentID string) (string, bool), params Params) (*Report, error) {
	report, err := Aggregate(results, params)
	if err != nil {
		return nil, err
	}
	report.GroupedByAttr = attr

	grouped := make(map[string][]RunResult)
	for _, result := range results {
		group, ok := groupOf(result.DocumentID)
		if !ok {
			return nil, fmt.Errorf("no %s group for document %s", attr, result.DocumentID)
		}
		grouped[group] = append(grouped[group], result)
	}
	groups := make([]string, 0, len(grouped))
	for group := range grouped {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	for _, group := range groups {
		groupReport := GroupMetrics{Group: group, N: len(grouped[group])}
		for _, name := range metricNames() {
			metric, err := aggregateMetric(name, grouped[group], params)
			if err != nil {
				return nil, err
			}
			groupReport.Metrics = append(groupReport.Metrics, metric)
		}
		report.Groups = append(report.Groups, groupReport)
	}

	if len(groups) >= 3 {
		for _, name := range metricNames() {
			samples := make([][]float64, 0, len(groups))
			for _, group := range groups {
				samples = append(samples, metricValues(name, grouped[group]))
			}
			test, err := stats.OneWayANOVA(samples, params.Alpha)
			if err != nil {
				return nil, err
			}
			report.GroupTests = append(report.GroupTests, NamedTest{Metric: name, Test: test})
		}
	}
	return report, nil
}

// aggregateMetric computes one metric's estimate and bootstrap interval.
func aggregateMetric(name string, results []RunResult, params Params) (Metric, error) {
	values := metricValues(name, results)
	if len(values) < 2 {
		return Metric{}, &stats.InsufficientSampleError{Metric: name, Need: 2, Got: len(values)}
	}
	bootstrap := stats.Bootstrap{Iterations: params.BootstrapIterations, Seed: params.BootstrapSeed}
	interval, err := bootstrap.Interval(values, stats.Mean, defaultConfidence)
	if err != nil {
		return Metric{}, fmt.Errorf("bootstrap %s: %w", name, err)
	}
	return Metric{
		Name:       name,
		N:          len(values),
		Estimate:   stats.Mean(values),
		CI:         interval,
		Iterations: params.BootstrapIterations,
		Seed:       params.BootstrapSeed,
	}, nil
}

func metricValues(name string, results []RunResult) []float64 {
	values := make([]float64, len(results))
	for i, result := range results {
		values[i] = metricValue(name, result)
	}
	return values
}
