// Package stats provides the descriptive and inferential statistics used
// by the metrics aggregator: bootstrap confidence intervals, t-tests,
// and one-way ANOVA.
package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// InsufficientSampleError reports a statistic requested on too few samples.
type InsufficientSampleError struct {
	Metric string
	Need   int
	Got    int
}

// Error renders the metric name and sample requirements.
func (err *InsufficientSampleError) Error() string {
	return fmt.Sprintf("metric %s: need at least %d samples, got %d",
		err.Metric, err.Need, err.Got)
}

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) float64 {
	return stat.Mean(xs, nil)
}

// StdDev returns the sample standard deviation of xs.
func StdDev(xs []float64) float64 {
	return stat.StdDev(xs, nil)
}

// TestKind identifies a hypothesis test.
type TestKind string

// Supported hypothesis tests.
const (
	TestOneSampleT TestKind = "one_sample_t"
	TestPairedT    TestKind = "paired_t"
	TestANOVA      TestKind = "anova"
)

// TestResult is the outcome of one hypothesis test.
type TestResult struct {
	Kind        TestKind `json:"kind"`
	Statistic   float64  `json:"statistic"`
	DF1         float64  `json:"df1"`
	DF2         float64  `json:"df2,omitempty"`
	P           float64  `json:"p_value"`
	Alpha       float64  `json:"alpha"`
	Significant bool     `json:"significant"`
}
