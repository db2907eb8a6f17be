package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// OneSampleTTest tests whether the mean of xs differs from mu0
// (two-sided).
func OneSampleTTest(xs []float64, mu0, alpha float64) (TestResult, error) {
	if len(xs) < 2 {
		return TestResult{}, &InsufficientSampleError{Metric: "one_sample_t", Need: 2, Got: len(xs)}
	}
	mean := Mean(xs)
	sd := StdDev(xs)
	n := float64(len(xs))
	df := n - 1

	var t float64
	switch {
	case sd > 0:
		t = (mean - mu0) / (sd / math.Sqrt(n))
	case mean == mu0:
		t = 0
	default:
		t = math.Inf(sign(mean - mu0))
	}

	p := twoSidedStudentP(t, df)
	return TestResult{
		Kind:        TestOneSampleT,
		Statistic:   t,
		DF1:         df,
		P:           p,
		Alpha:       alpha,
		Significant: p < alpha,
	}, nil
}

// PairedTTest tests whether the mean difference between matched samples
// differs from zero (two-sided).
func PairedTTest(a, b []float64, alpha float64) (TestResult, error) {
	if len(a) != len(b) {
		return TestResult{}, fmt.Errorf("paired t-test: mismatched sample sizes %d and %d", len(a), len(b))
	}
	if len(a) < 2 {
		return TestResult{}, &InsufficientSampleError{Metric: "paired_t", Need: 2, Got: len(a)}
	}
	diffs := make([]float64, len(a))
	for i := range a {
		diffs[i] = a[i] - b[i]
	}
	result, err := OneSampleTTest(diffs, 0, alpha)
	if err != nil {
		return TestResult{}, err
	}
	result.Kind = TestPairedT
	return result, nil
}

// twoSidedStudentP returns the two-sided p-value for a t statistic.
func twoSidedStudentP(t, df float64) float64 {
	if math.IsInf(t, 0) {
		return 0
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))
	if p > 1 {
		p = 1
	}
	return p
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
