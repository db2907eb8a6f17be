package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// OneWayANOVA tests whether group means differ across two or more
// groups. Each group must carry at least three samples.
func OneWayANOVA(groups [][]float64, alpha float64) (TestResult, error) {
	if len(groups) < 2 {
		return TestResult{}, &InsufficientSampleError{Metric: "anova", Need: 2, Got: len(groups)}
	}
	total := 0
	for _, group := range groups {
		if len(group) < 3 {
			return TestResult{}, &InsufficientSampleError{Metric: "anova", Need: 3, Got: len(group)}
		}
		total += len(group)
	}

	grandSum := 0.0
	for _, group := range groups {
		for _, v := range group {
			grandSum += v
		}
	}
	grandMean := grandSum / float64(total)

	between := 0.0
	within := 0.0
	for _, group := range groups {
		groupMean := Mean(group)
		between += float64(len(group)) * (groupMean - grandMean) * (groupMean - grandMean)
		for _, v := range group {
			within += (v - groupMean) * (v - groupMean)
		}
	}

	df1 := float64(len(groups) - 1)
	df2 := float64(total - len(groups))

	var f, p float64
	if within == 0 {
		if between == 0 {
			f, p = 0, 1
		} else {
			f, p = math.Inf(1), 0
		}
	} else {
		f = (between / df1) / (within / df2)
		dist := distuv.F{D1: df1, D2: df2}
		p = 1 - dist.CDF(f)
	}

	return TestResult{
		Kind:        TestANOVA,
		Statistic:   f,
		DF1:         df1,
		DF2:         df2,
		P:           p,
		Alpha:       alpha,
		Significant: p < alpha,
	}, nil
}
