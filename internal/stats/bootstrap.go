package stats

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	randv2 "math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Interval is a two-sided confidence interval.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Bootstrap resamples a statistic to estimate a percentile confidence
// interval. With a nil Seed each call draws a fresh seed and results are
// not reproducible across runs; callers surface that in their reports.
type Bootstrap struct {
	Iterations int
	Seed       *int64
}

// Interval computes a percentile bootstrap confidence interval for the
// given statistic at the given confidence level (e.g. 0.95).
func (b Bootstrap) Interval(xs []float64, statistic func([]float64) float64, confidence float64) (Interval, error) {
	if len(xs) < 2 {
		return Interval{}, &InsufficientSampleError{Metric: "bootstrap", Need: 2, Got: len(xs)}
	}
	if b.Iterations < 1 {
		return Interval{}, fmt.Errorf("bootstrap iterations must be >= 1, got %d", b.Iterations)
	}
	if confidence <= 0 || confidence >= 1 {
		return Interval{}, fmt.Errorf("confidence must be in (0, 1), got %g", confidence)
	}

	rng := b.source()
	replicates := make([]float64, b.Iterations)
	resample := make([]float64, len(xs))
	for i := 0; i < b.Iterations; i++ {
		for j := range resample {
			resample[j] = xs[rng.IntN(len(xs))]
		}
		replicates[i] = statistic(resample)
	}
	sort.Float64s(replicates)

	tail := (1 - confidence) / 2
	return Interval{
		Low:  stat.Quantile(tail, stat.Empirical, replicates, nil),
		High: stat.Quantile(1-tail, stat.Empirical, replicates, nil),
	}, nil
}

// source builds the PCG source, seeded explicitly or from crypto/rand.
func (b Bootstrap) source() *randv2.Rand {
	if b.Seed != nil {
		return randv2.New(randv2.NewPCG(uint64(*b.Seed), uint64(*b.Seed)>>1|1))
	}
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return randv2.New(randv2.NewPCG(1, 2))
	}
	return randv2.New(randv2.NewPCG(
		binary.LittleEndian.Uint64(buf[:8]),
		binary.LittleEndian.Uint64(buf[8:]),
	))
}
