package stats

import (
	"errors"
	"testing"
)

func TestBootstrapSeededIsReproducible(t *testing.T) {
	xs := []float64{0.2, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	seed := int64(42)
	b := Bootstrap{Iterations: 500, Seed: &seed}

	first, err := b.Interval(xs, Mean, 0.95)
	if err != nil {
		t.Fatalf("Interval: %v", err)
	}
	second, err := b.Interval(xs, Mean, 0.95)
	if err != nil {
		t.Fatalf("Interval: %v", err)
	}
	if first != second {
		t.Errorf("seeded intervals differ: %+v vs %+v", first, second)
	}
}

func TestBootstrapIntervalBracketsEstimate(t *testing.T) {
	xs := []float64{0.2, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	seed := int64(7)
	b := Bootstrap{Iterations: 1000, Seed: &seed}

	interval, err := b.Interval(xs, Mean, 0.95)
	if err != nil {
		t.Fatalf("Interval: %v", err)
	}
	if interval.Low > interval.High {
		t.Fatalf("interval inverted: %+v", interval)
	}
	mean := Mean(xs)
	if mean < interval.Low || mean > interval.High {
		t.Errorf("sample mean %g outside interval %+v", mean, interval)
	}
}

func TestBootstrapValidation(t *testing.T) {
	seed := int64(1)
	b := Bootstrap{Iterations: 100, Seed: &seed}

	_, err := b.Interval([]float64{1}, Mean, 0.95)
	var sample *InsufficientSampleError
	if !errors.As(err, &sample) {
		t.Fatalf("err = %v, want InsufficientSampleError", err)
	}

	if _, err := (Bootstrap{Iterations: 0, Seed: &seed}).Interval([]float64{1, 2}, Mean, 0.95); err == nil {
		t.Error("accepted zero iterations")
	}
	if _, err := b.Interval([]float64{1, 2}, Mean, 1.5); err == nil {
		t.Error("accepted confidence outside (0, 1)")
	}
}
