package aggregate

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"ursbench/internal/stats"
)

// testParams returns seeded aggregation parameters.
func testParams() Params {
	seed := int64(99)
	return Params{
		BootstrapIterations: 300,
		BootstrapSeed:       &seed,
		Alpha:               0.05,
	}
}

// makeResults builds n results with the given number of successes.
func makeResults(n, successes int) []RunResult {
	results := make([]RunResult, 0, n)
	for i := 0; i < n; i++ {
		result := RunResult{
			DocumentID:          fmt.Sprintf("URS-%03d", i+1),
			FoldIndex:           i % 5,
			Success:             i < successes,
			DurationSeconds:     10 + float64(i),
			Cost:                0.05 + 0.001*float64(i),
			RequirementsCovered: 8 + i%5,
		}
		if !result.Success {
			result.FailureReason = "generation_failed"
		}
		results = append(results, result)
	}
	return results
}

func TestAggregateSuccessRate(t *testing.T) {
	results := makeResults(30, 23)
	report, err := Aggregate(results, testParams())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if report.N != 30 {
		t.Errorf("N = %d, want 30", report.N)
	}
	if !report.Reproducible {
		t.Error("seeded report not marked reproducible")
	}

	var success *Metric
	for i := range report.Metrics {
		if report.Metrics[i].Name == MetricSuccessRate {
			success = &report.Metrics[i]
		}
	}
	if success == nil {
		t.Fatal("no success_rate metric")
	}
	want := 23.0 / 30.0
	if math.Abs(success.Estimate-want) > 1e-12 {
		t.Errorf("success rate = %g, want %g", success.Estimate, want)
	}
	if success.CI.Low > want || success.CI.High < want {
		t.Errorf("estimate %g outside CI %+v", want, success.CI)
	}
}

func TestAggregateEmptyResultsFails(t *testing.T) {
	_, err := Aggregate(nil, testParams())
	var sample *stats.InsufficientSampleError
	if !errors.As(err, &sample) {
		t.Fatalf("err = %v, want InsufficientSampleError", err)
	}
}

func TestAggregateSeededIsReproducible(t *testing.T) {
	results := makeResults(20, 14)
	first, err := Aggregate(results, testParams())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	second, err := Aggregate(results, testParams())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if !reflect.DeepEqual(first.Metrics, second.Metrics) {
		t.Error("seeded aggregation not reproducible")
	}
}

func TestAggregateUnseededMarkedNonReproducible(t *testing.T) {
	params := testParams()
	params.BootstrapSeed = nil
	report, err := Aggregate(makeResults(10, 5), params)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if report.Reproducible {
		t.Error("unseeded report marked reproducible")
	}
}

func TestAggregateBaselineTest(t *testing.T) {
	params := testParams()
	baseline := 0.5
	params.BaselineSuccessRate = &baseline

	report, err := Aggregate(makeResults(30, 29), params)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	for _, metric := range report.Metrics {
		if metric.Name != MetricSuccessRate {
			if metric.Test != nil {
				t.Errorf("unexpected test on %s", metric.Name)
			}
			continue
		}
		if metric.Test == nil {
			t.Fatal("no baseline test on success_rate")
		}
		if metric.Test.Kind != stats.TestOneSampleT {
			t.Errorf("test kind = %s", metric.Test.Kind)
		}
		if !metric.Test.Significant {
			t.Errorf("29/30 vs 0.5 baseline not significant, p = %g", metric.Test.P)
		}
	}
}

func TestAggregateGroupedAttachesANOVA(t *testing.T) {
	results := makeResults(30, 20)
	groups := []string{"category_3", "category_4", "category_5"}
	groupOf := func(id string) (string, bool) {
		var i int
		if _, err := fmt.Sscanf(id, "URS-%03d", &i); err != nil {
			return "", false
		}
		return groups[(i-1)%3], true
	}

	report, err := AggregateGrouped(results, "category", groupOf, testParams())
	if err != nil {
		t.Fatalf("AggregateGrouped: %v", err)
	}
	if report.GroupedByAttr != "category" {
		t.Errorf("GroupedByAttr = %q", report.GroupedByAttr)
	}
	if len(report.Groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(report.Groups))
	}
	for i := 1; i < len(report.Groups); i++ {
		if report.Groups[i-1].Group >= report.Groups[i].Group {
			t.Errorf("groups not sorted: %q before %q", report.Groups[i-1].Group, report.Groups[i].Group)
		}
	}
	if len(report.GroupTests) != len(metricNames()) {
		t.Errorf("group tests = %d, want one per metric", len(report.GroupTests))
	}
	for _, named := range report.GroupTests {
		if named.Test.Kind != stats.TestANOVA {
			t.Errorf("%s test kind = %s", named.Metric, named.Test.Kind)
		}
	}
}

func TestAggregateGroupedUnknownDocument(t *testing.T) {
	groupOf := func(string) (string, bool) { return "", false }
	if _, err := AggregateGrouped(makeResults(6, 3), "category", groupOf, testParams()); err == nil {
		t.Fatal("AggregateGrouped accepted unmapped documents")
	}
}
