package folds

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"ursbench/internal/corpus"
)

var testParams = Params{Count: 5, TierLow: 0.3, TierHigh: 0.7}

// buildCorpus creates n documents cycling through categories, with
// complexity scores spread across [0, 1).
func buildCorpus(t *testing.T, n int) (*corpus.Corpus, map[string]float64) {
	t.Helper()
	categories := corpus.AllCategories()
	docs := make([]*corpus.Document, 0, n)
	scores := make(map[string]float64, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("URS-%03d", i+1)
		docs = append(docs, &corpus.Document{
			ID:       id,
			Category: categories[i%len(categories)],
			Text:     "1. Functional Requirements\n\n- Requirement.\n",
			SectionCounts: map[corpus.SectionKind]int{
				corpus.SectionFunctional: 1,
			},
		})
		scores[id] = float64(i) / float64(n)
	}
	c, err := corpus.NewCorpus(docs)
	if err != nil {
		t.Fatalf("NewCorpus: %v", err)
	}
	return c, scores
}

func TestAssignPartitionsCorpus(t *testing.T) {
	c, scores := buildCorpus(t, 17)
	assignment, err := Assign(c, scores, testParams)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if assignment.K != 5 || assignment.Total != 17 {
		t.Fatalf("K = %d, Total = %d", assignment.K, assignment.Total)
	}

	seen := make(map[string]int)
	ideal := float64(17) / 5
	for _, fold := range assignment.Folds {
		size := len(fold.TestIDs)
		if diff := float64(size) - ideal; diff > 1 || diff < -1 {
			t.Errorf("fold %d test size %d deviates more than 1 from ideal %.1f", fold.Index, size, ideal)
		}
		if len(fold.TrainIDs)+size != 17 {
			t.Errorf("fold %d: train %d + test %d != 17", fold.Index, len(fold.TrainIDs), size)
		}
		for _, id := range fold.TestIDs {
			seen[id]++
		}
		for _, id := range fold.TrainIDs {
			if contains(fold.TestIDs, id) {
				t.Errorf("fold %d: %s in both train and test", fold.Index, id)
			}
		}
	}
	if len(seen) != 17 {
		t.Errorf("test sets cover %d documents, want 17", len(seen))
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("%s appears in %d test sets", id, count)
		}
	}
}

func TestAssignIsDeterministic(t *testing.T) {
	c, scores := buildCorpus(t, 23)
	first, err := Assign(c, scores, testParams)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	second, err := Assign(c, scores, testParams)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("assignments differ across identical calls")
	}
}

func TestAssignErrors(t *testing.T) {
	c, scores := buildCorpus(t, 4)

	cases := []struct {
		name   string
		params Params
	}{
		{"k too small", Params{Count: 1, TierLow: 0.3, TierHigh: 0.7}},
		{"k exceeds corpus", Params{Count: 5, TierLow: 0.3, TierHigh: 0.7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Assign(c, scores, tc.params)
			var strat *InsufficientStratificationError
			if !errors.As(err, &strat) {
				t.Fatalf("err = %v, want InsufficientStratificationError", err)
			}
		})
	}

	t.Run("empty corpus", func(t *testing.T) {
		_, err := Assign(nil, nil, testParams)
		var strat *InsufficientStratificationError
		if !errors.As(err, &strat) {
			t.Fatalf("err = %v, want InsufficientStratificationError", err)
		}
	})

	t.Run("missing score", func(t *testing.T) {
		delete(scores, "URS-002")
		if _, err := Assign(c, scores, Params{Count: 2, TierLow: 0.3, TierHigh: 0.7}); err == nil {
			t.Fatal("Assign succeeded without a score for every document")
		}
	})
}

func TestTierFor(t *testing.T) {
	params := Params{Count: 2, TierLow: 0.3, TierHigh: 0.7}
	cases := map[float64]Tier{
		0.0:  TierLow,
		0.29: TierLow,
		0.3:  TierMedium,
		0.69: TierMedium,
		0.7:  TierHigh,
		1.0:  TierHigh,
	}
	for score, want := range cases {
		if got := params.TierFor(score); got != want {
			t.Errorf("TierFor(%g) = %s, want %s", score, got, want)
		}
	}
}

func TestDeviationsBounded(t *testing.T) {
	c, scores := buildCorpus(t, 20)
	assignment, err := Assign(c, scores, testParams)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	for _, fold := range assignment.Folds {
		for category, deviation := range fold.CategoryDeviation {
			if deviation < 0 || deviation > 1 {
				t.Errorf("fold %d category %s deviation %g out of [0,1]", fold.Index, category, deviation)
			}
		}
		for tier, deviation := range fold.TierDeviation {
			if deviation < 0 || deviation > 1 {
				t.Errorf("fold %d tier %s deviation %g out of [0,1]", fold.Index, tier, deviation)
			}
		}
	}
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
