// Package folds partitions a corpus into stratified cross-validation
// folds. Assignment is deterministic for a fixed corpus order and fold
// count; no random source is involved.
package folds

import (
	"fmt"
	"math"

	"ursbench/internal/corpus"
)

// Tier is a discretized complexity level used for stratification.
type Tier string

// Complexity tiers.
const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// AllTiers returns tiers in stratification order.
func AllTiers() []Tier {
	return []Tier{TierLow, TierMedium, TierHigh}
}

// Params configures fold assignment.
type Params struct {
	Count    int
	TierLow  float64
	TierHigh float64
}

// TierFor buckets a complexity score into a tier.
func (p Params) TierFor(score float64) Tier {
	switch {
	case score < p.TierLow:
		return TierLow
	case score < p.TierHigh:
		return TierMedium
	default:
		return TierHigh
	}
}

// Fold is one train/test partition of the corpus.
type Fold struct {
	Index             int                         `json:"index"`
	TrainIDs          []string                    `json:"train_ids"`
	TestIDs           []string                    `json:"test_ids"`
	CategoryDeviation map[corpus.Category]float64 `json:"category_deviation"`
	TierDeviation     map[Tier]float64            `json:"tier_deviation"`
}

// Assignment maps every corpus document to exactly one test fold.
type Assignment struct {
	K     int    `json:"k"`
	Total int    `json:"total_documents"`
	Folds []Fold `json:"folds"`
}

// InsufficientStratificationError reports a corpus too small for the
// requested fold count.
type InsufficientStratificationError struct {
	K          int
	CorpusSize int
	Reason     string
}

// Error renders the requested fold count and corpus size.
func (err *InsufficientStratificationError) Error() string {
	return fmt.Sprintf("cannot stratify %d documents into %d folds: %s",
		err.CorpusSize, err.K, err.Reason)
}

// Assign builds a stratified k-fold assignment. Documents are bucketed
// by category and complexity tier, distributed round-robin within each
// bucket, and remainders go to the folds with the smallest test sets
// (ties broken by ascending fold index).
func Assign(c *corpus.Corpus, scores map[string]float64, params Params) (*Assignment, error) {
	if c == nil || c.Len() == 0 {
		return nil, &InsufficientStratificationError{
			K: params.Count, CorpusSize: 0, Reason: "corpus is empty",
		}
	}
	if params.Count < 2 {
		return nil, &InsufficientStratificationError{
			K: params.Count, CorpusSize: c.Len(), Reason: "fold count must be >= 2",
		}
	}
	if params.Count > c.Len() {
		return nil, &InsufficientStratificationError{
			K: params.Count, CorpusSize: c.Len(), Reason: "fold count exceeds corpus size",
		}
	}

	docs := c.Documents()
	for _, doc := range docs {
		if _, ok := scores[doc.ID]; !ok {
			return nil, fmt.Errorf("no complexity score for document %s", doc.ID)
		}
	}

	k := params.Count
	testSets := make([][]*corpus.Document, k)
	buckets := bucketDocuments(docs, scores, params)

	for _, bucket := range buckets {
		full := (len(bucket) / k) * k
		for i := 0; i < full; i++ {
			fold := i % k
			testSets[fold] = append(testSets[fold], bucket[i])
		}
		for _, doc := range bucket[full:] {
			fold := smallestFold(testSets)
			testSets[fold] = append(testSets[fold], doc)
		}
	}

	return buildAssignment(docs, testSets, scores, params), nil
}

// bucketDocuments groups documents by (category, tier) in a fixed order:
// categories in taxonomy order, tiers low to high, documents in corpus
// order within each bucket.
func bucketDocuments(docs []*corpus.Document, scores map[string]float64, params Params) [][]*corpus.Document {
	type key struct {
		category corpus.Category
		tier     Tier
	}
	grouped := make(map[key][]*corpus.Document)
	for _, doc := range docs {
		k := key{category: doc.Category, tier: params.TierFor(scores[doc.ID])}
		grouped[k] = append(grouped[k], doc)
	}

	var ordered [][]*corpus.Document
	for _, category := range corpus.AllCategories() {
		for _, tier := range AllTiers() {
			if bucket := grouped[key{category: category, tier: tier}]; len(bucket) > 0 {
				ordered = append(ordered, bucket)
			}
		}
	}
	return ordered
}

// smallestFold returns the index of the fold with the fewest test
// documents, preferring lower indexes on ties.
func smallestFold(testSets [][]*corpus.Document) int {
	best := 0
	for i := 1; i < len(testSets); i++ {
		if len(testSets[i]) < len(testSets[best]) {
			best = i
		}
	}
	return best
}

// buildAssignment assembles folds with train sets and balance deviations.
func buildAssignment(docs []*corpus.Document, testSets [][]*corpus.Document, scores map[string]float64, params Params) *Assignment {
	total := len(docs)
	corpusCategoryShare := make(map[corpus.Category]float64)
	corpusTierShare := make(map[Tier]float64)
	for _, doc := range docs {
		corpusCategoryShare[doc.Category] += 1.0 / float64(total)
		corpusTierShare[params.TierFor(scores[doc.ID])] += 1.0 / float64(total)
	}

	assignment := &Assignment{K: len(testSets), Total: total}
	for index, testSet := range testSets {
		inTest := make(map[string]bool, len(testSet))
		fold := Fold{
			Index:             index,
			TestIDs:           make([]string, 0, len(testSet)),
			TrainIDs:          make([]string, 0, total-len(testSet)),
			CategoryDeviation: make(map[corpus.Category]float64),
			TierDeviation:     make(map[Tier]float64),
		}
		testCategoryShare := make(map[corpus.Category]float64)
		testTierShare := make(map[Tier]float64)
		for _, doc := range testSet {
			inTest[doc.ID] = true
			testCategoryShare[doc.Category] += 1.0 / float64(len(testSet))
			testTierShare[params.TierFor(scores[doc.ID])] += 1.0 / float64(len(testSet))
		}
		for _, doc := range docs {
			if inTest[doc.ID] {
				fold.TestIDs = append(fold.TestIDs, doc.ID)
			} else {
				fold.TrainIDs = append(fold.TrainIDs, doc.ID)
			}
		}
		for category, share := range corpusCategoryShare {
			fold.CategoryDeviation[category] = math.Abs(testCategoryShare[category] - share)
		}
		for tier, share := range corpusTierShare {
			fold.TierDeviation[tier] = math.Abs(testTierShare[tier] - share)
		}
		assignment.Folds = append(assignment.Folds, fold)
	}
	return assignment
}
