package cli

import (
	"fmt"
	"strings"

	"ursbench/internal/complexity"
	"ursbench/internal/corpus"
	"ursbench/internal/report"
	"ursbench/internal/spec"
)

// resolveCorpusDir picks the corpus directory from a flag or the config.
func resolveCorpusDir(cfg spec.Config, flagDir string) (string, error) {
	dir := strings.TrimSpace(flagDir)
	if dir == "" {
		dir = strings.TrimSpace(cfg.Corpus.Dir)
	}
	if dir == "" {
		return "", fmt.Errorf("no corpus directory (use --corpus or set corpus.dir)")
	}
	return dir, nil
}

// buildMetrics loads the corpus and scores every document.
func buildMetrics(cfg spec.Config, corpusDir string) (*corpus.Corpus, []report.DocumentMetrics, error) {
	dir, err := resolveCorpusDir(cfg, corpusDir)
	if err != nil {
		return nil, nil, err
	}
	c, err := corpus.Load(dir, cfg.Corpus.FilePattern)
	if err != nil {
		return nil, nil, err
	}
	scorer, err := complexity.NewScorer(cfg.Complexity)
	if err != nil {
		return nil, nil, err
	}
	records, err := report.BuildDocumentMetrics(c, scorer)
	if err != nil {
		return nil, nil, err
	}
	return c, records, nil
}
