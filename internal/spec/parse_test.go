package spec

import (
	"strings"
	"testing"
)

const validYAML = `version: 1
corpus:
  dir: "./corpus"
  file_pattern: "URS-*.md"
folds:
  count: 5
  tier_low: 0.3
  tier_high: 0.7
statistics:
  bootstrap_iterations: 500
  bootstrap_seed: 42
  alpha: 0.05
generator:
  command: ["./generate-oq", "--urs"]
  workers: 2
  timeout_seconds: 60
  output_dir: "./out"
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(validYAML))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Version = %d", cfg.Version)
	}
	if cfg.Corpus.Dir != "./corpus" {
		t.Errorf("Corpus.Dir = %q", cfg.Corpus.Dir)
	}
	if cfg.Folds.Count != 5 || cfg.Folds.TierLow != 0.3 || cfg.Folds.TierHigh != 0.7 {
		t.Errorf("Folds = %+v", cfg.Folds)
	}
	if cfg.Statistics.BootstrapSeed == nil || *cfg.Statistics.BootstrapSeed != 42 {
		t.Errorf("BootstrapSeed = %v", cfg.Statistics.BootstrapSeed)
	}
	if len(cfg.Generator.Command) != 2 || cfg.Generator.Command[0] != "./generate-oq" {
		t.Errorf("Generator.Command = %v", cfg.Generator.Command)
	}
}

func TestParseConfigRejectsUnknownFields(t *testing.T) {
	data := "version: 1\nunknown_knob: true\n"
	if _, err := ParseConfig([]byte(data)); err == nil {
		t.Fatal("ParseConfig accepted an unknown field")
	}
}

func TestParseConfigRejectsMultipleDocuments(t *testing.T) {
	data := validYAML + "---\nversion: 1\n"
	_, err := ParseConfig([]byte(data))
	if err == nil {
		t.Fatal("ParseConfig accepted multiple documents")
	}
	if !strings.Contains(err.Error(), "multiple YAML documents") {
		t.Errorf("err = %v", err)
	}
}

func TestParseConfigRejectsMalformedYAML(t *testing.T) {
	if _, err := ParseConfig([]byte("version: [1,")); err == nil {
		t.Fatal("ParseConfig accepted malformed YAML")
	}
}
