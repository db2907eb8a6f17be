package config

import (
	"fmt"
	"os"
)

const defaultConfig = `version: 1

corpus:
  dir: "./corpus"
  file_pattern: "URS-*.md"

complexity:
  requirement_ceiling: 40
  grade_ceiling: 20
  weights:
    requirement_density: 0.25
    readability: 0.15
    integration_density: 0.20
    ambiguity_rate: 0.15
    custom_rate: 0.25

folds:
  count: 5
  tier_low: 0.3
  tier_high: 0.7

statistics:
  bootstrap_iterations: 1000
  # bootstrap_seed: 42      # set for reproducible confidence intervals
  alpha: 0.05
  # baseline_success_rate: 0.8

generator:
  command: ["./generate-oq", "--urs"]
  workers: 4
  timeout_seconds: 300
  output_dir: "./ursbench-out"
`

// Scaffold writes a commented default config file.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
