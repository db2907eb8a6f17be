package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"ursbench/internal/config"
	"ursbench/internal/spec"
)

// resolveConfigPath normalizes a config path or finds it from CWD.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadConfig loads the config file, falling back to built-in defaults
// when no explicit path is given and no file is found.
func loadConfig(configPath string) (spec.Config, error) {
	resolved, err := resolveConfigPath(configPath)
	if err != nil {
		if strings.TrimSpace(configPath) == "" {
			return defaultConfig(), nil
		}
		return spec.Config{}, err
	}
	return config.Load(resolved)
}

// defaultConfig returns a normalized config without reading a file.
func defaultConfig() spec.Config {
	cfg := spec.Config{Version: 1}
	config.Normalize(&cfg)
	return cfg
}
