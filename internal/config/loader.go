package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const match3File = "match3.yaml"

// LoadMatch3 loads the match-3 configuration.
// Search order: customPath -> ~/.match3/configs/match3.yaml -> ./configs/match3.yaml -> embedded default
//
// A custom path must exist, parse and validate. Files found on the search
// path are skipped when they are broken.
func LoadMatch3(customPath string) (Match3Config, error) {
	if customPath != "" {
		cfg, err := readMatch3(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(match3File), filepath.Join("configs", match3File)} {
		if path == "" {
			continue
		}
		if cfg, err := readMatch3(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	var cfg Match3Config
	if err := yaml.Unmarshal(defaultMatch3YAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultMatch3Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func readMatch3(path string) (Match3Config, error) {
	var cfg Match3Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".match3", "configs", filename)
}
