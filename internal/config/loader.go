package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFlap loads flap mode configuration.
// Search order: customPath -> ~/.soarscape/configs/flap.yaml -> ./configs/flap.yaml -> embedded default
func LoadFlap(customPath string) (FlapConfig, error) {
	cfg := DefaultFlapConfig()
	if err := load("flap.yaml", customPath, defaultFlapYAML, &cfg); err != nil {
		return DefaultFlapConfig(), err
	}
	return cfg, nil
}

// LoadRunner loads runner mode configuration.
// Search order: customPath -> ~/.soarscape/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
func LoadRunner(customPath string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := load("runner.yaml", customPath, defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), err
	}
	return cfg, nil
}

// ParseFlap decodes a flap config document. Values missing from data keep
// their defaults.
func ParseFlap(data []byte) (FlapConfig, error) {
	cfg := DefaultFlapConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultFlapConfig(), fmt.Errorf("config: failed to parse flap config: %w", err)
	}
	return cfg, nil
}

// ParseRunner decodes a runner config document. Values missing from data keep
// their defaults.
func ParseRunner(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultRunnerConfig(), fmt.Errorf("config: failed to parse runner config: %w", err)
	}
	return cfg, nil
}

// Resolve loads the effective config for mode through the usual search order
// and returns it as a complete YAML document.
func Resolve(mode, customPath string) ([]byte, error) {
	var cfg any
	var err error
	switch mode {
	case "flap":
		cfg, err = LoadFlap(customPath)
	case "runner":
		cfg, err = LoadRunner(customPath)
	default:
		return nil, fmt.Errorf("config: unknown mode %q", mode)
	}
	if err != nil {
		return nil, err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode %s config: %w", mode, err)
	}
	return data, nil
}

// load decodes the first readable config source into out. Values missing from
// the file keep whatever out already holds, so partial files override defaults.
func load(filename, customPath string, embedded []byte, out any) error {
	// A custom path is explicit: failing to read it is an error.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return nil
	}

	candidates := []string{filepath.Join("configs", filename)}
	if userPath := userConfigPath(filename); userPath != "" {
		candidates = append([]string{userPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	// Embedded default; out already holds the hardcoded values if this fails.
	//nolint:errcheck // Hardcoded defaults are the fallback
	yaml.Unmarshal(embedded, out)
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".soarscape", "configs", filename)
}
