package levels

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/sim"
)

// FileProvider reads a layout from disk. Files ending in .yaml or .yml are
// parsed as YAML, anything else as JSON. Difficulty is ignored.
type FileProvider struct {
	Path string
}

type yamlLayout struct {
	Obstacles *[]sim.ObstaclePattern `yaml:"obstacles"`
}

// Generate loads and parses the file.
func (p FileProvider) Generate(_ context.Context, _ config.Difficulty) (sim.LevelLayout, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", p.Path, err)
	}

	switch strings.ToLower(filepath.Ext(p.Path)) {
	case ".yaml", ".yml":
		var doc yamlLayout
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("levels: parse %s: %w", p.Path, err)
		}
		if doc.Obstacles == nil {
			return nil, fmt.Errorf("levels: %s: %w", p.Path, sim.ErrNoObstacles)
		}
		return sim.LevelLayout(*doc.Obstacles), nil
	default:
		layout, err := sim.DecodeLayout(data)
		if err != nil {
			return nil, fmt.Errorf("levels: %s: %w", p.Path, err)
		}
		return layout, nil
	}
}
