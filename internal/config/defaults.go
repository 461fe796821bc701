package config

import (
	_ "embed"
)

//go:embed defaults/flap.yaml
var defaultFlapYAML []byte

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultFlapConfig returns the built-in flap mode configuration.
// It mirrors defaults/flap.yaml and is used when the embedded file cannot be parsed.
func DefaultFlapConfig() FlapConfig {
	return FlapConfig{
		Track: TrackConfig{Width: 800, Height: 400},
		Physics: PhysicsConfig{
			Gravity:     0.5,
			JumpImpulse: -8,
			Speed:       4,
		},
		Player: PlayerConfig{X: 150, Size: 40},
		Obstacles: FlapObstacles{
			Width:          80,
			BaseGap:        200,
			DefaultSpacing: 350,
			Margin:         50,
			InitialCount:   5,
		},
	}
}

// DefaultRunnerConfig returns the built-in runner mode configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Track: TrackConfig{Width: 800, Height: 300},
		Physics: PhysicsConfig{
			Gravity:     0.8,
			JumpImpulse: -14,
			Speed:       6,
		},
		Player: PlayerConfig{X: 60, Size: 40},
		Obstacles: RunnerObstacles{
			MinWidth:      20,
			MaxWidth:      45,
			MinHeight:     30,
			MaxHeight:     70,
			MinSpacing:    300,
			SpacingJitter: 400,
			InitialCount:  1,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a mode.
func GetDefaultYAML(mode string) []byte {
	switch mode {
	case "flap":
		return defaultFlapYAML
	case "runner":
		return defaultRunnerYAML
	default:
		return nil
	}
}
