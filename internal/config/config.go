// Package config provides YAML-based mode configuration loading and
// difficulty presets for the game modes.
package config

// TrackConfig defines the size of the simulated world in layout distance units.
// The track is independent of the terminal size; renderers scale it.
type TrackConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the controlled body's fixed horizontal anchor and size.
type PlayerConfig struct {
	X    float64 `yaml:"x"`
	Size float64 `yaml:"size"`
}

// PhysicsConfig defines per-tick kinematics.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"` // negative = up
	Speed       float64 `yaml:"speed"`        // obstacle displacement per tick
}

// FlapConfig contains all configuration for flap mode.
type FlapConfig struct {
	Track     TrackConfig   `yaml:"track"`
	Physics   PhysicsConfig `yaml:"physics"`
	Player    PlayerConfig  `yaml:"player"`
	Obstacles FlapObstacles `yaml:"obstacles"`
}

// FlapObstacles defines barrier parameters for flap mode.
type FlapObstacles struct {
	Width          float64 `yaml:"width"`
	BaseGap        float64 `yaml:"base_gap"`        // gap before the difficulty delta is applied
	DefaultSpacing float64 `yaml:"default_spacing"` // used when no layout pattern is available
	Margin         float64 `yaml:"margin"`          // min distance between a random gap and the track edge
	InitialCount   int     `yaml:"initial_count"`
}

// RunnerConfig contains all configuration for runner mode.
type RunnerConfig struct {
	Track     TrackConfig     `yaml:"track"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Obstacles RunnerObstacles `yaml:"obstacles"`
}

// RunnerObstacles defines ground obstacle parameters for runner mode.
type RunnerObstacles struct {
	MinWidth      float64 `yaml:"min_width"`
	MaxWidth      float64 `yaml:"max_width"`
	MinHeight     float64 `yaml:"min_height"`
	MaxHeight     float64 `yaml:"max_height"`
	MinSpacing    float64 `yaml:"min_spacing"`    // fixed part of the spawn distance
	SpacingJitter float64 `yaml:"spacing_jitter"` // random part of the spawn distance
	InitialCount  int     `yaml:"initial_count"`
}
