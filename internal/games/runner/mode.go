package runner

import (
	"fmt"

	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/core"
	"github.com/vovakirdan/soarscape/internal/registry"
	"github.com/vovakirdan/soarscape/internal/sim"
)

// Visual characters for rendering
const (
	BodyChar     = '█'
	HeadChar     = '◆'
	ObstacleChar = '▓'
	GroundChar   = '═'
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Mode is the runner entry in the mode registry.
type Mode struct{}

// New creates the runner mode.
func New() *Mode {
	return &Mode{}
}

// ID returns the mode tag.
func (m *Mode) ID() sim.GameMode {
	return sim.RunnerMode
}

// Title returns the display name for this mode.
func (m *Mode) Title() string {
	return "Runner"
}

// NewRules builds runner rules from settings.Config or, when that is empty,
// the configured search path. Runner rules ignore difficulty.
func (m *Mode) NewRules(settings sim.Settings) (sim.Rules, error) {
	var cfg config.RunnerConfig
	var err error
	if len(settings.Config) > 0 {
		cfg, err = config.ParseRunner(settings.Config)
	} else {
		cfg, err = config.LoadRunner(configPath)
	}
	if err != nil {
		return nil, err
	}
	return NewRules(cfg)
}

// Render draws the snapshot above a ground line on the bottom row.
func (m *Mode) Render(dst *core.Screen, snap sim.Snapshot) {
	if snap.Track.Width <= 0 || snap.Track.Height <= 0 || dst.Height() < 2 {
		return
	}
	groundY := dst.Height() - 1
	vp := core.NewViewport(snap.Track.Width, snap.Track.Height, dst.Width(), groundY)

	dst.DrawHLine(0, groundY, dst.Width(), GroundChar, core.ColorGray)

	for _, o := range snap.Obstacles {
		from, to := vp.ColSpan(o.Span())
		top, bottom := vp.RowSpan(core.NewSpan(snap.Track.Height-o.Height, o.Height))
		dst.FillRect(from, top, to-from, bottom-top, ObstacleChar, core.ColorGreen)
	}

	left, right := vp.ColSpan(snap.Anchor)
	top, bottom := vp.RowSpan(core.NewSpan(snap.Body.Position, snap.BodySize))
	dst.FillRect(left, top, right-left, bottom-top, BodyChar, core.ColorCyan)
	dst.SetColored(right-1, top, HeadChar, core.ColorWhite)

	dst.DrawText(1, 0, fmt.Sprintf(" Score: %d  Best: %d ", snap.Score, snap.Best), core.ColorWhite)

	if snap.State == sim.StateGameOver {
		title := "GAME OVER"
		if snap.NewBest {
			title = "NEW BEST!"
		}
		dst.DrawMessage(title, fmt.Sprintf("Score: %d  |  R restart  B menu", snap.Score))
	}
}

// Register the mode with the registry
func init() {
	registry.Register(sim.RunnerMode, func() registry.Mode {
		return New()
	})
}
