package flap

import (
	"fmt"

	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/core"
	"github.com/vovakirdan/soarscape/internal/registry"
	"github.com/vovakirdan/soarscape/internal/sim"
)

// Visual characters for rendering
const (
	BodyChar      = '●'
	BeakChar      = '▶'
	PipeChar      = '█'
	PipeCapTop    = '▀'
	PipeCapBottom = '▄'
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Mode is the flap entry in the mode registry.
type Mode struct{}

// New creates the flap mode.
func New() *Mode {
	return &Mode{}
}

// ID returns the mode tag.
func (m *Mode) ID() sim.GameMode {
	return sim.FlapMode
}

// Title returns the display name for this mode.
func (m *Mode) Title() string {
	return "Flap"
}

// NewRules builds rules for the settings, from settings.Config when present
// and from the configured search path otherwise.
func (m *Mode) NewRules(settings sim.Settings) (sim.Rules, error) {
	var cfg config.FlapConfig
	var err error
	if len(settings.Config) > 0 {
		cfg, err = config.ParseFlap(settings.Config)
	} else {
		cfg, err = config.LoadFlap(configPath)
	}
	if err != nil {
		return nil, err
	}
	return NewRules(cfg, settings.Difficulty)
}

// Render draws the snapshot scaled to the screen.
func (m *Mode) Render(dst *core.Screen, snap sim.Snapshot) {
	if snap.Track.Width <= 0 || snap.Track.Height <= 0 {
		return
	}
	vp := core.NewViewport(snap.Track.Width, snap.Track.Height, dst.Width(), dst.Height())

	for _, o := range snap.Obstacles {
		drawBarrier(dst, vp, o)
	}

	left, right := vp.ColSpan(snap.Anchor)
	top, bottom := vp.RowSpan(core.NewSpan(snap.Body.Position, snap.BodySize))
	dst.FillRect(left, top, right-left, bottom-top, BodyChar, core.ColorBrightYellow)
	dst.SetColored(right-1, top, BeakChar, core.ColorOrange)

	hud := fmt.Sprintf(" Score: %d  Best: %d  %s ", snap.Score, snap.Best, snap.Difficulty.Title())
	dst.DrawText(1, 0, hud, core.ColorWhite)

	if snap.State == sim.StateGameOver {
		title := "GAME OVER"
		if snap.NewBest {
			title = "NEW BEST!"
		}
		dst.DrawMessage(title, fmt.Sprintf("Score: %d  |  R restart  B menu", snap.Score))
	}
}

// drawBarrier renders the top and bottom pipes of an obstacle, leaving the gap open.
func drawBarrier(dst *core.Screen, vp core.Viewport, o sim.Obstacle) {
	from, to := vp.ColSpan(o.Span())
	width := to - from
	gapTop := vp.Row(o.TopHeight)
	gapBottom := vp.Row(o.TopHeight + o.Gap)

	dst.FillRect(from, 0, width, gapTop, PipeChar, core.ColorGreen)
	if gapTop > 0 {
		dst.DrawHLine(from, gapTop-1, width, PipeCapTop, core.ColorBrightGreen)
	}

	dst.FillRect(from, gapBottom, width, dst.Height()-gapBottom, PipeChar, core.ColorGreen)
	if gapBottom < dst.Height() {
		dst.DrawHLine(from, gapBottom, width, PipeCapBottom, core.ColorBrightGreen)
	}
}

// Register the mode with the registry
func init() {
	registry.Register(sim.FlapMode, func() registry.Mode {
		return New()
	})
}
