package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/core"
	"github.com/vovakirdan/soarscape/internal/levels"
	"github.com/vovakirdan/soarscape/internal/registry"
	"github.com/vovakirdan/soarscape/internal/sim"
	"github.com/vovakirdan/soarscape/internal/storage"
)

// GameOptions are the per-session choices made before a game starts.
type GameOptions struct {
	Difficulty config.Difficulty

	// Levels generates a flap layout before play. Nil means procedural obstacles.
	Levels       levels.Provider
	LevelTimeout time.Duration

	Logger *log.Logger

	// Standalone makes "back to menu" exit the program, for games launched
	// without a menu around them.
	Standalone bool
}

// layoutMsg carries the result of a level fetch. A nil layout means procedural play.
type layoutMsg struct {
	layout sim.LevelLayout
}

// tickChains hands out tick chain IDs, unique within the process.
var tickChains atomic.Int64

// sessionState is shared by every copy of a GameModel and by the machine hooks.
type sessionState struct {
	gen int64 // current tick chain; replaced whenever play stops
	err error // last error reported by the machine
}

// GameModel drives one mode's state machine from Bubble Tea messages.
type GameModel struct {
	mode      registry.Mode
	machine   *sim.Machine
	state     *sessionState
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	opts      GameOptions
	logger    *log.Logger
	keyMapper *KeyMapper
	spinner   spinner.Model
	reseed    bool // restart with a fresh seed instead of replaying the same one
	loading   bool
	quitting  bool

	backToMenu bool
}

// NewGameModel creates a game model for mode. store may be nil.
func NewGameModel(mode registry.Mode, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	reseed := cfg.Seed == 0
	if reseed {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	state := &sessionState{gen: tickChains.Add(1)}
	var bestStore sim.BestScoreStore
	if store != nil {
		bestStore = store
	}
	machine := sim.NewMachine(
		func(s sim.Settings) (sim.Rules, error) { return mode.NewRules(s) },
		sim.NewBestScores(bestStore),
		sim.WithTransitionHook(func(from, to sim.State) {
			if from == sim.StatePlaying {
				state.gen = tickChains.Add(1)
			}
			logger.Debug("state change", "mode", mode.ID(), "from", from, "to", to)
		}),
		sim.WithErrorHandler(func(err error) {
			state.err = err
			logger.Warn("session error", "mode", mode.ID(), "err", err)
		}),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

	return GameModel{
		mode:      mode,
		machine:   machine,
		state:     state,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		opts:      opts,
		logger:    logger,
		keyMapper: NewKeyMapper(),
		spinner:   sp,
		reseed:    reseed,
		loading:   mode.ID() == sim.FlapMode && opts.Levels != nil,
	}
}

// Init fetches a level if one is needed, otherwise starts play right away.
func (m GameModel) Init() tea.Cmd {
	if m.loading {
		return tea.Batch(m.spinner.Tick, m.fetchLayout())
	}
	return m.start(nil)
}

// fetchLayout runs the level provider off the UI goroutine.
func (m GameModel) fetchLayout() tea.Cmd {
	provider := m.opts.Levels
	difficulty := m.opts.Difficulty
	timeout := m.opts.LevelTimeout
	logger := m.logger
	return func() tea.Msg {
		return layoutMsg{layout: levels.Fetch(context.Background(), provider, difficulty, timeout, logger)}
	}
}

// start leaves the Start state and issues the first tick of a new chain.
func (m GameModel) start(layout sim.LevelLayout) tea.Cmd {
	ok := m.machine.Start(sim.Settings{
		Mode:       m.mode.ID(),
		Difficulty: m.opts.Difficulty,
		Layout:     layout,
		Seed:       m.config.Seed,
	})
	if !ok {
		return nil
	}
	return tickCmd(m.config.TickRate, m.state.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.keyMapper.MapMouse(msg) == core.ActionJump {
			m.machine.RequestJump()
		}
		return m, nil

	case tea.WindowSizeMsg:
		// The simulation runs in world units, so a resize only changes the canvas.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case layoutMsg:
		m.loading = false
		return m, m.start(msg.layout)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionJump:
		m.machine.RequestJump()

	case core.ActionRestart:
		if m.restart() {
			return m, tickCmd(m.config.TickRate, m.state.gen)
		}

	case core.ActionBack:
		// Back is honored once play is over, or when play never started.
		if m.machine.State() == sim.StatePlaying || m.loading {
			return m, nil
		}
		m.machine.ToMenu()
		m.backToMenu = true
		if m.opts.Standalone {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// restart begins a new session with the same settings and layout.
func (m GameModel) restart() bool {
	if m.reseed {
		return m.machine.RestartWithSeed(time.Now().UnixNano())
	}
	return m.machine.Restart()
}

// handleTick advances the simulation by one step and schedules the next one
// while play continues. Ticks from an older chain are dropped.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.state.gen || m.machine.State() != sim.StatePlaying {
		return m, nil
	}

	snap, _ := m.machine.Tick()
	if snap.State == sim.StateGameOver {
		m.recordScore(snap)
		return m, nil
	}
	return m, tickCmd(m.config.TickRate, m.state.gen)
}

// recordScore appends the finished session to the score history.
func (m GameModel) recordScore(snap sim.Snapshot) {
	m.logger.Info("game over", "mode", snap.Mode, "difficulty", snap.Difficulty,
		"score", snap.Score, "ticks", snap.Ticks, "new_best", snap.NewBest)
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveScore(snap.Mode, snap.Difficulty, snap.Score, snap.Ticks); err != nil {
		m.logger.Warn("could not save score", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m GameModel) saveScreenshot() {
	m.renderFrame()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".soarscape", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.mode.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

func (m GameModel) renderFrame() {
	m.screen.Clear()
	m.mode.Render(m.screen, m.machine.Snapshot())
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.loading {
		text := fmt.Sprintf("%s Generating level...", m.spinner.View())
		return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, text)
	}

	if m.machine.State() == sim.StateStart {
		reason := "unknown error"
		if m.state.err != nil {
			reason = m.state.err.Error()
		}
		m.screen.Clear()
		m.screen.DrawMessage("CANNOT START", reason)
		m.screen.DrawTextCentered(m.screen.Height()-1, "B back  Q quit", core.ColorGray)
		return RenderScreen(m.screen)
	}

	m.renderFrame()
	return RenderScreen(m.screen)
}

// Snapshot returns the current simulation snapshot.
func (m GameModel) Snapshot() sim.Snapshot {
	return m.machine.Snapshot()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays mode in its own Bubble Tea program until the player quits.
func Run(mode registry.Mode, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) error {
	opts.Standalone = true
	model := NewGameModel(mode, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // clicks flap
	)

	_, err := p.Run()
	return err
}
