package sim

import (
	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/core"
)

// Settings are chosen on the start screen and replayed on restart.
type Settings struct {
	Mode       GameMode
	Difficulty config.Difficulty
	Layout     LevelLayout // nil or empty: fully procedural
	Seed       int64

	// Config is a complete mode config document. Empty means the mode loads
	// its config from the usual search path.
	Config []byte
}

// RulesFactory builds the rules for a session's settings.
type RulesFactory func(Settings) (Rules, error)

// Snapshot is an immutable copy of the session after a tick. Renderers and
// other readers only ever see snapshots, never a session mid-update.
type Snapshot struct {
	Mode       GameMode
	Difficulty config.Difficulty
	State      State
	Track      TrackSize
	Anchor     core.Span
	BodySize   float64
	Body       Body
	Obstacles  []Obstacle
	Score      int // displayed score
	RawScore   int
	Best       int
	NewBest    bool // the session that just ended set a new best
	Ticks      int
	Jumped     bool // a jump was applied on the last tick
	Procedural bool // no layout patterns are available
}

// Option configures a Machine.
type Option func(*Machine)

// WithTransitionHook registers fn to be called synchronously on every state change.
// Schedulers use it to stop issuing ticks the moment play ends.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(m *Machine) {
		m.onTransition = fn
	}
}

// WithErrorHandler registers fn to receive non-fatal errors, such as a
// best-score store that cannot be read or written.
func WithErrorHandler(fn func(error)) Option {
	return func(m *Machine) {
		m.onError = fn
	}
}

// Machine is the Start/Playing/GameOver state machine and the imperative
// shell around Step. It is not safe for concurrent use: one goroutine owns it
// and issues every command and tick.
type Machine struct {
	state    State
	factory  RulesFactory
	best     *BestScores
	settings Settings
	rules    Rules
	session  Session

	jumpPending bool
	lastJumped  bool
	newBest     bool

	onTransition func(from, to State)
	onError      func(error)
}

// NewMachine creates a machine in the Start state. best may be nil.
func NewMachine(factory RulesFactory, best *BestScores, opts ...Option) *Machine {
	if best == nil {
		best = NewBestScores(nil)
	}
	m := &Machine{
		state:   StateStart,
		factory: factory,
		best:    best,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Settings returns the settings of the current or last session.
func (m *Machine) Settings() Settings {
	return m.settings
}

// Rules returns the rules of the current or last session, or nil before the first start.
func (m *Machine) Rules() Rules {
	return m.rules
}

// Best returns the best score for mode, reading the store on first use.
func (m *Machine) Best(mode GameMode) int {
	best, err := m.best.Load(mode)
	if err != nil {
		m.fail(err)
	}
	return best
}

// Start begins a session from the Start state. It is a no-op elsewhere.
// It returns false if nothing happened, including when the rules cannot be built.
func (m *Machine) Start(settings Settings) bool {
	if m.state != StateStart {
		return false
	}
	rules, err := m.factory(settings)
	if err != nil {
		m.fail(err)
		return false
	}

	settings.Layout = settings.Layout.Clone()
	m.settings = settings
	m.rules = rules
	m.Best(settings.Mode)
	m.begin()
	return true
}

// Restart replays the last settings, including the already fetched layout.
// It is a no-op outside GameOver.
func (m *Machine) Restart() bool {
	return m.RestartWithSeed(m.settings.Seed)
}

// RestartWithSeed is Restart with a new RNG seed for procedural generation.
func (m *Machine) RestartWithSeed(seed int64) bool {
	if m.state != StateGameOver {
		return false
	}
	m.settings.Seed = seed
	m.begin()
	return true
}

// ToMenu returns from GameOver to Start. It is a no-op elsewhere.
func (m *Machine) ToMenu() bool {
	if m.state != StateGameOver {
		return false
	}
	m.transition(StateStart)
	return true
}

// RequestJump queues a jump for the next tick. Any number of requests before
// a tick collapse into one. Requests outside Playing are ignored.
func (m *Machine) RequestJump() bool {
	if m.state != StatePlaying {
		return false
	}
	m.jumpPending = true
	return true
}

// Tick advances the session by one step. Outside Playing it does nothing and
// returns false. A fatal tick moves the machine to GameOver and records the
// best score before returning.
func (m *Machine) Tick() (Snapshot, bool) {
	if m.state != StatePlaying {
		return m.Snapshot(), false
	}

	next, out := Step(m.session, m.rules, Input{Jump: m.jumpPending})
	m.session = next
	m.jumpPending = false
	m.lastJumped = out.Jumped

	if out.Died {
		improved, err := m.best.Submit(m.settings.Mode, m.rules.DisplayScore(next.Raw))
		if err != nil {
			m.fail(err)
		}
		m.newBest = improved
		m.transition(StateGameOver)
	}
	return m.Snapshot(), true
}

// Snapshot returns a copy of the current session.
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:       m.settings.Mode,
		Difficulty: m.settings.Difficulty,
		State:      m.state,
		Best:       m.best.Best(m.settings.Mode),
		NewBest:    m.newBest,
		Jumped:     m.lastJumped,
		Procedural: len(m.settings.Layout) == 0,
	}
	if m.rules == nil {
		return snap
	}

	obstacles := make([]Obstacle, len(m.session.Track.Obstacles))
	copy(obstacles, m.session.Track.Obstacles)

	snap.Track = m.rules.Track()
	snap.Anchor = m.rules.Anchor()
	snap.BodySize = m.rules.BodySize()
	snap.Body = m.session.Body
	snap.Obstacles = obstacles
	snap.Score = m.rules.DisplayScore(m.session.Raw)
	snap.RawScore = m.session.Raw
	snap.Ticks = m.session.Ticks
	return snap
}

func (m *Machine) begin() {
	m.session = NewSession(m.rules, m.settings.Layout, m.settings.Seed)
	m.jumpPending = false
	m.lastJumped = false
	m.newBest = false
	m.transition(StatePlaying)
}

func (m *Machine) transition(to State) {
	from := m.state
	m.state = to
	if m.onTransition != nil {
		m.onTransition(from, to)
	}
}

func (m *Machine) fail(err error) {
	if m.onError != nil {
		m.onError(err)
	}
}
