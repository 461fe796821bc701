package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/soarscape/internal/core"
)

// pipeRules is a minimal flap-like ruleset used to exercise the shared core.
type pipeRules struct {
	gravity float64
	jump    float64
	speed   float64
	gap     float64
	spacing float64
}

func newPipeRules() *pipeRules {
	return &pipeRules{gravity: 0.5, jump: -8, speed: 4, gap: 200, spacing: 350}
}

func (r *pipeRules) Mode() GameMode { return FlapMode }
func (r *pipeRules) Track() TrackSize { return TrackSize{Width: 800, Height: 400} }
func (r *pipeRules) Anchor() core.Span { return core.NewSpan(150, 40) }
func (r *pipeRules) BodySize() float64 { return 40 }
func (r *pipeRules) Speed() float64 { return r.speed }
func (r *pipeRules) InitialBody() Body { return Body{Position: 200} }
func (r *pipeRules) Integrate(b *Body) { b.Integrate(r.gravity) }
func (r *pipeRules) DisplayScore(n int) int { return n }

func (r *pipeRules) Jump(b *Body) bool {
	b.Jump(r.jump)
	return true
}

func (r *pipeRules) next(s *Session, x float64) {
	top := 100.0
	spacing := r.spacing
	if p, ok := s.Cursor.Next(); ok {
		top = p.Height
		if p.Spacing > 0 {
			spacing = p.Spacing
		}
	}
	if last, ok := s.Track.Trailing(); ok {
		x = last.X + spacing
	}
	s.Track.Append(Obstacle{X: x, Width: 80, TopHeight: top, Gap: r.gap})
}

func (r *pipeRules) Populate(s *Session) {
	for i := 0; i < 3; i++ {
		r.next(s, 800)
	}
}

func (r *pipeRules) Spawn(s *Session) {
	if last, ok := s.Track.Trailing(); !ok || last.X < 800 {
		r.next(s, 800)
	}
}

func (r *pipeRules) Collides(s *Session, active Obstacle, hasActive bool) bool {
	if OutOfBounds(s.Body.Position, 40, 400) {
		return true
	}
	return hasActive && HitsGap(s.Body.Position, 40, active)
}

func (r *pipeRules) Score(s *Session, active Obstacle, hasActive bool) int {
	if hasActive && PassedAnchor(active, 150, r.speed) {
		return 1
	}
	return 0
}

type memStore struct {
	values  map[GameMode]int
	saves   int
	loadErr error
}

func (m *memStore) LoadBest(mode GameMode) (int, error) {
	if m.loadErr != nil {
		return 0, m.loadErr
	}
	return m.values[mode], nil
}

func (m *memStore) SaveBest(mode GameMode, score int) error {
	if m.values == nil {
		m.values = make(map[GameMode]int)
	}
	m.values[mode] = score
	m.saves++
	return nil
}

func pipeFactory(r *pipeRules) RulesFactory {
	return func(Settings) (Rules, error) { return r, nil }
}

func TestBodyIntegrateOrder(t *testing.T) {
	b := Body{Position: 200, Velocity: 0}
	b.Integrate(0.5)
	if b.Velocity != 0.5 || b.Position != 200.5 {
		t.Errorf("after one tick: got %+v, want velocity 0.5 position 200.5", b)
	}

	b.Jump(-8)
	b.Jump(-8)
	if b.Velocity != -8 {
		t.Errorf("jumps must not stack: velocity = %v", b.Velocity)
	}
	b.Integrate(0.5)
	if b.Velocity != -7.5 || b.Position != 193 {
		t.Errorf("after jump tick: got %+v, want velocity -7.5 position 193", b)
	}
}

func TestLayoutCursorCycles(t *testing.T) {
	layout := LevelLayout{{Height: 1}, {Height: 2}, {Height: 3}}
	c := NewLayoutCursor(layout)

	var got []float64
	for i := 0; i < 7; i++ {
		p, ok := c.Next()
		if !ok {
			t.Fatalf("Next() returned false on non-empty layout")
		}
		got = append(got, p.Height)
	}
	want := []float64{1, 2, 3, 1, 2, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pattern %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if c.Index() != 1 {
		t.Errorf("Index() = %d, want 1", c.Index())
	}
}

func TestLayoutCursorEdgeCases(t *testing.T) {
	empty := NewLayoutCursor(nil)
	if _, ok := empty.Next(); ok {
		t.Error("empty layout should yield no patterns")
	}

	single := NewLayoutCursor(LevelLayout{{Height: 42}})
	for i := 0; i < 3; i++ {
		p, ok := single.Next()
		if !ok || p.Height != 42 {
			t.Fatalf("single pattern layout: got %+v, %v", p, ok)
		}
	}
}

func TestDecodeLayout(t *testing.T) {
	layout, err := DecodeLayout([]byte(`{"obstacles":[{"position":100,"height":200,"spacing":300},{"position":400,"height":150,"spacing":350}]}`))
	if err != nil {
		t.Fatalf("DecodeLayout() error = %v", err)
	}
	if len(layout) != 2 || layout[1].Height != 150 || layout[0].Spacing != 300 {
		t.Errorf("unexpected layout: %+v", layout)
	}

	if _, err := DecodeLayout([]byte(`{"levels":[]}`)); !errors.Is(err, ErrNoObstacles) {
		t.Errorf("missing obstacles: err = %v, want ErrNoObstacles", err)
	}
}

func TestParseLayoutMalformed(t *testing.T) {
	layout := ParseLayout([]byte("{bad json"))
	if layout == nil || len(layout) != 0 {
		t.Fatalf("malformed layout should parse to an empty layout, got %#v", layout)
	}

	// An empty layout means the session is fully procedural.
	m := NewMachine(pipeFactory(newPipeRules()), nil)
	if !m.Start(Settings{Mode: FlapMode, Layout: layout, Seed: 1}) {
		t.Fatal("Start() refused an empty layout")
	}
	if !m.Snapshot().Procedural {
		t.Error("session with empty layout should be procedural")
	}
}

func TestTrackRecycleAndIDs(t *testing.T) {
	var tr Track
	a := tr.Append(Obstacle{X: -100, Width: 80})
	b := tr.Append(Obstacle{X: -80, Width: 80})
	c := tr.Append(Obstacle{X: 300, Width: 80})
	if a.ID == b.ID || b.ID == c.ID {
		t.Fatalf("IDs must be unique: %d %d %d", a.ID, b.ID, c.ID)
	}
	if !tr.Sorted() {
		t.Fatal("track should be sorted")
	}

	if n := tr.Recycle(); n != 1 {
		t.Fatalf("Recycle() removed %d, want 1", n)
	}
	if tr.Len() != 2 || tr.Obstacles[0].ID != b.ID {
		t.Errorf("unexpected track after recycle: %+v", tr.Obstacles)
	}

	d := tr.Append(Obstacle{X: 700, Width: 80})
	if d.ID <= c.ID {
		t.Errorf("recycled IDs must never reappear: new ID %d after %d", d.ID, c.ID)
	}
}

func TestStepCollisionWithBarrier(t *testing.T) {
	rules := newPipeRules()
	s := NewSession(rules, nil, 1)
	s.Body = Body{Position: 90, Velocity: 0}
	s.Track = Track{}
	s.Track.Append(Obstacle{X: 154, Width: 80, TopHeight: 100, Gap: 175})

	// After gravity the body sits at 90.5, inside the top barrier.
	_, out := Step(s, rules, Input{})
	if !out.Died {
		t.Fatal("body above the gap should collide")
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	rules := newPipeRules()
	s := NewSession(rules, nil, 1)
	before := s.Track.Obstacles[0].X

	next, _ := Step(s, rules, Input{})
	if s.Track.Obstacles[0].X != before {
		t.Errorf("Step mutated its input: X %v -> %v", before, s.Track.Obstacles[0].X)
	}
	if next.Track.Obstacles[0].X != before-rules.speed {
		t.Errorf("next X = %v, want %v", next.Track.Obstacles[0].X, before-rules.speed)
	}
	if next.Ticks != 1 {
		t.Errorf("Ticks = %d, want 1", next.Ticks)
	}
}

func TestStepScoresEachObstacleOnce(t *testing.T) {
	rules := newPipeRules()
	rules.gravity = 0
	s := NewSession(rules, nil, 1)
	s.Body = Body{Position: 150}
	s.Track = Track{}
	s.Track.Append(Obstacle{X: 300, Width: 80, TopHeight: 100, Gap: 200})

	for i := 0; i < 200; i++ {
		var out Outcome
		s, out = Step(s, rules, Input{})
		if out.Died {
			t.Fatalf("unexpected death at tick %d", i)
		}
	}
	// Obstacles sit 350 apart; the first two trailing edges reach the anchor
	// at ticks 57 and 144.
	if s.Raw != 2 {
		t.Errorf("Raw = %d, want 2", s.Raw)
	}
}

func TestMachineTransitions(t *testing.T) {
	var transitions []string
	m := NewMachine(pipeFactory(newPipeRules()), nil,
		WithTransitionHook(func(from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		}))

	if m.State() != StateStart {
		t.Fatalf("initial state = %v", m.State())
	}
	if _, ok := m.Tick(); ok {
		t.Error("Tick() in Start should be a no-op")
	}
	if m.RequestJump() || m.Restart() || m.ToMenu() {
		t.Error("jump, restart and menu are no-ops in Start")
	}

	if !m.Start(Settings{Mode: FlapMode, Seed: 7}) {
		t.Fatal("Start() failed")
	}
	if m.Start(Settings{Mode: FlapMode}) {
		t.Error("Start() while Playing should be a no-op")
	}

	// No input: the body falls out of the world.
	for i := 0; i < 1000 && m.State() == StatePlaying; i++ {
		m.Tick()
	}
	if m.State() != StateGameOver {
		t.Fatalf("state = %v, want GameOver", m.State())
	}
	if _, ok := m.Tick(); ok {
		t.Error("Tick() in GameOver should be a no-op")
	}
	if m.RequestJump() {
		t.Error("RequestJump() in GameOver should be a no-op")
	}

	if !m.Restart() {
		t.Fatal("Restart() failed")
	}
	if snap := m.Snapshot(); snap.Ticks != 0 || snap.Score != 0 {
		t.Errorf("restart should reset the session: %+v", snap)
	}
	for i := 0; i < 1000 && m.State() == StatePlaying; i++ {
		m.Tick()
	}
	if !m.ToMenu() {
		t.Fatal("ToMenu() failed")
	}

	want := []string{"Start->Playing", "Playing->GameOver", "GameOver->Playing", "Playing->GameOver", "GameOver->Start"}
	if len(transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d = %s, want %s", i, transitions[i], want[i])
		}
	}
}

func TestMachineFactoryError(t *testing.T) {
	var reported error
	m := NewMachine(func(Settings) (Rules, error) { return nil, errors.New("boom") }, nil,
		WithErrorHandler(func(err error) { reported = err }))

	if m.Start(Settings{Mode: FlapMode}) {
		t.Fatal("Start() should fail when rules cannot be built")
	}
	if m.State() != StateStart || reported == nil {
		t.Errorf("state = %v, reported = %v", m.State(), reported)
	}
}

func TestJumpRequestsCoalesce(t *testing.T) {
	rules := newPipeRules()
	m := NewMachine(pipeFactory(rules), nil)
	m.Start(Settings{Mode: FlapMode, Seed: 1})

	m.RequestJump()
	m.RequestJump()
	m.RequestJump()
	snap, _ := m.Tick()
	if !snap.Jumped {
		t.Fatal("pending jump was not applied")
	}
	if snap.Body.Velocity != -7.5 {
		t.Errorf("velocity = %v, want -7.5 (one jump, then gravity)", snap.Body.Velocity)
	}

	snap, _ = m.Tick()
	if snap.Jumped {
		t.Error("jump request must be consumed by a single tick")
	}
}

func TestBestScoreIsMaximum(t *testing.T) {
	store := &memStore{values: map[GameMode]int{FlapMode: 3}}
	best := NewBestScores(store)

	if got, _ := best.Load(FlapMode); got != 3 {
		t.Fatalf("Load() = %d, want 3", got)
	}

	for _, score := range []int{1, 5, 4, 5, 2} {
		if _, err := best.Submit(FlapMode, score); err != nil {
			t.Fatal(err)
		}
	}
	if best.Best(FlapMode) != 5 {
		t.Errorf("Best() = %d, want 5", best.Best(FlapMode))
	}
	if store.saves != 1 || store.values[FlapMode] != 5 {
		t.Errorf("store written %d times with %d, want once with 5", store.saves, store.values[FlapMode])
	}
	if best.Best(RunnerMode) != 0 {
		t.Error("modes must not share best scores")
	}
}

func TestBestScoreLoadError(t *testing.T) {
	store := &memStore{values: map[GameMode]int{RunnerMode: 50}, loadErr: errors.New("disk on fire")}
	best := NewBestScores(store)

	if _, err := best.Load(RunnerMode); err == nil {
		t.Fatal("expected load error")
	}
	improved, err := best.Submit(RunnerMode, 3)
	if err == nil || improved {
		t.Errorf("Submit() with unreadable store = %v, %v; want false, error", improved, err)
	}
	if store.saves != 0 {
		t.Fatalf("store written %d times before its best was read", store.saves)
	}

	store.loadErr = nil
	improved, err = best.Submit(RunnerMode, 3)
	if err != nil || improved {
		t.Errorf("Submit() after recovery = %v, %v; want false, nil", improved, err)
	}
	if store.values[RunnerMode] != 50 || best.Best(RunnerMode) != 50 {
		t.Errorf("stored best = %d, in memory %d; want 50", store.values[RunnerMode], best.Best(RunnerMode))
	}

	improved, err = best.Submit(RunnerMode, 60)
	if err != nil || !improved || store.values[RunnerMode] != 60 {
		t.Errorf("Submit(60) = %v, %v, stored %d; want true, nil, 60", improved, err, store.values[RunnerMode])
	}
}

func TestMachineRecordsBestOnGameOver(t *testing.T) {
	store := &memStore{}
	rules := newPipeRules()
	rules.gravity = 0
	m := NewMachine(pipeFactory(rules), NewBestScores(store))
	m.Start(Settings{Mode: FlapMode, Seed: 1})

	// Let the first barrier score, then fly into the ceiling.
	for i := 0; i < 400 && m.State() == StatePlaying; i++ {
		if i > 200 {
			m.RequestJump()
		}
		m.Tick()
	}
	snap := m.Snapshot()
	if snap.State != StateGameOver {
		t.Fatalf("state = %v, want GameOver", snap.State)
	}
	if snap.Score > 0 && (!snap.NewBest || store.values[FlapMode] != snap.Score) {
		t.Errorf("best not recorded: snapshot %+v, store %v", snap, store.values)
	}
	if snap.Best != snap.Score {
		t.Errorf("Best = %d, want %d", snap.Best, snap.Score)
	}
}

func TestLoopStopsWhenPlayEnds(t *testing.T) {
	m := NewMachine(pipeFactory(newPipeRules()), nil)
	m.Start(Settings{Mode: FlapMode, Seed: 1})

	frames := 0
	loop := &Loop{
		Machine: m,
		OnFrame: func(Snapshot) bool {
			frames++
			return false
		},
	}
	snap, err := loop.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if snap.State != StateGameOver {
		t.Errorf("final state = %v, want GameOver", snap.State)
	}
	if frames != snap.Ticks {
		t.Errorf("frames = %d, ticks = %d; no tick may run after game over", frames, snap.Ticks)
	}
}

func TestLoopMaxTicksAndCancel(t *testing.T) {
	m := NewMachine(pipeFactory(newPipeRules()), nil)
	m.Start(Settings{Mode: FlapMode, Seed: 1})

	snap, err := (&Loop{Machine: m, MaxTicks: 5}).Run(context.Background())
	if err != nil || snap.Ticks != 5 {
		t.Fatalf("Run() = ticks %d, err %v; want 5, nil", snap.Ticks, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = (&Loop{Machine: m, Interval: time.Millisecond}).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() with cancelled context: err = %v", err)
	}
}

func TestJumpSignalCoalesces(t *testing.T) {
	j := NewJumpSignal()
	for i := 0; i < 10; i++ {
		j.RequestJump()
	}
	if !j.take() {
		t.Fatal("expected a pending jump")
	}
	if j.take() {
		t.Error("requests must collapse into one")
	}
}
