// Package replay records and re-runs deterministic sessions.
//
// A recording holds everything a session depends on (mode, difficulty,
// seed, layout, mode config) plus the ticks at which jumps were requested. Re-running it
// through the simulation must reproduce the same score and tick count.
package replay

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/sim"
)

// FormatVersion is bumped when the encoding changes incompatibly.
const FormatVersion = 2

// Recording is a complete description of one session.
type Recording struct {
	Version    int               `msgpack:"version"`
	Mode       sim.GameMode      `msgpack:"mode"`
	Difficulty config.Difficulty `msgpack:"difficulty"`
	Seed       int64             `msgpack:"seed"`
	Layout     sim.LevelLayout   `msgpack:"layout"`
	Config     []byte            `msgpack:"config"` // mode config YAML; empty uses the local config
	Jumps      []int             `msgpack:"jumps"`  // jump requested after this many ticks
	Score      int               `msgpack:"score"`  // displayed score at the end
	Ticks      int               `msgpack:"ticks"`
}

// Settings returns the session settings the recording was made with.
func (r *Recording) Settings() sim.Settings {
	return sim.Settings{
		Mode:       r.Mode,
		Difficulty: r.Difficulty,
		Layout:     r.Layout.Clone(),
		Seed:       r.Seed,
		Config:     bytes.Clone(r.Config),
	}
}

// Encode writes the recording in msgpack form.
func Encode(w io.Writer, rec *Recording) error {
	if err := msgpack.NewEncoder(w).Encode(rec); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return nil
}

// Decode reads a recording written by Encode.
func Decode(r io.Reader) (*Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	if rec.Version != FormatVersion {
		return nil, fmt.Errorf("replay: unsupported format version %d", rec.Version)
	}
	if !rec.Mode.Valid() {
		return nil, fmt.Errorf("replay: unknown mode %q", rec.Mode)
	}
	return &rec, nil
}

// Save writes the recording to path.
func Save(path string, rec *Recording) error {
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("replay: write %s: %w", path, err)
	}
	return nil
}

// Load reads a recording from path.
func Load(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: read %s: %w", path, err)
	}
	return Decode(bytes.NewReader(data))
}

// Recorder captures the jump requests of a running session.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for settings.
func NewRecorder(settings sim.Settings) *Recorder {
	return &Recorder{rec: Recording{
		Version:    FormatVersion,
		Mode:       settings.Mode,
		Difficulty: settings.Difficulty,
		Seed:       settings.Seed,
		Layout:     settings.Layout.Clone(),
		Config:     bytes.Clone(settings.Config),
	}}
}

// Wrap returns a sim.Loop frame callback that records every jump decide requests.
func (r *Recorder) Wrap(decide func(sim.Snapshot) bool) func(sim.Snapshot) bool {
	return func(snap sim.Snapshot) bool {
		jump := decide(snap)
		if jump && snap.State == sim.StatePlaying {
			r.rec.Jumps = append(r.rec.Jumps, snap.Ticks)
		}
		return jump
	}
}

// Finish stamps the final result and returns the recording.
func (r *Recorder) Finish(final sim.Snapshot) *Recording {
	rec := r.rec
	rec.Jumps = append([]int(nil), r.rec.Jumps...)
	rec.Score = final.Score
	rec.Ticks = final.Ticks
	return &rec
}

// Run replays the recording with rules from factory and returns the final snapshot.
// Playback stops at the recorded tick count or when the session ends.
func Run(rec *Recording, factory sim.RulesFactory) (sim.Snapshot, error) {
	var startErr error
	m := sim.NewMachine(factory, nil, sim.WithErrorHandler(func(err error) { startErr = err }))
	if !m.Start(rec.Settings()) {
		if startErr == nil {
			startErr = fmt.Errorf("replay: cannot start %s session", rec.Mode)
		}
		return sim.Snapshot{}, startErr
	}

	jumps := make(map[int]bool, len(rec.Jumps))
	for _, tick := range rec.Jumps {
		jumps[tick] = true
	}

	snap := m.Snapshot()
	for snap.Ticks < rec.Ticks && m.State() == sim.StatePlaying {
		if jumps[snap.Ticks] {
			m.RequestJump()
		}
		snap, _ = m.Tick()
	}
	return snap, nil
}

// Verify replays the recording and checks that it reproduces the recorded result.
func Verify(rec *Recording, factory sim.RulesFactory) error {
	snap, err := Run(rec, factory)
	if err != nil {
		return err
	}
	if snap.Ticks != rec.Ticks || snap.Score != rec.Score {
		return fmt.Errorf("replay: diverged: got score %d after %d ticks, recorded %d after %d",
			snap.Score, snap.Ticks, rec.Score, rec.Ticks)
	}
	return nil
}
