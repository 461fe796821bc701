package replay

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/soarscape/internal/autopilot"
	"github.com/vovakirdan/soarscape/internal/config"
	_ "github.com/vovakirdan/soarscape/internal/games/flap"
	_ "github.com/vovakirdan/soarscape/internal/games/runner"
	"github.com/vovakirdan/soarscape/internal/registry"
	"github.com/vovakirdan/soarscape/internal/sim"
)

func record(t *testing.T, settings sim.Settings, ticks int, decide func(sim.Snapshot) bool) *Recording {
	t.Helper()
	m := sim.NewMachine(registry.Rules, nil)
	if !m.Start(settings) {
		t.Fatal("Start() failed")
	}
	rec := NewRecorder(settings)
	snap, err := (&sim.Loop{Machine: m, MaxTicks: ticks, OnFrame: rec.Wrap(decide)}).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return rec.Finish(snap)
}

func TestRecordSaveVerify(t *testing.T) {
	rec := record(t, sim.Settings{
		Mode:       sim.FlapMode,
		Difficulty: config.DifficultyHard,
		Seed:       2024,
	}, 1500, autopilot.New().Decide)

	if len(rec.Jumps) == 0 {
		t.Fatal("autopilot never jumped")
	}

	path := filepath.Join(t.TempDir(), "session.replay")
	if err := Save(path, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Seed != 2024 || loaded.Difficulty != config.DifficultyHard || len(loaded.Jumps) != len(rec.Jumps) {
		t.Errorf("loaded recording differs: %+v", loaded)
	}

	if err := Verify(loaded, registry.Rules); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestVerifyFatalSession(t *testing.T) {
	never := func(sim.Snapshot) bool { return false }
	rec := record(t, sim.Settings{Mode: sim.RunnerMode, Seed: 3}, 0, never)

	if rec.Ticks == 0 {
		t.Fatal("session recorded no ticks")
	}
	if err := Verify(rec, registry.Rules); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestVerifyWithLayout(t *testing.T) {
	layout := sim.LevelLayout{{Position: 1, Height: 90, Spacing: 300}, {Position: 2, Height: 160, Spacing: 380}}
	rec := record(t, sim.Settings{Mode: sim.FlapMode, Difficulty: config.DifficultyEasy, Layout: layout, Seed: 1}, 800, autopilot.New().Decide)

	var buf bytes.Buffer
	if err := Encode(&buf, rec); err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.Layout) != 2 || decoded.Layout[1] != layout[1] {
		t.Errorf("layout lost in encoding: %+v", decoded.Layout)
	}
	if err := Verify(decoded, registry.Rules); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestVerifyDetectsDivergence(t *testing.T) {
	rec := record(t, sim.Settings{Mode: sim.FlapMode, Difficulty: config.DifficultyMedium, Seed: 8}, 600, autopilot.New().Decide)

	tampered := *rec
	tampered.Jumps = nil
	if err := Verify(&tampered, registry.Rules); err == nil {
		t.Error("dropping every jump should change the outcome")
	}
}

func TestRecordingCarriesModeConfig(t *testing.T) {
	never := func(sim.Snapshot) bool { return false }
	rec := record(t, sim.Settings{
		Mode:   sim.RunnerMode,
		Seed:   3,
		Config: []byte("physics:\n  speed: 3\n"), // slower than the default, so it lives longer
	}, 0, never)

	var buf bytes.Buffer
	if err := Encode(&buf, rec); err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded.Config, rec.Config) {
		t.Fatalf("config lost in encoding: %q", decoded.Config)
	}
	if err := Verify(decoded, registry.Rules); err != nil {
		t.Errorf("Verify() with recorded config error = %v", err)
	}

	local := *decoded
	local.Config = nil
	if err := Verify(&local, registry.Rules); err == nil {
		t.Error("replaying under the default config should diverge")
	}
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &Recording{Version: 99, Mode: sim.FlapMode}); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(&buf); err == nil {
		t.Error("expected an error for an unknown format version")
	}
}
