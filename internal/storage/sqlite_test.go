package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/sim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore(sim.FlapMode, config.DifficultyMedium, score, score*10); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore(sim.RunnerMode, config.DifficultyEasy, 500, 5000); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores(sim.FlapMode, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %+v", scores)
	}
	if scores[0].Mode != sim.FlapMode || scores[0].Difficulty != config.DifficultyMedium || scores[0].Ticks != 2000 {
		t.Errorf("Unexpected entry: %+v", scores[0])
	}

	runner, err := store.TopScores(sim.RunnerMode, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(runner) != 1 {
		t.Errorf("Expected 1 runner score, got %d", len(runner))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore(sim.FlapMode, config.DifficultyHard, (i+1)*100, 0) //nolint:errcheck // Test setup
	}

	scores, err := store.TopScores(sim.FlapMode, 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, err := store.AllScores(sim.FlapMode)
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore(sim.FlapMode)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty mode, got %d", high)
	}

	for _, score := range []int{100, 300, 200} {
		store.SaveScore(sim.FlapMode, config.DifficultyMedium, score, 0) //nolint:errcheck // Test setup
	}

	high, err = store.HighScore(sim.FlapMode)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreBestScores(t *testing.T) {
	store := openTestStore(t)

	best, err := store.LoadBest(sim.FlapMode)
	if err != nil || best != 0 {
		t.Fatalf("LoadBest() on empty store = %d, %v", best, err)
	}

	if err := store.SaveBest(sim.FlapMode, 17); err != nil {
		t.Fatalf("SaveBest() failed: %v", err)
	}
	if err := store.SaveBest(sim.FlapMode, 23); err != nil {
		t.Fatalf("SaveBest() failed: %v", err)
	}

	raw, ok, err := store.Get("bestScore_flap")
	if err != nil || !ok || raw != "23" {
		t.Errorf("stored value = %q, %v, %v; want \"23\"", raw, ok, err)
	}

	if best, _ := store.LoadBest(sim.FlapMode); best != 23 {
		t.Errorf("LoadBest() = %d, want 23", best)
	}
	if best, _ := store.LoadBest(sim.RunnerMode); best != 0 {
		t.Errorf("runner best leaked from flap: %d", best)
	}
}

func TestStoreCorruptBestScore(t *testing.T) {
	store := openTestStore(t)

	if err := store.Put(sim.RunnerMode.BestScoreKey(), "lots"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.LoadBest(sim.RunnerMode); err == nil {
		t.Error("expected an error for a non-numeric best score")
	}
}

func TestStoreBackedBestScores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")

	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	best := sim.NewBestScores(store)
	for _, score := range []int{4, 9, 2} {
		if _, err := best.Submit(sim.RunnerMode, score); err != nil {
			t.Fatal(err)
		}
	}
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	got, err := sim.NewBestScores(reopened).Load(sim.RunnerMode)
	if err != nil || got != 9 {
		t.Errorf("best after reopen = %d, %v; want 9", got, err)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(sim.FlapMode, config.DifficultyMedium, 100, 0)   //nolint:errcheck // Test setup
	store.SaveScore(sim.FlapMode, config.DifficultyMedium, 200, 0)   //nolint:errcheck // Test setup
	store.SaveScore(sim.RunnerMode, config.DifficultyMedium, 300, 0) //nolint:errcheck // Test setup
	store.SaveBest(sim.FlapMode, 200)                                //nolint:errcheck // Test setup

	if err := store.ClearScores(sim.FlapMode); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if flap, _ := store.TopScores(sim.FlapMode, 10); len(flap) != 0 {
		t.Errorf("Expected 0 flap scores after clear, got %d", len(flap))
	}
	if best, _ := store.LoadBest(sim.FlapMode); best != 0 {
		t.Errorf("flap best should be cleared, got %d", best)
	}
	if runner, _ := store.TopScores(sim.RunnerMode, 10); len(runner) != 1 {
		t.Errorf("Runner scores should not be affected by clearing flap")
	}
}

func TestStoreModeStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetModeStats(sim.FlapMode)
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore(sim.FlapMode, config.DifficultyEasy, 10, 600) //nolint:errcheck // Test setup
	store.SaveScore(sim.FlapMode, config.DifficultyHard, 20, 900) //nolint:errcheck // Test setup

	stats, err = store.GetModeStats(sim.FlapMode)
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 20 || stats.AvgScore != 15 || stats.TotalTicks != 1500 {
		t.Errorf("stats = %+v", stats)
	}
}
