package levels

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/sim"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestPromptMentionsDifficulty(t *testing.T) {
	p := Prompt(config.DifficultyHard)
	if !strings.Contains(p, "Difficulty: hard") {
		t.Errorf("prompt does not carry the difficulty:\n%s", p)
	}
	if !strings.Contains(p, `"obstacles"`) {
		t.Error("prompt should include the example layout")
	}
}

func TestHTTPProviderWrappedLayout(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"levelLayout":"{\"obstacles\":[{\"position\":100,\"height\":200,\"spacing\":300}]}"}`)
	}))
	defer srv.Close()

	p := &HTTPProvider{Endpoint: srv.URL}
	layout, err := p.Generate(context.Background(), config.DifficultyEasy)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(layout) != 1 || layout[0].Height != 200 || layout[0].Spacing != 300 {
		t.Errorf("layout = %+v", layout)
	}
	if got.Difficulty != config.DifficultyEasy || got.Prompt == "" {
		t.Errorf("request = %+v", got)
	}
}

func TestHTTPProviderBareAndMalformed(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{"bare document", `{"obstacles":[{"height":120},{"height":180}]}`, 2, false},
		{"malformed layout string", `{"levelLayout":"{bad json"}`, 0, false},
		{"garbage", `not json at all`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			layout, err := (&HTTPProvider{Endpoint: srv.URL}).Generate(context.Background(), config.DifficultyMedium)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(layout) != tt.want {
				t.Errorf("len(layout) = %d, want %d", len(layout), tt.want)
			}
		})
	}
}

func TestHTTPProviderStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := (&HTTPProvider{Endpoint: srv.URL}).Generate(context.Background(), config.DifficultyMedium); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}

func TestFileProvider(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "level.json")
	if err := os.WriteFile(jsonPath, []byte(`{"obstacles":[{"position":1,"height":90,"spacing":400}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "level.yaml")
	yamlDoc := "obstacles:\n  - position: 1\n    height: 110\n    spacing: 320\n  - position: 2\n    height: 140\n"
	if err := os.WriteFile(yamlPath, []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	layout, err := FileProvider{Path: jsonPath}.Generate(context.Background(), config.DifficultyMedium)
	if err != nil || len(layout) != 1 || layout[0].Spacing != 400 {
		t.Errorf("json: layout = %+v, err = %v", layout, err)
	}

	layout, err = FileProvider{Path: yamlPath}.Generate(context.Background(), config.DifficultyMedium)
	if err != nil || len(layout) != 2 || layout[0].Height != 110 || layout[1].Spacing != 0 {
		t.Errorf("yaml: layout = %+v, err = %v", layout, err)
	}

	if _, err := (FileProvider{Path: filepath.Join(dir, "missing.json")}).Generate(context.Background(), config.DifficultyMedium); err == nil {
		t.Error("missing file should fail")
	}
}

func TestFetchFallsBackToNil(t *testing.T) {
	failing := ProviderFunc(func(context.Context, config.Difficulty) (sim.LevelLayout, error) {
		return nil, errors.New("service unavailable")
	})
	if got := Fetch(context.Background(), failing, config.DifficultyMedium, time.Second, quietLogger()); got != nil {
		t.Errorf("failed provider: got %+v, want nil", got)
	}

	slow := ProviderFunc(func(ctx context.Context, _ config.Difficulty) (sim.LevelLayout, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	start := time.Now()
	if got := Fetch(context.Background(), slow, config.DifficultyMedium, 20*time.Millisecond, quietLogger()); got != nil {
		t.Errorf("slow provider: got %+v, want nil", got)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("Fetch did not honour its timeout")
	}

	if got := Fetch(context.Background(), nil, config.DifficultyMedium, 0, quietLogger()); got != nil {
		t.Error("nil provider should yield nil")
	}
}

func TestFetchAbandonsProviderIgnoringContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	stuck := ProviderFunc(func(context.Context, config.Difficulty) (sim.LevelLayout, error) {
		<-release
		return sim.LevelLayout{{Height: 150, Spacing: 300}}, nil
	})

	got := make(chan sim.LevelLayout, 1)
	go func() {
		got <- Fetch(context.Background(), stuck, config.DifficultyMedium, 20*time.Millisecond, quietLogger())
	}()

	select {
	case layout := <-got:
		if layout != nil {
			t.Errorf("timed out fetch: got %+v, want nil", layout)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Fetch blocked on a provider that ignores its context")
	}
}

func TestFetchStatic(t *testing.T) {
	static := StaticProvider{Layout: sim.LevelLayout{{Height: 150, Spacing: 300}}}
	got := Fetch(context.Background(), static, config.DifficultyHard, 0, quietLogger())
	if len(got) != 1 || got[0].Height != 150 {
		t.Errorf("Fetch() = %+v", got)
	}

	got[0].Height = 1
	if static.Layout[0].Height != 150 {
		t.Error("static provider leaked its layout")
	}
}
