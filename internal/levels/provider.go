// Package levels supplies externally generated level layouts for flap mode.
// A provider may be slow or fail; Fetch bounds it with a timeout and turns
// every failure into a nil layout so the game falls back to procedural
// generation.
package levels

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/sim"
)

// DefaultTimeout bounds a layout request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Provider generates a level layout for a difficulty.
type Provider interface {
	Generate(ctx context.Context, difficulty config.Difficulty) (sim.LevelLayout, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, difficulty config.Difficulty) (sim.LevelLayout, error)

// Generate calls f.
func (f ProviderFunc) Generate(ctx context.Context, difficulty config.Difficulty) (sim.LevelLayout, error) {
	return f(ctx, difficulty)
}

// Prompt returns the level-designer instruction sent to generative endpoints.
func Prompt(difficulty config.Difficulty) string {
	return fmt.Sprintf(`You are a game level designer. Generate a level layout for a game with the following characteristics:

Difficulty: %s

Return the level layout as a JSON string. The level layout should include obstacle positions and spacing to ensure the game is playable and challenging. Make sure the JSON is a parseable string and use double quotes.

Example:
{
  "obstacles": [
    { "position": 100, "height": 200, "spacing": 300 },
    { "position": 400, "height": 150, "spacing": 250 },
    { "position": 700, "height": 250, "spacing": 350 }
  ]
}`, difficulty)
}

// StaticProvider always returns the same layout.
type StaticProvider struct {
	Layout sim.LevelLayout
}

// Generate returns a copy of the static layout.
func (p StaticProvider) Generate(context.Context, config.Difficulty) (sim.LevelLayout, error) {
	return p.Layout.Clone(), nil
}

// Fetch asks provider for a layout, giving up after timeout (DefaultTimeout
// when zero). It returns nil on any failure or when provider is nil; the
// failure is logged at warn level.
func Fetch(ctx context.Context, provider Provider, difficulty config.Difficulty, timeout time.Duration, logger *log.Logger) sim.LevelLayout {
	if provider == nil {
		return nil
	}
	if logger == nil {
		logger = log.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		layout sim.LevelLayout
		err    error
	}
	// Buffered: the send must not block once Fetch has returned.
	done := make(chan result, 1)

	start := time.Now()
	go func() {
		layout, err := provider.Generate(ctx, difficulty)
		done <- result{layout: layout, err: err}
	}()

	select {
	case <-ctx.Done():
		logger.Warn("level generation timed out, using procedural obstacles", "difficulty", difficulty, "timeout", timeout)
		return nil
	case res := <-done:
		if res.err != nil {
			logger.Warn("level generation failed, using procedural obstacles", "difficulty", difficulty, "err", res.err)
			return nil
		}
		logger.Debug("level generated", "difficulty", difficulty, "obstacles", len(res.layout), "took", time.Since(start))
		return res.layout
	}
}
