// Package registry provides a global registry of game modes.
// Modes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/soarscape/internal/core"
	"github.com/vovakirdan/soarscape/internal/sim"
)

// Mode is the interface every game mode implements.
// A mode contributes the rules plugged into the shared simulation core and
// knows how to draw a snapshot; it holds no per-session state.
type Mode interface {
	// ID returns the mode tag (e.g., "flap", "runner").
	// Used for CLI commands and score storage.
	ID() sim.GameMode

	// Title returns a human-readable name for display.
	Title() string

	// NewRules builds the rules for one session.
	NewRules(settings sim.Settings) (sim.Rules, error)

	// Render draws a snapshot into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen, snap sim.Snapshot)
}

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	ID    sim.GameMode
	Title string
}

// Factory creates a mode instance.
type Factory func() Mode

var (
	factories = make(map[sim.GameMode]Factory)
	titles    = make(map[sim.GameMode]string)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Panics if a mode with the same ID is already registered.
func Register(id sim.GameMode, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered modes, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ModeInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a mode by its ID.
func Create(id sim.GameMode) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}

	return f(), nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id sim.GameMode) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Rules builds the rules for settings.Mode. It satisfies sim.RulesFactory.
func Rules(settings sim.Settings) (sim.Rules, error) {
	m, err := Create(settings.Mode)
	if err != nil {
		return nil, err
	}
	return m.NewRules(settings)
}
