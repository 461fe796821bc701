package sim

import "fmt"

// PassedAnchor reports whether an obstacle's trailing edge crossed the anchor
// during a tick that moved it by speed: after the move the edge lies in
// (anchorX, anchorX+speed]. Fed with the active obstacle once per tick, this
// scores each obstacle exactly once when positions advance by exactly speed.
// An edge that skips the whole window in one tick is not scored.
func PassedAnchor(o Obstacle, anchorX, speed float64) bool {
	right := o.Right()
	return right > anchorX && right <= anchorX+speed
}

// TimeScoreDisplay converts a per-tick raw score to the displayed score.
func TimeScoreDisplay(raw int) int {
	return raw / 10
}

// BestScoreStore persists best scores. Implementations store each mode's
// best under mode.BestScoreKey().
type BestScoreStore interface {
	LoadBest(mode GameMode) (int, error)
	SaveBest(mode GameMode, score int) error
}

// BestScores tracks the best displayed score per mode. The store is read the
// first time a mode is selected and written only when a session beats it.
// A nil store keeps best scores in memory only.
type BestScores struct {
	store  BestScoreStore
	best   map[GameMode]int
	loaded map[GameMode]bool
}

// NewBestScores creates a tracker backed by store (which may be nil).
func NewBestScores(store BestScoreStore) *BestScores {
	return &BestScores{
		store:  store,
		best:   make(map[GameMode]int),
		loaded: make(map[GameMode]bool),
	}
}

// Load returns the best score for mode, reading the store on first use.
// A failed read is retried on the next call.
func (b *BestScores) Load(mode GameMode) (int, error) {
	if b.loaded[mode] || b.store == nil {
		return b.best[mode], nil
	}

	stored, err := b.store.LoadBest(mode)
	if err != nil {
		return b.best[mode], err
	}
	b.loaded[mode] = true
	if stored > b.best[mode] {
		b.best[mode] = stored
	}
	return b.best[mode], nil
}

// Best returns the in-memory best score for mode without touching the store.
func (b *BestScores) Best(mode GameMode) int {
	return b.best[mode]
}

// Submit records a completed session's displayed score. It returns true when
// the score is a new best; only then is the store written. Until the stored
// best has been read, nothing is recorded and the read error is returned.
func (b *BestScores) Submit(mode GameMode, displayed int) (bool, error) {
	if _, err := b.Load(mode); err != nil {
		return false, fmt.Errorf("sim: best score for %s unknown: %w", mode, err)
	}

	if displayed <= b.best[mode] {
		return false, nil
	}
	b.best[mode] = displayed
	if b.store == nil {
		return true, nil
	}
	return true, b.store.SaveBest(mode, displayed)
}
