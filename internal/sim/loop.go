package sim

import (
	"context"
	"time"
)

// JumpSignal carries jump requests from an input goroutine to the goroutine
// that owns a Machine. Requests made before the owner drains the signal
// collapse into one.
type JumpSignal struct {
	ch chan struct{}
}

// NewJumpSignal creates an empty signal.
func NewJumpSignal() *JumpSignal {
	return &JumpSignal{ch: make(chan struct{}, 1)}
}

// RequestJump records a jump request. It never blocks.
func (j *JumpSignal) RequestJump() {
	select {
	case j.ch <- struct{}{}:
	default:
	}
}

// take reports whether a request was pending and clears it.
func (j *JumpSignal) take() bool {
	select {
	case <-j.ch:
		return true
	default:
		return false
	}
}

// Loop drives a Machine from a clock until the session leaves Playing.
type Loop struct {
	Machine *Machine
	Jumps   *JumpSignal // optional

	// Interval between ticks. Zero runs ticks back to back.
	Interval time.Duration

	// MaxTicks stops the loop after that many ticks. Zero means unlimited.
	MaxTicks int

	// OnFrame is called after every tick with the resulting snapshot. Its
	// return value is sent to the machine as a jump request for the next tick.
	OnFrame func(Snapshot) bool
}

// Run ticks the machine until it is no longer Playing, MaxTicks is reached
// or ctx is cancelled. It returns the last snapshot and ctx.Err() if the
// context ended the run. No tick is issued after the state leaves Playing.
func (l *Loop) Run(ctx context.Context) (Snapshot, error) {
	var ticker *time.Ticker
	if l.Interval > 0 {
		ticker = time.NewTicker(l.Interval)
		defer ticker.Stop()
	}

	snap := l.Machine.Snapshot()
	ticks := 0
	for l.Machine.State() == StatePlaying {
		if l.MaxTicks > 0 && ticks >= l.MaxTicks {
			return snap, nil
		}

		if err := ctx.Err(); err != nil {
			return snap, err
		}
		if ticker != nil {
			select {
			case <-ctx.Done():
				return snap, ctx.Err()
			case <-ticker.C:
			}
		}

		if l.Jumps != nil && l.Jumps.take() {
			l.Machine.RequestJump()
		}

		var ok bool
		snap, ok = l.Machine.Tick()
		if !ok {
			break
		}
		ticks++

		if l.OnFrame != nil && l.OnFrame(snap) {
			l.Machine.RequestJump()
		}
	}
	return snap, nil
}
