package producer

import "sync/atomic"

// SeekState is the playback-control cell shared between an external
// controller and the producer. The two sides run concurrently with no
// other synchronization, so both fields are atomics: a consumer never
// observes a torn pair and never applies the same increment twice.
type SeekState struct {
	paused    atomic.Bool
	increment atomic.Int64
}

// NewSeekState returns an unpaused state with no pending increment.
func NewSeekState() *SeekState {
	return &SeekState{}
}

// SetPaused flips the pause flag.
func (s *SeekState) SetPaused(paused bool) {
	s.paused.Store(paused)
}

// Paused reports the pause flag.
func (s *SeekState) Paused() bool {
	return s.paused.Load()
}

// Request adds delta frames to the pending increment.
func (s *SeekState) Request(delta int64) {
	s.increment.Add(delta)
}

// Increment reports the pending increment without consuming it.
func (s *SeekState) Increment() int64 {
	return s.increment.Load()
}

// Consume returns the effective cursor delta and atomically resets the
// pending increment. While paused the effective delta is the increment
// minus one: the source auto-advances by one on every read, so the
// backward step holds the cursor in place.
func (s *SeekState) Consume() int64 {
	delta := s.increment.Swap(0)
	if s.paused.Load() {
		delta--
	}
	return delta
}
