// Package debounce provides trailing-edge delayed triggers: a plain
// Debouncer for things like search-as-you-type, and a keyed Signal for
// pointer intent, where only the most recent target may fire.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the most recently supplied function once no new call has
// arrived for the configured delay. Earlier pending calls are dropped.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Call schedules fn, replacing any pending call.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels the pending call, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Signal is a single pointer-intent timer parameterized by a key (an item
// id). Pointing at a new key replaces the pending one, so at most one intent
// can fire, and leaving a key before the delay elapses cancels it.
type Signal struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	key   string
}

func NewSignal(delay time.Duration) *Signal {
	return &Signal{delay: delay}
}

// Point registers intent on key; fn fires with that key after the delay
// unless the pointer moves on or leaves first.
func (s *Signal) Point(key string, fn func(key string)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.key = key
	s.timer = time.AfterFunc(s.delay, func() { fn(key) })
}

// Leave cancels the pending intent if it is still aimed at key.
func (s *Signal) Leave(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != key || s.timer == nil {
		return
	}
	s.timer.Stop()
	s.timer = nil
	s.key = ""
}

// Stop cancels any pending intent.
func (s *Signal) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.key = ""
}
