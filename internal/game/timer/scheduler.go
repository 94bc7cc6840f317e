// Package timer implements per-actor delayed callbacks counted in ticks.
package timer

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// Kind identifies what a timer does when it fires.
type Kind int8

const (
	Spawn    Kind = iota // chant finished: spawn the skill object
	Recovery             // recovery finished: actor becomes actable
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Spawn:
		return "spawn"
	case Recovery:
		return "recovery"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// Key identifies a scheduled timer. Cast is the sequence number of the cast
// that scheduled it, so timers of consecutive casts never collide.
type Key struct {
	Cast uint64
	Kind Kind
}

type entry struct {
	remaining int
	fn        func()
}

// Scheduler holds timers keyed by (cast, kind) and advances them once per tick.
//
// Not thread-safe: owned by one actor and driven from its tick.
type Scheduler struct {
	entries map[Key]*entry
	due     []Key // reused between Advance calls
}

// NewScheduler creates an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		entries: make(map[Key]*entry, 4),
		due:     make([]Key, 0, 4),
	}
}

// Schedule registers fn to run after ticks calls to Advance.
// A timer of zero or fewer ticks fires on the next Advance.
// Returns false if key is already scheduled.
func (s *Scheduler) Schedule(key Key, ticks int, fn func()) bool {
	if _, exists := s.entries[key]; exists {
		return false
	}
	s.entries[key] = &entry{remaining: max(ticks, 1), fn: fn}
	return true
}

// Advance counts one tick down on every timer and runs those that reach zero.
// Due timers fire in (Cast, Kind) order, so a spawn fires before a recovery
// scheduled by the same cast for the same tick. Timers scheduled by a callback
// are not advanced until the next call. Returns the number of timers fired.
func (s *Scheduler) Advance() int {
	s.due = s.due[:0]
	for k, e := range s.entries {
		e.remaining--
		if e.remaining <= 0 {
			s.due = append(s.due, k)
		}
	}
	if len(s.due) == 0 {
		return 0
	}

	slices.SortFunc(s.due, func(a, b Key) int {
		if c := cmp.Compare(a.Cast, b.Cast); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	})

	fns := make([]func(), 0, len(s.due))
	for _, k := range s.due {
		fns = append(fns, s.entries[k].fn)
		delete(s.entries, k)
	}
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Pending returns the ticks left on key.
func (s *Scheduler) Pending(key Key) (int, bool) {
	e, ok := s.entries[key]
	if !ok {
		return 0, false
	}
	return e.remaining, true
}

// CancelAll drops every timer without running it and returns how many were dropped.
func (s *Scheduler) CancelAll() int {
	n := len(s.entries)
	clear(s.entries)
	return n
}

// Len returns the number of scheduled timers.
func (s *Scheduler) Len() int {
	return len(s.entries)
}

// TicksFor converts d into a whole number of ticks of length tick, rounding up.
func TicksFor(d, tick time.Duration) int {
	if tick <= 0 || d <= 0 {
		return 0
	}
	return int((d + tick - 1) / tick)
}
