package sim

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Controller is anything the TickManager drives once per tick.
type Controller interface {
	ID() int64
	Tick()
	Destroy()
}

// TickManager ticks all registered controllers on a fixed interval.
// Every controller is ticked from the manager's goroutine only.
type TickManager struct {
	controllers     sync.Map // map[int64]Controller — actorID → controller
	controllerCount atomic.Int32
	ticks           atomic.Uint64

	// tickMu serializes tickAll with Unregister so a controller is never
	// destroyed in the middle of its tick.
	tickMu sync.Mutex

	interval time.Duration
	maxTicks uint64 // 0 = unlimited
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewTickManager creates a tick manager. maxTicks of 0 runs until stopped.
func NewTickManager(interval time.Duration, maxTicks uint64) *TickManager {
	return &TickManager{
		interval: interval,
		maxTicks: maxTicks,
		stopCh:   make(chan struct{}),
	}
}

// Register adds a controller. Returns an error if the ID is taken.
func (m *TickManager) Register(c Controller) error {
	if _, loaded := m.controllers.LoadOrStore(c.ID(), c); loaded {
		return fmt.Errorf("controller %d already registered", c.ID())
	}
	m.controllerCount.Add(1)

	slog.Debug("controller registered", "actor", c.ID())
	return nil
}

// Unregister removes a controller and destroys it.
func (m *TickManager) Unregister(id int64) {
	value, ok := m.controllers.LoadAndDelete(id)
	if !ok {
		return
	}
	m.controllerCount.Add(-1)

	m.tickMu.Lock()
	value.(Controller).Destroy()
	m.tickMu.Unlock()

	slog.Debug("controller unregistered", "actor", id)
}

// Start runs the tick loop until ctx is canceled, Stop is called, or
// maxTicks ticks have run.
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("tick manager started", "interval", m.interval, "maxTicks", m.maxTicks)

	for {
		select {
		case <-ctx.Done():
			slog.Info("tick manager stopping", "ticks", m.Ticks())
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("tick manager stopped", "ticks", m.Ticks())
			return nil

		case <-ticker.C:
			m.TickOnce()
			if m.maxTicks > 0 && m.Ticks() >= m.maxTicks {
				slog.Info("tick limit reached", "ticks", m.Ticks())
				return nil
			}
		}
	}
}

// Stop stops the tick loop. Safe to call more than once.
func (m *TickManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// TickOnce ticks every registered controller once.
func (m *TickManager) TickOnce() {
	m.tickMu.Lock()
	defer m.tickMu.Unlock()

	m.controllers.Range(func(_, value any) bool {
		value.(Controller).Tick()
		return true
	})
	m.ticks.Add(1)
}

// Ticks returns how many ticks have run.
func (m *TickManager) Ticks() uint64 {
	return m.ticks.Load()
}

// Count returns number of registered controllers.
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// Controller returns the controller registered under id.
func (m *TickManager) Controller(id int64) (Controller, error) {
	value, ok := m.controllers.Load(id)
	if !ok {
		return nil, fmt.Errorf("controller not found for actor %d", id)
	}
	return value.(Controller), nil
}

// Each calls fn for every registered controller.
func (m *TickManager) Each(fn func(Controller)) {
	m.controllers.Range(func(_, value any) bool {
		fn(value.(Controller))
		return true
	})
}
