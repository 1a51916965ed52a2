// Package liveclock keeps duration-valued data points ticking once per
// second by writing straight into their render slots.
//
// Ticks travel through the bubbletea event loop as TickMsg values. Each
// running clock carries an id; a tick whose id no longer matches the
// clock for its key is dropped without rescheduling, so stopping a clock
// is enough to retire its pending tick.
package liveclock

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/daviddao/multivalue_viewer/internal/timecode"
)

// Period is the tick interval.
const Period = time.Second

// TickMsg advances the clock for Key.
type TickMsg struct {
	Key  string
	ID   int
	Time time.Time
}

// TickFunc schedules fn after d. tea.Tick is the production TickFunc.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

type clock struct {
	id       int
	seconds  int64
	template string
	slot     *Slot
}

// Manager owns the running clocks, at most one per key. It must only be
// used from the event loop.
type Manager struct {
	clocks map[string]*clock
	nextID int
	tick   TickFunc
	logger *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithTickFunc replaces tea.Tick, mainly for tests.
func WithTickFunc(fn TickFunc) Option {
	return func(m *Manager) { m.tick = fn }
}

// New returns a Manager with no running clocks.
func New(opts ...Option) *Manager {
	m := &Manager{
		clocks: make(map[string]*clock),
		tick:   tea.Tick,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Attach presents value in slot. A duration value starts a clock for key
// and returns the command for its first tick. Anything else is written
// once as static and no clock starts. A nil slot attaches nothing.
// Any clock already running for key is stopped first.
func (m *Manager) Attach(key, value, static string, slot *Slot) tea.Cmd {
	m.Stop(key)
	if slot == nil {
		m.logger.Debug("no render target, clock not started", "key", key)
		return nil
	}
	if !timecode.IsDuration(value) {
		slot.Set(static)
		return nil
	}
	secs, ok := timecode.Parse(value)
	if !ok {
		m.logger.Debug("duration did not parse, clock not started", "key", key, "value", value)
		slot.Set(static)
		return nil
	}
	return m.start(key, value, secs, slot)
}

func (m *Manager) start(key, template string, secs int64, slot *Slot) tea.Cmd {
	m.nextID++
	c := &clock{id: m.nextID, seconds: secs, template: template, slot: slot}
	m.clocks[key] = c
	slot.Set(timecode.FormatLike(secs, template))
	m.logger.Debug("clock started", "key", key, "seconds", secs, "id", c.id)
	return m.schedule(key, c.id)
}

func (m *Manager) schedule(key string, id int) tea.Cmd {
	return m.tick(Period, func(t time.Time) tea.Msg {
		return TickMsg{Key: key, ID: id, Time: t}
	})
}

// HandleTick advances the clock addressed by msg and schedules its next
// tick. Stale ticks return nil.
func (m *Manager) HandleTick(msg TickMsg) tea.Cmd {
	c, ok := m.clocks[msg.Key]
	if !ok || c.id != msg.ID {
		return nil
	}
	if c.slot.Detached() {
		m.Stop(msg.Key)
		return nil
	}
	c.seconds++
	c.slot.Set(timecode.FormatLike(c.seconds, c.template))
	return m.schedule(msg.Key, c.id)
}

// Stop stops the clock for key. It reports whether one was running.
func (m *Manager) Stop(key string) bool {
	c, ok := m.clocks[key]
	if !ok {
		return false
	}
	delete(m.clocks, key)
	m.logger.Debug("clock stopped", "key", key, "id", c.id)
	return true
}

// StopAll stops every clock and returns how many were running.
func (m *Manager) StopAll() int {
	n := len(m.clocks)
	for key := range m.clocks {
		m.Stop(key)
	}
	return n
}

// Active returns the number of running clocks.
func (m *Manager) Active() int { return len(m.clocks) }

// Running reports whether key has a running clock.
func (m *Manager) Running(key string) bool {
	_, ok := m.clocks[key]
	return ok
}

// Seconds returns the elapsed seconds of the clock for key.
func (m *Manager) Seconds(key string) (int64, bool) {
	c, ok := m.clocks[key]
	if !ok {
		return 0, false
	}
	return c.seconds, true
}

// ID returns the id of the clock running for key, 0 when none.
func (m *Manager) ID(key string) int {
	if c, ok := m.clocks[key]; ok {
		return c.id
	}
	return 0
}
