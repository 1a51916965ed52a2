// Package widget is the multiple-value component: it takes host data
// sets, lays them out, and keeps duration values live between data sets.
//
// Lifecycle: Mount subscribes to resize events, SetData replaces the data
// set (stopping every clock before starting the new ones), Update routes
// clock ticks, Unmount releases the resize subscription and every clock.
// All methods must be called from the host event loop.
package widget

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/daviddao/multivalue_viewer/internal/comparison"
	"github.com/daviddao/multivalue_viewer/internal/compose"
	"github.com/daviddao/multivalue_viewer/internal/drill"
	"github.com/daviddao/multivalue_viewer/internal/layout"
	"github.com/daviddao/multivalue_viewer/internal/liveclock"
	"github.com/daviddao/multivalue_viewer/internal/payload"
	"github.com/daviddao/multivalue_viewer/internal/vizconfig"
)

// Widget renders one payload at a time.
type Widget struct {
	clocks *liveclock.Manager
	board  *liveclock.Board
	drill  drill.Handler
	logger *slog.Logger

	unsubscribe func()
	viewport    layout.Viewport
	released    bool // slots and clocks torn down by Unmount
	clockOpts   []liveclock.Option

	data   *payload.Payload
	cfg    vizconfig.Config
	state  layout.State
	result comparison.Result
	tree   *compose.Tree

	selected int
}

// Option configures a Widget.
type Option func(*Widget)

// WithLogger sets the logger for the widget and its clocks.
func WithLogger(l *slog.Logger) Option {
	return func(w *Widget) { w.logger = l }
}

// WithClockOptions passes options to the clock manager. The widget
// logger is applied first, so a WithLogger here overrides it.
func WithClockOptions(opts ...liveclock.Option) Option {
	return func(w *Widget) { w.clockOpts = append(w.clockOpts, opts...) }
}

// New returns an unmounted widget with an empty data set. Value clicks
// are dispatched to h.
func New(h drill.Handler, opts ...Option) *Widget {
	w := &Widget{
		board:  liveclock.NewBoard(),
		drill:  h,
		logger: slog.New(slog.DiscardHandler),
		data:   payload.Empty(),
	}
	for _, o := range opts {
		o(w)
	}
	clockOpts := append([]liveclock.Option{liveclock.WithLogger(w.logger)}, w.clockOpts...)
	w.clocks = liveclock.New(clockOpts...)
	w.rebuild()
	return w
}

// Mount subscribes the widget to bus. Mounting twice keeps one
// subscription. Mounting after Unmount rebuilds the current data set and
// restarts its clocks; the returned command carries their first ticks.
func (w *Widget) Mount(bus *layout.Bus) tea.Cmd {
	if w.unsubscribe != nil {
		w.unsubscribe()
	}
	w.unsubscribe = bus.Listen(w.resize)
	vp, ok := bus.Current()
	if w.released {
		w.released = false
		if ok {
			w.viewport = vp
		}
		w.rebuild()
		return w.attach()
	}
	if ok {
		w.resize(vp)
	}
	return nil
}

// Mounted reports whether the widget holds a resize subscription.
func (w *Widget) Mounted() bool { return w.unsubscribe != nil }

// Unmount releases the resize subscription, stops every clock and drops
// every slot. A later Mount brings the current data set back.
func (w *Widget) Unmount() {
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
	if n := w.clocks.StopAll(); n > 0 {
		w.logger.Debug("clocks stopped on unmount", "count", n)
	}
	w.board.Clear()
	w.released = true
}

func (w *Widget) resize(vp layout.Viewport) {
	w.viewport = vp
	next := layout.Resolve(w.cfg, vp)
	if next == w.state && w.tree != nil {
		return
	}
	w.state = next
	w.tree = compose.Build(w.data.Data, w.cfg, w.state, w.result, w.board)
}

// SetData presents p. Passing the payload already shown is a no-op; any
// other payload stops all clocks, rebuilds the tree and starts a clock
// for every duration value. The returned command carries the first ticks.
func (w *Widget) SetData(p *payload.Payload) tea.Cmd {
	if p == nil {
		p = payload.Empty()
	}
	if p == w.data {
		return nil
	}
	if n := w.clocks.StopAll(); n > 0 {
		w.logger.Debug("clocks stopped for new data set", "count", n)
	}
	w.data = p
	w.released = false
	if p.Problems != nil {
		w.logger.Warn("payload has invalid data points", "error", p.Problems)
	}
	w.rebuild()
	if w.selected >= len(w.tree.Groups) {
		w.selected = max(0, len(w.tree.Groups)-1)
	}
	return w.attach()
}

func (w *Widget) rebuild() {
	w.cfg = vizconfig.New(w.data.Config)
	w.result = comparison.Evaluate(w.data.Data)
	w.state = layout.Resolve(w.cfg, w.viewport)
	w.tree = compose.Build(w.data.Data, w.cfg, w.state, w.result, w.board)
}

func (w *Widget) attach() tea.Cmd {
	var cmds []tea.Cmd
	for i, g := range w.tree.Groups {
		if g.Slot == nil {
			continue
		}
		dp := w.data.Data[i]
		if cmd := w.clocks.Attach(dp.Name, dp.FormattedValue, g.Fallback, g.Slot); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Update handles clock ticks and returns the next tick command.
func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	if tick, ok := msg.(liveclock.TickMsg); ok {
		return w.clocks.HandleTick(tick)
	}
	return nil
}

// Click dispatches the drill for group i.
func (w *Widget) Click(i int, kind string) bool {
	if i < 0 || i >= len(w.tree.Groups) {
		return false
	}
	g := w.tree.Groups[i]
	drill.Dispatch(w.drill, g.Links, drill.Event{Source: g.Name, Kind: kind, At: time.Now()})
	return true
}

// ClickSelected dispatches the drill for the selected group. The whole
// group drills, comparison view included.
func (w *Widget) ClickSelected() bool {
	return w.Click(w.selected, drill.KindKey)
}

// Move shifts the selection by delta, clamped to the groups.
func (w *Widget) Move(delta int) {
	n := len(w.tree.Groups)
	if n == 0 {
		w.selected = 0
		return
	}
	w.selected = min(max(w.selected+delta, 0), n-1)
}

// Selected returns the selected group index.
func (w *Widget) Selected() int { return w.selected }

// View paints the current frame into a width x height cell area.
func (w *Widget) View(width, height int) string {
	return compose.Paint(w.tree, compose.PaintOptions{Width: width, Height: height, Selected: w.selected})
}

// Describe returns the JSON form of the current frame.
func (w *Widget) Describe() compose.Description {
	return compose.Describe(w.tree)
}

// Layout returns the resolved layout.
func (w *Widget) Layout() layout.State { return w.state }

// Data returns the payload being shown.
func (w *Widget) Data() *payload.Payload { return w.data }

// ActiveClocks returns the number of running clocks.
func (w *Widget) ActiveClocks() int { return w.clocks.Active() }

// Clocks exposes the clock manager.
func (w *Widget) Clocks() *liveclock.Manager { return w.clocks }

// Groups returns the number of rendered groups.
func (w *Widget) Groups() int { return len(w.tree.Groups) }

// Value returns the text shown for group i.
func (w *Widget) Value(i int) string {
	if i < 0 || i >= len(w.tree.Groups) {
		return ""
	}
	return w.tree.Groups[i].Value()
}

// Warning returns the comparison warning, "" when none.
func (w *Widget) Warning() string { return w.tree.Warning }
