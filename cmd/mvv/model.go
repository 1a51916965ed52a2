package main

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/daviddao/multivalue_viewer/internal/datasource"
	"github.com/daviddao/multivalue_viewer/internal/drill"
	"github.com/daviddao/multivalue_viewer/internal/layout"
	"github.com/daviddao/multivalue_viewer/internal/liveclock"
	"github.com/daviddao/multivalue_viewer/internal/payload"
	"github.com/daviddao/multivalue_viewer/internal/settings"
	"github.com/daviddao/multivalue_viewer/internal/widget"
)

// --- Messages ---

type payloadChangedMsg struct{}

type payloadReadyMsg struct {
	payload *payload.Payload
	err     error
}

// --- Key bindings ---

type keyMap struct {
	Quit    key.Binding
	Refresh key.Binding
	Prev    key.Binding
	Next    key.Binding
	Drill   key.Binding
	Esc     key.Binding
	Help    key.Binding
}

var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Prev:    key.NewBinding(key.WithKeys("left", "up", "h", "k"), key.WithHelp("h/k", "previous")),
	Next:    key.NewBinding(key.WithKeys("right", "down", "l", "j"), key.WithHelp("l/j", "next")),
	Drill:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drill")),
	Esc:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close menu")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Drill, k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Drill, k.Esc},
		{k.Refresh, k.Help, k.Quit},
	}
}

// --- Model ---

// uiModel is the host surface: it owns the viewport bus, the drill menu
// and the payload reload loop, and embeds one widget.
type uiModel struct {
	widget  *widget.Widget
	bus     *layout.Bus
	menu    *drill.Menu
	watcher *datasource.Watcher
	logger  *slog.Logger
	path    string
	initial tea.Cmd

	cellWidth  int
	cellHeight int
	width      int
	height     int

	help     help.Model
	showHelp bool

	lastRefresh time.Time
	loadErr     error
}

func newModel(w *widget.Widget, menu *drill.Menu, watcher *datasource.Watcher, p *payload.Payload, path string, s settings.Settings, logger *slog.Logger) uiModel {
	bus := layout.NewBus()
	w.Mount(bus)
	initial := w.SetData(p)
	return uiModel{
		widget:      w,
		bus:         bus,
		menu:        menu,
		watcher:     watcher,
		logger:      logger,
		path:        path,
		initial:     initial,
		cellWidth:   s.CellWidth,
		cellHeight:  s.CellHeight,
		help:        help.New(),
		lastRefresh: time.Now(),
	}
}

func (m uiModel) Init() tea.Cmd {
	return m.initial
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.menu.Visible() {
			return m.updateMenu(msg)
		}
		switch {
		case key.Matches(msg, keys.Quit):
			m.teardown()
			return m, tea.Quit
		case key.Matches(msg, keys.Prev):
			m.widget.Move(-1)
		case key.Matches(msg, keys.Next):
			m.widget.Move(1)
		case key.Matches(msg, keys.Drill):
			m.widget.ClickSelected()
		case key.Matches(msg, keys.Refresh):
			return m, m.reload()
		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bus.Publish(layout.Viewport{
			Width:  msg.Width * m.cellWidth,
			Height: msg.Height * m.cellHeight,
		})

	case payloadChangedMsg:
		return m, m.reload()

	case payloadReadyMsg:
		m.lastRefresh = time.Now()
		if msg.err != nil {
			// Keep showing the previous data set.
			m.loadErr = msg.err
			m.logger.Warn("payload reload failed", "path", m.path, "error", msg.err)
			return m, nil
		}
		m.loadErr = nil
		if msg.payload.Digest == m.widget.Data().Digest {
			return m, nil
		}
		m.logger.Info("payload changed", "points", len(msg.payload.Data))
		return m, m.widget.SetData(msg.payload)

	case liveclock.TickMsg:
		return m, m.widget.Update(msg)
	}

	return m, nil
}

func (m uiModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.teardown()
		return m, tea.Quit
	case key.Matches(msg, keys.Esc):
		m.menu.Close()
	case key.Matches(msg, keys.Prev):
		m.menu.Up()
	case key.Matches(msg, keys.Next):
		m.menu.Down()
	case key.Matches(msg, keys.Drill):
		if l, ok := m.menu.Follow(); ok {
			m.logger.Info("drill link followed", "label", l.Label, "url", l.URL)
		}
	}
	return m, nil
}

// teardown unmounts the widget and stops watching the payload.
func (m uiModel) teardown() {
	m.widget.Unmount()
	if m.watcher != nil {
		m.watcher.Close()
	}
}

func (m uiModel) reload() tea.Cmd {
	path := m.path
	return func() tea.Msg {
		p, err := payload.Load(path)
		return payloadReadyMsg{payload: p, err: err}
	}
}
