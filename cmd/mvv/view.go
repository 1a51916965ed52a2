package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Background(lipgloss.Color("#1E1E2E")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8")).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4")).
			Background(lipgloss.Color("#1E1E2E"))
)

// --- View rendering ---

func (m uiModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTitleBar())
	b.WriteRune('\n')
	b.WriteRune('\n')

	contentHeight := m.height - 4 // title + gap + status + padding
	if m.showHelp {
		contentHeight -= 2
	}
	contentHeight = max(contentHeight, 1)

	content := m.widget.View(m.width, contentHeight)
	if m.menu.Visible() {
		content = lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, m.menu.View())
	} else {
		content = lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, content)
	}

	lines := strings.Split(content, "\n")
	if len(lines) > contentHeight {
		lines = lines[:contentHeight]
	}
	b.WriteString(truncateLines(strings.Join(lines, "\n"), m.width))

	// Pad to fill screen.
	rendered := strings.Count(b.String(), "\n")
	for rendered < m.height-1 {
		b.WriteRune('\n')
		rendered++
	}

	if m.showHelp {
		b.WriteString(m.help.View(keys))
	} else {
		b.WriteString(m.renderStatusBar())
	}

	return b.String()
}

func (m uiModel) renderTitleBar() string {
	title := titleStyle.Render("multiple value")
	st := m.widget.Layout()
	stats := dimStyle.Render(fmt.Sprintf(
		"%d points | %d live | %s %.2fem",
		m.widget.Groups(),
		m.widget.ActiveClocks(),
		st.Orientation,
		st.FontSizeEm,
	))
	gap := strings.Repeat(" ", max(0, m.width-lipgloss.Width(title)-lipgloss.Width(stats)-2))
	return title + gap + stats
}

func (m uiModel) renderStatusBar() string {
	left := " h/l: select | enter: drill | r: reload | ?: help | q: quit"
	if m.menu.Visible() {
		left = " j/k: move | enter: follow | esc: close | q: quit"
	}
	if l, ok := m.menu.Followed(); ok && !m.menu.Visible() {
		left = fmt.Sprintf(" followed %s -> %s", l.Label, l.URL)
	}

	ago := time.Since(m.lastRefresh).Truncate(time.Second)
	right := fmt.Sprintf("refreshed %s ago ", ago)
	if m.loadErr != nil {
		right = errorStyle.Render("reload failed: "+m.loadErr.Error()) + " "
	}
	gap := strings.Repeat(" ", max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right)))
	return statusBarStyle.Render(left + gap + right)
}

// --- Helpers ---

// truncateLines truncates each line in content to at most width visible
// characters, preserving ANSI escape codes. This prevents terminal line
// wrapping when the window is resized narrower.
func truncateLines(content string, width int) string {
	if width <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}
