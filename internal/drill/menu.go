package drill

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	menuBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CBA6F7"))

	menuItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4"))

	menuCursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1")).
			Bold(true)

	menuDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))
)

// Menu is the host's drill menu: a list of links opened for one data
// point. The zero value is a closed menu.
type Menu struct {
	links    []Link
	event    Event
	cursor   int
	open     bool
	opens    int
	followed *Link
}

// OpenDrillMenu implements Handler.
func (m *Menu) OpenDrillMenu(links []Link, ev Event) {
	m.links = links
	m.event = ev
	m.cursor = 0
	m.open = true
	m.opens++
}

// Visible reports whether the menu is showing.
func (m *Menu) Visible() bool { return m.open }

// Opens counts how many times the menu has been opened.
func (m *Menu) Opens() int { return m.opens }

// Links returns the links of the current menu.
func (m *Menu) Links() []Link { return m.links }

// Event returns the event that opened the current menu.
func (m *Menu) Event() Event { return m.event }

// Close hides the menu.
func (m *Menu) Close() { m.open = false }

// Up moves the cursor up.
func (m *Menu) Up() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// Down moves the cursor down.
func (m *Menu) Down() {
	if m.cursor < len(m.links)-1 {
		m.cursor++
	}
}

// Follow selects the link under the cursor and closes the menu. It
// returns false when the menu has no links.
func (m *Menu) Follow() (Link, bool) {
	if !m.open || len(m.links) == 0 {
		m.open = false
		return Link{}, false
	}
	l := m.links[m.cursor]
	m.followed = &l
	m.open = false
	return l, true
}

// Followed returns the last followed link, if any.
func (m *Menu) Followed() (Link, bool) {
	if m.followed == nil {
		return Link{}, false
	}
	return *m.followed, true
}

// View renders the menu box.
func (m *Menu) View() string {
	var b strings.Builder
	b.WriteString(menuTitleStyle.Render("Drill: " + m.event.Source))
	b.WriteRune('\n')
	if len(m.links) == 0 {
		b.WriteString(menuDimStyle.Render("(no links)"))
		return menuBoxStyle.Render(b.String())
	}
	for i, l := range m.links {
		label := l.Label
		if l.TypeLabel != "" {
			label = fmt.Sprintf("%s (%s)", label, l.TypeLabel)
		}
		if i == m.cursor {
			b.WriteString(menuCursorStyle.Render("> " + label))
		} else {
			b.WriteString(menuItemStyle.Render("  " + label))
		}
		if i < len(m.links)-1 {
			b.WriteRune('\n')
		}
	}
	return menuBoxStyle.Render(b.String())
}
