package compose

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/daviddao/multivalue_viewer/internal/layout"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6ADC8"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CDD6F4"))

	comparisonUpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#A6E3A1"))

	comparisonDownStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F38BA8"))

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#282828"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9E2AF")).
			Italic(true)
)

// PaintOptions controls one frame.
type PaintOptions struct {
	Width    int // cells
	Height   int // rows
	Selected int // index of the highlighted group, -1 for none
}

// Paint renders t with the current slot contents.
func Paint(t *Tree, opts PaintOptions) string {
	if len(t.Groups) == 0 {
		body := titleStyle.Render("(no data)")
		if t.Warning != "" {
			body = lipgloss.JoinVertical(lipgloss.Center, body, warningStyle.Render(t.Warning))
		}
		return body
	}

	scale := t.Layout.Scale()
	horizontal := t.Layout.Orientation == layout.Horizontal

	parts := make([]string, 0, len(t.Groups)*2)
	groupWidth := opts.Width
	if horizontal {
		dividers := 0
		for _, g := range t.Groups {
			if g.DividerAfter {
				dividers++
			}
		}
		groupWidth = (opts.Width - dividers) / len(t.Groups)
	}
	if groupWidth < 1 {
		groupWidth = 1
	}

	for i, g := range t.Groups {
		cell := lipgloss.NewStyle().
			Width(groupWidth).
			Align(lipgloss.Center).
			Render(paintGroup(g, scale, i == opts.Selected))
		if !horizontal {
			cell = lipgloss.NewStyle().MarginBottom(1).Render(cell)
		}
		parts = append(parts, cell)
		if g.DividerAfter {
			parts = append(parts, paintDivider(opts.Height))
		}
	}

	var body string
	if horizontal {
		body = lipgloss.JoinHorizontal(lipgloss.Center, parts...)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Center, parts...)
	}
	if t.Warning != "" {
		body = lipgloss.JoinVertical(lipgloss.Center, body, "", warningStyle.Render(t.Warning))
	}
	return body
}

func paintGroup(g Group, scale int, selected bool) string {
	vs := valueStyle.Padding(scale/2, scale)
	ts := titleStyle
	if g.Color != "" {
		vs = vs.Foreground(lipgloss.Color(g.Color))
		ts = ts.Foreground(lipgloss.Color(g.Color))
	}
	if selected {
		vs = vs.Underline(true).Reverse(true)
	}

	value := vs.Render(g.Value())
	point := value
	if g.ShowTitle {
		title := ts.Render(g.Title)
		if g.TitleAbove {
			point = lipgloss.JoinVertical(lipgloss.Center, title, value)
		} else {
			point = lipgloss.JoinVertical(lipgloss.Center, value, title)
		}
	}

	if g.Comparison == nil {
		return point
	}
	cs := comparisonDownStyle
	if g.Comparison.Up {
		cs = comparisonUpStyle
	}
	comp := cs.Render(g.Comparison.Text())

	switch g.Direction {
	case ColumnReverse:
		return lipgloss.JoinVertical(lipgloss.Center, comp, point)
	case Row:
		return lipgloss.JoinHorizontal(lipgloss.Center, point, "  ", comp)
	case RowReverse:
		return lipgloss.JoinHorizontal(lipgloss.Center, comp, "  ", point)
	default:
		return lipgloss.JoinVertical(lipgloss.Center, point, comp)
	}
}

// paintDivider draws a vertical rule about a third of the frame tall.
func paintDivider(height int) string {
	n := height * 35 / 100
	if n < 1 {
		n = 1
	}
	return dividerStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", n), "\n"))
}
