package compose

import (
	"html"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/microcosm-cc/bluemonday"

	"github.com/daviddao/multivalue_viewer/internal/payload"
)

var strictPolicy = bluemonday.StrictPolicy()

// StaticText returns the text to show for a non-duration value. HTML is
// stripped to its text with bluemonday's strict policy; plain values only
// lose terminal escape sequences. Neither is ever interpreted as markup.
func StaticText(dp payload.DataPoint) string {
	if dp.HTML != "" {
		return plain(html.UnescapeString(strictPolicy.Sanitize(dp.HTML)))
	}
	return plain(dp.FormattedValue)
}

func plain(s string) string {
	s = ansi.Strip(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return ' '
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
