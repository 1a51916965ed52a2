// Package drill defines the boundary between a clicked value and the
// host's drill menu.
package drill

import "time"

// Link is one navigation target attached to a data point.
type Link struct {
	Label     string `json:"label"`
	Type      string `json:"type,omitempty"`
	TypeLabel string `json:"type_label,omitempty"`
	URL       string `json:"url"`
}

// KindKey marks a drill triggered from the keyboard selection.
const KindKey = "key"

// Event describes the interaction that triggered a drill.
type Event struct {
	Source string // data point name
	Kind   string // KindKey
	At     time.Time
}

// Handler opens the host drill menu. links is never nil.
type Handler interface {
	OpenDrillMenu(links []Link, ev Event)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(links []Link, ev Event)

// OpenDrillMenu calls f.
func (f HandlerFunc) OpenDrillMenu(links []Link, ev Event) { f(links, ev) }

// Dispatch invokes h with links, substituting an empty list for nil.
func Dispatch(h Handler, links []Link, ev Event) {
	if h == nil {
		return
	}
	if links == nil {
		links = []Link{}
	}
	h.OpenDrillMenu(links, ev)
}
