// Package layout derives the widget's orientation and font scale from the
// viewport and the host configuration.
package layout

import (
	"math"

	"github.com/daviddao/multivalue_viewer/internal/vizconfig"
)

// Orientation of the data point groups.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

const (
	// Breakpoint is the minimum viewport width, in logical pixels, for an
	// automatic horizontal layout.
	Breakpoint = 768

	// EM is the pixel size of one em.
	EM = 16.0

	horizontalMultiplier = 0.015
	verticalMultiplier   = 0.02
)

// Viewport is the visible area in logical pixels.
type Viewport struct {
	Width  int
	Height int
}

// State is the resolved layout.
type State struct {
	Orientation Orientation `json:"orientation"`
	FontSizeEm  float64     `json:"font_size_em"`
	Font        string      `json:"font,omitempty"`
}

// ViewportOrientation returns the orientation the viewport alone calls for.
func ViewportOrientation(vp Viewport) Orientation {
	if vp.Width >= Breakpoint {
		return Horizontal
	}
	return Vertical
}

// FontSizePx returns the automatic font size, in pixels, for orientation o.
func FontSizePx(vp Viewport, o Orientation) float64 {
	m := verticalMultiplier
	if o == Horizontal {
		m = horizontalMultiplier
	}
	return math.Round(float64(max(vp.Width, vp.Height)) * m)
}

// Resolve computes the layout for cfg and vp. An explicit orientation in
// cfg wins over the viewport; "auto" or unset defers to it. An explicit
// font_size_main wins over the automatic size, which always follows the
// viewport orientation.
func Resolve(cfg vizconfig.Config, vp Viewport) State {
	auto := ViewportOrientation(vp)

	o := auto
	switch cfg.Orientation() {
	case "", "auto":
	case string(Vertical):
		o = Vertical
	case string(Horizontal):
		o = Horizontal
	}

	px, ok := cfg.FontSizeMain()
	if !ok {
		px = FontSizePx(vp, auto)
	}

	return State{
		Orientation: o,
		FontSizeEm:  px / EM,
		Font:        cfg.GroupingFont(),
	}
}

// Scale maps an em size onto a whole-cell emphasis level for terminal
// rendering: 1 for sizes up to 1em, growing by one per em beyond that,
// capped at 4.
func (s State) Scale() int {
	n := int(math.Ceil(s.FontSizeEm))
	if n < 1 {
		return 1
	}
	if n > 4 {
		return 4
	}
	return n
}
