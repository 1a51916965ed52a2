// Package comparison decides whether a data point's comparison sub-view
// renders and formats it.
package comparison

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/daviddao/multivalue_viewer/internal/payload"
	"github.com/daviddao/multivalue_viewer/internal/vizconfig"
)

// Warning is shown once per render pass when any comparison is degenerate.
const Warning = "Comparison point can not be zero. Adjust the value to continue."

// Verdict classifies one comparison value.
type Verdict int

const (
	// None means no comparison was requested.
	None Verdict = iota
	// Show means the comparison view renders.
	Show
	// Degenerate means the value is zero or null; the view is suppressed
	// and the warning is raised.
	Degenerate
)

func (v Verdict) String() string {
	switch v {
	case None:
		return "none"
	case Show:
		return "show"
	case Degenerate:
		return "degenerate"
	}
	return "?"
}

// Classify returns the verdict for c.
func Classify(c payload.Comparison) Verdict {
	switch c.State {
	case payload.ComparisonNull:
		return Degenerate
	case payload.ComparisonNumber:
		if c.Value == 0 || math.IsNaN(c.Value) {
			return Degenerate
		}
		return Show
	}
	return None
}

// Result is the outcome for one data set.
type Result struct {
	Verdicts   []Verdict // parallel to the evaluated points
	Warning    string    // "" when no point is degenerate
	Degenerate []string  // names of the degenerate points, in order
}

// Evaluate classifies every point. The warning is raised at most once no
// matter how many points are degenerate; all of them are listed.
func Evaluate(points []payload.DataPoint) Result {
	r := Result{Verdicts: make([]Verdict, len(points))}
	for i, dp := range points {
		v := Classify(dp.Comparison)
		r.Verdicts[i] = v
		if v == Degenerate {
			r.Degenerate = append(r.Degenerate, dp.Name)
		}
	}
	if len(r.Degenerate) > 0 {
		r.Warning = Warning
	}
	return r
}

// Placement of the comparison view relative to the value.
type Placement string

const (
	Below Placement = "below"
	Above Placement = "above"
	Left  Placement = "left"
	Right Placement = "right"
)

// PlacementFor returns the configured placement for name, defaulting to
// Below.
func PlacementFor(cfg vizconfig.Config, name string) Placement {
	switch p := Placement(strings.ToLower(cfg.StringFor(name, vizconfig.FieldComparisonLabelPlacement))); p {
	case Above, Left, Right, Below:
		return p
	}
	return Below
}

// Style of the delta text.
type Style string

const (
	ValueChange      Style = "value_change"
	PercentageChange Style = "percentage_change"
)

// View is the rendered comparison sub-view.
type View struct {
	Arrow string // ▲ or ▼
	Delta string
	Label string
	Up    bool
}

// Text joins the view into one line.
func (v View) Text() string {
	s := v.Arrow + " " + v.Delta
	if v.Label != "" {
		s += " " + v.Label
	}
	return s
}

// Render formats the comparison of dp. It must only be called for points
// whose verdict is Show.
func Render(cfg vizconfig.Config, dp payload.DataPoint) View {
	val := dp.Comparison.Value
	v := View{Up: val > 0, Arrow: "▼"}
	if v.Up {
		v.Arrow = "▲"
	}

	switch Style(cfg.StringFor(dp.Name, vizconfig.FieldComparisonStyle)) {
	case PercentageChange:
		v.Delta = formatNumber(math.Abs(val)) + "%"
	default:
		sign := "-"
		if v.Up {
			sign = "+"
		}
		v.Delta = sign + formatNumber(math.Abs(val))
	}

	if cfg.BoolFor(dp.Name, vizconfig.FieldComparisonShowLabel, true) {
		v.Label = cfg.StringFor(dp.Name, vizconfig.FieldComparisonLabel)
		if v.Label == "" {
			v.Label = dp.ComparisonLabel
		}
	}
	return v
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}
