// Package compose builds the structural tree for a data set and paints it.
//
// Build runs once per data set or layout change. Paint runs every frame
// and only reads slot text, so a clock tick never rebuilds the tree.
package compose

import (
	"strings"

	"github.com/daviddao/multivalue_viewer/internal/comparison"
	"github.com/daviddao/multivalue_viewer/internal/drill"
	"github.com/daviddao/multivalue_viewer/internal/layout"
	"github.com/daviddao/multivalue_viewer/internal/liveclock"
	"github.com/daviddao/multivalue_viewer/internal/payload"
	"github.com/daviddao/multivalue_viewer/internal/vizconfig"
)

// Direction stacks a group's data point and comparison view.
type Direction string

const (
	Column        Direction = "column"
	ColumnReverse Direction = "column-reverse"
	Row           Direction = "row"
	RowReverse    Direction = "row-reverse"
)

var placementDirection = map[comparison.Placement]Direction{
	comparison.Below: Column,
	comparison.Above: ColumnReverse,
	comparison.Left:  RowReverse,
	comparison.Right: Row,
}

// Group is one data point's container.
type Group struct {
	Name       string
	Title      string
	ShowTitle  bool
	TitleAbove bool
	Color      string
	Direction  Direction

	// Slot is nil when the point has no addressable target (missing or
	// duplicate name); Fallback is painted instead.
	Slot     *liveclock.Slot
	Fallback string

	Comparison   *comparison.View
	Links        []drill.Link
	DividerAfter bool
}

// Value returns the text currently shown in the value region.
func (g Group) Value() string {
	if g.Slot == nil {
		return g.Fallback
	}
	return g.Slot.Text()
}

// Tree is the composed view of one data set.
type Tree struct {
	Layout  layout.State
	Groups  []Group
	Warning string
}

// Build lays out one group per point, in order. Slots are created on
// board for every uniquely named point; board keeps nothing else.
func Build(points []payload.DataPoint, cfg vizconfig.Config, st layout.State, res comparison.Result, board *liveclock.Board) *Tree {
	t := &Tree{Layout: st, Warning: res.Warning}

	keep := make(map[string]bool, len(points))
	dividers := cfg.Dividers() && st.Orientation == layout.Horizontal

	for i, dp := range points {
		g := Group{
			Name:       dp.Name,
			Title:      titleFor(cfg, dp),
			ShowTitle:  cfg.BoolFor(dp.Name, vizconfig.FieldShowTitle, true),
			TitleAbove: strings.EqualFold(cfg.StringFor(dp.Name, vizconfig.FieldTitlePlacement), "above"),
			Color:      cfg.StringFor(dp.Name, vizconfig.FieldStyle),
			Direction:  Column,
			Fallback:   StaticText(dp),
			Links:      dp.Links,
		}
		if dp.Name != "" && !keep[dp.Name] {
			keep[dp.Name] = true
			g.Slot = board.Ensure(dp.Name)
		}
		if i < len(res.Verdicts) && res.Verdicts[i] == comparison.Show {
			v := comparison.Render(cfg, dp)
			g.Comparison = &v
			g.Direction = placementDirection[comparison.PlacementFor(cfg, dp.Name)]
		}
		g.DividerAfter = dividers && i < len(points)-1
		t.Groups = append(t.Groups, g)
	}
	board.Retain(keep)
	return t
}

func titleFor(cfg vizconfig.Config, dp payload.DataPoint) string {
	if s := cfg.StringFor(dp.Name, vizconfig.FieldTitleOverride); s != "" {
		return s
	}
	return dp.Label
}
