package compose

import (
	"github.com/daviddao/multivalue_viewer/internal/drill"
	"github.com/daviddao/multivalue_viewer/internal/layout"
)

// Description is the JSON form of a tree, as printed by mvv --json.
type Description struct {
	Layout  layout.State       `json:"layout"`
	Groups  []GroupDescription `json:"groups"`
	Warning string             `json:"warning,omitempty"`
}

// GroupDescription is the JSON form of a group.
type GroupDescription struct {
	Name         string       `json:"name"`
	Title        string       `json:"title,omitempty"`
	Value        string       `json:"value"`
	Direction    Direction    `json:"direction"`
	Comparison   string       `json:"comparison,omitempty"`
	Color        string       `json:"color,omitempty"`
	Links        []drill.Link `json:"links"`
	DividerAfter bool         `json:"divider_after,omitempty"`
}

// Describe snapshots t with the current slot contents.
func Describe(t *Tree) Description {
	d := Description{
		Layout:  t.Layout,
		Groups:  make([]GroupDescription, len(t.Groups)),
		Warning: t.Warning,
	}
	for i, g := range t.Groups {
		gd := GroupDescription{
			Name:         g.Name,
			Value:        g.Value(),
			Direction:    g.Direction,
			Color:        g.Color,
			Links:        g.Links,
			DividerAfter: g.DividerAfter,
		}
		if gd.Links == nil {
			gd.Links = []drill.Link{}
		}
		if g.ShowTitle {
			gd.Title = g.Title
		}
		if g.Comparison != nil {
			gd.Comparison = g.Comparison.Text()
		}
		d.Groups[i] = gd
	}
	return d
}
