package drill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchNilLinks(t *testing.T) {
	var got []Link
	calls := 0
	h := HandlerFunc(func(links []Link, ev Event) {
		calls++
		got = links
		assert.Equal(t, "revenue", ev.Source)
	})

	Dispatch(h, nil, Event{Source: "revenue", Kind: "key"})
	require.Equal(t, 1, calls)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDispatchNilHandler(t *testing.T) {
	assert.NotPanics(t, func() { Dispatch(nil, []Link{{Label: "x"}}, Event{}) })
}

func TestMenuFollow(t *testing.T) {
	var m Menu
	assert.False(t, m.Visible())

	links := []Link{
		{Label: "Show All", URL: "/explore/a"},
		{Label: "By Region", URL: "/explore/b", TypeLabel: "Explore"},
	}
	Dispatch(&m, links, Event{Source: "orders"})
	require.True(t, m.Visible())
	assert.Equal(t, 1, m.Opens())
	assert.Contains(t, m.View(), "Drill: orders")
	assert.Contains(t, m.View(), "By Region (Explore)")

	m.Up()
	m.Down()
	m.Down()
	l, ok := m.Follow()
	require.True(t, ok)
	assert.Equal(t, "/explore/b", l.URL)
	assert.False(t, m.Visible())

	f, ok := m.Followed()
	require.True(t, ok)
	assert.Equal(t, "By Region", f.Label)
}

func TestMenuEmpty(t *testing.T) {
	var m Menu
	m.OpenDrillMenu([]Link{}, Event{Source: "n"})
	assert.Contains(t, m.View(), "(no links)")
	_, ok := m.Follow()
	assert.False(t, ok)
	assert.False(t, m.Visible())
	_, ok = m.Followed()
	assert.False(t, ok)
}
