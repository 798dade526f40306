package navigation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable([]RouteSpec{
		{Path: "/", LabelKey: "nav.home", Label: "Home"},
		{Path: "/about", LabelKey: "nav.about", Label: "About"},
		{Path: "/about/changelog", LabelKey: "nav.changelog", Label: "Changelog", Parent: "/about"},
		{Path: "/creators", LabelKey: "nav.creators", Label: "Creators"},
		{Path: "/creators/new", Label: "New Creator", Parent: "/creators"},
		{Path: "/creators/{creatorId}", LabelKey: "nav.creator", Label: "Profile", Parent: "/creators"},
		{Path: "/creators/{creatorId}/portfolio", LabelKey: "nav.portfolio", Label: "Portfolio", Parent: "/creators"},
		{Path: "/creators/{creatorId}/portfolio/{itemId}", Label: "Work", Parent: "/creators/{creatorId}/portfolio"},
		{Path: "/settings", Label: "Settings"},
		{Path: "/settings/profile", Label: "Profile", Parent: "/settings"},
	})
	require.NoError(t, err)
	return table
}

func TestMatchLiteralPathsMatchThemselves(t *testing.T) {
	table := newTestTable(t)

	for _, node := range table.Nodes() {
		if node.IsDynamic() {
			continue
		}
		t.Run(node.Path, func(t *testing.T) {
			m := table.Match(node.Path)
			require.True(t, m.Matched())
			assert.Equal(t, node.Path, m.Node.Path)
			assert.Empty(t, m.Params)
		})
	}
}

func TestMatchDynamicPathsCaptureParams(t *testing.T) {
	table := newTestTable(t)

	tests := []struct {
		path    string
		pattern string
		params  Params
	}{
		{
			path:    "/creators/jane",
			pattern: "/creators/{creatorId}",
			params:  Params{"creatorId": "jane"},
		},
		{
			path:    "/creators/jane/portfolio",
			pattern: "/creators/{creatorId}/portfolio",
			params:  Params{"creatorId": "jane"},
		},
		{
			path:    "/creators/jane/portfolio/17",
			pattern: "/creators/{creatorId}/portfolio/{itemId}",
			params:  Params{"creatorId": "jane", "itemId": "17"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m := table.Match(tt.path)
			require.True(t, m.Matched())
			assert.Equal(t, tt.pattern, m.Node.Path)
			assert.Equal(t, tt.params, m.Params)
			assert.Len(t, m.Params, len(m.Node.ParamNames()))
		})
	}
}

func TestMatchDeclarationOrderBreaksTies(t *testing.T) {
	table := newTestTable(t)

	m := table.Match("/creators/new")
	require.True(t, m.Matched())
	assert.Equal(t, "/creators/new", m.Node.Path)

	// Declared the other way round, the dynamic route wins.
	reversed, err := NewTable([]RouteSpec{
		{Path: "/creators/{creatorId}", Label: "Profile"},
		{Path: "/creators/new", Label: "New Creator"},
	})
	require.NoError(t, err)
	m = reversed.Match("/creators/new")
	require.True(t, m.Matched())
	assert.Equal(t, "/creators/{creatorId}", m.Node.Path)
	assert.Equal(t, "new", m.Params["creatorId"])
}

func TestMatchNormalization(t *testing.T) {
	table := newTestTable(t)

	empty := table.Match("")
	root := table.Match("/")
	require.True(t, empty.Matched())
	require.True(t, root.Matched())
	assert.Equal(t, root.Node, empty.Node)

	trailing := table.Match("/about/changelog/")
	require.True(t, trailing.Matched())
	assert.Equal(t, "/about/changelog", trailing.Node.Path)

	query := table.Match("/creators/jane?tab=works#top")
	require.True(t, query.Matched())
	assert.Equal(t, "jane", query.Params["creatorId"])
}

func TestMatchNoMatch(t *testing.T) {
	table := newTestTable(t)

	for _, path := range []string{
		"/does/not/exist",
		"/About",
		"/creators//portfolio",
		"/creators/jane/portfolio/17/comments",
		"/about/changelog/" + strings.Repeat("x/", 5),
	} {
		t.Run(path, func(t *testing.T) {
			m := table.Match(path)
			assert.False(t, m.Matched())
			assert.Equal(t, NoMatch, m)
		})
	}
}

func TestMatchWithoutRootRoute(t *testing.T) {
	table, err := NewTable([]RouteSpec{{Path: "/about", Label: "About"}})
	require.NoError(t, err)

	assert.Equal(t, table.Match(""), table.Match("/"))
	assert.False(t, table.Match("/").Matched())
}
