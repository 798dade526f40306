package navigation

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func translator(entries map[string]string) Translator {
	return func(key string) string {
		return entries[key]
	}
}

func TestResolveLabel(t *testing.T) {
	node := &RouteNode{Path: "/about", LabelKey: "nav.about", FallbackLabel: "About"}

	tests := []struct {
		name      string
		translate Translator
		want      string
	}{
		{name: "no translator", translate: nil, want: "About"},
		{name: "translated", translate: translator(map[string]string{"nav.about": "Tentang"}), want: "Tentang"},
		{name: "empty translation", translate: translator(map[string]string{"nav.about": ""}), want: "About"},
		{name: "blank translation", translate: translator(map[string]string{"nav.about": "  "}), want: "About"},
		{name: "missing key", translate: translator(nil), want: "About"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLabel(node, tt.translate))
		})
	}
}

func TestResolveLabelSkipsTranslatorWithoutKey(t *testing.T) {
	node := &RouteNode{Path: "/x", FallbackLabel: "X"}
	called := false
	got := ResolveLabel(node, func(string) string {
		called = true
		return "translated"
	})
	assert.Equal(t, "X", got)
	assert.False(t, called)
}

func TestFromRuntimePathAboutChangelog(t *testing.T) {
	b := NewBuilder(newTestTable(t))

	got := b.FromRuntimePath("/about/changelog", nil)
	want := Trail{
		{Label: "About", Href: "/about"},
		{Label: "Changelog"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromRuntimePath mismatch (-want +got):\n%s", diff)
	}
}

func TestFromRuntimePathNoMatchIsNil(t *testing.T) {
	b := NewBuilder(newTestTable(t))
	assert.Nil(t, b.FromRuntimePath("/does/not/exist", nil))
}

func TestFromRuntimePathLengthIsAncestorsPlusOne(t *testing.T) {
	table := newTestTable(t)
	b := NewBuilder(table)

	paths := map[string]int{
		"/":                          0,
		"/about":                     0,
		"/about/changelog":           1,
		"/creators/jane":             1,
		"/creators/jane/portfolio":   1,
		"/creators/jane/portfolio/3": 2,
		"/settings/profile":          1,
	}
	for path, ancestors := range paths {
		t.Run(path, func(t *testing.T) {
			trail := b.FromRuntimePath(path, nil)
			require.Len(t, trail, ancestors+1)
			assert.Empty(t, trail[len(trail)-1].Href)
			for _, seg := range trail[:len(trail)-1] {
				assert.NotEmpty(t, seg.Href)
			}
		})
	}
}

func TestFromRuntimePathSubstitutesParams(t *testing.T) {
	b := NewBuilder(newTestTable(t))

	got := b.FromRuntimePath("/creators/jane/portfolio/3", translator(map[string]string{
		"nav.creators":  "Kreator",
		"nav.portfolio": "Portofolio",
	}))
	want := Trail{
		{Label: "Kreator", Href: "/creators"},
		{Label: "Portofolio", Href: "/creators/jane/portfolio"},
		{Label: "Work"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromRuntimePath mismatch (-want +got):\n%s", diff)
	}
}

func TestFromRuntimePathIsIdempotent(t *testing.T) {
	b := NewBuilder(newTestTable(t))
	translate := translator(map[string]string{"nav.about": "Tentang"})

	first := b.FromRuntimePath("/about/changelog", translate)
	second := b.FromRuntimePath("/about/changelog", translate)
	assert.True(t, cmp.Equal(first, second))

	// Trails are fresh allocations.
	first[0].Label = "changed"
	assert.Equal(t, "Tentang", second[0].Label)
}

func TestFromRuntimePathCarriesIcons(t *testing.T) {
	table, err := NewTable([]RouteSpec{
		{Path: "/admin", Label: "Admin", Icon: "shield"},
		{Path: "/admin/users", Label: "Users", Icon: "users", Parent: "/admin"},
	})
	require.NoError(t, err)

	got := NewBuilder(table).FromRuntimePath("/admin/users", nil)
	want := Trail{
		{Label: "Admin", Href: "/admin", Icon: "shield"},
		{Label: "Users", Icon: "users"},
	}
	assert.Equal(t, want, got)
}

func TestFromParentOfPortfolio(t *testing.T) {
	b := NewBuilder(newTestTable(t))

	got, err := b.FromParentOf("/creators/{creatorId}/portfolio", nil, nil, Segment{Label: "Jane's Portfolio"})
	require.NoError(t, err)
	want := Trail{
		{Label: "Creators", Href: "/creators"},
		{Label: "Jane's Portfolio"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromParentOf mismatch (-want +got):\n%s", diff)
	}
}

func TestFromParentOfWithoutAncestors(t *testing.T) {
	table, err := NewTable([]RouteSpec{
		{Path: "/creators/{creatorId}/portfolio", Label: "Portfolio"},
	})
	require.NoError(t, err)

	got, err := NewBuilder(table).FromParentOf("/creators/{creatorId}/portfolio", nil, nil, Segment{Label: "Jane's Portfolio"})
	require.NoError(t, err)
	assert.Equal(t, Trail{{Label: "Jane's Portfolio"}}, got)
}

func TestFromParentOfMissingParamDropsHref(t *testing.T) {
	b := NewBuilder(newTestTable(t))
	extra := Segment{Label: "Sunset Study", Icon: "image"}

	withParams, err := b.FromParentOf("/creators/{creatorId}/portfolio/{itemId}", Params{"creatorId": "jane"}, nil, extra)
	require.NoError(t, err)
	assert.Equal(t, Trail{
		{Label: "Creators", Href: "/creators"},
		{Label: "Portfolio", Href: "/creators/jane/portfolio"},
		extra,
	}, withParams)

	withoutParams, err := b.FromParentOf("/creators/{creatorId}/portfolio/{itemId}", nil, nil, extra)
	require.NoError(t, err)
	assert.Equal(t, Trail{
		{Label: "Creators", Href: "/creators"},
		{Label: "Portfolio"},
		extra,
	}, withoutParams)
}

func TestFromParentOfAppendsSegmentsVerbatim(t *testing.T) {
	b := NewBuilder(newTestTable(t))
	extra := []Segment{
		{Label: "", Href: "javascript:void(0)"},
		{Label: "Unknown"},
	}

	got, err := b.FromParentOf("/settings/profile", nil, nil, extra...)
	require.NoError(t, err)
	assert.Equal(t, Trail{{Label: "Settings", Href: "/settings"}, extra[0], extra[1]}, got)
}

func TestFromParentOfUnregisteredPath(t *testing.T) {
	b := NewBuilder(newTestTable(t))

	trail, err := b.FromParentOf("/creators/jane/portfolio", nil, nil)
	require.Error(t, err)
	assert.Nil(t, trail)
	assert.True(t, errors.Is(err, ErrConfiguration))

	assert.Panics(t, func() {
		b.MustFromParentOf("/nope", nil, nil)
	})
	assert.NotPanics(t, func() {
		b.MustFromParentOf("/about/changelog", nil, nil, Segment{Label: "v2"})
	})
}
