package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"galeri_app_echo/internal/navigation"
	"galeri_app_echo/web/templates/shared"
)

// LayoutProps is the data every page passes to the base layout.
type LayoutProps struct {
	Title       string
	ActiveNav   string
	Breadcrumbs navigation.Trail
	UserEmail   string
	UserUID     string
	IsAdmin     bool
	Lang        string
	// Public pages render without the member navigation.
	Public bool
}

// NavItem is one entry of the main navigation.
type NavItem struct {
	Key  string
	Name string
	URL  string
}

// MainNav is the navigation shown to signed-in members.
var MainNav = []NavItem{
	{Key: "dashboard", Name: "Dashboard", URL: "/dashboard"},
	{Key: "prompts", Name: "Prompts", URL: "/prompts"},
	{Key: "collections", Name: "Collections", URL: "/collections"},
	{Key: "exhibits", Name: "Exhibits", URL: "/exhibits"},
	{Key: "creators", Name: "Creators", URL: "/creators"},
	{Key: "settings", Name: "Settings", URL: "/settings/profile"},
}

var adminNav = NavItem{Key: "admin", Name: "Admin", URL: "/admin"}

// Layout wraps body in the HTML shell with navigation and breadcrumbs.
func Layout(props LayoutProps, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := props.Lang
		if lang == "" {
			lang = "en"
		}

		h := shared.NewHTML(w)
		h.Raw(`<!DOCTYPE html><html`)
		h.Attr("lang", lang)
		h.Raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.Text(props.Title)
		h.Raw(` · Galeri</title><link rel="stylesheet" href="/static/css/app.css"></head><body>`)

		if !props.Public {
			h.Raw(`<header class="topbar"><a class="brand" href="/dashboard">Galeri</a><ul class="nav">`)
			items := MainNav
			if props.IsAdmin {
				items = append(append([]NavItem{}, MainNav...), adminNav)
			}
			for _, item := range items {
				h.Raw(`<li`)
				if item.Key == props.ActiveNav {
					h.Attr("class", "active")
				}
				h.Raw(`><a`)
				h.URLAttr("href", item.URL)
				h.Raw(`>`)
				h.Text(item.Name)
				h.Raw(`</a></li>`)
			}
			h.Raw(`</ul>`)
			if props.UserEmail != "" {
				h.Raw(`<span class="user">`)
				h.Text(props.UserEmail)
				h.Raw(`</span><button id="logout" data-action="/auth/logout">Log out</button>`)
			}
			h.Raw(`</header>`)
		}

		h.Raw(`<main class="container">`)
		h.Component(ctx, shared.Breadcrumbs(props.Breadcrumbs))
		h.Component(ctx, body)
		h.Raw(`</main></body></html>`)
		return h.Err()
	})
}
