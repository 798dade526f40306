package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"galeri_app_echo/web/templates/shared"
)

type LoginProps struct {
	FirebaseAPIKey     string
	FirebaseAuthDomain string
	FirebaseProjectID  string
	Error              string
}

// LoginPage is a standalone page; the Firebase web SDK posts the ID token
// to /auth/login.
func LoginPage(props LoginProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)
		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Sign in · Galeri</title>`)
		h.Raw(`<link rel="stylesheet" href="/static/css/app.css"></head><body class="login">`)
		h.Raw(`<main id="login"`)
		h.Attr("data-api-key", props.FirebaseAPIKey)
		h.Attr("data-auth-domain", props.FirebaseAuthDomain)
		h.Attr("data-project-id", props.FirebaseProjectID)
		h.Raw(`><h1>Galeri</h1>`)
		if props.Error != "" {
			h.Raw(`<p class="error">`)
			h.Text(props.Error)
			h.Raw(`</p>`)
		}
		h.Raw(`<button id="google-sign-in">Sign in with Google</button></main>`)
		h.Raw(`<script type="module" src="/static/js/login.js"></script></body></html>`)
		return h.Err()
	})
}
