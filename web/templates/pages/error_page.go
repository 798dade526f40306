package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"galeri_app_echo/web/templates/shared"
)

type ErrorPageProps struct {
	Layout       LayoutProps
	ErrorTitle   string
	ErrorMessage string
	BackLink     string
	BackText     string
}

// ErrorPage renders an HTTP error inside the layout.
func ErrorPage(props ErrorPageProps) templ.Component {
	return Layout(props.Layout, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)
		h.Raw(`<section class="error"><h1>`)
		h.Text(props.ErrorTitle)
		h.Raw(`</h1><p>`)
		h.Text(props.ErrorMessage)
		h.Raw(`</p>`)
		back, text := props.BackLink, props.BackText
		if back == "" {
			back, text = "/dashboard", "Back to dashboard"
			if props.Layout.Public {
				back, text = "/about", "About Galeri"
			}
		}
		h.Raw(`<a`)
		h.URLAttr("href", back)
		h.Raw(`>`)
		h.Text(text)
		h.Raw(`</a></section>`)
		return h.Err()
	}))
}
