package shared

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"galeri_app_echo/internal/navigation"
)

// Breadcrumbs renders a trail as an ordered list. Segments with an href are
// links except the last one, which is always plain text. An empty trail
// renders nothing.
func Breadcrumbs(trail navigation.Trail) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(trail) == 0 {
			return nil
		}

		h := NewHTML(w)
		h.Raw(`<nav class="breadcrumbs" aria-label="Breadcrumb"><ol>`)
		for i, seg := range trail {
			last := i == len(trail)-1
			h.Raw(`<li class="breadcrumb-item">`)
			if seg.Icon != "" {
				h.Raw(`<i class="icon"`)
				h.Attr("data-icon", seg.Icon)
				h.Raw(`></i>`)
			}
			switch {
			case last:
				h.Raw(`<span aria-current="page">`)
				h.Text(seg.Label)
				h.Raw(`</span>`)
			case seg.Href != "":
				h.Raw(`<a`)
				h.URLAttr("href", seg.Href)
				h.Raw(`>`)
				h.Text(seg.Label)
				h.Raw(`</a>`)
			default:
				h.Raw(`<span>`)
				h.Text(seg.Label)
				h.Raw(`</span>`)
			}
			h.Raw(`</li>`)
		}
		h.Raw(`</ol></nav>`)
		return h.Err()
	})
}
