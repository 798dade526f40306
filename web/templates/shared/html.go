package shared

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HTML writes markup to w and keeps the first write error, so components
// can emit a sequence of writes and check once at the end.
type HTML struct {
	w   io.Writer
	err error
}

func NewHTML(w io.Writer) *HTML {
	return &HTML{w: w}
}

// Raw writes trusted markup.
func (h *HTML) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes escaped text.
func (h *HTML) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped.
func (h *HTML) Attr(name, value string) {
	h.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// URLAttr writes a sanitized URL attribute.
func (h *HTML) URLAttr(name, href string) {
	h.Attr(name, string(templ.URL(href)))
}

// Component renders a child component in place.
func (h *HTML) Component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Err returns the first error seen.
func (h *HTML) Err() error {
	return h.err
}
