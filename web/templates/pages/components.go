package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"galeri_app_echo/web/templates/shared"
)

// Link is an action or related page.
type Link struct {
	Text string
	Href string
}

// ListItem is one row of a list page.
type ListItem struct {
	Title    string
	Subtitle string
	Href     string
	ImageURL string
}

// Field is a label/value pair on a detail page.
type Field struct {
	Label string
	Value string
}

// FormField is one input of a form page. Options turns it into a select.
type FormField struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Options  []Link
	Required bool
}

type TextPageProps struct {
	Layout  LayoutProps
	Heading string
	Body    string
}

// TextPage renders static copy such as the about pages.
func TextPage(props TextPageProps) templ.Component {
	return Layout(props.Layout, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)
		h.Raw(`<article class="prose"><h1>`)
		h.Text(props.Heading)
		h.Raw(`</h1><p>`)
		h.Text(props.Body)
		h.Raw(`</p></article>`)
		return h.Err()
	}))
}

type ListPageProps struct {
	Layout    LayoutProps
	Heading   string
	Items     []ListItem
	EmptyText string
	Actions   []Link
}

// ListPage renders an index of records.
func ListPage(props ListPageProps) templ.Component {
	return Layout(props.Layout, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)
		h.Raw(`<section class="list"><header><h1>`)
		h.Text(props.Heading)
		h.Raw(`</h1>`)
		writeActions(h, props.Actions)
		h.Raw(`</header>`)
		h.Component(ctx, ItemList(props.Items, props.EmptyText))
		h.Raw(`</section>`)
		return h.Err()
	}))
}

// ItemList renders items as a list, or emptyText when there are none.
func ItemList(items []ListItem, emptyText string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)
		if len(items) == 0 {
			h.Raw(`<p class="empty">`)
			h.Text(emptyText)
			h.Raw(`</p>`)
			return h.Err()
		}

		h.Raw(`<ul class="items">`)
		for _, item := range items {
			h.Raw(`<li>`)
			if item.ImageURL != "" {
				h.Raw(`<img`)
				h.URLAttr("src", item.ImageURL)
				h.Attr("alt", item.Title)
				h.Raw(`>`)
			}
			if item.Href != "" {
				h.Raw(`<a`)
				h.URLAttr("href", item.Href)
				h.Raw(`>`)
				h.Text(item.Title)
				h.Raw(`</a>`)
			} else {
				h.Text(item.Title)
			}
			if item.Subtitle != "" {
				h.Raw(`<small>`)
				h.Text(item.Subtitle)
				h.Raw(`</small>`)
			}
			h.Raw(`</li>`)
		}
		h.Raw(`</ul>`)
		return h.Err()
	})
}

type DetailPageProps struct {
	Layout   LayoutProps
	Heading  string
	Subtitle string
	Body     string
	ImageURL string
	Fields   []Field
	Actions  []Link
	// Children is rendered below the fields, e.g. a nested list or a form.
	Children templ.Component
}

// DetailPage renders a single record.
func DetailPage(props DetailPageProps) templ.Component {
	return Layout(props.Layout, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)
		h.Raw(`<article class="detail"><header><h1>`)
		h.Text(props.Heading)
		h.Raw(`</h1>`)
		if props.Subtitle != "" {
			h.Raw(`<p class="subtitle">`)
			h.Text(props.Subtitle)
			h.Raw(`</p>`)
		}
		writeActions(h, props.Actions)
		h.Raw(`</header>`)

		if props.ImageURL != "" {
			h.Raw(`<img class="hero"`)
			h.URLAttr("src", props.ImageURL)
			h.Attr("alt", props.Heading)
			h.Raw(`>`)
		}
		if props.Body != "" {
			h.Raw(`<p>`)
			h.Text(props.Body)
			h.Raw(`</p>`)
		}
		if len(props.Fields) > 0 {
			h.Raw(`<dl>`)
			for _, f := range props.Fields {
				h.Raw(`<dt>`)
				h.Text(f.Label)
				h.Raw(`</dt><dd>`)
				h.Text(f.Value)
				h.Raw(`</dd>`)
			}
			h.Raw(`</dl>`)
		}
		h.Component(ctx, props.Children)
		h.Raw(`</article>`)
		return h.Err()
	}))
}

type FormPageProps struct {
	Layout     LayoutProps
	Heading    string
	Action     string
	Fields     []FormField
	SubmitText string
	Notice     string
}

// FormPage renders a POST form.
func FormPage(props FormPageProps) templ.Component {
	return Layout(props.Layout, Form(props))
}

// Form renders only the form, for embedding in other pages.
func Form(props FormPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)
		h.Raw(`<section class="form">`)
		if props.Heading != "" {
			h.Raw(`<h1>`)
			h.Text(props.Heading)
			h.Raw(`</h1>`)
		}
		if props.Notice != "" {
			h.Raw(`<p class="notice">`)
			h.Text(props.Notice)
			h.Raw(`</p>`)
		}
		h.Raw(`<form method="post"`)
		h.URLAttr("action", props.Action)
		h.Raw(`>`)
		for _, f := range props.Fields {
			writeFormField(h, f)
		}
		submit := props.SubmitText
		if submit == "" {
			submit = "Save"
		}
		h.Raw(`<button type="submit">`)
		h.Text(submit)
		h.Raw(`</button></form></section>`)
		return h.Err()
	})
}

func writeFormField(h *shared.HTML, f FormField) {
	h.Raw(`<label>`)
	h.Text(f.Label)

	switch {
	case len(f.Options) > 0:
		h.Raw(`<select`)
		h.Attr("name", f.Name)
		h.Raw(`>`)
		for _, opt := range f.Options {
			h.Raw(`<option`)
			h.Attr("value", opt.Href)
			if opt.Href == f.Value {
				h.Raw(` selected`)
			}
			h.Raw(`>`)
			h.Text(opt.Text)
			h.Raw(`</option>`)
		}
		h.Raw(`</select>`)
	case f.Type == "textarea":
		h.Raw(`<textarea`)
		h.Attr("name", f.Name)
		if f.Required {
			h.Raw(` required`)
		}
		h.Raw(`>`)
		h.Text(f.Value)
		h.Raw(`</textarea>`)
	default:
		typ := f.Type
		if typ == "" {
			typ = "text"
		}
		h.Raw(`<input`)
		h.Attr("type", typ)
		h.Attr("name", f.Name)
		if typ == "checkbox" {
			if f.Value == "on" {
				h.Raw(` checked`)
			}
		} else {
			h.Attr("value", f.Value)
		}
		if f.Required {
			h.Raw(` required`)
		}
		h.Raw(`>`)
	}
	h.Raw(`</label>`)
}

func writeActions(h *shared.HTML, actions []Link) {
	if len(actions) == 0 {
		return
	}
	h.Raw(`<div class="actions">`)
	for _, a := range actions {
		h.Raw(`<a class="button"`)
		h.URLAttr("href", a.Href)
		h.Raw(`>`)
		h.Text(a.Text)
		h.Raw(`</a>`)
	}
	h.Raw(`</div>`)
}
