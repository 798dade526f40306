package handlers

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"galeri_app_echo/internal/i18n"
	"galeri_app_echo/internal/middleware"
	"galeri_app_echo/internal/navigation"
	"galeri_app_echo/internal/services"
	"galeri_app_echo/web/templates/pages"
)

// Page carries what every page handler needs to build its layout and
// breadcrumbs. It is shared by all handlers.
type Page struct {
	builder *navigation.Builder
	catalog *i18n.Catalog
	log     *zap.Logger
}

func NewPage(builder *navigation.Builder, catalog *i18n.Catalog, log *zap.Logger) *Page {
	if log == nil {
		log = zap.NewNop()
	}
	return &Page{builder: builder, catalog: catalog, log: log}
}

// layout fills the props shared by every member page.
func (p *Page) layout(c echo.Context, title, activeNav string, trail navigation.Trail) pages.LayoutProps {
	user := middleware.CurrentUser(c)
	return pages.LayoutProps{
		Title:       title,
		ActiveNav:   activeNav,
		Breadcrumbs: trail,
		UserEmail:   middleware.StringFromContext(c, middleware.ContextKeyUserEmail),
		UserUID:     middleware.StringFromContext(c, middleware.ContextKeyUserUID),
		IsAdmin:     user != nil && user.IsAdmin(),
		Lang:        middleware.LocaleFrom(c),
	}
}

func (p *Page) nav(c echo.Context) navigation.Translator {
	return p.catalog.Translator(middleware.LocaleFrom(c), i18n.NamespaceNavigation)
}

// text reads page copy in the request locale.
func (p *Page) text(c echo.Context, key string) string {
	return p.catalog.Text(middleware.LocaleFrom(c), i18n.NamespacePages, key)
}

// fromParent builds the trail of the route declared as path, ending in the
// caller's segments. Route params of the request fill ancestor hrefs.
func (p *Page) fromParent(c echo.Context, path string, extra ...navigation.Segment) (navigation.Trail, error) {
	trail, err := p.builder.FromParentOf(path, paramsOf(c), p.nav(c), extra...)
	if err != nil {
		middleware.ObserveBreadcrumb(middleware.BreadcrumbSourceParent, middleware.BreadcrumbConfig)
		p.log.Error("breadcrumb for unregistered route", zap.String("route", path), zap.Error(err))
		return nil, echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
	middleware.ObserveBreadcrumb(middleware.BreadcrumbSourceParent, middleware.BreadcrumbResolved)
	return trail, nil
}

// label is the localized registry label of a declared route.
func (p *Page) label(c echo.Context, path string) string {
	node, ok := p.builder.Table().LookupByExactPath(path)
	if !ok {
		return ""
	}
	return navigation.ResolveLabel(node, p.nav(c))
}

// href links to a declared route using the request's params. It returns ""
// when a placeholder has no value.
func (p *Page) href(c echo.Context, path string) string {
	return p.hrefWith(path, paramsOf(c))
}

func (p *Page) hrefWith(path string, params navigation.Params) string {
	node, ok := p.builder.Table().LookupByExactPath(path)
	if !ok {
		return ""
	}
	href, _ := node.Href(params)
	return href
}

// display localizes the fallback literals of services.TitleService.
func (p *Page) display(c echo.Context, title string) string {
	var key string
	switch title {
	case services.FallbackPersonName:
		key = "fallback.person"
	case services.FallbackRecordTitle:
		key = "fallback.record"
	default:
		return title
	}
	if text := p.text(c, key); text != "" {
		return text
	}
	return title
}

// heading is the label of the last trail segment.
func heading(trail navigation.Trail, fallback string) string {
	if len(trail) == 0 {
		return fallback
	}
	return trail[len(trail)-1].Label
}

// paramsOf collects the Echo route params. Route param names match the
// registry placeholders.
func paramsOf(c echo.Context) navigation.Params {
	names := c.ParamNames()
	if len(names) == 0 {
		return nil
	}
	values := c.ParamValues()
	params := make(navigation.Params, len(names))
	for i, name := range names {
		if i < len(values) {
			params[name] = values[i]
		}
	}
	return params
}

// idParam parses a numeric route param. Anything else is a 404.
func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound)
	}
	return uint(id), nil
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func render(c echo.Context, component templ.Component) error {
	return component.Render(c.Request().Context(), c.Response())
}
