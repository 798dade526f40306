package middleware

import (
	"github.com/labstack/echo/v4"

	"galeri_app_echo/internal/i18n"
	"galeri_app_echo/internal/navigation"
)

// Breadcrumbs attaches the generic trail of the request path. Pages whose
// last label comes from data replace it with a FromParentOf trail.
func Breadcrumbs(builder *navigation.Builder, catalog *i18n.Catalog) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			translate := catalog.Translator(LocaleFrom(c), i18n.NamespaceNavigation)
			trail := builder.FromRuntimePath(c.Request().URL.Path, translate)
			if trail == nil {
				ObserveBreadcrumb(BreadcrumbSourceRuntime, BreadcrumbNoMatch)
			} else {
				ObserveBreadcrumb(BreadcrumbSourceRuntime, BreadcrumbMatched)
				c.Set(ContextKeyBreadcrumbs, trail)
			}
			return next(c)
		}
	}
}

// TrailFrom returns the trail set by Breadcrumbs, or nil.
func TrailFrom(c echo.Context) navigation.Trail {
	trail, _ := c.Get(ContextKeyBreadcrumbs).(navigation.Trail)
	return trail
}
