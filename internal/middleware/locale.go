package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"galeri_app_echo/internal/i18n"
)

const localeCookie = "lang"

// Locale picks the request locale from ?lang=, the lang cookie or
// Accept-Language, in that order. An explicit ?lang= is remembered.
func Locale(catalog *i18n.Catalog) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			query := c.QueryParam("lang")
			var cookie string
			if ck, err := c.Cookie(localeCookie); err == nil {
				cookie = ck.Value
			}

			locale := catalog.Negotiate(query, cookie, c.Request().Header.Get("Accept-Language"))
			if query != "" && query == locale {
				c.SetCookie(&http.Cookie{
					Name:     localeCookie,
					Value:    locale,
					Path:     "/",
					MaxAge:   int((365 * 24 * time.Hour).Seconds()),
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(ContextKeyLocale, locale)
			return next(c)
		}
	}
}

// LocaleFrom returns the locale chosen by Locale, or "" outside it.
func LocaleFrom(c echo.Context) string {
	return StringFromContext(c, ContextKeyLocale)
}
