package middleware

import "github.com/labstack/echo/v4"

// Keys set on the echo context by this package.
const (
	ContextKeyUserUID     = "userUID"
	ContextKeyUserEmail   = "userEmail"
	ContextKeyUserName    = "userName"
	ContextKeyUser        = "user"
	ContextKeyLocale      = "locale"
	ContextKeyBreadcrumbs = "breadcrumbs"
)

// StringFromContext safely reads a string value set on the context.
func StringFromContext(c echo.Context, key string) string {
	val := c.Get(key)
	if val == nil {
		return ""
	}
	strVal, ok := val.(string)
	if !ok {
		return ""
	}
	return strVal
}
