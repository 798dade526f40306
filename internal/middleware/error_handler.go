package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"galeri_app_echo/internal/i18n"
	"galeri_app_echo/internal/navigation"
	"galeri_app_echo/web/templates/pages"
)

// publicPrefixes are served without the member layout.
var publicPrefixes = []string{"/login", "/auth", "/static", "/about", "/s/"}

func isPublicPath(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// CustomErrorHandler renders HTTP errors as pages with a Home > Error trail.
func CustomErrorHandler(builder *navigation.Builder, catalog *i18n.Catalog, log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		errorTitle := "Internal Server Error"
		errorMessage := ""

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if msg, ok := he.Message.(string); ok && msg != http.StatusText(code) {
				errorMessage = msg
			}

			switch code {
			case http.StatusNotFound:
				errorTitle = "Page Not Found"
				if errorMessage == "" {
					errorMessage = "The page you're looking for doesn't exist."
				}
			case http.StatusForbidden:
				errorTitle = "Access Denied"
				if errorMessage == "" {
					errorMessage = "You don't have permission to access this resource."
				}
			case http.StatusUnauthorized:
				errorTitle = "Unauthorized"
				if errorMessage == "" {
					errorMessage = "Please log in to continue."
				}
			case http.StatusBadRequest:
				errorTitle = "Bad Request"
				if errorMessage == "" {
					errorMessage = "The request could not be processed."
				}
			}
		}
		if errorMessage == "" || code >= http.StatusInternalServerError {
			errorMessage = "Something went wrong. Please try again later."
		}

		path := c.Request().URL.Path
		fields := []zap.Field{zap.Int("status", code), zap.String("path", path), zap.Error(err)}
		switch {
		case errors.Is(err, navigation.ErrConfiguration):
			log.Error("navigation configuration error", fields...)
		case code >= http.StatusInternalServerError:
			log.Error("request failed", fields...)
		default:
			log.Debug("request rejected", fields...)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}

		locale := LocaleFrom(c)
		public := isPublicPath(path)

		var trail navigation.Trail
		if !public {
			translate := catalog.Translator(locale, i18n.NamespaceNavigation)
			errorLabel := translate("nav.error")
			if errorLabel == "" {
				errorLabel = "Error"
			}
			trail, err = builder.FromParentOf(navigation.PathDashboard, nil, translate, navigation.Segment{Label: errorLabel})
			if err != nil {
				ObserveBreadcrumb(BreadcrumbSourceParent, BreadcrumbConfig)
				log.Error("error page breadcrumb", zap.Error(err))
				trail = nil
			} else {
				ObserveBreadcrumb(BreadcrumbSourceParent, BreadcrumbResolved)
			}
		}

		user := CurrentUser(c)
		props := pages.ErrorPageProps{
			Layout: pages.LayoutProps{
				Title:       errorTitle,
				Breadcrumbs: trail,
				UserEmail:   StringFromContext(c, ContextKeyUserEmail),
				UserUID:     StringFromContext(c, ContextKeyUserUID),
				IsAdmin:     user != nil && user.IsAdmin(),
				Lang:        locale,
				Public:      public,
			},
			ErrorTitle:   errorTitle,
			ErrorMessage: errorMessage,
		}

		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(code)
		if renderErr := pages.ErrorPage(props).Render(c.Request().Context(), c.Response()); renderErr != nil {
			log.Error("failed to render error page", zap.Error(renderErr))
		}
	}
}
