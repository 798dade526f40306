package middleware

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"galeri_app_echo/internal/models"
)

const sessionCookie = "session"

// RequireAuth returns a middleware that verifies Firebase session cookies
func RequireAuth(authClient *auth.Client, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if authClient == nil {
				return c.Redirect(http.StatusTemporaryRedirect, "/login?error=auth_not_configured")
			}

			cookie, err := c.Cookie(sessionCookie)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusTemporaryRedirect, "/login")
			}

			decodedToken, err := authClient.VerifySessionCookie(c.Request().Context(), cookie.Value)
			if err != nil {
				log.Debug("session cookie rejected", zap.Error(err))
				c.SetCookie(&http.Cookie{
					Name:     sessionCookie,
					Value:    "",
					MaxAge:   -1,
					HttpOnly: true,
					Path:     "/",
				})
				return c.Redirect(http.StatusTemporaryRedirect, "/login")
			}

			c.Set(ContextKeyUserUID, decodedToken.UID)
			if email, ok := decodedToken.Claims["email"].(string); ok {
				c.Set(ContextKeyUserEmail, email)
			}
			if name, ok := decodedToken.Claims["name"].(string); ok {
				c.Set(ContextKeyUserName, name)
			}

			return next(c)
		}
	}
}

// LoadUser attaches the member record matching the signed-in email, if any.
func LoadUser(db *gorm.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email := StringFromContext(c, ContextKeyUserEmail)
			if db != nil && email != "" {
				var user models.User
				if err := db.WithContext(c.Request().Context()).Where("email = ?", email).First(&user).Error; err == nil {
					c.Set(ContextKeyUser, &user)
				}
			}
			return next(c)
		}
	}
}

// CurrentUser returns the member loaded by LoadUser.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(ContextKeyUser).(*models.User)
	return user
}

// RequireAdmin rejects members that are not admins. It must run after
// LoadUser.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil || !user.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden)
			}
			return next(c)
		}
	}
}
