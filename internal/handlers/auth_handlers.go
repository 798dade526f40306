package handlers

import (
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"galeri_app_echo/internal/config"
	"galeri_app_echo/web/templates/pages"
)

const sessionDuration = 5 * 24 * time.Hour

var loginErrors = map[string]string{
	"auth_not_configured": "Sign-in is not available right now.",
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authClient *auth.Client
	cfg        *config.Config
	log        *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authClient *auth.Client, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authClient: authClient, cfg: cfg, log: log}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return render(c, pages.LoginPage(pages.LoginProps{
		FirebaseAPIKey:     h.cfg.Firebase.APIKey,
		FirebaseAuthDomain: h.cfg.Firebase.AuthDomain,
		FirebaseProjectID:  h.cfg.Firebase.ProjectID,
		Error:              loginErrors[c.QueryParam("error")],
	}))
}

// HandleLogin verifies the Firebase ID token and creates a session cookie
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	if h.authClient == nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Firebase not initialized",
		})
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Missing authorization header",
		})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid authorization format",
		})
	}

	ctx := c.Request().Context()
	if _, err := h.authClient.VerifyIDToken(ctx, tokenString); err != nil {
		h.log.Debug("id token rejected", zap.Error(err))
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid token",
		})
	}

	cookieValue, err := h.authClient.SessionCookie(ctx, tokenString, sessionDuration)
	if err != nil {
		h.log.Error("failed to create session cookie", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create session",
		})
	}

	c.SetCookie(&http.Cookie{
		Name:     "session",
		Value:    cookieValue,
		MaxAge:   int(sessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]string{
		"status": "success",
	})
}

// HandleLogout clears the session cookie
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     "session",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	})

	return c.JSON(http.StatusOK, map[string]string{
		"status": "logged out",
	})
}
