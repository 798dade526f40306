package handlers

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"galeri_app_echo/internal/config"
	"galeri_app_echo/internal/i18n"
	"galeri_app_echo/internal/middleware"
	"galeri_app_echo/internal/navigation"
	"galeri_app_echo/internal/services"
)

// Deps are the collaborators of the page handlers.
type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Auth    *auth.Client
	Titles  *services.TitleService
	Builder *navigation.Builder
	Catalog *i18n.Catalog
	Log     *zap.Logger
}

// RegisterRoutes mounts every page. Echo param names match the registry
// placeholders so request params fill breadcrumb hrefs directly.
func RegisterRoutes(e *echo.Echo, d Deps) {
	page := NewPage(d.Builder, d.Catalog, d.Log)

	authHandler := NewAuthHandler(d.Auth, d.Config, d.Log)
	publicHandler := NewPublicHandler(page, d.DB)
	dashboardHandler := NewDashboardHandler(page, d.DB)
	promptHandler := NewPromptHandler(page, d.DB, d.Titles)
	collectionHandler := NewCollectionHandler(page, d.DB, d.Titles)
	exhibitHandler := NewExhibitHandler(page, d.DB, d.Titles)
	creatorHandler := NewCreatorHandler(page, d.DB, d.Titles)
	settingsHandler := NewSettingsHandler(page, d.DB, d.Titles)
	adminHandler := NewAdminHandler(page, d.DB, d.Titles)

	// Public routes
	e.GET("/login", authHandler.LoginPage)
	e.POST("/auth/login", authHandler.HandleLogin)
	e.POST("/auth/logout", authHandler.HandleLogout)

	e.GET("/about", publicHandler.TextPage("about.body"))
	e.GET("/about/changelog", publicHandler.TextPage("changelog.body"))
	e.GET("/about/terms", publicHandler.TextPage("terms.body"))
	e.GET("/about/privacy", publicHandler.TextPage("privacy.body"))
	e.GET("/s/:uuid", publicHandler.ShareRedirect)

	// Redirect root to dashboard (or login if not authenticated)
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusTemporaryRedirect, "/dashboard")
	})

	// Protected routes
	protected := e.Group("", middleware.RequireAuth(d.Auth, d.Log), middleware.LoadUser(d.DB))
	protected.GET("/dashboard", dashboardHandler.Dashboard)

	protected.GET("/prompts", promptHandler.ListPrompts)
	protected.GET("/prompts/new", promptHandler.NewPrompt)
	protected.POST("/prompts", promptHandler.StorePrompt)
	protected.GET("/prompts/:promptId", promptHandler.ShowPrompt)
	protected.GET("/prompts/:promptId/responses", promptHandler.ListResponses)

	protected.GET("/collections", collectionHandler.ListCollections)
	protected.GET("/collections/new", collectionHandler.NewCollection)
	protected.POST("/collections", collectionHandler.StoreCollection)
	protected.GET("/collections/:collectionId", collectionHandler.ShowCollection)
	protected.POST("/collections/:collectionId", collectionHandler.UpdateCollection)
	protected.GET("/collections/:collectionId/edit", collectionHandler.EditCollection)

	protected.GET("/exhibits", exhibitHandler.ListExhibits)
	protected.GET("/exhibits/:exhibitId", exhibitHandler.ShowExhibit)
	protected.GET("/exhibits/:exhibitId/submissions", exhibitHandler.ListSubmissions)
	protected.POST("/exhibits/:exhibitId/submissions", exhibitHandler.StoreSubmission)
	protected.GET("/exhibits/:exhibitId/submissions/:submissionId", exhibitHandler.ShowSubmission)

	protected.GET("/creators", creatorHandler.ListCreators)
	protected.GET("/creators/:creatorId", creatorHandler.ShowCreator)
	protected.GET("/creators/:creatorId/portfolio", creatorHandler.ShowPortfolio)
	protected.GET("/creators/:creatorId/portfolio/:itemId", creatorHandler.ShowPortfolioItem)

	protected.GET("/settings", settingsHandler.Index)
	protected.GET("/settings/profile", settingsHandler.Profile)
	protected.POST("/settings/profile", settingsHandler.UpdateProfile)
	protected.GET("/settings/notifications", settingsHandler.Notifications)
	protected.POST("/settings/notifications", settingsHandler.UpdateNotifications)

	admin := protected.Group("/admin", middleware.RequireAdmin())
	admin.GET("", adminHandler.Index)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:userId", adminHandler.ShowUser)
	admin.POST("/users/:userId", adminHandler.UpdateUser)
	admin.GET("/exhibits", adminHandler.ListExhibits)
	admin.POST("/exhibits", adminHandler.StoreExhibit)
	admin.GET("/reports", adminHandler.Reports)
}
