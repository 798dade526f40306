package handlers

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"galeri_app_echo/internal/middleware"
	"galeri_app_echo/internal/models"
	"galeri_app_echo/internal/navigation"
	"galeri_app_echo/web/templates/pages"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	page *Page
	db   *gorm.DB
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(page *Page, db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{page: page, db: db}
}

// Dashboard lists the featured prompt and the exhibits open for submissions.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	var items []pages.ListItem

	var featured []models.Prompt
	if err := h.db.WithContext(ctx).Where("featured = ?", true).Limit(1).Find(&featured).Error; err != nil {
		h.page.log.Warn("featured prompt lookup failed", zap.Error(err))
	}
	for _, p := range featured {
		items = append(items, pages.ListItem{
			Title:    p.Title,
			Subtitle: h.page.label(c, "/prompts"),
			Href:     h.page.hrefWith(navigation.PathPrompt, navigation.Params{"promptId": idString(p.ID)}),
		})
	}

	now := time.Now()
	var exhibits []models.Exhibit
	err := h.db.WithContext(ctx).
		Where("opens_at <= ? AND (closes_at IS NULL OR closes_at > ?)", now, now).
		Order("opens_at desc").
		Limit(5).
		Find(&exhibits).Error
	if err != nil {
		h.page.log.Warn("open exhibits lookup failed", zap.Error(err))
	}
	for _, e := range exhibits {
		items = append(items, pages.ListItem{
			Title:    e.Title,
			Subtitle: h.page.label(c, "/exhibits"),
			Href:     h.page.hrefWith(navigation.PathExhibit, navigation.Params{"exhibitId": idString(e.ID)}),
		})
	}

	welcome := h.page.text(c, "dashboard.welcome")
	if user := middleware.CurrentUser(c); user != nil {
		welcome += ", " + user.DisplayName()
	}

	trail := middleware.TrailFrom(c)
	return render(c, pages.ListPage(pages.ListPageProps{
		Layout:    h.page.layout(c, heading(trail, "Dashboard"), "dashboard", trail),
		Heading:   welcome,
		Items:     items,
		EmptyText: "Nothing featured yet.",
	}))
}
