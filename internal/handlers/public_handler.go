package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"galeri_app_echo/internal/middleware"
	"galeri_app_echo/internal/models"
	"galeri_app_echo/internal/navigation"
	"galeri_app_echo/web/templates/pages"
)

// PublicHandler serves pages that need no session.
type PublicHandler struct {
	page *Page
	db   *gorm.DB
}

func NewPublicHandler(page *Page, db *gorm.DB) *PublicHandler {
	return &PublicHandler{page: page, db: db}
}

// TextPage renders static copy stored under bodyKey in the pages catalogue.
// The About pages use the generic trail.
func (h *PublicHandler) TextPage(bodyKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		trail := middleware.TrailFrom(c)
		title := heading(trail, "Galeri")

		layout := h.page.layout(c, title, "", trail)
		layout.Public = middleware.StringFromContext(c, middleware.ContextKeyUserUID) == ""

		return render(c, pages.TextPage(pages.TextPageProps{
			Layout:  layout,
			Heading: title,
			Body:    h.page.text(c, bodyKey),
		}))
	}
}

// ShareRedirect resolves a submission share slug to its page.
func (h *PublicHandler) ShareRedirect(c echo.Context) error {
	slug := c.Param("uuid")
	if _, err := uuid.Parse(slug); err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	var submission models.Submission
	err := h.db.WithContext(c.Request().Context()).
		Select("id", "exhibit_id").
		Where("uuid = ?", slug).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "This link is no longer valid.")
		}
		return err
	}

	target := h.page.hrefWith(navigation.PathExhibitSubmission, navigation.Params{
		"exhibitId":    idString(submission.ExhibitID),
		"submissionId": idString(submission.ID),
	})
	return c.Redirect(http.StatusSeeOther, target)
}
