package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"galeri_app_echo/internal/middleware"
	"galeri_app_echo/internal/models"
	"galeri_app_echo/internal/navigation"
	"galeri_app_echo/internal/services"
	"galeri_app_echo/internal/tasks"
	"galeri_app_echo/web/templates/pages"
)

type ExhibitHandler struct {
	page   *Page
	db     *gorm.DB
	titles *services.TitleService
	now    func() time.Time
}

func NewExhibitHandler(page *Page, db *gorm.DB, titles *services.TitleService) *ExhibitHandler {
	return &ExhibitHandler{page: page, db: db, titles: titles, now: time.Now}
}

func exhibitHref(p *Page, id uint) string {
	return p.hrefWith(navigation.PathExhibit, navigation.Params{"exhibitId": idString(id)})
}

func submissionHref(p *Page, s models.Submission) string {
	return p.hrefWith(navigation.PathExhibitSubmission, navigation.Params{
		"exhibitId":    idString(s.ExhibitID),
		"submissionId": idString(s.ID),
	})
}

func (h *ExhibitHandler) findExhibit(c echo.Context) (models.Exhibit, error) {
	var exhibit models.Exhibit
	id, err := idParam(c, "exhibitId")
	if err != nil {
		return exhibit, err
	}
	if err := h.db.WithContext(c.Request().Context()).Preload("Curator").First(&exhibit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return exhibit, echo.NewHTTPError(http.StatusNotFound, "Exhibit not found")
		}
		return exhibit, err
	}
	return exhibit, nil
}

// ListExhibits renders every exhibit, newest first.
func (h *ExhibitHandler) ListExhibits(c echo.Context) error {
	var exhibits []models.Exhibit
	if err := h.db.WithContext(c.Request().Context()).Order("opens_at desc").Find(&exhibits).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch exhibits").SetInternal(err)
	}

	now := h.now()
	items := make([]pages.ListItem, 0, len(exhibits))
	for _, e := range exhibits {
		status := "Closed"
		if e.IsOpen(now) {
			status = "Open"
		}
		items = append(items, pages.ListItem{Title: e.Title, Subtitle: status, Href: exhibitHref(h.page, e.ID)})
	}

	trail := middleware.TrailFrom(c)
	return render(c, pages.ListPage(pages.ListPageProps{
		Layout:    h.page.layout(c, heading(trail, "Exhibits"), "exhibits", trail),
		Heading:   heading(trail, "Exhibits"),
		Items:     items,
		EmptyText: "No exhibits yet.",
	}))
}

// ShowExhibit renders an exhibit and, while it is open, the entry form.
func (h *ExhibitHandler) ShowExhibit(c echo.Context) error {
	exhibit, err := h.findExhibit(c)
	if err != nil {
		return err
	}

	title := exhibit.Title
	if strings.TrimSpace(title) == "" {
		title = h.page.display(c, services.FallbackRecordTitle)
	}
	trail, err := h.page.fromParent(c, navigation.PathExhibit, navigation.Segment{Label: title})
	if err != nil {
		return err
	}

	fields := []pages.Field{{Label: "Curator", Value: exhibit.Curator.DisplayName()}, {Label: "Opens", Value: exhibit.OpensAt.Format("2 Jan 2006")}}
	if exhibit.ClosesAt != nil {
		fields = append(fields, pages.Field{Label: "Closes", Value: exhibit.ClosesAt.Format("2 Jan 2006")})
	}

	submissions := h.page.href(c, navigation.PathExhibitSubmissions)
	props := pages.DetailPageProps{
		Layout:  h.page.layout(c, title, "exhibits", trail),
		Heading: title,
		Body:    exhibit.Description,
		Fields:  fields,
		Actions: []pages.Link{{Text: h.page.label(c, navigation.PathExhibitSubmissions), Href: submissions}},
	}
	if exhibit.IsOpen(h.now()) && middleware.CurrentUser(c) != nil {
		props.Children = pages.Form(pages.FormPageProps{
			Action: submissions,
			Fields: []pages.FormField{
				{Name: "title", Label: "Title", Required: true},
				{Name: "image_url", Label: "Image URL", Type: "url", Required: true},
				{Name: "note", Label: "Note for the curator", Type: "textarea"},
			},
			SubmitText: "Submit",
		})
	}
	return render(c, pages.DetailPage(props))
}

// ListSubmissions renders the accepted entries, or all of them for the
// curator and admins.
func (h *ExhibitHandler) ListSubmissions(c echo.Context) error {
	exhibit, err := h.findExhibit(c)
	if err != nil {
		return err
	}

	query := h.db.WithContext(c.Request().Context()).Preload("Creator").Where("exhibit_id = ?", exhibit.ID)
	if !canEdit(middleware.CurrentUser(c), exhibit.CuratorID) {
		query = query.Where("status = ?", models.SubmissionStatusAccepted)
	}
	var submissions []models.Submission
	if err := query.Order("created_at desc").Find(&submissions).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch submissions").SetInternal(err)
	}

	title := h.page.display(c, h.titles.ExhibitTitle(c.Request().Context(), c.Param("exhibitId")))
	current := h.page.label(c, navigation.PathExhibitSubmissions)
	trail, err := h.page.fromParent(c, navigation.PathExhibit,
		navigation.Segment{Label: title, Href: exhibitHref(h.page, exhibit.ID)},
		navigation.Segment{Label: current},
	)
	if err != nil {
		return err
	}

	items := make([]pages.ListItem, 0, len(submissions))
	for _, s := range submissions {
		items = append(items, pages.ListItem{
			Title:    s.Title,
			Subtitle: s.Creator.DisplayName(),
			Href:     submissionHref(h.page, s),
			ImageURL: s.ImageURL,
		})
	}

	return render(c, pages.ListPage(pages.ListPageProps{
		Layout:    h.page.layout(c, title+" · "+current, "exhibits", trail),
		Heading:   current,
		Items:     items,
		EmptyText: "No submissions yet.",
	}))
}

// StoreSubmission enters a work into an open exhibit and queues the
// curator notification.
func (h *ExhibitHandler) StoreSubmission(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusForbidden, "Complete your profile before submitting.")
	}
	exhibit, err := h.findExhibit(c)
	if err != nil {
		return err
	}
	if !exhibit.IsOpen(h.now()) {
		return echo.NewHTTPError(http.StatusBadRequest, "This exhibit is not accepting submissions.")
	}

	title := strings.TrimSpace(c.FormValue("title"))
	imageURL := strings.TrimSpace(c.FormValue("image_url"))
	if title == "" || imageURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "A submission needs a title and an image.")
	}

	submission := models.Submission{
		UUID:      uuid.New().String(),
		ExhibitID: exhibit.ID,
		CreatorID: user.ID,
		Title:     title,
		ImageURL:  imageURL,
		Note:      c.FormValue("note"),
		Status:    models.SubmissionStatusPending,
	}

	ctx := c.Request().Context()
	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}
		task, err := tasks.CreateNotifySubmissionTask(tasks.NotifySubmissionArgs{SubmissionID: submission.ID}, h.now())
		if err != nil {
			return err
		}
		return tx.Create(task).Error
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save submission").SetInternal(err)
	}

	h.page.log.Info("submission received",
		zap.Uint("exhibit_id", exhibit.ID),
		zap.Uint("submission_id", submission.ID),
		zap.String("uuid", submission.UUID))
	return c.Redirect(http.StatusSeeOther, submissionHref(h.page, submission))
}

// ShowSubmission renders one entry. Pending and rejected entries are only
// visible to their creator, the curator and admins.
func (h *ExhibitHandler) ShowSubmission(c echo.Context) error {
	exhibitID, err := idParam(c, "exhibitId")
	if err != nil {
		return err
	}
	id, err := idParam(c, "submissionId")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var submission models.Submission
	err = h.db.WithContext(ctx).
		Preload("Creator").
		Preload("Exhibit").
		Where("exhibit_id = ?", exhibitID).
		First(&submission, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Submission not found")
		}
		return err
	}

	user := middleware.CurrentUser(c)
	if submission.Status != models.SubmissionStatusAccepted &&
		!canEdit(user, submission.CreatorID) && !canEdit(user, submission.Exhibit.CuratorID) {
		return echo.NewHTTPError(http.StatusNotFound, "Submission not found")
	}

	exhibitTitle := h.page.display(c, h.titles.ExhibitTitle(ctx, c.Param("exhibitId")))
	title := submission.Title
	if strings.TrimSpace(title) == "" {
		title = h.page.display(c, services.FallbackRecordTitle)
	}
	trail, err := h.page.fromParent(c, navigation.PathExhibit,
		navigation.Segment{Label: exhibitTitle, Href: exhibitHref(h.page, exhibitID)},
		navigation.Segment{Label: h.page.label(c, navigation.PathExhibitSubmissions), Href: h.page.href(c, navigation.PathExhibitSubmissions)},
		navigation.Segment{Label: title},
	)
	if err != nil {
		return err
	}

	return render(c, pages.DetailPage(pages.DetailPageProps{
		Layout:   h.page.layout(c, title, "exhibits", trail),
		Heading:  title,
		Subtitle: submission.Creator.DisplayName(),
		Body:     submission.Note,
		ImageURL: submission.ImageURL,
		Fields: []pages.Field{
			{Label: "Status", Value: string(submission.Status)},
			{Label: "Share link", Value: "/s/" + submission.UUID},
		},
	}))
}
