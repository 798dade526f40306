package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"galeri_app_echo/internal/middleware"
	"galeri_app_echo/internal/models"
	"galeri_app_echo/internal/navigation"
	"galeri_app_echo/internal/services"
	"galeri_app_echo/web/templates/pages"
)

// AdminHandler serves the admin pages. Routes are guarded by
// middleware.RequireAdmin.
type AdminHandler struct {
	page   *Page
	db     *gorm.DB
	titles *services.TitleService
}

func NewAdminHandler(page *Page, db *gorm.DB, titles *services.TitleService) *AdminHandler {
	return &AdminHandler{page: page, db: db, titles: titles}
}

// Index shows site totals and links to the admin sections.
func (h *AdminHandler) Index(c echo.Context) error {
	db := h.db.WithContext(c.Request().Context())

	var users, exhibits, pending int64
	if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Exhibit{}).Count(&exhibits).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Submission{}).Where("status = ?", models.SubmissionStatusPending).Count(&pending).Error; err != nil {
		return err
	}

	trail := middleware.TrailFrom(c)
	return render(c, pages.DetailPage(pages.DetailPageProps{
		Layout:  h.page.layout(c, heading(trail, "Admin"), "admin", trail),
		Heading: heading(trail, "Admin"),
		Fields: []pages.Field{
			{Label: h.page.label(c, "/admin/users"), Value: strconv.FormatInt(users, 10)},
			{Label: h.page.label(c, "/admin/exhibits"), Value: strconv.FormatInt(exhibits, 10)},
			{Label: "Pending submissions", Value: strconv.FormatInt(pending, 10)},
		},
		Actions: []pages.Link{
			{Text: h.page.label(c, "/admin/users"), Href: "/admin/users"},
			{Text: h.page.label(c, "/admin/exhibits"), Href: "/admin/exhibits"},
			{Text: h.page.label(c, "/admin/reports"), Href: "/admin/reports"},
		},
	}))
}

// ListUsers renders every member.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	var users []models.User
	if err := h.db.WithContext(c.Request().Context()).Order("created_at desc").Find(&users).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch users").SetInternal(err)
	}

	items := make([]pages.ListItem, 0, len(users))
	for _, u := range users {
		items = append(items, pages.ListItem{
			Title:    u.DisplayName(),
			Subtitle: u.Email + " · " + string(u.UserType),
			Href:     h.page.hrefWith(navigation.PathAdminUser, navigation.Params{"userId": idString(u.ID)}),
		})
	}

	trail := middleware.TrailFrom(c)
	return render(c, pages.ListPage(pages.ListPageProps{
		Layout:    h.page.layout(c, heading(trail, "Users"), "admin", trail),
		Heading:   heading(trail, "Users"),
		Items:     items,
		EmptyText: "No users yet.",
	}))
}

// ShowUser renders a member with a role form. The trail ends in their name.
func (h *AdminHandler) ShowUser(c echo.Context) error {
	id, err := idParam(c, "userId")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return err
	}

	name := h.page.display(c, h.titles.UserName(ctx, c.Param("userId")))
	trail, err := h.page.fromParent(c, navigation.PathAdminUser, navigation.Segment{Label: name})
	if err != nil {
		return err
	}

	return render(c, pages.DetailPage(pages.DetailPageProps{
		Layout:   h.page.layout(c, name, "admin", trail),
		Heading:  name,
		Subtitle: user.Email,
		Body:     user.Bio,
		Fields: []pages.Field{
			{Label: "Handle", Value: user.Handle},
			{Label: "Joined", Value: user.CreatedAt.Format("2 Jan 2006")},
		},
		Children: pages.Form(pages.FormPageProps{
			Action: h.page.href(c, navigation.PathAdminUser),
			Fields: []pages.FormField{{
				Name:  "user_type",
				Label: "Role",
				Value: string(user.UserType),
				Options: []pages.Link{
					{Text: "Member", Href: string(models.UserTypeMember)},
					{Text: "Admin", Href: string(models.UserTypeAdmin)},
				},
			}},
			SubmitText: "Update role",
		}),
	}))
}

// UpdateUser changes a member's role.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := idParam(c, "userId")
	if err != nil {
		return err
	}

	role := models.UserType(c.FormValue("user_type"))
	if role != models.UserTypeAdmin && role != models.UserTypeMember {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown role.")
	}
	if current := middleware.CurrentUser(c); current != nil && current.ID == id && role != models.UserTypeAdmin {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot remove your own admin role.")
	}

	result := h.db.WithContext(c.Request().Context()).Model(&models.User{}).Where("id = ?", id).Update("user_type", role)
	if result.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update user").SetInternal(result.Error)
	}
	if result.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	return c.Redirect(http.StatusSeeOther, h.page.href(c, navigation.PathAdminUser))
}

// ListExhibits renders every exhibit with the form to open a new one.
func (h *AdminHandler) ListExhibits(c echo.Context) error {
	var exhibits []models.Exhibit
	if err := h.db.WithContext(c.Request().Context()).Preload("Curator").Order("opens_at desc").Find(&exhibits).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch exhibits").SetInternal(err)
	}

	items := make([]pages.ListItem, 0, len(exhibits))
	for _, e := range exhibits {
		items = append(items, pages.ListItem{
			Title:    e.Title,
			Subtitle: e.Curator.DisplayName(),
			Href:     h.page.hrefWith(navigation.PathExhibit, navigation.Params{"exhibitId": idString(e.ID)}),
		})
	}

	trail := middleware.TrailFrom(c)
	return render(c, pages.DetailPage(pages.DetailPageProps{
		Layout:  h.page.layout(c, heading(trail, "Exhibits"), "admin", trail),
		Heading: heading(trail, "Exhibits"),
		Children: templ.Join(
			pages.ItemList(items, "No exhibits yet."),
			pages.Form(pages.FormPageProps{
				Heading: "Open an exhibit",
				Action:  "/admin/exhibits",
				Fields: []pages.FormField{
					{Name: "title", Label: "Title", Required: true},
					{Name: "description", Label: "Description", Type: "textarea"},
					{Name: "opens_at", Label: "Opens", Type: "date", Required: true},
					{Name: "closes_at", Label: "Closes", Type: "date"},
				},
				SubmitText: "Open exhibit",
			}),
		),
	}))
}

const dateLayout = "2006-01-02"

// StoreExhibit opens an exhibit curated by the current admin.
func (h *AdminHandler) StoreExhibit(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusForbidden)
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "An exhibit needs a title.")
	}
	opensAt, err := time.Parse(dateLayout, c.FormValue("opens_at"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid opening date.")
	}

	exhibit := models.Exhibit{
		Title:       title,
		Description: c.FormValue("description"),
		CuratorID:   user.ID,
		OpensAt:     opensAt,
	}
	if raw := c.FormValue("closes_at"); raw != "" {
		closesAt, err := time.Parse(dateLayout, raw)
		if err != nil || !closesAt.After(opensAt) {
			return echo.NewHTTPError(http.StatusBadRequest, "The closing date must follow the opening date.")
		}
		exhibit.ClosesAt = &closesAt
	}

	if err := h.db.WithContext(c.Request().Context()).Create(&exhibit).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create exhibit").SetInternal(err)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/exhibits")
}

type statusCount struct {
	Status models.SubmissionStatus
	Total  int64
}

// Reports shows submission totals by review status.
func (h *AdminHandler) Reports(c echo.Context) error {
	var counts []statusCount
	err := h.db.WithContext(c.Request().Context()).
		Model(&models.Submission{}).
		Select("status, count(*) as total").
		Group("status").
		Order("status").
		Scan(&counts).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build report").SetInternal(err)
	}

	fields := make([]pages.Field, 0, len(counts))
	for _, sc := range counts {
		fields = append(fields, pages.Field{Label: string(sc.Status), Value: strconv.FormatInt(sc.Total, 10)})
	}

	trail := middleware.TrailFrom(c)
	return render(c, pages.DetailPage(pages.DetailPageProps{
		Layout:  h.page.layout(c, heading(trail, "Reports"), "admin", trail),
		Heading: heading(trail, "Reports"),
		Body:    "Submissions by review status.",
		Fields:  fields,
	}))
}
