package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"galeri_app_echo/internal/middleware"
	"galeri_app_echo/internal/models"
	"galeri_app_echo/internal/services"
	"galeri_app_echo/web/templates/pages"
)

var handlePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,31}$`)

// SettingsHandler edits the signed-in member's own records.
type SettingsHandler struct {
	page   *Page
	db     *gorm.DB
	titles *services.TitleService
}

func NewSettingsHandler(page *Page, db *gorm.DB, titles *services.TitleService) *SettingsHandler {
	return &SettingsHandler{page: page, db: db, titles: titles}
}

// Index redirects the breadcrumb-only /settings to the profile page.
func (h *SettingsHandler) Index(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/settings/profile")
}

func (h *SettingsHandler) profileForm(c echo.Context, user models.User, notice string) error {
	trail := middleware.TrailFrom(c)
	return render(c, pages.FormPage(pages.FormPageProps{
		Layout:  h.page.layout(c, heading(trail, "Profile"), "settings", trail),
		Heading: heading(trail, "Profile"),
		Action:  "/settings/profile",
		Fields: []pages.FormField{
			{Name: "name", Label: "Name", Value: user.Name},
			{Name: "handle", Label: "Handle", Value: user.Handle, Required: true},
			{Name: "bio", Label: "Bio", Type: "textarea", Value: user.Bio},
		},
		Notice: notice,
	}))
}

// Profile renders the profile form. Members without a record get an empty
// one keyed by their sign-in email.
func (h *SettingsHandler) Profile(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return h.profileForm(c, models.User{Name: middleware.StringFromContext(c, middleware.ContextKeyUserName)}, "")
	}
	return h.profileForm(c, *user, "")
}

// UpdateProfile creates or updates the member record.
func (h *SettingsHandler) UpdateProfile(c echo.Context) error {
	email := middleware.StringFromContext(c, middleware.ContextKeyUserEmail)
	if email == "" {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	handle := strings.ToLower(strings.TrimSpace(c.FormValue("handle")))
	if !handlePattern.MatchString(handle) {
		return echo.NewHTTPError(http.StatusBadRequest, "Handles use 2 to 32 lowercase letters, digits, - or _.")
	}

	ctx := c.Request().Context()
	user := models.User{Email: email, UserType: models.UserTypeMember}
	if current := middleware.CurrentUser(c); current != nil {
		user = *current
	}
	oldHandle := user.Handle
	user.Name = strings.TrimSpace(c.FormValue("name"))
	user.Handle = handle
	user.Bio = c.FormValue("bio")

	if err := h.db.WithContext(ctx).Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusBadRequest, "That handle is taken.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save profile").SetInternal(err)
	}

	h.titles.Forget(ctx, services.TitleKindUser, idString(user.ID))
	h.titles.Forget(ctx, services.TitleKindCreator, oldHandle)
	h.titles.Forget(ctx, services.TitleKindCreator, handle)
	c.Set(middleware.ContextKeyUser, &user)
	return h.profileForm(c, user, "Profile saved.")
}

var channelOptions = []pages.Link{
	{Text: "E-mail", Href: string(models.NotificationChannelEmail)},
	{Text: "Don't notify me", Href: string(models.NotificationChannelNone)},
}

func (h *SettingsHandler) notificationsForm(c echo.Context, pref models.UserNotifPreference, notice string) error {
	trail := middleware.TrailFrom(c)
	return render(c, pages.FormPage(pages.FormPageProps{
		Layout:  h.page.layout(c, heading(trail, "Notifications"), "settings", trail),
		Heading: heading(trail, "Notifications"),
		Action:  "/settings/notifications",
		Fields: []pages.FormField{
			{Name: "channel", Label: "New submissions to my exhibits", Value: string(pref.Channel), Options: channelOptions},
		},
		Notice: notice,
	}))
}

// Notifications renders the preference form.
func (h *SettingsHandler) Notifications(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusForbidden, "Complete your profile first.")
	}

	pref := models.DefaultNotifPreference(user.ID)
	err := h.db.WithContext(c.Request().Context()).Where("user_id = ?", user.ID).First(&pref).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching preference").SetInternal(err)
	}
	return h.notificationsForm(c, pref, "")
}

// UpdateNotifications upserts the preference.
func (h *SettingsHandler) UpdateNotifications(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusForbidden, "Complete your profile first.")
	}

	channel := models.NotificationChannel(c.FormValue("channel"))
	if channel != models.NotificationChannelEmail && channel != models.NotificationChannelNone {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown notification channel.")
	}

	pref := models.UserNotifPreference{UserID: user.ID, Channel: channel}
	err := h.db.WithContext(c.Request().Context()).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"channel", "updated_at"}),
	}).Create(&pref).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save preference").SetInternal(err)
	}
	return h.notificationsForm(c, pref, "Preference saved.")
}
