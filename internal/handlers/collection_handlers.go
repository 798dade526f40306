package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"galeri_app_echo/internal/middleware"
	"galeri_app_echo/internal/models"
	"galeri_app_echo/internal/navigation"
	"galeri_app_echo/internal/services"
	"galeri_app_echo/web/templates/pages"
)

type CollectionHandler struct {
	page   *Page
	db     *gorm.DB
	titles *services.TitleService
}

func NewCollectionHandler(page *Page, db *gorm.DB, titles *services.TitleService) *CollectionHandler {
	return &CollectionHandler{page: page, db: db, titles: titles}
}

func collectionHref(p *Page, id uint) string {
	return p.hrefWith(navigation.PathCollection, navigation.Params{"collectionId": idString(id)})
}

// ListCollections renders public collections and the member's own.
func (h *CollectionHandler) ListCollections(c echo.Context) error {
	query := h.db.WithContext(c.Request().Context()).Preload("Owner").Order("updated_at desc")
	if user := middleware.CurrentUser(c); user != nil {
		query = query.Where("is_public = ? OR owner_id = ?", true, user.ID)
	} else {
		query = query.Where("is_public = ?", true)
	}

	var collections []models.Collection
	if err := query.Find(&collections).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch collections").SetInternal(err)
	}

	items := make([]pages.ListItem, 0, len(collections))
	for _, col := range collections {
		items = append(items, pages.ListItem{
			Title:    col.Title,
			Subtitle: col.Owner.DisplayName(),
			Href:     collectionHref(h.page, col.ID),
		})
	}

	trail := middleware.TrailFrom(c)
	return render(c, pages.ListPage(pages.ListPageProps{
		Layout:    h.page.layout(c, heading(trail, "Collections"), "collections", trail),
		Heading:   heading(trail, "Collections"),
		Items:     items,
		EmptyText: "No collections yet.",
		Actions:   []pages.Link{{Text: h.page.label(c, "/collections/new"), Href: "/collections/new"}},
	}))
}

func collectionFields(col models.Collection) []pages.FormField {
	public := ""
	if col.IsPublic {
		public = "on"
	}
	return []pages.FormField{
		{Name: "title", Label: "Title", Value: col.Title, Required: true},
		{Name: "description", Label: "Description", Type: "textarea", Value: col.Description},
		{Name: "is_public", Label: "Public", Type: "checkbox", Value: public},
	}
}

// NewCollection renders the create form.
func (h *CollectionHandler) NewCollection(c echo.Context) error {
	trail := middleware.TrailFrom(c)
	return render(c, pages.FormPage(pages.FormPageProps{
		Layout:     h.page.layout(c, heading(trail, "New Collection"), "collections", trail),
		Heading:    heading(trail, "New Collection"),
		Action:     "/collections",
		Fields:     collectionFields(models.Collection{IsPublic: true}),
		SubmitText: "Create",
	}))
}

// StoreCollection creates a collection owned by the current member.
func (h *CollectionHandler) StoreCollection(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusForbidden, "Complete your profile before creating collections.")
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "A collection needs a title.")
	}

	col := models.Collection{
		Title:       title,
		Description: c.FormValue("description"),
		OwnerID:     user.ID,
		IsPublic:    c.FormValue("is_public") == "on",
	}
	if err := h.db.WithContext(c.Request().Context()).Create(&col).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create collection").SetInternal(err)
	}

	return c.Redirect(http.StatusSeeOther, collectionHref(h.page, col.ID))
}

// find loads a collection the current member may see.
func (h *CollectionHandler) find(c echo.Context, preload bool) (models.Collection, error) {
	var col models.Collection
	id, err := idParam(c, "collectionId")
	if err != nil {
		return col, err
	}

	query := h.db.WithContext(c.Request().Context()).Preload("Owner")
	if preload {
		query = query.Preload("Items")
	}
	if err := query.First(&col, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return col, echo.NewHTTPError(http.StatusNotFound, "Collection not found")
		}
		return col, err
	}

	user := middleware.CurrentUser(c)
	if !col.IsPublic && (user == nil || (user.ID != col.OwnerID && !user.IsAdmin())) {
		return col, echo.NewHTTPError(http.StatusNotFound, "Collection not found")
	}
	return col, nil
}

func canEdit(user *models.User, ownerID uint) bool {
	return user != nil && (user.ID == ownerID || user.IsAdmin())
}

// ShowCollection renders a collection with its works.
func (h *CollectionHandler) ShowCollection(c echo.Context) error {
	col, err := h.find(c, true)
	if err != nil {
		return err
	}

	title := col.Title
	if strings.TrimSpace(title) == "" {
		title = h.page.display(c, services.FallbackRecordTitle)
	}
	trail, err := h.page.fromParent(c, navigation.PathCollection, navigation.Segment{Label: title})
	if err != nil {
		return err
	}

	works := make([]pages.ListItem, 0, len(col.Items))
	for _, item := range col.Items {
		works = append(works, pages.ListItem{Title: item.Title, ImageURL: item.ImageURL})
	}

	var actions []pages.Link
	if canEdit(middleware.CurrentUser(c), col.OwnerID) {
		actions = append(actions, pages.Link{
			Text: h.page.label(c, navigation.PathCollectionEdit),
			Href: h.page.href(c, navigation.PathCollectionEdit),
		})
	}

	return render(c, pages.DetailPage(pages.DetailPageProps{
		Layout:   h.page.layout(c, title, "collections", trail),
		Heading:  title,
		Subtitle: col.Owner.DisplayName(),
		Body:     col.Description,
		Actions:  actions,
		Children: pages.ItemList(works, "This collection is empty."),
	}))
}

// EditCollection renders the edit form. The trail reads
// Home > Collections > <title> > Edit.
func (h *CollectionHandler) EditCollection(c echo.Context) error {
	col, err := h.find(c, false)
	if err != nil {
		return err
	}
	if !canEdit(middleware.CurrentUser(c), col.OwnerID) {
		return echo.NewHTTPError(http.StatusForbidden)
	}

	title := h.page.display(c, h.titles.CollectionTitle(c.Request().Context(), c.Param("collectionId")))
	current := h.page.label(c, navigation.PathCollectionEdit)
	trail, err := h.page.fromParent(c, navigation.PathCollection,
		navigation.Segment{Label: title, Href: h.page.href(c, navigation.PathCollection)},
		navigation.Segment{Label: current},
	)
	if err != nil {
		return err
	}

	return render(c, pages.FormPage(pages.FormPageProps{
		Layout:     h.page.layout(c, title+" · "+current, "collections", trail),
		Heading:    current,
		Action:     h.page.href(c, navigation.PathCollection),
		Fields:     collectionFields(col),
		SubmitText: "Save",
	}))
}

// UpdateCollection saves the edit form and drops the cached title.
func (h *CollectionHandler) UpdateCollection(c echo.Context) error {
	col, err := h.find(c, false)
	if err != nil {
		return err
	}
	if !canEdit(middleware.CurrentUser(c), col.OwnerID) {
		return echo.NewHTTPError(http.StatusForbidden)
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "A collection needs a title.")
	}

	updates := map[string]interface{}{
		"title":       title,
		"description": c.FormValue("description"),
		"is_public":   c.FormValue("is_public") == "on",
	}
	ctx := c.Request().Context()
	if err := h.db.WithContext(ctx).Model(&col).Updates(updates).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update collection").SetInternal(err)
	}
	h.titles.Forget(ctx, services.TitleKindCollection, idString(col.ID))

	return c.Redirect(http.StatusSeeOther, collectionHref(h.page, col.ID))
}
