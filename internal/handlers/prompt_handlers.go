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

type PromptHandler struct {
	page   *Page
	db     *gorm.DB
	titles *services.TitleService
}

func NewPromptHandler(page *Page, db *gorm.DB, titles *services.TitleService) *PromptHandler {
	return &PromptHandler{page: page, db: db, titles: titles}
}

// ListPrompts renders the active prompts, featured first.
func (h *PromptHandler) ListPrompts(c echo.Context) error {
	var prompts []models.Prompt
	err := h.db.WithContext(c.Request().Context()).
		Preload("Author").
		Where("is_active = ?", true).
		Order("featured desc, created_at desc").
		Find(&prompts).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch prompts").SetInternal(err)
	}

	items := make([]pages.ListItem, 0, len(prompts))
	for _, p := range prompts {
		items = append(items, pages.ListItem{
			Title:    p.Title,
			Subtitle: p.Author.DisplayName(),
			Href:     h.page.hrefWith(navigation.PathPrompt, navigation.Params{"promptId": idString(p.ID)}),
		})
	}

	trail := middleware.TrailFrom(c)
	return render(c, pages.ListPage(pages.ListPageProps{
		Layout:    h.page.layout(c, heading(trail, "Prompts"), "prompts", trail),
		Heading:   heading(trail, "Prompts"),
		Items:     items,
		EmptyText: "No prompts yet.",
		Actions:   []pages.Link{{Text: h.page.label(c, "/prompts/new"), Href: "/prompts/new"}},
	}))
}

// NewPrompt renders the create form.
func (h *PromptHandler) NewPrompt(c echo.Context) error {
	trail := middleware.TrailFrom(c)
	return render(c, pages.FormPage(pages.FormPageProps{
		Layout:  h.page.layout(c, heading(trail, "New Prompt"), "prompts", trail),
		Heading: heading(trail, "New Prompt"),
		Action:  "/prompts",
		Fields: []pages.FormField{
			{Name: "title", Label: "Title", Required: true},
			{Name: "body", Label: "Prompt", Type: "textarea"},
		},
		SubmitText: "Publish",
	}))
}

// StorePrompt creates a prompt authored by the current member.
func (h *PromptHandler) StorePrompt(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusForbidden, "Complete your profile before posting prompts.")
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "A prompt needs a title.")
	}

	prompt := models.Prompt{
		Title:    title,
		Body:     c.FormValue("body"),
		AuthorID: user.ID,
		IsActive: true,
	}
	if err := h.db.WithContext(c.Request().Context()).Create(&prompt).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create prompt").SetInternal(err)
	}

	return c.Redirect(http.StatusSeeOther, h.page.hrefWith(navigation.PathPrompt, navigation.Params{"promptId": idString(prompt.ID)}))
}

// ShowPrompt renders a prompt. Its title ends the trail.
func (h *PromptHandler) ShowPrompt(c echo.Context) error {
	id, err := idParam(c, "promptId")
	if err != nil {
		return err
	}

	var prompt models.Prompt
	if err := h.db.WithContext(c.Request().Context()).Preload("Author").First(&prompt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Prompt not found")
		}
		return err
	}

	title := prompt.Title
	if strings.TrimSpace(title) == "" {
		title = h.page.display(c, services.FallbackRecordTitle)
	}
	trail, err := h.page.fromParent(c, navigation.PathPrompt, navigation.Segment{Label: title})
	if err != nil {
		return err
	}

	return render(c, pages.DetailPage(pages.DetailPageProps{
		Layout:   h.page.layout(c, title, "prompts", trail),
		Heading:  title,
		Subtitle: prompt.Author.DisplayName(),
		Body:     prompt.Body,
		Actions: []pages.Link{
			{Text: h.page.label(c, navigation.PathPromptResponses), Href: h.page.href(c, navigation.PathPromptResponses)},
		},
	}))
}

// ListResponses renders the answers to a prompt. The prompt title links
// back to the prompt.
func (h *PromptHandler) ListResponses(c echo.Context) error {
	id, err := idParam(c, "promptId")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var responses []models.PromptResponse
	if err := h.db.WithContext(ctx).Preload("Creator").Where("prompt_id = ?", id).Order("created_at desc").Find(&responses).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch responses").SetInternal(err)
	}

	title := h.page.display(c, h.titles.PromptTitle(ctx, c.Param("promptId")))
	current := h.page.label(c, navigation.PathPromptResponses)
	trail, err := h.page.fromParent(c, navigation.PathPrompt,
		navigation.Segment{Label: title, Href: h.page.href(c, navigation.PathPrompt)},
		navigation.Segment{Label: current},
	)
	if err != nil {
		return err
	}

	items := make([]pages.ListItem, 0, len(responses))
	for _, r := range responses {
		items = append(items, pages.ListItem{
			Title:    r.Title,
			Subtitle: r.Creator.DisplayName(),
			Href:     h.page.hrefWith(navigation.PathCreator, navigation.Params{"creatorId": r.Creator.Handle}),
		})
	}

	return render(c, pages.ListPage(pages.ListPageProps{
		Layout:    h.page.layout(c, title+" · "+current, "prompts", trail),
		Heading:   current,
		Items:     items,
		EmptyText: "No responses yet.",
	}))
}
