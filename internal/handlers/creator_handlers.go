package handlers

import (
	"errors"
	"fmt"
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

// CreatorHandler serves creator profiles. Creators are addressed by handle.
type CreatorHandler struct {
	page   *Page
	db     *gorm.DB
	titles *services.TitleService
}

func NewCreatorHandler(page *Page, db *gorm.DB, titles *services.TitleService) *CreatorHandler {
	return &CreatorHandler{page: page, db: db, titles: titles}
}

func (h *CreatorHandler) findCreator(c echo.Context) (models.User, error) {
	var creator models.User
	handle := c.Param("creatorId")
	if handle == "" {
		return creator, echo.NewHTTPError(http.StatusNotFound)
	}
	if err := h.db.WithContext(c.Request().Context()).Where("handle = ?", handle).First(&creator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return creator, echo.NewHTTPError(http.StatusNotFound, "Creator not found")
		}
		return creator, err
	}
	return creator, nil
}

// ListCreators renders members that picked a handle.
func (h *CreatorHandler) ListCreators(c echo.Context) error {
	var creators []models.User
	if err := h.db.WithContext(c.Request().Context()).Where("handle <> ''").Order("name").Find(&creators).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch creators").SetInternal(err)
	}

	items := make([]pages.ListItem, 0, len(creators))
	for _, u := range creators {
		items = append(items, pages.ListItem{
			Title:    u.DisplayName(),
			Subtitle: "@" + u.Handle,
			Href:     h.page.hrefWith(navigation.PathCreator, navigation.Params{"creatorId": u.Handle}),
		})
	}

	trail := middleware.TrailFrom(c)
	return render(c, pages.ListPage(pages.ListPageProps{
		Layout:    h.page.layout(c, heading(trail, "Creators"), "creators", trail),
		Heading:   heading(trail, "Creators"),
		Items:     items,
		EmptyText: "No creators yet.",
	}))
}

// ShowCreator renders a profile. The creator's name ends the trail.
func (h *CreatorHandler) ShowCreator(c echo.Context) error {
	creator, err := h.findCreator(c)
	if err != nil {
		return err
	}

	name := creator.DisplayName()
	if name == "" {
		name = h.page.display(c, services.FallbackPersonName)
	}
	trail, err := h.page.fromParent(c, navigation.PathCreator, navigation.Segment{Label: name})
	if err != nil {
		return err
	}

	return render(c, pages.DetailPage(pages.DetailPageProps{
		Layout:   h.page.layout(c, name, "creators", trail),
		Heading:  name,
		Subtitle: "@" + creator.Handle,
		Body:     creator.Bio,
		Actions: []pages.Link{
			{Text: h.page.label(c, navigation.PathCreatorPortfolio), Href: h.page.href(c, navigation.PathCreatorPortfolio)},
		},
	}))
}

// portfolioLabel is "<name>'s Portfolio" in the request locale.
func (h *CreatorHandler) portfolioLabel(c echo.Context, name string) string {
	format := h.page.text(c, "portfolio.title")
	if !strings.Contains(format, "%s") {
		return name
	}
	return fmt.Sprintf(format, name)
}

// ShowPortfolio renders a creator's works. The portfolio hangs off
// /creators directly, so the trail is Home > Creators > <name>'s Portfolio.
func (h *CreatorHandler) ShowPortfolio(c echo.Context) error {
	ctx := c.Request().Context()
	name := h.page.display(c, h.titles.CreatorName(ctx, c.Param("creatorId")))

	var items []models.PortfolioItem
	err := h.db.WithContext(ctx).
		Joins("JOIN users ON users.id = portfolio_items.creator_id").
		Where("users.handle = ?", c.Param("creatorId")).
		Order("portfolio_items.created_at desc").
		Find(&items).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch portfolio").SetInternal(err)
	}

	label := h.portfolioLabel(c, name)
	trail, err := h.page.fromParent(c, navigation.PathCreatorPortfolio, navigation.Segment{Label: label})
	if err != nil {
		return err
	}

	list := make([]pages.ListItem, 0, len(items))
	for _, item := range items {
		list = append(list, pages.ListItem{
			Title:    item.Title,
			ImageURL: item.ImageURL,
			Href: h.page.hrefWith(navigation.PathCreatorPortfolioItem, navigation.Params{
				"creatorId": c.Param("creatorId"),
				"itemId":    idString(item.ID),
			}),
		})
	}

	return render(c, pages.ListPage(pages.ListPageProps{
		Layout:    h.page.layout(c, label, "creators", trail),
		Heading:   label,
		Items:     list,
		EmptyText: "No works yet.",
	}))
}

// ShowPortfolioItem renders one work of a creator.
func (h *CreatorHandler) ShowPortfolioItem(c echo.Context) error {
	id, err := idParam(c, "itemId")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var item models.PortfolioItem
	err = h.db.WithContext(ctx).
		Joins("JOIN users ON users.id = portfolio_items.creator_id").
		Where("users.handle = ?", c.Param("creatorId")).
		First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Work not found")
		}
		return err
	}

	title := h.page.display(c, h.titles.PortfolioItemTitle(ctx, c.Param("itemId")))
	trail, err := h.page.fromParent(c, navigation.PathCreatorPortfolioItem, navigation.Segment{Label: title})
	if err != nil {
		return err
	}

	return render(c, pages.DetailPage(pages.DetailPageProps{
		Layout:   h.page.layout(c, title, "creators", trail),
		Heading:  title,
		Body:     item.Description,
		ImageURL: item.ImageURL,
	}))
}
