package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"galeri_app_echo/internal/i18n"
	"galeri_app_echo/internal/middleware"
	"galeri_app_echo/internal/navigation"
	"galeri_app_echo/internal/services"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

func newTestPage(t *testing.T) *Page {
	t.Helper()
	table, err := navigation.NewAppTable()
	require.NoError(t, err)
	catalog, err := i18n.Load("en")
	require.NoError(t, err)
	return NewPage(navigation.NewBuilder(table), catalog, nil)
}

// newTestEcho wires the request middleware the server installs in front of
// every page.
func newTestEcho(page *Page) *echo.Echo {
	e := echo.New()
	e.Use(middleware.Locale(page.catalog), middleware.Breadcrumbs(page.builder, page.catalog))
	return e
}

func TestParentPathsAreRegistered(t *testing.T) {
	page := newTestPage(t)

	paths := []string{
		navigation.PathHome,
		navigation.PathDashboard,
		navigation.PathPrompt,
		navigation.PathPromptResponses,
		navigation.PathCollection,
		navigation.PathCollectionEdit,
		navigation.PathExhibit,
		navigation.PathExhibitSubmissions,
		navigation.PathExhibitSubmission,
		navigation.PathCreator,
		navigation.PathCreatorPortfolio,
		navigation.PathCreatorPortfolioItem,
		navigation.PathAdminUser,
		navigation.PathSettingsNotifications,
	}
	for _, path := range paths {
		_, err := page.builder.FromParentOf(path, nil, nil)
		assert.NoError(t, err, path)
	}
}

func TestEveryRegisteredRouteIsServed(t *testing.T) {
	page := newTestPage(t)
	e := echo.New()
	RegisterRoutes(e, Deps{Builder: page.builder, Catalog: page.catalog})

	param := regexp.MustCompile(`:([A-Za-z]+)`)
	served := map[string]bool{}
	for _, r := range e.Routes() {
		if r.Method == http.MethodGet {
			served[param.ReplaceAllString(r.Path, "{$1}")] = true
		}
	}

	var missing []string
	for _, node := range page.builder.Table().Nodes() {
		if !served[node.Path] {
			missing = append(missing, node.Path)
		}
	}
	sort.Strings(missing)
	assert.Empty(t, missing, "breadcrumb routes without a page")
}

func TestParamsOf(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Nil(t, paramsOf(c))

	c.SetParamNames("exhibitId", "submissionId")
	c.SetParamValues("3", "12")
	want := navigation.Params{"exhibitId": "3", "submissionId": "12"}
	if diff := cmp.Diff(want, paramsOf(c)); diff != "" {
		t.Errorf("paramsOf mismatch (-want +got):\n%s", diff)
	}
}

func TestHeading(t *testing.T) {
	assert.Equal(t, "Galeri", heading(nil, "Galeri"))
	assert.Equal(t, "Changelog", heading(navigation.Trail{{Label: "About", Href: "/about"}, {Label: "Changelog"}}, "Galeri"))
}

func TestIDParam(t *testing.T) {
	e := echo.New()
	for _, value := range []string{"", "0", "abc", "-4", "99999999999"} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("itemId")
		c.SetParamValues(value)
		_, err := idParam(c, "itemId")

		var he *echo.HTTPError
		require.True(t, errors.As(err, &he), value)
		assert.Equal(t, http.StatusNotFound, he.Code)
	}

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("itemId")
	c.SetParamValues("42")
	id, err := idParam(c, "itemId")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestDisplayLocalizesFallbacks(t *testing.T) {
	page := newTestPage(t)
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(middleware.ContextKeyLocale, "id")

	assert.Equal(t, "Tidak diketahui", page.display(c, services.FallbackPersonName))
	assert.Equal(t, "Tanpa judul", page.display(c, services.FallbackRecordTitle))
	assert.Equal(t, "Night Walks", page.display(c, "Night Walks"))
}

func TestFromParentUnregisteredRoute(t *testing.T) {
	page := newTestPage(t)
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := page.fromParent(c, "/galleries/{galleryId}", navigation.Segment{Label: "Lobby"})

	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusInternalServerError, he.Code)
	assert.ErrorIs(t, err, navigation.ErrConfiguration)
}

func TestFromParentFillsHrefsFromRouteParams(t *testing.T) {
	page := newTestPage(t)
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("exhibitId", "submissionId")
	c.SetParamValues("3", "12")

	trail, err := page.fromParent(c, navigation.PathExhibitSubmission, navigation.Segment{Label: "Harbour at Dusk"})
	require.NoError(t, err)

	want := navigation.Trail{
		{Label: "Home", Href: "/", Icon: "home"},
		{Label: "Exhibits", Href: "/exhibits", Icon: "frame"},
		{Label: "Exhibit", Href: "/exhibits/3"},
		{Label: "Submissions", Href: "/exhibits/3/submissions"},
		{Label: "Harbour at Dusk"},
	}
	if diff := cmp.Diff(want, trail); diff != "" {
		t.Errorf("trail mismatch (-want +got):\n%s", diff)
	}
}

func TestShowPortfolioTrail(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name: "english",
			want: []string{
				`<a href="/">Home</a>`,
				`<a href="/creators">Creators</a>`,
				`<span aria-current="page">Jane Doe&#39;s Portfolio</span>`,
				`href="/creators/jane/portfolio/4"`,
			},
		},
		{
			name:  "indonesian",
			query: "?lang=id",
			want: []string{
				`<a href="/">Beranda</a>`,
				`<a href="/creators">Kreator</a>`,
				`<span aria-current="page">Portofolio Jane Doe</span>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newTestPage(t)
			db, mock := newMockDB(t)
			mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE handle = \$1`).
				WillReturnRows(sqlmock.NewRows([]string{"name", "handle"}).AddRow("Jane Doe", "jane"))
			mock.ExpectQuery(`SELECT (.+) FROM "portfolio_items" JOIN users`).
				WillReturnRows(sqlmock.NewRows([]string{"id", "title", "image_url"}).AddRow(4, "Sunset Study", "/img/4.jpg"))

			h := NewCreatorHandler(page, db, services.NewTitleService(db, nil, 0, nil))
			e := newTestEcho(page)
			e.GET("/creators/:creatorId/portfolio", h.ShowPortfolio)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/creators/jane/portfolio"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			for _, want := range tt.want {
				assert.Contains(t, rec.Body.String(), want)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestShowPortfolioUnknownCreator(t *testing.T) {
	page := newTestPage(t)
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE handle = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "handle"}))
	mock.ExpectQuery(`SELECT (.+) FROM "portfolio_items" JOIN users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "image_url"}))

	h := NewCreatorHandler(page, db, services.NewTitleService(db, nil, 0, nil))
	e := newTestEcho(page)
	e.GET("/creators/:creatorId/portfolio", h.ShowPortfolio)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/creators/ghost/portfolio", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<span aria-current="page">Unknown&#39;s Portfolio</span>`)
	assert.Contains(t, rec.Body.String(), "No works yet.")
}

func TestTextPageUsesGenericTrail(t *testing.T) {
	page := newTestPage(t)
	h := NewPublicHandler(page, nil)
	e := newTestEcho(page)
	e.GET("/about/changelog", h.TextPage("changelog.body"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/about/changelog", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<a href="/about">About</a>`)
	assert.Contains(t, body, `<span aria-current="page">Changelog</span>`)
	assert.Contains(t, body, "Breadcrumbs now follow every page")
	assert.NotContains(t, body, `>Home<`)
}

func TestShareRedirect(t *testing.T) {
	page := newTestPage(t)

	t.Run("malformed slug", func(t *testing.T) {
		h := NewPublicHandler(page, nil)
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/s/nope", nil), httptest.NewRecorder())
		c.SetParamNames("uuid")
		c.SetParamValues("nope")

		var he *echo.HTTPError
		require.True(t, errors.As(h.ShareRedirect(c), &he))
		assert.Equal(t, http.StatusNotFound, he.Code)
	})

	t.Run("known submission", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT "id","exhibit_id" FROM "submissions" WHERE uuid = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "exhibit_id"}).AddRow(12, 3))

		h := NewPublicHandler(page, db)
		e := echo.New()
		e.GET("/s/:uuid", h.ShareRedirect)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/s/5f0c8a52-4a53-4c8e-9a54-4a7bb1c0a8f1", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/exhibits/3/submissions/12", rec.Header().Get(echo.HeaderLocation))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown submission", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM "submissions"`).WillReturnRows(sqlmock.NewRows([]string{"id", "exhibit_id"}))

		h := NewPublicHandler(page, db)
		e := echo.New()
		e.GET("/s/:uuid", h.ShareRedirect)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/s/5f0c8a52-4a53-4c8e-9a54-4a7bb1c0a8f1", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
