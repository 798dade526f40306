package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"galeri_app_echo/internal/i18n"
	"galeri_app_echo/internal/models"
	"galeri_app_echo/internal/navigation"
)

func newCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	catalog, err := i18n.Load("en")
	require.NoError(t, err)
	return catalog
}

func newBuilder(t *testing.T) *navigation.Builder {
	t.Helper()
	table, err := navigation.NewAppTable()
	require.NoError(t, err)
	return navigation.NewBuilder(table)
}

func TestLocale(t *testing.T) {
	catalog := newCatalog(t)

	tests := []struct {
		name       string
		target     string
		cookie     string
		accept     string
		want       string
		wantCookie bool
	}{
		{name: "default", target: "/about", want: "en"},
		{name: "accept language", target: "/about", accept: "id-ID,id;q=0.9", want: "id"},
		{name: "cookie beats header", target: "/about", cookie: "en", accept: "id", want: "en"},
		{name: "query is remembered", target: "/about?lang=id", cookie: "en", want: "id", wantCookie: true},
		{name: "unsupported query ignored", target: "/about?lang=ja", accept: "id", want: "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: localeCookie, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var got string
			err := Locale(catalog)(func(c echo.Context) error {
				got = LocaleFrom(c)
				return nil
			})(c)
			require.NoError(t, err)

			assert.Equal(t, tt.want, got)
			setCookie := rec.Header().Get("Set-Cookie")
			if tt.wantCookie {
				assert.Contains(t, setCookie, "lang="+tt.want)
			} else {
				assert.Empty(t, setCookie)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		want int
	}{
		{name: "anonymous", want: http.StatusForbidden},
		{name: "member", user: &models.User{UserType: models.UserTypeMember}, want: http.StatusForbidden},
		{name: "admin", user: &models.User{UserType: models.UserTypeAdmin}, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin", nil), httptest.NewRecorder())
			if tt.user != nil {
				c.Set(ContextKeyUser, tt.user)
			}

			err := RequireAdmin()(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})(c)

			if tt.want == http.StatusOK {
				require.NoError(t, err)
				return
			}
			var he *echo.HTTPError
			require.True(t, errors.As(err, &he))
			assert.Equal(t, tt.want, he.Code)
		})
	}
}

func TestRequireAuthWithoutFirebase(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), rec)

	err := RequireAuth(nil, zap.NewNop())(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/login?error=auth_not_configured", rec.Header().Get(echo.HeaderLocation))
}

func TestCustomErrorHandlerRendersErrorTrail(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/collections/9", nil), rec)
	c.Set(ContextKeyLocale, "id")

	handler := CustomErrorHandler(newBuilder(t), newCatalog(t), zap.NewNop())
	handler(echo.NewHTTPError(http.StatusNotFound), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<a href="/">Beranda</a>`)
	assert.Contains(t, body, `<span aria-current="page">Galat</span>`)
	assert.NotContains(t, body, "Dasbor", "the dashboard is the anchor, not part of the trail")
	assert.Contains(t, body, "Page Not Found")
}

func TestCustomErrorHandlerPublicPage(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/about/nope", nil), rec)

	handler := CustomErrorHandler(newBuilder(t), newCatalog(t), zap.NewNop())
	handler(errors.New("boom"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "breadcrumbs")
	assert.NotContains(t, body, "boom")
	assert.Contains(t, body, "Something went wrong")
}

func TestCustomErrorHandlerHead(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodHead, "/prompts/1", nil), rec)

	CustomErrorHandler(newBuilder(t), newCatalog(t), zap.NewNop())(echo.NewHTTPError(http.StatusForbidden), c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestBreadcrumbsMiddleware(t *testing.T) {
	builder, catalog := newBuilder(t), newCatalog(t)
	matched := testutil.ToFloat64(breadcrumbResolutions.WithLabelValues(BreadcrumbSourceRuntime, BreadcrumbMatched))
	missed := testutil.ToFloat64(breadcrumbResolutions.WithLabelValues(BreadcrumbSourceRuntime, BreadcrumbNoMatch))

	run := func(target string) navigation.Trail {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.Set(ContextKeyLocale, "id")

		var trail navigation.Trail
		err := Breadcrumbs(builder, catalog)(func(c echo.Context) error {
			trail = TrailFrom(c)
			return nil
		})(c)
		require.NoError(t, err)
		return trail
	}

	trail := run("/about/changelog?ref=footer")
	require.Len(t, trail, 2)
	assert.Equal(t, navigation.Segment{Label: "Tentang", Href: "/about", Icon: "info"}, trail[0])
	assert.Empty(t, trail[1].Href)

	assert.Nil(t, run("/static/js/login.js"))

	assert.Equal(t, matched+1, testutil.ToFloat64(breadcrumbResolutions.WithLabelValues(BreadcrumbSourceRuntime, BreadcrumbMatched)))
	assert.Equal(t, missed+1, testutil.ToFloat64(breadcrumbResolutions.WithLabelValues(BreadcrumbSourceRuntime, BreadcrumbNoMatch)))
}

func TestMetricsCountsHTTPErrors(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/prompts/9", nil), httptest.NewRecorder())
	c.SetPath("/prompts/:promptId")

	counter := httpRequests.WithLabelValues(http.MethodGet, "/prompts/:promptId", "404")
	before := testutil.ToFloat64(counter)

	err := Metrics()(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound)
	})(c)
	assert.Error(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
