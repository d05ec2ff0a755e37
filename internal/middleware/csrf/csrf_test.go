package csrf

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer() *echo.Echo {
	e := echo.New()
	e.Use(Middleware(Config{SkipPaths: []string{"/health/live"}}))
	e.GET("/form", func(c echo.Context) error { return c.String(http.StatusOK, Token(c)) })
	e.POST("/form", func(c echo.Context) error { return c.NoContent(http.StatusSeeOther) })
	e.POST("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

func issueToken(t *testing.T, e *echo.Echo) (string, *http.Cookie) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/form", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	token := rec.Body.String()
	require.NotEmpty(t, token)
	assert.Equal(t, token, rec.Header().Get("X-CSRF-Token"))

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "XSRF-TOKEN" {
			return token, ck
		}
	}
	t.Fatal("no csrf cookie")
	return "", nil
}

func postForm(e *echo.Echo, ck *http.Cookie, origin, token string) int {
	form := url.Values{"csrf_token": {token}}
	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if ck != nil {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestMiddleware_FormRoundTrip(t *testing.T) {
	e := newServer()
	token, ck := issueToken(t, e)

	assert.Equal(t, http.StatusSeeOther, postForm(e, ck, "http://example.com", token))
}

func TestMiddleware_Rejections(t *testing.T) {
	e := newServer()
	token, ck := issueToken(t, e)

	tests := []struct {
		name   string
		cookie *http.Cookie
		origin string
		token  string
	}{
		{name: "wrong token", cookie: ck, origin: "http://example.com", token: "bogus"},
		{name: "no cookie", origin: "http://example.com", token: token},
		{name: "foreign origin", cookie: ck, origin: "http://evil.test", token: token},
		{name: "no origin", cookie: ck, token: token},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusForbidden, postForm(e, tt.cookie, tt.origin, tt.token))
		})
	}
}

func TestMiddleware_SkipPaths(t *testing.T) {
	e := newServer()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
