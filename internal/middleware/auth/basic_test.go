package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/order_admin/internal/hash"
)

func TestBasicAuth(t *testing.T) {
	h, err := hash.HashPassword("pa55")
	require.NoError(t, err)

	e := echo.New()
	e.Use(BasicAuth("admin", h, "/health/live"))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	tests := []struct {
		name       string
		path       string
		user, pass string
		want       int
	}{
		{name: "valid", path: "/", user: "admin", pass: "pa55", want: http.StatusOK},
		{name: "wrong password", path: "/", user: "admin", pass: "nope", want: http.StatusUnauthorized},
		{name: "wrong user", path: "/", user: "root", pass: "pa55", want: http.StatusUnauthorized},
		{name: "no credentials", path: "/", want: http.StatusUnauthorized},
		{name: "skipped path", path: "/health/live", want: http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.user != "" {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
