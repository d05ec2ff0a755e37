package jwtmiddleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/order_admin/internal/logging"
	"github.com/Skotchmaster/order_admin/internal/tokens"
)

func TestServiceToken(t *testing.T) {
	secret := []byte("s3cret")

	e := echo.New()
	e.Use(ServiceToken(secret, "/health/live"))
	e.GET("/customer", func(c echo.Context) error { return c.String(http.StatusOK, Subject(c)) })
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	good, err := (&tokens.Signer{Secret: secret, Subject: "order-admin"}).Sign()
	require.NoError(t, err)
	forged, err := (&tokens.Signer{Secret: []byte("other"), Subject: "order-admin"}).Sign()
	require.NoError(t, err)
	expired, err := (&tokens.Signer{
		Secret: secret, Subject: "order-admin",
		Now: func() time.Time { return time.Now().Add(-time.Hour) },
	}).Sign()
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{name: "valid", path: "/customer", header: "Bearer " + good, want: http.StatusOK},
		{name: "missing", path: "/customer", want: http.StatusUnauthorized},
		{name: "wrong secret", path: "/customer", header: "Bearer " + forged, want: http.StatusUnauthorized},
		{name: "expired", path: "/customer", header: "Bearer " + expired, want: http.StatusUnauthorized},
		{name: "skipped", path: "/health/live", want: http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK && tt.path == "/customer" {
				assert.Equal(t, "order-admin", rec.Body.String())
			}
		})
	}
}

func TestWithCaller_TagsRequestLogger(t *testing.T) {
	secret := []byte("s3cret")
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "info")

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.SetRequest(c.Request().WithContext(logging.IntoContext(c.Request().Context(), logger)))
			return next(c)
		}
	})
	e.Use(ServiceToken(secret), WithCaller)
	e.GET("/customer", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("listed")
		return c.NoContent(http.StatusOK)
	})

	token, err := (&tokens.Signer{Secret: secret, Subject: "order-admin"}).Sign()
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/customer", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), `"caller":"order-admin"`)
}
