package jwtmiddleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/order_admin/internal/logging"
	"github.com/Skotchmaster/order_admin/internal/tokens"
)

const ContextKey = "service"

// ServiceToken requires a bearer token signed with secret. Paths in
// skipPaths pass through untouched.
func ServiceToken(secret []byte, skipPaths ...string) echo.MiddlewareFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return echojwt.WithConfig(echojwt.Config{
		Skipper: func(c echo.Context) bool {
			_, ok := skip[c.Request().URL.Path]
			return ok
		},
		SigningKey:    secret,
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		ContextKey:    ContextKey,
		TokenLookup:   "header:Authorization:Bearer ",
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(tokens.ServiceClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			logging.FromContext(c.Request().Context()).Warn("service_token_rejected", "status", http.StatusUnauthorized, "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid service token")
		},
	})
}

// Subject returns the subject of the verified token, if any.
func Subject(c echo.Context) string {
	tok, ok := c.Get(ContextKey).(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := tok.Claims.(*tokens.ServiceClaims)
	if !ok {
		return ""
	}
	return claims.Subject
}

// WithCaller tags the request logger with the verified token subject.
func WithCaller(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if sub := Subject(c); sub != "" {
			req := c.Request()
			ctx := req.Context()
			c.SetRequest(req.WithContext(logging.IntoContext(ctx, logging.FromContext(ctx).With("caller", sub))))
		}
		return next(c)
	}
}
