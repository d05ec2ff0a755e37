package auth

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/order_admin/internal/hash"
	"github.com/Skotchmaster/order_admin/internal/logging"
)

// BasicAuth guards the console with a single operator account whose
// password is stored as a bcrypt hash.
func BasicAuth(user, passwordHash string, skipPaths ...string) echo.MiddlewareFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Realm: "order-admin",
		Skipper: func(c echo.Context) bool {
			_, ok := skip[c.Request().URL.Path]
			return ok
		},
		Validator: func(u, p string, c echo.Context) (bool, error) {
			userOK := subtle.ConstantTimeCompare([]byte(u), []byte(user)) == 1
			if userOK && hash.CheckPassword(passwordHash, p) {
				return true, nil
			}
			logging.FromContext(c.Request().Context()).Warn("basic_auth_failed", "user", u)
			return false, nil
		},
	})
}
