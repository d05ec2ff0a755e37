package devapi

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/order_admin/internal/jwtmiddleware"
	loggingmw "github.com/Skotchmaster/order_admin/internal/middleware/logging"
)

const Prefix = "/api"

// NewServer builds the echo instance for the API. A non-empty tokenSecret
// requires every resource call to carry a service token.
func NewServer(h *API, logger *slog.Logger, tokenSecret []byte) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	var mw []echo.MiddlewareFunc
	if len(tokenSecret) > 0 {
		mw = append(mw, jwtmiddleware.ServiceToken(tokenSecret), jwtmiddleware.WithCaller)
	}
	Register(e, Prefix, h, mw...)
	return e
}
