package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/order_admin/internal/handlers"
	"github.com/Skotchmaster/order_admin/internal/middleware/auth"
	"github.com/Skotchmaster/order_admin/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/order_admin/internal/middleware/logging"
	"github.com/Skotchmaster/order_admin/internal/session"
)

type ConsoleOptions struct {
	Logger   *slog.Logger
	Sessions *session.Store

	// API backs the readiness check; nil reports ready unconditionally.
	API Pinger

	// Basic auth is enabled when both are set.
	AdminUser         string
	AdminPasswordHash string

	CSRFSecure bool
}

func NewConsole(opts ConsoleOptions) (*echo.Echo, error) {
	renderer, err := handlers.NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(opts.Logger))
	e.Use(echomw.Secure())
	if opts.AdminUser != "" && opts.AdminPasswordHash != "" {
		e.Use(auth.BasicAuth(opts.AdminUser, opts.AdminPasswordHash, HealthPaths...))
	}
	e.Use(csrf.Middleware(csrf.Config{Secure: opts.CSRFSecure, SkipPaths: HealthPaths}))

	Register(e, &Deps{Console: &handlers.ConsoleHandler{Sessions: opts.Sessions}, API: opts.API})
	return e, nil
}
