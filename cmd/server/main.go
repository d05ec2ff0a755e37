package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/order_admin/internal/apiclient"
	"github.com/Skotchmaster/order_admin/internal/config"
	"github.com/Skotchmaster/order_admin/internal/logging"
	"github.com/Skotchmaster/order_admin/internal/session"
	"github.com/Skotchmaster/order_admin/internal/tokens"
	httpserver "github.com/Skotchmaster/order_admin/internal/transport/http"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.APIBaseURL, "API_BASE_URL")
	config.MustPair(cfg.AdminUser, "ADMIN_USER", cfg.AdminPasswordHash, "ADMIN_PASSWORD_HASH")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	opts := []apiclient.Option{apiclient.WithTimeout(cfg.APITimeout)}
	if len(cfg.APITokenSecret) > 0 {
		opts = append(opts, apiclient.WithSigner(&tokens.Signer{Secret: cfg.APITokenSecret, Subject: cfg.ServiceName}))
	}
	client := apiclient.NewClient(cfg.APIBaseURL, opts...)

	store := session.NewStore(session.API{
		Customers: client.Customers(),
		Products:  client.Products(),
		Orders:    client.Orders(),
	}, cfg.SessionTTL, session.WithSecureCookie(cfg.CSRFSecure), session.WithMaxSessions(cfg.SessionMax))

	e, err := httpserver.NewConsole(httpserver.ConsoleOptions{
		Logger:            logger,
		Sessions:          store,
		API:               client,
		AdminUser:         cfg.AdminUser,
		AdminPasswordHash: cfg.AdminPasswordHash,
		CSRFSecure:        cfg.CSRFSecure,
	})
	if err != nil {
		log.Fatalf("build console: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go store.Run(logging.IntoContext(ctx, logger))

	srv := &http.Server{
		Addr:              cfg.AdminAddr,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("console_listening", "addr", srv.Addr, "api", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	logger.Info("shutdown_complete")
}
