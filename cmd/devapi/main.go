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

	"gorm.io/gorm"

	"github.com/Skotchmaster/order_admin/internal/config"
	"github.com/Skotchmaster/order_admin/internal/db"
	"github.com/Skotchmaster/order_admin/internal/devapi"
	"github.com/Skotchmaster/order_admin/internal/logging"
	"github.com/Skotchmaster/order_admin/internal/mykafka"
)

func openDB(cfg *config.DevAPIConfig) (*gorm.DB, error) {
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return db.Open(ctx, cfg.DatabaseURL)
	}
	return db.OpenSQLite(cfg.SQLitePath)
}

func main() {
	cfg := config.LoadDevAPI()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	gdb, err := openDB(cfg)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	repo := &devapi.GormRepo{DB: gdb}
	if err := repo.Migrate(context.Background()); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	events := mykafka.New(cfg.KafkaBrokers)
	e := devapi.NewServer(&devapi.API{Repo: repo, Events: events}, logger, cfg.TokenSecret)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("devapi_listening", "addr", srv.Addr, "kafka", len(cfg.KafkaBrokers) > 0, "auth", len(cfg.TokenSecret) > 0)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db_close_failed", "error", err)
		}
	}
	if err := events.Close(); err != nil {
		logger.Error("kafka_close_failed", "error", err)
	}

	logger.Info("devapi stopped")
}
