package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/xiuxian-wiki/encyclopedia/apiclient"
	"github.com/xiuxian-wiki/encyclopedia/app"
	"github.com/xiuxian-wiki/encyclopedia/app/middleware"
	"github.com/xiuxian-wiki/encyclopedia/auth"
	"github.com/xiuxian-wiki/encyclopedia/config"
	"github.com/xiuxian-wiki/encyclopedia/i18n"
	"github.com/xiuxian-wiki/encyclopedia/models"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	log, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.UsesDefaultSecret() {
		log.Warn("JWT_SECRET is not set; using the built-in placeholder secret")
	}

	db, err := models.Open(cfg.DatabaseDriver, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() {
		log.Info("closing database")
		if err := sqlDB.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()
	if err := models.Migrate(db); err != nil {
		return err
	}

	lang, ok := i18n.ParseTag(cfg.DefaultLang)
	if !ok {
		lang = language.Chinese
	}

	metrics := middleware.NewMetrics()
	metrics.Registry().MustRegister(collectors.NewDBStatsCollector(sqlDB, "encyclopedia"))

	handler, err := app.NewRouter(app.Deps{
		Records:     models.NewRecordsRepository(db),
		Users:       models.NewUsersRepository(db),
		Tokens:      auth.NewTokens(cfg.JWTSecret),
		DB:          sqlDB,
		Metrics:     metrics,
		API:         apiclient.New(cfg.APIBaseURL),
		DefaultLang: lang,
		Log:         log,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.HTTPAddr), zap.String("driver", cfg.DatabaseDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("graceful shutdown timed out, forcing close", zap.Error(err))
		return srv.Close()
	}
	log.Info("server stopped")
	return nil
}
