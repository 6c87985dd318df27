// @title Pet Vaccination Tracker API
// @version 1.0
// @description Perfiles de mascotas, historial de vacunas, catálogo de protocolos y alertas de vacunación.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-vaccination-tracker/internal/adapters/auth/static"
	pg "pet-vaccination-tracker/internal/adapters/storage/postgres"
	"pet-vaccination-tracker/internal/domain/vaccination"
	"pet-vaccination-tracker/internal/platform/config"
	"pet-vaccination-tracker/internal/platform/logger"
	"pet-vaccination-tracker/internal/ports/auth"
	"pet-vaccination-tracker/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid configuration", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, App: cfg.AppName})
	if z, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = z.Sync() }()
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := loadCatalog(cfg.ProtocolsFile)
	if err != nil {
		return err
	}

	var verifier auth.AuthVerifier // nil = modo dev con X-Debug-User-ID
	if cfg.AuthTokens != "" {
		v, err := static.Parse(cfg.AuthTokens)
		if err != nil {
			return err
		}
		verifier = v
	} else {
		log.Warn("AUTH_TOKENS not set; accepting X-Debug-User-ID header (dev mode)", nil)
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := pg.Migrate(ctx, db)
		if err != nil {
			return err
		}
		log.Info("postgres ready", map[string]any{"migrations_applied": applied})
	} else {
		log.Info("DB_DSN not set; using in-memory storage", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier:      verifier,
		DB:                db,
		Logger:            log,
		Catalog:           catalog,
		AlertsConcurrency: cfg.AlertsConcurrency,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "protocols": len(catalog.All())})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadCatalog(path string) (*vaccination.Catalog, error) {
	if path == "" {
		return vaccination.DefaultCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return vaccination.LoadCatalog(f)
}
