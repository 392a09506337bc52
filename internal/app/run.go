package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/martinezmaria/sqlalchemy-challenge/internal/config"
	"github.com/martinezmaria/sqlalchemy-challenge/internal/db"
	"github.com/martinezmaria/sqlalchemy-challenge/internal/httpapi"
	"github.com/martinezmaria/sqlalchemy-challenge/internal/modules/climate"
	"github.com/martinezmaria/sqlalchemy-challenge/internal/modules/climate/controller"
)

func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"debug", cfg.Debug,
		"dbDriver", cfg.Driver,
		"sqlitePath", cfg.Path,
		"dbMaxOpenConns", cfg.MaxOpenConns,
		"dbMaxIdleConns", cfg.MaxIdleConns,
		"dbConnMaxLifetime", cfg.ConnMaxLifetime,
		"dbLogSQL", cfg.LogSQL,
		"cutoffDate", cfg.CutoffDate,
		"tobsStation", cfg.TobsStation,
	)

	dbConn, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(dbConn); closeErr != nil {
			slog.Error("db close", "error", closeErr)
		}
	}()

	mux, err := newMux(ctx, cfg, dbConn)
	if err != nil {
		return err
	}
	srv := httpapi.NewServer(cfg, mux)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}

// newMux checks the store has the climate tables and wires every route.
func newMux(ctx context.Context, cfg config.Config, dbConn *sql.DB) (*http.ServeMux, error) {
	if err := db.VerifyTables(ctx, dbConn, climate.Tables...); err != nil {
		return nil, fmt.Errorf("climate store %s: %w", cfg.Path, err)
	}
	slog.Info("database connection successful")

	mux := httpapi.NewMux(dbConn)
	opts := controller.Options{
		CutoffDate:  cfg.CutoffDate,
		TobsStation: cfg.TobsStation,
	}
	if err := climate.RegisterFeature(mux, dbConn, opts); err != nil {
		return nil, err
	}

	if cfg.Debug {
		if err := httpapi.AttachDebugRoutes(mux, dbConn, cfg.Path); err != nil {
			return nil, err
		}
		slog.Warn("debug routes enabled", "prefix", "/debug/")
	}
	return mux, nil
}
