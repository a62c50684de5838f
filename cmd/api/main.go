package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vaughan-dsouza/posts-api/internal/config"
	"github.com/vaughan-dsouza/posts-api/internal/db"
	"github.com/vaughan-dsouza/posts-api/internal/handlers"
	"github.com/vaughan-dsouza/posts-api/internal/logger"
	"github.com/vaughan-dsouza/posts-api/internal/repository"
	"github.com/vaughan-dsouza/posts-api/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl := logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer func() { _ = zl.Sync() }()
	slog := zl.Sugar()

	ctx := context.Background()
	sqlDB, repo, err := openStore(ctx, cfg)
	if err != nil {
		slog.Fatalw("database unavailable", "driver", cfg.Database.Driver, "engine", cfg.Database.Engine, "error", err)
	}
	defer sqlDB.Close()
	slog.Infow("database connected", "driver", cfg.Database.Driver, "engine", cfg.Database.Engine)

	h := handlers.NewHandler(sqlDB, repo, slog)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.New(h, router.Options{Logger: slog}),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(zl),
	}

	go func() {
		slog.Infow("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Fatalw("listen", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.Infow("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Errorw("server forced to shutdown", "error", err)
	}

	slog.Infow("server exited")
}

// openStore connects with the configured engine and prepares the posts table.
func openStore(ctx context.Context, cfg *config.Config) (*sql.DB, repository.PostRepository, error) {
	if cfg.Database.Engine == config.EngineGorm {
		gdb, err := db.OpenGorm(ctx, cfg.Database, logger.Z())
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, err
		}
		return sqlDB, repository.NewGormPostRepository(gdb), nil
	}

	conn, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := db.EnsureSchema(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn.DB, repository.NewSQLPostRepository(conn), nil
}
