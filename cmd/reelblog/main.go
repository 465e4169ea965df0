// ReelBlog is a server-rendered blog: published posts with categories and
// comments on the public side, author tooling and a staff admin area behind
// authentication.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reelblog/internal/config"
	"reelblog/internal/database"
	"reelblog/internal/handlers"
	"reelblog/internal/render"
	"reelblog/internal/router"
	"reelblog/internal/session"
	"reelblog/internal/store"
)

// shutdownTimeout is how long in-flight requests get to finish on SIGTERM.
const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	log := slog.New(handler)
	slog.SetDefault(log)

	log.Info("starting reelblog", "env", cfg.Env, "addr", cfg.Addr())

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}

	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			return err
		}
	}

	redisClient, err := session.Connect(cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		return err
	}
	defer redisClient.Close()
	log.Info("redis connected", "addr", cfg.RedisAddr())

	sessions := session.NewStore(redisClient, !cfg.IsDev())

	renderer, err := render.New()
	if err != nil {
		return err
	}

	h := handlers.New(
		log,
		cfg,
		renderer,
		sessions,
		store.NewUserStore(db),
		store.NewPostStore(db),
		store.NewCommentStore(db),
		store.NewCategoryStore(db),
	)

	mux, cleanup := router.New(cfg, h, sessions)
	defer cleanup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
