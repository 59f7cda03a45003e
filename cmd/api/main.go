// Package main is the entry point for the TripFlow planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/tripflow/planner/internal/app"
	"github.com/tripflow/planner/internal/config"
	"github.com/tripflow/planner/internal/handler"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := app.NewLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	// --- Backend and services ---------------------------------------------
	// Without DATABASE_URL the planner runs on the local file store.
	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	a, closeBackend, err := app.Build(startCtx, cfg, logger)
	cancelStart()
	if err != nil {
		slog.Error("failed to start planner", "error", err)
		os.Exit(1)
	}
	defer closeBackend()

	// --- Router -----------------------------------------------------------
	srvHandler := handler.NewServer(handler.Deps{
		Trips:     a.Trips,
		Itinerary: a.Itinerary,
		Planners:  a.Sessions,
		Generator: a.Generator,
		Mode:      a.Mode,
		Logger:    logger,
	})
	router := handler.NewRouter(srvHandler, handler.RouterOptions{
		Logger:        logger,
		CORSOrigins:   cfg.CORSOrigins,
		MaxBodyBytes:  cfg.MaxBodyBytes,
		DefaultUserID: cfg.DefaultUserID,
	})

	// --- HTTP Server ------------------------------------------------------
	// Generation waits on the model, so writes get a longer timeout than reads.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "mode", a.Mode, "ai_enabled", a.Generator.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
