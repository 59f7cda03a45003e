// Package app assembles the planner's dependencies from a Config. Both the
// API server and tripctl start from here so they see the same backend.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tripflow/planner/internal/ai"
	"github.com/tripflow/planner/internal/config"
	"github.com/tripflow/planner/internal/planner"
	"github.com/tripflow/planner/internal/repo"
	"github.com/tripflow/planner/internal/service"
)

// App is the wired application.
type App struct {
	Mode      string
	Trips     *service.TripService
	Itinerary *service.ItineraryService
	Sessions  *planner.Sessions
	Generator *ai.Generator
	Logger    *slog.Logger
}

// NewLogger returns a JSON logger at the named level; unknown levels mean info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Build opens the configured backend and wires services on top of it.
// The returned func releases the backend and must be called on exit.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	strategy := repo.SelectStrategy(cfg.DatabaseURL, cfg.LocalStoreDir)
	gw, closeFn, err := strategy.Open(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("app.Build: %w", err)
	}
	logger.Info("persistence backend ready", "mode", strategy.Name())

	gen, err := ai.New(ctx, ai.Config{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel})
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("app.Build: %w", err)
	}
	if !gen.Enabled() {
		logger.Warn("no Gemini API key configured; itinerary generation disabled")
	}

	itinerary := service.NewItineraryService(gw.Trips, gw.Itinerary)
	return &App{
		Mode:      strategy.Name(),
		Trips:     service.NewTripService(gw.Trips),
		Itinerary: itinerary,
		Sessions:  planner.NewSessions(itinerary, logger),
		Generator: gen,
		Logger:    logger,
	}, closeFn, nil
}
