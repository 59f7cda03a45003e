// Package handler implements the HTTP API of the TripFlow planner.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, trip.go, itinerary.go, ...) but share the Server dependencies.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tripflow/planner/internal/domain"
	"github.com/tripflow/planner/internal/planner"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching storage or the service layer.
type TripServicer interface {
	List(ctx context.Context, userID string) ([]domain.Trip, error)
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

// ItineraryServicer reads a trip's stored items, bypassing any open planner.
type ItineraryServicer interface {
	List(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error)
}

// PlannerProvider hands out the caller's open planner for a trip.
// *planner.Sessions satisfies it.
type PlannerProvider interface {
	Planner(ctx context.Context, userID string, tripID uuid.UUID, reload bool) (*planner.Planner, error)
}

// ItineraryGenerator produces draft items from a free-text request.
// *ai.Generator satisfies it.
type ItineraryGenerator interface {
	Enabled() bool
	Generate(ctx context.Context, tripID uuid.UUID, prompt string, startDate time.Time) ([]domain.ItineraryItem, error)
}

// Deps lists everything a Server needs. Generator may be nil.
type Deps struct {
	Trips     TripServicer
	Itinerary ItineraryServicer
	Planners  PlannerProvider
	Generator ItineraryGenerator
	Mode      string // persistence mode reported by /healthz
	Logger    *slog.Logger
}

// Server holds the dependencies of every handler.
type Server struct {
	trips     TripServicer
	itinerary ItineraryServicer
	planners  PlannerProvider
	generator ItineraryGenerator
	mode      string
	log       *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		trips:     d.Trips,
		itinerary: d.Itinerary,
		planners:  d.Planners,
		generator: d.Generator,
		mode:      d.Mode,
		log:       logger,
	}
}
