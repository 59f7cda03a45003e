package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tripflow/planner/internal/middleware"
	"github.com/tripflow/planner/openapi"
)

// RouterOptions configures the middleware stack around the API routes.
type RouterOptions struct {
	Logger        *slog.Logger
	CORSOrigins   []string
	MaxBodyBytes  int64
	DefaultUserID string
}

// NewRouter mounts every API route on a chi router.
// Middleware order: RequestID → RealIP → SlogLogger → Recoverer → CORS →
// MaxBodySize → UserID.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(opts.CORSOrigins))
	if opts.MaxBodyBytes > 0 {
		r.Use(middleware.NewMaxBodySizeHandler(opts.MaxBodyBytes))
	}
	r.Use(middleware.NewUserID(opts.DefaultUserID))

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)
	r.Get("/activity-types", s.ListActivityTypes)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Get("/itinerary", s.GetItinerary)
			r.Get("/items", s.ListItems)
			r.Post("/items", s.AddItem)
			r.Patch("/items/{itemID}", s.UpdateItem)
			r.Patch("/items/{itemID}/details", s.UpdateItemDetails)
			r.Delete("/items/{itemID}", s.DeleteItem)
			r.Post("/generate", s.GenerateItinerary)
			r.Get("/export", s.ExportItinerary)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})
	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openapi.Document)
}
