package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripflow/planner/internal/middleware"
)

// ListTrips handles GET /trips. It lists the caller's trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		s.respondErr(w, r, err, "trip not found")
		return
	}

	data := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		data = append(data, tripToResponse(t))
	}
	writeJSON(w, http.StatusOK, data)
}

// CreateTrip handles POST /trips. Omitted dates default to today through
// today plus three days.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body createTripRequest
	if err := decodeJSON(r, &body); err != nil {
		s.respondErr(w, r, err, "")
		return
	}

	created, err := s.trips.Create(r.Context(), body.toDomain(middleware.UserID(r.Context())))
	if err != nil {
		s.respondErr(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tripID")
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// pathID parses the named chi URL parameter as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, badRequest("invalid " + name)
	}
	return id, nil
}
