package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/tripflow/planner/internal/middleware"
	"github.com/tripflow/planner/internal/planner"
)

// openPlanner resolves the trip path parameter and returns the caller's
// planner for it.
func (s *Server) openPlanner(r *http.Request, reload bool) (*planner.Planner, error) {
	tripID, err := pathID(r, "tripID")
	if err != nil {
		return nil, err
	}
	return s.planners.Planner(r.Context(), middleware.UserID(r.Context()), tripID, reload)
}

// ListItems handles GET /trips/{tripID}/items: the stored items, date and
// time ordered.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripID")
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	if _, err := s.trips.GetByID(r.Context(), tripID); err != nil {
		s.respondErr(w, r, err, "trip not found")
		return
	}

	items, err := s.itinerary.List(r.Context(), tripID)
	if err != nil {
		s.respondErr(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, itemsToResponse(items))
}

// GetItinerary handles GET /trips/{tripID}/itinerary: the day-grouped view
// of the caller's open planner. ?reload=true discards local state first.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	reload, _ := strconv.ParseBool(r.URL.Query().Get("reload"))

	p, err := s.openPlanner(r, reload)
	if err != nil {
		s.respondErr(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, viewToResponse(p.Trip(), p.Days()))
}

// AddItem handles POST /trips/{tripID}/items. It creates a blank item of the
// requested type (ACTIVITY by default) on the requested date.
func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	var body addItemRequest
	if err := decodeJSON(r, &body); err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	kind, err := parseType(body.Type)
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	if body.Date.IsZero() {
		s.respondErr(w, r, badRequest("date is required"), "")
		return
	}

	p, err := s.openPlanner(r, false)
	if err != nil {
		s.respondErr(w, r, err, "trip not found")
		return
	}
	created, err := p.AddItem(r.Context(), body.Date.Time, kind)
	if err != nil {
		s.respondErr(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, itemToResponse(created))
}

// UpdateItem handles PATCH /trips/{tripID}/items/{itemID}. The change is
// applied to the open planner immediately; the stored copy follows.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var body updateItemRequest
	if err := decodeJSON(r, &body); err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	patch, err := body.toPatch()
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}

	s.withItem(w, r, func(p *planner.Planner, itemID uuid.UUID) {
		updated, err := p.UpdateItem(r.Context(), itemID, patch)
		if err != nil {
			s.respondErr(w, r, err, "item not found")
			return
		}
		writeJSON(w, http.StatusOK, itemToResponse(updated))
	})
}

// UpdateItemDetails handles PATCH /trips/{tripID}/items/{itemID}/details.
// The body is merged into the existing details; unnamed keys are kept.
func (s *Server) UpdateItemDetails(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := decodeJSON(r, &fields); err != nil {
		s.respondErr(w, r, err, "")
		return
	}

	s.withItem(w, r, func(p *planner.Planner, itemID uuid.UUID) {
		updated, err := p.UpdateItemDetails(r.Context(), itemID, fields)
		if err != nil {
			s.respondErr(w, r, err, "item not found")
			return
		}
		writeJSON(w, http.StatusOK, itemToResponse(updated))
	})
}

// DeleteItem handles DELETE /trips/{tripID}/items/{itemID}. Deleting an
// unknown item succeeds.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	s.withItem(w, r, func(p *planner.Planner, itemID uuid.UUID) {
		if err := p.DeleteItem(r.Context(), itemID); err != nil {
			s.respondErr(w, r, err, "item not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// withItem resolves both path parameters and the planner, then calls fn.
func (s *Server) withItem(w http.ResponseWriter, r *http.Request, fn func(*planner.Planner, uuid.UUID)) {
	itemID, err := pathID(r, "itemID")
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	p, err := s.openPlanner(r, false)
	if err != nil {
		s.respondErr(w, r, err, "trip not found")
		return
	}
	fn(p, itemID)
}
