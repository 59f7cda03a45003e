package handler

import (
	"net/http"
	"strings"
)

// GenerateItinerary handles POST /trips/{tripID}/generate. The model's drafts
// are persisted one by one into the caller's planner; drafts that fail to
// save are counted, not fatal. Without an AI key nothing is generated.
func (s *Server) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if err := decodeJSON(r, &body); err != nil {
		s.respondErr(w, r, err, "")
		return
	}
	prompt := strings.TrimSpace(body.Prompt)
	if prompt == "" {
		s.respondErr(w, r, badRequest("prompt is required"), "")
		return
	}

	p, err := s.openPlanner(r, false)
	if err != nil {
		s.respondErr(w, r, err, "trip not found")
		return
	}

	resp := generateResponse{Added: []itemResponse{}}
	if s.generator == nil || !s.generator.Enabled() {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	resp.AIEnabled = true

	trip := p.Trip()
	drafts, err := s.generator.Generate(r.Context(), trip.ID, prompt, trip.StartDate)
	if err != nil {
		s.log.ErrorContext(r.Context(), "itinerary generation failed",
			"trip_id", trip.ID.String(),
			"error", err,
		)
		writeError(w, http.StatusBadGateway, "ai_unavailable", "itinerary generation failed")
		return
	}

	added, failed := p.AddGenerated(r.Context(), drafts)
	resp.Added = itemsToResponse(added)
	resp.Failed = failed
	writeJSON(w, http.StatusOK, resp)
}
