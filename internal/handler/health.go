package handler

import "net/http"

type healthResponse struct {
	Status    string `json:"status"`
	Mode      string `json:"mode"`
	AIEnabled bool   `json:"ai_enabled"`
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with the persistence mode and whether generation is available.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Mode:      s.mode,
		AIEnabled: s.generator != nil && s.generator.Enabled(),
	})
}
