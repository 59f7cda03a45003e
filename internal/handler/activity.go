package handler

import (
	"net/http"

	"github.com/tripflow/planner/internal/domain"
)

type menuOption struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

type fieldResponse struct {
	Key         string `json:"key"`
	Placeholder string `json:"placeholder"`
	Detail      bool   `json:"detail"`
}

type activityTypesResponse struct {
	Types   []string                   `json:"types"`
	Menu    []menuOption               `json:"menu"`
	Layouts map[string][]fieldResponse `json:"layouts"`
}

// ListActivityTypes handles GET /activity-types: every variant, the add
// menu, and the editable fields of each variant.
func (s *Server) ListActivityTypes(w http.ResponseWriter, _ *http.Request) {
	resp := activityTypesResponse{
		Types:   make([]string, 0, len(domain.ActivityTypes)),
		Menu:    make([]menuOption, 0, len(domain.AddMenu)),
		Layouts: make(map[string][]fieldResponse, len(domain.ActivityTypes)),
	}
	for _, t := range domain.ActivityTypes {
		resp.Types = append(resp.Types, string(t))

		var fields []fieldResponse
		for _, f := range domain.FieldLayout(t) {
			fields = append(fields, fieldResponse{Key: f.Key, Placeholder: f.Placeholder, Detail: f.Detail})
		}
		resp.Layouts[string(t)] = fields
	}
	for _, m := range domain.AddMenu {
		resp.Menu = append(resp.Menu, menuOption{Type: string(m.Type), Label: m.Label})
	}
	writeJSON(w, http.StatusOK, resp)
}
