package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tripflow/planner/internal/export"
)

// ExportItinerary handles GET /trips/{tripID}/export. ?format=csv (default)
// or ?format=pdf selects the rendering of the caller's day view.
func (s *Server) ExportItinerary(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "pdf" {
		s.respondErr(w, r, badRequest("format must be csv or pdf"), "")
		return
	}

	p, err := s.openPlanner(r, false)
	if err != nil {
		s.respondErr(w, r, err, "trip not found")
		return
	}
	trip, view := p.Trip(), p.Days()

	// Render fully before writing so a failure can still become a 500.
	var buf bytes.Buffer
	contentType := "text/csv"
	if format == "pdf" {
		contentType = "application/pdf"
		err = export.WritePDF(&buf, trip, view)
	} else {
		err = export.WriteCSV(&buf, trip, view)
	}
	if err != nil {
		s.respondErr(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="itinerary-%s.%s"`, trip.ID, format))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
