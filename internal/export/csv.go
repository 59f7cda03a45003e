package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tripflow/planner/internal/domain"
	"github.com/tripflow/planner/internal/planner"
)

// csvHeaders is the first record of every CSV export.
var csvHeaders = []string{
	"trip_id", "trip_title", "day", "date",
	"time", "type", "title", "location", "notes",
	"cost", "currency", "booked", "details",
}

// WriteCSV writes the itinerary as CSV with a header record.
func WriteCSV(w io.Writer, trip domain.Trip, view planner.View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	for _, r := range Build(trip, view) {
		if err := cw.Write(r.record()); err != nil {
			return fmt.Errorf("export.WriteCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	return nil
}

func (r Row) record() []string {
	day := ""
	if r.Day > 0 {
		day = strconv.Itoa(r.Day)
	}
	return []string{
		r.TripID, r.TripTitle, day, r.Date,
		r.Time, r.Type, r.Title, r.Location, r.Notes,
		r.Cost, r.Currency, r.Booked, r.Details,
	}
}
