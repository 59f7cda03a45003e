// Package export renders a trip's day-grouped itinerary as CSV or PDF.
package export

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/tripflow/planner/internal/domain"
	"github.com/tripflow/planner/internal/planner"
)

// Row is one line of the flat export: one row per item, with the trip and
// day columns repeated. A day without items yields one row whose item
// columns are empty. Unplaced items come last with Day 0.
type Row struct {
	TripID    string
	TripTitle string
	Day       int
	Date      string // "2006-01-02"

	Time     string
	Type     string
	Title    string
	Location string
	Notes    string
	Cost     string
	Currency string
	Booked   string
	Details  string // "key=value" pairs joined with "|", keys sorted
}

// Build flattens view into export rows.
func Build(trip domain.Trip, view planner.View) []Row {
	var rows []Row
	base := Row{TripID: trip.ID.String(), TripTitle: trip.Title}

	for i, d := range view.Days {
		r := base
		r.Day = i + 1
		r.Date = domain.DateKey(d.Date)
		if len(d.Items) == 0 {
			rows = append(rows, r)
			continue
		}
		for _, it := range d.Items {
			rows = append(rows, fillItem(r, it))
		}
	}
	for _, it := range view.Unplaced {
		r := base
		r.Date = domain.DateKey(it.Date)
		rows = append(rows, fillItem(r, it))
	}
	return rows
}

func fillItem(r Row, it domain.ItineraryItem) Row {
	r.Time = it.Time
	r.Type = string(it.Type)
	r.Title = it.Title
	r.Location = it.Location
	r.Notes = it.Notes
	r.Currency = it.Currency
	if it.Cost != nil {
		r.Cost = strconv.FormatFloat(*it.Cost, 'f', 2, 64)
	}
	if it.IsBooked != nil {
		r.Booked = strconv.FormatBool(*it.IsBooked)
	}
	r.Details = formatDetails(it.Details)
	return r
}

func formatDetails(d domain.Details) string {
	m := d.Map()
	parts := make([]string, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, m[k]))
	}
	return strings.Join(parts, "|")
}
