package planner

import (
	"cmp"
	"slices"
	"time"

	"github.com/tripflow/planner/internal/domain"
)

// Day is one calendar date of a trip and the items scheduled on it.
type Day struct {
	Date  time.Time
	Items []domain.ItineraryItem
}

// View is the day-by-day presentation of a trip's itinerary.
type View struct {
	Days []Day
	// Unplaced holds items dated outside the trip, in date then time order.
	Unplaced []domain.ItineraryItem
}

// Days groups items into one bucket per calendar date of trip, first to last
// day inclusive. Empty days are kept. Within a day items are ordered by time,
// untimed first, ties keeping their input order.
func Days(trip domain.Trip, items []domain.ItineraryItem) View {
	byDate := make(map[string][]domain.ItineraryItem)
	for _, it := range items {
		key := domain.DateKey(it.Date)
		byDate[key] = append(byDate[key], it)
	}

	dates := domain.DateRange(trip.StartDate, trip.EndDate)
	view := View{Days: make([]Day, 0, len(dates))}
	for _, d := range dates {
		key := domain.DateKey(d)
		bucket := byDate[key]
		delete(byDate, key)

		sortByTime(bucket)
		if bucket == nil {
			bucket = []domain.ItineraryItem{}
		}
		view.Days = append(view.Days, Day{Date: d, Items: bucket})
	}

	for _, rest := range byDate {
		view.Unplaced = append(view.Unplaced, rest...)
	}
	slices.SortStableFunc(view.Unplaced, func(a, b domain.ItineraryItem) int {
		return cmp.Or(a.Date.Compare(b.Date), cmp.Compare(a.Time, b.Time))
	})
	return view
}

// sortByTime orders a day's items by "HH:MM". Lexicographic order is
// chronological for that format and puts the empty time first.
func sortByTime(items []domain.ItineraryItem) {
	slices.SortStableFunc(items, func(a, b domain.ItineraryItem) int {
		return cmp.Compare(a.Time, b.Time)
	})
}
