// Package domain contains the core data types for the TripFlow planner.
// This package depends only on uuid and is imported by every other
// internal package (repo, service, planner, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxTripDays caps the calendar days one trip may cover, ends included.
const MaxTripDays = 366

// Trip is a user-owned container for a date-bounded itinerary.
// StartDate and EndDate are calendar dates (midnight UTC) and StartDate is
// never after EndDate for a trip accepted by the service layer.
type Trip struct {
	ID         uuid.UUID
	UserID     string
	Title      string
	StartDate  time.Time
	EndDate    time.Time
	CoverImage string // empty when the trip has no cover
	Notes      string
	CreatedAt  time.Time
}

// Contains reports whether the calendar date d falls inside the trip's
// inclusive [StartDate, EndDate] range.
func (t Trip) Contains(d time.Time) bool {
	d = TruncateDate(d)
	return !d.Before(TruncateDate(t.StartDate)) && !d.After(TruncateDate(t.EndDate))
}

// Days returns the number of calendar days covered by the trip, counting
// both ends. A trip that starts and ends on the same day has one day.
func (t Trip) Days() int {
	return DaysBetween(t.StartDate, t.EndDate) + 1
}
