package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultItemTime is the time of day given to items created from the
// per-day add menu.
const DefaultItemTime = "09:00"

// ItineraryItem is a single dated, typed entry within a trip's plan.
// Optional text fields use the empty string for "absent"; Cost and IsBooked
// are pointers because their zero values are meaningful.
type ItineraryItem struct {
	ID       uuid.UUID
	TripID   uuid.UUID
	Date     time.Time
	Time     string // "HH:MM", empty when unscheduled
	Type     ActivityType
	Title    string
	Location string
	Notes    string
	Cost     *float64
	Currency string
	IsBooked *bool
	Details  Details
}

// NewItemDraft returns the blank item the add menu creates for the given
// day: empty title, the default time, and empty details.
func NewItemDraft(tripID uuid.UUID, date time.Time, t ActivityType) ItineraryItem {
	if t == "" {
		t = ActivityActivity
	}
	return ItineraryItem{
		TripID:  tripID,
		Date:    TruncateDate(date),
		Time:    DefaultItemTime,
		Type:    t,
		Details: Details{},
	}
}

// ItemPatch is a partial update of an ItineraryItem. Nil fields are left
// untouched. A non-nil Details replaces the item's details wholesale; use
// Details.Merge to build a merged value first.
type ItemPatch struct {
	Date     *time.Time
	Time     *string
	Type     *ActivityType
	Title    *string
	Location *string
	Notes    *string
	Cost     *float64
	Currency *string
	IsBooked *bool
	Details  *Details
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Date == nil && p.Time == nil && p.Type == nil && p.Title == nil &&
		p.Location == nil && p.Notes == nil && p.Cost == nil && p.Currency == nil &&
		p.IsBooked == nil && p.Details == nil
}

// Apply returns a copy of item with every non-nil patch field merged over it.
// When the type changes, the details are re-keyed for the new variant so no
// field is dropped.
func (p ItemPatch) Apply(item ItineraryItem) ItineraryItem {
	out := item
	if p.Date != nil {
		out.Date = TruncateDate(*p.Date)
	}
	if p.Time != nil {
		out.Time = *p.Time
	}
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Location != nil {
		out.Location = *p.Location
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.Cost != nil {
		c := *p.Cost
		out.Cost = &c
	}
	if p.Currency != nil {
		out.Currency = *p.Currency
	}
	if p.IsBooked != nil {
		b := *p.IsBooked
		out.IsBooked = &b
	}
	if p.Details != nil {
		out.Details = p.Details.Clone()
	}
	if p.Type != nil || p.Details != nil {
		out.Details = DetailsFromMap(out.Type, out.Details.Map())
	}
	return out
}

// ValidateFor checks item against the rules every stored item obeys: a known
// type, an "HH:MM" or empty time, and a date inside trip. Violations wrap
// ErrValidation.
func (item ItineraryItem) ValidateFor(trip Trip) error {
	if !item.Type.Valid() {
		return fmt.Errorf("%w: unknown activity type %q", ErrValidation, item.Type)
	}
	if !ValidClock(item.Time) {
		return fmt.Errorf("%w: time %q is not HH:MM", ErrValidation, item.Time)
	}
	if !trip.Contains(item.Date) {
		return fmt.Errorf("%w: date %s is outside the trip (%s to %s)", ErrValidation,
			DateKey(item.Date), DateKey(trip.StartDate), DateKey(trip.EndDate))
	}
	return nil
}

// ValidateFor checks only the fields the patch sets, using the same rules as
// ItineraryItem.ValidateFor.
func (p ItemPatch) ValidateFor(trip Trip) error {
	if p.Type != nil && !p.Type.Valid() {
		return fmt.Errorf("%w: unknown activity type %q", ErrValidation, *p.Type)
	}
	if p.Time != nil && !ValidClock(*p.Time) {
		return fmt.Errorf("%w: time %q is not HH:MM", ErrValidation, *p.Time)
	}
	if p.Date != nil && !trip.Contains(*p.Date) {
		return fmt.Errorf("%w: date %s is outside the trip (%s to %s)", ErrValidation,
			DateKey(*p.Date), DateKey(trip.StartDate), DateKey(trip.EndDate))
	}
	return nil
}
