package domain

import "strings"

// ActivityType is the closed classification of an itinerary item.
type ActivityType string

const (
	ActivityFlight   ActivityType = "FLIGHT"
	ActivityHotel    ActivityType = "HOTEL"
	ActivityActivity ActivityType = "ACTIVITY"
	ActivityFood     ActivityType = "FOOD"
	ActivityTransit  ActivityType = "TRANSIT"
	ActivityNote     ActivityType = "NOTE"
	ActivityCustom   ActivityType = "CUSTOM"
)

// ActivityTypes lists every variant in display order.
var ActivityTypes = []ActivityType{
	ActivityFlight,
	ActivityHotel,
	ActivityActivity,
	ActivityFood,
	ActivityTransit,
	ActivityNote,
	ActivityCustom,
}

// Valid reports whether a is one of the known variants.
func (a ActivityType) Valid() bool {
	for _, t := range ActivityTypes {
		if a == t {
			return true
		}
	}
	return false
}

// ParseActivityType maps s case-insensitively onto a variant.
// The second result is false when s names no known variant.
func ParseActivityType(s string) (ActivityType, bool) {
	a := ActivityType(strings.ToUpper(strings.TrimSpace(s)))
	return a, a.Valid()
}
