package repo

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SeedUserID owns the illustrative trip shown by an empty local store.
const SeedUserID = "mock-user"

// SeedTripID identifies the illustrative trip of an empty local store.
var SeedTripID = uuid.MustParse("7f2c9a4e-0b1d-4c7e-9a51-000000000001")

// seedTrips returns the trip list an empty local store reports.
func seedTrips() []storedTrip {
	return []storedTrip{{
		ID:         SeedTripID,
		UserID:     SeedUserID,
		Title:      "Jordan Adventure",
		StartDate:  "2025-11-06",
		EndDate:    "2025-11-09",
		CoverImage: "https://picsum.photos/800/400",
		Notes:      "Don't forget the Jordan Pass!",
		CreatedAt:  time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
	}}
}

// seedItems returns the itinerary an empty local store reports for tripID.
// Only the seed trip has one.
func seedItems(tripID uuid.UUID) []storedItem {
	if tripID != SeedTripID {
		return nil
	}
	item := func(n int, date, clock, kind, title, location string, details map[string]any) storedItem {
		return storedItem{
			ID:       uuid.MustParse(fmt.Sprintf("7f2c9a4e-0b1d-4c7e-9a51-%012d", n)),
			TripID:   SeedTripID,
			Date:     date,
			Time:     clock,
			Type:     kind,
			Title:    title,
			Location: location,
			Details:  details,
		}
	}
	return []storedItem{
		item(101, "2025-11-06", "07:00", "TRANSIT", "Head to RUH Airport", "Riyadh", nil),
		item(102, "2025-11-06", "12:35", "FLIGHT", "Flight to Amman", "", map[string]any{
			"flightNumber": "SV 123",
			"from":         "RUH",
			"to":           "AMM",
		}),
		item(103, "2025-11-06", "13:00", "TRANSIT", "Rental Car Pick-up", "AMM Airport", nil),
		item(104, "2025-11-06", "15:30", "HOTEL", "Mövenpick Petra", "Tourism St, Wadi Musa 71810", nil),
		item(201, "2025-11-07", "07:30", "ACTIVITY", "Petra Exploration", "Visitor Center", nil),
		item(202, "2025-11-07", "19:00", "FOOD", "Dinner @ Hotel", "Mövenpick", nil),
	}
}
