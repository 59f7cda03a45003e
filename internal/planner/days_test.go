package planner_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripflow/planner/internal/domain"
	"github.com/tripflow/planner/internal/planner"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func tripFromTo(t *testing.T, start, end string) domain.Trip {
	return domain.Trip{ID: uuid.New(), Title: "trip", StartDate: day(t, start), EndDate: day(t, end)}
}

func itemAt(t *testing.T, date, clock, title string) domain.ItineraryItem {
	return domain.ItineraryItem{ID: uuid.New(), Date: day(t, date), Time: clock, Type: domain.ActivityActivity, Title: title}
}

func titles(items []domain.ItineraryItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}

func TestDays_FourDayTripWithOneItem(t *testing.T) {
	trip := tripFromTo(t, "2025-11-06", "2025-11-09")
	item := itemAt(t, "2025-11-07", "10:00", "Petra")

	view := planner.Days(trip, []domain.ItineraryItem{item})

	require.Len(t, view.Days, 4)
	want := []string{"2025-11-06", "2025-11-07", "2025-11-08", "2025-11-09"}
	for i, d := range view.Days {
		assert.Equal(t, want[i], domain.DateKey(d.Date))
	}
	assert.Empty(t, view.Days[0].Items)
	assert.Equal(t, []domain.ItineraryItem{item}, view.Days[1].Items)
	assert.Empty(t, view.Days[2].Items)
	assert.Empty(t, view.Days[3].Items)
	assert.Empty(t, view.Unplaced)
}

func TestDays_EmptyDaysAreNonNil(t *testing.T) {
	view := planner.Days(tripFromTo(t, "2025-01-01", "2025-01-02"), nil)

	for _, d := range view.Days {
		assert.NotNil(t, d.Items)
	}
}

func TestDays_BucketCountMatchesRange(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"2025-11-06", "2025-11-06", 1},
		{"2025-02-27", "2025-03-02", 4},
		{"2024-02-27", "2024-03-02", 5},
		{"2025-12-30", "2026-01-02", 4},
	}
	for _, tc := range tests {
		trip := tripFromTo(t, tc.start, tc.end)
		view := planner.Days(trip, nil)
		assert.Len(t, view.Days, tc.want, "%s..%s", tc.start, tc.end)
		assert.Equal(t, domain.DaysBetween(trip.StartDate, trip.EndDate)+1, len(view.Days))
	}
}

func TestDays_EachItemInExactlyOneBucket(t *testing.T) {
	trip := tripFromTo(t, "2025-11-06", "2025-11-09")
	items := []domain.ItineraryItem{
		itemAt(t, "2025-11-09", "", "a"),
		itemAt(t, "2025-11-06", "08:00", "b"),
		itemAt(t, "2025-11-08", "23:59", "c"),
		itemAt(t, "2025-11-06", "07:00", "d"),
	}

	view := planner.Days(trip, items)

	seen := map[uuid.UUID]int{}
	for _, d := range view.Days {
		for _, it := range d.Items {
			seen[it.ID]++
			assert.Equal(t, domain.DateKey(d.Date), domain.DateKey(it.Date))
		}
	}
	require.Len(t, seen, len(items))
	for _, n := range seen {
		assert.Equal(t, 1, n)
	}
}

func TestDays_SortsByTimeUntimedFirstStable(t *testing.T) {
	trip := tripFromTo(t, "2025-11-06", "2025-11-06")
	items := []domain.ItineraryItem{
		itemAt(t, "2025-11-06", "19:00", "dinner"),
		itemAt(t, "2025-11-06", "07:30", "first"),
		itemAt(t, "2025-11-06", "", "note"),
		itemAt(t, "2025-11-06", "07:30", "second"),
	}

	view := planner.Days(trip, items)

	assert.Equal(t, []string{"note", "first", "second", "dinner"}, titles(view.Days[0].Items))
	assert.Equal(t, "dinner", items[0].Title, "input slice must not be reordered")
}

func TestDays_OutOfRangeItemsAreUnplaced(t *testing.T) {
	trip := tripFromTo(t, "2025-11-06", "2025-11-07")
	items := []domain.ItineraryItem{
		itemAt(t, "2025-11-10", "09:00", "late"),
		itemAt(t, "2025-11-06", "09:00", "inside"),
		itemAt(t, "2025-11-01", "09:00", "early"),
	}

	view := planner.Days(trip, items)

	assert.Equal(t, []string{"inside"}, titles(view.Days[0].Items))
	assert.Equal(t, []string{"early", "late"}, titles(view.Unplaced))
}

func TestDays_EndBeforeStartYieldsOneDay(t *testing.T) {
	view := planner.Days(tripFromTo(t, "2025-11-09", "2025-11-06"), nil)

	require.Len(t, view.Days, 1)
	assert.Equal(t, "2025-11-09", domain.DateKey(view.Days[0].Date))
}
