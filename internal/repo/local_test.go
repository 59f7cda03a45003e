package repo_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripflow/planner/internal/domain"
	"github.com/tripflow/planner/internal/kv"
	"github.com/tripflow/planner/internal/repo"
	"github.com/tripflow/planner/testutil"
)

// newLocalRepos returns offline-mode repos over a fresh store in a temp dir.
func newLocalRepos(t *testing.T) (repo.TripRepo, repo.ItineraryRepo, *kv.FileStore) {
	t.Helper()
	store, err := kv.OpenFileStore(filepath.Join(t.TempDir(), "local"))
	require.NoError(t, err)
	trips, items := repo.NewLocalRepos(store)
	return trips, items, store
}

func day(s string) time.Time {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func localTripFixture() domain.Trip {
	return domain.Trip{
		UserID:    "user-1",
		Title:     "Lisbon Long Weekend",
		StartDate: day("2025-05-01"),
		EndDate:   day("2025-05-04"),
		Notes:     "pastéis",
	}
}

func TestLocalTripRepo_SeedOnFirstRead(t *testing.T) {
	trips, _, _ := newLocalRepos(t)

	got, err := trips.List(context.Background(), repo.SeedUserID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, repo.SeedTripID, got[0].ID)
	assert.Equal(t, "Jordan Adventure", got[0].Title)
	assert.Equal(t, "2025-11-06", domain.DateKey(got[0].StartDate))
	assert.Equal(t, "2025-11-09", domain.DateKey(got[0].EndDate))
}

func TestLocalTripRepo_ListFiltersByUser(t *testing.T) {
	trips, _, _ := newLocalRepos(t)

	got, err := trips.List(context.Background(), "someone-else")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocalTripRepo_CreateKeepsSeedAndInsertionOrder(t *testing.T) {
	trips, _, _ := newLocalRepos(t)
	ctx := context.Background()

	first := localTripFixture()
	first.UserID = repo.SeedUserID
	second := localTripFixture()
	second.UserID = repo.SeedUserID
	second.Title = "Second"

	c1, err := trips.Create(ctx, first)
	require.NoError(t, err)
	c2, err := trips.Create(ctx, second)
	require.NoError(t, err)

	got, err := trips.List(ctx, repo.SeedUserID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, repo.SeedTripID, got[0].ID)
	assert.Equal(t, c1.ID, got[1].ID)
	assert.Equal(t, c2.ID, got[2].ID)
}

func TestLocalTripRepo_CreateAssignsIDAndGetByID(t *testing.T) {
	trips, _, _ := newLocalRepos(t)
	ctx := context.Background()

	created, err := trips.Create(ctx, localTripFixture())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := trips.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Notes, got.Notes)
	assert.True(t, got.StartDate.Equal(created.StartDate))
	assert.True(t, got.EndDate.Equal(created.EndDate))
}

func TestLocalTripRepo_GetByID_NotFound(t *testing.T) {
	trips, _, _ := newLocalRepos(t)

	_, err := trips.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocalItineraryRepo_SeedItinerary(t *testing.T) {
	_, items, _ := newLocalRepos(t)

	got, err := items.ListByTrip(context.Background(), repo.SeedTripID)

	require.NoError(t, err)
	require.Len(t, got, 6)
	assert.Equal(t, "Head to RUH Airport", got[0].Title)

	flight := got[1]
	assert.Equal(t, domain.ActivityFlight, flight.Type)
	require.NotNil(t, flight.Details.Flight)
	assert.Equal(t, "SV 123", domain.Value(flight.Details.Flight.Number))
}

func TestLocalItineraryRepo_UnknownTripIsEmpty(t *testing.T) {
	_, items, _ := newLocalRepos(t)

	got, err := items.ListByTrip(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocalItineraryRepo_AddThenListRoundTrip(t *testing.T) {
	_, items, _ := newLocalRepos(t)
	ctx := context.Background()
	tripID := uuid.New()
	cost := 120.5
	booked := true

	draft := domain.ItineraryItem{
		TripID:   tripID,
		Date:     day("2025-05-02"),
		Time:     "12:35",
		Type:     domain.ActivityFlight,
		Title:    "Flight to Porto",
		Location: "Gate 12",
		Notes:    "window seat",
		Cost:     &cost,
		Currency: "EUR",
		IsBooked: &booked,
		Details: domain.DetailsFromMap(domain.ActivityFlight, map[string]any{
			"flightNumber": "TP 1942", "from": "LIS", "to": "OPO", "seat": "3A",
		}),
	}

	created, err := items.Create(ctx, draft)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	got, err := items.ListByTrip(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, got, 1)

	want := draft
	want.ID = created.ID
	assert.Equal(t, want, got[0])
}

func TestLocalItineraryRepo_PartialFlightDetailsRoundTrip(t *testing.T) {
	_, items, _ := newLocalRepos(t)
	ctx := context.Background()
	tripID := uuid.New()

	created, err := items.Create(ctx, domain.ItineraryItem{
		TripID:  tripID,
		Date:    day("2025-05-02"),
		Type:    domain.ActivityFlight,
		Details: domain.DetailsFromMap(domain.ActivityFlight, map[string]any{"flightNumber": "SV1"}),
	})
	require.NoError(t, err)

	got, err := items.ListByTrip(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].ID)
	assert.Equal(t, map[string]any{"flightNumber": "SV1"}, got[0].Details.Map())
}

func TestLocalItineraryRepo_ListOrdersByDateThenTime(t *testing.T) {
	_, items, _ := newLocalRepos(t)
	ctx := context.Background()
	tripID := uuid.New()

	add := func(date, clock, title string) {
		_, err := items.Create(ctx, domain.ItineraryItem{
			TripID: tripID, Date: day(date), Time: clock, Type: domain.ActivityNote, Title: title,
		})
		require.NoError(t, err)
	}
	add("2025-05-03", "08:00", "c")
	add("2025-05-02", "19:00", "b")
	add("2025-05-02", "", "a-untimed")
	add("2025-05-02", "19:00", "b2")

	got, err := items.ListByTrip(ctx, tripID)
	require.NoError(t, err)

	var titles []string
	for _, it := range got {
		titles = append(titles, it.Title)
	}
	assert.Equal(t, []string{"a-untimed", "b", "b2", "c"}, titles)
}

func TestLocalItineraryRepo_UpdateMergesOnlyPatchedField(t *testing.T) {
	_, items, _ := newLocalRepos(t)
	ctx := context.Background()
	tripID := uuid.New()

	created, err := items.Create(ctx, domain.ItineraryItem{
		TripID: tripID, Date: day("2025-05-02"), Time: "09:00",
		Type: domain.ActivityFood, Title: "Lunch", Location: "Time Out Market",
	})
	require.NoError(t, err)

	title := "Late lunch"
	require.NoError(t, items.Update(ctx, created.ID, tripID, domain.ItemPatch{Title: &title}))

	got, err := items.ListByTrip(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, got, 1)

	want := created
	want.Title = "Late lunch"
	assert.Equal(t, want, got[0])
}

func TestLocalItineraryRepo_UpdateUnknownItemIsSilent(t *testing.T) {
	_, items, _ := newLocalRepos(t)
	title := "ghost"

	err := items.Update(context.Background(), uuid.New(), uuid.New(), domain.ItemPatch{Title: &title})

	assert.NoError(t, err)
}

func TestLocalItineraryRepo_DeleteIsIdempotent(t *testing.T) {
	_, items, _ := newLocalRepos(t)
	ctx := context.Background()
	tripID := uuid.New()

	created, err := items.Create(ctx, domain.ItineraryItem{
		TripID: tripID, Date: day("2025-05-02"), Type: domain.ActivityNote, Title: "x",
	})
	require.NoError(t, err)

	require.NoError(t, items.Delete(ctx, created.ID, tripID))
	require.NoError(t, items.Delete(ctx, created.ID, tripID))

	got, err := items.ListByTrip(ctx, tripID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocalItineraryRepo_SeedIsWrittenThroughOnFirstMutation(t *testing.T) {
	_, items, store := newLocalRepos(t)
	ctx := context.Background()

	seeded, err := items.ListByTrip(ctx, repo.SeedTripID)
	require.NoError(t, err)
	require.NoError(t, items.Delete(ctx, seeded[0].ID, repo.SeedTripID))

	raw, ok, err := store.Get(ctx, "tf_itinerary_"+repo.SeedTripID.String())
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, string(raw), seeded[0].ID.String())
	assert.Contains(t, string(raw), seeded[1].ID.String())
}

func TestLocalRepos_SurviveReopen(t *testing.T) {
	root := filepath.Join(t.TempDir(), "local")
	ctx := context.Background()

	created, err := testutil.OpenLocalGateway(t, root).Trips.Create(ctx, localTripFixture())
	require.NoError(t, err)

	got, err := testutil.OpenLocalGateway(t, root).Trips.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
}
