package planner_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripflow/planner/internal/domain"
	"github.com/tripflow/planner/internal/planner"
	"github.com/tripflow/planner/internal/repo"
	"github.com/tripflow/planner/internal/service"
	"github.com/tripflow/planner/testutil"
)

// mockStore is a hand-written test double for planner.Store.
// Each method is a function field; set only the ones your test needs.
type mockStore struct {
	trip   func(ctx context.Context, tripID uuid.UUID) (domain.Trip, error)
	list   func(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error)
	add    func(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	update func(ctx context.Context, itemID, tripID uuid.UUID, patch domain.ItemPatch) error
	delete func(ctx context.Context, itemID, tripID uuid.UUID) error
}

func (m *mockStore) Trip(ctx context.Context, tripID uuid.UUID) (domain.Trip, error) {
	return m.trip(ctx, tripID)
}
func (m *mockStore) List(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	return m.list(ctx, tripID)
}
func (m *mockStore) Add(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	return m.add(ctx, item)
}
func (m *mockStore) Update(ctx context.Context, itemID, tripID uuid.UUID, patch domain.ItemPatch) error {
	return m.update(ctx, itemID, tripID, patch)
}
func (m *mockStore) Delete(ctx context.Context, itemID, tripID uuid.UUID) error {
	return m.delete(ctx, itemID, tripID)
}

var _ planner.Store = (*mockStore)(nil)

// localStore wires the real service over a local backend in a temp dir.
func localStore(t *testing.T) *service.ItineraryService {
	t.Helper()
	gw := testutil.NewLocalGateway(t)
	return service.NewItineraryService(gw.Trips, gw.Itinerary)
}

func openSeed(t *testing.T, store planner.Store) *planner.Planner {
	t.Helper()
	p, err := planner.Open(context.Background(), store, repo.SeedTripID, nil)
	require.NoError(t, err)
	return p
}

// fixedStore serves one trip and its items and records updates.
func fixedStore(trip domain.Trip, items []domain.ItineraryItem) *mockStore {
	return &mockStore{
		trip: func(context.Context, uuid.UUID) (domain.Trip, error) { return trip, nil },
		list: func(context.Context, uuid.UUID) ([]domain.ItineraryItem, error) {
			return append([]domain.ItineraryItem(nil), items...), nil
		},
	}
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func TestOpen_LoadsTripAndItems(t *testing.T) {
	p := openSeed(t, localStore(t))

	assert.Equal(t, "Jordan Adventure", p.Trip().Title)
	assert.Len(t, p.Items(), 6)

	view := p.Days()
	require.Len(t, view.Days, 4)
	assert.Len(t, view.Days[0].Items, 4)
	assert.Len(t, view.Days[1].Items, 2)
	assert.Empty(t, view.Days[2].Items)
}

func TestOpen_UnknownTrip(t *testing.T) {
	_, err := planner.Open(context.Background(), localStore(t), uuid.New(), nil)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItem_DefaultsAndPersists(t *testing.T) {
	store := localStore(t)
	p := openSeed(t, store)
	ctx := context.Background()

	created, err := p.AddItem(ctx, day(t, "2025-11-08"), "")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, domain.ActivityActivity, created.Type)
	assert.Equal(t, "09:00", created.Time)
	assert.Empty(t, created.Title)

	view := p.Days()
	require.Len(t, view.Days[2].Items, 1)
	assert.Equal(t, created.ID, view.Days[2].Items[0].ID)

	stored, err := store.List(ctx, repo.SeedTripID)
	require.NoError(t, err)
	assert.Len(t, stored, 7)
}

func TestAddItem_OutsideTripLeavesStateUnchanged(t *testing.T) {
	p := openSeed(t, localStore(t))

	_, err := p.AddItem(context.Background(), day(t, "2025-12-01"), domain.ActivityHotel)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, p.Items(), 6)
}

func TestUpdateItem_OnlyPatchedFieldChanges(t *testing.T) {
	store := localStore(t)
	p := openSeed(t, store)
	ctx := context.Background()
	before := p.Items()[4] // Petra Exploration

	notes := "Bring water"
	updated, err := p.UpdateItem(ctx, before.ID, domain.ItemPatch{Notes: &notes})
	require.NoError(t, err)

	want := before
	want.Notes = notes
	assert.Equal(t, want, updated)

	stored, err := store.List(ctx, repo.SeedTripID)
	require.NoError(t, err)
	for _, it := range stored {
		if it.ID == before.ID {
			assert.Equal(t, want, it)
		}
	}
}

func TestUpdateItem_PersistFailureKeepsLocalChangeAndLogs(t *testing.T) {
	trip := tripFromTo(t, "2025-11-06", "2025-11-09")
	item := itemAt(t, "2025-11-06", "10:00", "old")
	store := fixedStore(trip, []domain.ItineraryItem{item})
	store.update = func(context.Context, uuid.UUID, uuid.UUID, domain.ItemPatch) error {
		return errors.New("network down")
	}
	logger, buf := bufferLogger()
	p, err := planner.Open(context.Background(), store, trip.ID, logger)
	require.NoError(t, err)

	title := "new"
	got, err := p.UpdateItem(context.Background(), item.ID, domain.ItemPatch{Title: &title})

	require.NoError(t, err, "persistence failures are not returned")
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "new", p.Items()[0].Title, "no rollback")
	assert.Contains(t, buf.String(), "network down")
	assert.Contains(t, buf.String(), item.ID.String())
}

func TestUpdateItem_UnknownIDAndInvalidPatch(t *testing.T) {
	trip := tripFromTo(t, "2025-11-06", "2025-11-09")
	item := itemAt(t, "2025-11-06", "10:00", "x")
	store := fixedStore(trip, []domain.ItineraryItem{item})
	store.update = func(context.Context, uuid.UUID, uuid.UUID, domain.ItemPatch) error {
		t.Fatal("store must not be called")
		return nil
	}
	p, err := planner.Open(context.Background(), store, trip.ID, nil)
	require.NoError(t, err)

	title := "y"
	_, err = p.UpdateItem(context.Background(), uuid.New(), domain.ItemPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bad := "noon"
	_, err = p.UpdateItem(context.Background(), item.ID, domain.ItemPatch{Time: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "10:00", p.Items()[0].Time)
}

func TestUpdateItemDetails_MergesKeepingUnrelatedKeys(t *testing.T) {
	store := localStore(t)
	p := openSeed(t, store)
	ctx := context.Background()
	flight := p.Items()[1]
	require.Equal(t, domain.ActivityFlight, flight.Type)

	got, err := p.UpdateItemDetails(ctx, flight.ID, map[string]any{"to": "AQJ", "seat": "12C"})
	require.NoError(t, err)

	require.NotNil(t, got.Details.Flight)
	assert.Equal(t, "SV 123", domain.Value(got.Details.Flight.Number))
	assert.Equal(t, "RUH", domain.Value(got.Details.Flight.From))
	assert.Equal(t, "AQJ", domain.Value(got.Details.Flight.To))
	assert.Equal(t, "12C", got.Details.Extra["seat"])

	require.NoError(t, p.Reload(ctx))
	reloaded := p.Items()[1]
	assert.Equal(t, got.Details, reloaded.Details)
}

func TestDeleteItem_RemovesAndIsIdempotent(t *testing.T) {
	store := localStore(t)
	p := openSeed(t, store)
	ctx := context.Background()
	victim := p.Items()[0]

	require.NoError(t, p.DeleteItem(ctx, victim.ID))
	require.NoError(t, p.DeleteItem(ctx, victim.ID))

	for _, it := range p.Items() {
		assert.NotEqual(t, victim.ID, it.ID)
	}
	stored, err := store.List(ctx, repo.SeedTripID)
	require.NoError(t, err)
	assert.Len(t, stored, 5)
}

func TestDeleteItem_FailureKeepsItem(t *testing.T) {
	trip := tripFromTo(t, "2025-11-06", "2025-11-09")
	item := itemAt(t, "2025-11-06", "10:00", "x")
	store := fixedStore(trip, []domain.ItineraryItem{item})
	boom := errors.New("rpc failed")
	store.delete = func(context.Context, uuid.UUID, uuid.UUID) error { return boom }
	p, err := planner.Open(context.Background(), store, trip.ID, nil)
	require.NoError(t, err)

	err = p.DeleteItem(context.Background(), item.ID)

	assert.ErrorIs(t, err, boom)
	assert.Len(t, p.Items(), 1)
}

func TestAddGenerated_PersistsEachAndCountsFailures(t *testing.T) {
	trip := tripFromTo(t, "2025-11-06", "2025-11-09")
	store := fixedStore(trip, nil)
	store.add = func(_ context.Context, it domain.ItineraryItem) (domain.ItineraryItem, error) {
		if it.Title == "bad" {
			return domain.ItineraryItem{}, errors.New("rejected")
		}
		it.ID = uuid.New()
		return it, nil
	}
	logger, buf := bufferLogger()
	p, err := planner.Open(context.Background(), store, trip.ID, logger)
	require.NoError(t, err)

	drafts := []domain.ItineraryItem{
		itemAt(t, "2025-11-06", "08:00", "good 1"),
		itemAt(t, "2025-11-07", "09:00", "bad"),
		itemAt(t, "2025-11-08", "10:00", "good 2"),
	}
	added, failed := p.AddGenerated(context.Background(), drafts)

	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"good 1", "good 2"}, titles(added))
	for _, it := range added {
		assert.Equal(t, trip.ID, it.TripID)
	}
	assert.Len(t, p.Items(), 2)
	assert.Contains(t, buf.String(), "rejected")
}

func TestReload_DiscardsLocalDivergence(t *testing.T) {
	trip := tripFromTo(t, "2025-11-06", "2025-11-09")
	item := itemAt(t, "2025-11-06", "10:00", "stored")
	store := fixedStore(trip, []domain.ItineraryItem{item})
	store.update = func(context.Context, uuid.UUID, uuid.UUID, domain.ItemPatch) error {
		return errors.New("lost")
	}
	p, err := planner.Open(context.Background(), store, trip.ID, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	title := "local only"
	_, err = p.UpdateItem(context.Background(), item.ID, domain.ItemPatch{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "local only", p.Items()[0].Title)

	require.NoError(t, p.Reload(context.Background()))

	assert.Equal(t, "stored", p.Items()[0].Title)
}
