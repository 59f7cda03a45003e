package repo

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tripflow/planner/internal/domain"
	"github.com/tripflow/planner/internal/kv"
)

// Keys of the local backend. One key holds every trip; each trip's items
// live under their own key.
const (
	localTripsKey      = "tf_trips"
	localItineraryPfx  = "tf_itinerary_"
	localStoredDateFmt = domain.DateLayout
)

// localItineraryKey returns the key holding tripID's item sequence.
func localItineraryKey(tripID uuid.UUID) string {
	return localItineraryPfx + tripID.String()
}

// localState is shared by the local trip and itinerary repos. Every write
// rewrites the whole affected sequence, so the mutex covers the full
// read-modify-write cycle.
type localState struct {
	store kv.Store
	now   func() time.Time
	mu    sync.Mutex
}

// NewLocalRepos returns the offline-mode repos backed by store. When the store
// holds no data yet, reads return the illustrative seed trip and itinerary.
func NewLocalRepos(store kv.Store) (TripRepo, ItineraryRepo) {
	s := &localState{store: store, now: time.Now}
	return &localTripRepo{s: s}, &localItineraryRepo{s: s}
}

// storedTrip is the serialized form of a trip in the local store.
type storedTrip struct {
	ID         uuid.UUID `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	CoverImage string    `json:"coverImage,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// storedItem is the serialized form of an itinerary item in the local store.
type storedItem struct {
	ID       uuid.UUID      `json:"id"`
	TripID   uuid.UUID      `json:"trip_id"`
	Date     string         `json:"date"`
	Time     string         `json:"time,omitempty"`
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Location string         `json:"location,omitempty"`
	Notes    string         `json:"notes,omitempty"`
	Cost     *float64       `json:"cost,omitempty"`
	Currency string         `json:"currency,omitempty"`
	IsBooked *bool          `json:"is_booked,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

func tripToStored(t domain.Trip) storedTrip {
	return storedTrip{
		ID:         t.ID,
		UserID:     t.UserID,
		Title:      t.Title,
		StartDate:  domain.DateKey(t.StartDate),
		EndDate:    domain.DateKey(t.EndDate),
		CoverImage: t.CoverImage,
		Notes:      t.Notes,
		CreatedAt:  t.CreatedAt,
	}
}

func storedToTrip(s storedTrip) (domain.Trip, error) {
	start, err := time.Parse(localStoredDateFmt, s.StartDate)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("trip %s: start date: %w", s.ID, err)
	}
	end, err := time.Parse(localStoredDateFmt, s.EndDate)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("trip %s: end date: %w", s.ID, err)
	}
	return domain.Trip{
		ID:         s.ID,
		UserID:     s.UserID,
		Title:      s.Title,
		StartDate:  start,
		EndDate:    end,
		CoverImage: s.CoverImage,
		Notes:      s.Notes,
		CreatedAt:  s.CreatedAt,
	}, nil
}

func itemToStored(i domain.ItineraryItem) storedItem {
	s := storedItem{
		ID:       i.ID,
		TripID:   i.TripID,
		Date:     domain.DateKey(i.Date),
		Time:     i.Time,
		Type:     string(i.Type),
		Title:    i.Title,
		Location: i.Location,
		Notes:    i.Notes,
		Cost:     i.Cost,
		Currency: i.Currency,
		IsBooked: i.IsBooked,
	}
	if m := i.Details.Map(); len(m) > 0 {
		s.Details = m
	}
	return s
}

func storedToItem(s storedItem) (domain.ItineraryItem, error) {
	d, err := time.Parse(localStoredDateFmt, s.Date)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("item %s: date: %w", s.ID, err)
	}
	kind := domain.ActivityType(s.Type)
	return domain.ItineraryItem{
		ID:       s.ID,
		TripID:   s.TripID,
		Date:     d,
		Time:     s.Time,
		Type:     kind,
		Title:    s.Title,
		Location: s.Location,
		Notes:    s.Notes,
		Cost:     s.Cost,
		Currency: s.Currency,
		IsBooked: s.IsBooked,
		Details:  domain.DetailsFromMap(kind, s.Details),
	}, nil
}

// readTrips loads the stored trip list, falling back to the seed when the key
// has never been written. Callers must hold s.mu.
func (s *localState) readTrips(ctx context.Context) ([]storedTrip, error) {
	raw, ok, err := s.store.Get(ctx, localTripsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return seedTrips(), nil
	}
	var trips []storedTrip
	if err := json.Unmarshal(raw, &trips); err != nil {
		return nil, fmt.Errorf("decode %s: %w", localTripsKey, err)
	}
	return trips, nil
}

func (s *localState) writeTrips(ctx context.Context, trips []storedTrip) error {
	raw, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("encode %s: %w", localTripsKey, err)
	}
	return s.store.Set(ctx, localTripsKey, raw)
}

// readItems loads a trip's stored items, falling back to the seed itinerary
// for the seed trip. Callers must hold s.mu.
func (s *localState) readItems(ctx context.Context, tripID uuid.UUID) ([]storedItem, error) {
	key := localItineraryKey(tripID)
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return seedItems(tripID), nil
	}
	var items []storedItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

func (s *localState) writeItems(ctx context.Context, tripID uuid.UUID, items []storedItem) error {
	key := localItineraryKey(tripID)
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.store.Set(ctx, key, raw)
}

// localTripRepo is the offline-mode implementation of TripRepo.
type localTripRepo struct {
	s *localState
}

// List returns the user's trips in insertion order.
func (r *localTripRepo) List(ctx context.Context, userID string) ([]domain.Trip, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, err := r.s.readTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.localTripRepo.List: %w", err)
	}

	var trips []domain.Trip
	for _, st := range stored {
		if st.UserID != userID {
			continue
		}
		t, err := storedToTrip(st)
		if err != nil {
			return nil, fmt.Errorf("repo.localTripRepo.List: %w", err)
		}
		trips = append(trips, t)
	}
	return trips, nil
}

// Create appends the trip to the stored list and rewrites it.
func (r *localTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, err := r.s.readTrips(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.localTripRepo.Create: %w", err)
	}

	trip.ID = uuid.New()
	trip.StartDate = domain.TruncateDate(trip.StartDate)
	trip.EndDate = domain.TruncateDate(trip.EndDate)
	trip.CreatedAt = r.s.now().UTC()

	stored = append(stored, tripToStored(trip))
	if err := r.s.writeTrips(ctx, stored); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.localTripRepo.Create: %w", err)
	}
	return trip, nil
}

// GetByID scans the stored list for the trip.
func (r *localTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, err := r.s.readTrips(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.localTripRepo.GetByID: %w", err)
	}
	for _, st := range stored {
		if st.ID == id {
			t, err := storedToTrip(st)
			if err != nil {
				return domain.Trip{}, fmt.Errorf("repo.localTripRepo.GetByID: %w", err)
			}
			return t, nil
		}
	}
	return domain.Trip{}, fmt.Errorf("repo.localTripRepo.GetByID: %w", domain.ErrNotFound)
}

// localItineraryRepo is the offline-mode implementation of ItineraryRepo.
type localItineraryRepo struct {
	s *localState
}

// ListByTrip returns the trip's items ordered by date, then time, keeping
// stored order for ties.
func (r *localItineraryRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, err := r.s.readItems(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("repo.localItineraryRepo.ListByTrip: %w", err)
	}

	items := make([]domain.ItineraryItem, 0, len(stored))
	for _, st := range stored {
		item, err := storedToItem(st)
		if err != nil {
			return nil, fmt.Errorf("repo.localItineraryRepo.ListByTrip: %w", err)
		}
		items = append(items, item)
	}
	slices.SortStableFunc(items, func(a, b domain.ItineraryItem) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Time, b.Time)
	})
	return items, nil
}

// Create appends the item to its trip's sequence and rewrites it.
func (r *localItineraryRepo) Create(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, err := r.s.readItems(ctx, item.TripID)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.localItineraryRepo.Create: %w", err)
	}

	item.ID = uuid.New()
	item.Date = domain.TruncateDate(item.Date)
	st := itemToStored(item)

	stored = append(stored, st)
	if err := r.s.writeItems(ctx, item.TripID, stored); err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.localItineraryRepo.Create: %w", err)
	}

	// Return what a subsequent read would produce.
	result, err := storedToItem(st)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.localItineraryRepo.Create: %w", err)
	}
	return result, nil
}

// Update merges patch into the matching item. An unknown itemID is a no-op.
func (r *localItineraryRepo) Update(ctx context.Context, itemID, tripID uuid.UUID, patch domain.ItemPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, err := r.s.readItems(ctx, tripID)
	if err != nil {
		return fmt.Errorf("repo.localItineraryRepo.Update: %w", err)
	}

	idx := slices.IndexFunc(stored, func(st storedItem) bool { return st.ID == itemID })
	if idx == -1 {
		return nil
	}

	current, err := storedToItem(stored[idx])
	if err != nil {
		return fmt.Errorf("repo.localItineraryRepo.Update: %w", err)
	}
	stored[idx] = itemToStored(patch.Apply(current))

	if err := r.s.writeItems(ctx, tripID, stored); err != nil {
		return fmt.Errorf("repo.localItineraryRepo.Update: %w", err)
	}
	return nil
}

// Delete filters the item out of its trip's sequence and rewrites it.
func (r *localItineraryRepo) Delete(ctx context.Context, itemID, tripID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, err := r.s.readItems(ctx, tripID)
	if err != nil {
		return fmt.Errorf("repo.localItineraryRepo.Delete: %w", err)
	}

	filtered := slices.DeleteFunc(stored, func(st storedItem) bool { return st.ID == itemID })
	if err := r.s.writeItems(ctx, tripID, filtered); err != nil {
		return fmt.Errorf("repo.localItineraryRepo.Delete: %w", err)
	}
	return nil
}
