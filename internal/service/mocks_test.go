package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/tripflow/planner/internal/domain"
	"github.com/tripflow/planner/internal/repo"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	list    func(ctx context.Context, userID string) ([]domain.Trip, error)
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

func (m *mockTripRepo) List(ctx context.Context, userID string) ([]domain.Trip, error) {
	return m.list(ctx, userID)
}
func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockItineraryRepo is a hand-written test double for repo.ItineraryRepo.
type mockItineraryRepo struct {
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error)
	create     func(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	update     func(ctx context.Context, itemID, tripID uuid.UUID, patch domain.ItemPatch) error
	delete     func(ctx context.Context, itemID, tripID uuid.UUID) error
}

func (m *mockItineraryRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockItineraryRepo) Create(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	return m.create(ctx, item)
}
func (m *mockItineraryRepo) Update(ctx context.Context, itemID, tripID uuid.UUID, patch domain.ItemPatch) error {
	return m.update(ctx, itemID, tripID, patch)
}
func (m *mockItineraryRepo) Delete(ctx context.Context, itemID, tripID uuid.UUID) error {
	return m.delete(ctx, itemID, tripID)
}

var _ repo.ItineraryRepo = (*mockItineraryRepo)(nil)
