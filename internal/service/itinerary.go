package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripflow/planner/internal/domain"
	"github.com/tripflow/planner/internal/repo"
)

// ItineraryService implements business logic for itinerary items.
// Every write is checked against the owning trip's date range.
type ItineraryService struct {
	trips repo.TripRepo
	items repo.ItineraryRepo
}

// NewItineraryService constructs an ItineraryService over both repos of a gateway.
func NewItineraryService(trips repo.TripRepo, items repo.ItineraryRepo) *ItineraryService {
	return &ItineraryService{trips: trips, items: items}
}

// Trip returns the trip whose itinerary is being edited.
func (s *ItineraryService) Trip(ctx context.Context, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.Trip: %w", err)
	}
	return trip, nil
}

// List returns the trip's items ordered by date then time. The result is never nil.
func (s *ItineraryService) List(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	items, err := s.items.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.List: %w", err)
	}
	if items == nil {
		items = []domain.ItineraryItem{}
	}
	return items, nil
}

// Add validates and persists a new item. An empty title is allowed; the add
// menu creates blank items that are filled in afterwards.
func (s *ItineraryService) Add(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	trip, err := s.trips.GetByID(ctx, item.TripID)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Add: %w", err)
	}

	item.Date = domain.TruncateDate(item.Date)
	if err := item.ValidateFor(trip); err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Add: %w", err)
	}

	created, err := s.items.Create(ctx, item)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Add: %w", err)
	}
	return created, nil
}

// Update validates the fields patch sets and merges them into the stored item.
// The trip is only loaded when the patch moves the item to another date.
func (s *ItineraryService) Update(ctx context.Context, itemID, tripID uuid.UUID, patch domain.ItemPatch) error {
	var trip domain.Trip
	if patch.Date != nil {
		t, err := s.trips.GetByID(ctx, tripID)
		if err != nil {
			return fmt.Errorf("service.ItineraryService.Update: %w", err)
		}
		trip = t
	}
	if err := patch.ValidateFor(trip); err != nil {
		return fmt.Errorf("service.ItineraryService.Update: %w", err)
	}

	if err := s.items.Update(ctx, itemID, tripID, patch); err != nil {
		return fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	return nil
}

// Delete removes an item. Deleting an item that does not exist is not an error.
func (s *ItineraryService) Delete(ctx context.Context, itemID, tripID uuid.UUID) error {
	if err := s.items.Delete(ctx, itemID, tripID); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	return nil
}
