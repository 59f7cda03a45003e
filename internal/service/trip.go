// Package service contains the business rules of the TripFlow planner.
// Services validate inputs, enforce those rules, and orchestrate repo calls.
// No storage code lives here; services depend on repo interfaces only.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripflow/planner/internal/domain"
	"github.com/tripflow/planner/internal/repo"
)

// defaultTripDays is how far past the start a new trip without dates ends.
const defaultTripDays = 3

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
	now  func() time.Time
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r, now: time.Now}
}

// WithClock returns a copy of s that reads "today" from now.
func (s *TripService) WithClock(now func() time.Time) *TripService {
	cp := *s
	cp.now = now
	return &cp
}

// List returns the trips owned by userID. The result is never nil.
func (s *TripService) List(ctx context.Context, userID string) ([]domain.Trip, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("service.TripService.List: %w: user id is required", domain.ErrValidation)
	}
	trips, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// Create validates and persists a new trip. A trip without dates runs from
// today to today plus three days; a trip with only a start date ends on it.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.Title = strings.TrimSpace(trip.Title)
	trip.UserID = strings.TrimSpace(trip.UserID)

	if trip.UserID == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: user id is required", domain.ErrValidation)
	}
	if trip.Title == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: title is required", domain.ErrValidation)
	}

	switch {
	case trip.StartDate.IsZero() && trip.EndDate.IsZero():
		today := domain.TruncateDate(s.now())
		trip.StartDate = today
		trip.EndDate = domain.AddDays(today, defaultTripDays)
	case trip.EndDate.IsZero():
		trip.EndDate = trip.StartDate
	case trip.StartDate.IsZero():
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: start_date is required with end_date", domain.ErrValidation)
	}
	trip.StartDate = domain.TruncateDate(trip.StartDate)
	trip.EndDate = domain.TruncateDate(trip.EndDate)

	if trip.EndDate.Before(trip.StartDate) {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: end_date must not be before start_date", domain.ErrValidation)
	}
	if trip.EndDate.After(domain.AddDays(trip.StartDate, domain.MaxTripDays-1)) {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: a trip may span at most %d days", domain.ErrValidation, domain.MaxTripDays)
	}

	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}
