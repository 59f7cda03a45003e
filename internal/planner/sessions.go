package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Sessions keeps one open Planner per user. Opening a different trip
// replaces the user's planner with a fully loaded one.
type Sessions struct {
	store Store
	log   *slog.Logger

	mu   sync.Mutex
	open map[string]*Planner
}

// NewSessions returns an empty session table over store.
func NewSessions(store Store, logger *slog.Logger) *Sessions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sessions{store: store, log: logger, open: make(map[string]*Planner)}
}

// Planner returns the user's planner for tripID. The current planner is reused
// when it already holds tripID; with reload set it is refreshed first.
func (s *Sessions) Planner(ctx context.Context, userID string, tripID uuid.UUID, reload bool) (*Planner, error) {
	s.mu.Lock()
	cur := s.open[userID]
	s.mu.Unlock()

	if cur != nil && cur.Trip().ID == tripID {
		if reload {
			if err := cur.Reload(ctx); err != nil {
				return nil, fmt.Errorf("planner.Sessions.Planner: %w", err)
			}
		}
		return cur, nil
	}

	p, err := Open(ctx, s.store, tripID, s.log.With("user_id", userID))
	if err != nil {
		return nil, fmt.Errorf("planner.Sessions.Planner: %w", err)
	}

	s.mu.Lock()
	s.open[userID] = p
	s.mu.Unlock()
	return p, nil
}

// Close forgets the user's planner, if any.
func (s *Sessions) Close(userID string) {
	s.mu.Lock()
	delete(s.open, userID)
	s.mu.Unlock()
}
