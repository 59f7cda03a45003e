package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripflow/planner/internal/kv"
)

// Gateway bundles the repos of one backend. The rest of the application only
// sees these interfaces and never learns which backend is active.
type Gateway struct {
	Trips     TripRepo
	Itinerary ItineraryRepo
}

// Strategy opens one persistence backend. It is chosen once at startup and
// passed to whatever builds the gateway.
type Strategy interface {
	// Name identifies the backend in logs and health output.
	Name() string
	// Open connects the backend. The returned func releases its resources.
	Open(ctx context.Context) (Gateway, func(), error)
}

// SelectStrategy picks the remote backend when databaseURL is set and the
// local one otherwise. Missing remote configuration is a valid degraded mode.
func SelectStrategy(databaseURL, localDir string) Strategy {
	if databaseURL != "" {
		return RemoteStrategy{DatabaseURL: databaseURL}
	}
	return LocalStrategy{Dir: localDir}
}

// RemoteStrategy opens the Postgres backend.
type RemoteStrategy struct {
	DatabaseURL string
}

// Name implements Strategy.
func (RemoteStrategy) Name() string { return "remote" }

// Open creates a pgx pool and verifies the database is reachable.
func (s RemoteStrategy) Open(ctx context.Context) (Gateway, func(), error) {
	// New() does not open connections immediately; the ping does.
	pool, err := pgxpool.New(ctx, s.DatabaseURL)
	if err != nil {
		return Gateway{}, nil, fmt.Errorf("repo.RemoteStrategy.Open: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return Gateway{}, nil, fmt.Errorf("repo.RemoteStrategy.Open: ping: %w", err)
	}
	return Gateway{
		Trips:     NewTripRepo(pool),
		Itinerary: NewItineraryRepo(pool),
	}, pool.Close, nil
}

// LocalStrategy opens the file-backed offline backend.
type LocalStrategy struct {
	Dir string
}

// Name implements Strategy.
func (LocalStrategy) Name() string { return "local" }

// Open creates the store directory if needed.
func (s LocalStrategy) Open(_ context.Context) (Gateway, func(), error) {
	store, err := kv.OpenFileStore(s.Dir)
	if err != nil {
		return Gateway{}, nil, fmt.Errorf("repo.LocalStrategy.Open: %w", err)
	}
	trips, items := NewLocalRepos(store)
	return Gateway{Trips: trips, Itinerary: items}, func() {}, nil
}
