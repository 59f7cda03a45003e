package testutil

import (
	"testing"

	"github.com/tripflow/planner/internal/kv"
	"github.com/tripflow/planner/internal/repo"
)

// NewLocalGateway opens the offline backend in a fresh temporary directory.
// Like a first launch, it reports the seeded Jordan trip until written to.
func NewLocalGateway(t *testing.T) repo.Gateway {
	t.Helper()
	return OpenLocalGateway(t, t.TempDir())
}

// OpenLocalGateway opens the offline backend rooted at dir, so a test can
// reopen the same files as a restarted process would.
func OpenLocalGateway(t *testing.T, dir string) repo.Gateway {
	t.Helper()
	store, err := kv.OpenFileStore(dir)
	if err != nil {
		t.Fatalf("testutil.OpenLocalGateway: %v", err)
	}
	trips, items := repo.NewLocalRepos(store)
	return repo.Gateway{Trips: trips, Itinerary: items}
}
