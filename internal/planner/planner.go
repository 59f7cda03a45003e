// Package planner is the itinerary controller. A Planner holds the full item
// list of one open trip in memory, derives the day view from it, and applies
// edits optimistically: local state changes first, persistence follows.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tripflow/planner/internal/domain"
)

// Store is the persistence the controller needs.
// *service.ItineraryService satisfies it.
type Store interface {
	Trip(ctx context.Context, tripID uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error)
	Add(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	Update(ctx context.Context, itemID, tripID uuid.UUID, patch domain.ItemPatch) error
	Delete(ctx context.Context, itemID, tripID uuid.UUID) error
}

// Planner is the in-memory itinerary of one trip. It is safe for concurrent
// use; the mutex guards the list only and is never held across a Store call,
// so two in-flight updates of one item resolve as last write wins.
type Planner struct {
	store Store
	log   *slog.Logger

	mu    sync.Mutex
	trip  domain.Trip
	items []domain.ItineraryItem
}

// Open loads the trip and all of its items.
func Open(ctx context.Context, store Store, tripID uuid.UUID, logger *slog.Logger) (*Planner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Planner{store: store, log: logger.With("trip_id", tripID.String())}
	if err := p.load(ctx, tripID); err != nil {
		return nil, fmt.Errorf("planner.Open: %w", err)
	}
	return p, nil
}

func (p *Planner) load(ctx context.Context, tripID uuid.UUID) error {
	trip, err := p.store.Trip(ctx, tripID)
	if err != nil {
		return err
	}
	items, err := p.store.List(ctx, tripID)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.trip = trip
	p.items = items
	p.mu.Unlock()
	return nil
}

// Reload discards local state and reads trip and items from the store again.
// It is the way to reconcile after a persistence failure left local state
// ahead of what was stored.
func (p *Planner) Reload(ctx context.Context) error {
	if err := p.load(ctx, p.Trip().ID); err != nil {
		return fmt.Errorf("planner.Planner.Reload: %w", err)
	}
	return nil
}

// Trip returns the open trip.
func (p *Planner) Trip() domain.Trip {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.trip
}

// Items returns a copy of the item list in its current local order.
func (p *Planner) Items() []domain.ItineraryItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.items)
}

// Days returns the day-grouped view of the current items. It is recomputed
// on every call.
func (p *Planner) Days() View {
	p.mu.Lock()
	trip := p.trip
	items := slices.Clone(p.items)
	p.mu.Unlock()
	return Days(trip, items)
}

// AddItem creates a blank item of type t on date (ACTIVITY when t is empty),
// persists it, and appends the stored record. Nothing changes locally when
// persistence fails.
func (p *Planner) AddItem(ctx context.Context, date time.Time, t domain.ActivityType) (domain.ItineraryItem, error) {
	draft := domain.NewItemDraft(p.Trip().ID, date, t)
	created, err := p.add(ctx, draft)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("planner.Planner.AddItem: %w", err)
	}
	return created, nil
}

func (p *Planner) add(ctx context.Context, draft domain.ItineraryItem) (domain.ItineraryItem, error) {
	created, err := p.store.Add(ctx, draft)
	if err != nil {
		return domain.ItineraryItem{}, err
	}
	p.mu.Lock()
	p.items = append(p.items, created)
	p.mu.Unlock()
	return created, nil
}

// AddGenerated persists each draft through the same path as AddItem and
// appends the ones that were stored. A failed draft is logged and skipped;
// the number of failures is returned alongside the stored items.
func (p *Planner) AddGenerated(ctx context.Context, drafts []domain.ItineraryItem) ([]domain.ItineraryItem, int) {
	tripID := p.Trip().ID
	added := make([]domain.ItineraryItem, 0, len(drafts))
	failed := 0
	for _, d := range drafts {
		d.TripID = tripID
		created, err := p.add(ctx, d)
		if err != nil {
			failed++
			p.log.ErrorContext(ctx, "persist generated item",
				"title", d.Title,
				"date", domain.DateKey(d.Date),
				"error", err,
			)
			continue
		}
		added = append(added, created)
	}
	return added, failed
}

// UpdateItem merges patch into the local item and then persists it.
// Invalid patches and unknown ids are rejected before anything changes.
// A persistence failure is logged, not returned, and the local change stays;
// call Reload to converge with the store.
func (p *Planner) UpdateItem(ctx context.Context, id uuid.UUID, patch domain.ItemPatch) (domain.ItineraryItem, error) {
	updated, err := p.mutate(id, func(domain.ItineraryItem) domain.ItemPatch { return patch })
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("planner.Planner.UpdateItem: %w", err)
	}
	p.persist(ctx, id, patch)
	return updated, nil
}

// UpdateItemDetails merges fields into the item's existing details; keys not
// named in fields are kept. It is otherwise identical to UpdateItem.
func (p *Planner) UpdateItemDetails(ctx context.Context, id uuid.UUID, fields map[string]any) (domain.ItineraryItem, error) {
	var patch domain.ItemPatch
	updated, err := p.mutate(id, func(cur domain.ItineraryItem) domain.ItemPatch {
		merged := cur.Details.Merge(cur.Type, fields)
		patch = domain.ItemPatch{Details: &merged}
		return patch
	})
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("planner.Planner.UpdateItemDetails: %w", err)
	}
	p.persist(ctx, id, patch)
	return updated, nil
}

// mutate applies the patch built from the current item in place, under the lock.
func (p *Planner) mutate(id uuid.UUID, build func(domain.ItineraryItem) domain.ItemPatch) (domain.ItineraryItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := slices.IndexFunc(p.items, func(it domain.ItineraryItem) bool { return it.ID == id })
	if i < 0 {
		return domain.ItineraryItem{}, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	patch := build(p.items[i])
	if err := patch.ValidateFor(p.trip); err != nil {
		return domain.ItineraryItem{}, err
	}
	p.items[i] = patch.Apply(p.items[i])
	return p.items[i], nil
}

func (p *Planner) persist(ctx context.Context, id uuid.UUID, patch domain.ItemPatch) {
	if err := p.store.Update(ctx, id, p.Trip().ID, patch); err != nil {
		p.log.ErrorContext(ctx, "persist item update",
			"item_id", id.String(),
			"error", err,
		)
	}
}

// DeleteItem removes the item from the store and, once that succeeds, from
// local state. Deleting an item that is not present is not an error.
func (p *Planner) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := p.store.Delete(ctx, id, p.Trip().ID); err != nil {
		return fmt.Errorf("planner.Planner.DeleteItem: %w", err)
	}
	p.mu.Lock()
	p.items = slices.DeleteFunc(p.items, func(it domain.ItineraryItem) bool { return it.ID == id })
	p.mu.Unlock()
	return nil
}
