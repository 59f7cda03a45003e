package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripflow/planner/internal/domain"
)

// ItineraryRepo defines the persistence operations for itinerary items.
// Write operations carry the owning trip ID so every backend can locate the
// trip's item sequence without an extra lookup.
type ItineraryRepo interface {
	// ListByTrip returns every item of the trip ordered by date, then time.
	// Items without a time sort before timed items of the same day.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error)

	// Create assigns a new ID, persists the item and returns the stored record.
	Create(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)

	// Update merges patch into the stored item. The local backend ignores an
	// unknown itemID; Postgres returns domain.ErrNotFound.
	Update(ctx context.Context, itemID, tripID uuid.UUID, patch domain.ItemPatch) error

	// Delete removes the item. Deleting an unknown item is not an error.
	Delete(ctx context.Context, itemID, tripID uuid.UUID) error
}

// pgItineraryRepo is the Postgres implementation of ItineraryRepo.
type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

const itemColumns = `id, trip_id, date, time, type, title, location, notes, cost, currency, is_booked, details`

// ListByTrip returns the trip's items. COALESCE puts NULL times first, matching
// the empty-string ordering of the local backend.
func (r *pgItineraryRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	q := `
		SELECT ` + itemColumns + `
		FROM itinerary_items
		WHERE trip_id = @trip_id
		ORDER BY date ASC, COALESCE(time, '') ASC, created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var items []domain.ItineraryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ItineraryRepo.ListByTrip: scan: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByTrip: rows: %w", err)
	}
	return items, nil
}

// Create inserts a new item row with a freshly generated ID.
func (r *pgItineraryRepo) Create(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	details, err := json.Marshal(item.Details.Map())
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.ItineraryRepo.Create: details: %w", err)
	}

	q := `
		INSERT INTO itinerary_items
			(id, trip_id, date, time, type, title, location, notes, cost, currency, is_booked, details)
		VALUES
			(@id, @trip_id, @date, @time, @type, @title, @location, @notes, @cost, @currency, @is_booked, @details)
		RETURNING ` + itemColumns

	args := pgx.NamedArgs{
		"id":        uuid.New(),
		"trip_id":   item.TripID,
		"date":      pgtype.Date{Time: item.Date, Valid: true},
		"time":      nullableText(item.Time),
		"type":      string(item.Type),
		"title":     item.Title,
		"location":  nullableText(item.Location),
		"notes":     nullableText(item.Notes),
		"cost":      item.Cost, // nil becomes NULL
		"currency":  nullableText(item.Currency),
		"is_booked": item.IsBooked,
		"details":   details,
	}

	result, err := scanItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	return result, nil
}

// Update writes only the columns present in patch.
func (r *pgItineraryRepo) Update(ctx context.Context, itemID, tripID uuid.UUID, patch domain.ItemPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	sets, args, err := patchAssignments(patch)
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	}
	args["id"] = itemID
	args["trip_id"] = tripID

	q := `UPDATE itinerary_items SET ` + strings.Join(sets, ", ") + `, updated_at = now()
		WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Update: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete removes an item row. Zero affected rows is not an error.
func (r *pgItineraryRepo) Delete(ctx context.Context, itemID, tripID uuid.UUID) error {
	const q = `DELETE FROM itinerary_items WHERE id = @id AND trip_id = @trip_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": itemID, "trip_id": tripID}); err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	return nil
}

// patchAssignments turns the non-nil fields of patch into SET clauses and
// their named arguments, in a fixed column order.
func patchAssignments(p domain.ItemPatch) ([]string, pgx.NamedArgs, error) {
	var sets []string
	args := pgx.NamedArgs{}
	set := func(col string, v any) {
		sets = append(sets, col+" = @"+col)
		args[col] = v
	}

	if p.Date != nil {
		set("date", pgtype.Date{Time: domain.TruncateDate(*p.Date), Valid: true})
	}
	if p.Time != nil {
		set("time", nullableText(*p.Time))
	}
	if p.Type != nil {
		set("type", string(*p.Type))
	}
	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Location != nil {
		set("location", nullableText(*p.Location))
	}
	if p.Notes != nil {
		set("notes", nullableText(*p.Notes))
	}
	if p.Cost != nil {
		set("cost", *p.Cost)
	}
	if p.Currency != nil {
		set("currency", nullableText(*p.Currency))
	}
	if p.IsBooked != nil {
		set("is_booked", *p.IsBooked)
	}
	if p.Details != nil {
		raw, err := json.Marshal(p.Details.Map())
		if err != nil {
			return nil, nil, fmt.Errorf("details: %w", err)
		}
		set("details", raw)
	}
	return sets, args, nil
}

// scanItem maps a single database row into a domain.ItineraryItem.
func scanItem(s scanner) (domain.ItineraryItem, error) {
	var (
		item     domain.ItineraryItem
		id       pgtype.UUID
		tripID   pgtype.UUID
		day      pgtype.Date
		clock    pgtype.Text
		kind     string
		location pgtype.Text
		notes    pgtype.Text
		currency pgtype.Text
		details  []byte
	)

	err := s.Scan(&id, &tripID, &day, &clock, &kind, &item.Title, &location, &notes,
		&item.Cost, &currency, &item.IsBooked, &details)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ItineraryItem{}, domain.ErrNotFound
		}
		return domain.ItineraryItem{}, err
	}

	item.ID = uuid.UUID(id.Bytes)
	item.TripID = uuid.UUID(tripID.Bytes)
	item.Date = day.Time
	item.Time = clock.String
	item.Type = domain.ActivityType(kind)
	item.Location = location.String
	item.Notes = notes.String
	item.Currency = currency.String

	var m map[string]any
	if len(details) > 0 {
		if err := json.Unmarshal(details, &m); err != nil {
			return domain.ItineraryItem{}, fmt.Errorf("details: %w", err)
		}
	}
	item.Details = domain.DetailsFromMap(item.Type, m)
	return item, nil
}
