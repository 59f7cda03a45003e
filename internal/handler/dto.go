package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripflow/planner/internal/domain"
	"github.com/tripflow/planner/internal/planner"
)

// JSON field names follow the web client: trips use camelCase dates,
// items use snake_case ids.

type tripResponse struct {
	ID         uuid.UUID          `json:"id"`
	UserID     string             `json:"user_id"`
	Title      string             `json:"title"`
	StartDate  openapi_types.Date `json:"startDate"`
	EndDate    openapi_types.Date `json:"endDate"`
	CoverImage *string            `json:"coverImage,omitempty"`
	Notes      *string            `json:"notes,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

type createTripRequest struct {
	Title      string              `json:"title"`
	StartDate  *openapi_types.Date `json:"startDate"`
	EndDate    *openapi_types.Date `json:"endDate"`
	CoverImage *string             `json:"coverImage"`
	Notes      *string             `json:"notes"`
}

type itemResponse struct {
	ID       uuid.UUID          `json:"id"`
	TripID   uuid.UUID          `json:"trip_id"`
	Date     openapi_types.Date `json:"date"`
	Time     *string            `json:"time,omitempty"`
	Type     string             `json:"type"`
	Title    string             `json:"title"`
	Location *string            `json:"location,omitempty"`
	Notes    *string            `json:"notes,omitempty"`
	Cost     *float64           `json:"cost,omitempty"`
	Currency *string            `json:"currency,omitempty"`
	IsBooked *bool              `json:"is_booked,omitempty"`
	Details  map[string]any     `json:"details"`
}

type addItemRequest struct {
	Date openapi_types.Date `json:"date"`
	Type string             `json:"type"`
}

type updateItemRequest struct {
	Date     *openapi_types.Date `json:"date"`
	Time     *string             `json:"time"`
	Type     *string             `json:"type"`
	Title    *string             `json:"title"`
	Location *string             `json:"location"`
	Notes    *string             `json:"notes"`
	Cost     *float64            `json:"cost"`
	Currency *string             `json:"currency"`
	IsBooked *bool               `json:"is_booked"`
	Details  map[string]any      `json:"details"`
}

type dayResponse struct {
	Date  openapi_types.Date `json:"date"`
	Items []itemResponse     `json:"items"`
}

type itineraryResponse struct {
	Trip     tripResponse   `json:"trip"`
	Days     []dayResponse  `json:"days"`
	Unplaced []itemResponse `json:"unplaced"`
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Added     []itemResponse `json:"added"`
	Failed    int            `json:"failed"`
	AIEnabled bool           `json:"ai_enabled"`
}

// --- mapping helpers --------------------------------------------------------

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:         t.ID,
		UserID:     t.UserID,
		Title:      t.Title,
		StartDate:  openapi_types.Date{Time: t.StartDate},
		EndDate:    openapi_types.Date{Time: t.EndDate},
		CoverImage: optional(t.CoverImage),
		Notes:      optional(t.Notes),
		CreatedAt:  t.CreatedAt,
	}
}

func (req createTripRequest) toDomain(userID string) domain.Trip {
	t := domain.Trip{UserID: userID, Title: req.Title}
	if req.StartDate != nil {
		t.StartDate = req.StartDate.Time
	}
	if req.EndDate != nil {
		t.EndDate = req.EndDate.Time
	}
	if req.CoverImage != nil {
		t.CoverImage = *req.CoverImage
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}
	return t
}

func itemToResponse(it domain.ItineraryItem) itemResponse {
	return itemResponse{
		ID:       it.ID,
		TripID:   it.TripID,
		Date:     openapi_types.Date{Time: it.Date},
		Time:     optional(it.Time),
		Type:     string(it.Type),
		Title:    it.Title,
		Location: optional(it.Location),
		Notes:    optional(it.Notes),
		Cost:     it.Cost,
		Currency: optional(it.Currency),
		IsBooked: it.IsBooked,
		Details:  it.Details.Map(),
	}
}

func itemsToResponse(items []domain.ItineraryItem) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, itemToResponse(it))
	}
	return out
}

func viewToResponse(trip domain.Trip, v planner.View) itineraryResponse {
	resp := itineraryResponse{
		Trip:     tripToResponse(trip),
		Days:     make([]dayResponse, 0, len(v.Days)),
		Unplaced: itemsToResponse(v.Unplaced),
	}
	for _, d := range v.Days {
		resp.Days = append(resp.Days, dayResponse{
			Date:  openapi_types.Date{Time: d.Date},
			Items: itemsToResponse(d.Items),
		})
	}
	return resp
}

// parseType maps a wire type name onto an ActivityType. Empty means "unset".
func parseType(s string) (domain.ActivityType, error) {
	if s == "" {
		return "", nil
	}
	t, ok := domain.ParseActivityType(s)
	if !ok {
		return "", badRequest("unknown activity type " + s)
	}
	return t, nil
}

func (req updateItemRequest) toPatch() (domain.ItemPatch, error) {
	p := domain.ItemPatch{
		Time:     req.Time,
		Title:    req.Title,
		Location: req.Location,
		Notes:    req.Notes,
		Cost:     req.Cost,
		Currency: req.Currency,
		IsBooked: req.IsBooked,
	}
	if req.Date != nil {
		d := req.Date.Time
		p.Date = &d
	}
	detailsType := domain.ActivityCustom
	if req.Type != nil {
		t, err := parseType(*req.Type)
		if err != nil {
			return domain.ItemPatch{}, err
		}
		if t == "" {
			return domain.ItemPatch{}, badRequest("type must not be empty")
		}
		p.Type = &t
		detailsType = t
	}
	if req.Details != nil {
		// Apply re-keys details for the item's final type.
		d := domain.DetailsFromMap(detailsType, req.Details)
		p.Details = &d
	}
	return p, nil
}
