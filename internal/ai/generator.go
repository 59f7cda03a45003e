// Package ai turns a free-text trip request into draft itinerary items using
// Gemini through the google.golang.org/genai client.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	genai "google.golang.org/genai"

	"github.com/tripflow/planner/internal/domain"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gemini-2.5-flash"

// ErrEmptyResponse is returned when the model call yields neither a response
// nor an error.
var ErrEmptyResponse = errors.New("ai: empty model response")

const systemPrompt = `You are a world-class travel agent.
Generate a detailed itinerary in JSON format based on the user's request.
The output must be an array of itinerary items.
Infer specific times if not provided.
Map activities to one of these types: FLIGHT, HOTEL, ACTIVITY, FOOD, TRANSIT, NOTE.`

// GenerateFunc has the shape of (*genai.Models).GenerateContent.
type GenerateFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Config selects the credential and model.
type Config struct {
	APIKey string
	Model  string
}

// Generator produces itinerary drafts. The zero value and a Generator built
// without an API key are disabled: Generate returns no items and no error.
type Generator struct {
	model    string
	generate GenerateFunc
}

// New builds a Generator backed by the Gemini API.
func New(ctx context.Context, cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return &Generator{}, nil
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("ai.New: %w", err)
	}
	return NewWithFunc(cfg.Model, cli.Models.GenerateContent), nil
}

// NewWithFunc builds a Generator over an arbitrary model call.
func NewWithFunc(model string, fn GenerateFunc) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{model: model, generate: fn}
}

// Enabled reports whether a model is configured.
func (g *Generator) Enabled() bool {
	return g != nil && g.generate != nil
}

// rawItem is one element of the model's JSON array.
type rawItem struct {
	DayOffset int    `json:"dayOffset"`
	Time      string `json:"time"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Location  string `json:"location"`
	Notes     string `json:"notes"`
}

// Generate asks the model to plan a trip from prompt and returns unsaved
// drafts bound to tripID, each dated startDate plus its day offset.
// Model and decoding errors are returned as is; nothing is retried.
func (g *Generator) Generate(ctx context.Context, tripID uuid.UUID, prompt string, startDate time.Time) ([]domain.ItineraryItem, error) {
	if !g.Enabled() {
		return []domain.ItineraryItem{}, nil
	}

	start := domain.TruncateDate(startDate)
	user := fmt.Sprintf("Plan a trip starting %s. Request: %s", domain.DateKey(start), prompt)

	resp, err := g.generate(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: user}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
			ResponseMIMEType:  "application/json",
			ResponseSchema:    responseSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("ai.Generator.Generate: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("ai.Generator.Generate: %w", ErrEmptyResponse)
	}

	// Text joins every text part of the first candidate; a response without
	// candidates or text is an empty plan.
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		text = "[]"
	}
	var raw []rawItem
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("ai.Generator.Generate: decode: %w", err)
	}

	drafts := make([]domain.ItineraryItem, 0, len(raw))
	for _, r := range raw {
		drafts = append(drafts, r.draft(tripID, start))
	}
	return drafts, nil
}

func (r rawItem) draft(tripID uuid.UUID, start time.Time) domain.ItineraryItem {
	t, ok := domain.ParseActivityType(r.Type)
	if !ok {
		t = domain.ActivityCustom
	}
	return domain.ItineraryItem{
		TripID:   tripID,
		Date:     domain.AddDays(start, r.DayOffset),
		Time:     normalizeClock(r.Time),
		Type:     t,
		Title:    strings.TrimSpace(r.Title),
		Location: strings.TrimSpace(r.Location),
		Notes:    strings.TrimSpace(r.Notes),
	}
}

var clockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "3 PM", "3PM"}

// normalizeClock rewrites a model-supplied time as "HH:MM". Unparseable
// times become empty.
func normalizeClock(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if domain.ValidClock(s) {
		return s
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	return ""
}

var responseSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"dayOffset": {Type: genai.TypeInteger, Description: "Days after the trip start, 0 for the first day."},
			"time":      {Type: genai.TypeString, Description: "24-hour HH:MM."},
			"type": {
				Type: genai.TypeString,
				Enum: []string{"FLIGHT", "HOTEL", "ACTIVITY", "FOOD", "TRANSIT", "NOTE"},
			},
			"title":    {Type: genai.TypeString},
			"location": {Type: genai.TypeString},
			"notes":    {Type: genai.TypeString},
		},
		Required: []string{"dayOffset", "type", "title"},
	},
}
