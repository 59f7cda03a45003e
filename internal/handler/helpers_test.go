package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tripflow/planner/internal/domain"
	"github.com/tripflow/planner/internal/handler"
	"github.com/tripflow/planner/internal/planner"
	"github.com/tripflow/planner/internal/repo"
	"github.com/tripflow/planner/internal/service"
	"github.com/tripflow/planner/testutil"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	list    func(ctx context.Context, userID string) ([]domain.Trip, error)
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

func (m *mockTripServicer) List(ctx context.Context, userID string) ([]domain.Trip, error) {
	return m.list(ctx, userID)
}
func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// stubGenerator is a test double for handler.ItineraryGenerator.
type stubGenerator struct {
	enabled  bool
	generate func(ctx context.Context, tripID uuid.UUID, prompt string, start time.Time) ([]domain.ItineraryItem, error)
}

func (g *stubGenerator) Enabled() bool { return g.enabled }
func (g *stubGenerator) Generate(ctx context.Context, tripID uuid.UUID, prompt string, start time.Time) ([]domain.ItineraryItem, error) {
	return g.generate(ctx, tripID, prompt, start)
}

var _ handler.ItineraryGenerator = (*stubGenerator)(nil)

// ---- helpers ---------------------------------------------------------------

const testUser = repo.SeedUserID

// newRouter wires a Server into the production router with test defaults.
func newRouter(d handler.Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return handler.NewRouter(handler.NewServer(d), handler.RouterOptions{
		Logger:        d.Logger,
		CORSOrigins:   []string{"http://localhost:5173"},
		MaxBodyBytes:  1 << 20,
		DefaultUserID: testUser,
	})
}

// localDeps wires real services and sessions over a fresh local store,
// which starts out with the seeded Jordan trip.
func localDeps(t *testing.T) handler.Deps {
	t.Helper()
	gw := testutil.NewLocalGateway(t)
	itinerary := service.NewItineraryService(gw.Trips, gw.Itinerary)
	return handler.Deps{
		Trips:     service.NewTripService(gw.Trips),
		Itinerary: itinerary,
		Planners:  planner.NewSessions(itinerary, nil),
		Mode:      "local",
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// do sends a request through h and returns the recorder.
func do(h http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decode reads rec's JSON body into a value of type T.
func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// errorCode extracts error.code from an error response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode[map[string]map[string]string](t, rec)
	return body["error"]["code"]
}

func seedPath(suffix string) string {
	return "/trips/" + repo.SeedTripID.String() + suffix
}

func jsonRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// localDepsSharing returns deps with their own planner sessions over the
// same services as d, like a second server process.
func localDepsSharing(t *testing.T, d handler.Deps) handler.Deps {
	t.Helper()
	itinerary := d.Itinerary.(*service.ItineraryService)
	d.Planners = planner.NewSessions(itinerary, nil)
	return d
}
