package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripflow/planner/internal/middleware"
)

// decodingHandler decodes a JSON body the way the API handlers do and maps
// an oversized body to 413.
func decodingHandler(reached *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		var v map[string]any
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				return
			}
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestMaxBodySizeHandler(t *testing.T) {
	const limit = 64
	small := `{"prompt":"a day in Petra"}`
	large := `{"prompt":"` + strings.Repeat("x", 2*limit) + `"}`

	tests := []struct {
		name        string
		body        string
		knownLength bool
		wantStatus  int
		wantReached bool
	}{
		{"within limit", small, true, http.StatusOK, true},
		{"declared length over limit is rejected up front", large, true, http.StatusRequestEntityTooLarge, false},
		{"streamed body over limit fails the read", large, false, http.StatusRequestEntityTooLarge, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var reached bool
			h := middleware.NewMaxBodySizeHandler(limit)(decodingHandler(&reached))

			req := httptest.NewRequest(http.MethodPost, "/trips/x/generate", strings.NewReader(tc.body))
			if !tc.knownLength {
				req.ContentLength = -1
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantReached, reached)
		})
	}
}

func TestMaxBodySizeHandler_EarlyRejectWritesErrorBody(t *testing.T) {
	var reached bool
	h := middleware.NewMaxBodySizeHandler(10)(decodingHandler(&reached))

	req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(strings.Repeat("x", 11)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "request_too_large", body.Error.Code)
}
