package middleware

import (
	"context"
	"net/http"
	"strings"
)

// UserIDHeader carries the caller's opaque user id. There is no
// authentication; the header is trusted as sent.
const UserIDHeader = "X-User-ID"

type userIDKey struct{}

// NewUserID returns a middleware that stores the request's user id in its
// context, using fallback when the header is absent or blank.
func NewUserID(fallback string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(UserIDHeader))
			if id == "" {
				id = fallback
			}
			if h, ok := r.Context().Value(userHolderKey{}).(*userHolder); ok {
				h.id = id
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}

// WithUserID returns a copy of ctx carrying id.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserID returns the user id stored by NewUserID, or "" outside that middleware.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}
