package httputil

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	userIDSlot contextKey = "userIDSlot"
)

// WithUserID adds the authenticated user id to the request context and
// records it in the slot installed by WithUserIDSlot, if any.
func WithUserID(r *http.Request, userID string) *http.Request {
	if slot, ok := r.Context().Value(userIDSlot).(*string); ok {
		*slot = userID
	}
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	return r.WithContext(ctx)
}

// WithUserIDSlot lets middleware running outside authentication see the
// user id once the request has been served. The returned pointer holds ""
// until WithUserID is called further down the chain.
func WithUserIDSlot(r *http.Request) (*http.Request, *string) {
	slot := new(string)
	return r.WithContext(context.WithValue(r.Context(), userIDSlot, slot)), slot
}

// GetUserID returns the authenticated user id, or "" for anonymous requests
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. ok is false when the header is absent; a malformed header yields
// ok=true with an empty token.
func BearerToken(r *http.Request) (token string, ok bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, value, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", true
	}
	return strings.TrimSpace(value), true
}
