package session

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const stateIDKey contextKey = "state_id"

// ErrStateIDNotFound is returned when no state ID exists in the request
// context, meaning EnsureState did not run for this route.
var ErrStateIDNotFound = errors.New("state_id not found in context")

// StateIDFromCtx extracts the client's state ID from the request context.
func StateIDFromCtx(ctx context.Context) (string, error) {
	id, ok := ctx.Value(stateIDKey).(string)
	if !ok || id == "" {
		return "", ErrStateIDNotFound
	}
	return id, nil
}

// WithStateID returns a new context with the given state ID attached.
// Used by the EnsureState middleware after resolving the session.
func WithStateID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, stateIDKey, id)
}
