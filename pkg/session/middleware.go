package session

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/stockroom/pkg/logger"
)

const sessionName = "stockroom_session"
const sessionStateIDKey = "state_id"

// EnsureState is a chi middleware that resolves the client's session cookie
// and injects its state ID into the request context, minting a fresh session
// when none exists. Unlike an auth middleware it never rejects a request;
// a client without a cookie simply gets a new empty state.
//
// After this middleware, handlers can safely call session.StateIDFromCtx(r.Context()).
func EnsureState(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := store.Get(r, sessionName)
			if err != nil {
				// Tampered cookie: fall through with the fresh session Get returned.
				log.WarnContext(r.Context(), "invalid session cookie, starting fresh", "error", err)
			}

			stateID, ok := sess.Values[sessionStateIDKey].(string)
			if !ok || stateID == "" {
				stateID = uuid.NewString()
				sess.Values[sessionStateIDKey] = stateID
				if err := sess.Save(r, w); err != nil {
					log.ErrorContext(r.Context(), "failed to save session", "error", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
			}

			ctx := WithStateID(r.Context(), stateID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
