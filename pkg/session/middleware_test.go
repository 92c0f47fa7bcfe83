package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/stockroom/pkg/config"
	"github.com/ghuser/stockroom/pkg/logger"
)

// newTestStore returns a gorilla CookieStore (no Redis required) for unit tests.
// In production the RedisStore is used; the sessions.Store interface is identical.
func newTestStore() sessions.Store {
	return sessions.NewCookieStore(
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
	)
}

// newTestLogger creates a logger that only emits errors.
func newTestLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

// requestWithState builds an *http.Request carrying a valid session cookie
// with the given state ID.
func requestWithState(t *testing.T, store sessions.Store, stateID string) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)

	sess, err := store.Get(r, sessionName)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	sess.Values[sessionStateIDKey] = stateID
	if err := sess.Save(r, w); err != nil {
		t.Fatalf("save session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestEnsureState_NewClient(t *testing.T) {
	store := newTestStore()

	var captured string
	handler := EnsureState(store, newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := StateIDFromCtx(r.Context())
		if err != nil {
			t.Fatalf("StateIDFromCtx: %v", err)
		}
		captured = id
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/inventory", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if _, err := uuid.Parse(captured); err != nil {
		t.Errorf("minted state id %q is not a uuid: %v", captured, err)
	}
	if len(rr.Result().Cookies()) == 0 {
		t.Error("expected a session cookie on the response")
	}
}

func TestEnsureState_ReturningClient(t *testing.T) {
	store := newTestStore()
	existing := uuid.NewString()
	req := requestWithState(t, store, existing)

	var captured string
	handler := EnsureState(store, newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = StateIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if captured != existing {
		t.Errorf("state id = %q, want the existing %q", captured, existing)
	}
}

func TestEnsureState_TamperedCookie(t *testing.T) {
	store := newTestStore()

	req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
	req.AddCookie(&http.Cookie{Name: sessionName, Value: "garbage"})

	var captured string
	handler := EnsureState(store, newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = StateIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	// A tampered cookie never rejects the request; the client starts fresh.
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if _, err := uuid.Parse(captured); err != nil {
		t.Errorf("fresh state id %q is not a uuid: %v", captured, err)
	}
}
