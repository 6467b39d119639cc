package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/girya/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

// seedSession creates a session with a few classified reps.
func seedSession(t *testing.T, s *store.Store, id string) {
	t.Helper()

	if err := s.Sessions().Create(&store.Session{ID: id, Notes: "test session"}); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	for _, rep := range []*store.Rep{
		{SessionID: id, Movement: store.MovementClean, PeakVelocity: 1.2},
		{SessionID: id, Movement: store.MovementClean, PeakVelocity: 1.8},
		{SessionID: id, Movement: store.MovementSwing, PeakVelocity: 2.6},
	} {
		if err := s.Reps().Add(rep); err != nil {
			t.Fatalf("failed to add rep: %v", err)
		}
	}
}

func TestSessionHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)
	seedSession(t, s, "sess-1")

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if contentType := rec.Header().Get("Content-Type"); contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response listSessionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(response.Sessions))
	}
	if response.Sessions[0].ID != "sess-1" {
		t.Errorf("expected session ID 'sess-1', got %q", response.Sessions[0].ID)
	}
	if response.Sessions[0].Notes != "test session" {
		t.Errorf("expected notes 'test session', got %q", response.Sessions[0].Notes)
	}
	if response.Sessions[0].EndedAt != "" {
		t.Errorf("expected open session to omit ended_at, got %q", response.Sessions[0].EndedAt)
	}
}

func TestSessionHandler_Get(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)
	seedSession(t, s, "sess-1")

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/sess-1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response sessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.ID != "sess-1" {
		t.Errorf("expected session ID 'sess-1', got %q", response.ID)
	}
	if response.StartedAt == "" {
		t.Error("expected started_at to be set")
	}
}

func TestSessionHandler_Get_NotFound(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/no-such-session", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestSessionHandler_Delete(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)
	seedSession(t, s, "sess-1")

	req := httptest.NewRequest(http.MethodDelete, "/api/sessions/sess-1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	if _, err := s.Sessions().GetByID("sess-1"); err != store.ErrNotFound {
		t.Errorf("expected session deleted, got %v", err)
	}
}

func TestSessionHandler_Reps(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)
	seedSession(t, s, "sess-1")

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/sess-1/reps", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response listRepsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Reps) != 3 {
		t.Fatalf("expected 3 reps, got %d", len(response.Reps))
	}
	if response.Reps[0].Movement != "clean" {
		t.Errorf("expected first rep 'clean', got %q", response.Reps[0].Movement)
	}
	if response.Reps[2].PeakVelocity != 2.6 {
		t.Errorf("expected swing peak 2.6, got %f", response.Reps[2].PeakVelocity)
	}
}

func TestSessionHandler_Reps_SessionNotFound(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/no-such-session/reps", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestSessionHandler_Summary(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)
	seedSession(t, s, "sess-1")

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/sess-1/summary", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response summaryResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Movements) != 2 {
		t.Fatalf("expected 2 movement summaries, got %d", len(response.Movements))
	}
	if response.Movements[0].Movement != "clean" || response.Movements[0].Count != 2 {
		t.Errorf("unexpected clean summary: %+v", response.Movements[0])
	}
	if response.Movements[0].PeakVelocity != 1.8 {
		t.Errorf("expected clean peak 1.8, got %f", response.Movements[0].PeakVelocity)
	}
}

func TestSessionHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	// The collection endpoint is read-only: sessions are started from the
	// tray, not created over HTTP.
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestSessionHandler_UnknownSubresource(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)
	seedSession(t, s, "sess-1")

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/sess-1/bogus", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
