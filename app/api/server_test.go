package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/strike-cal/app/tasks"
)

type fakeStatus struct {
	snapshot tasks.StatusSnapshot
}

func (s *fakeStatus) Snapshot() tasks.StatusSnapshot {
	return s.snapshot
}

func (s *fakeStatus) Ready() bool {
	return s.snapshot.LastSuccessAt != nil
}

type fakeScheduler struct {
	requests int
	err      error
}

func (s *fakeScheduler) Start() {}
func (s *fakeScheduler) Stop()  {}

func (s *fakeScheduler) EnqueueTask(task tasks.TaskInterface) error {
	return s.err
}

func (s *fakeScheduler) RequestBuild() error {
	if s.err != nil {
		return s.err
	}
	s.requests++
	return nil
}

func readyStatus() *fakeStatus {
	at := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	return &fakeStatus{snapshot: tasks.StatusSnapshot{
		LastAttemptAt: &at,
		LastSuccessAt: &at,
		Items:         12,
		Events:        2,
	}}
}

func writeCalendar(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "milan-strikes.ics")
	if err := os.WriteFile(path, []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), 0644); err != nil {
		t.Fatalf("Failed to write calendar: %v", err)
	}
	return path
}

func serve(t *testing.T, handler *Handler, apiKey string, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	NewServer(handler, apiKey).ServeHTTP(w, req)
	return w
}

func TestGetCalendar(t *testing.T) {
	handler := NewHandler(writeCalendar(t), "Milan", "test", readyStatus(), &fakeScheduler{})

	w := serve(t, handler, "", httptest.NewRequest(http.MethodGet, "/calendar.ics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/calendar; charset=utf-8" {
		t.Errorf("Expected calendar content type, got '%s'", ct)
	}
	if events := w.Header().Get("X-Calendar-Events"); events != "2" {
		t.Errorf("Expected X-Calendar-Events '2', got '%s'", events)
	}
	if updated := w.Header().Get("X-Last-Updated"); updated != "2024-03-01T12:00:00Z" {
		t.Errorf("Expected X-Last-Updated '2024-03-01T12:00:00Z', got '%s'", updated)
	}
	if !strings.HasPrefix(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Errorf("Expected calendar body, got '%s'", w.Body.String())
	}
}

func TestGetCalendar_NotBuiltYet(t *testing.T) {
	handler := NewHandler(writeCalendar(t), "Milan", "test", &fakeStatus{}, &fakeScheduler{})

	w := serve(t, handler, "", httptest.NewRequest(http.MethodGet, "/calendar.ics", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestGetCalendar_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.ics")
	handler := NewHandler(path, "Milan", "test", readyStatus(), &fakeScheduler{})

	w := serve(t, handler, "", httptest.NewRequest(http.MethodGet, "/calendar.ics", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestGetHealth(t *testing.T) {
	handler := NewHandler(writeCalendar(t), "Milan", "test", readyStatus(), &fakeScheduler{})

	w := serve(t, handler, "", httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var body struct {
		Ready bool                 `json:"ready"`
		Build tasks.StatusSnapshot `json:"build"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !body.Ready {
		t.Error("Expected ready to be true")
	}
	if body.Build.Events != 2 || body.Build.Items != 12 {
		t.Errorf("Expected 12 items and 2 events, got %d and %d", body.Build.Items, body.Build.Events)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler := NewHandler(writeCalendar(t), "Milan", "test", readyStatus(), &fakeScheduler{})

	w := serve(t, handler, "", httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestRebuild_DisabledWithoutKey(t *testing.T) {
	scheduler := &fakeScheduler{}
	handler := NewHandler(writeCalendar(t), "Milan", "test", readyStatus(), scheduler)

	w := serve(t, handler, "", httptest.NewRequest(http.MethodPost, "/api/rebuild", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if scheduler.requests != 0 {
		t.Errorf("Expected no rebuild requests, got %d", scheduler.requests)
	}
}

func TestRebuild_Authentication(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		value    string
		expected int
	}{
		{"missing key", "", "", http.StatusUnauthorized},
		{"wrong key", "X-API-Key", "wrong", http.StatusUnauthorized},
		{"API key header", "X-API-Key", "secret", http.StatusAccepted},
		{"bearer token", "Authorization", "Bearer secret", http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler := &fakeScheduler{}
			handler := NewHandler(writeCalendar(t), "Milan", "test", readyStatus(), scheduler)

			req := httptest.NewRequest(http.MethodPost, "/api/rebuild", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}

			w := serve(t, handler, "secret", req)

			if w.Code != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, w.Code)
			}

			expectedRequests := 0
			if tt.expected == http.StatusAccepted {
				expectedRequests = 1
			}
			if scheduler.requests != expectedRequests {
				t.Errorf("Expected %d rebuild requests, got %d", expectedRequests, scheduler.requests)
			}
		})
	}
}

func TestRebuild_QueueFull(t *testing.T) {
	scheduler := &fakeScheduler{err: errors.New("task queue is full")}
	handler := NewHandler(writeCalendar(t), "Milan", "test", readyStatus(), scheduler)

	req := httptest.NewRequest(http.MethodPost, "/api/rebuild", nil)
	req.Header.Set("X-API-Key", "secret")

	w := serve(t, handler, "secret", req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestRootEndpoint(t *testing.T) {
	handler := NewHandler(writeCalendar(t), "Milan", "1.2.3", readyStatus(), &fakeScheduler{})

	w := serve(t, handler, "secret", httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["version"] != "1.2.3" {
		t.Errorf("Expected version '1.2.3', got '%v'", body["version"])
	}

	endpoints, ok := body["endpoints"].(map[string]any)
	if !ok {
		t.Fatal("Expected endpoints map")
	}
	if _, ok := endpoints["rebuild"]; !ok {
		t.Error("Expected rebuild endpoint to be listed when an API key is set")
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := NewHandler(writeCalendar(t), "Milan", "test", readyStatus(), &fakeScheduler{})

	w := serve(t, handler, "", httptest.NewRequest(http.MethodOptions, "/calendar.ics", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header")
	}
}
