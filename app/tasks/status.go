package tasks

import (
	"sync"
	"time"
)

// BuildStatus records the outcome of the latest builds for the HTTP API.
type BuildStatus struct {
	mu            sync.RWMutex
	lastAttemptAt *time.Time
	lastSuccessAt *time.Time
	items         int
	events        int
	lastError     string
}

type StatusSnapshot struct {
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
	LastSuccessAt *time.Time `json:"last_success_at,omitempty"`
	Items         int        `json:"items"`
	Events        int        `json:"events"`
	LastError     string     `json:"last_error,omitempty"`
}

func NewBuildStatus() *BuildStatus {
	return &BuildStatus{}
}

func (s *BuildStatus) recordSuccess(at time.Time, items, events int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAttemptAt = &at
	s.lastSuccessAt = &at
	s.items = items
	s.events = events
	s.lastError = ""
}

func (s *BuildStatus) recordFailure(at time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAttemptAt = &at
	s.lastError = err.Error()
}

func (s *BuildStatus) Snapshot() StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StatusSnapshot{
		LastAttemptAt: s.lastAttemptAt,
		LastSuccessAt: s.lastSuccessAt,
		Items:         s.items,
		Events:        s.events,
		LastError:     s.lastError,
	}
}

func (s *BuildStatus) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSuccessAt != nil
}
