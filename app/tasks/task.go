package tasks

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

type TaskType string

const (
	TaskTypeBuildCalendar TaskType = "build_calendar"
)

const DefaultMaxRetries = 3

var taskSeq atomic.Uint64

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	GetTarget() string
	GetRetryCount() int
	GetMaxRetries() int
	IncrementRetryCount()
	CanRetry() bool
	Start()
}

// Task is the retry and timing state of one queued unit of work. Target is
// what the task produces, e.g. the calendar output path. Durations come from
// the injected clock so they follow the build's notion of time.
type Task struct {
	ID         string
	Type       TaskType
	Target     string
	RetryCount int
	MaxRetries int
	StartedAt  *time.Time

	clock clockwork.Clock
}

func NewTask(taskType TaskType, target string, clock clockwork.Clock) Task {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return Task{
		ID:         fmt.Sprintf("%s-%d", taskType, taskSeq.Add(1)),
		Type:       taskType,
		Target:     target,
		MaxRetries: DefaultMaxRetries,
		clock:      clock,
	}
}

func (t *Task) GetID() string { return t.ID }
func (t *Task) GetType() TaskType { return t.Type }
func (t *Task) GetTarget() string { return t.Target }
func (t *Task) GetRetryCount() int { return t.RetryCount }
func (t *Task) GetMaxRetries() int { return t.MaxRetries }
func (t *Task) IncrementRetryCount() { t.RetryCount++ }

func (t *Task) CanRetry() bool {
	return t.RetryCount < t.MaxRetries
}

// Start marks the beginning of an attempt; retries restart the timer.
func (t *Task) Start() {
	now := t.clock.Now()
	t.StartedAt = &now
}

// Duration is the time since the current attempt started, or zero if it has
// not started.
func (t *Task) Duration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return t.clock.Since(*t.StartedAt)
}
