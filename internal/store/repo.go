package store

import (
	"context"
	"time"
)

// QueryOpts filters and paginates event queries.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// TaskStatus selects open or completed tasks. The zero value matches both.
type TaskStatus string

const (
	StatusAny       TaskStatus = ""
	StatusOpen      TaskStatus = "open"
	StatusCompleted TaskStatus = "completed"
)

// Task is a persisted task together with its classification.
type Task struct {
	ID          string
	Title       string
	Description string
	Tier        string
	Confidence  float64
	Reasons     []string
	XP          int
	Minutes     int
	ManualTier  bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// Completed reports whether the task has been marked done.
func (t *Task) Completed() bool {
	return t.CompletedAt != nil
}

// TaskFilter narrows TaskRepo.List.
type TaskFilter struct {
	Status TaskStatus
	Tier   string // empty matches every tier
	Limit  int    // 0 = unlimited
}

// TaskRepo stores tasks.
type TaskRepo interface {
	Insert(ctx context.Context, t *Task) error

	// Get returns the task with id, or nil if none exists.
	Get(ctx context.Context, id string) (*Task, error)

	// List returns matching tasks, newest first.
	List(ctx context.Context, f TaskFilter) ([]Task, error)

	// MarkCompleted sets completed_at on an open task. It reports false
	// when the task does not exist or is already completed.
	MarkCompleted(ctx context.Context, id string, at time.Time) (bool, error)

	// DeleteAll removes every task with its classification and completion
	// events and returns the number of tasks removed. LLM request events
	// are kept.
	DeleteAll(ctx context.Context) (int, error)
}

// ClassificationEventData records the tier a task was created with.
type ClassificationEventData struct {
	TaskID     string
	Tier       string
	Confidence float64
	Reasons    []string
	ManualTier bool
}

// CompletionEventData records a task completion and the XP it awarded.
type CompletionEventData struct {
	TaskID    string
	Tier      string
	XP        int
	Timestamp time.Time
}

// CompletionEventRecord is a persisted completion event.
type CompletionEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	TaskID    string
	Tier      string
	XP        int
}

// LLMRequestEventData captures a single LLM request.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a persisted LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM requests for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo appends and queries events. Every append takes the next value
// of the global sequence.
type EventRepo interface {
	AppendClassification(ctx context.Context, data ClassificationEventData) error
	AppendCompletion(ctx context.Context, data CompletionEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryCompletions returns completion events in sequence order.
	QueryCompletions(ctx context.Context, opts QueryOpts) ([]CompletionEventRecord, error)

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one LLM request event, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates LLM requests per purpose, ordered by
	// purpose name.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
}
