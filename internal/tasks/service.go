// Package tasks is the task-creation and completion flow built on the
// difficulty classifier.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow/internal/difficulty"
	"github.com/focusflow/focusflow/internal/store"
)

// ManualTierReason is appended when the user overrides the classifier.
const ManualTierReason = "Tier set manually"

// Task is a stored task with its classification.
type Task struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Tier        difficulty.Tier `json:"tier"`
	Confidence  float64         `json:"confidence"`
	Reasons     []string        `json:"reasons"`
	XP          int             `json:"xp"`
	Minutes     int             `json:"minutes"`
	ManualTier  bool            `json:"manualTier"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

func (t *Task) Completed() bool { return t.CompletedAt != nil }

// CreateInput is what a user enters in the task dialog. A non-nil Tier
// overrides the classifier.
type CreateInput struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Tier        *difficulty.Tier `json:"tier,omitempty"`
}

// ListOptions filters List.
type ListOptions struct {
	Status store.TaskStatus
	Tier   difficulty.Tier
	Limit  int
}

// Completion is the outcome of finishing a task.
type Completion struct {
	Task            Task `json:"task"`
	XPAwarded       int  `json:"xpAwarded"`
	TotalXP         int  `json:"totalXP"`
	Level           int  `json:"level"`
	LeveledUp       bool `json:"leveledUp"`
	Streak          int  `json:"streak"`
	StreakMilestone bool `json:"streakMilestone"`
}

// Stats summarizes progress.
type Stats struct {
	Open                int                     `json:"open"`
	Completed           int                     `json:"completed"`
	CompletedByTier     map[difficulty.Tier]int `json:"completedByTier"`
	TotalXP             int                     `json:"totalXP"`
	Progress            LevelProgress           `json:"progress"`
	Streak              int                     `json:"streak"`
	NextStreakMilestone int                     `json:"nextStreakMilestone"`
}

// Service creates, lists and completes tasks.
type Service struct {
	tasks  store.TaskRepo
	events store.EventRepo
	now    func() time.Time
	newID  func() string
}

func NewService(tasks store.TaskRepo, events store.EventRepo) *Service {
	return &Service{
		tasks:  tasks,
		events: events,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Preview classifies without storing anything, applying override the way
// Create would. The task dialog calls it on every keystroke.
func (s *Service) Preview(title, description string, override *difficulty.Tier) difficulty.Result {
	r, _ := Classify(strings.TrimSpace(title), strings.TrimSpace(description), override)
	return r
}

// Classify applies an optional tier override to the classifier output.
// Picking the tier the classifier already chose is not an override.
func Classify(title, description string, override *difficulty.Tier) (difficulty.Result, bool) {
	r := difficulty.Classify(title, description)
	if override == nil || !override.IsValid() || *override == r.Tier {
		return r, false
	}

	t := *override
	r.Tier = t
	r.Confidence = 1
	r.SuggestedXP = difficulty.XPForTier(t)
	r.SuggestedTimeMinutes = difficulty.TimeForTier(t)
	r.Reasons = append(r.Reasons, ManualTierReason)
	return r, true
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	description := strings.TrimSpace(in.Description)
	if in.Tier != nil && !in.Tier.IsValid() {
		return nil, fmt.Errorf("invalid tier %q", *in.Tier)
	}

	r, manual := Classify(title, description, in.Tier)

	task := Task{
		ID:          s.newID(),
		Title:       title,
		Description: description,
		Tier:        r.Tier,
		Confidence:  r.Confidence,
		Reasons:     r.Reasons,
		XP:          r.SuggestedXP,
		Minutes:     r.SuggestedTimeMinutes,
		ManualTier:  manual,
		CreatedAt:   s.now(),
	}
	if err := s.tasks.Insert(ctx, toRecord(task)); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	// The task is saved; a lost classification event only costs history.
	if err := s.events.AppendClassification(ctx, store.ClassificationEventData{
		TaskID:     task.ID,
		Tier:       string(task.Tier),
		Confidence: task.Confidence,
		Reasons:    task.Reasons,
		ManualTier: manual,
	}); err != nil {
		slog.Warn("failed to record classification event", "task", task.ID, "error", err)
	}

	return &task, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	rec, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	t := fromRecord(*rec)
	return &t, nil
}

// Resolve finds a task by full ID or by a unique ID prefix.
func (s *Service) Resolve(ctx context.Context, ref string) (*Task, error) {
	t, err := s.Get(ctx, ref)
	if !errors.Is(err, ErrNotFound) {
		return t, err
	}
	if ref == "" {
		return nil, ErrNotFound
	}

	all, err := s.List(ctx, ListOptions{})
	if err != nil {
		return nil, err
	}
	var match *Task
	for i := range all {
		if !strings.HasPrefix(all[i].ID, ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %q", ErrAmbiguousID, ref)
		}
		match = &all[i]
	}
	if match == nil {
		return nil, ErrNotFound
	}
	return match, nil
}

func (s *Service) List(ctx context.Context, opts ListOptions) ([]Task, error) {
	recs, err := s.tasks.List(ctx, store.TaskFilter{
		Status: opts.Status,
		Tier:   string(opts.Tier),
		Limit:  opts.Limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]Task, len(recs))
	for i, r := range recs {
		out[i] = fromRecord(r)
	}
	return out, nil
}

// Complete marks the task done at now and awards its XP.
func (s *Service) Complete(ctx context.Context, id string, now time.Time) (*Completion, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Completed() {
		return nil, ErrAlreadyCompleted
	}

	history, err := s.events.QueryCompletions(ctx, store.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}
	totalBefore, days := tally(history)
	streakBefore := DayStreak(days, now)

	ok, err := s.tasks.MarkCompleted(ctx, id, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyCompleted
	}
	if err := s.events.AppendCompletion(ctx, store.CompletionEventData{
		TaskID:    id,
		Tier:      string(task.Tier),
		XP:        task.XP,
		Timestamp: now,
	}); err != nil {
		return nil, fmt.Errorf("record completion: %w", err)
	}

	task.CompletedAt = &now
	total := totalBefore + task.XP
	streak := DayStreak(append(days, now), now)

	return &Completion{
		Task:            *task,
		XPAwarded:       task.XP,
		TotalXP:         total,
		Level:           LevelForTotalXP(total),
		LeveledUp:       LevelForTotalXP(total) > LevelForTotalXP(totalBefore),
		Streak:          streak,
		StreakMilestone: streak > streakBefore && IsStreakMilestone(streak),
	}, nil
}

func (s *Service) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	open, err := s.tasks.List(ctx, store.TaskFilter{Status: store.StatusOpen})
	if err != nil {
		return nil, err
	}
	done, err := s.tasks.List(ctx, store.TaskFilter{Status: store.StatusCompleted})
	if err != nil {
		return nil, err
	}
	history, err := s.events.QueryCompletions(ctx, store.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}

	byTier := make(map[difficulty.Tier]int, 3)
	for _, t := range difficulty.AllTiers() {
		byTier[t] = 0
	}
	for _, c := range history {
		byTier[difficulty.Tier(c.Tier)]++
	}

	total, days := tally(history)
	streak := DayStreak(days, now)
	return &Stats{
		Open:                len(open),
		Completed:           len(done),
		CompletedByTier:     byTier,
		TotalXP:             total,
		Progress:            ProgressFor(total),
		Streak:              streak,
		NextStreakMilestone: NextStreakMilestone(streak),
	}, nil
}

// Reset deletes every task and its history. It returns the number of tasks
// removed.
func (s *Service) Reset(ctx context.Context) (int, error) {
	return s.tasks.DeleteAll(ctx)
}

func tally(history []store.CompletionEventRecord) (int, []time.Time) {
	total := 0
	days := make([]time.Time, 0, len(history)+1)
	for _, c := range history {
		total += c.XP
		days = append(days, c.Timestamp)
	}
	return total, days
}

func toRecord(t Task) *store.Task {
	return &store.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Tier:        string(t.Tier),
		Confidence:  t.Confidence,
		Reasons:     t.Reasons,
		XP:          t.XP,
		Minutes:     t.Minutes,
		ManualTier:  t.ManualTier,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

func fromRecord(r store.Task) Task {
	tier, ok := difficulty.ParseTier(r.Tier)
	if !ok {
		tier = difficulty.DefaultTier
	}
	reasons := r.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Tier:        tier,
		Confidence:  r.Confidence,
		Reasons:     reasons,
		XP:          r.XP,
		Minutes:     r.Minutes,
		ManualTier:  r.ManualTier,
		CreatedAt:   r.CreatedAt,
		CompletedAt: r.CompletedAt,
	}
}
