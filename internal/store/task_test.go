package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(id, title, tier string, created time.Time) *Task {
	return &Task{
		ID:         id,
		Title:      title,
		Tier:       tier,
		Confidence: 0.75,
		Reasons:    []string{"Short title suggests a simple task"},
		XP:         25,
		Minutes:    15,
		CreatedAt:  created,
	}
}

func TestTaskInsertAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.TaskRepo()
	ctx := context.Background()

	created := time.UnixMilli(1_700_000_000_000)
	task := newTask("t1", "Call mom", "easy", created)
	task.Description = "about the weekend"
	task.ManualTier = true
	require.NoError(t, repo.Insert(ctx, task))

	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "Call mom", got.Title)
	assert.Equal(t, "about the weekend", got.Description)
	assert.Equal(t, "easy", got.Tier)
	assert.InDelta(t, 0.75, got.Confidence, 1e-9)
	assert.Equal(t, []string{"Short title suggests a simple task"}, got.Reasons)
	assert.Equal(t, 25, got.XP)
	assert.Equal(t, 15, got.Minutes)
	assert.True(t, got.ManualTier)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.False(t, got.Completed())
}

func TestTaskGetMissing(t *testing.T) {
	s := openTestStore(t)

	got, err := s.TaskRepo().Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTaskNilReasonsStoredAsEmpty(t *testing.T) {
	s := openTestStore(t)
	repo := s.TaskRepo()
	ctx := context.Background()

	task := newTask("t1", "Figure it out", "medium", time.Now())
	task.Reasons = nil
	require.NoError(t, repo.Insert(ctx, task))

	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	assert.NotNil(t, got.Reasons)
	assert.Empty(t, got.Reasons)
}

func TestTaskDuplicateID(t *testing.T) {
	s := openTestStore(t)
	repo := s.TaskRepo()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newTask("t1", "a", "easy", time.Now())))
	assert.Error(t, repo.Insert(ctx, newTask("t1", "b", "easy", time.Now())))
}

func TestTaskListFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.TaskRepo()
	ctx := context.Background()

	base := time.UnixMilli(1_700_000_000_000)
	require.NoError(t, repo.Insert(ctx, newTask("a", "oldest", "easy", base)))
	require.NoError(t, repo.Insert(ctx, newTask("b", "middle", "hard", base.Add(time.Minute))))
	require.NoError(t, repo.Insert(ctx, newTask("c", "newest", "easy", base.Add(2*time.Minute))))

	ok, err := repo.MarkCompleted(ctx, "b", base.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, ok)

	ids := func(tasks []Task) []string {
		out := make([]string, len(tasks))
		for i, t := range tasks {
			out[i] = t.ID
		}
		return out
	}

	tests := []struct {
		name   string
		filter TaskFilter
		want   []string
	}{
		{"all newest first", TaskFilter{}, []string{"c", "b", "a"}},
		{"open", TaskFilter{Status: StatusOpen}, []string{"c", "a"}},
		{"completed", TaskFilter{Status: StatusCompleted}, []string{"b"}},
		{"tier", TaskFilter{Tier: "easy"}, []string{"c", "a"}},
		{"tier and status", TaskFilter{Tier: "hard", Status: StatusOpen}, []string{}},
		{"limit", TaskFilter{Limit: 2}, []string{"c", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestTaskMarkCompleted(t *testing.T) {
	s := openTestStore(t)
	repo := s.TaskRepo()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newTask("t1", "Call mom", "easy", time.Now())))

	at := time.UnixMilli(1_700_000_500_000)
	ok, err := repo.MarkCompleted(ctx, "t1", at)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, at.Equal(*got.CompletedAt))

	ok, err = repo.MarkCompleted(ctx, "t1", at.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok, "second completion must not update")

	ok, err = repo.MarkCompleted(ctx, "missing", at)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTaskDeleteAll(t *testing.T) {
	s := openTestStore(t)
	repo := s.TaskRepo()
	events := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newTask("a", "one", "easy", time.Now())))
	require.NoError(t, repo.Insert(ctx, newTask("b", "two", "hard", time.Now())))
	require.NoError(t, events.AppendClassification(ctx, ClassificationEventData{TaskID: "a", Tier: "easy"}))
	require.NoError(t, events.AppendCompletion(ctx, CompletionEventData{TaskID: "a", Tier: "easy", XP: 25}))
	require.NoError(t, events.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "difficulty-advice", Success: true}))

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tasks, err := repo.List(ctx, TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)

	completions, err := events.QueryCompletions(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, completions)

	llmEvents, err := events.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, llmEvents, 1, "LLM events survive a reset")
}
