package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var taskColumns = []string{
	"id", "title", "description", "tier", "confidence", "reasons",
	"xp", "minutes", "manual_tier", "created_at", "completed_at",
}

// taskRepo implements TaskRepo with ent's SQL builder.
type taskRepo struct {
	drv *entsql.Driver
}

func (r *taskRepo) Insert(ctx context.Context, t *Task) error {
	reasons, err := encodeReasons(t.Reasons)
	if err != nil {
		return err
	}

	var completedAt any
	if t.CompletedAt != nil {
		completedAt = t.CompletedAt.UnixMilli()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableTasks).
		Columns(taskColumns...).
		Values(t.ID, t.Title, t.Description, t.Tier, t.Confidence, reasons,
			t.XP, t.Minutes, t.ManualTier, t.CreatedAt.UnixMilli(), completedAt).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *taskRepo) Get(ctx context.Context, id string) (*Task, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select(taskColumns...).
		From(b.Table(tableTasks)).
		Where(entsql.EQ("id", id)).
		Query()

	tasks, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	return &tasks[0], nil
}

func (r *taskRepo) List(ctx context.Context, f TaskFilter) ([]Task, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(taskColumns...).From(b.Table(tableTasks))

	switch f.Status {
	case StatusOpen:
		sel.Where(entsql.IsNull("completed_at"))
	case StatusCompleted:
		sel.Where(entsql.NotNull("completed_at"))
	}
	if f.Tier != "" {
		sel.Where(entsql.EQ("tier", f.Tier))
	}
	sel.OrderBy(entsql.Desc("created_at"), "id")
	if f.Limit > 0 {
		sel.Limit(f.Limit)
	}

	query, args := sel.Query()
	return r.query(ctx, query, args)
}

func (r *taskRepo) MarkCompleted(ctx context.Context, id string, at time.Time) (bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Update(tableTasks).
		Set("completed_at", at.UnixMilli()).
		Where(entsql.And(entsql.EQ("id", id), entsql.IsNull("completed_at"))).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return false, fmt.Errorf("complete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("complete task: %w", err)
	}
	return n == 1, nil
}

func (r *taskRepo) DeleteAll(ctx context.Context) (int, error) {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}

	b := entsql.Dialect(dialect.SQLite)
	var removed int64
	for _, table := range []string{tableCompletions, tableClassifications, tableTasks} {
		query, args := b.Delete(table).Query()
		var res sql.Result
		if err := tx.Exec(ctx, query, args, &res); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("delete %s: %w", table, err)
		}
		if table == tableTasks {
			if removed, err = res.RowsAffected(); err != nil {
				tx.Rollback()
				return 0, fmt.Errorf("delete %s: %w", table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return int(removed), nil
}

func (r *taskRepo) query(ctx context.Context, query string, args []any) ([]Task, error) {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var (
			t           Task
			reasons     string
			createdAt   int64
			completedAt sql.NullInt64
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Tier, &t.Confidence,
			&reasons, &t.XP, &t.Minutes, &t.ManualTier, &createdAt, &completedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if err := json.Unmarshal([]byte(reasons), &t.Reasons); err != nil {
			return nil, fmt.Errorf("decode reasons for task %s: %w", t.ID, err)
		}
		t.CreatedAt = time.UnixMilli(createdAt)
		if completedAt.Valid {
			at := time.UnixMilli(completedAt.Int64)
			t.CompletedAt = &at
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// encodeReasons stores reasons as a JSON array; nil becomes [].
func encodeReasons(reasons []string) (string, error) {
	if reasons == nil {
		reasons = []string{}
	}
	b, err := json.Marshal(reasons)
	if err != nil {
		return "", fmt.Errorf("encode reasons: %w", err)
	}
	return string(b), nil
}
