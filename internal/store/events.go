package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on top of the global sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

// insertEvent writes one row into table, stamped with the next sequence
// value and at (now when zero).
func (r *eventRepo) insertEvent(ctx context.Context, table string, at time.Time, cols []string, vals []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	if at.IsZero() {
		at = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, cols...)...).
		Values(append([]any{seqNum, at.UnixMilli()}, vals...)...).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	return nil
}

func (r *eventRepo) AppendClassification(ctx context.Context, data ClassificationEventData) error {
	reasons, err := encodeReasons(data.Reasons)
	if err != nil {
		return err
	}
	return r.insertEvent(ctx, tableClassifications, time.Time{},
		[]string{"task_id", "tier", "confidence", "reasons", "manual_tier"},
		[]any{data.TaskID, data.Tier, data.Confidence, reasons, data.ManualTier})
}

func (r *eventRepo) AppendCompletion(ctx context.Context, data CompletionEventData) error {
	return r.insertEvent(ctx, tableCompletions, data.Timestamp,
		[]string{"task_id", "tier", "xp"},
		[]any{data.TaskID, data.Tier, data.XP})
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	return r.insertEvent(ctx, tableLLMRequests, time.Time{},
		[]string{
			"provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "request_body", "response_body",
		},
		[]any{
			data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
		})
}

// applyQueryOpts adds the QueryOpts filters to sel.
func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}

func (r *eventRepo) QueryCompletions(ctx context.Context, opts QueryOpts) ([]CompletionEventRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select("id", "sequence", "timestamp", "task_id", "tier", "xp").
		From(b.Table(tableCompletions)).
		OrderBy("sequence")
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query completion events: %w", err)
	}
	defer rows.Close()

	var out []CompletionEventRecord
	for rows.Next() {
		var (
			rec CompletionEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.TaskID, &rec.Tier, &rec.XP); err != nil {
			return nil, fmt.Errorf("scan completion event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

var llmEventColumns = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success", "error_message",
	"request_body", "response_body",
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(llmEventColumns...).
		From(b.Table(tableLLMRequests)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	return r.queryLLM(ctx, query, args)
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select(llmEventColumns...).
		From(b.Table(tableLLMRequests)).
		Where(entsql.EQ("id", id)).
		Query()

	recs, err := r.queryLLM(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

func (r *eventRepo) queryLLM(ctx context.Context, query string, args []any) ([]LLMRequestEventRecord, error) {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEventRecord
	for rows.Next() {
		var (
			rec LLMRequestEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.Provider, &rec.Model,
			&rec.Purpose, &rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs,
			&rec.Success, &rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody); err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select(
		"purpose",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As("SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END)", "failures"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
		entsql.As(entsql.Avg("latency_ms"), "avg_latency_ms"),
	).
		From(b.Table(tableLLMRequests)).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsageStats
	for rows.Next() {
		var (
			s   LLMUsageStats
			avg sql.NullFloat64
		)
		if err := rows.Scan(&s.Purpose, &s.Calls, &s.Failures, &s.InputTokens, &s.OutputTokens, &avg); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		s.AvgLatencyMs = int64(avg.Float64 + 0.5)
		out = append(out, s)
	}
	return out, rows.Err()
}
