package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableTasks           = "tasks"
	tableClassifications = "classification_events"
	tableCompletions     = "completion_events"
	tableLLMRequests     = "llm_request_events"
)

// Every event table carries the same three leading columns.
func eventColumns(extra ...*schema.Column) []*schema.Column {
	return append([]*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
	}, extra...)
}

var (
	// TasksColumns holds the columns for the "tasks" table.
	TasksColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "title", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "tier", Type: field.TypeEnum, Enums: []string{"easy", "medium", "hard"}},
		{Name: "confidence", Type: field.TypeFloat64},
		{Name: "reasons", Type: field.TypeJSON},
		{Name: "xp", Type: field.TypeInt},
		{Name: "minutes", Type: field.TypeInt},
		{Name: "manual_tier", Type: field.TypeBool, Default: false},
		{Name: "created_at", Type: field.TypeInt64},
		{Name: "completed_at", Type: field.TypeInt64, Nullable: true},
	}
	// TasksTable holds the schema information for the "tasks" table.
	TasksTable = &schema.Table{
		Name:       tableTasks,
		Columns:    TasksColumns,
		PrimaryKey: []*schema.Column{TasksColumns[0]},
		Indexes: []*schema.Index{
			{Name: "task_created_at", Columns: []*schema.Column{TasksColumns[9]}},
		},
	}

	// ClassificationEventsColumns holds the columns for the "classification_events" table.
	ClassificationEventsColumns = eventColumns(
		&schema.Column{Name: "task_id", Type: field.TypeString},
		&schema.Column{Name: "tier", Type: field.TypeEnum, Enums: []string{"easy", "medium", "hard"}},
		&schema.Column{Name: "confidence", Type: field.TypeFloat64},
		&schema.Column{Name: "reasons", Type: field.TypeJSON},
		&schema.Column{Name: "manual_tier", Type: field.TypeBool, Default: false},
	)
	// ClassificationEventsTable holds the schema information for the "classification_events" table.
	ClassificationEventsTable = &schema.Table{
		Name:       tableClassifications,
		Columns:    ClassificationEventsColumns,
		PrimaryKey: []*schema.Column{ClassificationEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "classificationevent_timestamp", Columns: []*schema.Column{ClassificationEventsColumns[2]}},
		},
	}

	// CompletionEventsColumns holds the columns for the "completion_events" table.
	CompletionEventsColumns = eventColumns(
		&schema.Column{Name: "task_id", Type: field.TypeString},
		&schema.Column{Name: "tier", Type: field.TypeEnum, Enums: []string{"easy", "medium", "hard"}},
		&schema.Column{Name: "xp", Type: field.TypeInt},
	)
	// CompletionEventsTable holds the schema information for the "completion_events" table.
	CompletionEventsTable = &schema.Table{
		Name:       tableCompletions,
		Columns:    CompletionEventsColumns,
		PrimaryKey: []*schema.Column{CompletionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "completionevent_timestamp", Columns: []*schema.Column{CompletionEventsColumns[2]}},
		},
	}

	// LlmRequestEventsColumns holds the columns for the "llm_request_events" table.
	LlmRequestEventsColumns = eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Default: ""},
	)
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = &schema.Table{
		Name:       tableLLMRequests,
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LlmRequestEventsColumns[5]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		TasksTable,
		ClassificationEventsTable,
		CompletionEventsTable,
		LlmRequestEventsTable,
	}
)

// migrate creates missing tables, columns and indexes. Columns are never
// dropped.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv, schema.WithDropColumn(false), schema.WithDropIndex(false))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
