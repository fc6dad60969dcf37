package store

import (
	"context"
	"sort"
	"testing"

	"entgo.io/ent"
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusflow/focusflow/ent/schema"
)

// entColumns lists the columns an ent schema declares, mixins included.
func entColumns(s ent.Interface) []string {
	seen := map[string]bool{"id": true}
	for _, m := range s.Mixin() {
		for _, f := range m.Fields() {
			seen[f.Descriptor().Name] = true
		}
	}
	for _, f := range s.Fields() {
		seen[f.Descriptor().Name] = true
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func tableColumns(t *testing.T, s *Store, table string) []string {
	t.Helper()
	rows, err := s.DB().Query("SELECT name FROM pragma_table_info(?)", table)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	sort.Strings(names)
	return names
}

func TestTablesMatchEntSchema(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		table  string
		schema ent.Interface
	}{
		{tableTasks, schema.Task{}},
		{tableClassifications, schema.ClassificationEvent{}},
		{tableCompletions, schema.CompletionEvent{}},
		{tableLLMRequests, schema.LLMRequestEvent{}},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			assert.Equal(t, entColumns(tt.schema), tableColumns(t, s, tt.table))
		})
	}
}

// entFields maps each declared field, mixins included, to its descriptor.
func entFields(s ent.Interface) map[string]*field.Descriptor {
	out := make(map[string]*field.Descriptor)
	for _, m := range s.Mixin() {
		for _, f := range m.Fields() {
			out[f.Descriptor().Name] = f.Descriptor()
		}
	}
	for _, f := range s.Fields() {
		out[f.Descriptor().Name] = f.Descriptor()
	}
	return out
}

func TestMigrationColumnsMatchEntSchema(t *testing.T) {
	tests := []struct {
		table  *entschema.Table
		schema ent.Interface
	}{
		{TasksTable, schema.Task{}},
		{ClassificationEventsTable, schema.ClassificationEvent{}},
		{CompletionEventsTable, schema.CompletionEvent{}},
		{LlmRequestEventsTable, schema.LLMRequestEvent{}},
	}

	for _, tt := range tests {
		t.Run(tt.table.Name, func(t *testing.T) {
			fields := entFields(tt.schema)
			for _, col := range tt.table.Columns {
				d, ok := fields[col.Name]
				if !ok {
					// Event tables get an implicit integer id from ent.
					require.Equal(t, "id", col.Name, "column %s is not declared in ent/schema", col.Name)
					continue
				}
				assert.Equal(t, d.Info.Type, col.Type, "type of %s", col.Name)
				assert.Equal(t, d.Optional, col.Nullable, "nullability of %s", col.Name)
			}
		})
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, migrate(context.Background(), s.drv))
	assert.Equal(t, entColumns(schema.Task{}), tableColumns(t, s, tableTasks))
}
