package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// CompletionEvent is the XP ledger: total XP and streaks are derived from
// these rows.
type CompletionEvent struct {
	ent.Schema
}

func (CompletionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (CompletionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("task_id").NotEmpty(),
		field.Enum("tier").Values("easy", "medium", "hard"),
		field.Int("xp").
			NonNegative().
			Comment("XP awarded"),
	}
}
