package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Task is a classified task. Completion is recorded both here and as a
// CompletionEvent.
type Task struct {
	ent.Schema
}

func (Task) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable().
			Comment("UUID"),
		field.String("title").
			NotEmpty(),
		field.String("description").
			Default(""),
		field.Enum("tier").
			Values("easy", "medium", "hard"),
		field.Float("confidence").
			Min(0).
			Max(1),
		field.Strings("reasons").
			Comment("Classifier explanations, JSON array"),
		field.Int("xp").
			NonNegative(),
		field.Int("minutes").
			NonNegative().
			Comment("Suggested time estimate"),
		field.Bool("manual_tier").
			Default(false).
			Comment("Tier was set by the user"),
		field.Int64("created_at").
			Immutable().
			Comment("Unix milliseconds"),
		field.Int64("completed_at").
			Optional().
			Nillable().
			Comment("Unix milliseconds; null while open"),
	}
}

func (Task) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("created_at"),
	}
}
