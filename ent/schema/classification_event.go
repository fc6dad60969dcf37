package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// ClassificationEvent records how a task was classified when it was created.
type ClassificationEvent struct {
	ent.Schema
}

func (ClassificationEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ClassificationEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("task_id").NotEmpty(),
		field.Enum("tier").Values("easy", "medium", "hard"),
		field.Float("confidence"),
		field.Strings("reasons"),
		field.Bool("manual_tier").Default(false),
	}
}
