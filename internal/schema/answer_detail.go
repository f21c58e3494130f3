package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"

	"github.com/google/uuid"
)

// AnswerDetail is one recorded answer within a result. The value is copied
// from the selected option at submission time so the history stays stable
// if the option is edited later. Rows are append-only.
type AnswerDetail struct {
	ent.Schema
}

func (AnswerDetail) Mixin() []ent.Mixin {
	return []ent.Mixin{
		UUIDV7Mixin{},
		CreatedAtMixin{},
	}
}

func (AnswerDetail) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("result_id", uuid.UUID{}),

		field.UUID("question_id", uuid.UUID{}),

		field.UUID("option_id", uuid.UUID{}),

		field.Int("value"),

		field.Time("answered_at").
			Default(time.Now),
	}
}

func (AnswerDetail) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("result", AssessmentResult.Type).
			Ref("answers").
			Unique().
			Required().
			Field("result_id"),
		edge.From("question", Question.Type).
			Ref("answers").
			Unique().
			Required().
			Field("question_id"),
		edge.From("option", Option.Type).
			Ref("answers").
			Unique().
			Required().
			Field("option_id"),
	}
}
