package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"

	"github.com/google/uuid"
)

// Option is a selectable answer choice shared by all questions of an
// assessment. Its value is the score contribution when selected.
type Option struct {
	ent.Schema
}

func (Option) Mixin() []ent.Mixin {
	return []ent.Mixin{
		UUIDV7Mixin{},
	}
}

func (Option) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("assessment_id", uuid.UUID{}),

		field.Text("text").
			NotEmpty(),

		field.Int("value"),

		field.Int("order").
			NonNegative(),
	}
}

func (Option) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("assessment", Assessment.Type).
			Ref("options").
			Unique().
			Required().
			Field("assessment_id"),
		edge.To("answers", AnswerDetail.Type),
	}
}
