package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"

	"github.com/google/uuid"
)

// Question is one item within an assessment, shown in display order.
type Question struct {
	ent.Schema
}

func (Question) Mixin() []ent.Mixin {
	return []ent.Mixin{
		UUIDV7Mixin{},
	}
}

func (Question) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("assessment_id", uuid.UUID{}),

		field.Text("text").
			NotEmpty(),

		field.Int("order").
			NonNegative(),
	}
}

func (Question) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("assessment", Assessment.Type).
			Ref("questions").
			Unique().
			Required().
			Field("assessment_id"),
		edge.To("answers", AnswerDetail.Type),
	}
}
