package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Assessment is a reusable questionnaire definition with scoring thresholds.
type Assessment struct {
	ent.Schema
}

func (Assessment) Mixin() []ent.Mixin {
	return []ent.Mixin{
		UUIDV7Mixin{},
		TimeStampedMixin{},
	}
}

func (Assessment) Fields() []ent.Field {
	return []ent.Field{
		field.String("name").
			MaxLen(100).
			NotEmpty(),

		field.String("type").
			MaxLen(50).
			NotEmpty().
			Comment("Free-form category, e.g. 'depression', 'anxiety'"),

		field.Text("description").
			Optional().
			Nillable(),

		field.Int("cutoff").
			NonNegative().
			Comment("Score at or above which a result is clinically significant"),

		field.Int("max_score").
			NonNegative(),
	}
}

func (Assessment) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("questions", Question.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
		edge.To("options", Option.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
		edge.To("results", AssessmentResult.Type),
	}
}

func (Assessment) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("type"),
	}
}
