package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// Patient is a person taking assessments.
type Patient struct {
	ent.Schema
}

func (Patient) Mixin() []ent.Mixin {
	return []ent.Mixin{
		UUIDV7Mixin{},
		TimeStampedMixin{},
	}
}

func (Patient) Fields() []ent.Field {
	return []ent.Field{
		field.String("name").
			MaxLen(100).
			NotEmpty(),
	}
}

func (Patient) Edges() []ent.Edge {
	return []ent.Edge{
		// Results reference the patient; deleting a patient with results
		// is refused by the FK constraint rather than cascading.
		edge.To("results", AssessmentResult.Type),
	}
}
