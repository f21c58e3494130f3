package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"

	"github.com/google/uuid"
)

// AssessmentResult is one patient's attempt at one assessment.
//
// Lifecycle: not_started → in_progress → completed. total_score and
// completed_at are set only on completion; started_at only on start.
type AssessmentResult struct {
	ent.Schema
}

func (AssessmentResult) Mixin() []ent.Mixin {
	return []ent.Mixin{
		UUIDV7Mixin{},
		TimeStampedMixin{},
	}
}

func (AssessmentResult) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("patient_id", uuid.UUID{}),

		field.UUID("assessment_id", uuid.UUID{}),

		field.Enum("status").
			Values("not_started", "in_progress", "completed").
			Default("not_started"),

		field.Int("total_score").
			Optional().
			Nillable().
			Comment("Sum of answer values, persisted at completion"),

		field.Time("started_at").
			Optional().
			Nillable(),

		field.Time("completed_at").
			Optional().
			Nillable(),
	}
}

func (AssessmentResult) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("patient", Patient.Type).
			Ref("results").
			Unique().
			Required().
			Field("patient_id"),
		edge.From("assessment", Assessment.Type).
			Ref("results").
			Unique().
			Required().
			Field("assessment_id"),
		edge.To("answers", AnswerDetail.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
	}
}
