package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AttemptEvent records one graded query submission.
type AttemptEvent struct {
	ent.Schema
}

func (AttemptEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AttemptEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty(),
		field.String("challenge_id").
			NotEmpty().
			Comment("Links to ChallengeEvent"),
		field.String("topic").
			NotEmpty(),
		field.String("category").
			NotEmpty(),
		field.Text("query").
			Comment("SQL the learner submitted"),
		field.String("outcome").
			NotEmpty().
			Comment("correct, incorrect, unevaluable or failed"),
		field.Text("error_message").
			Default("").
			Comment("Database error when the query could not run"),
		field.Int64("duration_ms").
			Default(0).
			Comment("Time spent executing and comparing both queries"),
	}
}

func (AttemptEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("category"),
		index.Fields("outcome"),
		index.Fields("challenge_id"),
	}
}
