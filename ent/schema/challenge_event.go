package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ChallengeEvent records a challenge being issued to a learner.
type ChallengeEvent struct {
	ent.Schema
}

func (ChallengeEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ChallengeEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Practice session the challenge belongs to"),
		field.String("challenge_id").
			NotEmpty(),
		field.String("topic").
			NotEmpty().
			Comment("Schema topic, e.g. sales"),
		field.String("category").
			NotEmpty().
			Comment("Window function category, e.g. lag"),
		field.Text("question"),
	}
}

func (ChallengeEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("challenge_id"),
	}
}
