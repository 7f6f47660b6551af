package schema

import (
	"encoding/json"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Quiz is a generated quiz for one lesson, kept so answers can be graded
// later.
type Quiz struct {
	ent.Schema
}

func (Quiz) Fields() []ent.Field {
	return []ent.Field{
		field.String("quiz_id").
			Unique().
			Comment("{user}_{topic}_{lesson index}_{unix seconds}"),
		field.String("user_id"),
		field.String("topic"),
		field.String("lesson_title").
			Default(""),
		field.Int("lesson_index").
			Default(0),
		field.JSON("questions", json.RawMessage{}),
		field.Time("created_at"),
	}
}

func (Quiz) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id"),
	}
}

// QuizAttempt is one graded submission. Attempts drive performance
// summaries and syllabus adaptation.
type QuizAttempt struct {
	ent.Schema
}

func (QuizAttempt) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (QuizAttempt) Fields() []ent.Field {
	return []ent.Field{
		field.String("quiz_id"),
		field.String("user_id"),
		field.String("topic"),
		field.Int("lesson_index").
			Default(0),
		field.Float("score").
			Comment("Percentage 0-100"),
		field.Int("correct_answers").
			Default(0),
		field.Int("total_questions").
			Default(0),
		field.Int("time_spent").
			Default(0).
			Comment("Seconds"),
		field.JSON("answers", []string{}),
		field.JSON("results", json.RawMessage{}),
		field.Time("submitted_at"),
	}
}

func (QuizAttempt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "topic"),
		index.Fields("submitted_at"),
	}
}
