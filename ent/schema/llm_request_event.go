package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LLMRequestEvent is one model call: tokens, latency, outcome and the
// flattened prompt and reply, for `lectern llm` and cost estimates.
type LLMRequestEvent struct {
	ent.Schema
}

func (LLMRequestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}, TimestampMixin{}}
}

func (LLMRequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("provider"),
		field.String("model").
			Comment("Model id reported by the provider"),
		field.String("purpose").
			Comment("classify, syllabus, lesson, concept, doubt, quiz or roadmap"),
		field.String("session_id").
			Default("").
			Comment("Tutoring session that triggered the call, empty for CLI one-offs"),
		field.Int("input_tokens").
			Default(0),
		field.Int("output_tokens").
			Default(0),
		field.Int64("latency_ms").
			Default(0),
		field.Bool("success"),
		field.String("error_message").
			Default(""),
		field.Text("request_body").
			Default("").
			Comment("Flattened system prompt and messages"),
		field.Text("response_body").
			Default(""),
	}
}

func (LLMRequestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("purpose"),
		index.Fields("session_id"),
		index.Fields("timestamp"),
	}
}
