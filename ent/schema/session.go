package schema

import (
	"encoding/json"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Session is the persisted tutoring state of one conversation thread.
// The state document is owned by the course package and stored opaquely.
type Session struct {
	ent.Schema
}

func (Session) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Unique().
			Comment("Caller-chosen thread id"),
		field.JSON("state", json.RawMessage{}),
		field.Time("updated_at"),
	}
}
