package llm

import "context"

// Purpose labels recorded with every LLM request.
const (
	PurposeClassify = "classify"
	PurposeSyllabus = "syllabus"
	PurposeLesson   = "lesson"
	PurposeConcept  = "concept"
	PurposeDoubt    = "doubt"
	PurposeQuiz     = "quiz"
	PurposeRoadmap  = "roadmap"
)

type ctxKey int

const (
	purposeKey ctxKey = iota
	sessionKey
)

// WithPurpose labels requests made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose label, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// WithSession tags requests made with ctx with the tutoring session they
// serve, so request logs can be correlated with a conversation.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey, sessionID)
}

// SessionFrom returns the session tag, or "".
func SessionFrom(ctx context.Context) string {
	v, _ := ctx.Value(sessionKey).(string)
	return v
}
