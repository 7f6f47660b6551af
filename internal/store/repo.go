package store

import (
	"context"
	"encoding/json"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match
	Session string    // exact session id match
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// SessionRecord is the persisted form of one tutoring session. State is
// opaque JSON owned by the course package.
type SessionRecord struct {
	SessionID string
	State     json.RawMessage
	UpdatedAt time.Time
}

// SessionRepo loads and saves session state by session id.
type SessionRepo interface {
	// Load returns the stored session, or nil if none exists.
	Load(ctx context.Context, sessionID string) (*SessionRecord, error)

	// Save upserts the session. The last writer wins.
	Save(ctx context.Context, rec *SessionRecord) error
}

// QuizAttempt is one submitted quiz with its score.
type QuizAttempt struct {
	ID             int
	Sequence       int64
	QuizID         string
	UserID         string
	Topic          string
	LessonIndex    int
	Score          float64 // 0-100
	CorrectAnswers int
	TotalQuestions int
	TimeSpent      int // seconds
	Answers        []string
	Results        json.RawMessage
	SubmittedAt    time.Time
}

// AttemptRepo stores quiz attempts.
type AttemptRepo interface {
	// Append records a new attempt. SubmittedAt defaults to now.
	Append(ctx context.Context, a *QuizAttempt) error

	// Query returns a user's attempts, most recent first. An empty topic
	// matches every topic.
	Query(ctx context.Context, userID, topic string) ([]QuizAttempt, error)
}

// QuizRecord is a generated quiz awaiting submission.
type QuizRecord struct {
	QuizID      string
	UserID      string
	Topic       string
	LessonTitle string
	LessonIndex int
	Questions   json.RawMessage
	CreatedAt   time.Time
}

// QuizRepo stores generated quizzes.
type QuizRepo interface {
	Save(ctx context.Context, q *QuizRecord) error

	// Get returns ErrNotFound when no quiz has the id.
	Get(ctx context.Context, quizID string) (*QuizRecord, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	SessionID    string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// LLMEventRepo is the append side used by the LLM logging decorator.
type LLMEventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	LLMEventRepo

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns the event with id, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates usage per purpose, busiest first.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates usage per model, busiest first.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
