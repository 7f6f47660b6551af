package performance

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/abhisek/lectern/internal/logger"
	"github.com/abhisek/lectern/internal/store"
)

// AttemptSource returns quiz attempts for a learner, most recent first.
// An empty topic means all topics.
type AttemptSource interface {
	Query(ctx context.Context, userID, topic string) ([]store.QuizAttempt, error)
}

// Tracker reads quiz history and summarizes it.
type Tracker struct {
	attempts AttemptSource
	log      *logger.Logger
}

// NewTracker creates a Tracker over attempts.
func NewTracker(attempts AttemptSource, log *logger.Logger) *Tracker {
	if log == nil {
		log = logger.Nop()
	}
	return &Tracker{attempts: attempts, log: log.With("component", "performance")}
}

// Summary returns the learner's summary, optionally filtered to one topic.
// Retrieval failures are logged and reported as the zero summary.
func (t *Tracker) Summary(ctx context.Context, userID, topic string) Summary {
	if t.attempts == nil {
		return Zero()
	}
	attempts, err := t.attempts.Query(ctx, userID, topic)
	if err != nil {
		t.log.Warn("performance retrieval failed", "user", userID, "topic", topic, "error", err)
		return Zero()
	}
	return Summarize(attempts)
}

// Attempt is the dashboard view of one quiz attempt.
type Attempt struct {
	QuizID         string    `json:"quiz_id"`
	Topic          string    `json:"topic"`
	LessonIndex    int       `json:"lesson_index"`
	Score          float64   `json:"score"`
	CorrectAnswers int       `json:"correct_answers"`
	TotalQuestions int       `json:"total_questions"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// Dashboard is the learner progress overview.
type Dashboard struct {
	UserID               string             `json:"user_id"`
	TotalQuizzes         int                `json:"total_quizzes"`
	AverageScore         float64            `json:"average_score"`
	CompletionPercentage int                `json:"completion_percentage"`
	WeakAreas            []string           `json:"weak_areas"`
	StrongAreas          []string           `json:"strong_areas"`
	RecentAttempts       []Attempt          `json:"recent_attempts"`
	Recommendations      []string           `json:"recommendations"`
	TopicScores          map[string]float64 `json:"topic_scores,omitempty"`
}

// Dashboard builds the progress overview for userID. Unlike Summary it
// reports retrieval errors, since the caller asked for this data directly.
func (t *Tracker) Dashboard(ctx context.Context, userID, topic string) (*Dashboard, error) {
	attempts, err := t.attempts.Query(ctx, userID, topic)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		UserID:          userID,
		WeakAreas:       []string{},
		StrongAreas:     []string{},
		RecentAttempts:  []Attempt{},
		Recommendations: []string{},
	}
	if len(attempts) == 0 {
		return d, nil
	}

	s := Summarize(attempts)
	d.TotalQuizzes = s.TotalAttempts
	d.AverageScore = math.Round(s.AverageScore*100) / 100
	d.CompletionPercentage = min(100, s.TotalAttempts*10)
	d.WeakAreas = s.WeakAreas
	d.StrongAreas = s.StrongAreas
	d.TopicScores = s.TopicScores

	for _, a := range attempts[:min(len(attempts), recentWindow)] {
		d.RecentAttempts = append(d.RecentAttempts, Attempt{
			QuizID:         a.QuizID,
			Topic:          a.Topic,
			LessonIndex:    a.LessonIndex,
			Score:          a.Score,
			CorrectAnswers: a.CorrectAnswers,
			TotalQuestions: a.TotalQuestions,
			SubmittedAt:    a.SubmittedAt,
		})
	}

	if s.AverageScore < reviewBelow {
		d.Recommendations = append(d.Recommendations, "Consider reviewing previous lessons before moving forward")
	} else if s.AverageScore >= fastTrackAbove {
		d.Recommendations = append(d.Recommendations, "Great progress! You're ready for advanced topics")
	}
	if len(s.WeakAreas) > 0 {
		d.Recommendations = append(d.Recommendations, "Focus on improving: "+strings.Join(s.WeakAreas, ", "))
	}
	return d, nil
}
