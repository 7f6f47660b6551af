package httpapi

import (
	"context"

	"github.com/abhisek/lectern/internal/course"
	"github.com/abhisek/lectern/internal/performance"
	"github.com/abhisek/lectern/internal/quiz"
	"github.com/abhisek/lectern/internal/roadmap"
)

// Tutor is the part of course.Service the API uses.
type Tutor interface {
	SubmitQuery(ctx context.Context, sessionID, query string) (*course.Turn, error)
	StreamLesson(ctx context.Context, sessionID string) (*course.LessonStream, error)
	AnswerDoubt(ctx context.Context, d course.Doubt) (string, error)
}

type Quizzer interface {
	Generate(ctx context.Context, req quiz.Request) (*quiz.Quiz, error)
	Submit(ctx context.Context, sub quiz.Submission) (*quiz.Result, error)
}

type Dashboards interface {
	Dashboard(ctx context.Context, userID, topic string) (*performance.Dashboard, error)
}

type Roadmaps interface {
	Generate(ctx context.Context, skill string) (*roadmap.Roadmap, error)
}

var (
	_ Tutor      = (*course.Service)(nil)
	_ Quizzer    = (*quiz.Service)(nil)
	_ Dashboards = (*performance.Tracker)(nil)
	_ Roadmaps   = (*roadmap.Generator)(nil)
)
