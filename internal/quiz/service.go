package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/lectern/internal/llm"
	"github.com/abhisek/lectern/internal/logger"
	"github.com/abhisek/lectern/internal/store"
)

const (
	maxQuestions = 5
	maxTokens    = 4096
)

// Service generates quizzes and grades submissions.
type Service struct {
	provider llm.Provider
	quizzes  store.QuizRepo
	attempts store.AttemptRepo
	log      *logger.Logger
	now      func() time.Time
}

// NewService creates a quiz service.
func NewService(provider llm.Provider, quizzes store.QuizRepo, attempts store.AttemptRepo, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		provider: provider,
		quizzes:  quizzes,
		attempts: attempts,
		log:      log.With("component", "quiz"),
		now:      time.Now,
	}
}

type quizOutput struct {
	Questions []Question `json:"questions"`
}

// Generate creates and stores a quiz for a lesson. When generation fails a
// single placeholder question is used so the learner can still record an
// attempt; only storage failures are returned.
func (s *Service) Generate(ctx context.Context, req Request) (*Quiz, error) {
	questions, err := s.generate(ctx, req)
	fallback := false
	if err != nil {
		s.log.Warn("quiz generation failed, using fallback question", "topic", req.Topic, "lesson", req.LessonTitle, "error", err)
		questions = fallbackQuestions(req.LessonTitle)
		fallback = true
	}

	now := s.now().UTC()
	q := &Quiz{
		ID:          fmt.Sprintf("%s_%s_%d_%d", req.UserID, req.Topic, req.LessonIndex, now.Unix()),
		UserID:      req.UserID,
		Topic:       req.Topic,
		LessonTitle: req.LessonTitle,
		LessonIndex: req.LessonIndex,
		Questions:   questions,
		CreatedAt:   now,
		Fallback:    fallback,
	}

	raw, err := json.Marshal(q.Questions)
	if err != nil {
		return nil, fmt.Errorf("encode questions: %w", err)
	}
	if err := s.quizzes.Save(ctx, &store.QuizRecord{
		QuizID:      q.ID,
		UserID:      q.UserID,
		Topic:       q.Topic,
		LessonTitle: q.LessonTitle,
		LessonIndex: q.LessonIndex,
		Questions:   raw,
		CreatedAt:   q.CreatedAt,
	}); err != nil {
		return nil, fmt.Errorf("save quiz: %w", err)
	}
	return q, nil
}

func (s *Service) generate(ctx context.Context, req Request) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: quizSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuizUserMessage(req)},
		},
		Schema:    QuizSchema,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}

	var questions []Question
	for _, q := range out.Questions {
		if clean, ok := normalize(q); ok {
			questions = append(questions, clean)
		}
		if len(questions) == maxQuestions {
			break
		}
	}
	if len(questions) == 0 {
		return nil, errors.New("quiz response has no usable questions")
	}
	return questions, nil
}

// normalize drops fields that do not belong to the question type and
// rejects questions that cannot be graded.
func normalize(q Question) (Question, bool) {
	q.Question = strings.TrimSpace(q.Question)
	if q.Question == "" {
		return q, false
	}
	if q.Difficulty == "" {
		q.Difficulty = "medium"
	}

	switch q.Type {
	case MCQ:
		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
			return q, false
		}
		q.AnswerText = ""
		q.ExpectedOutput = ""
	case Coding:
		q.Options = nil
		q.AnswerIndex = 0
	default:
		return q, false
	}
	return q, true
}

func fallbackQuestions(lessonTitle string) []Question {
	return []Question{{
		Question:    fmt.Sprintf("What is the main concept covered in '%s'?", lessonTitle),
		Type:        MCQ,
		Options:     []string{"Basic understanding", "Advanced concept", "Practical application", "All of the above"},
		AnswerIndex: 3,
		Explanation: "This lesson covers multiple aspects of the topic.",
		Difficulty:  "easy",
	}}
}

// Get returns a stored quiz.
func (s *Service) Get(ctx context.Context, quizID string) (*Quiz, error) {
	rec, err := s.quizzes.Get(ctx, quizID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrQuizNotFound, quizID)
	}
	if err != nil {
		return nil, err
	}

	var questions []Question
	if err := json.Unmarshal(rec.Questions, &questions); err != nil {
		return nil, fmt.Errorf("decode quiz %q: %w", quizID, err)
	}
	return &Quiz{
		ID:          rec.QuizID,
		UserID:      rec.UserID,
		Topic:       rec.Topic,
		LessonTitle: rec.LessonTitle,
		LessonIndex: rec.LessonIndex,
		Questions:   questions,
		CreatedAt:   rec.CreatedAt,
	}, nil
}

// Submit grades a submission and records the attempt. Unanswered questions
// count as wrong.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Result, error) {
	q, err := s.Get(ctx, sub.QuizID)
	if err != nil {
		return nil, err
	}

	res := &Result{
		QuizID:         q.ID,
		TotalQuestions: len(q.Questions),
		TimeSpent:      sub.TimeSpent,
	}
	for i, answer := range sub.Answers {
		if i >= len(q.Questions) {
			break
		}
		question := q.Questions[i]
		correct := grade(question, answer)
		if correct {
			res.CorrectAnswers++
		}
		res.Results = append(res.Results, QuestionResult{
			Index:         i,
			Question:      question.Question,
			UserAnswer:    answer,
			CorrectAnswer: correctAnswer(question),
			Correct:       correct,
			Explanation:   question.Explanation,
		})
	}
	if res.TotalQuestions > 0 {
		res.Score = float64(res.CorrectAnswers) / float64(res.TotalQuestions) * 100
	}
	res.Recommendation = recommendation(res.Score)

	details, err := json.Marshal(res.Results)
	if err != nil {
		return nil, fmt.Errorf("encode results: %w", err)
	}
	userID := sub.UserID
	if userID == "" {
		userID = q.UserID
	}
	if err := s.attempts.Append(ctx, &store.QuizAttempt{
		QuizID:         q.ID,
		UserID:         userID,
		Topic:          q.Topic,
		LessonIndex:    q.LessonIndex,
		Score:          res.Score,
		CorrectAnswers: res.CorrectAnswers,
		TotalQuestions: res.TotalQuestions,
		TimeSpent:      sub.TimeSpent,
		Answers:        sub.Answers,
		Results:        details,
		SubmittedAt:    s.now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	s.log.Info("quiz submitted", "quiz", q.ID, "user", userID, "score", res.Score)
	return res, nil
}

// grade checks one answer. MCQ answers may be the option index or the
// option text; coding answers are compared trimmed and case-insensitively.
func grade(q Question, answer string) bool {
	answer = strings.TrimSpace(answer)
	switch q.Type {
	case MCQ:
		if n, err := strconv.Atoi(answer); err == nil {
			return n == q.AnswerIndex
		}
		return q.AnswerIndex < len(q.Options) && strings.EqualFold(answer, strings.TrimSpace(q.Options[q.AnswerIndex]))
	case Coding:
		return strings.ToLower(answer) == strings.ToLower(strings.TrimSpace(q.AnswerText))
	}
	return false
}

func correctAnswer(q Question) string {
	if q.Type == MCQ && q.AnswerIndex < len(q.Options) {
		return q.Options[q.AnswerIndex]
	}
	return q.AnswerText
}

func recommendation(score float64) string {
	switch {
	case score < 50:
		return "review"
	case score >= 80:
		return "fast_track"
	default:
		return "continue"
	}
}
