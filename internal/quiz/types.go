// Package quiz generates lesson quizzes and scores submissions.
package quiz

import (
	"errors"
	"time"
)

// QuestionType is the kind of a quiz question.
type QuestionType string

const (
	MCQ    QuestionType = "mcq"
	Coding QuestionType = "coding"
)

// Question is a single quiz question. MCQ questions carry Options and
// AnswerIndex; coding questions carry ExpectedOutput and AnswerText.
type Question struct {
	Question       string       `json:"question"`
	Type           QuestionType `json:"type"`
	Options        []string     `json:"options,omitempty"`
	AnswerIndex    int          `json:"answer_index"`
	AnswerText     string       `json:"answer_text,omitempty"`
	ExpectedOutput string       `json:"expected_output,omitempty"`
	Explanation    string       `json:"explanation"`
	Difficulty     string       `json:"difficulty"`
}

// Quiz is a generated quiz for one lesson.
type Quiz struct {
	ID          string     `json:"quiz_id"`
	UserID      string     `json:"user_id"`
	Topic       string     `json:"topic"`
	LessonTitle string     `json:"lesson_title"`
	LessonIndex int        `json:"lesson_index"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"created_at"`
	// Fallback is set when generation failed and the placeholder question
	// was used.
	Fallback bool `json:"fallback,omitempty"`
}

// Request describes the lesson to quiz on.
type Request struct {
	UserID        string
	Topic         string
	LessonTitle   string
	LessonIndex   int
	LessonContent string
}

// Submission is a learner's answers, one per question in order.
type Submission struct {
	QuizID    string
	UserID    string
	Answers   []string
	TimeSpent int // seconds
}

// QuestionResult is the grading of one answer.
type QuestionResult struct {
	Index         int    `json:"question_index"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Correct       bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// Result is the outcome of a submission.
type Result struct {
	QuizID         string           `json:"quiz_id"`
	Score          float64          `json:"score"`
	CorrectAnswers int              `json:"correct_answers"`
	TotalQuestions int              `json:"total_questions"`
	Results        []QuestionResult `json:"detailed_results"`
	Recommendation string           `json:"recommendation"`
	TimeSpent      int              `json:"time_spent"`
}

// ErrQuizNotFound is returned by Submit for an unknown quiz id.
var ErrQuizNotFound = errors.New("quiz not found")
