package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/lectern/internal/logger"
	"github.com/abhisek/lectern/internal/quiz"
)

type QuizHandler struct {
	log         *logger.Logger
	quizzes     Quizzer
	defaultUser string
}

func NewQuizHandler(log *logger.Logger, quizzes Quizzer, defaultUser string) *QuizHandler {
	return &QuizHandler{
		log:         log.With("handler", "QuizHandler"),
		quizzes:     quizzes,
		defaultUser: defaultUser,
	}
}

type generateQuizRequest struct {
	LessonContent string `json:"lesson_content"`
	Topic         string `json:"topic" binding:"required"`
	LessonTitle   string `json:"lesson_title" binding:"required"`
	LessonIndex   int    `json:"lesson_index"`
	UserID        string `json:"user_id"`
}

// POST /quiz/generate
func (h *QuizHandler) Generate(c *gin.Context) {
	var req generateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.UserID == "" {
		req.UserID = h.defaultUser
	}

	q, err := h.quizzes.Generate(c.Request.Context(), quiz.Request{
		UserID:        req.UserID,
		Topic:         req.Topic,
		LessonTitle:   req.LessonTitle,
		LessonIndex:   req.LessonIndex,
		LessonContent: req.LessonContent,
	})
	if err != nil {
		h.log.Error("generate quiz failed", "topic", req.Topic, "error", err)
		RespondError(c, http.StatusInternalServerError, "quiz_error", err)
		return
	}
	RespondOK(c, gin.H{
		"success":         true,
		"quiz_id":         q.ID,
		"questions":       q.Questions,
		"total_questions": len(q.Questions),
		"fallback":        q.Fallback,
	})
}

type submitQuizRequest struct {
	QuizID    string   `json:"quiz_id" binding:"required"`
	UserID    string   `json:"user_id"`
	Answers   []string `json:"answers"`
	TimeSpent int      `json:"time_spent"`
}

// POST /quiz/submit
func (h *QuizHandler) Submit(c *gin.Context) {
	var req submitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.UserID == "" {
		req.UserID = h.defaultUser
	}

	res, err := h.quizzes.Submit(c.Request.Context(), quiz.Submission{
		QuizID:    req.QuizID,
		UserID:    req.UserID,
		Answers:   req.Answers,
		TimeSpent: req.TimeSpent,
	})
	if errors.Is(err, quiz.ErrQuizNotFound) {
		RespondError(c, http.StatusNotFound, "quiz_not_found", err)
		return
	}
	if err != nil {
		h.log.Error("submit quiz failed", "quiz", req.QuizID, "error", err)
		RespondError(c, http.StatusInternalServerError, "quiz_error", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "result": res})
}
