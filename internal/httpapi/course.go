package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/lectern/internal/course"
	"github.com/abhisek/lectern/internal/logger"
	"github.com/abhisek/lectern/internal/syllabus"
)

// defaultThread is used when a request carries no thread_id.
const defaultThread = "1"

type CourseHandler struct {
	log   *logger.Logger
	tutor Tutor
}

func NewCourseHandler(log *logger.Logger, tutor Tutor) *CourseHandler {
	return &CourseHandler{
		log:   log.With("handler", "CourseHandler"),
		tutor: tutor,
	}
}

type courseRequest struct {
	Query    string `json:"query"`
	ThreadID string `json:"thread_id"`
}

func (r courseRequest) thread() string {
	if r.ThreadID == "" {
		return defaultThread
	}
	return r.ThreadID
}

type courseResponse struct {
	Success bool `json:"success"`
	*course.Turn
}

// POST /course
func (h *CourseHandler) Submit(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	turn, err := h.tutor.SubmitQuery(c.Request.Context(), req.thread(), req.Query)
	if err != nil {
		h.log.Error("submit query failed", "thread", req.thread(), "error", err)
		RespondError(c, http.StatusInternalServerError, "session_error", err)
		return
	}
	RespondOK(c, courseResponse{Success: true, Turn: turn})
}

type courseMeta struct {
	Type          string            `json:"type"`
	Mode          course.Mode       `json:"mode"`
	Topic         string            `json:"topic"`
	Syllabus      []syllabus.Lesson `json:"syllabus"`
	CurrentLesson int               `json:"current_lesson"`
}

// POST /course-stream
func (h *CourseHandler) SubmitStream(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	w := newNDJSONWriter(c)
	turn, err := h.tutor.SubmitQuery(c.Request.Context(), req.thread(), req.Query)
	if err != nil {
		h.log.Error("submit query failed", "thread", req.thread(), "error", err)
		w.write(errorEvent(err))
		return
	}

	meta := courseMeta{
		Type:          "meta",
		Mode:          turn.Mode,
		Topic:         turn.Topic,
		Syllabus:      turn.Syllabus,
		CurrentLesson: turn.CurrentLesson,
	}
	if !w.write(meta) {
		return
	}
	for _, chunk := range ChunkMarkdown(turn.Response, DefaultChunkSize) {
		if !w.write(chunkEvent(chunk)) {
			return
		}
	}
	w.write(doneEvent())
}

type lessonMeta struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
	Title string `json:"title"`
	Topic string `json:"topic"`
}

// GET /lesson-stream?thread_id=...
//
// Streams the current lesson of the thread as the model writes it.
func (h *CourseHandler) LessonStream(c *gin.Context) {
	thread := c.DefaultQuery("thread_id", defaultThread)

	ls, err := h.tutor.StreamLesson(c.Request.Context(), thread)
	if errors.Is(err, course.ErrEmptySyllabus) {
		RespondError(c, http.StatusConflict, "no_active_course", err)
		return
	}
	if err != nil {
		h.log.Error("stream lesson failed", "thread", thread, "error", err)
		RespondError(c, http.StatusInternalServerError, "session_error", err)
		return
	}

	w := newNDJSONWriter(c)
	if !w.write(lessonMeta{Type: "meta", Index: ls.Index, Title: ls.Title, Topic: ls.Topic}) {
		return
	}
	if ls.Header != "" && !w.write(chunkEvent(ls.Header)) {
		return
	}
	for piece := range ls.Body {
		if !w.write(chunkEvent(piece)) {
			return
		}
	}
	w.write(doneEvent())
}

type doubtRequest struct {
	Doubt         string `json:"doubt" binding:"required"`
	LessonContext string `json:"lesson_context"`
	Topic         string `json:"topic"`
	ThreadID      string `json:"thread_id"`
}

// POST /doubt
func (h *CourseHandler) Doubt(c *gin.Context) {
	var req doubtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	answer, err := h.tutor.AnswerDoubt(c.Request.Context(), course.Doubt{
		SessionID:     req.ThreadID,
		Question:      req.Doubt,
		Topic:         req.Topic,
		LessonContext: req.LessonContext,
	})
	if err != nil {
		h.log.Error("answer doubt failed", "thread", req.ThreadID, "error", err)
		RespondError(c, http.StatusInternalServerError, "session_error", err)
		return
	}
	RespondOK(c, gin.H{
		"success": true,
		"answer":  answer,
		"doubt":   req.Doubt,
		"topic":   req.Topic,
	})
}
