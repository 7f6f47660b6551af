package course

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/abhisek/lectern/internal/llm"
	"github.com/abhisek/lectern/internal/logger"
	"github.com/abhisek/lectern/internal/performance"
	"github.com/abhisek/lectern/internal/syllabus"
)

// LessonNotFound is rendered for an index outside the syllabus.
const LessonNotFound = "Lesson not found."

// ContentGenerator produces lesson and explanation text.
type ContentGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Stream(ctx context.Context, prompt string) iter.Seq2[string, error]
}

// Summarizer supplies performance summaries for adaptive rendering.
type Summarizer interface {
	Summary(ctx context.Context, userID, topic string) performance.Summary
}

// Renderer composes lesson text with an adaptive recommendation header.
type Renderer struct {
	gen              ContentGenerator
	perf             Summarizer
	userID           string
	repeatAdaptation bool
	log              *logger.Logger
}

// Prepared is a lesson ready for body generation.
type Prepared struct {
	Index  int
	Lesson syllabus.Lesson
	Header string
	prompt string
}

// Prepare runs the adaptive steps for the lesson at index and builds its
// header. It refreshes the cached performance and recommendations on st and
// may replace st.Syllabus. When lessons are inserted ahead of the rendered
// lesson, st.CurrentLesson is shifted so it still points at that lesson.
// ok is false when index is out of range.
func (r *Renderer) Prepare(ctx context.Context, st *State, index int) (Prepared, bool) {
	if index < 0 || index >= len(st.Syllabus) {
		return Prepared{}, false
	}
	lesson := st.Syllabus[index]
	topic := st.Topic

	summary := performance.Zero()
	if r.perf != nil {
		summary = r.perf.Summary(ctx, r.userID, topic)
	}
	recs := performance.Recommend(summary, topic)
	st.UserPerformance = summary
	st.AdaptiveRecommendations = recs

	if r.repeatAdaptation || !st.adapted(topic) {
		if a := syllabus.Adapt(st.Syllabus, summary, topic); a.Changed() {
			r.log.Info("syllabus adapted", "topic", topic, "kind", string(a.Kind), "at", a.At, "count", a.Count)
			st.Syllabus = a.Lessons
			st.markAdapted(topic)
			if a.At <= index {
				if st.CurrentLesson == index {
					st.CurrentLesson += a.Count
				}
				index += a.Count
			}
		}
	}

	return Prepared{
		Index:  index,
		Lesson: lesson,
		Header: lessonHeader(index, lesson.Title, topic, recs),
		prompt: buildLessonPrompt(topic, index, lesson.Title),
	}, true
}

// Render returns the full text of the lesson at index.
func (r *Renderer) Render(ctx context.Context, st *State, index int) string {
	p, ok := r.Prepare(ctx, st, index)
	if !ok {
		return LessonNotFound
	}
	return p.Header + r.body(ctx, p)
}

func (r *Renderer) body(ctx context.Context, p Prepared) string {
	text, err := r.gen.Generate(llm.WithPurpose(ctx, llm.PurposeLesson), p.prompt)
	if err != nil {
		r.log.Warn("lesson generation failed", "title", p.Lesson.Title, "error", err)
		return lessonFailure(err)
	}
	return text
}

// Stream yields the body of a prepared lesson. Generation errors become a
// final apology fragment.
func (r *Renderer) Stream(ctx context.Context, p Prepared) iter.Seq[string] {
	return func(yield func(string) bool) {
		for chunk, err := range r.gen.Stream(llm.WithPurpose(ctx, llm.PurposeLesson), p.prompt) {
			if err != nil {
				r.log.Warn("lesson stream failed", "title", p.Lesson.Title, "error", err)
				yield(lessonFailure(err))
				return
			}
			if !yield(chunk) {
				return
			}
		}
	}
}

func lessonFailure(err error) string {
	return fmt.Sprintf("Sorry, couldn't generate lesson due to: %v", err)
}

func lessonHeader(index int, title, topic string, recs []performance.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lesson %d: %s\n(Topic: %s)\n\n", index+1, title, topic)
	if len(recs) > 0 {
		b.WriteString("🎯 **Personalized Learning Recommendations:**\n")
		for _, rec := range recs {
			fmt.Fprintf(&b, "• %s\n", rec.Message)
		}
		b.WriteString("\n")
	}
	return b.String()
}
