// Package course is the tutoring session controller: it classifies queries,
// drives course navigation, and renders adaptive lessons against persisted
// per-session state.
package course

import (
	"slices"
	"time"

	"github.com/abhisek/lectern/internal/performance"
	"github.com/abhisek/lectern/internal/syllabus"
)

// Mode is the session's top-level state.
type Mode string

const (
	ModeNone    Mode = "none"
	ModeCourse  Mode = "course"
	ModeConcept Mode = "concept"
	ModePaused  Mode = "paused"
)

// State is everything remembered about one session between turns.
// CurrentLesson is a valid index into Syllabus whenever Mode is ModeCourse.
type State struct {
	Query                   string                       `json:"query"`
	Mode                    Mode                         `json:"mode"`
	Topic                   string                       `json:"topic"`
	Syllabus                []syllabus.Lesson            `json:"syllabus"`
	CurrentLesson           int                          `json:"current_lesson"`
	UserPerformance         performance.Summary          `json:"user_performance"`
	AdaptiveRecommendations []performance.Recommendation `json:"adaptive_recommendations"`
	Response                string                       `json:"response"`

	// AdaptedTopics lists topics whose syllabus has already been adapted.
	AdaptedTopics []string  `json:"adapted_topics,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewState returns the state of a session that has never been used.
func NewState() *State {
	return &State{Mode: ModeNone, UserPerformance: performance.Zero()}
}

// InCourse reports whether navigation commands apply.
func (s *State) InCourse() bool {
	return s.Mode == ModeCourse && len(s.Syllabus) > 0
}

func (s *State) adapted(topic string) bool {
	return slices.Contains(s.AdaptedTopics, topic)
}

func (s *State) markAdapted(topic string) {
	if !s.adapted(topic) {
		s.AdaptedTopics = append(s.AdaptedTopics, topic)
	}
}

// Turn is what a caller sees after one query.
type Turn struct {
	Response      string            `json:"response"`
	Mode          Mode              `json:"mode"`
	Topic         string            `json:"topic"`
	Syllabus      []syllabus.Lesson `json:"syllabus"`
	CurrentLesson int               `json:"current_lesson"`
	Query         string            `json:"query"`
}

func (s *State) turn() *Turn {
	return &Turn{
		Response:      s.Response,
		Mode:          s.Mode,
		Topic:         s.Topic,
		Syllabus:      slices.Clone(s.Syllabus),
		CurrentLesson: s.CurrentLesson,
		Query:         s.Query,
	}
}
