package syllabus

import (
	"slices"
	"strings"

	"github.com/abhisek/lectern/internal/performance"
)

// AdaptKind says how Adapt changed a syllabus.
type AdaptKind string

const (
	AdaptNone     AdaptKind = ""
	AdaptRemedial AdaptKind = "remedial"
	AdaptAdvanced AdaptKind = "advanced"
)

// Adaptation is the result of Adapt. Lessons is always a fresh slice.
// At is the index of the first inserted lesson; Count is how many were added.
type Adaptation struct {
	Lessons []Lesson
	Kind    AdaptKind
	At      int
	Count   int
}

// Changed reports whether any lessons were added.
func (a Adaptation) Changed() bool { return a.Kind != AdaptNone }

// RemedialLessons are inserted when the learner is weak in topic.
func RemedialLessons(topic string) []Lesson {
	return []Lesson{
		{topic + " Practice Session", "Hands-on practice with guided examples"},
		{topic + " Common Mistakes", "Learn about common pitfalls and how to avoid them"},
		{topic + " Review & Reinforcement", "Comprehensive review of key concepts"},
	}
}

// AdvancedLessons are appended when the learner is strong in topic.
func AdvancedLessons(topic string) []Lesson {
	return []Lesson{
		{"Advanced " + topic + " Techniques", "Explore advanced concepts and optimization techniques"},
		{topic + " Real-world Applications", "See how this is used in industry and complex projects"},
		{topic + " Best Practices & Patterns", "Learn industry-standard approaches and design patterns"},
	}
}

// Adapt reshapes lessons for the learner's performance in topic. A weak
// topic gets remedial lessons right after the first lesson whose title
// mentions it (or after lesson 0). A strong topic with a high overall
// average gets advanced lessons at the end. The input is never modified.
func Adapt(lessons []Lesson, s performance.Summary, topic string) Adaptation {
	out := slices.Clone(lessons)
	if s.TotalAttempts == 0 {
		return Adaptation{Lessons: out}
	}

	switch {
	case s.IsWeak(topic):
		anchor := 0
		needle := strings.ToLower(topic)
		for i, l := range lessons {
			if strings.Contains(strings.ToLower(l.Title), needle) {
				anchor = i
				break
			}
		}
		at := min(anchor+1, len(out))
		extra := RemedialLessons(topic)
		return Adaptation{
			Lessons: slices.Insert(out, at, extra...),
			Kind:    AdaptRemedial,
			At:      at,
			Count:   len(extra),
		}
	case s.IsStrong(topic) && s.AverageScore >= performance.StrongThreshold:
		extra := AdvancedLessons(topic)
		return Adaptation{
			Lessons: append(out, extra...),
			Kind:    AdaptAdvanced,
			At:      len(lessons),
			Count:   len(extra),
		}
	}
	return Adaptation{Lessons: out}
}
