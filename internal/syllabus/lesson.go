// Package syllabus builds and adapts the ordered lesson list of a course.
package syllabus

import (
	"context"
	"fmt"
	"strings"
)

// Lesson is one entry in a syllabus. Lessons are values: adapting a
// syllabus builds new slices rather than editing existing entries.
type Lesson struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Listing renders lessons as the numbered "Syllabus:" block shown when a
// course starts.
func Listing(lessons []Lesson) string {
	var b strings.Builder
	b.WriteString("Syllabus:")
	for i, l := range lessons {
		fmt.Fprintf(&b, "\n%d. %s - %s", i+1, l.Title, l.Summary)
	}
	return b.String()
}
