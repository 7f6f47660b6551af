package syllabus

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/lectern/internal/extract"
	"github.com/abhisek/lectern/internal/llm"
)

// Strategy is one tier of syllabus generation.
type Strategy interface {
	Name() string
	Generate(ctx context.Context, topic string) ([]Lesson, error)
}

// ErrNotArray is returned when structured output does not hold a JSON array.
var ErrNotArray = errors.New("syllabus output is not a JSON array")

// Structured asks for a JSON array of {title, summary} objects.
type Structured struct {
	Gen Generator
}

func (Structured) Name() string { return "structured" }

func (s Structured) Generate(ctx context.Context, topic string) ([]Lesson, error) {
	text, err := s.Gen.Generate(llm.WithPurpose(ctx, llm.PurposeSyllabus), buildStructuredPrompt(topic))
	if err != nil {
		return nil, fmt.Errorf("generate structured syllabus: %w", err)
	}

	parsed := extract.Parse(text)
	switch parsed.Kind {
	case extract.Array:
		return lessonsFromArray(parsed.Array), nil
	case extract.Object, extract.NoMatch:
		return nil, fmt.Errorf("%w (got %s)", ErrNotArray, parsed.Kind)
	}
	return nil, ErrNotArray
}

func lessonsFromArray(items []any) []Lesson {
	lessons := make([]Lesson, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case map[string]any:
			l := Lesson{Title: "Untitled"}
			if title, ok := v["title"].(string); ok {
				l.Title = title
			}
			l.Summary = extract.String(v, "summary")
			lessons = append(lessons, l)
		default:
			title, summary, _ := strings.Cut(fmt.Sprint(v), "-")
			lessons = append(lessons, Lesson{
				Title:   strings.TrimSpace(title),
				Summary: strings.TrimSpace(summary),
			})
		}
	}
	return lessons
}

const maxLineLessons = 15

var numberPrefix = regexp.MustCompile(`^\d+\.\s*`)

// Lines asks for one lesson title per line.
type Lines struct {
	Gen Generator
}

func (Lines) Name() string { return "lines" }

func (s Lines) Generate(ctx context.Context, topic string) ([]Lesson, error) {
	text, err := s.Gen.Generate(llm.WithPurpose(ctx, llm.PurposeSyllabus), buildLinesPrompt(topic))
	if err != nil {
		return nil, fmt.Errorf("generate syllabus lines: %w", err)
	}

	var lessons []Lesson
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		title := numberPrefix.ReplaceAllString(line, "")
		lessons = append(lessons, Lesson{Title: title, Summary: "Learn " + strings.ToLower(title)})
		if len(lessons) == maxLineLessons {
			break
		}
	}
	return lessons, nil
}

// Template returns a fixed ten-lesson outline. It never fails.
type Template struct{}

func (Template) Name() string { return "template" }

func (Template) Generate(_ context.Context, topic string) ([]Lesson, error) {
	return TemplateLessons(topic), nil
}

// TemplateLessons is the static outline used when generation is unavailable.
func TemplateLessons(topic string) []Lesson {
	return []Lesson{
		{"Introduction to " + topic, "Overview and fundamental concepts"},
		{"Basic " + topic + " Concepts", "Core principles and terminology"},
		{topic + " Fundamentals", "Essential building blocks"},
		{"Working with " + topic, "Practical implementation basics"},
		{topic + " Best Practices", "Industry standards and conventions"},
		{"Advanced " + topic + " Techniques", "Complex implementations and optimizations"},
		{topic + " Real-world Applications", "Practical use cases and examples"},
		{"Troubleshooting " + topic, "Common issues and debugging strategies"},
		{topic + " Performance Optimization", "Speed and efficiency improvements"},
		{"Mastering " + topic, "Advanced mastery and expert techniques"},
	}
}
