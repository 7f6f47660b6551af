package classify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/lectern/internal/llm"
)

func newClassifier(responses ...llm.MockResponse) (*Classifier, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	return New(llm.NewTextGenerator(mock), nil), mock
}

func TestHeuristic_CourseTriggers(t *testing.T) {
	queries := []string{
		"Teach me recursion",
		"I need a FULL COURSE on Rust",
		"complete course in statistics please",
		"learn go from scratch",
		"give me a syllabus for linear algebra",
		"I'd like to learn python from basics",
		"teach kubernetes step by step",
		"the whole course on compilers",
		"an entire course about databases",
		"I want to learn SQL",
		"i want to study music theory",
	}
	for _, q := range queries {
		got := Heuristic(q)
		if got.Type != Course {
			t.Errorf("Heuristic(%q).Type = %q, want course", q, got.Type)
		}
		if got.Topic != q {
			t.Errorf("Heuristic(%q).Topic = %q, want raw query", q, got.Topic)
		}
		if got.Source != SourceHeuristic {
			t.Errorf("Heuristic(%q).Source = %q", q, got.Source)
		}
	}
}

func TestHeuristic_Concept(t *testing.T) {
	queries := []string{
		"what is a closure?",
		"explain tail calls",
		"how does TCP slow start work",
		"teacher salaries in Ohio",
	}
	for _, q := range queries {
		if got := Heuristic(q); got.Type != Concept {
			t.Errorf("Heuristic(%q).Type = %q, want concept", q, got.Type)
		}
	}
}

func TestClassify_ModelObject(t *testing.T) {
	c, mock := newClassifier(llm.TextResponse(`{"type": "COURSE", "topic": "recursion", "reason": "wants a course"}`))

	got := c.Classify(t.Context(), "teach me recursion")
	if got.Type != Course || got.Topic != "recursion" || got.Source != SourceModel {
		t.Fatalf("Classify = %+v", got)
	}
	if got.Reason != "wants a course" {
		t.Errorf("Reason = %q", got.Reason)
	}
	if !strings.Contains(mock.Prompt(0), "teach me recursion") {
		t.Errorf("prompt does not carry the query: %q", mock.Prompt(0))
	}
}

func TestClassify_ObjectInsideProse(t *testing.T) {
	c, _ := newClassifier(llm.TextResponse("Here you go:\n{\"type\": \"concept\", \"topic\": \"closures\"}\n"))

	got := c.Classify(t.Context(), "what is a closure")
	if got.Type != Concept || got.Topic != "closures" {
		t.Fatalf("Classify = %+v", got)
	}
}

func TestClassify_UnknownTypeCoercedToConcept(t *testing.T) {
	c, _ := newClassifier(llm.TextResponse(`{"type": "tutorial", "topic": "go"}`))

	got := c.Classify(t.Context(), "teach me go")
	if got.Type != Concept {
		t.Errorf("Type = %q, want concept", got.Type)
	}
	if got.Source != SourceModel {
		t.Errorf("Source = %q, want model", got.Source)
	}
}

func TestClassify_MissingTopicDefaultsToQuery(t *testing.T) {
	c, _ := newClassifier(llm.TextResponse(`{"type": "course"}`))

	got := c.Classify(t.Context(), "full course on graphs")
	if got.Topic != "full course on graphs" {
		t.Errorf("Topic = %q, want raw query", got.Topic)
	}
}

func TestClassify_FallsBackToHeuristic(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"generation error", llm.ErrorResponse(errors.New("provider down"))},
		{"no json", llm.TextResponse("this is a course request")},
		{"array", llm.TextResponse(`["course"]`)},
		{"object without type", llm.TextResponse(`{"topic": "recursion"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newClassifier(tt.resp)
			got := c.Classify(t.Context(), "teach me recursion")
			if got.Type != Course || got.Source != SourceHeuristic {
				t.Fatalf("Classify = %+v, want heuristic course", got)
			}
		})
	}
}

func TestClassify_NilGenerator(t *testing.T) {
	c := New(nil, nil)
	if got := c.Classify(context.Background(), "what is big-O"); got.Type != Concept {
		t.Errorf("Type = %q, want concept", got.Type)
	}
}
