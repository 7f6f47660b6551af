package classify

import "context"

// Intent is what the learner is asking for.
type Intent string

const (
	// Course is a request for a full multi-lesson course.
	Course Intent = "course"
	// Concept is a request for a single explanation.
	Concept Intent = "concept"
)

// Source records which path produced a Result.
type Source string

const (
	SourceModel     Source = "model"
	SourceHeuristic Source = "heuristic"
)

// Result is the outcome of classifying one query.
type Result struct {
	Type   Intent `json:"type"`
	Topic  string `json:"topic"`
	Reason string `json:"reason"`
	Source Source `json:"source"`
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
