package llm

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	for in, want := range map[string]string{
		"gemini-flash":     "gemini-2.0-flash",
		"gemini-pro":       "gemini-2.0-pro",
		"gemini-2.5-flash": "gemini-2.5-flash",
	} {
		if got := resolveModel(in, geminiModels); got != want {
			t.Errorf("resolveModel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":      map[string]any{"type": "string", "description": "The question text"},
						"options":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"correct_index": map[string]any{"type": "integer", "minimum": 0, "maximum": 3.0},
						"difficulty":    map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
					},
					"required": []string{"question", "options", "correct_index"},
				},
			},
			"notes": map[string]any{"type": "null"},
		},
		"required": []any{"questions"},
	}

	s := geminiSchema(def)
	if s.Type != genai.TypeObject || len(s.Required) != 1 {
		t.Fatalf("root = %s %v", s.Type, s.Required)
	}
	if s.Properties["notes"].Type != genai.TypeString {
		t.Errorf("unknown type should fall back to STRING, got %s", s.Properties["notes"].Type)
	}

	questions := s.Properties["questions"]
	if questions.Type != genai.TypeArray || questions.MinItems == nil || *questions.MinItems != 1 {
		t.Fatalf("questions = %+v", questions)
	}
	q := questions.Items
	if q == nil || q.Type != genai.TypeObject || len(q.Required) != 3 {
		t.Fatalf("question item = %+v", q)
	}
	if q.Properties["question"].Description != "The question text" {
		t.Errorf("description = %q", q.Properties["question"].Description)
	}
	if q.Properties["options"].Items.Type != genai.TypeString {
		t.Errorf("options items = %s", q.Properties["options"].Items.Type)
	}
	idx := q.Properties["correct_index"]
	if idx.Type != genai.TypeInteger || idx.Minimum == nil || *idx.Minimum != 0 || idx.Maximum == nil || *idx.Maximum != 3 {
		t.Errorf("correct_index = %+v", idx)
	}
	if len(q.Properties["difficulty"].Enum) != 3 {
		t.Errorf("enum = %v", q.Properties["difficulty"].Enum)
	}
}

func TestGeminiStopReason(t *testing.T) {
	truncated := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonMaxTokens}}}
	if got := geminiStopReason(truncated); got != "max_tokens" {
		t.Errorf("MAX_TOKENS -> %q", got)
	}
	if got := geminiStopReason(&genai.GenerateContentResponse{}); got != "end" {
		t.Errorf("no candidates -> %q", got)
	}
}

func TestMapGeminiError(t *testing.T) {
	limited := mapGeminiError(fmt.Errorf("generate: %w", genai.APIError{Code: 429, Status: "429 Too Many Requests"}))
	var rl *ErrRateLimit
	if !errors.As(limited, &rl) {
		t.Errorf("429: got %T, want *ErrRateLimit", limited)
	}

	down := mapGeminiError(genai.APIError{Code: 503})
	var pu *ErrProviderUnavailable
	if !errors.As(down, &pu) {
		t.Errorf("503: got %T, want *ErrProviderUnavailable", down)
	}
}
