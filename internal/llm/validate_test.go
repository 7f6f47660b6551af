package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var lessonOutlineSchema = &Schema{
	Name:        "test-lesson-outline",
	Description: "A lesson outline",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":      map[string]any{"type": "string"},
			"minutes":    map[string]any{"type": "integer", "minimum": 0},
			"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
			"sections": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"title", "minutes"},
	},
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"complete", `{"title":"Recursion Basics","minutes":10,"difficulty":"easy"}`, false},
		{"optional fields omitted", `{"title":"Base Cases","minutes":8}`, false},
		{"nested array", `{"title":"Graphs","minutes":12,"sections":["nodes","edges"]}`, false},
		{"large integer", `{"title":"Big O","minutes":9007199254740993}`, false},
		{"missing required", `{"title":"Call Stacks"}`, true},
		{"wrong type", `{"title":"Memoization","minutes":"ten"}`, true},
		{"fractional integer", `{"title":"Loops","minutes":2.5}`, true},
		{"enum violation", `{"title":"Tail Calls","minutes":9,"difficulty":"expert"}`, true},
		{"wrong item type", `{"title":"Graphs","minutes":12,"sections":[1,2]}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(lessonOutlineSchema, json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected *ErrInvalidResponse, got %T (%v)", err, err)
			}
			if string(inv.Content) != tt.raw {
				t.Errorf("content = %q, want the raw response", inv.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_BrokenSchema(t *testing.T) {
	broken := &Schema{
		Name:       "test-broken",
		Definition: map[string]any{"type": "no-such-type"},
	}
	err := validateResponse(broken, json.RawMessage(`{}`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected *ErrInvalidResponse for an uncompilable schema, got %v", err)
	}
}

func TestValidator_CachedPerSchema(t *testing.T) {
	a, err := validator(lessonOutlineSchema)
	if err != nil {
		t.Fatal(err)
	}
	b, err := validator(lessonOutlineSchema)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("expected the compiled validator to be reused")
	}
}
