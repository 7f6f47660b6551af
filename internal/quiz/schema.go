package quiz

import "github.com/abhisek/lectern/internal/llm"

// QuizSchema defines the JSON schema for quiz generation.
var QuizSchema = &llm.Schema{
	Name:        "lesson-quiz",
	Description: "A short quiz that checks understanding of one lesson",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question shown to the learner",
						},
						"type": map[string]any{
							"type": "string",
							"enum": []any{"mcq", "coding"},
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 options for mcq. Empty for coding.",
						},
						"answer_index": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "Index of the correct option for mcq. 0 for coding.",
						},
						"answer_text": map[string]any{
							"type":        "string",
							"description": "Reference solution for coding. Empty for mcq.",
						},
						"expected_output": map[string]any{
							"type":        "string",
							"description": "What a correct coding solution prints or returns. Empty for mcq.",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the answer is correct",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
					},
					"required":             []any{"question", "type", "options", "answer_index", "answer_text", "expected_output", "explanation", "difficulty"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
