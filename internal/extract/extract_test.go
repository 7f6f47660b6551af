package extract

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Kind
	}{
		{"bare object", `{"type":"course","topic":"go"}`, Object},
		{"bare array", `[{"title":"A"},{"title":"B"}]`, Array},
		{"padded object", "\n\n  {\"type\":\"concept\"}  \n", Object},
		{"prose around object", "Sure! Here it is:\n{\"type\": \"course\",\n \"topic\": \"sql\"}\nHope that helps.", Object},
		{"fenced array", "```json\n[\"Intro - basics\", \"Joins - combining tables\"]\n```", Array},
		{"scalar", `"course"`, NoMatch},
		{"number", `42`, NoMatch},
		{"string holding an array", `"see [1,2]"`, NoMatch},
		{"string holding an object", `"use {\"a\":1}"`, NoMatch},
		{"empty", "   ", NoMatch},
		{"no json", "I think this is a course request.", NoMatch},
		{"broken span", "result: {type: course}", NoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if got.Kind != tt.want {
				t.Fatalf("Parse(%q).Kind = %v, want %v", tt.text, got.Kind, tt.want)
			}
			switch got.Kind {
			case Object:
				if got.Object == nil || got.Array != nil {
					t.Errorf("object result must carry only Object: %+v", got)
				}
			case Array:
				if got.Array == nil || got.Object != nil {
					t.Errorf("array result must carry only Array: %+v", got)
				}
			case NoMatch:
				if got.Object != nil || got.Array != nil {
					t.Errorf("no-match result must be empty: %+v", got)
				}
			}
		})
	}
}

func TestParse_GreedySpanCoversNestedBraces(t *testing.T) {
	got := Parse(`prefix {"outer": {"inner": 1}} suffix`)
	if got.Kind != Object {
		t.Fatalf("Kind = %v, want object", got.Kind)
	}
	inner, ok := got.Object["outer"].(map[string]any)
	if !ok || inner["inner"] != float64(1) {
		t.Errorf("nested object not preserved: %+v", got.Object)
	}
}

func TestString(t *testing.T) {
	obj := map[string]any{"type": "course", "n": 3}
	if String(obj, "type") != "course" {
		t.Error("expected string field")
	}
	if String(obj, "n") != "" || String(obj, "missing") != "" {
		t.Error("non-string and missing fields must be empty")
	}
}
