package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  float64 // cost of 1M in + 1M out
	}{
		{"gpt-4o-mini", 0.75},
		{"openai/gpt-4o-mini", 0.75},
		{"anthropic/claude-sonnet-4-5", 18},
		{"gemini-2.0-flash", 0.5},
	}
	for _, tt := range tests {
		c := LookupCost(tt.model)
		if c == nil {
			t.Errorf("%s: not priced", tt.model)
			continue
		}
		if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: cost = %v, want %v", tt.model, got, tt.want)
		}
	}

	for _, model := range []string{"mock", "local/llama", ""} {
		if c := LookupCost(model); c != nil {
			t.Errorf("%q should be unpriced, got %+v", model, *c)
		}
	}
}
