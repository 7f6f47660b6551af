package llm

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"
)

// TextGenerator turns a Provider into a prompt-in, text-out generator.
// It is the content source for classification, syllabi, lessons and
// concept explanations.
type TextGenerator struct {
	provider  Provider
	maxTokens int
	timeout   time.Duration
}

// TextOption configures a TextGenerator.
type TextOption func(*TextGenerator)

// WithMaxTokens sets the per-call token ceiling. Default: 4096.
func WithMaxTokens(n int) TextOption {
	return func(g *TextGenerator) { g.maxTokens = n }
}

// WithTimeout bounds each Generate call. Zero disables the bound.
func WithTimeout(d time.Duration) TextOption {
	return func(g *TextGenerator) { g.timeout = d }
}

// NewTextGenerator wraps p.
func NewTextGenerator(p Provider, opts ...TextOption) *TextGenerator {
	g := &TextGenerator{provider: p, maxTokens: 4096}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns the full generated text for prompt.
func (g *TextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.provider.Generate(ctx, UserPrompt(prompt, g.maxTokens))
	if err != nil {
		return "", err
	}
	if resp.StopReason == "max_tokens" && strings.TrimSpace(resp.Text()) == "" {
		return "", &ErrMaxTokensExceeded{Content: resp.Content}
	}
	return strings.TrimSpace(resp.Text()), nil
}

// Stream yields text fragments for prompt in generation order. The timeout
// is not applied: a stream lives as long as its consumer keeps reading.
func (g *TextGenerator) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return g.provider.GenerateStream(ctx, UserPrompt(prompt, g.maxTokens))
}

// Collect drains a stream into a single string.
func Collect(seq iter.Seq2[string, error]) (string, error) {
	var b strings.Builder
	for chunk, err := range seq {
		if err != nil {
			return b.String(), fmt.Errorf("stream: %w", err)
		}
		b.WriteString(chunk)
	}
	return b.String(), nil
}
