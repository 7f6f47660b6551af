package classify

import (
	"context"
	"strings"

	"github.com/abhisek/lectern/internal/extract"
	"github.com/abhisek/lectern/internal/llm"
	"github.com/abhisek/lectern/internal/logger"
)

// Classifier decides between course and concept intent. It asks the model
// first and falls back to Heuristic whenever generation or parsing fails.
type Classifier struct {
	gen Generator
	log *logger.Logger
}

// New creates a Classifier. A nil gen classifies with the heuristic only.
func New(gen Generator, log *logger.Logger) *Classifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Classifier{gen: gen, log: log.With("component", "classify")}
}

// Classify never fails. query must be non-empty.
func (c *Classifier) Classify(ctx context.Context, query string) Result {
	if c.gen == nil {
		return Heuristic(query)
	}

	text, err := c.gen.Generate(llm.WithPurpose(ctx, llm.PurposeClassify), buildClassifyPrompt(query))
	if err != nil {
		c.log.Warn("classification generation failed, using heuristic", "error", err)
		return Heuristic(query)
	}

	parsed := extract.Parse(text)
	switch parsed.Kind {
	case extract.Object:
		if r, ok := fromObject(parsed.Object, query); ok {
			return r
		}
		c.log.Warn("classification object has no type, using heuristic")
	case extract.Array, extract.NoMatch:
		c.log.Warn("classification output not an object, using heuristic", "kind", parsed.Kind.String())
	}
	return Heuristic(query)
}

func fromObject(obj map[string]any, query string) (Result, bool) {
	raw, ok := obj["type"].(string)
	if !ok {
		return Result{}, false
	}

	intent := Intent(strings.ToLower(strings.TrimSpace(raw)))
	if intent != Course && intent != Concept {
		intent = Concept
	}

	topic := strings.TrimSpace(extract.String(obj, "topic"))
	if topic == "" {
		topic = query
	}

	return Result{
		Type:   intent,
		Topic:  topic,
		Reason: extract.String(obj, "reason"),
		Source: SourceModel,
	}, true
}
