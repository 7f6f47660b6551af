package syllabus

import (
	"context"

	"github.com/abhisek/lectern/internal/logger"
)

// Pipeline runs strategies in order until one returns a non-empty syllabus.
type Pipeline struct {
	strategies []Strategy
	log        *logger.Logger
}

// NewPipeline creates a pipeline over strategies. Template is always
// appended as the final tier, so Generate never returns an empty syllabus.
func NewPipeline(log *logger.Logger, strategies ...Strategy) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	return &Pipeline{
		strategies: append(append([]Strategy(nil), strategies...), Template{}),
		log:        log.With("component", "syllabus"),
	}
}

// DefaultPipeline is structured, then line-based, then template.
func DefaultPipeline(gen Generator, log *logger.Logger) *Pipeline {
	return NewPipeline(log, Structured{Gen: gen}, Lines{Gen: gen})
}

// Generate returns the first non-empty result and the name of the strategy
// that produced it.
func (p *Pipeline) Generate(ctx context.Context, topic string) ([]Lesson, string) {
	for _, s := range p.strategies {
		lessons, err := s.Generate(ctx, topic)
		if err != nil {
			p.log.Warn("syllabus strategy failed", "strategy", s.Name(), "topic", topic, "error", err)
			continue
		}
		if len(lessons) == 0 {
			p.log.Warn("syllabus strategy returned no lessons", "strategy", s.Name(), "topic", topic)
			continue
		}
		p.log.Debug("syllabus generated", "strategy", s.Name(), "topic", topic, "lessons", len(lessons))
		return lessons, s.Name()
	}
	return TemplateLessons(topic), Template{}.Name()
}
