package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/abhisek/lectern/internal/logger"
	"github.com/abhisek/lectern/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner  Provider
	events store.LLMEventRepo
	log    *logger.Logger
}

// WithLogging wraps a Provider with event logging. A nil repo disables
// persistence but keeps debug logging.
func WithLogging(p Provider, repo store.LLMEventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, events: repo, log: log.With("component", "llm")}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := l.eventData(ctx, req, start, err)
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}
	l.record(ctx, data)

	return resp, err
}

// GenerateStream records one event per stream once iteration ends, whether
// the stream completed, failed, or the caller stopped early.
func (l *LoggingProvider) GenerateStream(ctx context.Context, req Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		start := time.Now()
		var out strings.Builder
		var streamErr error

		defer func() {
			data := l.eventData(ctx, req, start, streamErr)
			data.ResponseBody = out.String()
			l.record(ctx, data)
		}()

		for chunk, err := range l.inner.GenerateStream(ctx, req) {
			if err != nil {
				streamErr = err
				yield("", err)
				return
			}
			out.WriteString(chunk)
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) eventData(ctx context.Context, req Request, start time.Time, err error) store.LLMRequestEventData {
	data := store.LLMRequestEventData{
		Provider:    providerName(l.inner),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		SessionID:   SessionFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}
	return data
}

func (l *LoggingProvider) record(ctx context.Context, data store.LLMRequestEventData) {
	l.log.Debug("llm request",
		"purpose", data.Purpose,
		"session", data.SessionID,
		"model", data.Model,
		"latency_ms", data.LatencyMs,
		"input_tokens", data.InputTokens,
		"output_tokens", data.OutputTokens,
		"success", data.Success,
	)

	if l.events == nil {
		return
	}
	// The request already happened; a failed write must not fail it.
	if err := l.events.AppendLLMRequest(context.WithoutCancel(ctx), data); err != nil {
		l.log.Warn("failed to log LLM request event", "error", err)
	}
}

func providerName(p Provider) string {
	switch p.(type) {
	case *AnthropicProvider:
		return "anthropic"
	case *OpenRouterProvider:
		return "openrouter"
	case *OpenAIProvider:
		return "openai"
	case *GeminiProvider:
		return "gemini"
	case *MockProvider:
		return "mock"
	}
	return "unknown"
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(def)
			b.WriteString("\n")
		}
	}

	return b.String()
}
