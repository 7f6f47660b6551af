package llm

import (
	"context"
	"encoding/json"
	"iter"
	"sync"
)

// MockResponse is one scripted reply. Chunks, when set, is what
// GenerateStream yields instead of Content in one piece. StopReason
// defaults to "end".
type MockResponse struct {
	Content    json.RawMessage
	Chunks     []string
	Usage      Usage
	StopReason string
	Err        error
}

func TextResponse(text string) MockResponse {
	return MockResponse{Content: json.RawMessage(text)}
}

func ErrorResponse(err error) MockResponse {
	return MockResponse{Err: err}
}

// MockProvider replays scripted responses in order, for Generate and
// GenerateStream alike, and keeps every request it was given in Calls.
// Running out of script is reported as the provider being unavailable.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	m.script = append(m.script, resp)
	m.mu.Unlock()
}

func (m *MockProvider) take(req Request) (MockResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.script) == 0 {
		return MockResponse{}, &ErrProviderUnavailable{}
	}
	resp := m.script[0]
	m.script = m.script[1:]
	return resp, resp.Err
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	resp, err := m.take(req)
	if err != nil {
		return nil, err
	}
	stop := resp.StopReason
	if stop == "" {
		stop = "end"
	}
	return &Response{Content: resp.Content, Usage: resp.Usage, Model: m.ModelID(), StopReason: stop}, nil
}

func (m *MockProvider) GenerateStream(_ context.Context, req Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		resp, err := m.take(req)
		if err != nil {
			yield("", err)
			return
		}
		chunks := resp.Chunks
		if chunks == nil {
			chunks = []string{string(resp.Content)}
		}
		for _, c := range chunks {
			if !yield(c, nil) {
				return
			}
		}
	}
}

func (m *MockProvider) ModelID() string { return "mock" }

// CallCount counts requests across both entry points.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Prompt is the last message of the i-th request, or "" when out of range.
func (m *MockProvider) Prompt(i int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.Calls) {
		return ""
	}
	msgs := m.Calls[i].Messages
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1].Content
}
