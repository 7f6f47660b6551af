package llm

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
)

func writeSSE(w http.ResponseWriter, events ...string) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.WriteHeader(http.StatusOK)
	for _, e := range events {
		fmt.Fprint(w, e)
	}
}

func TestOpenAIProvider_Stream(t *testing.T) {
	var body string
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		chunk := func(text string) string {
			return fmt.Sprintf("data: {\"id\":\"c1\",\"object\":\"chat.completion.chunk\",\"model\":\"gpt-4o-mini\",\"choices\":[{\"index\":0,\"delta\":{\"content\":%q}}]}\n\n", text)
		}
		writeSSE(w,
			chunk("## Base cases\n"),
			chunk(""),
			chunk("Every recursion needs one."),
			"data: [DONE]\n\n",
		)
	})

	got, err := Collect(p.GenerateStream(t.Context(), UserPrompt("Teach lesson 1", 512)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "## Base cases\nEvery recursion needs one." {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(body, `"stream":true`) {
		t.Errorf("request did not ask for a stream: %s", body)
	}
}

func TestOpenAIProvider_StreamRateLimited(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"slow down","type":"rate_limit_error"}}`)
	})

	_, err := Collect(p.GenerateStream(t.Context(), UserPrompt("Teach lesson 1", 512)))
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected *ErrRateLimit, got %v", err)
	}
	if !Unavailable(err) {
		t.Error("rate limit should count as unavailable")
	}
}

func TestAnthropicProvider_Stream(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		delta := func(text string) string {
			return fmt.Sprintf("event: content_block_delta\ndata: {\"type\":\"content_block_delta\",\"index\":0,\"delta\":{\"type\":\"text_delta\",\"text\":%q}}\n\n", text)
		}
		writeSSE(w,
			"event: message_start\ndata: {\"type\":\"message_start\",\"message\":{\"id\":\"msg_1\",\"type\":\"message\",\"role\":\"assistant\",\"content\":[],\"model\":\"claude-sonnet-4-20250514\",\"stop_reason\":null,\"stop_sequence\":null,\"usage\":{\"input_tokens\":20,\"output_tokens\":1}}}\n\n",
			"event: content_block_start\ndata: {\"type\":\"content_block_start\",\"index\":0,\"content_block\":{\"type\":\"text\",\"text\":\"\"}}\n\n",
			delta("A closure "),
			delta("captures its scope."),
			"event: content_block_stop\ndata: {\"type\":\"content_block_stop\",\"index\":0}\n\n",
			"event: message_delta\ndata: {\"type\":\"message_delta\",\"delta\":{\"stop_reason\":\"end_turn\",\"stop_sequence\":null},\"usage\":{\"output_tokens\":6}}\n\n",
			"event: message_stop\ndata: {\"type\":\"message_stop\"}\n\n",
		)
	})

	var chunks []string
	for chunk, err := range p.GenerateStream(t.Context(), UserPrompt("Explain closures", 256)) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		chunks = append(chunks, chunk)
	}
	if strings.Join(chunks, "|") != "A closure |captures its scope." {
		t.Errorf("chunks = %q", chunks)
	}
}

func TestUnavailable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&ErrRateLimit{Err: errors.New("429")}, true},
		{fmt.Errorf("lesson: %w", &ErrProviderUnavailable{}), true},
		{&ErrInvalidResponse{Err: errors.New("bad")}, false},
		{&ErrMaxTokensExceeded{}, false},
		{errors.New("plain"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := Unavailable(tt.err); got != tt.want {
			t.Errorf("Unavailable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
