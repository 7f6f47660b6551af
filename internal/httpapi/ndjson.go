package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ndjsonWriter writes one JSON value per line and flushes after each so
// clients can render progressively.
type ndjsonWriter struct {
	c   *gin.Context
	enc *json.Encoder
}

func newNDJSONWriter(c *gin.Context) *ndjsonWriter {
	c.Header("Content-Type", "application/x-ndjson")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	return &ndjsonWriter{c: c, enc: json.NewEncoder(c.Writer)}
}

// write reports false once the client has gone away.
func (w *ndjsonWriter) write(v any) bool {
	if w.c.Request.Context().Err() != nil {
		return false
	}
	if err := w.enc.Encode(v); err != nil {
		return false
	}
	w.c.Writer.Flush()
	return true
}

type streamEvent struct {
	Type     string `json:"type"`
	Markdown string `json:"markdown,omitempty"`
	Message  string `json:"message,omitempty"`
}

func chunkEvent(md string) streamEvent { return streamEvent{Type: "chunk", Markdown: md} }

func doneEvent() streamEvent { return streamEvent{Type: "done"} }

func errorEvent(err error) streamEvent { return streamEvent{Type: "error", Message: err.Error()} }
