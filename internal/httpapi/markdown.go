package httpapi

import (
	"regexp"
	"strings"
)

// DefaultChunkSize is the soft limit for streamed markdown chunks.
const DefaultChunkSize = 1500

var (
	headingLine = regexp.MustCompile(`^#{1,6}\s`)
	ruleLine    = regexp.MustCompile(`^---+$`)
)

// ChunkMarkdown splits text into pieces that never break a fenced code
// block. A new chunk starts before every heading or horizontal rule outside
// code, and a chunk that has grown past maxLen is cut at the next blank line.
// A chunk can exceed maxLen when no blank line follows.
func ChunkMarkdown(text string, maxLen int) []string {
	if text == "" {
		return nil
	}
	if maxLen <= 0 {
		maxLen = DefaultChunkSize
	}

	var (
		chunks []string
		buf    []string
		size   int
		inCode bool
	)
	flush := func() {
		if chunk := strings.Trim(strings.Join(buf, "\n"), "\n"); chunk != "" {
			chunks = append(chunks, chunk)
		}
		buf = buf[:0]
		size = 0
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "```") {
			inCode = !inCode
			buf = append(buf, line)
			size += len(line) + 1
			continue
		}
		if !inCode && (headingLine.MatchString(line) || ruleLine.MatchString(strings.TrimSpace(line))) {
			flush()
			buf = append(buf, line)
			size += len(line) + 1
			continue
		}
		buf = append(buf, line)
		size += len(line) + 1
		if !inCode && size >= maxLen && strings.TrimSpace(line) == "" {
			flush()
		}
	}
	flush()
	return chunks
}
