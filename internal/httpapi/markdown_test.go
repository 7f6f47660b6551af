package httpapi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkMarkdown_SplitsBeforeHeadingsAndRules(t *testing.T) {
	text := "intro line\n## Section A\nbody a\n---\n### Section B\nbody b"

	got := ChunkMarkdown(text, DefaultChunkSize)

	assert.Equal(t, []string{
		"intro line",
		"## Section A\nbody a",
		"---",
		"### Section B\nbody b",
	}, got)
}

func TestChunkMarkdown_KeepsFencedCodeWhole(t *testing.T) {
	code := "```go\n# not a heading\n---\n\nfunc f() {}\n```"
	text := "## Code\n" + code + "\nafter"

	got := ChunkMarkdown(text, 10)

	require.NotEmpty(t, got)
	var joined []string
	for _, c := range got {
		if strings.Contains(c, "```go") {
			assert.Contains(t, c, "func f() {}\n```", "fence must close in the same chunk")
		}
		joined = append(joined, c)
	}
	assert.Contains(t, strings.Join(joined, "\n"), "# not a heading")
}

func TestChunkMarkdown_SplitsLargeChunkAtBlankLine(t *testing.T) {
	para := strings.Repeat("x", 40)
	text := para + "\n\n" + para + "\n\n" + para

	got := ChunkMarkdown(text, 50)

	assert.Equal(t, []string{para + "\n\n" + para, para}, got)
}

func TestChunkMarkdown_Empty(t *testing.T) {
	assert.Nil(t, ChunkMarkdown("", 100))
	assert.Empty(t, ChunkMarkdown("\n\n", 100))
}
