package syllabus

import (
	"fmt"
	"strings"
)

func buildStructuredPrompt(topic string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Create a focused syllabus of 10-15 lessons for a course titled %q.\n\n", topic))
	b.WriteString("Requirements:\n")
	b.WriteString("- Each lesson covers exactly one concept or skill; never merge topics.\n")
	b.WriteString("- Lessons build on each other, from fundamentals to advanced material.\n")
	b.WriteString(fmt.Sprintf("- Together the lessons cover every important aspect of %s.\n", topic))
	b.WriteString("- Titles are 3-6 words. Summaries are 1-2 sentences on what the learner will be able to do.\n\n")
	b.WriteString(`Return ONLY a JSON array of objects: [{"title": "...", "summary": "..."}]`)
	return b.String()
}

func buildLinesPrompt(topic string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Create 12-15 focused lesson titles for a course on %q.\n", topic))
	b.WriteString("Each lesson covers ONE specific concept only.\n")
	b.WriteString("Return one lesson title per line, no numbering.")
	return b.String()
}
