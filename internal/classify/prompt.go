package classify

import "fmt"

func buildClassifyPrompt(query string) string {
	return fmt.Sprintf(`You are a query classifier for a tutoring assistant.

Decide whether the learner wants a full multi-lesson course or a single concept explained.

Query: %q

Rules:
- "course" when the learner asks to be taught a subject end to end (e.g. "teach me Python", "I want to learn SQL from scratch").
- "concept" when the learner asks about one idea, term, or question (e.g. "what is a closure?").
- "topic" is the subject in a few words, without filler like "teach me".

Respond with ONLY a JSON object, no prose:
{"type": "course" | "concept", "topic": "<subject>", "reason": "<one short sentence>"}`, query)
}
