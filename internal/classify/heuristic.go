package classify

import (
	"regexp"
	"strings"
)

// courseTriggers are checked in order against the lowercased query.
var courseTriggers = []*regexp.Regexp{
	regexp.MustCompile(`teach me`),
	regexp.MustCompile(`full course`),
	regexp.MustCompile(`complete course`),
	regexp.MustCompile(`from scratch`),
	regexp.MustCompile(`syllabus`),
	regexp.MustCompile(`learn .* from basics`),
	regexp.MustCompile(`teach .* step`),
	regexp.MustCompile(`whole course`),
	regexp.MustCompile(`entire course`),
	regexp.MustCompile(`\b(i want to learn|i want to study)\b`),
}

// Heuristic classifies query without a model. It is deterministic and
// never fails: any trigger phrase means a course, everything else a concept.
func Heuristic(query string) Result {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, re := range courseTriggers {
		if re.MatchString(q) {
			return Result{
				Type:   Course,
				Topic:  query,
				Reason: "heuristic match: " + re.String(),
				Source: SourceHeuristic,
			}
		}
	}
	return Result{
		Type:   Concept,
		Topic:  query,
		Reason: "heuristic fallback",
		Source: SourceHeuristic,
	}
}
