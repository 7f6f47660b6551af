// Package extract pulls JSON documents out of free-form model output.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Kind tags what Parse found.
type Kind int

const (
	// NoMatch means no JSON object or array could be recovered.
	NoMatch Kind = iota
	// Object means the text held a JSON object.
	Object
	// Array means the text held a JSON array.
	Array
)

func (k Kind) String() string {
	switch k {
	case Object:
		return "object"
	case Array:
		return "array"
	default:
		return "no-match"
	}
}

// Result is the tagged outcome of Parse. Exactly one of Object or Array is
// set, according to Kind.
type Result struct {
	Kind   Kind
	Object map[string]any
	Array  []any
}

// spanPattern matches the first brace- or bracket-delimited span, greedily
// and across newlines.
var spanPattern = regexp.MustCompile(`(?s)(\{.*\}|\[.*\])`)

// Parse recovers a JSON object or array from text. It first tries the whole
// trimmed text, then the first greedy {...} or [...] span. A whole text that
// is valid JSON decides the result on its own, so a top-level scalar is no
// match even when it contains a bracketed span.
func Parse(text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}
	}

	if r, err := decode(text); err == nil {
		return r
	}

	if span := spanPattern.FindString(text); span != "" {
		if r, err := decode(span); err == nil {
			return r
		}
	}
	return Result{}
}

// decode fails only on invalid JSON; a valid scalar yields the NoMatch
// result with a nil error.
func decode(s string) (Result, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return Result{}, err
	}
	switch t := v.(type) {
	case map[string]any:
		return Result{Kind: Object, Object: t}, nil
	case []any:
		return Result{Kind: Array, Array: t}, nil
	default:
		return Result{}, nil
	}
}

// String returns the string field key of obj, or "" when missing or not a
// string.
func String(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}
