// Package roadmap generates staged learning roadmaps for a skill.
package roadmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/lectern/internal/llm"
	"gopkg.in/yaml.v3"
)

// Topic is one step of a roadmap stage.
type Topic struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Resources   []string `json:"resources" yaml:"resources"`
}

// Roadmap is a three-stage learning plan.
type Roadmap struct {
	Skill        string  `json:"skill" yaml:"skill"`
	Beginner     []Topic `json:"beginner" yaml:"beginner"`
	Intermediate []Topic `json:"intermediate" yaml:"intermediate"`
	Advanced     []Topic `json:"advanced" yaml:"advanced"`
}

// ErrEmptySkill is returned for a blank skill name.
var ErrEmptySkill = errors.New("skill is required")

// Generator produces roadmaps with a schema-constrained LLM call.
type Generator struct {
	provider llm.Provider
}

// NewGenerator creates a Generator.
func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// Generate returns a roadmap for skill.
func (g *Generator) Generate(ctx context.Context, skill string) (*Roadmap, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, ErrEmptySkill
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeRoadmap)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: roadmapSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildRoadmapUserMessage(skill)},
		},
		Schema:    RoadmapSchema,
		MaxTokens: 4096,
	})
	if err != nil {
		return nil, fmt.Errorf("roadmap generation: %w", err)
	}

	var r Roadmap
	if err := json.Unmarshal(resp.Content, &r); err != nil {
		return nil, fmt.Errorf("parse roadmap response: %w", err)
	}
	r.Skill = skill
	return &r, nil
}

// Encode writes r as "json" (indented) or "yaml".
func Encode(w io.Writer, r *Roadmap, format string) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

const roadmapSystemPrompt = `You are an expert mentor who designs practical learning roadmaps.`

func buildRoadmapUserMessage(skill string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Create a structured learning roadmap for %s.\n\n", skill))
	b.WriteString("Split it into beginner, intermediate and advanced stages with 3-5 topics each. ")
	b.WriteString("Every topic has a title, a short description and a list of resources ")
	b.WriteString("(well-known books, official documentation or course names).")
	return b.String()
}

var topicSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":       map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
		"resources": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required":             []any{"title", "description", "resources"},
	"additionalProperties": false,
}

func stageSchema(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": desc,
		"minItems":    1,
		"items":       topicSchema,
	}
}

// RoadmapSchema defines the JSON schema for roadmap generation.
var RoadmapSchema = &llm.Schema{
	Name:        "learning-roadmap",
	Description: "A three-stage learning roadmap for a skill",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"beginner":     stageSchema("Foundations, 3-5 topics"),
			"intermediate": stageSchema("Applied skills, 3-5 topics"),
			"advanced":     stageSchema("Expert topics, 3-5 topics"),
		},
		"required":             []any{"beginner", "intermediate", "advanced"},
		"additionalProperties": false,
	},
}
