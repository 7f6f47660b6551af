package tutor

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectern/internal/course"
	"github.com/abhisek/lectern/internal/ui/layout"
	"github.com/abhisek/lectern/internal/ui/theme"
)

func (s *TutorScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	// info, divider, blank, input
	bodyHeight := max(height-4, 1)
	b.WriteString(strings.Join(s.visibleLines(width-4, bodyHeight), "\n"))
	b.WriteString("\n\n")
	b.WriteString("  " + s.input.View())
	return b.String()
}

func (s *TutorScreen) renderInfoLine(width int) string {
	left := "  No active course"
	switch s.mode {
	case course.ModeCourse:
		left = "  Course: " + s.topic
	case course.ModePaused:
		left = "  Paused: " + s.topic
	case course.ModeConcept:
		left = "  Concept: " + s.topic
	}
	infoLeft := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(left)

	right := s.Status()
	if s.busy {
		right = spinnerFrames[s.frame] + " thinking"
	}
	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).Render(right)

	line := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + infoRight
	}
	return line
}

// visibleLines wraps the transcript to width and returns the window of
// height lines ending scroll lines above the bottom.
func (s *TutorScreen) visibleLines(width, height int) []string {
	var lines []string
	for i, e := range s.transcript {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, strings.Split(renderEntry(e, width), "\n")...)
	}

	s.scroll = min(s.scroll, max(len(lines)-height, 0))
	end := len(lines) - s.scroll
	start := max(end-height, 0)
	return lines[start:end]
}

func renderEntry(e entry, width int) string {
	switch e.kind {
	case entryLearner:
		return theme.Learner.Render(layout.Wrap("You: "+e.text, width))
	case entryNotice:
		return theme.Notice.Render(layout.Wrap(e.text, width))
	default:
		return theme.Tutor.Render(layout.Wrap(e.text, width))
	}
}
