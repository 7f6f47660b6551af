// Package layout draws the frame around every TUI screen: a header bar,
// the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectern/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 16
)

type KeyHint struct {
	Key         string
	Description string
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small!\n\nLectern needs at least %d x %d.\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Body.Render(msg))
}

// RenderHeader shows the product name, the screen title centered, and a
// status string (course and lesson, or the session id) on the right.
func RenderHeader(title, status string, width int) string {
	name := theme.Selected.Render("  Lectern")
	center := theme.Body.Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-4, 0)
	nameW, centerW, rightW := lipgloss.Width(name), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max((inner-centerW)/2-nameW, 1)
	gapR := max(inner-nameW-gapL-centerW-rightW, 1)

	return bar.Width(width).Render(name + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right)
}

func RenderFooter(hints []KeyHint, width int) string {
	key := theme.Body.Bold(true)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + theme.Hint.Italic(false).Render(h.Description)
	}
	return bar.Width(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, body and footer, sizing the body to the
// height left between them.
func RenderFrame(header, content, footer string, width, height int) string {
	bodyH := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(bodyH).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Wrap word-wraps text to width columns. A non-positive width leaves text
// unchanged.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
