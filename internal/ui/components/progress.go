package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectern/internal/ui/theme"
)

// ScoreBar draws a 0-100 score as a horizontal bar colored by band:
// below Weak is an error color, at or above Strong a success color.
type ScoreBar struct {
	Label  string
	Score  float64
	Width  int
	Weak   float64
	Strong float64
}

// View renders the bar with its label left-aligned to labelWidth columns.
func (p ScoreBar) View(labelWidth int) string {
	label := p.Label
	if r := []rune(label); len(r) > labelWidth {
		label = string(r[:max(labelWidth-1, 0)]) + "…"
	}
	result := lipgloss.NewStyle().Width(labelWidth).Foreground(theme.Text).Render(label) + "  "

	barWidth := max(p.Width-labelWidth-2-6, 4)
	filled := min(max(int(float64(barWidth)*p.Score/100), 0), barWidth)

	result += lipgloss.NewStyle().Background(p.color()).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %4.0f%%", p.Score))
	return result
}

func (p ScoreBar) color() color.Color {
	switch {
	case p.Score < p.Weak:
		return theme.Error
	case p.Score >= p.Strong:
		return theme.Success
	default:
		return theme.Secondary
	}
}
