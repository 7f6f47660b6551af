// Package screen defines what the TUI router stacks and the app frame draws.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lectern/internal/ui/layout"
)

// A Screen renders only its body; the app draws the header and footer
// around it using Title and the optional providers below.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider fills the right side of the header bar.
type StatusProvider interface {
	Status() string
}
