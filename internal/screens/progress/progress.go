package progress

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectern/internal/performance"
	"github.com/abhisek/lectern/internal/screen"
	"github.com/abhisek/lectern/internal/ui/components"
	"github.com/abhisek/lectern/internal/ui/layout"
	"github.com/abhisek/lectern/internal/ui/theme"
)

// Source loads a learner's dashboard.
type Source interface {
	Dashboard(ctx context.Context, userID, topic string) (*performance.Dashboard, error)
}

type dashboardLoadedMsg struct {
	Dashboard *performance.Dashboard
	Err       error
}

// ProgressScreen shows quiz history, topic scores and recommendations.
type ProgressScreen struct {
	src       Source
	userID    string
	dashboard *performance.Dashboard
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

func New(src Source, userID string) *ProgressScreen {
	return &ProgressScreen{src: src, userID: userID}
}

func (s *ProgressScreen) Init() tea.Cmd {
	return func() tea.Msg {
		d, err := s.src.Dashboard(context.Background(), s.userID, "")
		return dashboardLoadedMsg{Dashboard: d, Err: err}
	}
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(dashboardLoadedMsg); ok {
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.dashboard = msg.Dashboard
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\nLoading progress...")
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render("\n\nCould not load progress: " + s.errMsg)
	case s.dashboard == nil || s.dashboard.TotalQuizzes == 0:
		return center.Foreground(theme.TextDim).Render("\n\nNo quizzes taken yet.\nRun 'lectern quiz take' after a lesson to start tracking progress.")
	}

	d := s.dashboard
	inner := max(width-8, 20)
	var b strings.Builder

	b.WriteString(theme.Title.Width(inner).Render(fmt.Sprintf("%s's progress", d.UserID)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Quizzes %d   Average %.2f%%   Completion %d%%",
		d.TotalQuizzes, d.AverageScore, d.CompletionPercentage)))
	b.WriteString("\n\n")

	if len(d.TopicScores) > 0 {
		b.WriteString(theme.Subtitle.Render("Topics"))
		b.WriteString("\n")
		topics := make([]string, 0, len(d.TopicScores))
		for topic := range d.TopicScores {
			topics = append(topics, topic)
		}
		slices.Sort(topics)
		for _, topic := range topics {
			bar := components.ScoreBar{
				Label:  topic,
				Score:  d.TopicScores[topic],
				Width:  inner,
				Weak:   performance.WeakThreshold,
				Strong: performance.StrongThreshold,
			}
			b.WriteString(bar.View(20))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(d.RecentAttempts) > 0 {
		b.WriteString(theme.Subtitle.Render("Recent quizzes"))
		b.WriteString("\n")
		for _, a := range d.RecentAttempts {
			style := theme.Correct
			if a.Score < performance.WeakThreshold {
				style = theme.Incorrect
			}
			fmt.Fprintf(&b, "  %s  %-20s %s\n",
				a.SubmittedAt.Local().Format("Jan 02 15:04"),
				a.Topic,
				style.Render(fmt.Sprintf("%3.0f%%", a.Score)))
		}
		b.WriteString("\n")
	}

	for _, r := range d.Recommendations {
		b.WriteString(theme.Hint.Render("• " + r))
		b.WriteString("\n")
	}

	return theme.Card.Width(width - 4).Render(b.String())
}
