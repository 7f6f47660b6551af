package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectern/internal/course"
	"github.com/abhisek/lectern/internal/router"
	"github.com/abhisek/lectern/internal/screen"
	"github.com/abhisek/lectern/internal/screens/progress"
	"github.com/abhisek/lectern/internal/screens/tutor"
	"github.com/abhisek/lectern/internal/ui/components"
	"github.com/abhisek/lectern/internal/ui/theme"
)

// Service is the tutoring backend used by the home screen and the screens
// it opens.
type Service interface {
	tutor.Service
	Reset(ctx context.Context, sessionID string) error
}

type stateLoadedMsg struct {
	State *course.State
	Err   error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	svc        Service
	dashboards progress.Source
	sessionID  string
	userID     string

	menu   components.Menu
	state  *course.State
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen for one session and learner.
func New(svc Service, dashboards progress.Source, sessionID, userID string) *HomeScreen {
	h := &HomeScreen{
		svc:        svc,
		dashboards: dashboards,
		sessionID:  sessionID,
		userID:     userID,
	}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	openTutor := components.MenuItem{Label: "START LEARNING", Hint: "teach me <topic>", Action: h.pushTutor}
	if h.state != nil && len(h.state.Syllabus) > 0 {
		openTutor = components.MenuItem{
			Label:  "CONTINUE COURSE",
			Hint:   fmt.Sprintf("%s · lesson %d/%d", h.state.Topic, h.state.CurrentLesson+1, len(h.state.Syllabus)),
			Action: h.pushTutor,
		}
	}

	return []components.MenuItem{
		openTutor,
		{Label: "PROGRESS", Hint: "quiz scores and recommendations", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: progress.New(h.dashboards, h.userID)}
			}
		}, Disabled: h.dashboards == nil},
		{Label: "RESET SESSION", Hint: "forget the current course", Action: h.reset,
			Disabled: h.state == nil || h.state.Mode == course.ModeNone},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	}
}

func (h *HomeScreen) pushTutor() tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: tutor.New(h.svc, h.sessionID)}
	}
}

func (h *HomeScreen) reset() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := h.svc.Reset(ctx, h.sessionID); err != nil {
			return stateLoadedMsg{Err: err}
		}
		st, err := h.svc.State(ctx, h.sessionID)
		return stateLoadedMsg{State: st, Err: err}
	}
}

func (h *HomeScreen) loadState() tea.Cmd {
	return func() tea.Msg {
		st, err := h.svc.State(context.Background(), h.sessionID)
		return stateLoadedMsg{State: st, Err: err}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadState()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stateLoadedMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.state = msg.State
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.menuItems())
		if selected < len(h.menu.Items) && !h.menu.Items[selected].Disabled {
			h.menu.Selected = selected
		}
		return h, nil

	case router.ResumedMsg:
		return h, h.loadState()

	case tea.KeyMsg:
		if msg.String() == "r" {
			return h, h.loadState()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(width-4, 64)

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render("L E C T E R N"))
	sections = append(sections, theme.Subtitle.Width(cw).Render("whole courses, one lesson at a time"))

	status := "No course in progress."
	if h.state != nil && len(h.state.Syllabus) > 0 {
		idx := min(max(h.state.CurrentLesson, 0), len(h.state.Syllabus)-1)
		status = fmt.Sprintf("Course: %s\nLesson %d of %d: %s",
			h.state.Topic, idx+1, len(h.state.Syllabus), h.state.Syllabus[idx].Title)
		if h.state.Mode == course.ModePaused {
			status += "\n(paused, type 'resume' in the tutor)"
		}
	}
	if h.errMsg != "" {
		status = lipgloss.NewStyle().Foreground(theme.Error).Render(h.errMsg)
	}
	sections = append(sections, theme.Card.Width(cw).Render(status))
	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
