package tutor

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lectern/internal/course"
	"github.com/abhisek/lectern/internal/screen"
	"github.com/abhisek/lectern/internal/ui/components"
	"github.com/abhisek/lectern/internal/ui/layout"
)

// Service is the tutoring backend the screen talks to.
type Service interface {
	State(ctx context.Context, sessionID string) (*course.State, error)
	SubmitQuery(ctx context.Context, sessionID, query string) (*course.Turn, error)
	AnswerDoubt(ctx context.Context, d course.Doubt) (string, error)
}

const welcome = "Type 'teach me <topic>' to start a course, or ask about any concept.\n" +
	"Inside a course use next, prev, repeat, goto <n> and stop. Start a line with ? to ask about the current lesson."

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type entryKind int

const (
	entryLearner entryKind = iota
	entryTutor
	entryNotice
)

type entry struct {
	kind entryKind
	text string
}

// TutorScreen is a chat with the tutor bound to one session.
type TutorScreen struct {
	svc       Service
	sessionID string
	input     components.TextInput

	transcript []entry
	busy       bool
	frame      int
	scroll     int // lines scrolled up from the bottom

	topic   string
	mode    course.Mode
	lesson  int
	lessons int
}

var _ screen.Screen = (*TutorScreen)(nil)
var _ screen.KeyHintProvider = (*TutorScreen)(nil)
var _ screen.StatusProvider = (*TutorScreen)(nil)

// New creates a TutorScreen for sessionID.
func New(svc Service, sessionID string) *TutorScreen {
	return &TutorScreen{
		svc:       svc,
		sessionID: sessionID,
		input:     components.NewTextInput("teach me recursion", 500),
	}
}

func (s *TutorScreen) Init() tea.Cmd {
	return tea.Batch(s.loadState(), s.input.Init())
}

func (s *TutorScreen) Title() string {
	return "Tutor"
}

func (s *TutorScreen) Status() string {
	if s.mode != course.ModeCourse || s.lessons == 0 {
		return ""
	}
	return fmt.Sprintf("%s · %d/%d", s.topic, s.lesson+1, s.lessons)
}

func (s *TutorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TutorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stateLoadedMsg:
		s.handleState(msg)
		return s, nil

	case turnDoneMsg:
		s.busy = false
		s.scroll = 0
		if msg.Err != nil {
			s.notice("Error: " + msg.Err.Error())
			return s, nil
		}
		s.transcript = append(s.transcript, entry{kind: entryTutor, text: msg.Turn.Response})
		s.topic, s.mode = msg.Turn.Topic, msg.Turn.Mode
		s.lesson, s.lessons = msg.Turn.CurrentLesson, len(msg.Turn.Syllabus)
		return s, nil

	case doubtDoneMsg:
		s.busy = false
		s.scroll = 0
		if msg.Err != nil {
			s.notice("Error: " + msg.Err.Error())
			return s, nil
		}
		s.transcript = append(s.transcript, entry{kind: entryTutor, text: msg.Answer})
		return s, nil

	case spinnerTickMsg:
		if !s.busy {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, s.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s, s.send()
		case "pgup":
			s.scroll += 5
			return s, nil
		case "pgdown":
			s.scroll = max(s.scroll-5, 0)
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TutorScreen) handleState(msg stateLoadedMsg) {
	if msg.Err != nil {
		s.notice("Could not load session: " + msg.Err.Error())
		return
	}
	st := msg.State
	s.topic, s.mode = st.Topic, st.Mode
	s.lesson, s.lessons = st.CurrentLesson, len(st.Syllabus)
	if st.Response != "" && st.Mode != course.ModeNone {
		s.notice(fmt.Sprintf("Continuing session %q.", s.sessionID))
		s.transcript = append(s.transcript, entry{kind: entryTutor, text: st.Response})
		return
	}
	s.notice(welcome)
}

// send submits the input line. Lines starting with "?" are questions about
// the current lesson; everything else is a tutor query.
func (s *TutorScreen) send() tea.Cmd {
	text := s.input.Value()
	if s.busy || text == "" {
		return nil
	}
	s.input.Reset()
	s.transcript = append(s.transcript, entry{kind: entryLearner, text: text})
	s.busy = true
	s.scroll = 0

	if q, ok := strings.CutPrefix(text, "?"); ok {
		return tea.Batch(s.askDoubt(strings.TrimSpace(q)), s.tick())
	}
	return tea.Batch(s.submit(text), s.tick())
}

func (s *TutorScreen) notice(text string) {
	s.transcript = append(s.transcript, entry{kind: entryNotice, text: text})
}

func (s *TutorScreen) loadState() tea.Cmd {
	return func() tea.Msg {
		st, err := s.svc.State(context.Background(), s.sessionID)
		return stateLoadedMsg{State: st, Err: err}
	}
}

func (s *TutorScreen) submit(query string) tea.Cmd {
	return func() tea.Msg {
		turn, err := s.svc.SubmitQuery(context.Background(), s.sessionID, query)
		return turnDoneMsg{Turn: turn, Err: err}
	}
}

func (s *TutorScreen) askDoubt(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := s.svc.AnswerDoubt(context.Background(), course.Doubt{
			SessionID: s.sessionID,
			Question:  question,
		})
		return doubtDoneMsg{Answer: answer, Err: err}
	}
}

func (s *TutorScreen) tick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
