package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lectern/internal/course"
	"github.com/abhisek/lectern/internal/syllabus"
)

type fakeService struct {
	state   *course.State
	queries []string
	doubts  []course.Doubt
	err     error
}

func (f *fakeService) State(context.Context, string) (*course.State, error) {
	if f.state == nil {
		return course.NewState(), f.err
	}
	return f.state, f.err
}

func (f *fakeService) SubmitQuery(_ context.Context, _ string, query string) (*course.Turn, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return &course.Turn{
		Response:      "Starting course: go",
		Mode:          course.ModeCourse,
		Topic:         "go",
		Syllabus:      []syllabus.Lesson{{Title: "A"}, {Title: "B"}, {Title: "C"}},
		CurrentLesson: 1,
		Query:         query,
	}, nil
}

func (f *fakeService) AnswerDoubt(_ context.Context, d course.Doubt) (string, error) {
	f.doubts = append(f.doubts, d)
	return "because of the base case", nil
}

func typeLine(s *TutorScreen, text string) {
	s.input.Model.SetValue(text)
}

func TestTutorScreen_LoadsWelcome(t *testing.T) {
	s := New(&fakeService{}, "s1")
	s.Update(s.loadState()())

	if len(s.transcript) != 1 || s.transcript[0].text != welcome {
		t.Fatalf("transcript = %+v, want welcome notice", s.transcript)
	}
	if s.Status() != "" {
		t.Errorf("Status = %q, want empty outside a course", s.Status())
	}
}

func TestTutorScreen_LoadsExistingCourse(t *testing.T) {
	st := course.NewState()
	st.Mode = course.ModeCourse
	st.Topic = "recursion"
	st.Syllabus = []syllabus.Lesson{{Title: "A"}, {Title: "B"}}
	st.CurrentLesson = 1
	st.Response = "Lesson 2: B"

	s := New(&fakeService{state: st}, "s1")
	s.Update(s.loadState()())

	last := s.transcript[len(s.transcript)-1]
	if last.kind != entryTutor || last.text != "Lesson 2: B" {
		t.Errorf("last entry = %+v", last)
	}
	if s.Status() != "recursion · 2/2" {
		t.Errorf("Status = %q", s.Status())
	}
}

func TestTutorScreen_SubmitQuery(t *testing.T) {
	svc := &fakeService{}
	s := New(svc, "s1")

	typeLine(s, "teach me go")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil || !s.busy {
		t.Fatal("expected a pending command after enter")
	}
	if s.input.Value() != "" {
		t.Error("input should be cleared after send")
	}

	s.Update(s.submit("teach me go")())

	if s.busy {
		t.Error("busy should clear when the turn arrives")
	}
	if s.Status() != "go · 2/3" {
		t.Errorf("Status = %q", s.Status())
	}
	if got := s.transcript[len(s.transcript)-1]; got.text != "Starting course: go" {
		t.Errorf("last entry = %+v", got)
	}
}

func TestTutorScreen_EnterIgnoredWhileBusy(t *testing.T) {
	s := New(&fakeService{}, "s1")
	s.busy = true
	typeLine(s, "next")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter while busy must not send")
	}
}

func TestTutorScreen_DoubtPrefix(t *testing.T) {
	svc := &fakeService{}
	s := New(svc, "s1")

	typeLine(s, "? why a base case")
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd == nil {
		t.Fatal("expected command")
	}
	s.Update(s.askDoubt("why a base case")())

	if len(svc.doubts) != 1 || svc.doubts[0].Question != "why a base case" || svc.doubts[0].SessionID != "s1" {
		t.Errorf("doubts = %+v", svc.doubts)
	}
	if got := s.transcript[len(s.transcript)-1].text; got != "because of the base case" {
		t.Errorf("last entry = %q", got)
	}
}

func TestTutorScreen_ErrorBecomesNotice(t *testing.T) {
	s := New(&fakeService{err: errors.New("store down")}, "s1")
	s.busy = true

	s.Update(turnDoneMsg{Err: errors.New("store down")})

	last := s.transcript[len(s.transcript)-1]
	if last.kind != entryNotice || !strings.Contains(last.text, "store down") {
		t.Errorf("last entry = %+v", last)
	}
}

func TestTutorScreen_ScrollWindow(t *testing.T) {
	s := New(&fakeService{}, "s1")
	for i := range 30 {
		s.transcript = append(s.transcript, entry{kind: entryTutor, text: strings.Repeat("x", i%5+1)})
	}

	bottom := s.visibleLines(40, 10)
	if len(bottom) != 10 {
		t.Fatalf("got %d lines, want 10", len(bottom))
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyPgUp})
	if s.scroll != 5 {
		t.Fatalf("scroll = %d, want 5", s.scroll)
	}
	up := s.visibleLines(40, 10)
	if strings.Join(up, "\n") == strings.Join(bottom, "\n") {
		t.Error("scrolling up should change the window")
	}

	s.scroll = 10_000
	s.visibleLines(40, 10)
	if s.scroll != 59-10 {
		t.Errorf("scroll clamped to %d, want %d", s.scroll, 59-10)
	}
}

func TestTutorScreen_View(t *testing.T) {
	s := New(&fakeService{}, "s1")
	s.Update(s.loadState()())

	view := s.View(80, 20)
	if !strings.Contains(view, "No active course") {
		t.Error("expected info line")
	}
}
