package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lectern/internal/course"
	"github.com/abhisek/lectern/internal/performance"
	"github.com/abhisek/lectern/internal/router"
	"github.com/abhisek/lectern/internal/syllabus"
)

type fakeService struct {
	state  *course.State
	resets int
}

func (f *fakeService) State(context.Context, string) (*course.State, error) {
	return f.state, nil
}

func (f *fakeService) SubmitQuery(context.Context, string, string) (*course.Turn, error) {
	return &course.Turn{}, nil
}

func (f *fakeService) AnswerDoubt(context.Context, course.Doubt) (string, error) {
	return "", nil
}

func (f *fakeService) Reset(context.Context, string) error {
	f.resets++
	f.state = course.NewState()
	return nil
}

type noDashboards struct{}

func (noDashboards) Dashboard(context.Context, string, string) (*performance.Dashboard, error) {
	return &performance.Dashboard{}, nil
}

func activeCourse() *course.State {
	st := course.NewState()
	st.Mode = course.ModeCourse
	st.Topic = "recursion"
	st.Syllabus = []syllabus.Lesson{{Title: "Intro"}, {Title: "Base cases"}}
	st.CurrentLesson = 1
	return st
}

func TestHomeScreen_ContinueCourse(t *testing.T) {
	svc := &fakeService{state: activeCourse()}
	h := New(svc, noDashboards{}, "s1", "u1")
	h.Update(h.Init()())

	if got := h.menu.Items[0].Label; got != "CONTINUE COURSE" {
		t.Errorf("first item = %q, want CONTINUE COURSE", got)
	}
	if !strings.Contains(h.View(80, 30), "Lesson 2 of 2: Base cases") {
		t.Error("expected course status in view")
	}

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command from enter")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("enter on the first item should push the tutor screen")
	}
}

func TestHomeScreen_NoCourse(t *testing.T) {
	h := New(&fakeService{state: course.NewState()}, noDashboards{}, "s1", "u1")
	h.Update(h.Init()())

	if got := h.menu.Items[0].Label; got != "START LEARNING" {
		t.Errorf("first item = %q", got)
	}
	if !h.menu.Items[2].Disabled {
		t.Error("reset should be disabled without a session")
	}
}

func TestHomeScreen_Reset(t *testing.T) {
	svc := &fakeService{state: activeCourse()}
	h := New(svc, noDashboards{}, "s1", "u1")
	h.Update(h.Init()())

	h.Update(h.reset()())

	if svc.resets != 1 {
		t.Errorf("resets = %d, want 1", svc.resets)
	}
	if h.menu.Items[0].Label != "START LEARNING" {
		t.Error("menu should reflect the reset session")
	}
}

func TestHomeScreen_RefreshesOnResume(t *testing.T) {
	svc := &fakeService{state: course.NewState()}
	h := New(svc, noDashboards{}, "s1", "u1")
	h.Update(h.Init()())

	svc.state = activeCourse()
	_, cmd := h.Update(router.ResumedMsg{})
	if cmd == nil {
		t.Fatal("expected a reload command on resume")
	}
	h.Update(cmd())

	if h.menu.Items[0].Label != "CONTINUE COURSE" {
		t.Errorf("first item = %q after resume", h.menu.Items[0].Label)
	}
}
