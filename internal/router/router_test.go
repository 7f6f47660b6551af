package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lectern/internal/screen"
)

type stubScreen struct {
	title   string
	inits   int
	resumed int
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(ResumedMsg); ok {
		s.resumed++
	}
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestRouterNavigation(t *testing.T) {
	home := &stubScreen{title: "home"}
	tutor := &stubScreen{title: "tutor"}
	progress := &stubScreen{title: "progress"}
	r := New(home)

	r.Update(PushScreenMsg{Screen: tutor})
	if r.Depth() != 2 || r.Active() != tutor || tutor.inits != 1 {
		t.Fatalf("after push: depth %d, active %q, inits %d", r.Depth(), r.Active().Title(), tutor.inits)
	}

	r.Update(ReplaceScreenMsg{Screen: progress})
	if r.Depth() != 2 || r.Active() != progress || progress.inits != 1 {
		t.Fatalf("after replace: depth %d, active %q", r.Depth(), r.Active().Title())
	}
	if got := r.View(80, 24); got != "progress" {
		t.Errorf("View() = %q", got)
	}

	cmd := r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active() != home {
		t.Fatalf("after pop: depth %d, active %q", r.Depth(), r.Active().Title())
	}
	if cmd == nil {
		t.Fatal("pop should schedule a ResumedMsg")
	}
	r.Update(cmd())
	if home.resumed != 1 {
		t.Errorf("home resumed %d times, want 1", home.resumed)
	}
}

func TestRouterKeepsRoot(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	if cmd := r.Pop(); cmd != nil {
		t.Error("popping the root should be a no-op")
	}
	if r.Depth() != 1 || r.Active() != home {
		t.Errorf("depth %d, active %q", r.Depth(), r.Active().Title())
	}

	replacement := &stubScreen{title: "home2"}
	r.Replace(replacement)
	if r.Depth() != 1 || r.Active() != replacement {
		t.Errorf("replace at root: depth %d, active %q", r.Depth(), r.Active().Title())
	}
}

func TestRouterForwardsMessages(t *testing.T) {
	home := &stubScreen{title: "home"}
	tutor := &stubScreen{title: "tutor"}
	r := New(home)
	r.Push(tutor)

	r.Update(ResumedMsg{})
	if tutor.resumed != 1 || home.resumed != 0 {
		t.Errorf("messages should reach only the active screen: tutor %d, home %d", tutor.resumed, home.resumed)
	}
}
