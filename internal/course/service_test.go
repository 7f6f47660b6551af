package course

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/lectern/internal/llm"
	"github.com/abhisek/lectern/internal/performance"
	"github.com/abhisek/lectern/internal/syllabus"
)

// scriptedGen answers by the llm purpose attached to the context.
type scriptedGen struct {
	mu      sync.Mutex
	replies map[string]string
	errs    map[string]error
	prompts map[string][]string
}

func newScriptedGen(replies map[string]string) *scriptedGen {
	return &scriptedGen{replies: replies, errs: map[string]error{}, prompts: map[string][]string{}}
}

func (g *scriptedGen) Generate(ctx context.Context, prompt string) (string, error) {
	purpose := llm.PurposeFrom(ctx)
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts[purpose] = append(g.prompts[purpose], prompt)
	if err := g.errs[purpose]; err != nil {
		return "", err
	}
	return g.replies[purpose], nil
}

func (g *scriptedGen) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		text, err := g.Generate(ctx, prompt)
		if err != nil {
			yield("", err)
			return
		}
		for _, word := range strings.SplitAfter(text, " ") {
			if !yield(word, nil) {
				return
			}
		}
	}
}

func (g *scriptedGen) calls(purpose string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts[purpose])
}

type fixedPerformance struct {
	summary performance.Summary
	users   []string
}

func (f *fixedPerformance) Summary(_ context.Context, userID, _ string) performance.Summary {
	f.users = append(f.users, userID)
	return f.summary
}

type failingSessions struct{ err error }

func (f failingSessions) Load(context.Context, string) (*State, error) { return nil, f.err }
func (f failingSessions) Save(context.Context, string, *State) error   { return f.err }

func lessons(titles ...string) []syllabus.Lesson {
	out := make([]syllabus.Lesson, len(titles))
	for i, title := range titles {
		out[i] = syllabus.Lesson{Title: title, Summary: "about " + title}
	}
	return out
}

func seed(t *testing.T, sessions *MemoryStore, id string, st *State) {
	t.Helper()
	if err := sessions.Save(t.Context(), id, st); err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func courseState(current int, titles ...string) *State {
	st := NewState()
	st.Mode = ModeCourse
	st.Topic = "recursion"
	st.Syllabus = lessons(titles...)
	st.CurrentLesson = current
	return st
}

func TestSubmitQuery_TeachMeRecursionEndToEnd(t *testing.T) {
	var items []string
	for i := range 12 {
		items = append(items, fmt.Sprintf(`{"title": "Recursion Step %d", "summary": "Part %d"}`, i+1, i+1))
	}
	mock := llm.NewMockProvider(
		llm.TextResponse(`{"type": "course", "topic": "recursion", "reason": "asks to be taught"}`),
		llm.TextResponse("["+strings.Join(items, ",")+"]"),
		llm.TextResponse("## Base cases\nEvery recursive function needs one."),
	)
	svc := NewService(Deps{Generator: llm.NewTextGenerator(mock), Sessions: NewMemoryStore()})

	turn, err := svc.SubmitQuery(t.Context(), "s1", "teach me recursion")
	if err != nil {
		t.Fatalf("SubmitQuery: %v", err)
	}

	if turn.Mode != ModeCourse || turn.CurrentLesson != 0 || turn.Topic != "recursion" {
		t.Fatalf("turn = mode %q, lesson %d, topic %q", turn.Mode, turn.CurrentLesson, turn.Topic)
	}

	listing, lesson, ok := strings.Cut(turn.Response, "Lesson 1:")
	if !ok {
		t.Fatalf("response has no lesson 1:\n%s", turn.Response)
	}
	numbered := regexp.MustCompile(`(?m)^\d+\. .+ - .+$`).FindAllString(listing, -1)
	if len(numbered) < 10 || len(numbered) > 15 {
		t.Errorf("syllabus listing has %d numbered lines, want 10-15", len(numbered))
	}
	if !strings.HasPrefix(turn.Response, "Starting course: recursion\n\nSyllabus:\n1. Recursion Step 1 - Part 1") {
		t.Errorf("unexpected response start:\n%s", turn.Response)
	}
	if !strings.Contains(lesson, "Every recursive function needs one.") {
		t.Errorf("lesson body missing:\n%s", lesson)
	}
	if !strings.HasSuffix(turn.Response, controlsHint) {
		t.Error("controls hint missing")
	}
	if mock.CallCount() != 3 {
		t.Errorf("provider calls = %d, want 3", mock.CallCount())
	}
}

func TestSubmitQuery_HeuristicCourseWhenModelUnavailable(t *testing.T) {
	gen := newScriptedGen(map[string]string{"lesson": "body"})
	gen.errs["classify"] = errors.New("model offline")
	gen.errs["syllabus"] = errors.New("model offline")
	svc := NewService(Deps{Generator: gen, Sessions: NewMemoryStore()})

	turn, err := svc.SubmitQuery(t.Context(), "s1", "I want to learn Go")
	if err != nil {
		t.Fatal(err)
	}
	if turn.Mode != ModeCourse {
		t.Fatalf("mode = %q, want course", turn.Mode)
	}
	if len(turn.Syllabus) != 10 || turn.Syllabus[0].Title != "Introduction to I want to learn Go" {
		t.Errorf("expected template syllabus, got %+v", turn.Syllabus)
	}
}

func TestSubmitQuery_EmptyQuery(t *testing.T) {
	gen := newScriptedGen(nil)
	svc := NewService(Deps{Generator: gen, Sessions: NewMemoryStore()})

	turn, err := svc.SubmitQuery(t.Context(), "s1", "   ")
	if err != nil {
		t.Fatal(err)
	}
	if turn.Response != "Please type a question or 'teach me <topic>'" {
		t.Errorf("Response = %q", turn.Response)
	}
	if turn.Mode != ModeNone {
		t.Errorf("Mode = %q, want none", turn.Mode)
	}
	if gen.calls("classify") != 0 {
		t.Error("empty query must not reach the classifier")
	}
}

func TestSubmitQuery_ConceptWhenIdle(t *testing.T) {
	gen := newScriptedGen(map[string]string{
		"classify": `{"type": "concept", "topic": "closures"}`,
		"concept":  "A closure captures variables.",
	})
	svc := NewService(Deps{Generator: gen, Sessions: NewMemoryStore()})

	turn, err := svc.SubmitQuery(t.Context(), "s1", "what is a closure?")
	if err != nil {
		t.Fatal(err)
	}
	if turn.Mode != ModeConcept || turn.Response != "A closure captures variables." {
		t.Fatalf("turn = %+v", turn)
	}
}

func TestSubmitQuery_Navigation(t *testing.T) {
	gen := newScriptedGen(map[string]string{"lesson": "body"})
	sessions := NewMemoryStore()
	seed(t, sessions, "s1", courseState(0, "A", "B", "C"))
	svc := NewService(Deps{Generator: gen, Sessions: sessions})

	steps := []struct {
		input   string
		want    int
		mode    Mode
		heading string
	}{
		{"next", 1, ModeCourse, "Lesson 2: B"},
		{"next", 2, ModeCourse, "Lesson 3: C"},
		{"next", 2, ModeCourse, "Lesson 3: C"},
		{"prev", 1, ModeCourse, "Lesson 2: B"},
		{"repeat", 1, ModeCourse, "Lesson 2: B"},
		{"goto 1", 0, ModeCourse, "Lesson 1: A"},
		{"prev", 0, ModeCourse, "Lesson 1: A"},
		{"goto 42", 2, ModeCourse, "Lesson 3: C"},
		{"goto 99999999999999999999", 2, ModeCourse, "Lesson 3: C"},
		{"goto -99999999999999999999", 0, ModeCourse, "Lesson 1: A"},
		{"goto 3", 2, ModeCourse, "Lesson 3: C"},
		{"goto abc", 2, ModeCourse, "Could not parse the lesson number. Use 'goto 3' to go to lesson 3."},
		{"stop", 2, ModePaused, "Course paused."},
		{"resume", 2, ModeCourse, "Lesson 3: C"},
	}

	for _, step := range steps {
		turn, err := svc.SubmitQuery(t.Context(), "s1", step.input)
		if err != nil {
			t.Fatalf("%q: %v", step.input, err)
		}
		if turn.CurrentLesson != step.want || turn.Mode != step.mode {
			t.Fatalf("%q: lesson %d mode %q, want %d %q", step.input, turn.CurrentLesson, turn.Mode, step.want, step.mode)
		}
		if !strings.HasPrefix(turn.Response, step.heading) {
			t.Fatalf("%q: response %q, want prefix %q", step.input, turn.Response, step.heading)
		}
	}

	if gen.calls("classify") != 0 {
		t.Errorf("navigation commands reached the classifier %d times", gen.calls("classify"))
	}
}

func TestSubmitQuery_PausedInputIsClassified(t *testing.T) {
	gen := newScriptedGen(map[string]string{
		"classify": `{"type": "concept"}`,
		"concept":  "explained",
	})
	sessions := NewMemoryStore()
	st := courseState(1, "A", "B")
	st.Mode = ModePaused
	seed(t, sessions, "s1", st)
	svc := NewService(Deps{Generator: gen, Sessions: sessions})

	turn, err := svc.SubmitQuery(t.Context(), "s1", "next")
	if err != nil {
		t.Fatal(err)
	}
	if turn.Mode != ModeConcept || turn.Response != "explained" {
		t.Errorf("turn = %+v", turn)
	}
}

func TestSubmitQuery_ConceptInsideCourse(t *testing.T) {
	gen := newScriptedGen(map[string]string{
		"classify": `{"type": "concept", "topic": "stack frames"}`,
		"concept":  "Frames hold locals.",
	})
	sessions := NewMemoryStore()
	seed(t, sessions, "s1", courseState(1, "A", "B", "C"))
	svc := NewService(Deps{Generator: gen, Sessions: sessions})

	turn, err := svc.SubmitQuery(t.Context(), "s1", "what is a stack frame?")
	if err != nil {
		t.Fatal(err)
	}
	if turn.Mode != ModeCourse || turn.Topic != "recursion" || turn.CurrentLesson != 1 || len(turn.Syllabus) != 3 {
		t.Fatalf("course state changed: %+v", turn)
	}
	want := "Frames hold locals.\n\n(You are in course 'recursion'. Type 'resume' or 'next' to continue the course.)"
	if turn.Response != want {
		t.Errorf("Response = %q, want %q", turn.Response, want)
	}
}

func TestSubmitQuery_NewCourseReplacesActiveCourse(t *testing.T) {
	gen := newScriptedGen(map[string]string{
		"classify": `{"type": "course", "topic": "graphs"}`,
		"syllabus": `[{"title": "Graph Basics", "summary": "nodes"}]`,
		"lesson":   "body",
	})
	sessions := NewMemoryStore()
	seed(t, sessions, "s1", courseState(2, "A", "B", "C"))
	svc := NewService(Deps{Generator: gen, Sessions: sessions})

	turn, err := svc.SubmitQuery(t.Context(), "s1", "teach me graphs")
	if err != nil {
		t.Fatal(err)
	}
	if turn.Topic != "graphs" || turn.CurrentLesson != 0 || len(turn.Syllabus) != 1 {
		t.Errorf("turn = %+v", turn)
	}
}

func TestSubmitQuery_GenerationFailureIsText(t *testing.T) {
	gen := newScriptedGen(map[string]string{"classify": `{"type": "concept"}`})
	gen.errs["concept"] = errors.New("quota exceeded")
	gen.errs["lesson"] = errors.New("quota exceeded")
	sessions := NewMemoryStore()
	svc := NewService(Deps{Generator: gen, Sessions: sessions})

	turn, err := svc.SubmitQuery(t.Context(), "s1", "what is a monad")
	if err != nil {
		t.Fatal(err)
	}
	if turn.Response != "Sorry, couldn't generate explanation due to: quota exceeded" {
		t.Errorf("Response = %q", turn.Response)
	}

	seed(t, sessions, "s2", courseState(0, "A", "B"))
	turn, err = svc.SubmitQuery(t.Context(), "s2", "next")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(turn.Response, "Sorry, couldn't generate lesson due to: quota exceeded") {
		t.Errorf("Response = %q", turn.Response)
	}
}

func TestSubmitQuery_StoreErrors(t *testing.T) {
	svc := NewService(Deps{Generator: newScriptedGen(nil), Sessions: failingSessions{err: errors.New("disk full")}})

	if _, err := svc.SubmitQuery(t.Context(), "s1", "hello"); err == nil {
		t.Fatal("expected store error")
	}
}

func TestRender_RecommendationHeader(t *testing.T) {
	gen := newScriptedGen(map[string]string{"lesson": "body"})
	perf := &fixedPerformance{summary: performance.Summary{
		TotalAttempts: 3,
		AverageScore:  45,
		WeakAreas:     []string{},
		RecentScores:  []float64{40, 45, 50},
	}}
	sessions := NewMemoryStore()
	seed(t, sessions, "s1", courseState(0, "A", "B"))
	svc := NewService(Deps{Generator: gen, Sessions: sessions, Performance: perf, DefaultUser: "ada"})

	turn, err := svc.SubmitQuery(t.Context(), "s1", "repeat")
	if err != nil {
		t.Fatal(err)
	}
	want := "Lesson 1: A\n(Topic: recursion)\n\n" +
		"🎯 **Personalized Learning Recommendations:**\n" +
		"• Consider reviewing previous lessons before moving forward\n" +
		"• Your recent performance shows a declining trend. Consider taking a break and reviewing fundamentals\n\n" +
		"body"
	if turn.Response != want {
		t.Errorf("Response =\n%q\nwant\n%q", turn.Response, want)
	}
	if len(perf.users) != 1 || perf.users[0] != "ada" {
		t.Errorf("performance queried for %v", perf.users)
	}

	st, err := svc.State(t.Context(), "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(st.AdaptiveRecommendations) != 2 || st.UserPerformance.AverageScore != 45 {
		t.Errorf("cached performance not stored: %+v", st)
	}
}

func weakRecursion() *fixedPerformance {
	return &fixedPerformance{summary: performance.Summary{
		TotalAttempts: 2,
		AverageScore:  65,
		WeakAreas:     []string{"recursion"},
		TopicScores:   map[string]float64{"recursion": 40},
	}}
}

func TestRender_AdaptsOncePerTopic(t *testing.T) {
	gen := newScriptedGen(map[string]string{"lesson": "body"})
	sessions := NewMemoryStore()
	seed(t, sessions, "s1", courseState(0, "Recursion Basics", "Trees"))
	svc := NewService(Deps{Generator: gen, Sessions: sessions, Performance: weakRecursion()})

	for range 3 {
		if _, err := svc.SubmitQuery(t.Context(), "s1", "repeat"); err != nil {
			t.Fatal(err)
		}
	}

	st, _ := svc.State(t.Context(), "s1")
	if len(st.Syllabus) != 5 {
		t.Fatalf("syllabus len = %d, want 5", len(st.Syllabus))
	}
	if st.Syllabus[1].Title != "recursion Practice Session" || st.Syllabus[4].Title != "Trees" {
		t.Errorf("syllabus = %+v", st.Syllabus)
	}
	if len(st.AdaptedTopics) != 1 || st.AdaptedTopics[0] != "recursion" {
		t.Errorf("AdaptedTopics = %v", st.AdaptedTopics)
	}
}

func TestRender_RepeatAdaptation(t *testing.T) {
	gen := newScriptedGen(map[string]string{"lesson": "body"})
	sessions := NewMemoryStore()
	seed(t, sessions, "s1", courseState(0, "Recursion Basics", "Trees"))
	svc := NewService(Deps{Generator: gen, Sessions: sessions, Performance: weakRecursion(), RepeatAdaptation: true})

	for range 2 {
		if _, err := svc.SubmitQuery(t.Context(), "s1", "repeat"); err != nil {
			t.Fatal(err)
		}
	}

	st, _ := svc.State(t.Context(), "s1")
	if len(st.Syllabus) != 8 {
		t.Fatalf("syllabus len = %d, want 8", len(st.Syllabus))
	}
}

func TestRender_InsertionAheadKeepsCurrentLesson(t *testing.T) {
	gen := newScriptedGen(map[string]string{"lesson": "body"})
	sessions := NewMemoryStore()
	seed(t, sessions, "s1", courseState(1, "Recursion Basics", "Trees", "Graphs"))
	svc := NewService(Deps{Generator: gen, Sessions: sessions, Performance: weakRecursion()})

	turn, err := svc.SubmitQuery(t.Context(), "s1", "next")
	if err != nil {
		t.Fatal(err)
	}
	if turn.CurrentLesson != 5 || turn.Syllabus[5].Title != "Graphs" {
		t.Fatalf("current = %d in %+v", turn.CurrentLesson, turn.Syllabus)
	}
	if !strings.HasPrefix(turn.Response, "Lesson 6: Graphs\n") {
		t.Errorf("Response = %q", turn.Response)
	}
}

func TestStreamLesson(t *testing.T) {
	gen := newScriptedGen(map[string]string{"lesson": "one two three four"})
	sessions := NewMemoryStore()
	seed(t, sessions, "s1", courseState(1, "A", "B"))
	svc := NewService(Deps{Generator: gen, Sessions: sessions})

	ls, err := svc.StreamLesson(t.Context(), "s1")
	if err != nil {
		t.Fatalf("StreamLesson: %v", err)
	}
	if ls.Index != 1 || ls.Title != "B" || !strings.HasPrefix(ls.Header, "Lesson 2: B") {
		t.Fatalf("stream = %+v", ls)
	}

	var got []string
	for chunk := range ls.Body {
		got = append(got, chunk)
		if len(got) == 2 {
			break
		}
	}
	if strings.Join(got, "") != "one two " {
		t.Errorf("chunks = %q", got)
	}

	st, err := svc.State(t.Context(), "s1")
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode != ModeCourse || st.CurrentLesson != 1 {
		t.Errorf("state after early stop = %+v", st)
	}
}

func TestStreamLesson_GenerationError(t *testing.T) {
	gen := newScriptedGen(nil)
	gen.errs["lesson"] = errors.New("boom")
	sessions := NewMemoryStore()
	seed(t, sessions, "s1", courseState(0, "A"))
	svc := NewService(Deps{Generator: gen, Sessions: sessions})

	ls, err := svc.StreamLesson(t.Context(), "s1")
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	for chunk := range ls.Body {
		b.WriteString(chunk)
	}
	if b.String() != "Sorry, couldn't generate lesson due to: boom" {
		t.Errorf("body = %q", b.String())
	}
}

func TestStreamLesson_NoCourse(t *testing.T) {
	svc := NewService(Deps{Generator: newScriptedGen(nil), Sessions: NewMemoryStore()})

	if _, err := svc.StreamLesson(t.Context(), "nobody"); !errors.Is(err, ErrEmptySyllabus) {
		t.Fatalf("err = %v, want ErrEmptySyllabus", err)
	}
}

func TestReset(t *testing.T) {
	sessions := NewMemoryStore()
	seed(t, sessions, "s1", courseState(2, "A", "B", "C"))
	svc := NewService(Deps{Generator: newScriptedGen(nil), Sessions: sessions})

	if err := svc.Reset(t.Context(), "s1"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	st, err := svc.State(t.Context(), "s1")
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if st.Mode != ModeNone || len(st.Syllabus) != 0 || st.CurrentLesson != 0 {
		t.Errorf("state after reset = %+v", st)
	}
}

func TestAnswerDoubt_UsesSessionContext(t *testing.T) {
	gen := newScriptedGen(map[string]string{"doubt": "Because the base case stops it."})
	sessions := NewMemoryStore()
	st := courseState(0, "A")
	st.Response = "Lesson 1: A\nRecursion calls itself."
	seed(t, sessions, "s1", st)
	svc := NewService(Deps{Generator: gen, Sessions: sessions})

	answer, err := svc.AnswerDoubt(t.Context(), Doubt{SessionID: "s1", Question: "why does it stop?"})
	if err != nil {
		t.Fatal(err)
	}
	if answer != "Because the base case stops it." {
		t.Errorf("answer = %q", answer)
	}
	prompt := gen.prompts["doubt"][0]
	for _, want := range []string{"recursion", "Recursion calls itself.", "why does it stop?"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("doubt prompt missing %q", want)
		}
	}
}

func TestAnswerDoubt_GenerationFailure(t *testing.T) {
	gen := newScriptedGen(nil)
	gen.errs["doubt"] = errors.New("offline")
	svc := NewService(Deps{Generator: gen, Sessions: NewMemoryStore()})

	answer, err := svc.AnswerDoubt(t.Context(), Doubt{Question: "q", Topic: "t"})
	if err != nil {
		t.Fatal(err)
	}
	if answer != "Sorry, couldn't answer the question due to: offline" {
		t.Errorf("answer = %q", answer)
	}
}

func TestSubmitQuery_ConcurrentSameSession(t *testing.T) {
	gen := newScriptedGen(map[string]string{"lesson": "body"})
	sessions := NewMemoryStore()
	seed(t, sessions, "s1", courseState(0, "A", "B", "C", "D", "E", "F", "G", "H", "I", "J"))
	svc := NewService(Deps{Generator: gen, Sessions: sessions})

	var wg sync.WaitGroup
	for range 5 {
		wg.Go(func() {
			if _, err := svc.SubmitQuery(context.Background(), "s1", "next"); err != nil {
				t.Error(err)
			}
		})
	}
	wg.Wait()

	st, _ := svc.State(t.Context(), "s1")
	if st.CurrentLesson != 5 {
		t.Errorf("CurrentLesson = %d, want 5 after five serialized nexts", st.CurrentLesson)
	}
}

func TestSessionLocks_ReleasedAfterTurns(t *testing.T) {
	gen := newScriptedGen(map[string]string{"lesson": "body"})
	sessions := NewMemoryStore()
	svc := NewService(Deps{Generator: gen, Sessions: sessions})

	for i := range 4 {
		seed(t, sessions, fmt.Sprintf("thread-%d", i), courseState(0, "A", "B"))
	}

	var wg sync.WaitGroup
	for i := range 20 {
		id := fmt.Sprintf("thread-%d", i%4)
		wg.Go(func() {
			if _, err := svc.SubmitQuery(context.Background(), id, "next"); err != nil {
				t.Error(err)
			}
		})
	}
	wg.Wait()

	if n := svc.locks.len(); n != 0 {
		t.Errorf("%d session locks left after all turns finished", n)
	}
}

func TestSessionLocks_SerializeSameID(t *testing.T) {
	var locks sessionLocks
	release := locks.acquire("s1")

	acquired := make(chan struct{})
	go func() {
		defer locks.acquire("s1")()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second holder entered while the first still held the lock")
	case <-time.After(20 * time.Millisecond):
	}

	otherDone := make(chan struct{})
	go func() {
		locks.acquire("s2")()
		close(otherDone)
	}()
	select {
	case <-otherDone:
	case <-time.After(time.Second):
		t.Fatal("a different session id was blocked")
	}

	release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter never acquired the released lock")
	}
}
