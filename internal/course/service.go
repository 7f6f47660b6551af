package course

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/lectern/internal/classify"
	"github.com/abhisek/lectern/internal/llm"
	"github.com/abhisek/lectern/internal/logger"
	"github.com/abhisek/lectern/internal/syllabus"
)

// DefaultUser is the learner whose quiz history drives adaptation when
// none is configured.
const DefaultUser = "default_user"

const (
	emptyQueryResponse = "Please type a question or 'teach me <topic>'"
	badGotoResponse    = "Could not parse the lesson number. Use 'goto 3' to go to lesson 3."
	pausedResponse     = "Course paused. Type 'resume' to continue or 'teach me <topic>' to start another course."
	controlsHint       = "Controls: 'next', 'prev', 'repeat', 'goto <n>', 'stop', or ask a concept question."
)

// ErrEmptySyllabus is returned when a lesson is requested for a session
// with no course.
var ErrEmptySyllabus = errors.New("no active course")

// Deps are the collaborators of a Service. Generator and Sessions are
// required; the rest have defaults.
type Deps struct {
	Generator   ContentGenerator
	Sessions    SessionStore
	Performance Summarizer
	Classifier  *classify.Classifier
	Syllabus    *syllabus.Pipeline
	Logger      *logger.Logger

	// DefaultUser is whose performance adapts lessons. Default: "default_user".
	DefaultUser string
	// RepeatAdaptation re-applies syllabus adaptation on every render
	// instead of once per topic per session.
	RepeatAdaptation bool
}

// Service orchestrates turns against persisted session state.
type Service struct {
	gen        ContentGenerator
	sessions   SessionStore
	classifier *classify.Classifier
	pipeline   *syllabus.Pipeline
	renderer   *Renderer
	log        *logger.Logger

	locks sessionLocks
}

// NewService creates a Service from deps.
func NewService(d Deps) *Service {
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("component", "course")

	if d.Classifier == nil {
		d.Classifier = classify.New(d.Generator, log)
	}
	if d.Syllabus == nil {
		d.Syllabus = syllabus.DefaultPipeline(d.Generator, log)
	}
	if d.DefaultUser == "" {
		d.DefaultUser = DefaultUser
	}

	return &Service{
		gen:        d.Generator,
		sessions:   d.Sessions,
		classifier: d.Classifier,
		pipeline:   d.Syllabus,
		renderer: &Renderer{
			gen:              d.Generator,
			perf:             d.Performance,
			userID:           d.DefaultUser,
			repeatAdaptation: d.RepeatAdaptation,
			log:              log,
		},
		log: log,
	}
}

// lock serializes turns on one session.
func (s *Service) lock(sessionID string) func() {
	return s.locks.acquire(sessionID)
}

// sessionLocks hands out one mutex per session id. An entry lives only
// while some turn holds or waits on it.
type sessionLocks struct {
	mu   sync.Mutex
	held map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func (l *sessionLocks) acquire(id string) func() {
	l.mu.Lock()
	if l.held == nil {
		l.held = make(map[string]*sessionLock)
	}
	sl, ok := l.held[id]
	if !ok {
		sl = &sessionLock{}
		l.held[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()

		l.mu.Lock()
		if sl.refs--; sl.refs == 0 {
			delete(l.held, id)
		}
		l.mu.Unlock()
	}
}

func (l *sessionLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}

func (s *Service) load(ctx context.Context, sessionID string) (*State, error) {
	st, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if st == nil {
		st = NewState()
	}
	return st, nil
}

func (s *Service) save(ctx context.Context, sessionID string, st *State) error {
	st.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Save(ctx, sessionID, st); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// State returns the current state of a session, or a fresh one.
func (s *Service) State(ctx context.Context, sessionID string) (*State, error) {
	return s.load(ctx, sessionID)
}

// Reset forgets the session's course and mode.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	unlock := s.lock(sessionID)
	defer unlock()
	return s.save(ctx, sessionID, NewState())
}

// SubmitQuery runs one conversational turn. Only session load and save
// failures are returned as errors; everything else degrades to text.
func (s *Service) SubmitQuery(ctx context.Context, sessionID, query string) (*Turn, error) {
	ctx = llm.WithSession(ctx, sessionID)
	unlock := s.lock(sessionID)
	defer unlock()

	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	st.Query = query
	s.handle(ctx, st, strings.TrimSpace(query))

	if err := s.save(ctx, sessionID, st); err != nil {
		return nil, err
	}
	return st.turn(), nil
}

func (s *Service) handle(ctx context.Context, st *State, query string) {
	if query == "" {
		st.Response = emptyQueryResponse
		return
	}

	if st.Mode == ModePaused && len(st.Syllabus) > 0 {
		if cmd := strings.ToLower(query); cmd == "resume" || cmd == "continue" {
			st.Mode = ModeCourse
			st.CurrentLesson = Navigate(st.CurrentLesson, len(st.Syllabus), Command{Kind: CmdRepeat})
			st.Response = s.renderer.Render(ctx, st, st.CurrentLesson)
			return
		}
	}

	if st.InCourse() {
		if s.navigate(ctx, st, ParseCommand(query)) {
			return
		}
	}

	result := s.classifier.Classify(ctx, query)
	s.log.Debug("query classified", "type", string(result.Type), "topic", result.Topic, "source", string(result.Source))

	switch result.Type {
	case classify.Course:
		s.startCourse(ctx, st, result.Topic)
	default:
		explanation := s.explain(ctx, query)
		if st.InCourse() {
			st.Response = fmt.Sprintf("%s\n\n(You are in course '%s'. Type 'resume' or 'next' to continue the course.)", explanation, st.Topic)
			return
		}
		st.Mode = ModeConcept
		st.Response = explanation
	}
}

// navigate applies cmd and reports whether it was a navigation command.
func (s *Service) navigate(ctx context.Context, st *State, cmd Command) bool {
	switch cmd.Kind {
	case CmdNone:
		return false
	case CmdStop:
		st.Mode = ModePaused
		st.Response = pausedResponse
	case CmdGoto:
		if cmd.Err != nil {
			st.Response = badGotoResponse
			return true
		}
		fallthrough
	default:
		st.CurrentLesson = Navigate(st.CurrentLesson, len(st.Syllabus), cmd)
		st.Response = s.renderer.Render(ctx, st, st.CurrentLesson)
	}
	return true
}

func (s *Service) startCourse(ctx context.Context, st *State, topic string) {
	lessons, source := s.pipeline.Generate(ctx, topic)
	s.log.Info("course started", "topic", topic, "lessons", len(lessons), "source", source)

	st.Mode = ModeCourse
	st.Topic = topic
	st.Syllabus = lessons
	st.CurrentLesson = 0
	st.AdaptedTopics = nil

	listing := syllabus.Listing(lessons)
	lesson := s.renderer.Render(ctx, st, 0)
	st.Response = fmt.Sprintf("Starting course: %s\n\n%s\n\n---\n%s\n\n%s", topic, listing, lesson, controlsHint)
}

func (s *Service) explain(ctx context.Context, concept string) string {
	text, err := s.gen.Generate(llm.WithPurpose(ctx, llm.PurposeConcept), buildConceptPrompt(concept))
	if err != nil {
		s.log.Warn("concept generation failed", "error", err)
		return fmt.Sprintf("Sorry, couldn't generate explanation due to: %v", err)
	}
	return text
}

// LessonStream is the current lesson with its body produced lazily.
type LessonStream struct {
	Index  int
	Title  string
	Topic  string
	Header string
	Body   iter.Seq[string]
}

// StreamLesson prepares the session's current lesson and returns its body
// as a stream. State changes from adaptation are saved before the stream is
// returned, so a consumer that stops early leaves the session consistent.
func (s *Service) StreamLesson(ctx context.Context, sessionID string) (*LessonStream, error) {
	ctx = llm.WithSession(ctx, sessionID)
	unlock := s.lock(sessionID)
	defer unlock()

	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(st.Syllabus) == 0 {
		return nil, ErrEmptySyllabus
	}

	p, ok := s.renderer.Prepare(ctx, st, st.CurrentLesson)
	if !ok {
		return nil, fmt.Errorf("%w: lesson %d out of range", ErrEmptySyllabus, st.CurrentLesson+1)
	}
	if err := s.save(ctx, sessionID, st); err != nil {
		return nil, err
	}

	return &LessonStream{
		Index:  p.Index,
		Title:  p.Lesson.Title,
		Topic:  st.Topic,
		Header: p.Header,
		Body:   s.renderer.Stream(ctx, p),
	}, nil
}

// Doubt is a question about the lesson being studied. Empty Topic and
// LessonContext are taken from the session.
type Doubt struct {
	SessionID     string
	Question      string
	Topic         string
	LessonContext string
}

// AnswerDoubt answers a question in the context of the current lesson. It
// does not change the session.
func (s *Service) AnswerDoubt(ctx context.Context, d Doubt) (string, error) {
	if strings.TrimSpace(d.Question) == "" {
		return emptyQueryResponse, nil
	}
	ctx = llm.WithSession(ctx, d.SessionID)

	if d.SessionID != "" && (d.Topic == "" || d.LessonContext == "") {
		st, err := s.load(ctx, d.SessionID)
		if err != nil {
			return "", err
		}
		if d.Topic == "" {
			d.Topic = st.Topic
		}
		if d.LessonContext == "" {
			d.LessonContext = st.Response
		}
	}
	if d.Topic == "" {
		d.Topic = "general"
	}

	text, err := s.gen.Generate(llm.WithPurpose(ctx, llm.PurposeDoubt), buildDoubtPrompt(d.Topic, d.LessonContext, d.Question))
	if err != nil {
		s.log.Warn("doubt generation failed", "error", err)
		return fmt.Sprintf("Sorry, couldn't answer the question due to: %v", err), nil
	}
	return text, nil
}
