package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/lectern/internal/config"
	"github.com/abhisek/lectern/internal/course"
	"github.com/abhisek/lectern/internal/llm"
	"github.com/abhisek/lectern/internal/logger"
	"github.com/abhisek/lectern/internal/performance"
	"github.com/abhisek/lectern/internal/quiz"
	"github.com/abhisek/lectern/internal/roadmap"
	"github.com/abhisek/lectern/internal/store"
)

// env holds everything a command needs, opened once per invocation.
type env struct {
	cfg      *config.Config
	log      *logger.Logger
	store    *store.Store
	provider llm.Provider // nil when no provider is configured
	llmCfg   llm.Config

	closers []func()
}

type envOpts struct {
	// logFile sends logs to a file next to the database.
	logFile bool
	// needLLM fails the command when no provider is configured.
	needLLM bool
	// noLLM skips provider setup for commands that only read the store.
	noLLM bool
}

func openEnv(cmd *cobra.Command, opts envOpts) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	var log *logger.Logger
	if opts.logFile {
		log, err = logger.NewFile(cfg.Log.Mode, filepath.Join(filepath.Dir(dbPath), "lectern.log"))
	} else {
		log, err = logger.New(cfg.Log.Mode, cfg.Log.Level)
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	e := &env{cfg: cfg, log: log, store: st}
	e.closers = append(e.closers, func() { st.Close() }, log.Sync)

	if opts.noLLM {
		return e, nil
	}
	llmCfg, err := llm.ResolveConfig()
	if err == nil {
		e.llmCfg = llmCfg
		e.provider, err = llm.NewProvider(cmd.Context(), llmCfg, st.EventRepo(), log)
	}
	if err != nil {
		if opts.needLLM {
			e.Close()
			return nil, fmt.Errorf("LLM provider: %w", err)
		}
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	}
	return e, nil
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the db setting (file or LECTERN_DB), then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func (e *env) sessions(ctx context.Context) (course.SessionStore, error) {
	switch e.cfg.Session.Backend {
	case "redis":
		client, err := store.NewRedisClient(ctx, e.cfg.Redis.Addr, e.cfg.Redis.Password)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, func() { client.Close() })
		return course.NewRepoStore(store.NewRedisSessionRepo(client, e.cfg.Redis.TTL)), nil
	case "memory":
		return course.NewMemoryStore(), nil
	default:
		return course.NewRepoStore(e.store.SessionRepo()), nil
	}
}

func (e *env) tracker() *performance.Tracker {
	return performance.NewTracker(e.store.AttemptRepo(), e.log)
}

func (e *env) tutor(ctx context.Context) (*course.Service, error) {
	sessions, err := e.sessions(ctx)
	if err != nil {
		return nil, err
	}
	gen := llm.NewTextGenerator(e.provider, llm.WithTimeout(e.llmCfg.Timeout))
	return course.NewService(course.Deps{
		Generator:        gen,
		Sessions:         sessions,
		Performance:      e.tracker(),
		Logger:           e.log,
		DefaultUser:      e.cfg.Tutor.DefaultUser,
		RepeatAdaptation: e.cfg.Tutor.RepeatAdaptation,
	}), nil
}

func (e *env) quizzes() *quiz.Service {
	return quiz.NewService(e.provider, e.store.QuizRepo(), e.store.AttemptRepo(), e.log)
}

func (e *env) roadmaps() *roadmap.Generator {
	return roadmap.NewGenerator(e.provider)
}

// sessionID returns the --session value. With --new-session a random id is
// generated once, announced on stderr and written back to the flag.
func sessionID(cmd *cobra.Command) string {
	if fresh, _ := cmd.Flags().GetBool("new-session"); fresh {
		id := uuid.NewString()
		_ = cmd.Flags().Set("session", id)
		_ = cmd.Flags().Set("new-session", "false")
		fmt.Fprintf(os.Stderr, "session: %s\n", id)
		return id
	}
	id, _ := cmd.Flags().GetString("session")
	if id == "" {
		return "default"
	}
	return id
}
