package course

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abhisek/lectern/internal/store"
)

// SessionStore persists State by session id. Load returns nil, nil for an
// unknown session.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (*State, error)
	Save(ctx context.Context, sessionID string, st *State) error
}

// RepoStore adapts a store.SessionRepo (SQLite or Redis) to SessionStore by
// encoding State as JSON.
type RepoStore struct {
	repo store.SessionRepo
}

// NewRepoStore wraps repo.
func NewRepoStore(repo store.SessionRepo) *RepoStore {
	return &RepoStore{repo: repo}
}

func (r *RepoStore) Load(ctx context.Context, sessionID string) (*State, error) {
	rec, err := r.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	st := NewState()
	if err := json.Unmarshal(rec.State, st); err != nil {
		return nil, fmt.Errorf("decode session %q: %w", sessionID, err)
	}
	if st.Mode == "" {
		st.Mode = ModeNone
	}
	return st, nil
}

func (r *RepoStore) Save(ctx context.Context, sessionID string, st *State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session %q: %w", sessionID, err)
	}
	return r.repo.Save(ctx, &store.SessionRecord{
		SessionID: sessionID,
		State:     raw,
		UpdatedAt: st.UpdatedAt,
	})
}

// MemoryStore keeps sessions in process memory. States are deep-copied
// through JSON so callers never share slices with the store.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) (*State, error) {
	m.mu.Lock()
	raw, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	st := NewState()
	if err := json.Unmarshal(raw, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (m *MemoryStore) Save(_ context.Context, sessionID string, st *State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.sessions[sessionID] = raw
	m.mu.Unlock()
	return nil
}
