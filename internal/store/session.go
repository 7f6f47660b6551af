package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sessionRepo implements SessionRepo on the sessions table.
type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Load(ctx context.Context, sessionID string) (*SessionRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select("session_id", "state", "updated_at").
		From(b.Table(sessionsTable.Name)).
		Where(entsql.EQ("session_id", sessionID)).
		Limit(1).
		Query()

	var (
		rec   SessionRecord
		state string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&rec.SessionID, &state, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %q: %w", sessionID, err)
	}
	rec.State = []byte(state)
	return &rec, nil
}

func (r *sessionRepo) Save(ctx context.Context, rec *SessionRecord) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(sessionsTable.Name).
		Columns("session_id", "state", "updated_at").
		Values(rec.SessionID, string(rec.State), rec.UpdatedAt).
		OnConflict(
			entsql.ConflictColumns("session_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session %q: %w", rec.SessionID, err)
	}
	return nil
}
