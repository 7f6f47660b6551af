package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequenceCounter orders quiz attempts and LLM events on one shared,
// strictly increasing counter. Timestamps alone can tie or go backwards.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

const (
	createSequenceTable = `CREATE TABLE IF NOT EXISTS lectern_sequence (
		id    INTEGER PRIMARY KEY CHECK (id = 1),
		value INTEGER NOT NULL
	)`

	// The first call inserts 1; every later call bumps the single row.
	bumpSequence = `INSERT INTO lectern_sequence (id, value) VALUES (1, 1)
		ON CONFLICT (id) DO UPDATE SET value = value + 1
		RETURNING value`
)

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	if _, err := db.Exec(createSequenceTable); err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

func (c *sequenceCounter) Next(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	if err := c.db.QueryRowContext(ctx, bumpSequence).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}
