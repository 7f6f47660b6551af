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

// quizRepo implements QuizRepo on the quizzes table.
type quizRepo struct {
	db *sql.DB
}

func (r *quizRepo) Save(ctx context.Context, q *QuizRecord) error {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(quizzesTable.Name).
		Columns("quiz_id", "user_id", "topic", "lesson_title", "lesson_index", "questions", "created_at").
		Values(q.QuizID, q.UserID, q.Topic, q.LessonTitle, q.LessonIndex, string(q.Questions), q.CreatedAt).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save quiz %q: %w", q.QuizID, err)
	}
	return nil
}

func (r *quizRepo) Get(ctx context.Context, quizID string) (*QuizRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select("quiz_id", "user_id", "topic", "lesson_title", "lesson_index", "questions", "created_at").
		From(b.Table(quizzesTable.Name)).
		Where(entsql.EQ("quiz_id", quizID)).
		Limit(1).
		Query()

	var (
		q         QuizRecord
		questions string
	)
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&q.QuizID, &q.UserID, &q.Topic, &q.LessonTitle, &q.LessonIndex, &questions, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("quiz %q: %w", quizID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get quiz %q: %w", quizID, err)
	}
	q.Questions = []byte(questions)
	return &q, nil
}
