package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var attemptColumns = []string{
	"id", "sequence", "quiz_id", "user_id", "topic", "lesson_index", "score",
	"correct_answers", "total_questions", "time_spent", "answers", "results", "submitted_at",
}

// attemptRepo implements AttemptRepo on the quiz_attempts table.
type attemptRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *attemptRepo) Append(ctx context.Context, a *QuizAttempt) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	if a.SubmittedAt.IsZero() {
		a.SubmittedAt = time.Now().UTC()
	}

	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	results := a.Results
	if len(results) == 0 {
		results = json.RawMessage("[]")
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(quizAttemptsTable.Name).
		Columns(attemptColumns[1:]...).
		Values(seq, a.QuizID, a.UserID, a.Topic, a.LessonIndex, a.Score,
			a.CorrectAnswers, a.TotalQuestions, a.TimeSpent, string(answers), string(results), a.SubmittedAt).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save quiz attempt: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		a.ID = int(id)
	}
	a.Sequence = seq
	return nil
}

func (r *attemptRepo) Query(ctx context.Context, userID, topic string) ([]QuizAttempt, error) {
	b := entsql.Dialect(dialect.SQLite)
	pred := entsql.EQ("user_id", userID)
	if topic != "" {
		pred = entsql.And(pred, entsql.EQ("topic", topic))
	}
	query, args := b.Select(attemptColumns...).
		From(b.Table(quizAttemptsTable.Name)).
		Where(pred).
		OrderBy(entsql.Desc("submitted_at"), entsql.Desc("sequence")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz attempts: %w", err)
	}
	defer rows.Close()

	var out []QuizAttempt
	for rows.Next() {
		var (
			a                QuizAttempt
			answers, results string
		)
		if err := rows.Scan(&a.ID, &a.Sequence, &a.QuizID, &a.UserID, &a.Topic, &a.LessonIndex,
			&a.Score, &a.CorrectAnswers, &a.TotalQuestions, &a.TimeSpent, &answers, &results, &a.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan quiz attempt: %w", err)
		}
		if err := json.Unmarshal([]byte(answers), &a.Answers); err != nil {
			return nil, fmt.Errorf("decode answers of attempt %d: %w", a.ID, err)
		}
		a.Results = json.RawMessage(results)
		out = append(out, a)
	}
	return out, rows.Err()
}
