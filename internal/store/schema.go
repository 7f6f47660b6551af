package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// sessionsColumns holds the columns for the "sessions" table.
	sessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "session_id", Type: field.TypeString, Unique: true},
		{Name: "state", Type: field.TypeJSON},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// sessionsTable holds the schema information for the "sessions" table.
	sessionsTable = &schema.Table{
		Name:       "sessions",
		Columns:    sessionsColumns,
		PrimaryKey: []*schema.Column{sessionsColumns[0]},
	}

	// quizzesColumns holds the columns for the "quizzes" table.
	quizzesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "quiz_id", Type: field.TypeString, Unique: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString},
		{Name: "lesson_title", Type: field.TypeString, Default: ""},
		{Name: "lesson_index", Type: field.TypeInt, Default: 0},
		{Name: "questions", Type: field.TypeJSON},
		{Name: "created_at", Type: field.TypeTime},
	}
	// quizzesTable holds the schema information for the "quizzes" table.
	quizzesTable = &schema.Table{
		Name:       "quizzes",
		Columns:    quizzesColumns,
		PrimaryKey: []*schema.Column{quizzesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "quiz_user_id",
				Unique:  false,
				Columns: []*schema.Column{quizzesColumns[2]},
			},
		},
	}

	// quizAttemptsColumns holds the columns for the "quiz_attempts" table.
	quizAttemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "quiz_id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString},
		{Name: "lesson_index", Type: field.TypeInt, Default: 0},
		{Name: "score", Type: field.TypeFloat64},
		{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		{Name: "total_questions", Type: field.TypeInt, Default: 0},
		{Name: "time_spent", Type: field.TypeInt, Default: 0},
		{Name: "answers", Type: field.TypeJSON},
		{Name: "results", Type: field.TypeJSON},
		{Name: "submitted_at", Type: field.TypeTime},
	}
	// quizAttemptsTable holds the schema information for the "quiz_attempts" table.
	quizAttemptsTable = &schema.Table{
		Name:       "quiz_attempts",
		Columns:    quizAttemptsColumns,
		PrimaryKey: []*schema.Column{quizAttemptsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "quizattempt_user_id_topic",
				Unique:  false,
				Columns: []*schema.Column{quizAttemptsColumns[3], quizAttemptsColumns[4]},
			},
			{
				Name:    "quizattempt_submitted_at",
				Unique:  false,
				Columns: []*schema.Column{quizAttemptsColumns[12]},
			},
		},
	}

	// llmRequestEventsColumns holds the columns for the "llm_request_events" table.
	llmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString, Default: ""},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// llmRequestEventsTable holds the schema information for the "llm_request_events" table.
	llmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_purpose",
				Unique:  false,
				Columns: []*schema.Column{llmRequestEventsColumns[5]},
			},
			{
				Name:    "llmrequestevent_session_id",
				Unique:  false,
				Columns: []*schema.Column{llmRequestEventsColumns[6]},
			},
			{
				Name:    "llmrequestevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{llmRequestEventsColumns[2]},
			},
		},
	}

	// tables holds all the tables in the schema.
	tables = []*schema.Table{
		sessionsTable,
		quizzesTable,
		quizAttemptsTable,
		llmRequestEventsTable,
	}
)
