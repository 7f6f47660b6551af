package tutor

import (
	"time"

	"github.com/abhisek/lectern/internal/course"
)

// stateLoadedMsg carries the session state read when the screen opens.
type stateLoadedMsg struct {
	State *course.State
	Err   error
}

// turnDoneMsg is sent when a query has been answered.
type turnDoneMsg struct {
	Turn *course.Turn
	Err  error
}

// doubtDoneMsg is sent when a lesson question has been answered.
type doubtDoneMsg struct {
	Answer string
	Err    error
}

// spinnerTickMsg animates the thinking indicator.
type spinnerTickMsg time.Time
