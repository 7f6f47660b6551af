package course

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// CommandKind identifies an in-course navigation command.
type CommandKind int

const (
	// CmdNone means the input is not a navigation command.
	CmdNone CommandKind = iota
	CmdNext
	CmdPrev
	CmdRepeat
	CmdGoto
	CmdStop
)

// Command is a parsed navigation command. Lesson is the 1-based target of
// CmdGoto; Err is set when the goto argument is not a number.
type Command struct {
	Kind   CommandKind
	Lesson int
	Err    error
}

// ErrBadLessonNumber is reported for a goto without a usable number.
var ErrBadLessonNumber = errors.New("could not parse the lesson number")

// ParseCommand recognizes navigation commands in trimmed, lowercased input.
func ParseCommand(input string) Command {
	cmd := strings.ToLower(strings.TrimSpace(input))
	switch cmd {
	case "next", "n", "continue", "resume":
		return Command{Kind: CmdNext}
	case "prev", "previous", "back":
		return Command{Kind: CmdPrev}
	case "repeat", "again":
		return Command{Kind: CmdRepeat}
	case "stop", "end", "quit", "exit":
		return Command{Kind: CmdStop}
	}

	if strings.HasPrefix(cmd, "goto ") {
		fields := strings.Fields(cmd)
		if len(fields) < 2 {
			return Command{Kind: CmdGoto, Err: ErrBadLessonNumber}
		}
		n, err := strconv.Atoi(fields[1])
		switch {
		case errors.Is(err, strconv.ErrRange):
			// Overflowing numbers still navigate; Navigate clamps them.
			n = math.MaxInt
			if strings.HasPrefix(fields[1], "-") {
				n = math.MinInt
			}
		case err != nil:
			return Command{Kind: CmdGoto, Err: ErrBadLessonNumber}
		}
		return Command{Kind: CmdGoto, Lesson: n}
	}
	return Command{Kind: CmdNone}
}

// Navigate returns the lesson index a command moves to from current in a
// syllabus of length n. Moves are clamped to [0, n-1]; CmdStop and CmdNone
// leave the index unchanged.
func Navigate(current, n int, cmd Command) int {
	if n <= 0 {
		return 0
	}
	switch cmd.Kind {
	case CmdNext:
		current++
	case CmdPrev:
		current--
	case CmdGoto:
		if cmd.Err == nil {
			current = max(cmd.Lesson, 0) - 1
		}
	}
	return max(0, min(current, n-1))
}
