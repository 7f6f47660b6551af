package course

import (
	"math"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input  string
		kind   CommandKind
		lesson int
		bad    bool
	}{
		{"next", CmdNext, 0, false},
		{"  N  ", CmdNext, 0, false},
		{"Continue", CmdNext, 0, false},
		{"resume", CmdNext, 0, false},
		{"prev", CmdPrev, 0, false},
		{"previous", CmdPrev, 0, false},
		{"BACK", CmdPrev, 0, false},
		{"repeat", CmdRepeat, 0, false},
		{"again", CmdRepeat, 0, false},
		{"goto 3", CmdGoto, 3, false},
		{"GOTO 12 please", CmdGoto, 12, false},
		{"goto -2", CmdGoto, -2, false},
		{"goto abc", CmdGoto, 0, true},
		{"goto 99999999999999999999", CmdGoto, math.MaxInt, false},
		{"goto -99999999999999999999", CmdGoto, math.MinInt, false},
		{"stop", CmdStop, 0, false},
		{"end", CmdStop, 0, false},
		{"quit", CmdStop, 0, false},
		{"exit", CmdStop, 0, false},
		{"goto", CmdNone, 0, false},
		{"next lesson please", CmdNone, 0, false},
		{"what is recursion", CmdNone, 0, false},
	}

	for _, tt := range tests {
		got := ParseCommand(tt.input)
		if got.Kind != tt.kind {
			t.Errorf("ParseCommand(%q).Kind = %v, want %v", tt.input, got.Kind, tt.kind)
			continue
		}
		if got.Lesson != tt.lesson {
			t.Errorf("ParseCommand(%q).Lesson = %d, want %d", tt.input, got.Lesson, tt.lesson)
		}
		if (got.Err != nil) != tt.bad {
			t.Errorf("ParseCommand(%q).Err = %v, want bad=%v", tt.input, got.Err, tt.bad)
		}
	}
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name    string
		current int
		n       int
		cmd     Command
		want    int
	}{
		{"next", 2, 5, Command{Kind: CmdNext}, 3},
		{"next at last lesson", 4, 5, Command{Kind: CmdNext}, 4},
		{"prev", 2, 5, Command{Kind: CmdPrev}, 1},
		{"prev at first lesson", 0, 5, Command{Kind: CmdPrev}, 0},
		{"repeat", 3, 5, Command{Kind: CmdRepeat}, 3},
		{"goto in range", 0, 5, Command{Kind: CmdGoto, Lesson: 4}, 3},
		{"goto past end clamps", 0, 5, Command{Kind: CmdGoto, Lesson: 99}, 4},
		{"goto zero clamps", 3, 5, Command{Kind: CmdGoto, Lesson: 0}, 0},
		{"goto negative clamps", 3, 5, Command{Kind: CmdGoto, Lesson: -7}, 0},
		{"goto max int clamps", 0, 5, Command{Kind: CmdGoto, Lesson: math.MaxInt}, 4},
		{"goto min int clamps", 3, 5, Command{Kind: CmdGoto, Lesson: math.MinInt}, 0},
		{"bad goto keeps index", 2, 5, Command{Kind: CmdGoto, Err: ErrBadLessonNumber}, 2},
		{"stale index is clamped", 9, 5, Command{Kind: CmdRepeat}, 4},
		{"empty syllabus", 3, 0, Command{Kind: CmdNext}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Navigate(tt.current, tt.n, tt.cmd); got != tt.want {
				t.Errorf("Navigate(%d, %d, %+v) = %d, want %d", tt.current, tt.n, tt.cmd, got, tt.want)
			}
		})
	}
}
