package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lectern/internal/course"
)

var askCmd = &cobra.Command{
	Use:   "ask [query...]",
	Short: "Send one query to the tutor, or start a line-based session",
	Long: `Send a query such as "teach me recursion", "next" or "goto 3" and print the reply.

Without arguments, ask reads queries from stdin one line at a time. Lines
starting with "?" are answered as questions about the current lesson.`,
	RunE: runAsk,
}

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Stream the current lesson of the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOpts{needLLM: true})
		if err != nil {
			return err
		}
		defer e.Close()

		tutor, err := e.tutor(cmd.Context())
		if err != nil {
			return err
		}
		ls, err := tutor.StreamLesson(cmd.Context(), sessionID(cmd))
		if err != nil {
			return err
		}

		fmt.Printf("── Lesson %d: %s ──\n", ls.Index+1, ls.Title)
		if ls.Header != "" {
			fmt.Print(ls.Header)
		}
		for piece := range ls.Body {
			fmt.Print(piece)
		}
		fmt.Println()
		return nil
	},
}

func runAsk(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd, envOpts{needLLM: true})
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	tutor, err := e.tutor(ctx)
	if err != nil {
		return err
	}
	id := sessionID(cmd)

	if len(args) > 0 {
		return askOnce(ctx, tutor, id, strings.Join(args, " "))
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "quit" || line == "exit":
			return nil
		case strings.HasPrefix(line, "?"):
			answer, err := tutor.AnswerDoubt(ctx, course.Doubt{SessionID: id, Question: strings.TrimSpace(line[1:])})
			if err != nil {
				return err
			}
			fmt.Println(answer)
		default:
			if err := askOnce(ctx, tutor, id, line); err != nil {
				return err
			}
		}
	}
}

func askOnce(ctx context.Context, tutor *course.Service, id, query string) error {
	turn, err := tutor.SubmitQuery(ctx, id, query)
	if err != nil {
		return err
	}
	fmt.Println(turn.Response)
	return nil
}
