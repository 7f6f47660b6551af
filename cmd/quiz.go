package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lectern/internal/course"
	"github.com/abhisek/lectern/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate, take and submit lesson quizzes",
}

var quizGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a quiz and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOpts{needLLM: true})
		if err != nil {
			return err
		}
		defer e.Close()

		req, err := quizRequest(cmd, e)
		if err != nil {
			return err
		}
		q, err := e.quizzes().Generate(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printJSON(q)
	},
}

var quizSubmitCmd = &cobra.Command{
	Use:   "submit <quiz-id> [answers...]",
	Short: "Grade answers for a stored quiz",
	Long: `Grade answers for a stored quiz. Multiple-choice answers are the option
index (0-based) or the option text; coding answers are the expected output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOpts{noLLM: true})
		if err != nil {
			return err
		}
		defer e.Close()

		user, _ := cmd.Flags().GetString("user")
		spent, _ := cmd.Flags().GetInt("time-spent")
		res, err := e.quizzes().Submit(cmd.Context(), quiz.Submission{
			QuizID:    args[0],
			UserID:    user,
			Answers:   args[1:],
			TimeSpent: spent,
		})
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var quizTakeCmd = &cobra.Command{
	Use:   "take",
	Short: "Take a quiz on the current lesson interactively",
	RunE:  runQuizTake,
}

func init() {
	for _, c := range []*cobra.Command{quizGenerateCmd, quizTakeCmd} {
		c.Flags().String("topic", "", "Course topic (default: the session's topic)")
		c.Flags().String("title", "", "Lesson title (default: the session's current lesson)")
		c.Flags().Int("index", -1, "Lesson index, 0-based (default: the session's current lesson)")
		c.Flags().String("content-file", "", "File with the lesson text to quiz on")
	}
	for _, c := range []*cobra.Command{quizGenerateCmd, quizSubmitCmd, quizTakeCmd} {
		c.Flags().String("user", "", "Learner id (default from tutor.default_user)")
	}
	quizSubmitCmd.Flags().Int("time-spent", 0, "Seconds spent on the quiz")

	quizCmd.AddCommand(quizGenerateCmd)
	quizCmd.AddCommand(quizSubmitCmd)
	quizCmd.AddCommand(quizTakeCmd)
}

// quizRequest fills a quiz.Request from flags, defaulting to the current
// lesson of the session.
func quizRequest(cmd *cobra.Command, e *env) (quiz.Request, error) {
	topic, _ := cmd.Flags().GetString("topic")
	title, _ := cmd.Flags().GetString("title")
	index, _ := cmd.Flags().GetInt("index")
	contentFile, _ := cmd.Flags().GetString("content-file")
	user, _ := cmd.Flags().GetString("user")
	if user == "" {
		user = e.cfg.Tutor.DefaultUser
	}

	req := quiz.Request{UserID: user, Topic: topic, LessonTitle: title, LessonIndex: index}
	if contentFile != "" {
		b, err := os.ReadFile(contentFile)
		if err != nil {
			return quiz.Request{}, fmt.Errorf("read lesson content: %w", err)
		}
		req.LessonContent = string(b)
	}

	if req.Topic == "" || req.LessonTitle == "" || req.LessonIndex < 0 {
		if err := fillFromSession(cmd.Context(), e, sessionID(cmd), &req); err != nil {
			return quiz.Request{}, err
		}
	}
	return req, nil
}

func fillFromSession(ctx context.Context, e *env, id string, req *quiz.Request) error {
	tutor, err := e.tutor(ctx)
	if err != nil {
		return err
	}
	st, err := tutor.State(ctx, id)
	if err != nil {
		return err
	}
	if len(st.Syllabus) == 0 {
		return fmt.Errorf("session %q has no course; pass --topic and --title", id)
	}

	if req.LessonIndex < 0 {
		req.LessonIndex = st.CurrentLesson
	}
	if req.LessonIndex >= len(st.Syllabus) {
		return fmt.Errorf("lesson %d is outside the %d-lesson syllabus", req.LessonIndex+1, len(st.Syllabus))
	}
	if req.Topic == "" {
		req.Topic = st.Topic
	}
	if req.LessonTitle == "" {
		req.LessonTitle = st.Syllabus[req.LessonIndex].Title
	}
	if req.LessonContent == "" && req.LessonIndex == st.CurrentLesson && st.Mode == course.ModeCourse {
		req.LessonContent = st.Response
	}
	return nil
}

func runQuizTake(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd, envOpts{needLLM: true})
	if err != nil {
		return err
	}
	defer e.Close()

	req, err := quizRequest(cmd, e)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc := e.quizzes()
	fmt.Printf("Quiz: %s (%s)\n", req.LessonTitle, req.Topic)
	fmt.Println("Generating questions...")
	fmt.Println()

	q, err := svc.Generate(ctx, req)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	started := time.Now()
	answers := make([]string, 0, len(q.Questions))

	for i, question := range q.Questions {
		fmt.Printf("── Question %d/%d ──\n", i+1, len(q.Questions))
		fmt.Println(question.Question)
		for j, opt := range question.Options {
			fmt.Printf("  %d) %s\n", j+1, opt)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answers = append(answers, toAnswer(question, strings.TrimSpace(scanner.Text())))
		fmt.Println()
	}

	res, err := svc.Submit(ctx, quiz.Submission{
		QuizID:    q.ID,
		UserID:    req.UserID,
		Answers:   answers,
		TimeSpent: int(time.Since(started).Seconds()),
	})
	if err != nil {
		return err
	}

	for _, r := range res.Results {
		if r.Correct {
			fmt.Printf("\033[32m✓\033[0m %d. %s\n", r.Index+1, r.Question)
		} else {
			fmt.Printf("\033[31m✗\033[0m %d. %s (answer: %s)\n", r.Index+1, r.Question, r.CorrectAnswer)
		}
		if r.Explanation != "" {
			fmt.Printf("   %s\n", r.Explanation)
		}
	}
	fmt.Printf("\n── Score: %.0f%% (%d/%d) · %s ──\n", res.Score, res.CorrectAnswers, res.TotalQuestions, res.Recommendation)
	return nil
}

// toAnswer converts a 1-based option number typed at the prompt into the
// 0-based index the grader expects.
func toAnswer(q quiz.Question, input string) string {
	if q.Type != quiz.MCQ {
		return input
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(q.Options) {
		return strconv.Itoa(n - 1)
	}
	return input
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
