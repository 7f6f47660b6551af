package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOpts{noLLM: true})
		if err != nil {
			return err
		}
		defer e.Close()

		user, _ := cmd.Flags().GetString("user")
		if user == "" {
			user = e.cfg.Tutor.DefaultUser
		}
		topic, _ := cmd.Flags().GetString("topic")
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := e.tracker().Dashboard(cmd.Context(), user, topic)
		if err != nil {
			return fmt.Errorf("load dashboard: %w", err)
		}
		if asJSON {
			return printJSON(d)
		}

		if d.TotalQuizzes == 0 {
			fmt.Println("No quiz attempts recorded yet.")
			return nil
		}

		fmt.Printf("Learner:     %s\n", d.UserID)
		fmt.Printf("Quizzes:     %d\n", d.TotalQuizzes)
		fmt.Printf("Average:     %.2f%%\n", d.AverageScore)
		fmt.Printf("Completion:  %d%%\n", d.CompletionPercentage)
		if len(d.WeakAreas) > 0 {
			fmt.Printf("Weak areas:  %s\n", strings.Join(d.WeakAreas, ", "))
		}
		if len(d.StrongAreas) > 0 {
			fmt.Printf("Strong:      %s\n", strings.Join(d.StrongAreas, ", "))
		}

		fmt.Println()
		fmt.Printf("%-24s  %-19s  %6s  %s\n", "Topic", "Submitted", "Score", "Correct")
		fmt.Println(strings.Repeat("─", 64))
		for _, a := range d.RecentAttempts {
			fmt.Printf("%-24s  %-19s  %5.0f%%  %d/%d\n",
				truncate(a.Topic, 24),
				a.SubmittedAt.Local().Format("2006-01-02 15:04:05"),
				a.Score, a.CorrectAnswers, a.TotalQuestions)
		}

		if len(d.Recommendations) > 0 {
			fmt.Println()
			for _, r := range d.Recommendations {
				fmt.Printf("• %s\n", r)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("user", "", "Learner id (default from tutor.default_user)")
	statsCmd.Flags().String("topic", "", "Limit to one topic")
	statsCmd.Flags().Bool("json", false, "Print the dashboard as JSON")
}
