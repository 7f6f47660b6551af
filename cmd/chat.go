package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lectern/internal/app"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the tutor in a terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

// runChat opens the store, builds dependencies, and launches the TUI.
func runChat(cmd *cobra.Command) error {
	e, err := openEnv(cmd, envOpts{logFile: true, needLLM: true})
	if err != nil {
		return err
	}
	defer e.Close()

	tutor, err := e.tutor(cmd.Context())
	if err != nil {
		return err
	}
	return app.Run(app.Options{
		Tutor:      tutor,
		Dashboards: e.tracker(),
		SessionID:  sessionID(cmd),
		UserID:     e.cfg.Tutor.DefaultUser,
	})
}
