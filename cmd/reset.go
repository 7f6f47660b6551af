package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the current course of a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOpts{noLLM: true})
		if err != nil {
			return err
		}
		defer e.Close()

		tutor, err := e.tutor(cmd.Context())
		if err != nil {
			return err
		}
		id := sessionID(cmd)
		if err := tutor.Reset(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Session %q reset.\n", id)
		return nil
	},
}
