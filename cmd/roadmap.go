package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lectern/internal/roadmap"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap <skill...>",
	Short: "Generate a beginner-to-advanced learning roadmap",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		e, err := openEnv(cmd, envOpts{needLLM: true})
		if err != nil {
			return err
		}
		defer e.Close()

		r, err := e.roadmaps().Generate(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		return roadmap.Encode(os.Stdout, r, format)
	},
}

func init() {
	roadmapCmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
}
