package cli

import (
	"fmt"

	"strata-cli/internal/docs"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in guides",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				if jsonOut {
					return writeJSON(cmd, app, topics)
				}
				for _, t := range topics {
					fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", t.Name, t.Title)
				}
				return nil
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("Unknown topic '%s'. Run 'strata docs' to list topics.", topic))
			}
			if jsonOut {
				return writeJSON(cmd, app, map[string]string{"topic": topic, "markdown": body})
			}
			fmt.Fprint(cmd.OutOrStdout(), body)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of text")

	return cmd
}
