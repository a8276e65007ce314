package cli

import (
	"context"
	"fmt"
	"time"

	"strata-cli/internal/store"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent changes across all projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dataDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			events, err := store.ActivityLog{Dir: dir}.Recent(ctx, limit)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("Failed to read activity log: %v", err))
			}

			if jsonOut {
				return writeJSON(cmd, app, events)
			}

			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No activity recorded.")
				return nil
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-19s %-9s %5s %-14s %s\n", "When", "Action", "Task", "Project", "Title")
			for _, ev := range events {
				task := "-"
				if ev.TaskID != 0 {
					task = fmt.Sprintf("#%d", ev.TaskID)
				}
				fmt.Fprintf(w, "%-19s %-9s %5s %-14s %s\n",
					ev.At.Local().Format("2006-01-02 15:04:05"),
					ev.Action,
					task,
					store.Truncate(ev.Project, 14),
					ev.Title)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events to show")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")

	return cmd
}
