package cli

import (
	"fmt"

	"strata-cli/internal/store"

	"github.com/spf13/cobra"
)

func newDeleteCmd(app *App) *cobra.Command {
	var (
		cascade   bool
		tag       string
		project   string
		statusStr string
	)

	cmd := &cobra.Command{
		Use:   "delete [id-or-title]",
		Short: "Delete a task by ID or name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOneSelector(args, tag, project, statusStr); err != nil {
				return writeErr(cmd, err)
			}
			s, db, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			toDelete := map[uint64]bool{}
			if len(args) == 1 {
				id, err := db.ResolveIdentifier(args[0])
				if err != nil {
					return writeErr(cmd, fmt.Errorf("Error resolving task: %v", err))
				}
				descendants := db.Descendants(id)
				if len(descendants) > 0 && !cascade {
					return writeErr(cmd, fmt.Errorf("Task %d has %d descendant(s). Use --cascade to delete all.", id, len(descendants)))
				}
				toDelete[id] = true
				for _, d := range descendants {
					toDelete[d] = true
				}
			} else {
				matched := matchBulk(db, tag, project, statusStr)
				if len(matched) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No tasks found matching the criteria.")
					return nil
				}
				printBulkSelection(cmd, db, matched, "Will delete %d task(s):")
				for _, id := range matched {
					toDelete[id] = true
				}
			}

			// Titles are needed for the activity log after removal.
			titles := map[uint64]string{}
			for id := range toDelete {
				if t := db.Find(id); t != nil {
					titles[id] = t.Title
				}
			}

			db.RemoveIDs(toDelete)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, fmt.Errorf("Failed to save DB: %v", err))
			}
			for _, id := range sortedIDs(toDelete) {
				logActivity(s, id, store.ActionDeleted, titles[id])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&cascade, "cascade", false, "Cascade into all descendants")
	cmd.Flags().StringVar(&tag, "tag", "", "Delete all tasks with this tag")
	cmd.Flags().StringVar(&project, "project", "", "Delete all tasks in this project")
	cmd.Flags().StringVar(&statusStr, "status", "", "Delete all tasks with this status")

	return cmd
}
