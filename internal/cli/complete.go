package cli

import (
	"fmt"
	"sort"
	"time"

	"strata-cli/internal/model"
	"strata-cli/internal/store"

	"github.com/spf13/cobra"
)

func newCompleteCmd(app *App) *cobra.Command {
	var (
		recurse   bool
		tag       string
		project   string
		statusStr string
	)

	cmd := &cobra.Command{
		Use:   "complete [id-or-title]",
		Short: "Mark a task done",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOneSelector(args, tag, project, statusStr); err != nil {
				return writeErr(cmd, err)
			}
			s, db, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var toMark []uint64
			if len(args) == 1 {
				id, err := db.ResolveIdentifier(args[0])
				if err != nil {
					return writeErr(cmd, fmt.Errorf("Error resolving task: %v", err))
				}
				toMark = []uint64{id}
				if recurse {
					toMark = append(toMark, db.Descendants(id)...)
				}
			} else {
				matched := matchBulk(db, tag, project, statusStr)
				if len(matched) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No tasks found matching the criteria.")
					return nil
				}
				printBulkSelection(cmd, db, matched, "Will complete %d task(s):")
				toMark = matched
			}

			now := time.Now().Unix()
			for _, id := range toMark {
				if t := db.Find(id); t != nil {
					t.Status = model.StatusDone
					t.UpdatedAtUTC = now
				}
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, fmt.Errorf("Failed to save DB: %v", err))
			}
			for _, id := range toMark {
				if t := db.Find(id); t != nil {
					logActivity(s, id, store.ActionCompleted, t.Title)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Marked done.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&recurse, "recurse", false, "Also mark all descendants done")
	cmd.Flags().StringVar(&tag, "tag", "", "Complete all tasks with this tag")
	cmd.Flags().StringVar(&project, "project", "", "Complete all tasks in this project")
	cmd.Flags().StringVar(&statusStr, "status", "", "Complete all tasks with this status")

	return cmd
}

func newReopenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <id-or-title>",
		Short: "Reopen a task (status open)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, db, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := db.ResolveIdentifier(args[0])
			if err != nil {
				return writeErr(cmd, fmt.Errorf("Error resolving task: %v", err))
			}
			t := db.Find(id)
			if t == nil {
				return writeErr(cmd, errTaskNotFound(id))
			}
			t.Status = model.StatusOpen
			t.UpdatedAtUTC = time.Now().Unix()
			if err := s.Save(db); err != nil {
				return writeErr(cmd, fmt.Errorf("Failed to save DB: %v", err))
			}
			logActivity(s, id, store.ActionReopened, t.Title)
			fmt.Fprintf(cmd.OutOrStdout(), "Reopened %d\n", id)
			return nil
		},
	}
}

// validateOneSelector enforces the bulk-command contract: exactly one of a
// positional id, --tag, --project, or --status.
func validateOneSelector(args []string, tag, project, status string) error {
	selectors := len(args)
	for _, s := range []string{tag, project, status} {
		if s != "" {
			selectors++
		}
	}
	if selectors != 1 {
		return errExactlyOneSelector
	}
	return nil
}

// matchBulk returns the ids matching a bulk selector, ascending. An
// unparseable --status value simply matches nothing, like any other status
// no task has.
func matchBulk(db *store.DB, tag, project, statusStr string) []uint64 {
	var statusFilter *model.Status
	if statusStr != "" {
		st, err := model.ParseStatus(statusStr)
		if err != nil {
			return nil
		}
		statusFilter = &st
	}

	set := map[uint64]bool{}
	for i := range db.Tasks {
		t := &db.Tasks[i]
		match := false
		switch {
		case tag != "":
			for _, tg := range t.Tags {
				if tg == tag {
					match = true
					break
				}
			}
		case project != "":
			match = model.StrOr(t.Project, "") == project
		case statusFilter != nil:
			match = t.Status == *statusFilter
		}
		if match {
			set[t.ID] = true
		}
	}
	return sortedIDs(set)
}

func printBulkSelection(cmd *cobra.Command, db *store.DB, ids []uint64, heading string) {
	fmt.Fprintf(cmd.OutOrStdout(), heading+"\n", len(ids))
	for _, id := range ids {
		if t := db.Find(id); t != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d - %s\n", id, t.Title)
		}
	}
}

func sortedIDs(set map[uint64]bool) []uint64 {
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
