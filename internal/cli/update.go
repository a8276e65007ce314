package cli

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"strata-cli/internal/model"
	"strata-cli/internal/store"

	"github.com/spf13/cobra"
)

func newUpdateCmd(app *App) *cobra.Command {
	var (
		title       string
		desc        string
		project     string
		due         string
		parent      string
		kindStr     string
		statusStr   string
		addTags     []string
		rmTags      []string
		clearDue    bool
		clearParent bool
	)

	cmd := &cobra.Command{
		Use:   "update <id-or-title>",
		Short: "Update fields on a task",
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

			var parentID *uint64
			if parent != "" {
				pid, err := db.ResolveIdentifier(parent)
				if err != nil {
					return writeErr(cmd, fmt.Errorf("Error resolving parent: %v", err))
				}
				if pid == id {
					return writeErr(cmd, errors.New("Parent cannot equal child."))
				}
				if db.WouldCycle(id, pid) {
					return writeErr(cmd, errors.New("Setting parent would create a cycle."))
				}
				parentID = &pid
			}

			t := db.Find(id)
			if t == nil {
				return writeErr(cmd, errTaskNotFound(id))
			}

			if cmd.Flags().Changed("title") {
				t.Title = title
			}
			if cmd.Flags().Changed("desc") {
				t.Description = model.StrPtr(desc)
			}
			if cmd.Flags().Changed("project") {
				t.Project = model.StrPtr(project)
			}
			if clearDue {
				t.Due = nil
			}
			if due != "" {
				d, ok := store.ParseDueInput(due, model.Today())
				if !ok {
					return writeErr(cmd, errors.New("Unrecognised due date. Use YYYY-MM-DD, 'today', 'tomorrow', or 'in Nd'."))
				}
				t.Due = &d
			}
			if clearParent {
				t.Parent = nil
			}
			if parentID != nil {
				t.Parent = parentID
			}
			if kindStr != "" {
				k, err := model.ParseKind(kindStr)
				if err != nil {
					return writeErr(cmd, err)
				}
				t.Kind = k
			}
			if statusStr != "" {
				st, err := model.ParseStatus(statusStr)
				if err != nil {
					return writeErr(cmd, err)
				}
				t.Status = st
			}

			// Hierarchy rules apply to the combined result of any kind and
			// parent changes.
			if t.Parent != nil {
				if pt := db.Find(*t.Parent); pt != nil && !model.ValidChild(pt.Kind, t.Kind) {
					return writeErr(cmd, model.HierarchyError(pt.Kind, t.Kind))
				}
			}

			add := model.SplitTags(addTags)
			rm := model.SplitTags(rmTags)
			if len(add) > 0 || len(rm) > 0 {
				set := make(map[string]bool, len(t.Tags)+len(add))
				for _, tag := range t.Tags {
					set[tag] = true
				}
				for _, tag := range add {
					set[tag] = true
				}
				for _, tag := range rm {
					delete(set, tag)
				}
				merged := make([]string, 0, len(set))
				for tag := range set {
					merged = append(merged, tag)
				}
				sort.Strings(merged)
				t.Tags = merged
			}

			t.UpdatedAtUTC = time.Now().Unix()
			if err := s.Save(db); err != nil {
				return writeErr(cmd, fmt.Errorf("Failed to save DB: %v", err))
			}
			logActivity(s, id, store.ActionUpdated, t.Title)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&desc, "desc", "", "New description (empty clears)")
	cmd.Flags().StringVar(&project, "project", "", "New project (empty clears)")
	cmd.Flags().StringVar(&due, "due", "", "New due date")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent task ID or name")
	cmd.Flags().StringVar(&kindStr, "kind", "", "New kind")
	cmd.Flags().StringVar(&statusStr, "status", "", "New status")
	cmd.Flags().StringArrayVar(&addTags, "add-tag", nil, "Add tags (may be repeated, accepts comma-separated)")
	cmd.Flags().StringArrayVar(&rmTags, "rm-tag", nil, "Remove tags (may be repeated, accepts comma-separated)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Clear due date")
	cmd.Flags().BoolVar(&clearParent, "clear-parent", false, "Clear parent")

	return cmd
}
