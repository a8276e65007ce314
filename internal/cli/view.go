package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"strata-cli/internal/model"
	"strata-cli/internal/store"

	"github.com/spf13/cobra"
)

func newViewCmd(app *App) *cobra.Command {
	var (
		children bool
		parents  bool
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "view <id-or-title>",
		Short: "View a single task by ID or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openStore(app)
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

			if jsonOut {
				out := map[string]any{"task": t}
				if parents {
					out["ancestors"] = db.Ancestors(id)
				}
				if children {
					out["children"] = db.Descendants(id)
				}
				return writeJSON(cmd, app, out)
			}

			w := cmd.OutOrStdout()
			printTaskDetail(w, t)

			if parents {
				chain := db.Ancestors(id)
				if len(chain) == 0 {
					fmt.Fprintln(w, "Ancestors: -")
				} else {
					parts := make([]string, len(chain))
					for i, p := range chain {
						parts[i] = fmt.Sprintf("%d", p)
					}
					fmt.Fprintf(w, "Ancestors (closest first): %s\n", strings.Join(parts, " -> "))
				}
			}

			if children {
				fmt.Fprintln(w, "Children:")
				childMap := db.ChildrenMap()
				if len(childMap[id]) == 0 {
					fmt.Fprintln(w, "  -")
				} else {
					printSubtree(w, db, childMap, id, 1)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&children, "children", false, "Show child subtree")
	cmd.Flags().BoolVar(&parents, "parents", false, "Show ancestor chain")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the task as JSON")

	return cmd
}

func printTaskDetail(w io.Writer, t *model.Task) {
	today := model.Today()
	due := "-"
	if t.Due != nil {
		due = fmt.Sprintf("%s (%s)", t.Due, model.RelativeDue(t.Due, today))
	}
	parent := "-"
	if t.Parent != nil {
		parent = fmt.Sprintf("%d", *t.Parent)
	}
	tags := "-"
	if len(t.Tags) > 0 {
		tags = strings.Join(t.Tags, ",")
	}
	fmt.Fprintf(w, "ID:           %d\n", t.ID)
	fmt.Fprintf(w, "Title:        %s\n", t.Title)
	fmt.Fprintf(w, "Kind:         %s\n", t.Kind.Display())
	fmt.Fprintf(w, "Status:       %s\n", t.Status.Display())
	fmt.Fprintf(w, "Priority:     %s\n", model.DisplayPriority(t.Priority))
	fmt.Fprintf(w, "Project:      %s\n", model.StrOr(t.Project, "-"))
	fmt.Fprintf(w, "Due:          %s\n", due)
	fmt.Fprintf(w, "Parent:       %s\n", parent)
	fmt.Fprintf(w, "Tags:         %s\n", tags)
	fmt.Fprintf(w, "Created UTC:  %s\n", time.Unix(t.CreatedAtUTC, 0).UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "Updated UTC:  %s\n", time.Unix(t.UpdatedAtUTC, 0).UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "Description:\n%s\n\n", model.StrOr(t.Description, "-"))
}

// printSubtree prints the children of id depth-first, one indented bullet
// per task.
func printSubtree(w io.Writer, db *store.DB, childMap map[uint64][]uint64, id uint64, depth int) {
	for _, c := range childMap[id] {
		t := db.Find(c)
		if t == nil {
			continue
		}
		fmt.Fprintf(w, "%s- %s [%s] (#%d)\n", strings.Repeat("  ", depth), t.Title, t.Status.Display(), t.ID)
		printSubtree(w, db, childMap, c, depth+1)
	}
}
