package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"strata-cli/internal/model"
	"strata-cli/internal/store"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var (
		all       bool
		statusStr string
		kindStr   string
		project   string
		tags      []string
		dueStr    string
		tree      bool
		sortKey   string
		limit     int
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with optional filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var status *model.Status
			if statusStr != "" {
				s, err := model.ParseStatus(statusStr)
				if err != nil {
					return writeErr(cmd, err)
				}
				status = &s
			}
			var kind *model.Kind
			if kindStr != "" {
				k, err := model.ParseKind(kindStr)
				if err != nil {
					return writeErr(cmd, err)
				}
				kind = &k
			}
			var dueFilter store.DueFilter
			if dueStr != "" {
				df, err := parseDueFilter(dueStr)
				if err != nil {
					return writeErr(cmd, err)
				}
				dueFilter = df
			}
			if sortKey != "due" && sortKey != "priority" && sortKey != "id" {
				return writeErr(cmd, fmt.Errorf("invalid sort key %q (due|priority|id)", sortKey))
			}

			_, db, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			wantTags := model.SplitTags(tags)
			today := model.Today()

			var filtered []*model.Task
			for i := range db.Tasks {
				t := &db.Tasks[i]
				if !all && t.Status == model.StatusDone {
					continue
				}
				if status != nil && t.Status != *status {
					continue
				}
				if kind != nil && t.Kind != *kind {
					continue
				}
				if project != "" && model.StrOr(t.Project, "") != project {
					continue
				}
				if !hasAllTags(t.Tags, wantTags) {
					continue
				}
				if dueFilter != "" && !store.MatchDue(dueFilter, t.Due, today) {
					continue
				}
				filtered = append(filtered, t)
			}

			sortTasks(filtered, sortKey)
			if limit > 0 && len(filtered) > limit {
				filtered = filtered[:limit]
			}

			if jsonOut {
				return writeJSON(cmd, app, filtered)
			}

			var depths map[uint64]int
			if tree {
				depths = make(map[uint64]int, len(filtered))
				for _, t := range filtered {
					depths[t.ID] = len(db.Ancestors(t.ID))
				}
			}
			printTable(cmd.OutOrStdout(), filtered, depths, today)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include completed tasks")
	cmd.Flags().StringVar(&statusStr, "status", "", "Filter by status")
	cmd.Flags().StringVar(&kindStr, "kind", "", "Filter by kind")
	cmd.Flags().StringVar(&project, "project", "", "Filter by project")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Filter by tag (may be repeated, accepts comma-separated)")
	cmd.Flags().StringVar(&dueStr, "due", "", "Due filter: today | this-week | overdue | none")
	cmd.Flags().BoolVar(&tree, "tree", false, "Render as a tree across parent-child relationships")
	cmd.Flags().StringVar(&sortKey, "sort", "due", "Sort key: due | priority | id")
	cmd.Flags().IntVar(&limit, "limit", 0, "Limit number of rows printed")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print tasks as JSON")

	return cmd
}

func parseDueFilter(s string) (store.DueFilter, error) {
	switch s {
	case "today":
		return store.DueToday, nil
	case "this-week":
		return store.DueThisWeek, nil
	case "overdue":
		return store.DueOverdue, nil
	case "none":
		return store.DueNone, nil
	}
	return "", fmt.Errorf("invalid due filter %q (today|this-week|overdue|none)", s)
}

func hasAllTags(have, want []string) bool {
	for _, w := range want {
		if !hasTag(have, w) {
			return false
		}
	}
	return true
}

func sortTasks(tasks []*model.Task, key string) {
	switch key {
	case "priority":
		sort.SliceStable(tasks, func(i, j int) bool {
			pi, pj := model.PriorityRank(tasks[i].Priority), model.PriorityRank(tasks[j].Priority)
			if pi != pj {
				return pi < pj
			}
			ui, uj := model.UrgencyRank(tasks[i].Urgency), model.UrgencyRank(tasks[j].Urgency)
			if ui != uj {
				return ui < uj
			}
			return tasks[i].ID < tasks[j].ID
		})
	case "id":
		sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	default: // due
		sort.SliceStable(tasks, func(i, j int) bool {
			di, dj := tasks[i].Due, tasks[j].Due
			switch {
			case di == nil && dj == nil:
				return tasks[i].ID < tasks[j].ID
			case di == nil:
				return false
			case dj == nil:
				return true
			case di.Equal(*dj):
				return tasks[i].ID < tasks[j].ID
			default:
				return di.Before(*dj)
			}
		})
	}
}

func printTable(w io.Writer, tasks []*model.Task, depths map[uint64]int, today model.Date) {
	fmt.Fprintf(w, "%-5s %-10s %-11s %-12s %-12s %-14s %s\n",
		"ID", "Kind", "Status", "Pri", "Due", "Project", "Title [tags]")
	for _, t := range tasks {
		indent := strings.Repeat("  ", depths[t.ID])
		tags := ""
		if len(t.Tags) > 0 {
			tags = fmt.Sprintf(" [%s]", strings.Join(t.Tags, ","))
		}
		fmt.Fprintf(w, "%-5d %-10s %-11s %-12s %-12s %-14s %s%s%s\n",
			t.ID,
			t.Kind.Display(),
			t.Status.Display(),
			model.DisplayPriority(t.Priority),
			model.RelativeDue(t.Due, today),
			store.Truncate(model.StrOr(t.Project, "-"), 14),
			indent,
			t.Title,
			tags)
	}
}
