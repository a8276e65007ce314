package cli

import (
	"fmt"
	"sort"

	"strata-cli/internal/model"
	"strata-cli/internal/store"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List distinct projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			counts := map[string]int{}
			for i := range db.Tasks {
				counts[model.StrOr(db.Tasks[i].Project, "-")]++
			}
			if jsonOut {
				return writeJSON(cmd, app, counts)
			}
			printCounts(cmd, "Project", counts)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print counts as JSON")
	return cmd
}

func newTagsCmd(app *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List distinct tags and counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			counts := map[string]int{}
			for i := range db.Tasks {
				for _, tag := range db.Tasks[i].Tags {
					counts[tag]++
				}
			}
			if jsonOut {
				return writeJSON(cmd, app, counts)
			}
			printCounts(cmd, "Tag", counts)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print counts as JSON")
	return cmd
}

func printCounts(cmd *cobra.Command, label string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", label, "Count")
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %d\n", store.Truncate(k, 16), counts[k])
	}
}
