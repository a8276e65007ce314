package cli

import (
	"fmt"
	"os"

	"strata-cli/internal/model"
	"strata-cli/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		output      string
		all         bool
		allProjects bool
		project     string
		tag         string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks to CSV format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if allProjects {
				return runExportAll(cmd, app, output, all, project, tag)
			}

			_, db, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var tasks []*model.Task
			for i := range db.Tasks {
				t := &db.Tasks[i]
				if !all && t.Status == model.StatusDone {
					continue
				}
				if project != "" && model.StrOr(t.Project, "") != project {
					continue
				}
				if tag != "" && !hasTag(t.Tags, tag) {
					continue
				}
				tasks = append(tasks, t)
			}

			path := output
			if path == "" {
				path = "tasks.csv"
			}
			if err := writeCSVFile(path, func(f *os.File) error {
				return store.WriteTasksCSV(f, tasks)
			}); err != nil {
				return writeErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d task(s) to %s\n", len(tasks), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: tasks.csv)")
	cmd.Flags().BoolVar(&all, "all", false, "Include completed tasks")
	cmd.Flags().BoolVar(&allProjects, "all-projects", false, "Export all projects instead of just current project")
	cmd.Flags().StringVar(&project, "project", "", "Filter by project")
	cmd.Flags().StringVar(&tag, "tag", "", "Filter by tag")

	return cmd
}

func runExportAll(cmd *cobra.Command, app *App, output string, includeCompleted bool, projectFilter, tagFilter string) error {
	dir, err := dataDir(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	projects, err := store.DiscoverProjects(dir)
	if err != nil {
		return writeErr(cmd, fmt.Errorf("Failed to discover projects: %v", err))
	}
	if legacy, ok := store.LegacyProject(dir); ok {
		projects = append(projects, legacy)
	}
	if len(projects) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No projects found to export.")
		return nil
	}
	if projectFilter != "" {
		kept := projects[:0]
		for _, p := range projects {
			if p.Name == projectFilter || p.DisplayName == projectFilter {
				kept = append(kept, p)
			}
		}
		projects = kept
		if len(projects) == 0 {
			return writeErr(cmd, fmt.Errorf("No projects found matching filter: %s", projectFilter))
		}
	}

	var rows []store.ProjectTask
	for _, p := range projects {
		db := (store.Store{Path: p.Path}).Load()
		for i := range db.Tasks {
			t := &db.Tasks[i]
			if !includeCompleted && t.Status == model.StatusDone {
				continue
			}
			if tagFilter != "" && !hasTag(t.Tags, tagFilter) {
				continue
			}
			rows = append(rows, store.ProjectTask{ProjectName: p.DisplayName, Task: t})
		}
	}

	path := output
	if path == "" {
		path = "all_projects.csv"
	}
	if err := writeCSVFile(path, func(f *os.File) error {
		return store.WriteProjectsCSV(f, rows)
	}); err != nil {
		return writeErr(cmd, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d task(s) from %d project(s) to %s\n", len(rows), len(projects), path)
	return nil
}

func writeCSVFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Failed to write CSV file: %v", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("Failed to write CSV file: %v", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("Failed to write CSV file: %v", err)
	}
	return nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
