package cli

import (
	"fmt"

	"strata-cli/internal/store"

	"github.com/spf13/cobra"
)

func newBackupCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create timestamped backup of current project or all projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				return runBackupAll(cmd, app)
			}

			path, err := resolveDBPath(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			backupPath, err := store.CreateBackup(path)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("Failed to create backup: %v", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup created: %s\n", backupPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Backup all projects instead of just current")

	return cmd
}

func runBackupAll(cmd *cobra.Command, app *App) error {
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
		fmt.Fprintln(cmd.OutOrStdout(), "No projects found to backup.")
		return nil
	}

	success := 0
	for _, p := range projects {
		backupPath, err := store.CreateBackup(p.Path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Failed to backup %s: %v\n", p.DisplayName, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backed up %s: %s\n", p.DisplayName, backupPath)
		success++
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Backup completed: %d/%d projects backed up successfully.\n", success, len(projects))
	return nil
}
