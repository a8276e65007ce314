package cli

import (
	"fmt"

	"strata-cli/internal/store"
	"strata-cli/internal/tui"

	"github.com/spf13/cobra"
)

func newUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the task browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, app)
		},
	}
}

func newWfCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wf",
		Short: "Open the workflow kanban board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.DBPath != "" {
				return runBoardLoop(app.DBPath)
			}
			dir, err := dataDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := tui.RunMenuWorkflow(dir)
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Project != nil && res.OpenWorkflow {
				fmt.Fprintf(cmd.OutOrStdout(), "Opening workflow for: %s\n", res.Project.DisplayName)
				return runBoardLoop(res.Project.Path)
			}
			return nil
		},
	}
}

func newMenuCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the project menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dataDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return runMenu(cmd, dir)
		},
	}
}

// runUI opens the browser on --db when given, else on the most recently
// touched project, else falls back to the project menu.
func runUI(cmd *cobra.Command, app *App) error {
	if app.DBPath != "" {
		return tui.RunBrowser(app.DBPath)
	}
	dir, err := dataDir(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	if p, ok := store.MostRecentProject(dir); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Opening recent project: %s\n", p.DisplayName)
		return tui.RunBrowser(p.Path)
	}
	return runMenu(cmd, dir)
}

func runMenu(cmd *cobra.Command, dir string) error {
	res, err := tui.RunMenu(dir)
	if err != nil {
		return writeErr(cmd, err)
	}
	if res.Project == nil {
		return nil
	}
	if res.OpenWorkflow {
		fmt.Fprintf(cmd.OutOrStdout(), "Opening workflow for: %s\n", res.Project.DisplayName)
		return runBoardLoop(res.Project.Path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Opening project: %s\n", res.Project.DisplayName)
	return tui.RunBrowser(res.Project.Path)
}

// runBoardLoop alternates between the board and the browser's edit form:
// the board exits with a task id when a card is opened for editing, and the
// board resumes when the edit closes.
func runBoardLoop(dbPath string) error {
	for {
		editID, err := tui.RunBoard(dbPath)
		if err != nil {
			return err
		}
		if editID == nil {
			return nil
		}
		db := (store.Store{Path: dbPath}).Load()
		if db.Find(*editID) == nil {
			continue
		}
		if err := tui.RunBrowserEdit(dbPath, *editID); err != nil {
			return err
		}
	}
}
