package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"strata-cli/internal/format"
	"strata-cli/internal/store"

	"github.com/spf13/cobra"
)

// App carries the persistent flags shared by every subcommand.
type App struct {
	DBPath string
	Pretty bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "strata",
		Short:        "Hierarchical task management CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the project menu
  strata menu

  # Open the task browser for the most recent project
  strata ui

  # Add a task from the shell
  strata add "Implement user authentication" --project auth-system --tag backend

  # List open tasks
  strata list
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => task browser, like `strata ui`.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.DBPath, "db", envOr("STRATA_DB", ""), "Path to the JSON database file (default: resolved from the data directory)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print --json output")

	cmd.AddCommand(newUICmd(app))
	cmd.AddCommand(newWfCmd(app))
	cmd.AddCommand(newMenuCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newViewCmd(app))
	cmd.AddCommand(newUpdateCmd(app))
	cmd.AddCommand(newCompleteCmd(app))
	cmd.AddCommand(newReopenCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newTemplateCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newBackupCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newCompletionsCmd())

	return cmd
}

// dataDir is the directory holding project database files:
// the parent of --db when given, else $STRATA_DIR, else ~/.strata (created).
func dataDir(app *App) (string, error) {
	if app.DBPath != "" {
		return filepath.Dir(app.DBPath), nil
	}
	if dir := os.Getenv("STRATA_DIR"); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".strata")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return dir, nil
}

// resolveDBPath picks the database file for direct (non-TUI) commands:
// --db, else the legacy tasks.json, else the first discovered project,
// else a freshly created "Default" project.
func resolveDBPath(app *App) (string, error) {
	if app.DBPath != "" {
		return app.DBPath, nil
	}
	dir, err := dataDir(app)
	if err != nil {
		return "", err
	}
	if legacy, ok := store.LegacyProject(dir); ok {
		return legacy.Path, nil
	}
	projects, err := store.DiscoverProjects(dir)
	if err != nil {
		return "", err
	}
	if len(projects) > 0 {
		return projects[0].Path, nil
	}
	p, err := store.CreateProject("Default", dir)
	if err != nil {
		return "", fmt.Errorf("failed to create default project: %w", err)
	}
	return p.Path, nil
}

func openStore(app *App) (store.Store, *store.DB, error) {
	path, err := resolveDBPath(app)
	if err != nil {
		return store.Store{}, nil, err
	}
	s := store.Store{Path: path}
	return s, s.Load(), nil
}

// projectLabel names the project a database file belongs to, for the
// activity log.
func projectLabel(dbPath string) string {
	if p, ok := store.ProjectFromPath(dbPath); ok {
		return p.DisplayName
	}
	return "Default (Legacy)"
}

// logActivity records a mutation in the shared activity log. Best effort:
// a failed append never fails the command.
func logActivity(s store.Store, taskID uint64, action store.Action, title string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = store.ActivityLog{Dir: s.Dir()}.Append(ctx, projectLabel(s.Path), taskID, action, title)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeJSON(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, "json", app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
