package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"strata-cli/internal/store"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var noBackup bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import tasks from CSV format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, db, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if !noBackup {
				backupPath, err := store.CreateBackup(s.Path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to create backup: %v\n", err)
					fmt.Fprint(cmd.OutOrStdout(), "Continue without backup? (y/N): ")
					line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
					if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y") {
						fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled.")
						return nil
					}
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Created backup: %s\n", backupPath)
				}
			}

			input := args[0]
			f, err := os.Open(input)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("Failed to read CSV file '%s': %v", input, err))
			}
			res, err := store.ImportCSV(db, f, cmd.ErrOrStderr())
			f.Close()
			if err != nil {
				return writeErr(cmd, err)
			}

			if err := s.Save(db); err != nil {
				return writeErr(cmd, fmt.Errorf("Failed to save database: %v", err))
			}
			logActivity(s, 0, store.ActionImported, fmt.Sprintf("%d task(s) from %s", res.Imported, input))
			fmt.Fprintf(cmd.OutOrStdout(), "Import completed. %d tasks imported, %d skipped.\n", res.Imported, res.Skipped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip creating backup before import")

	return cmd
}
