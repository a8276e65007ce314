package cli

import (
	"fmt"

	"strata-cli/internal/model"
	"strata-cli/internal/store"

	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage task templates",
	}
	cmd.AddCommand(newTemplateSaveCmd(app))
	cmd.AddCommand(newTemplateListCmd(app))
	cmd.AddCommand(newTemplateDeleteCmd(app))
	cmd.AddCommand(newTemplateCreateCmd(app))
	return cmd
}

func newTemplateSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save <task-id-or-title> <template-name>",
		Short: "Save a task as a template",
		Args:  cobra.ExactArgs(2),
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
			name := args[1]
			if db.Template(name) != nil {
				return writeErr(cmd, fmt.Errorf("Template '%s' already exists. Use a different name.", name))
			}

			tags := make([]string, len(t.Tags))
			copy(tags, t.Tags)
			db.Templates = append(db.Templates, model.Template{
				Name:                name,
				TitleTemplate:       model.StrPtr(t.Title),
				DescriptionTemplate: t.Description,
				Project:             t.Project,
				Tags:                tags,
				Kind:                t.Kind,
				Priority:            t.Priority,
				Urgency:             t.Urgency,
				Stage:               t.Stage,
				Status:              t.Status,
			})
			if err := s.Save(db); err != nil {
				return writeErr(cmd, fmt.Errorf("Failed to save database: %v", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved template '%s' from task %d\n", name, id)
			return nil
		},
	}
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(db.Templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-10s %-12s %-15s\n", "Name", "Kind", "Status", "Project")
			for i := range db.Templates {
				tmpl := &db.Templates[i]
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-10s %-12s %-15s\n",
					store.Truncate(tmpl.Name, 20),
					tmpl.Kind.Display(),
					tmpl.Status.Display(),
					store.Truncate(model.StrOr(tmpl.Project, "-"), 15))
			}
			return nil
		},
	}
}

func newTemplateDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <template-name>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, db, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			name := args[0]
			kept := db.Templates[:0]
			for _, tmpl := range db.Templates {
				if tmpl.Name != name {
					kept = append(kept, tmpl)
				}
			}
			if len(kept) == len(db.Templates) {
				return writeErr(cmd, fmt.Errorf("Template '%s' not found.", name))
			}
			db.Templates = kept
			if err := s.Save(db); err != nil {
				return writeErr(cmd, fmt.Errorf("Failed to save database: %v", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted template '%s'\n", name)
			return nil
		},
	}
}

func newTemplateCreateCmd(app *App) *cobra.Command {
	var (
		titleTemplate string
		description   string
		project       string
		tags          string
		kindStr       string
		priority      string
		urgency       string
		stage         string
		statusStr     string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new template from scratch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			kind, err := model.ParseKind(kindStr)
			if err != nil {
				return writeErr(cmd, err)
			}
			status, err := model.ParseStatus(statusStr)
			if err != nil {
				return writeErr(cmd, err)
			}
			var prio *model.Priority
			if priority != "" {
				p, err := model.ParsePriority(priority)
				if err != nil {
					return writeErr(cmd, err)
				}
				prio = &p
			}
			var urg *model.Urgency
			if urgency != "" {
				u, err := model.ParseUrgency(urgency)
				if err != nil {
					return writeErr(cmd, err)
				}
				urg = &u
			}
			var procStage *model.ProcessStage
			if stage != "" {
				s, err := model.ParseStage(stage)
				if err != nil {
					return writeErr(cmd, err)
				}
				procStage = &s
			}

			s, db, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if db.Template(name) != nil {
				return writeErr(cmd, fmt.Errorf("Template '%s' already exists. Use a different name.", name))
			}

			var tmplTags []string
			if tags != "" {
				tmplTags = model.SplitTags([]string{tags})
			} else {
				tmplTags = []string{}
			}

			db.Templates = append(db.Templates, model.Template{
				Name:                name,
				TitleTemplate:       model.StrPtr(titleTemplate),
				DescriptionTemplate: model.StrPtr(description),
				Project:             model.StrPtr(project),
				Tags:                tmplTags,
				Kind:                kind,
				Priority:            prio,
				Urgency:             urg,
				Stage:               procStage,
				Status:              status,
			})
			if err := s.Save(db); err != nil {
				return writeErr(cmd, fmt.Errorf("Failed to save database: %v", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created template '%s'\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&titleTemplate, "title-template", "", "Title template (can include {title} placeholder)")
	cmd.Flags().StringVar(&description, "description", "", "Description template")
	cmd.Flags().StringVar(&project, "project", "", "Default project")
	cmd.Flags().StringVar(&tags, "tags", "", "Default tags (comma-separated)")
	cmd.Flags().StringVar(&kindStr, "kind", "task", "Default kind")
	cmd.Flags().StringVar(&priority, "priority", "", "Default priority")
	cmd.Flags().StringVar(&urgency, "urgency", "", "Default urgency")
	cmd.Flags().StringVar(&stage, "process-stage", "", "Default process stage")
	cmd.Flags().StringVar(&statusStr, "status", "open", "Default status")

	return cmd
}
