package cli

import (
	"fmt"
	"time"

	"strata-cli/internal/model"
	"strata-cli/internal/store"

	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		template  string
		desc      string
		project   string
		tags      []string
		due       string
		parent    string
		kindStr   string
		priority  string
		urgency   string
		stage     string
		issueLink string
		prLink    string
		summary   string
		userStory string
		reqs      string
		artifacts []string
		statusStr string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]

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

			taskTags := model.SplitTags(tags)
			taskProject := model.StrPtr(project)
			taskDesc := model.StrPtr(desc)

			if template != "" {
				tmpl := db.Template(template)
				if tmpl == nil {
					return writeErr(cmd, fmt.Errorf("Template '%s' not found", template))
				}
				// Explicit flags win; template values fill whatever was
				// left at its default.
				if kind == model.KindTask {
					kind = tmpl.Kind
				}
				if taskProject == nil {
					taskProject = tmpl.Project
				}
				if len(taskTags) == 0 {
					taskTags = tmpl.Tags
				}
				if prio == nil {
					prio = tmpl.Priority
				}
				if urg == nil {
					urg = tmpl.Urgency
				}
				if procStage == nil {
					procStage = tmpl.Stage
				}
				if status == model.StatusOpen {
					status = tmpl.Status
				}
				if taskDesc == nil {
					taskDesc = tmpl.DescriptionTemplate
				}
			}

			id := db.NextID()

			var parentID *uint64
			if parent != "" {
				pid, err := db.ResolveIdentifier(parent)
				if err != nil {
					return writeErr(cmd, fmt.Errorf("Error resolving parent: %v", err))
				}
				if pt := db.Find(pid); pt != nil && !model.ValidChild(pt.Kind, kind) {
					return writeErr(cmd, model.HierarchyError(pt.Kind, kind))
				}
				parentID = &pid
			}

			var dueDate *model.Date
			if due != "" {
				if d, ok := store.ParseDueInput(due, model.Today()); ok {
					dueDate = &d
				}
			}

			now := time.Now().Unix()
			task := model.Task{
				ID:           id,
				Title:        title,
				Summary:      model.StrPtr(summary),
				Description:  taskDesc,
				UserStory:    model.StrPtr(userStory),
				Requirements: model.StrPtr(reqs),
				Tags:         taskTags,
				Project:      taskProject,
				Due:          dueDate,
				Parent:       parentID,
				Kind:         kind,
				Status:       status,
				Priority:     prio,
				Urgency:      urg,
				Stage:        procStage,
				IssueLink:    model.StrPtr(issueLink),
				PRLink:       model.StrPtr(prLink),
				Artifacts:    model.SplitList(artifacts),
				CreatedAtUTC: now,
				UpdatedAtUTC: now,
			}
			db.Tasks = append(db.Tasks, task)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, fmt.Errorf("Failed to save DB: %v", err))
			}
			logActivity(s, id, store.ActionCreated, title)
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&template, "template", "", "Use a template for default values")
	cmd.Flags().StringVar(&desc, "desc", "", "Optional longer description")
	cmd.Flags().StringVar(&project, "project", "", "Project name")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Comma-separated tags (may be repeated)")
	cmd.Flags().StringVar(&due, "due", "", "Due date: YYYY-MM-DD, \"today\", \"tomorrow\", or \"in Nd\"")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent task ID or name")
	cmd.Flags().StringVar(&kindStr, "kind", "task", "Item kind: product | epic | task | subtask | milestone")
	cmd.Flags().StringVar(&priority, "priority-level", "", "Priority level: must-have | nice-to-have | cut-first")
	cmd.Flags().StringVar(&urgency, "urgency", "", "Urgency: urgent-important | urgent-not-important | not-urgent-important | not-urgent-not-important")
	cmd.Flags().StringVar(&stage, "process-stage", "", "Process stage: ideation | design | prototyping | ready-to-implement | implementation | testing | refinement | release")
	cmd.Flags().StringVar(&issueLink, "issue-link", "", "Issue link (URL)")
	cmd.Flags().StringVar(&prLink, "pr-link", "", "PR link (URL)")
	cmd.Flags().StringVar(&summary, "summary", "", "Summary (one-line description)")
	cmd.Flags().StringVar(&userStory, "user-story", "", "User story")
	cmd.Flags().StringVar(&reqs, "requirements", "", "Requirements specification")
	cmd.Flags().StringArrayVar(&artifacts, "artifacts", nil, "Artifacts (file paths, comma-separated)")
	cmd.Flags().StringVar(&statusStr, "status", "open", "Status: open | in-progress | done")

	return cmd
}
