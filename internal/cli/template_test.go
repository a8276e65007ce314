package cli

import (
	"strings"
	"testing"

	"strata-cli/internal/model"
	"strata-cli/internal/store"
)

func TestTemplateSave_CopiesTaskFields(t *testing.T) {
	t.Parallel()

	pri := model.PriorityMustHave
	path := seedDB(t, t.TempDir(), &store.DB{Tasks: []model.Task{
		{ID: 1, Title: "Fix login bug", Kind: model.KindTask, Status: model.StatusOpen,
			Project:     model.StrPtr("Webapp"),
			Tags:        []string{"auth", "bug"},
			Priority:    &pri,
			Description: model.StrPtr("Repro steps attached."),
		},
	}})

	out, _, err := runCLI(t, "--db", path, "template", "save", "1", "bugfix")
	if err != nil {
		t.Fatalf("template save: %v", err)
	}
	if !strings.Contains(out, "Saved template 'bugfix' from task 1") {
		t.Fatalf("unexpected stdout: %q", out)
	}
	tmpl := loadDB(t, path).Template("bugfix")
	if tmpl == nil {
		t.Fatal("template not persisted")
	}
	if model.StrOr(tmpl.TitleTemplate, "") != "Fix login bug" ||
		model.StrOr(tmpl.Project, "") != "Webapp" ||
		tmpl.Kind != model.KindTask ||
		tmpl.Priority == nil || *tmpl.Priority != model.PriorityMustHave {
		t.Fatalf("template fields wrong: %+v", tmpl)
	}
	if got := strings.Join(tmpl.Tags, ","); got != "auth,bug" {
		t.Fatalf("template tags = %q", got)
	}

	_, errOut, err := runCLI(t, "--db", path, "template", "save", "1", "bugfix")
	if err == nil {
		t.Fatal("expected duplicate-name error")
	}
	if !strings.Contains(errOut, "Template 'bugfix' already exists. Use a different name.") {
		t.Fatalf("unexpected stderr: %q", errOut)
	}
}

func TestTemplateCreate_FromFlags(t *testing.T) {
	t.Parallel()

	path := seedDB(t, t.TempDir(), &store.DB{})

	out, _, err := runCLI(t, "--db", path, "template", "create", "spike",
		"--title-template", "Spike: {title}",
		"--project", "Research",
		"--tags", "Spike, Research",
		"--kind", "subtask",
		"--priority", "nice-to-have",
		"--process-stage", "ideation",
		"--status", "in-progress")
	if err != nil {
		t.Fatalf("template create: %v", err)
	}
	if !strings.Contains(out, "Created template 'spike'") {
		t.Fatalf("unexpected stdout: %q", out)
	}
	tmpl := loadDB(t, path).Template("spike")
	if tmpl == nil {
		t.Fatal("template not persisted")
	}
	if model.StrOr(tmpl.TitleTemplate, "") != "Spike: {title}" ||
		tmpl.Kind != model.KindSubtask ||
		tmpl.Status != model.StatusInProgress ||
		tmpl.Stage == nil || *tmpl.Stage != model.StageIdeation {
		t.Fatalf("template fields wrong: %+v", tmpl)
	}
	if got := strings.Join(tmpl.Tags, ","); got != "research,spike" {
		t.Fatalf("template tags = %q", got)
	}
}

func TestTemplateListAndDelete(t *testing.T) {
	t.Parallel()

	path := seedDB(t, t.TempDir(), &store.DB{Templates: []model.Template{
		{Name: "bugfix", Kind: model.KindTask, Status: model.StatusOpen, Project: model.StrPtr("Webapp")},
		{Name: "spike", Kind: model.KindSubtask, Status: model.StatusOpen},
	}})

	out, _, err := runCLI(t, "--db", path, "template", "list")
	if err != nil {
		t.Fatalf("template list: %v", err)
	}
	if !strings.Contains(out, "Name") || !strings.Contains(out, "bugfix") || !strings.Contains(out, "spike") {
		t.Fatalf("listing incomplete:\n%s", out)
	}

	out, _, err = runCLI(t, "--db", path, "template", "delete", "spike")
	if err != nil {
		t.Fatalf("template delete: %v", err)
	}
	if !strings.Contains(out, "Deleted template 'spike'") {
		t.Fatalf("unexpected stdout: %q", out)
	}
	db := loadDB(t, path)
	if db.Template("spike") != nil || db.Template("bugfix") == nil {
		t.Fatalf("wrong templates after delete: %+v", db.Templates)
	}

	_, errOut, err := runCLI(t, "--db", path, "template", "delete", "nope")
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if !strings.Contains(errOut, "Template 'nope' not found.") {
		t.Fatalf("unexpected stderr: %q", errOut)
	}

	out, _, err = runCLI(t, "--db", seedDB(t, t.TempDir(), &store.DB{}), "template", "list")
	if err != nil {
		t.Fatalf("template list empty: %v", err)
	}
	if !strings.Contains(out, "No templates found.") {
		t.Fatalf("unexpected stdout: %q", out)
	}
}
