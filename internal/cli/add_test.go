package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"strata-cli/internal/model"
	"strata-cli/internal/store"
)

func TestAdd_CreatesTaskWithNormalisedTags(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.json")

	out, errOut, err := runCLI(t, "--db", path, "add", "Implement login",
		"--project", "Webapp", "--tag", "Backend, AUTH", "--desc", "OAuth plus fallback")
	if err != nil {
		t.Fatalf("add error: %v\nstderr:\n%s", err, errOut)
	}
	if !strings.Contains(out, "Added task 1") {
		t.Fatalf("unexpected output: %q", out)
	}

	db := loadDB(t, path)
	if len(db.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(db.Tasks))
	}
	task := db.Tasks[0]
	if task.Title != "Implement login" || task.Kind != model.KindTask || task.Status != model.StatusOpen {
		t.Fatalf("unexpected task: %+v", task)
	}
	if model.StrOr(task.Project, "") != "Webapp" {
		t.Fatalf("project = %v", task.Project)
	}
	if got := strings.Join(task.Tags, ","); got != "auth,backend" {
		t.Fatalf("tags = %q, want lowercased and sorted", got)
	}
	if model.StrOr(task.Description, "") != "OAuth plus fallback" {
		t.Fatalf("description = %v", task.Description)
	}
}

func TestAdd_AssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := seedDB(t, dir, &store.DB{Tasks: []model.Task{
		{ID: 4, Title: "Existing", Kind: model.KindTask, Status: model.StatusOpen},
	}})

	out, _, err := runCLI(t, "--db", path, "add", "Next one")
	if err != nil {
		t.Fatalf("add error: %v", err)
	}
	if !strings.Contains(out, "Added task 5") {
		t.Fatalf("expected id 5 (max+1), got: %q", out)
	}
}

func TestAdd_ParentByTitleAndHierarchyCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := seedDB(t, dir, &store.DB{Tasks: []model.Task{
		{ID: 1, Title: "Checkout rewrite", Kind: model.KindEpic, Status: model.StatusOpen},
	}})

	// A task under an epic is fine, resolved by title.
	if _, errOut, err := runCLI(t, "--db", path, "add", "Cart API", "--parent", "checkout rewrite"); err != nil {
		t.Fatalf("add under epic: %v\nstderr:\n%s", err, errOut)
	}
	db := loadDB(t, path)
	child := db.Find(2)
	if child == nil || child.Parent == nil || *child.Parent != 1 {
		t.Fatalf("expected task 2 parented under 1, got %+v", child)
	}

	// An epic under an epic is not.
	_, errOut, err := runCLI(t, "--db", path, "add", "Another epic", "--kind", "epic", "--parent", "1")
	if err == nil {
		t.Fatal("expected hierarchy error")
	}
	if !strings.Contains(errOut, "Invalid hierarchy: Epic cannot be child of Epic") {
		t.Fatalf("unexpected stderr: %q", errOut)
	}
	if got := len(loadDB(t, path).Tasks); got != 2 {
		t.Fatalf("rejected add must not persist; have %d tasks", got)
	}
}

func TestAdd_MissingParentFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.json")

	_, errOut, err := runCLI(t, "--db", path, "add", "Orphan", "--parent", "99")
	if err == nil {
		t.Fatal("expected error for unknown parent")
	}
	if !strings.Contains(errOut, "Error resolving parent: Task with ID 99 not found") {
		t.Fatalf("unexpected stderr: %q", errOut)
	}
}

func TestAdd_TemplateFillsUnsetFlags(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pri := model.PriorityMustHave
	stage := model.StageDesign
	path := seedDB(t, dir, &store.DB{Templates: []model.Template{{
		Name:     "bug",
		Project:  model.StrPtr("Webapp"),
		Tags:     []string{"bug"},
		Kind:     model.KindSubtask,
		Priority: &pri,
		Stage:    &stage,
		Status:   model.StatusInProgress,
	}}})

	// Explicit --project wins; everything else comes from the template.
	if _, errOut, err := runCLI(t, "--db", path, "add", "Fix crash",
		"--template", "bug", "--project", "Mobile"); err != nil {
		t.Fatalf("add with template: %v\nstderr:\n%s", err, errOut)
	}

	task := loadDB(t, path).Find(1)
	if task == nil {
		t.Fatal("task not saved")
	}
	if task.Kind != model.KindSubtask || task.Status != model.StatusInProgress {
		t.Fatalf("template defaults not applied: %+v", task)
	}
	if model.StrOr(task.Project, "") != "Mobile" {
		t.Fatalf("explicit flag must win over template, project = %v", task.Project)
	}
	if task.Priority == nil || *task.Priority != model.PriorityMustHave {
		t.Fatalf("priority = %v", task.Priority)
	}
	if task.Stage == nil || *task.Stage != model.StageDesign {
		t.Fatalf("stage = %v", task.Stage)
	}
}

func TestAdd_UnknownTemplateFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.json")

	_, errOut, err := runCLI(t, "--db", path, "add", "X", "--template", "nope")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(errOut, "Template 'nope' not found") {
		t.Fatalf("unexpected stderr: %q", errOut)
	}
}

func TestAdd_DueDateVariants(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.json")

	if _, _, err := runCLI(t, "--db", path, "add", "Dated", "--due", "2030-06-01"); err != nil {
		t.Fatalf("add with ISO due: %v", err)
	}
	task := loadDB(t, path).Find(1)
	if task == nil || task.Due == nil || task.Due.String() != "2030-06-01" {
		t.Fatalf("due = %v", task.Due)
	}

	// An unparseable due date is dropped rather than rejected on add.
	if _, _, err := runCLI(t, "--db", path, "add", "Undated", "--due", "whenever"); err != nil {
		t.Fatalf("add with junk due: %v", err)
	}
	if task := loadDB(t, path).Find(2); task == nil || task.Due != nil {
		t.Fatalf("junk due should be dropped, got %v", task.Due)
	}
}

func TestAdd_InvalidEnumFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.json")

	_, errOut, err := runCLI(t, "--db", path, "add", "X", "--kind", "story")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(errOut, `invalid kind "story"`) {
		t.Fatalf("unexpected stderr: %q", errOut)
	}
}
