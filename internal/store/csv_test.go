package store

import (
	"bytes"
	"strings"
	"testing"

	"strata-cli/internal/model"
)

func TestCSVExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	pri := model.PriorityMustHave
	urg := model.UrgencyNotUrgentImportant
	stage := model.StageReadyToImplement
	due := model.NewDate(2024, 6, 1)
	src := model.Task{
		ID:           4,
		Title:        "Ship v1, then iterate",
		Description:  model.StrPtr("Line with \"quotes\" and, commas"),
		Tags:         []string{"launch", "release"},
		Project:      model.StrPtr("Webapp"),
		Due:          &due,
		Parent:       idPtr(2),
		Kind:         model.KindTask,
		Status:       model.StatusInProgress,
		Priority:     &pri,
		Urgency:      &urg,
		Stage:        &stage,
		CreatedAtUTC: 1700000000,
		UpdatedAtUTC: 1700000000,
	}

	var buf bytes.Buffer
	if err := WriteTasksCSV(&buf, []*model.Task{&src}); err != nil {
		t.Fatalf("WriteTasksCSV: %v", err)
	}
	if !strings.HasPrefix(buf.String(), CSVHeader+"\n") {
		t.Fatalf("missing header:\n%s", buf.String())
	}

	db := NewDB()
	res, err := ImportCSV(db, bytes.NewReader(buf.Bytes()), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if res.Imported != 1 || res.Skipped != 0 {
		t.Fatalf("result = %+v", res)
	}
	got := db.Tasks[0]
	if got.ID != 1 {
		t.Fatalf("imported id = %d, want fresh id 1", got.ID)
	}
	if got.Title != src.Title {
		t.Fatalf("title = %q", got.Title)
	}
	if got.Kind != src.Kind || got.Status != src.Status {
		t.Fatalf("kind/status = %s/%s", got.Kind, got.Status)
	}
	if got.Priority == nil || *got.Priority != pri {
		t.Fatalf("priority = %v", got.Priority)
	}
	if got.Urgency == nil || *got.Urgency != urg {
		t.Fatalf("urgency = %v", got.Urgency)
	}
	if got.Stage == nil || *got.Stage != stage {
		t.Fatalf("stage = %v", got.Stage)
	}
	if got.Due == nil || got.Due.String() != "2024-06-01" {
		t.Fatalf("due = %v", got.Due)
	}
	if got.Parent == nil || *got.Parent != 2 {
		t.Fatalf("parent = %v", got.Parent)
	}
	if model.StrOr(got.Description, "") != *src.Description {
		t.Fatalf("description = %v", got.Description)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "launch" {
		t.Fatalf("tags = %v", got.Tags)
	}
}

func TestImportCSVSkipsDuplicatesAndBadRows(t *testing.T) {
	t.Parallel()

	db := NewDB()
	db.Tasks = append(db.Tasks, task(1, "Existing", model.KindTask, nil))

	input := CSVHeader + "\n" +
		"9,Existing,Task,Open,-,-,-,-,-,-,-,x,x,-\n" +
		"10,,Task,Open,-,-,-,-,-,-,-,x,x,-\n" +
		"11,Fresh,Task,Open,-,-,-,-,-,-,-,x,x,-\n" +
		"12,too,few,fields\n"

	var warn bytes.Buffer
	res, err := ImportCSV(db, strings.NewReader(input), &warn)
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if res.Imported != 1 || res.Skipped != 3 {
		t.Fatalf("result = %+v", res)
	}
	if db.Find(2) == nil || db.Find(2).Title != "Fresh" {
		t.Fatalf("fresh task not imported: %#v", db.Tasks)
	}
	for _, want := range []string{
		"Warning: Task with title 'Existing' already exists. Skipping.",
		"Warning: Line 3 has empty title. Skipping.",
		"Warning: Line 5 has 4 fields, expected 14. Skipping.",
	} {
		if !strings.Contains(warn.String(), want) {
			t.Fatalf("warnings missing %q:\n%s", want, warn.String())
		}
	}
}

func TestImportCSVRejectsWrongHeader(t *testing.T) {
	t.Parallel()

	db := NewDB()
	_, err := ImportCSV(db, strings.NewReader("A,B,C\n1,2,3\n"), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "Invalid CSV header") {
		t.Fatalf("err = %v", err)
	}
	if _, err := ImportCSV(db, strings.NewReader(""), &bytes.Buffer{}); err == nil || !strings.Contains(err.Error(), "CSV file is empty") {
		t.Fatalf("empty err = %v", err)
	}
}

func TestWriteProjectsCSVPrefixesProjectName(t *testing.T) {
	t.Parallel()

	t1 := task(1, "One", model.KindTask, nil)
	var buf bytes.Buffer
	err := WriteProjectsCSV(&buf, []ProjectTask{{ProjectName: "Webapp", Task: &t1}})
	if err != nil {
		t.Fatalf("WriteProjectsCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %v", lines)
	}
	if !strings.HasPrefix(lines[0], "ProjectName,ID,") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Webapp,1,One,") {
		t.Fatalf("row = %q", lines[1])
	}
}
