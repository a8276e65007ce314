package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTaskJSONRoundTrip(t *testing.T) {
	pri := PriorityMustHave
	stage := StageDesign
	parent := uint64(3)
	task := Task{
		ID:           7,
		Title:        "Wire login flow",
		Summary:      StrPtr("OAuth plus fallback"),
		Tags:         []string{"auth", "backend"},
		Project:      StrPtr("Webapp"),
		Due:          datePtr(NewDate(2024, 6, 1)),
		Parent:       &parent,
		Kind:         KindTask,
		Status:       StatusInProgress,
		Priority:     &pri,
		Stage:        &stage,
		Artifacts:    []string{"docs/flow.md"},
		CreatedAtUTC: 1700000000,
		UpdatedAtUTC: 1700000100,
	}
	raw, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{
		`"kind":"task"`,
		`"status":"in-progress"`,
		`"priority_level":"must-have"`,
		`"process_stage":"design"`,
		`"due":"2024-06-01"`,
	} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("marshal missing %s in %s", want, raw)
		}
	}
	var back Task
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != 7 || back.Kind != KindTask || back.Status != StatusInProgress {
		t.Fatalf("round trip = %+v", back)
	}
	if back.Parent == nil || *back.Parent != 3 {
		t.Fatalf("parent lost: %+v", back.Parent)
	}
	if back.Due == nil || back.Due.String() != "2024-06-01" {
		t.Fatalf("due lost: %+v", back.Due)
	}
}

func TestTaskJSONLegacySpellings(t *testing.T) {
	raw := `{
		"id": 1,
		"title": "Old style",
		"tags": [],
		"kind": "Product",
		"status": "InProgress",
		"design_files": ["mockup.png"],
		"created_at_utc": 1,
		"updated_at_utc": 2
	}`
	var task Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if task.Kind != KindProduct {
		t.Fatalf("kind = %q", task.Kind)
	}
	if task.Status != StatusInProgress {
		t.Fatalf("status = %q", task.Status)
	}
	if len(task.LegacyDesignFiles) != 1 || task.LegacyDesignFiles[0] != "mockup.png" {
		t.Fatalf("legacy design files = %v", task.LegacyDesignFiles)
	}
}

func TestTaskJSONRejectsUnknownEnumValue(t *testing.T) {
	raw := `{"id":1,"title":"x","tags":[],"kind":"saga","status":"open","created_at_utc":0,"updated_at_utc":0}`
	var task Task
	if err := json.Unmarshal([]byte(raw), &task); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
