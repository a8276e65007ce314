package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is a task's hierarchy role.
type Kind string

const (
	KindProduct   Kind = "product"
	KindEpic      Kind = "epic"
	KindTask      Kind = "task"
	KindSubtask   Kind = "subtask"
	KindMilestone Kind = "milestone"
)

// AllKinds is in hierarchy order; Milestone last as the out-of-tree role.
var AllKinds = []Kind{KindProduct, KindEpic, KindTask, KindSubtask, KindMilestone}

func (k Kind) Display() string {
	switch k {
	case KindProduct:
		return "Product"
	case KindEpic:
		return "Epic"
	case KindTask:
		return "Task"
	case KindSubtask:
		return "Subtask"
	case KindMilestone:
		return "Milestone"
	}
	return string(k)
}

// ParseKind accepts wire values and the capitalised spellings older data
// files used.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "product":
		return KindProduct, nil
	case "epic":
		return KindEpic, nil
	case "task":
		return KindTask, nil
	case "subtask":
		return KindSubtask, nil
	case "milestone":
		return KindMilestone, nil
	}
	return "", fmt.Errorf("invalid kind %q (product|epic|task|subtask|milestone)", s)
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Status is a task's completion state.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

var AllStatuses = []Status{StatusOpen, StatusInProgress, StatusDone}

func (s Status) Display() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusInProgress:
		return "InProgress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// Next advances Open -> InProgress -> Done -> Open.
func (s Status) Next() Status {
	switch s {
	case StatusOpen:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	default:
		return StatusOpen
	}
}

// ParseStatus accepts wire values and the legacy spellings "Open",
// "InProgress" and "Done".
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return StatusOpen, nil
	case "in-progress", "inprogress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	}
	return "", fmt.Errorf("invalid status %q (open|in-progress|done)", s)
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Priority classifies how negotiable a task is.
type Priority string

const (
	PriorityMustHave   Priority = "must-have"
	PriorityNiceToHave Priority = "nice-to-have"
	PriorityCutFirst   Priority = "cut-first"
)

var AllPriorities = []Priority{PriorityMustHave, PriorityNiceToHave, PriorityCutFirst}

func (p Priority) Display() string {
	switch p {
	case PriorityMustHave:
		return "Must Have"
	case PriorityNiceToHave:
		return "Nice to Have"
	case PriorityCutFirst:
		return "Cut First"
	}
	return string(p)
}

// DisplayPriority renders an optional priority, "-" when unset.
func DisplayPriority(p *Priority) string {
	if p == nil {
		return "-"
	}
	return p.Display()
}

// ParsePriority accepts wire values and display spellings ("Must Have").
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "must-have", "must have":
		return PriorityMustHave, nil
	case "nice-to-have", "nice to have":
		return PriorityNiceToHave, nil
	case "cut-first", "cut first":
		return PriorityCutFirst, nil
	}
	return "", fmt.Errorf("invalid priority %q (must-have|nice-to-have|cut-first)", s)
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParsePriority(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// PriorityRank orders priorities for sorting; unset sorts last.
func PriorityRank(p *Priority) int {
	if p == nil {
		return 3
	}
	switch *p {
	case PriorityMustHave:
		return 0
	case PriorityNiceToHave:
		return 1
	default:
		return 2
	}
}

// Urgency places a task on the urgent/important matrix.
type Urgency string

const (
	UrgencyUrgentImportant       Urgency = "urgent-important"
	UrgencyUrgentNotImportant    Urgency = "urgent-not-important"
	UrgencyNotUrgentImportant    Urgency = "not-urgent-important"
	UrgencyNotUrgentNotImportant Urgency = "not-urgent-not-important"
)

var AllUrgencies = []Urgency{
	UrgencyUrgentImportant,
	UrgencyUrgentNotImportant,
	UrgencyNotUrgentImportant,
	UrgencyNotUrgentNotImportant,
}

func (u Urgency) Display() string {
	switch u {
	case UrgencyUrgentImportant:
		return "Urgent Important"
	case UrgencyUrgentNotImportant:
		return "Urgent Not Important"
	case UrgencyNotUrgentImportant:
		return "Not Urgent Important"
	case UrgencyNotUrgentNotImportant:
		return "Not Urgent Not Important"
	}
	return string(u)
}

func DisplayUrgency(u *Urgency) string {
	if u == nil {
		return "-"
	}
	return u.Display()
}

func ParseUrgency(s string) (Urgency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "urgent-important", "urgent important":
		return UrgencyUrgentImportant, nil
	case "urgent-not-important", "urgent not important":
		return UrgencyUrgentNotImportant, nil
	case "not-urgent-important", "not urgent important":
		return UrgencyNotUrgentImportant, nil
	case "not-urgent-not-important", "not urgent not important":
		return UrgencyNotUrgentNotImportant, nil
	}
	return "", fmt.Errorf("invalid urgency %q", s)
}

func (u *Urgency) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseUrgency(raw)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// UrgencyRank orders urgencies for sorting; unset sorts last.
func UrgencyRank(u *Urgency) int {
	if u == nil {
		return 4
	}
	switch *u {
	case UrgencyUrgentImportant:
		return 0
	case UrgencyUrgentNotImportant:
		return 1
	case UrgencyNotUrgentImportant:
		return 2
	default:
		return 3
	}
}

// ProcessStage tracks where a task sits in the development workflow.
type ProcessStage string

const (
	StageIdeation         ProcessStage = "ideation"
	StageDesign           ProcessStage = "design"
	StagePrototyping      ProcessStage = "prototyping"
	StageReadyToImplement ProcessStage = "ready-to-implement"
	StageImplementation   ProcessStage = "implementation"
	StageTesting          ProcessStage = "testing"
	StageRefinement       ProcessStage = "refinement"
	StageRelease          ProcessStage = "release"
)

// AllStages is in workflow order; the board keys its columns off this.
var AllStages = []ProcessStage{
	StageIdeation,
	StageDesign,
	StagePrototyping,
	StageReadyToImplement,
	StageImplementation,
	StageTesting,
	StageRefinement,
	StageRelease,
}

func (s ProcessStage) Display() string {
	switch s {
	case StageIdeation:
		return "Ideation"
	case StageDesign:
		return "Design"
	case StagePrototyping:
		return "Prototyping"
	case StageReadyToImplement:
		return "Ready to Implement"
	case StageImplementation:
		return "Implementation"
	case StageTesting:
		return "Testing"
	case StageRefinement:
		return "Refinement"
	case StageRelease:
		return "Release"
	}
	return string(s)
}

func DisplayStage(s *ProcessStage) string {
	if s == nil {
		return "-"
	}
	return s.Display()
}

func ParseStage(s string) (ProcessStage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ideation":
		return StageIdeation, nil
	case "design":
		return StageDesign, nil
	case "prototyping":
		return StagePrototyping, nil
	case "ready-to-implement", "ready to implement":
		return StageReadyToImplement, nil
	case "implementation":
		return StageImplementation, nil
	case "testing":
		return StageTesting, nil
	case "refinement":
		return StageRefinement, nil
	case "release":
		return StageRelease, nil
	}
	return "", fmt.Errorf("invalid process stage %q", s)
}

func (s *ProcessStage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStage(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// NextStage advances through the workflow, wrapping Release back to
// Ideation; an unset stage enters at Ideation.
func NextStage(s *ProcessStage) ProcessStage {
	if s == nil || *s == StageRelease {
		return StageIdeation
	}
	for i, stage := range AllStages {
		if stage == *s {
			return AllStages[i+1]
		}
	}
	return StageIdeation
}
