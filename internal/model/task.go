package model

// Task is a single work item. Tasks form a hierarchy
// (Product > Epic > Task > Subtask) via the Parent pointer; Milestones sit
// outside the hierarchy. Field order matches the on-disk JSON layout.
type Task struct {
	ID           uint64        `json:"id"`
	Title        string        `json:"title"`
	Summary      *string       `json:"summary,omitempty"`
	Description  *string       `json:"description,omitempty"`
	UserStory    *string       `json:"user_story,omitempty"`
	Requirements *string       `json:"requirements,omitempty"`
	Tags         []string      `json:"tags"`
	Project      *string       `json:"project,omitempty"`
	Due          *Date         `json:"due,omitempty"`
	Parent       *uint64       `json:"parent,omitempty"`
	Kind         Kind          `json:"kind"`
	Status       Status        `json:"status"`
	Priority     *Priority     `json:"priority_level,omitempty"`
	Urgency      *Urgency      `json:"urgency,omitempty"`
	Stage        *ProcessStage `json:"process_stage,omitempty"`
	IssueLink    *string       `json:"issue_link,omitempty"`
	PRLink       *string       `json:"pr_link,omitempty"`
	Artifacts    []string      `json:"artifacts"`

	// Legacy field (folded into Artifacts on load).
	LegacyDesignFiles []string `json:"design_files,omitempty"`

	CreatedAtUTC int64 `json:"created_at_utc"`
	UpdatedAtUTC int64 `json:"updated_at_utc"`
}

// Template pre-fills new tasks with common field values.
type Template struct {
	Name                string        `json:"name"`
	TitleTemplate       *string       `json:"title_template,omitempty"`
	DescriptionTemplate *string       `json:"description_template,omitempty"`
	Project             *string       `json:"project,omitempty"`
	Tags                []string      `json:"tags"`
	Kind                Kind          `json:"kind"`
	Priority            *Priority     `json:"priority_level,omitempty"`
	Urgency             *Urgency      `json:"urgency,omitempty"`
	Stage               *ProcessStage `json:"process_stage,omitempty"`
	Status              Status        `json:"status"`
}

// StrPtr returns a pointer to s, or nil when s is empty. The persistence
// layer treats empty text fields as absent.
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StrOr dereferences p, returning fallback for nil.
func StrOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
