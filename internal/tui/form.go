package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"strata-cli/internal/model"
	"strata-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Form slots in tab order. The rendered layout groups text fields on the left
// and the story/requirements panes on the right, but navigation walks this
// sequence with wraparound in both directions.
const (
	slotTitle = iota
	slotSummary
	slotDescription
	slotProject
	slotTags
	slotDue
	slotParent
	slotIssueLink
	slotPRLink
	slotArtifacts
	slotKind
	slotStatus
	slotPriority
	slotUrgency
	slotStage
	slotUserStory
	slotRequirements
	slotCount
)

// formSlot is either a text slot (input) or a selector slot (options/idx).
// Fullscreen slots open the textarea dialog on enter instead of submitting.
type formSlot struct {
	label      string
	input      textinput.Model
	options    []string
	idx        int
	fullscreen bool
}

func (s *formSlot) selector() bool { return s.options != nil }

func (s *formSlot) value() string {
	if s.selector() {
		return s.options[s.idx]
	}
	return s.input.Value()
}

func (s *formSlot) setValue(v string) {
	if s.selector() {
		for i, opt := range s.options {
			if opt == v {
				s.idx = i
				return
			}
		}
		return
	}
	s.input.SetValue(v)
	s.input.CursorEnd()
}

func (s *formSlot) cycle(right bool) {
	if !s.selector() || len(s.options) == 0 {
		return
	}
	if right {
		s.idx = (s.idx + 1) % len(s.options)
	} else {
		s.idx--
		if s.idx < 0 {
			s.idx = len(s.options) - 1
		}
	}
}

// taskForm drives the add/edit screen. It holds raw field state only;
// materialise turns it into a validated model.Task.
type taskForm struct {
	slots  [slotCount]formSlot
	active int
	// editing holds the task being edited, nil when creating.
	editing *model.Task
}

func newFormInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 256
	in.Width = 48
	in.Placeholder = placeholder
	return in
}

// newTaskForm builds an empty form. projects is the list of selectable project
// display names; it must not be empty (callers fall back to "Default").
func newTaskForm(projects []string) *taskForm {
	if len(projects) == 0 {
		projects = []string{"Default"}
	}

	var priorityOpts, urgencyOpts, stageOpts []string
	priorityOpts = append(priorityOpts, model.DisplayPriority(nil))
	for _, p := range model.AllPriorities {
		priorityOpts = append(priorityOpts, p.Display())
	}
	urgencyOpts = append(urgencyOpts, model.DisplayUrgency(nil))
	for _, u := range model.AllUrgencies {
		urgencyOpts = append(urgencyOpts, u.Display())
	}
	stageOpts = append(stageOpts, model.DisplayStage(nil))
	for _, s := range model.AllStages {
		stageOpts = append(stageOpts, s.Display())
	}
	var kindOpts, statusOpts []string
	for _, k := range model.AllKinds {
		kindOpts = append(kindOpts, k.Display())
	}
	for _, s := range model.AllStatuses {
		statusOpts = append(statusOpts, s.Display())
	}

	f := &taskForm{}
	f.slots[slotTitle] = formSlot{label: "Title *", input: newFormInput("Title")}
	f.slots[slotSummary] = formSlot{label: "Summary", input: newFormInput("")}
	f.slots[slotDescription] = formSlot{label: "Description", input: newFormInput("")}
	f.slots[slotProject] = formSlot{label: "Project", options: projects}
	f.slots[slotTags] = formSlot{label: "Tags (comma-separated)", input: newFormInput("")}
	f.slots[slotDue] = formSlot{label: "Due (YYYY-MM-DD, today, tomorrow, in Nd)", input: newFormInput("")}
	f.slots[slotParent] = formSlot{label: "Parent ID", input: newFormInput("")}
	f.slots[slotIssueLink] = formSlot{label: "Issue Link", input: newFormInput("")}
	f.slots[slotPRLink] = formSlot{label: "PR Link", input: newFormInput("")}
	f.slots[slotArtifacts] = formSlot{label: "Artifacts (comma-separated)", input: newFormInput("")}
	f.slots[slotKind] = formSlot{label: "Kind", options: kindOpts, idx: 2} // Task
	f.slots[slotStatus] = formSlot{label: "Status", options: statusOpts}
	f.slots[slotPriority] = formSlot{label: "Priority Level", options: priorityOpts}
	f.slots[slotUrgency] = formSlot{label: "Urgency", options: urgencyOpts}
	f.slots[slotStage] = formSlot{label: "Process Stage", options: stageOpts}
	f.slots[slotUserStory] = formSlot{label: "User Story", input: newFormInput(""), fullscreen: true}
	f.slots[slotRequirements] = formSlot{label: "Requirements", input: newFormInput(""), fullscreen: true}

	f.setActive(slotTitle)
	return f
}

// newTaskFormForContext seeds an empty form from the browsing context: the
// parent filter becomes the parent field and the kind defaults to the child
// kind of the level being viewed.
func newTaskFormForContext(ctx navContext, projects []string) *taskForm {
	f := newTaskForm(projects)
	if ctx.parentID != nil {
		f.slots[slotParent].setValue(strconv.FormatUint(*ctx.parentID, 10))
	}
	f.slots[slotKind].setValue(model.DefaultChildKind(ctx.level).Display())
	return f
}

// newTaskFormFromTask seeds the form from an existing task for editing.
func newTaskFormFromTask(t model.Task, projects []string) *taskForm {
	f := newTaskForm(projects)
	tt := t
	f.editing = &tt

	f.slots[slotTitle].setValue(t.Title)
	f.slots[slotSummary].setValue(model.StrOr(t.Summary, ""))
	f.slots[slotDescription].setValue(model.StrOr(t.Description, ""))
	if t.Project != nil {
		f.slots[slotProject].setValue(*t.Project)
	}
	f.slots[slotTags].setValue(strings.Join(t.Tags, ","))
	if t.Due != nil {
		f.slots[slotDue].setValue(t.Due.String())
	}
	if t.Parent != nil {
		f.slots[slotParent].setValue(strconv.FormatUint(*t.Parent, 10))
	}
	f.slots[slotIssueLink].setValue(model.StrOr(t.IssueLink, ""))
	f.slots[slotPRLink].setValue(model.StrOr(t.PRLink, ""))
	f.slots[slotArtifacts].setValue(strings.Join(t.Artifacts, ","))
	f.slots[slotKind].setValue(t.Kind.Display())
	f.slots[slotStatus].setValue(t.Status.Display())
	f.slots[slotPriority].setValue(model.DisplayPriority(t.Priority))
	f.slots[slotUrgency].setValue(model.DisplayUrgency(t.Urgency))
	f.slots[slotStage].setValue(model.DisplayStage(t.Stage))
	f.slots[slotUserStory].setValue(model.StrOr(t.UserStory, ""))
	f.slots[slotRequirements].setValue(model.StrOr(t.Requirements, ""))
	return f
}

func (f *taskForm) isEdit() bool { return f.editing != nil }

func (f *taskForm) setActive(i int) {
	for j := range f.slots {
		if !f.slots[j].selector() {
			f.slots[j].input.Blur()
		}
	}
	f.active = i
	if !f.slots[i].selector() {
		f.slots[i].input.Focus()
	}
}

func (f *taskForm) next() { f.setActive((f.active + 1) % slotCount) }

func (f *taskForm) prev() {
	i := f.active - 1
	if i < 0 {
		i = slotCount - 1
	}
	f.setActive(i)
}

// activeFullscreen reports whether enter should open the textarea dialog for
// the focused slot rather than submit the form.
func (f *taskForm) activeFullscreen() bool { return f.slots[f.active].fullscreen }

// handleKey routes a key to the focused slot. Left/right cycle selector slots;
// everything else feeds the focused text input.
func (f *taskForm) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := &f.slots[f.active]
	if s.selector() {
		switch msg.String() {
		case "left", "h":
			s.cycle(false)
		case "right", "l":
			s.cycle(true)
		}
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// selectedKind returns the kind the form currently has dialed in.
func (f *taskForm) selectedKind() model.Kind {
	return model.AllKinds[f.slots[slotKind].idx]
}

func (f *taskForm) selectedProject() string {
	return f.slots[slotProject].value()
}

// materialise validates the form and builds the task it describes. For a new
// task the ID is allocated from db; when editing, identity and creation time
// carry over. Validation failures return errors with user-facing text.
func (f *taskForm) materialise(db *store.DB, today model.Date) (model.Task, error) {
	var t model.Task

	title := strings.TrimSpace(f.slots[slotTitle].value())
	if title == "" {
		return t, errors.New("Title is required")
	}

	now := time.Now().Unix()
	if f.editing != nil {
		t.ID = f.editing.ID
		t.CreatedAtUTC = f.editing.CreatedAtUTC
	} else {
		t.ID = db.NextID()
		t.CreatedAtUTC = now
	}
	t.UpdatedAtUTC = now

	t.Title = title
	t.Summary = model.StrPtr(strings.TrimSpace(f.slots[slotSummary].value()))
	t.Description = model.StrPtr(strings.TrimSpace(f.slots[slotDescription].value()))
	t.UserStory = model.StrPtr(strings.TrimSpace(f.slots[slotUserStory].value()))
	t.Requirements = model.StrPtr(strings.TrimSpace(f.slots[slotRequirements].value()))
	t.IssueLink = model.StrPtr(strings.TrimSpace(f.slots[slotIssueLink].value()))
	t.PRLink = model.StrPtr(strings.TrimSpace(f.slots[slotPRLink].value()))
	t.Tags = model.SplitTags([]string{f.slots[slotTags].value()})
	t.Artifacts = model.SplitList([]string{f.slots[slotArtifacts].value()})
	t.Project = model.StrPtr(f.selectedProject())

	t.Kind = model.AllKinds[f.slots[slotKind].idx]
	t.Status = model.AllStatuses[f.slots[slotStatus].idx]
	if i := f.slots[slotPriority].idx; i > 0 {
		p := model.AllPriorities[i-1]
		t.Priority = &p
	}
	if i := f.slots[slotUrgency].idx; i > 0 {
		u := model.AllUrgencies[i-1]
		t.Urgency = &u
	}
	if i := f.slots[slotStage].idx; i > 0 {
		s := model.AllStages[i-1]
		t.Stage = &s
	}

	if v := strings.TrimSpace(f.slots[slotDue].value()); v != "" {
		d, ok := store.ParseDueInput(v, today)
		if !ok {
			return t, errors.New("Unrecognised due date. Use YYYY-MM-DD, 'today', 'tomorrow', or 'in Nd'.")
		}
		t.Due = &d
	}

	if v := strings.TrimSpace(f.slots[slotParent].value()); v != "" {
		pid, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return t, errors.New("Invalid parent ID")
		}
		if pid == t.ID {
			return t, errors.New("Task cannot be its own parent")
		}
		parent := db.Find(pid)
		if parent == nil {
			return t, fmt.Errorf("Parent ID %d does not exist", pid)
		}
		if !model.ValidChild(parent.Kind, t.Kind) {
			return t, model.HierarchyError(parent.Kind, t.Kind)
		}
		if db.WouldCycle(t.ID, pid) {
			return t, errors.New("Setting parent would create a cycle")
		}
		t.Parent = &pid
	}

	return t, nil
}
