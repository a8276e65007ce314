package tui

import (
	"fmt"

	"strata-cli/internal/model"
)

// navContext identifies which slice of the hierarchy a view is showing: one
// kind, optionally narrowed to the children of a single parent task.
type navContext struct {
	level       model.Kind
	parentID    *uint64
	parentTitle string
}

func allAt(level model.Kind) navContext {
	return navContext{level: level}
}

func filteredBy(level model.Kind, parentID uint64, parentTitle string) navContext {
	id := parentID
	return navContext{level: level, parentID: &id, parentTitle: parentTitle}
}

func (c navContext) filtered() bool { return c.parentID != nil }

// displayName renders the context for breadcrumbs and status lines, e.g.
// "All Epics" or "All Epics for Product 3 Checkout revamp".
func (c navContext) displayName() string {
	if c.parentID == nil {
		return fmt.Sprintf("All %ss", c.level.Display())
	}
	parentType := "Parent"
	switch c.level {
	case model.KindEpic:
		parentType = "Product"
	case model.KindTask:
		parentType = "Epic"
	case model.KindSubtask:
		parentType = "Task"
	}
	return fmt.Sprintf("All %ss for %s %d %s", c.level.Display(), parentType, *c.parentID, c.parentTitle)
}

// matches reports whether t belongs to this context.
func (c navContext) matches(t model.Task) bool {
	if t.Kind != c.level {
		return false
	}
	if c.parentID == nil {
		return true
	}
	return t.Parent != nil && *t.Parent == *c.parentID
}
