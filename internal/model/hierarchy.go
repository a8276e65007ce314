package model

import "fmt"

// ValidChild reports whether a task of childKind may sit under a parent of
// parentKind. Subtasks may nest under each other; Milestones take no part
// in the hierarchy.
func ValidChild(parentKind, childKind Kind) bool {
	switch parentKind {
	case KindProduct:
		return childKind == KindEpic
	case KindEpic:
		return childKind == KindTask
	case KindTask:
		return childKind == KindSubtask
	case KindSubtask:
		return childKind == KindSubtask
	}
	return false
}

// HierarchyError describes an invalid parent/child pairing.
func HierarchyError(parentKind, childKind Kind) error {
	return fmt.Errorf("Invalid hierarchy: %s cannot be child of %s. Valid hierarchy: Product > Epic > Task > Subtask",
		childKind.Display(), parentKind.Display())
}

// ChildKind is the level reached by drilling down from k. Subtask and
// Milestone have no child level.
func ChildKind(k Kind) (Kind, bool) {
	switch k {
	case KindProduct:
		return KindEpic, true
	case KindEpic:
		return KindTask, true
	case KindTask:
		return KindSubtask, true
	}
	return "", false
}

// DefaultChildKind picks the kind a new task created while browsing level k
// should default to.
func DefaultChildKind(k Kind) Kind {
	switch k {
	case KindProduct:
		return KindEpic
	case KindEpic:
		return KindTask
	case KindTask, KindSubtask:
		return KindSubtask
	}
	return KindTask
}

// LevelIndex is k's position in the browse order, AllKinds.
func LevelIndex(k Kind) int {
	for i, kind := range AllKinds {
		if kind == k {
			return i
		}
	}
	return 0
}

// StepLevel moves one level through the browse order, clamping at the ends.
// The second result is false when already at the boundary. levels is the
// number of leading AllKinds entries in play (the board excludes Milestone).
func StepLevel(k Kind, forward bool, levels int) (Kind, bool) {
	if levels <= 0 || levels > len(AllKinds) {
		levels = len(AllKinds)
	}
	i := LevelIndex(k)
	if forward {
		if i+1 >= levels {
			return k, false
		}
		return AllKinds[i+1], true
	}
	if i == 0 {
		return k, false
	}
	return AllKinds[i-1], true
}
