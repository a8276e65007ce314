package model

import "testing"

func TestValidChild(t *testing.T) {
	valid := map[[2]Kind]bool{
		{KindProduct, KindEpic}:    true,
		{KindEpic, KindTask}:       true,
		{KindTask, KindSubtask}:    true,
		{KindSubtask, KindSubtask}: true,
	}
	for _, parent := range AllKinds {
		for _, child := range AllKinds {
			want := valid[[2]Kind{parent, child}]
			if got := ValidChild(parent, child); got != want {
				t.Fatalf("ValidChild(%s, %s) = %v, want %v", parent, child, got, want)
			}
		}
	}
}

func TestChildKind(t *testing.T) {
	cases := []struct {
		in   Kind
		want Kind
		ok   bool
	}{
		{KindProduct, KindEpic, true},
		{KindEpic, KindTask, true},
		{KindTask, KindSubtask, true},
		{KindSubtask, "", false},
		{KindMilestone, "", false},
	}
	for _, tc := range cases {
		got, ok := ChildKind(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ChildKind(%s) = %q, %v", tc.in, got, ok)
		}
	}
}

func TestStepLevelClampsAtEnds(t *testing.T) {
	if _, ok := StepLevel(KindProduct, false, 0); ok {
		t.Fatalf("expected clamp stepping back from product")
	}
	if _, ok := StepLevel(KindMilestone, true, 0); ok {
		t.Fatalf("expected clamp stepping forward from milestone")
	}
	if got, ok := StepLevel(KindProduct, true, 0); !ok || got != KindEpic {
		t.Fatalf("StepLevel(product, fwd) = %s, %v", got, ok)
	}
	if got, ok := StepLevel(KindSubtask, true, 5); !ok || got != KindMilestone {
		t.Fatalf("StepLevel(subtask, fwd, 5) = %s, %v", got, ok)
	}
	// With four levels in play the walk ends at subtask.
	if _, ok := StepLevel(KindSubtask, true, 4); ok {
		t.Fatalf("expected clamp at subtask when milestone is out of play")
	}
	if got, ok := StepLevel(KindEpic, false, 4); !ok || got != KindProduct {
		t.Fatalf("StepLevel(epic, back, 4) = %s, %v", got, ok)
	}
}
