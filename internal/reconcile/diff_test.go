package reconcile

import (
	"testing"
)

func TestDiffScenario(t *testing.T) {
	// Declared {a:1, b:2} against live {b:3, c:1} must produce
	// Add(c,1), Update(b,2→3), Remove(a) in exactly that order.
	declared := map[string]string{"a": "1.0.0", "b": "2.0.0"}
	live := map[string]string{"b": "3.0.0", "c": "1.0.0"}

	plan := Diff(declared, live)

	if len(plan) != 3 {
		t.Fatalf("plan has %d actions, want 3: %v", len(plan), plan)
	}

	if plan[0].Kind != ActionAdd || plan[0].Name != "c" || plan[0].To != "1.0.0" {
		t.Errorf("plan[0] = %v, want Add(c, 1.0.0)", plan[0])
	}
	if plan[1].Kind != ActionUpdate || plan[1].Name != "b" || plan[1].From != "2.0.0" || plan[1].To != "3.0.0" {
		t.Errorf("plan[1] = %v, want Update(b, 2.0.0 → 3.0.0)", plan[1])
	}
	if plan[2].Kind != ActionRemove || plan[2].Name != "a" || plan[2].From != "1.0.0" {
		t.Errorf("plan[2] = %v, want Remove(a)", plan[2])
	}
}

func TestDiffEmptyWhenEqual(t *testing.T) {
	set := map[string]string{"react": "18.2.0", "vite": "5.0.0"}
	if plan := Diff(set, set); len(plan) != 0 {
		t.Errorf("diff of identical sets has %d actions, want 0", len(plan))
	}
}

func TestDiffGroupOrderAndSorting(t *testing.T) {
	declared := map[string]string{"keep": "1.0.0", "z-gone": "1.0.0", "a-gone": "1.0.0"}
	live := map[string]string{"keep": "1.0.0", "z-new": "1.0.0", "a-new": "1.0.0"}

	plan := Diff(declared, live)

	wantNames := []string{"a-new", "z-new", "a-gone", "z-gone"}
	if len(plan) != len(wantNames) {
		t.Fatalf("plan has %d actions, want %d", len(plan), len(wantNames))
	}
	for i, want := range wantNames {
		if plan[i].Name != want {
			t.Errorf("plan[%d].Name = %q, want %q", i, plan[i].Name, want)
		}
	}

	// Adds come before removes.
	if plan[0].Kind != ActionAdd || plan[3].Kind != ActionRemove {
		t.Errorf("group order wrong: %v", plan)
	}
}

func TestDiffAddRemoveDisjoint(t *testing.T) {
	declared := map[string]string{"a": "1", "b": "2", "c": "3"}
	live := map[string]string{"b": "2", "d": "4"}

	plan := Diff(declared, live)

	added := map[string]bool{}
	removed := map[string]bool{}
	for _, action := range plan {
		switch action.Kind {
		case ActionAdd:
			added[action.Name] = true
		case ActionRemove:
			removed[action.Name] = true
		}
	}

	for name := range added {
		if removed[name] {
			t.Errorf("%q is both added and removed", name)
		}
	}
}

func TestDiffNameCorrectness(t *testing.T) {
	// (D \ ToRemove) ∪ ToAdd must equal L on names.
	declared := map[string]string{"a": "1.0.0", "b": "2.0.0", "e": "1.0.0"}
	live := map[string]string{"b": "3.0.0", "c": "1.0.0", "e": "1.0.0"}

	result := map[string]bool{}
	for name := range declared {
		result[name] = true
	}
	for _, action := range Diff(declared, live) {
		switch action.Kind {
		case ActionAdd:
			result[action.Name] = true
		case ActionRemove:
			delete(result, action.Name)
		}
	}

	if len(result) != len(live) {
		t.Fatalf("result has %d names, live has %d", len(result), len(live))
	}
	for name := range live {
		if !result[name] {
			t.Errorf("%q missing from reconciled name set", name)
		}
	}
}

func TestUpdateDirection(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want Direction
	}{
		{"upgrade", "1.0.0", "2.0.0", DirectionUpgrade},
		{"downgrade", "2.1.0", "2.0.9", DirectionDowngrade},
		{"non-semver from", "latest", "2.0.0", DirectionUnknown},
		{"non-semver to", "1.0.0", "workspace:*", DirectionUnknown},
		{"v prefix", "v1.0.0", "v1.1.0", DirectionUpgrade},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := direction(tt.from, tt.to); got != tt.want {
				t.Errorf("direction(%q, %q) = %s, want %s", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{Action{Kind: ActionAdd, Name: "c", To: "1.0.0"}, "+ c 1.0.0"},
		{Action{Kind: ActionUpdate, Name: "b", From: "2.0.0", To: "3.0.0", Direction: DirectionUpgrade}, "~ b 2.0.0 → 3.0.0 (upgrade)"},
		{Action{Kind: ActionRemove, Name: "a", From: "1.0.0"}, "- a 1.0.0 (proposed removal)"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
