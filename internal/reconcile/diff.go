package reconcile

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// ActionKind discriminates the sync action variants.
type ActionKind string

const (
	ActionAdd    ActionKind = "add"
	ActionUpdate ActionKind = "update"
	ActionRemove ActionKind = "remove"
)

// Direction annotates an update with how the version moved, for the
// reviewer's benefit. Unknown when either side fails to parse as semver.
type Direction string

const (
	DirectionUpgrade   Direction = "upgrade"
	DirectionDowngrade Direction = "downgrade"
	DirectionUnknown   Direction = "unknown"
)

// Action is one proposed change to a module's declared libraries.
type Action struct {
	Kind ActionKind `json:"kind"`
	Name string     `json:"name"`
	// From is the declared version (update and remove).
	From string `json:"from,omitempty"`
	// To is the live version (add and update).
	To string `json:"to,omitempty"`
	// Direction is set on updates only.
	Direction Direction `json:"direction,omitempty"`
}

// String renders the action in plan form.
func (a Action) String() string {
	switch a.Kind {
	case ActionAdd:
		return fmt.Sprintf("+ %s %s", a.Name, a.To)
	case ActionUpdate:
		return fmt.Sprintf("~ %s %s → %s (%s)", a.Name, a.From, a.To, a.Direction)
	case ActionRemove:
		return fmt.Sprintf("- %s %s (proposed removal)", a.Name, a.From)
	default:
		return fmt.Sprintf("? %s", a.Name)
	}
}

// Diff computes the ordered action plan between the declared library map D
// and the live dependency map L: additions (L \ D) first so a reviewer sees
// new capability needs before deletions, then version updates (D ∩ L with
// differing versions), then proposed removals (D \ L). Each group is
// name-sorted, so the plan is deterministic for a given pair of sets.
func Diff(declared, live map[string]string) []Action {
	var adds, updates, removes []Action

	for _, name := range sortedNames(live) {
		liveVersion := live[name]
		declaredVersion, ok := declared[name]
		if !ok {
			adds = append(adds, Action{Kind: ActionAdd, Name: name, To: liveVersion})
			continue
		}
		if declaredVersion != liveVersion {
			updates = append(updates, Action{
				Kind:      ActionUpdate,
				Name:      name,
				From:      declaredVersion,
				To:        liveVersion,
				Direction: direction(declaredVersion, liveVersion),
			})
		}
	}

	for _, name := range sortedNames(declared) {
		if _, ok := live[name]; !ok {
			removes = append(removes, Action{Kind: ActionRemove, Name: name, From: declared[name]})
		}
	}

	plan := make([]Action, 0, len(adds)+len(updates)+len(removes))
	plan = append(plan, adds...)
	plan = append(plan, updates...)
	plan = append(plan, removes...)
	return plan
}

// direction classifies a version change using semver comparison.
func direction(from, to string) Direction {
	fromV, err := semver.NewVersion(from)
	if err != nil {
		return DirectionUnknown
	}
	toV, err := semver.NewVersion(to)
	if err != nil {
		return DirectionUnknown
	}

	switch fromV.Compare(toV) {
	case -1:
		return DirectionUpgrade
	case 1:
		return DirectionDowngrade
	default:
		return DirectionUnknown
	}
}

func sortedNames(set map[string]string) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
