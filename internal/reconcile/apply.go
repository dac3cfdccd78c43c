package reconcile

import (
	"fmt"
	"io"
	"time"

	"github.com/capsync-labs/capsync/internal/registry"
)

// ApproveFunc is called with the computed plan before anything is applied.
// Returning false leaves the module untouched.
type ApproveFunc func(plan []Action) (bool, error)

// Apply writes an action plan through the registry in one atomic update and
// stamps last_sync. Applying a full Diff plan leaves the declared set equal
// to the live set, so re-diffing immediately afterwards yields an empty
// plan.
func Apply(store *registry.Store, key registry.Key, plan []Action, now time.Time) (*registry.Module, error) {
	return store.Update(key, func(m *registry.Module) error {
		libs := m.DeclaredLibraries()
		for _, action := range plan {
			switch action.Kind {
			case ActionAdd, ActionUpdate:
				libs[action.Name] = action.To
			case ActionRemove:
				delete(libs, action.Name)
			default:
				return fmt.Errorf("unknown action kind %q for %s", action.Kind, action.Name)
			}
		}
		m.SetLibraries(libs)
		m.LastSync = now.UTC()
		return nil
	})
}

// Reconcile diffs a module against the live dependency set, asks for
// approval, and applies the plan. The approval callback is the suspension
// point: the pipeline waits on it and a false answer ends the operation
// with no mutation. The applied return reports whether the plan was
// actually written.
func Reconcile(store *registry.Store, key registry.Key, live map[string]string, approve ApproveFunc) (module *registry.Module, plan []Action, applied bool, err error) {
	module, err = store.Lookup(key)
	if err != nil {
		return nil, nil, false, err
	}

	plan = Diff(module.DeclaredLibraries(), live)
	if len(plan) == 0 {
		return module, nil, false, nil
	}

	ok, err := approve(plan)
	if err != nil {
		return nil, plan, false, fmt.Errorf("awaiting sync approval: %w", err)
	}
	if !ok {
		return module, plan, false, nil
	}

	updated, err := Apply(store, key, plan, time.Now())
	if err != nil {
		return nil, plan, false, err
	}
	return updated, plan, true, nil
}

// WritePlan renders the action plan for review.
func WritePlan(w io.Writer, plan []Action) {
	for _, action := range plan {
		fmt.Fprintf(w, "  %s\n", action)
	}
}
