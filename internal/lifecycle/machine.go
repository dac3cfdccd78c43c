package lifecycle

import (
	"fmt"

	"github.com/capsync-labs/capsync/internal/registry"
)

// State is a node in the module-creation state machine.
type State string

const (
	StateNotFound         State = "not_found"
	StateProposalDrafted  State = "proposal_drafted"
	StateAwaitingApproval State = "awaiting_approval"
	StateApproved         State = "approved"
	StateGenerating       State = "generating"
	StateCreated          State = "created"
	StateRejected         State = "rejected"
	StateCancelled        State = "cancelled"
)

// transitions is the full transition relation. Anything not listed is an
// invalid transition. Generating may fall back to AwaitingApproval when a
// template placeholder cannot be resolved.
var transitions = map[State][]State{
	StateNotFound:         {StateProposalDrafted},
	StateProposalDrafted:  {StateAwaitingApproval},
	StateAwaitingApproval: {StateApproved, StateRejected},
	StateApproved:         {StateGenerating},
	StateGenerating:       {StateCreated, StateAwaitingApproval},
	StateRejected:         {StateCancelled},
	StateCreated:          {},
	StateCancelled:        {},
}

// Manager drives one missing-module creation from proposal to registry
// insert. A manager handles a single key and is not reused after reaching
// Created or Cancelled.
type Manager struct {
	store *registry.Store

	// Template overrides the embedded payload template when non-empty.
	Template string

	state    State
	proposal *Proposal
}

// NewManager returns a manager in the NotFound state, ready to draft a
// proposal for a classified stack with no registry entry.
func NewManager(store *registry.Store) *Manager {
	return &Manager{
		store: store,
		state: StateNotFound,
	}
}

// State returns the machine's current state.
func (m *Manager) State() State {
	return m.state
}

// Proposal returns the drafted proposal, or nil before Draft.
func (m *Manager) Proposal() *Proposal {
	return m.proposal
}

// transition moves to the target state, or fails if the move is not in the
// transition relation.
func (m *Manager) transition(to State) error {
	for _, allowed := range transitions[m.state] {
		if allowed == to {
			m.state = to
			return nil
		}
	}
	return fmt.Errorf("invalid lifecycle transition %s → %s", m.state, to)
}

// Approve records the external approval decision. Only valid while the
// machine is suspended at AwaitingApproval.
func (m *Manager) Approve() error {
	return m.transition(StateApproved)
}

// Reject records the external rejection decision and terminates the
// machine at Cancelled.
func (m *Manager) Reject() error {
	if err := m.transition(StateRejected); err != nil {
		return err
	}
	return m.transition(StateCancelled)
}
