package lifecycle

import (
	"fmt"
	"time"

	"github.com/capsync-labs/capsync/internal/classify"
	"github.com/capsync-labs/capsync/internal/registry"
	"github.com/capsync-labs/capsync/internal/workspace"
	"github.com/google/uuid"
)

// initialVersion is the header version given to newly generated modules.
const initialVersion = "0.1.0"

// Proposal is the drafted plan for a new capability module, presented to
// the approver before anything is generated or inserted.
type Proposal struct {
	ID           string                  `json:"id"`
	Key          registry.Key            `json:"key"`
	ModuleName   string                  `json:"module_name"`
	Version      string                  `json:"version"`
	Profile      classify.Profile        `json:"profile"`
	Dependencies workspace.DependencySet `json:"dependencies"`
	DraftedAt    time.Time               `json:"drafted_at"`
}

// Draft creates a proposal for the classified stack and suspends the
// machine at AwaitingApproval. Drafting requires a known profile and a
// registry miss; the caller has already observed both.
func (m *Manager) Draft(profile classify.Profile, deps workspace.DependencySet) (*Proposal, error) {
	if !profile.Known() {
		return nil, fmt.Errorf("cannot draft a proposal for an unknown stack")
	}

	if err := m.transition(StateProposalDrafted); err != nil {
		return nil, err
	}

	m.proposal = &Proposal{
		ID:           uuid.NewString(),
		Key:          registry.Key{Layer: profile.Layer, Stack: profile.Stack},
		ModuleName:   profile.Stack + "-" + profile.Layer,
		Version:      initialVersion,
		Profile:      profile,
		Dependencies: deps,
		DraftedAt:    time.Now().UTC(),
	}

	if err := m.transition(StateAwaitingApproval); err != nil {
		return nil, err
	}

	return m.proposal, nil
}
