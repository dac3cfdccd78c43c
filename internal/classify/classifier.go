package classify

import "github.com/capsync-labs/capsync/internal/workspace"

// StackUnknown is the stack id of the Unknown profile.
const StackUnknown = "unknown"

// Profile is the classified technology identity of a workspace.
type Profile struct {
	Stack   string              `json:"stack"`
	Layer   string              `json:"layer,omitempty"`
	Score   int                 `json:"score"`
	Matched workspace.SignalSet `json:"matched,omitempty"`
}

// Known reports whether the profile identifies a concrete stack.
func (p Profile) Known() bool {
	return p.Stack != StackUnknown
}

// Unknown is returned when no rule in the table scores above zero.
func Unknown() Profile {
	return Profile{Stack: StackUnknown}
}

// TieBreak selects how equal scores are resolved.
type TieBreak int

const (
	// TieBreakDeclarationOrder keeps the earliest rule in the table.
	// This is the default: the table lists more specific rules first, so
	// declaration order is the documented specificity order.
	TieBreakDeclarationOrder TieBreak = iota

	// TieBreakLexical keeps the rule whose stack id sorts first. Useful
	// when the table is assembled from multiple fragments and declaration
	// order is not meaningful.
	TieBreakLexical
)

// Classifier evaluates an ordered rule table against signal sets.
type Classifier struct {
	Rules    []Rule
	TieBreak TieBreak
}

// NewClassifier returns a classifier over the built-in rule table with the
// declaration-order tie-break.
func NewClassifier() *Classifier {
	return &Classifier{Rules: DefaultRules}
}

// Classify selects the highest-scoring rule for the signal set. A rule
// scores its weight when every required signal is present, zero otherwise.
// Ties resolve per the configured TieBreak policy. No positive score means
// Unknown. The result depends only on the signal set and the table, so
// re-scanning an unchanged workspace yields the same profile.
func (c *Classifier) Classify(signals workspace.SignalSet) Profile {
	best := Unknown()
	for _, rule := range c.Rules {
		score := scoreRule(rule, signals)
		if score == 0 {
			continue
		}
		if score > best.Score {
			best = buildProfile(rule, score, signals)
			continue
		}
		if score == best.Score && c.TieBreak == TieBreakLexical && rule.Stack < best.Stack {
			best = buildProfile(rule, score, signals)
		}
		// Equal score under declaration order: first rule stands.
	}
	return best
}

// scoreRule returns the rule's weight if all requirements are satisfied,
// zero otherwise. Rules do not partially match.
func scoreRule(rule Rule, signals workspace.SignalSet) int {
	for _, req := range rule.Requires {
		if !signals.Has(req.Kind, req.Ref) {
			return 0
		}
	}
	return rule.Weight()
}

func buildProfile(rule Rule, score int, signals workspace.SignalSet) Profile {
	matched := make(workspace.SignalSet, 0, len(rule.Requires))
	for _, req := range rule.Requires {
		if sig, ok := signals.Get(req.Kind, req.Ref); ok {
			matched = append(matched, sig)
		}
	}
	return Profile{
		Stack:   rule.Stack,
		Layer:   rule.Layer,
		Score:   score,
		Matched: matched,
	}
}
