package lifecycle

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/capsync-labs/capsync/internal/registry"
)

//go:embed templates/module.md.tmpl
var defaultTemplate string

// placeholderPattern matches {{NAME}}-style placeholders in a template.
var placeholderPattern = regexp.MustCompile(`\{\{([A-Z][A-Z0-9_]*)\}\}`)

// TemplateError reports placeholders that could not be resolved during
// generation. It is surfaced verbatim to the approver; the machine reverts
// to AwaitingApproval and no module is inserted.
type TemplateError struct {
	Missing []string
}

func (e *TemplateError) Error() string {
	return "unresolved template placeholders: " + strings.Join(e.Missing, ", ")
}

// Generate fills the module template from the approved proposal and inserts
// the finished module into the registry. On any failure the machine reverts
// to AwaitingApproval with nothing written; success terminates at Created
// after exactly one insert.
func (m *Manager) Generate() (*registry.Module, error) {
	if err := m.transition(StateGenerating); err != nil {
		return nil, err
	}

	p := m.proposal

	tmpl := m.Template
	if tmpl == "" {
		tmpl = defaultTemplate
	}

	payload, err := fillTemplate(tmpl, templateVars(p))
	if err != nil {
		// Revert so the approver can fix the template and re-approve.
		if terr := m.transition(StateAwaitingApproval); terr != nil {
			return nil, terr
		}
		return nil, err
	}

	module := &registry.Module{
		Key:      p.Key,
		Name:     p.ModuleName,
		Version:  p.Version,
		Created:  p.DraftedAt,
		LastSync: p.DraftedAt,
		Stack:    stackComponents(p.Key.Stack),
		Payload:  payload,
	}
	module.SetLibraries(p.Dependencies)

	if err := m.store.Insert(module); err != nil {
		if terr := m.transition(StateAwaitingApproval); terr != nil {
			return nil, terr
		}
		return nil, err
	}

	if err := m.transition(StateCreated); err != nil {
		return nil, err
	}
	return module, nil
}

// templateVars builds the substitution set from the proposal.
func templateVars(p *Proposal) map[string]string {
	return map[string]string{
		"NAME":      p.ModuleName,
		"VERSION":   p.Version,
		"STACK":     p.Key.Stack,
		"LAYER":     p.Key.Layer,
		"CREATED":   p.DraftedAt.Format("2006-01-02"),
		"LIBRARIES": renderLibraries(p),
	}
}

// renderLibraries formats the detected dependency set as a markdown list,
// canonicalizing versions through semver where they parse.
func renderLibraries(p *Proposal) string {
	names := p.Dependencies.Names()
	if len(names) == 0 {
		return "- (none detected)"
	}

	lines := make([]string, 0, len(names))
	for _, name := range names {
		version := p.Dependencies[name]
		if v, err := semver.NewVersion(version); err == nil {
			version = v.String()
		}
		lines = append(lines, fmt.Sprintf("- `%s` %s", name, version))
	}
	return strings.Join(lines, "\n")
}

// fillTemplate substitutes every placeholder, failing with a TemplateError
// naming each unresolved one. Substitution is all or nothing.
func fillTemplate(tmpl string, vars map[string]string) (string, error) {
	missing := map[string]bool{}

	out := placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := vars[name]
		if !ok {
			missing[name] = true
			return match
		}
		return value
	})

	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for name := range missing {
			names = append(names, name)
		}
		sort.Strings(names)
		return "", &TemplateError{Missing: names}
	}

	return out, nil
}

// stackComponents splits a compound stack id ("react-vite") into its header
// stack list entries.
func stackComponents(stack string) []string {
	return strings.Split(stack, "-")
}
