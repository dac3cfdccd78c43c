package router

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed triggers.yaml
var defaultTriggers []byte

// TriggerRule maps a request-text pattern to a capability category.
type TriggerRule struct {
	Pattern  string `yaml:"pattern" json:"pattern"`
	Category string `yaml:"category" json:"category"`
	Priority int    `yaml:"priority" json:"priority"`
}

// Decision is the outcome of matching a request against the trigger table.
type Decision struct {
	Category string      `json:"category"`
	Matched  TriggerRule `json:"matched"`
}

// Table is a trigger table, loaded once at startup and read-only at
// runtime.
type Table struct {
	rules []TriggerRule
}

// tableFile is the YAML shape of a trigger table document.
type tableFile struct {
	Rules []TriggerRule `yaml:"rules"`
}

// NewTable builds a table from rules, ordering them by descending priority.
// The sort is stable, so equal priorities keep their declared order. Rules
// with an empty pattern or category are dropped: an empty pattern is a
// substring of everything and would swallow all requests.
func NewTable(rules []TriggerRule) *Table {
	ordered := make([]TriggerRule, 0, len(rules))
	for _, rule := range rules {
		if strings.TrimSpace(rule.Pattern) == "" || rule.Category == "" {
			continue
		}
		ordered = append(ordered, rule)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})
	return &Table{rules: ordered}
}

// DefaultTable returns the embedded built-in trigger table.
func DefaultTable() *Table {
	var doc tableFile
	// The embedded table is validated by tests; a broken build falls back
	// to an empty table that routes everything to NoMatch.
	_ = yaml.Unmarshal(defaultTriggers, &doc)
	return NewTable(doc.Rules)
}

// LoadTable reads a trigger table from a YAML file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trigger table %s: %w", path, err)
	}

	var doc tableFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing trigger table %s: %w", path, err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("trigger table %s declares no rules", path)
	}

	return NewTable(doc.Rules), nil
}

// Rules returns the table's rules in evaluation order.
func (t *Table) Rules() []TriggerRule {
	return t.rules
}

// Route matches request text against the table. Rules are evaluated in
// priority order and the first satisfied rule wins; evaluation stops there.
// The second return is false when no rule matches, in which case the caller
// should request clarification rather than guess a category.
func (t *Table) Route(text string) (Decision, bool) {
	normalized := normalize(text)
	if normalized == "" {
		return Decision{}, false
	}

	for _, rule := range t.rules {
		if strings.Contains(normalized, normalize(rule.Pattern)) {
			return Decision{Category: rule.Category, Matched: rule}, true
		}
	}
	return Decision{}, false
}

// normalize lower-cases and trims request text for matching.
func normalize(text string) string {
	return strings.TrimSpace(strings.ToLower(text))
}
