package classify

import (
	"testing"

	"github.com/capsync-labs/capsync/internal/workspace"
)

func sig(kind workspace.SignalKind, ref string) workspace.Signal {
	return workspace.Signal{Kind: kind, Ref: ref}
}

func TestClassifyReactVite(t *testing.T) {
	signals := workspace.SignalSet{
		sig(workspace.FileExists, "package.json"),
		sig(workspace.FileExists, "vite.config.*"),
		sig(workspace.ManifestKey, "dependencies.react"),
	}

	profile := NewClassifier().Classify(signals)

	if profile.Stack != "react-vite" {
		t.Fatalf("Stack = %q, want %q", profile.Stack, "react-vite")
	}
	if profile.Layer != "frontend" {
		t.Errorf("Layer = %q, want %q", profile.Layer, "frontend")
	}
	if profile.Score != 2 {
		t.Errorf("Score = %d, want 2", profile.Score)
	}
	if len(profile.Matched) != 2 {
		t.Errorf("Matched has %d signals, want 2", len(profile.Matched))
	}
}

func TestClassifyTable(t *testing.T) {
	tests := []struct {
		name    string
		signals workspace.SignalSet
		stack   string
	}{
		{
			"next outranks vite",
			workspace.SignalSet{
				sig(workspace.FileExists, "package.json"),
				sig(workspace.FileExists, "next.config.*"),
				sig(workspace.FileExists, "vite.config.*"),
				sig(workspace.ManifestKey, "dependencies.next"),
				sig(workspace.ManifestKey, "dependencies.react"),
			},
			"react-next",
		},
		{
			"bare package.json is node",
			workspace.SignalSet{sig(workspace.FileExists, "package.json")},
			"node",
		},
		{
			"express over bare node",
			workspace.SignalSet{
				sig(workspace.FileExists, "package.json"),
				sig(workspace.ManifestKey, "dependencies.express"),
			},
			"node-express",
		},
		{
			"go module",
			workspace.SignalSet{sig(workspace.FileExists, "go.mod")},
			"go",
		},
		{
			"no signals",
			workspace.SignalSet{},
			StackUnknown,
		},
		{
			"unmatched signal",
			workspace.SignalSet{sig(workspace.FileExists, "Dockerfile")},
			StackUnknown,
		},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := c.Classify(tt.signals)
			if profile.Stack != tt.stack {
				t.Errorf("Classify() stack = %q, want %q", profile.Stack, tt.stack)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	signals := workspace.SignalSet{
		sig(workspace.FileExists, "vite.config.*"),
		sig(workspace.FileExists, "package.json"),
		sig(workspace.ManifestKey, "dependencies.react"),
	}

	c := NewClassifier()
	first := c.Classify(signals)
	for i := 0; i < 10; i++ {
		again := c.Classify(signals)
		if again.Stack != first.Stack || again.Score != first.Score {
			t.Fatalf("call %d classified %q/%d, first call %q/%d",
				i, again.Stack, again.Score, first.Stack, first.Score)
		}
	}
}

func TestTieBreakDeclarationOrder(t *testing.T) {
	// Two rules with identical weight matching the same signal set: the
	// earlier declaration wins.
	rules := []Rule{
		{Stack: "zeta", Layer: "backend", Requires: []Requirement{fileExists("go.mod")}},
		{Stack: "alpha", Layer: "backend", Requires: []Requirement{fileExists("go.mod")}},
	}
	signals := workspace.SignalSet{sig(workspace.FileExists, "go.mod")}

	c := &Classifier{Rules: rules}
	if got := c.Classify(signals).Stack; got != "zeta" {
		t.Errorf("declaration-order tie-break selected %q, want %q", got, "zeta")
	}

	c = &Classifier{Rules: rules, TieBreak: TieBreakLexical}
	if got := c.Classify(signals).Stack; got != "alpha" {
		t.Errorf("lexical tie-break selected %q, want %q", got, "alpha")
	}
}

func TestRulesDoNotPartiallyMatch(t *testing.T) {
	// vite.config.* present but no react dependency: the react-vite rule
	// must score zero, not one.
	signals := workspace.SignalSet{
		sig(workspace.FileExists, "vite.config.*"),
	}

	profile := NewClassifier().Classify(signals)
	if profile.Stack == "react-vite" {
		t.Error("react-vite matched with only one of two required signals")
	}
}

func TestUnknownProfile(t *testing.T) {
	p := Unknown()
	if p.Known() {
		t.Error("Unknown().Known() = true, want false")
	}
	if p.Score != 0 {
		t.Errorf("Unknown().Score = %d, want 0", p.Score)
	}
}
