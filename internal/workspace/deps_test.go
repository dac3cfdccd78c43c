package workspace

import (
	"testing"
)

func TestDetectDependenciesFromPackageJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
  "dependencies": {"react": "^18.2.0", "react-dom": "18.2.0"},
  "devDependencies": {"vite": "~5.0.0", "react": "17.0.0"}
}`)

	deps := DetectDependencies(dir)

	if got, want := deps["react-dom"], "18.2.0"; got != want {
		t.Errorf("react-dom = %q, want %q", got, want)
	}
	if got, want := deps["vite"], "5.0.0"; got != want {
		t.Errorf("vite = %q, want %q (range prefix stripped)", got, want)
	}
	// dependencies wins over devDependencies on conflict.
	if got, want := deps["react"], "18.2.0"; got != want {
		t.Errorf("react = %q, want %q", got, want)
	}
}

func TestDetectDependenciesFromGoMod(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", `module example.com/demo

go 1.22

require (
	github.com/spf13/cobra v1.8.0
	gopkg.in/yaml.v3 v3.0.1
)

require github.com/spf13/pflag v1.0.5 // indirect
`)

	deps := DetectDependencies(dir)

	if got, want := deps["github.com/spf13/cobra"], "v1.8.0"; got != want {
		t.Errorf("cobra = %q, want %q", got, want)
	}
	if got, want := deps["gopkg.in/yaml.v3"], "v3.0.1"; got != want {
		t.Errorf("yaml = %q, want %q", got, want)
	}
	if _, ok := deps["github.com/spf13/pflag"]; ok {
		t.Error("indirect requirement detected, want skipped")
	}
}

func TestDetectDependenciesPrefersPackageJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"dependencies": {"express": "4.18.0"}}`)
	writeFile(t, dir, "go.mod", "module x\n\nrequire github.com/spf13/cobra v1.8.0\n")

	deps := DetectDependencies(dir)

	if _, ok := deps["express"]; !ok {
		t.Error("express missing, want package.json as primary source")
	}
	if _, ok := deps["github.com/spf13/cobra"]; ok {
		t.Error("go.mod consulted despite package.json being present")
	}
}

func TestDetectDependenciesEmptyWorkspace(t *testing.T) {
	deps := DetectDependencies(t.TempDir())
	if len(deps) != 0 {
		t.Errorf("empty workspace produced %d dependencies, want 0", len(deps))
	}
}

func TestDependencySetNamesSorted(t *testing.T) {
	deps := DependencySet{"zeta": "1", "alpha": "2", "mid": "3"}
	names := deps.Names()

	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("Names() returned %d entries, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
