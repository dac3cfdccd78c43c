package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates a file with contents under dir, failing the test on error.
func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestScanReactViteWorkspace(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
  "name": "demo",
  "dependencies": {"react": "^18.2.0"},
  "devDependencies": {"vite": "^5.0.0"}
}`)
	writeFile(t, dir, "vite.config.ts", "export default {}\n")

	signals, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	wantPresent := []struct {
		kind SignalKind
		ref  string
	}{
		{FileExists, "package.json"},
		{FileExists, "vite.config.*"},
		{ManifestKey, "dependencies.react"},
		{ManifestKey, "devDependencies.vite"},
	}
	for _, want := range wantPresent {
		if !signals.Has(want.kind, want.ref) {
			t.Errorf("signal (%s, %s) missing from scan", want.kind, want.ref)
		}
	}

	if signals.Has(ManifestKey, "dependencies.vue") {
		t.Error("signal (manifest_key, dependencies.vue) present, want absent")
	}

	sig, ok := signals.Get(ManifestKey, "dependencies.react")
	if !ok {
		t.Fatal("dependencies.react signal not found")
	}
	if sig.Value != "^18.2.0" {
		t.Errorf("dependencies.react value = %q, want %q", sig.Value, "^18.2.0")
	}
}

func TestScanMalformedManifestDegrades(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{not valid json`)
	writeFile(t, dir, "vite.config.js", "")

	signals, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	// File probes still fire; manifest probes degrade to nothing.
	if !signals.Has(FileExists, "package.json") {
		t.Error("file_exists package.json signal missing")
	}
	if !signals.Has(FileExists, "vite.config.*") {
		t.Error("file_exists vite.config.* signal missing")
	}
	for _, sig := range signals {
		if sig.Kind == ManifestKey {
			t.Errorf("unexpected manifest signal %s from malformed manifest", sig.Ref)
		}
	}
}

func TestScanEmptyWorkspace(t *testing.T) {
	signals, err := Scan(t.TempDir())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(signals) != 0 {
		t.Errorf("Scan of empty dir returned %d signals, want 0", len(signals))
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Scan of missing root returned nil error")
	}
}

func TestScanOneSignalPerFileProbe(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vite.config.js", "")
	writeFile(t, dir, "vite.config.ts", "")

	signals, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	count := 0
	for _, sig := range signals {
		if sig.Kind == FileExists && sig.Ref == "vite.config.*" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("vite.config.* produced %d signals, want 1", count)
	}
}

func TestSplitKeyPath(t *testing.T) {
	tests := []struct {
		in      string
		section string
		name    string
		ok      bool
	}{
		{"dependencies.react", "dependencies", "react", true},
		{"devDependencies.vite", "devDependencies", "vite", true},
		{"dependencies.@angular/core", "dependencies", "@angular/core", true},
		{"noseparator", "", "", false},
		{".leading", "", "", false},
		{"trailing.", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			section, name, ok := splitKeyPath(tt.in)
			if ok != tt.ok {
				t.Fatalf("splitKeyPath(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if section != tt.section || name != tt.name {
				t.Errorf("splitKeyPath(%q) = (%q, %q), want (%q, %q)",
					tt.in, section, name, tt.section, tt.name)
			}
		})
	}
}
