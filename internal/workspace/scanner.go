package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// fileProbes are the file-presence checks run on every scan. Patterns use
// filepath.Match syntax and are evaluated against entries in the workspace
// root only; each probe is a single directory listing, never a walk.
var fileProbes = []string{
	"package.json",
	"vite.config.*",
	"next.config.*",
	"nuxt.config.*",
	"svelte.config.*",
	"angular.json",
	"tsconfig.json",
	"go.mod",
	"Cargo.toml",
	"pyproject.toml",
	"requirements.txt",
	"pom.xml",
	"build.gradle",
	"Dockerfile",
}

// manifestKeyProbes are the dotted key paths checked against the workspace
// dependency manifest (package.json).
var manifestKeyProbes = []string{
	"dependencies.react",
	"dependencies.vue",
	"dependencies.next",
	"dependencies.nuxt",
	"dependencies.svelte",
	"dependencies.express",
	"dependencies.fastify",
	"dependencies.@angular/core",
	"devDependencies.vite",
	"devDependencies.typescript",
	"devDependencies.webpack",
}

// npmManifest is the subset of package.json the scanner reads. Everything
// else in the file is ignored.
type npmManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Scan inspects the workspace root and returns the signal set. The only
// error case is an unusable root; individual probe failures (including an
// unreadable or malformed manifest) degrade to absent signals.
func Scan(root string) (SignalSet, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning workspace %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning workspace %s: not a directory", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading workspace %s: %w", root, err)
	}

	var set SignalSet

	// File-presence probes.
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, pattern := range fileProbes {
		for _, name := range names {
			ok, err := filepath.Match(pattern, name)
			if err != nil {
				break // bad pattern, skip probe
			}
			if ok {
				set = append(set, Signal{Kind: FileExists, Ref: pattern, Value: name})
				break // one signal per probe
			}
		}
	}

	// Manifest-key probes. A missing or malformed manifest yields zero
	// ManifestKey signals, not a scan failure.
	manifest, ok := readManifest(root)
	if !ok {
		return set, nil
	}

	for _, keyPath := range manifestKeyProbes {
		if value, present := lookupKey(manifest, keyPath); present {
			set = append(set, Signal{Kind: ManifestKey, Ref: keyPath, Value: value})
		}
	}

	return set, nil
}

// readManifest reads and parses package.json from the workspace root.
func readManifest(root string) (*npmManifest, bool) {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return nil, false
	}
	var m npmManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}
	return &m, true
}

// lookupKey resolves a dotted key path ("dependencies.react") against the
// parsed manifest. Only the two dependency sections are addressable; the
// scanner treats the rest of the manifest as opaque.
func lookupKey(m *npmManifest, keyPath string) (string, bool) {
	section, name, ok := splitKeyPath(keyPath)
	if !ok {
		return "", false
	}

	switch section {
	case "dependencies":
		v, present := m.Dependencies[name]
		return v, present
	case "devDependencies":
		v, present := m.DevDependencies[name]
		return v, present
	default:
		return "", false
	}
}

// splitKeyPath splits "section.name" at the first dot. Package names may
// themselves contain dots or slashes (e.g. "@angular/core"), so only the
// first separator is significant.
func splitKeyPath(keyPath string) (section, name string, ok bool) {
	for i := 0; i < len(keyPath); i++ {
		if keyPath[i] == '.' {
			if i == 0 || i == len(keyPath)-1 {
				return "", "", false
			}
			return keyPath[:i], keyPath[i+1:], true
		}
	}
	return "", "", false
}
