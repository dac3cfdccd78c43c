package workspace

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DependencySet holds the live (name, version) pairs detected from the
// workspace manifest. It is recomputed on every invocation and never
// persisted.
type DependencySet map[string]string

// Names returns the dependency names in sorted order.
func (d DependencySet) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DetectDependencies computes the live dependency set for a workspace.
// package.json is the primary source (dependencies plus devDependencies,
// with dependencies taking precedence on conflict); go.mod is consulted
// when no package.json exists. A workspace with neither yields an empty
// set, not an error.
func DetectDependencies(root string) DependencySet {
	if deps, ok := npmDependencies(root); ok {
		return deps
	}
	if deps, ok := goDependencies(root); ok {
		return deps
	}
	return DependencySet{}
}

// npmDependencies reads package.json and merges its dependency sections.
func npmDependencies(root string) (DependencySet, bool) {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return nil, false
	}

	var m npmManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}

	deps := DependencySet{}
	for name, version := range m.DevDependencies {
		deps[name] = cleanVersion(version)
	}
	for name, version := range m.Dependencies {
		deps[name] = cleanVersion(version)
	}
	return deps, true
}

// goDependencies extracts direct requirements from go.mod. Indirect
// requirements are skipped.
func goDependencies(root string) (DependencySet, bool) {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return nil, false
	}

	deps := DependencySet{}
	inBlock := false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "require (":
			inBlock = true
			continue
		case inBlock && line == ")":
			inBlock = false
			continue
		}

		var entry string
		if inBlock {
			entry = line
		} else if rest, ok := strings.CutPrefix(line, "require "); ok {
			entry = rest
		} else {
			continue
		}

		if strings.Contains(entry, "// indirect") {
			continue
		}

		fields := strings.Fields(entry)
		if len(fields) < 2 {
			continue
		}
		deps[fields[0]] = fields[1]
	}

	return deps, true
}

// cleanVersion strips npm range operators so declared and detected versions
// compare on the same form ("^18.2.0" → "18.2.0").
func cleanVersion(v string) string {
	return strings.TrimLeft(v, "^~=v")
}
