package registry

import (
	"errors"
	"sort"
	"time"
)

// Sentinel errors for registry operations.
var (
	// ErrNotFound is returned by Lookup and Update when no module exists
	// for the key.
	ErrNotFound = errors.New("capability module not found")

	// ErrConflict is returned by Insert when a module already exists for
	// the key. There is no silent overwrite; callers retry with Update.
	ErrConflict = errors.New("capability module already registered")
)

// Key identifies a capability module by layer and stack. At most one module
// exists per key.
type Key struct {
	Layer string `json:"layer"`
	Stack string `json:"stack"`
}

// String returns the key in "layer/stack" form, which is also the module's
// directory path relative to the registry root.
func (k Key) String() string {
	return k.Layer + "/" + k.Stack
}

// Library is one declared library reference in a module header.
type Library struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}

// Module is a registered capability module: the parsed header block plus
// the opaque payload. The header is the only part the engine reads or
// writes; the payload round-trips untouched.
type Module struct {
	Key Key `yaml:"-" json:"key"`

	Name      string    `yaml:"name" json:"name"`
	Version   string    `yaml:"version" json:"version"`
	Created   time.Time `yaml:"created" json:"created"`
	LastSync  time.Time `yaml:"last_sync" json:"last_sync"`
	Stack     []string  `yaml:"stack" json:"stack"`
	Libraries []Library `yaml:"libraries" json:"libraries"`

	// Payload is the free-form content after the header block. Never
	// inspected, always preserved byte for byte.
	Payload string `yaml:"-" json:"-"`
}

// DeclaredLibraries returns the header's library list as a name→version map.
func (m *Module) DeclaredLibraries() map[string]string {
	out := make(map[string]string, len(m.Libraries))
	for _, lib := range m.Libraries {
		out[lib.Name] = lib.Version
	}
	return out
}

// SetLibraries replaces the declared library list from a name→version map,
// sorted by name so rendered headers are deterministic.
func (m *Module) SetLibraries(libs map[string]string) {
	names := make([]string, 0, len(libs))
	for name := range libs {
		names = append(names, name)
	}
	sort.Strings(names)

	m.Libraries = make([]Library, 0, len(names))
	for _, name := range names {
		m.Libraries = append(m.Libraries, Library{Name: name, Version: libs[name]})
	}
}
