package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"
)

// Store is a file-backed capability module store. Each module lives at
// <root>/<layer>/<stack>/module.md. The store assumes one in-flight
// mutation at a time (the engine is request/response driven); atomicity per
// record comes from temp-file-plus-rename writes.
type Store struct {
	Root string
}

// NewStore returns a store rooted at the given directory. The directory is
// created lazily on first insert.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

// recordPath returns the record file path for a key.
func (s *Store) recordPath(key Key) string {
	return filepath.Join(s.Root, key.Layer, key.Stack, RecordFileName)
}

// Lookup reads the module for a key. Returns ErrNotFound when no record
// exists.
func (s *Store) Lookup(key Key) (*Module, error) {
	data, err := os.ReadFile(s.recordPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("module %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading module %s: %w", key, err)
	}

	m, err := ParseRecord(data)
	if err != nil {
		return nil, fmt.Errorf("module %s: %w", key, err)
	}

	header, _, err := splitRecord(data)
	if err == nil {
		if err := checkHeader(header); err != nil {
			return nil, fmt.Errorf("module %s: %w", key, err)
		}
	}

	m.Key = key
	return m, nil
}

// Insert adds a new module. Returns ErrConflict when a record already
// exists for the key; there is no silent overwrite.
func (s *Store) Insert(m *Module) error {
	path := s.recordPath(m.Key)

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("module %s: %w", m.Key, ErrConflict)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating module directory for %s: %w", m.Key, err)
	}

	return s.writeRecord(m)
}

// Update looks up an existing module, applies the mutation, and rewrites
// the record atomically. Returns ErrNotFound when the key is absent. The
// record on disk is either fully replaced or untouched.
func (s *Store) Update(key Key, mutate func(*Module) error) (*Module, error) {
	m, err := s.Lookup(key)
	if err != nil {
		return nil, err
	}

	if err := mutate(m); err != nil {
		return nil, fmt.Errorf("mutating module %s: %w", key, err)
	}

	if err := s.writeRecord(m); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns all registered modules sorted by key.
func (s *Store) List() ([]*Module, error) {
	layers, err := os.ReadDir(s.Root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil // empty registry
	}
	if err != nil {
		return nil, fmt.Errorf("reading registry root %s: %w", s.Root, err)
	}

	var modules []*Module
	for _, layer := range layers {
		if !layer.IsDir() {
			continue
		}
		stacks, err := os.ReadDir(filepath.Join(s.Root, layer.Name()))
		if err != nil {
			continue
		}
		for _, stack := range stacks {
			if !stack.IsDir() {
				continue
			}
			key := Key{Layer: layer.Name(), Stack: stack.Name()}
			m, err := s.Lookup(key)
			if err != nil {
				continue // unreadable record, skip from listing
			}
			modules = append(modules, m)
		}
	}

	sort.Slice(modules, func(i, j int) bool {
		return modules[i].Key.String() < modules[j].Key.String()
	})
	return modules, nil
}

// writeRecord validates the header and replaces the record file atomically.
func (s *Store) writeRecord(m *Module) error {
	header, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling module %s header: %w", m.Key, err)
	}
	if err := checkHeader(header); err != nil {
		return fmt.Errorf("module %s: %w", m.Key, err)
	}

	data, err := MarshalRecord(m)
	if err != nil {
		return fmt.Errorf("module %s: %w", m.Key, err)
	}

	path := s.recordPath(m.Key)
	dir := filepath.Dir(path)

	// Write to a temp file in the same directory so the rename is atomic
	// on the same filesystem.
	tmp, err := os.CreateTemp(dir, ".module-*")
	if err != nil {
		return fmt.Errorf("creating temp record for %s: %w", m.Key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing record for %s: %w", m.Key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing record for %s: %w", m.Key, err)
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting record permissions for %s: %w", m.Key, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing record for %s: %w", m.Key, err)
	}

	return nil
}

// checkHeader runs schema validation and folds violations into an error.
func checkHeader(header []byte) error {
	result, err := ValidateHeader(header)
	if err != nil {
		return err
	}
	if result.Valid {
		return nil
	}

	msg := "invalid header"
	for _, issue := range result.Issues {
		if issue.Path != "" {
			msg += "; " + issue.Path + ": " + issue.Message
		} else {
			msg += "; " + issue.Message
		}
	}
	return errors.New(msg)
}
