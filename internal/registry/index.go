package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/capsync-labs/capsync/internal/branding"
)

// IndexEntry is the listing view of a registered module.
type IndexEntry struct {
	Key       Key       `json:"key"`
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Created   time.Time `json:"created"`
	LastSync  time.Time `json:"last_sync"`
	Stack     []string  `json:"stack"`
	Libraries int       `json:"libraries"`
}

// CachedIndex holds a cached module listing along with the registry
// modification time used for invalidation.
type CachedIndex struct {
	Entries  []IndexEntry `json:"entries"`
	RootMod  int64        `json:"root_mod"`
	CachedAt time.Time    `json:"cached_at"`
}

// DefaultIndexPath returns the default cache file path
// (~/.capsync/registry-index.json).
func DefaultIndexPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, branding.HomeDir(), "registry-index.json"), nil
}

// ListCached returns the module listing, using the cache file when still
// valid. A stale or missing cache triggers a rebuild from the store and a
// best-effort rewrite of the cache file.
func ListCached(store *Store, cachePath string) ([]IndexEntry, error) {
	cached, err := loadIndex(cachePath)
	if err == nil && cached.RootMod == latestMtime(store.Root) && cached.RootMod != 0 {
		return cached.Entries, nil
	}

	modules, err := store.List()
	if err != nil {
		return nil, err
	}

	entries := make([]IndexEntry, 0, len(modules))
	for _, m := range modules {
		entries = append(entries, IndexEntry{
			Key:       m.Key,
			Name:      m.Name,
			Version:   m.Version,
			Created:   m.Created,
			LastSync:  m.LastSync,
			Stack:     m.Stack,
			Libraries: len(m.Libraries),
		})
	}

	// Cache write is best effort; listing works without it.
	writeIndex(cachePath, entries, store.Root)

	return entries, nil
}

func loadIndex(path string) (*CachedIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var idx CachedIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// latestMtime returns the latest modification time (unix seconds) across
// the registry root and its layer/stack directories. Record rewrites bump
// the stack directory mtime via the temp-file rename, so this lightweight
// check catches both new modules and sync updates.
func latestMtime(root string) int64 {
	var latest int64

	stamp := func(path string) {
		if info, err := os.Stat(path); err == nil {
			if t := info.ModTime().Unix(); t > latest {
				latest = t
			}
		}
	}

	stamp(root)

	layers, err := os.ReadDir(root)
	if err != nil {
		return latest
	}
	for _, layer := range layers {
		if !layer.IsDir() {
			continue
		}
		layerDir := filepath.Join(root, layer.Name())
		stamp(layerDir)

		stacks, err := os.ReadDir(layerDir)
		if err != nil {
			continue
		}
		for _, stack := range stacks {
			if stack.IsDir() {
				stamp(filepath.Join(layerDir, stack.Name()))
			}
		}
	}
	return latest
}

func writeIndex(path string, entries []IndexEntry, root string) {
	idx := CachedIndex{
		Entries:  entries,
		RootMod:  latestMtime(root),
		CachedAt: time.Now(),
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return
	}

	os.MkdirAll(filepath.Dir(path), 0755)
	os.WriteFile(path, data, 0644)
}
