package storage

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ManifestFile is the side-car file mapping stable item IDs to relative
// paths, one per project directory. The leading dot keeps it out of scans.
const ManifestFile = ".ghost_manifest.json"

// Manifest maps logical item IDs to project-relative paths (forward
// slashes on every platform).
type Manifest map[string]string

// ManifestStore reads and writes per-project manifest side-car files.
//
// Persistence is best-effort: a missing or unparsable manifest degrades to
// an empty one and a failed save is logged, never surfaced. Callers that
// run a load-mutate-save cycle must hold the project lock for the whole
// cycle; the original system had no such lock and could lose updates under
// concurrent mutations.
type ManifestStore struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManifestStore creates a manifest store.
func NewManifestStore() *ManifestStore {
	return &ManifestStore{locks: make(map[string]*sync.Mutex)}
}

// Lock returns the advisory mutex for the given project directory,
// creating it on first use. The key is the cleaned absolute path so every
// spelling of the same project shares one lock.
func (m *ManifestStore) Lock(projectAbs string) *sync.Mutex {
	key := filepath.Clean(projectAbs)
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	return l
}

// Load reads the manifest for a project. Returns an empty manifest if the
// file is absent or unparsable.
func (m *ManifestStore) Load(projectAbs string) Manifest {
	path := filepath.Join(projectAbs, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read manifest", "path", path, "err", err)
		}
		return Manifest{}
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		slog.Warn("Failed to parse manifest, starting empty", "path", path, "err", err)
		return Manifest{}
	}
	if manifest == nil {
		return Manifest{}
	}
	return manifest
}

// Save writes the manifest for a project as pretty JSON, creating the
// project directory if needed. Failures are logged, not returned.
func (m *ManifestStore) Save(projectAbs string, manifest Manifest) {
	path := filepath.Join(projectAbs, ManifestFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		slog.Error("Failed to create manifest directory", "path", path, "err", err)
		return
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		slog.Error("Failed to serialize manifest", "path", path, "err", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		slog.Error("Failed to write manifest", "path", path, "err", err)
	}
}
