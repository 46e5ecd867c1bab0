package storage

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	apierrors "github.com/lagsuite/ghosthq/internal/errors"
	"github.com/lagsuite/ghosthq/internal/models"
)

// Content-type directories under the projects root, one per project kind.
var projectTypeDirs = []struct {
	dir string
	typ models.ProjectType
}{
	{"libros", models.ProjectTypeBook},
	{"scripts", models.ProjectTypeScript},
	{"blog_posts", models.ProjectTypeBlog},
}

// ProjectList groups project summaries by content type.
type ProjectList struct {
	Books   []models.ProjectSummary `json:"books"`
	Scripts []models.ProjectSummary `json:"scripts"`
	Blogs   []models.ProjectSummary `json:"blogs"`
}

// ListProjects enumerates the project directories under the projects root,
// grouped by type. Missing type directories yield empty groups.
func (s *Service) ListProjects() *ProjectList {
	list := &ProjectList{
		Books:   []models.ProjectSummary{},
		Scripts: []models.ProjectSummary{},
		Blogs:   []models.ProjectSummary{},
	}
	for _, td := range projectTypeDirs {
		summaries := s.listProjectsIn(td.dir, td.typ)
		switch td.typ {
		case models.ProjectTypeBook:
			list.Books = summaries
		case models.ProjectTypeScript:
			list.Scripts = summaries
		case models.ProjectTypeBlog:
			list.Blogs = summaries
		}
	}
	return list
}

func (s *Service) listProjectsIn(dir string, typ models.ProjectType) []models.ProjectSummary {
	full := filepath.Join(s.resolver.Root(), dir)
	entries, err := os.ReadDir(full)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to list projects", "dir", full, "err", err)
		}
		return []models.ProjectSummary{}
	}
	summaries := make([]models.ProjectSummary, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		summaries = append(summaries, models.ProjectSummary{
			ID:    e.Name(),
			Title: strings.ReplaceAll(e.Name(), "_", " "),
			Type:  typ,
			Path:  NormalizePath(filepath.Join(legacyRootPrefix, dir, e.Name())),
		})
	}
	return summaries
}

// GetProject finds a project summary by ID across all types.
func (s *Service) GetProject(id string) (*models.ProjectSummary, error) {
	list := s.ListProjects()
	for _, group := range [][]models.ProjectSummary{list.Books, list.Scripts, list.Blogs} {
		for i := range group {
			if group[i].ID == id {
				return &group[i], nil
			}
		}
	}
	return nil, apierrors.NotFound(apierrors.ErrProjectNotFound, "Project not found: "+id)
}

// Structure scans a project into a full ProjectStructure: a manifest-aware
// tree, aggregate stats, and a fresh lastSync stamp.
//
// Item IDs come from the manifest; unknown paths get freshly minted IDs
// that are persisted, and manifest entries whose path no longer exists on
// disk are pruned. The result may come from the short-TTL cache.
func (s *Service) Structure(projectPath string) (*models.ProjectStructure, error) {
	projectAbs, err := s.resolver.Resolve(projectPath)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(projectAbs); err != nil || !info.IsDir() {
		return nil, apierrors.NotFound(apierrors.ErrProjectNotFound, "Project directory not found: "+projectPath)
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(projectAbs); ok {
			return cached, nil
		}
	}

	lock := s.manifests.Lock(projectAbs)
	lock.Lock()
	defer lock.Unlock()

	manifest := s.manifests.Load(projectAbs)
	byPath := manifest.reverse()
	changed := false

	items := s.scanner.Scan(projectAbs, "", func(rel string) string {
		if id, ok := byPath[rel]; ok {
			return id
		}
		id := NewItemID()
		manifest[id] = rel
		byPath[rel] = id
		changed = true
		return id
	})

	// Prune manifest entries whose item vanished outside the API.
	for id, rel := range manifest {
		if _, err := os.Stat(filepath.Join(projectAbs, filepath.FromSlash(rel))); os.IsNotExist(err) {
			slog.Debug("Pruning stale manifest entry", "id", id, "path", rel)
			delete(manifest, id)
			changed = true
		}
	}
	if changed {
		s.manifests.Save(projectAbs, manifest)
	}

	name := filepath.Base(projectAbs)
	structure := &models.ProjectStructure{
		ID:       name,
		Name:     name,
		Path:     NormalizePath(projectPath),
		Items:    items,
		Stats:    Aggregate(items),
		LastSync: time.Now(),
	}
	if s.cache != nil {
		s.cache.Set(projectAbs, structure)
	}
	return structure, nil
}

// MoveItemByID moves an item identified by its manifest ID under a new
// parent (also identified by ID; "" means the project root), rewrites the
// manifest entries for the whole moved subtree, and returns the rescanned
// project structure.
func (s *Service) MoveItemByID(projectRootPath, itemID, targetParentID string) (*models.ProjectStructure, error) {
	projectAbs, err := s.resolver.Resolve(projectRootPath)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(projectAbs); err != nil || !info.IsDir() {
		return nil, apierrors.NotFound(apierrors.ErrProjectNotFound, "Project directory not found: "+projectRootPath)
	}

	lock := s.manifests.Lock(projectAbs)
	lock.Lock()

	manifest := s.manifests.Load(projectAbs)
	itemRel, ok := manifest[itemID]
	if !ok {
		lock.Unlock()
		return nil, apierrors.NotFound(apierrors.ErrItemNotFound, "Item not found in manifest: "+itemID)
	}
	itemAbs, err := s.resolver.ResolveItem(projectAbs, itemRel)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	if _, err := os.Stat(itemAbs); err != nil {
		lock.Unlock()
		return nil, apierrors.NotFound(apierrors.ErrItemNotFound, "Item not found in filesystem: "+itemRel)
	}

	targetAbs := projectAbs
	if targetParentID != "" {
		targetRel, ok := manifest[targetParentID]
		if !ok {
			lock.Unlock()
			return nil, apierrors.NotFound(apierrors.ErrTargetNotFound, "Target parent not found in manifest: "+targetParentID)
		}
		targetAbs, err = s.resolver.ResolveItem(projectAbs, targetRel)
		if err != nil {
			lock.Unlock()
			return nil, err
		}
		if info, err := os.Stat(targetAbs); err != nil || !info.IsDir() {
			lock.Unlock()
			return nil, apierrors.NotFound(apierrors.ErrTargetNotFound, "Target parent not found: "+targetRel)
		}
	}

	name := filepath.Base(itemAbs)
	newAbs := filepath.Join(targetAbs, name)
	if _, err := os.Stat(newAbs); err == nil {
		lock.Unlock()
		return nil, apierrors.Conflict(apierrors.ErrItemExists, "An item with this name already exists in the target location")
	}
	if err := os.MkdirAll(filepath.Dir(newAbs), 0o755); err != nil {
		lock.Unlock()
		return nil, apierrors.Storage("Failed to create target directory", err)
	}
	if err := os.Rename(itemAbs, newAbs); err != nil {
		lock.Unlock()
		return nil, apierrors.Storage("Failed to move item", err)
	}

	newRel := relOf(projectAbs, newAbs)
	oldRel := itemRel
	manifest[itemID] = newRel
	for id, p := range manifest {
		if strings.HasPrefix(p, oldRel+"/") {
			manifest[id] = newRel + strings.TrimPrefix(p, oldRel)
		}
	}
	s.manifests.Save(projectAbs, manifest)
	lock.Unlock()

	s.afterMutation(projectAbs, "move", newRel)
	return s.Structure(projectRootPath)
}
