package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	apierrors "github.com/lagsuite/ghosthq/internal/errors"
	"github.com/lagsuite/ghosthq/internal/models"
)

var (
	invalidNameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// SanitizeName replaces filesystem-hostile characters with underscores and
// collapses whitespace runs.
func SanitizeName(name string) string {
	name = invalidNameChars.ReplaceAllString(name, "_")
	name = whitespaceRuns.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// ensureExtension appends the default extension when name has none.
func (s *Service) ensureExtension(name string) string {
	if filepath.Ext(name) == "" {
		return name + s.cfg.DefaultExtension
	}
	return name
}

// relOf returns abs relative to projectAbs using forward slashes.
func relOf(projectAbs, abs string) string {
	rel, err := filepath.Rel(projectAbs, abs)
	if err != nil {
		return NormalizePath(abs)
	}
	return NormalizePath(rel)
}

// targetDir resolves an optional parent path inside a project.
func (s *Service) targetDir(projectAbs, parentPath string) (string, error) {
	if parentPath == "" {
		return projectAbs, nil
	}
	return s.resolver.ResolveItem(projectAbs, parentPath)
}

// CreateFile creates a new file inside a project. A missing extension
// gets the default one, the name is sanitized, and parent directories are
// created as needed. Fails with FILE_EXISTS when the target is taken.
func (s *Service) CreateFile(projectPath, fileName, content, parentPath string) (*models.FileSystemItem, error) {
	projectAbs, err := s.resolver.Resolve(projectPath)
	if err != nil {
		return nil, err
	}
	lock := s.manifests.Lock(projectAbs)
	lock.Lock()
	defer lock.Unlock()

	dir, err := s.targetDir(projectAbs, parentPath)
	if err != nil {
		return nil, err
	}
	finalName := SanitizeName(s.ensureExtension(fileName))
	if finalName == "" {
		return nil, apierrors.BadRequest("File name is empty after sanitization")
	}
	filePath := filepath.Join(dir, finalName)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apierrors.Storage("Failed to create parent directory", err)
	}
	if _, err := os.Stat(filePath); err == nil {
		return nil, apierrors.Conflict(apierrors.ErrFileExists, "File already exists: "+finalName)
	}
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		return nil, apierrors.Storage("Failed to create file", err)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, apierrors.Storage("Failed to stat created file", err)
	}
	rel := relOf(projectAbs, filePath)
	item := &models.FileSystemItem{
		ID:           s.registerPath(projectAbs, rel),
		Name:         finalName,
		Type:         models.ItemTypeFile,
		Path:         rel,
		Content:      content,
		LastModified: info.ModTime(),
		Size:         info.Size(),
	}
	s.afterMutation(projectAbs, "create file", rel)
	return item, nil
}

// CreateFolder creates a new directory inside a project. Fails with
// FOLDER_EXISTS when the target is taken.
func (s *Service) CreateFolder(projectPath, folderName, parentPath string) (*models.FileSystemItem, error) {
	projectAbs, err := s.resolver.Resolve(projectPath)
	if err != nil {
		return nil, err
	}
	lock := s.manifests.Lock(projectAbs)
	lock.Lock()
	defer lock.Unlock()

	dir, err := s.targetDir(projectAbs, parentPath)
	if err != nil {
		return nil, err
	}
	name := SanitizeName(folderName)
	if name == "" {
		return nil, apierrors.BadRequest("Folder name is empty after sanitization")
	}
	folderPath := filepath.Join(dir, name)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apierrors.Storage("Failed to create parent directory", err)
	}
	if _, err := os.Stat(folderPath); err == nil {
		return nil, apierrors.Conflict(apierrors.ErrFolderExists, "Folder already exists: "+name)
	}
	if err := os.Mkdir(folderPath, 0o755); err != nil {
		return nil, apierrors.Storage("Failed to create folder", err)
	}

	info, err := os.Stat(folderPath)
	if err != nil {
		return nil, apierrors.Storage("Failed to stat created folder", err)
	}
	rel := relOf(projectAbs, folderPath)
	item := &models.FileSystemItem{
		ID:           s.registerPath(projectAbs, rel),
		Name:         name,
		Type:         models.ItemTypeFolder,
		Path:         rel,
		Children:     []*models.FileSystemItem{},
		LastModified: info.ModTime(),
		Size:         0,
	}
	s.afterMutation(projectAbs, "create folder", rel)
	return item, nil
}

// UpdateFileContent overwrites a file's content. The write goes through a
// temp file and rename so a crashed request never leaves a torn file.
func (s *Service) UpdateFileContent(projectPath, filePath, content string) (*models.FileSystemItem, error) {
	projectAbs, err := s.resolver.Resolve(projectPath)
	if err != nil {
		return nil, err
	}
	abs, err := s.resolver.ResolveItem(projectAbs, filePath)
	if err != nil {
		return nil, err
	}
	lock := s.manifests.Lock(projectAbs)
	lock.Lock()
	defer lock.Unlock()

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apierrors.NotFound(apierrors.ErrFileNotFound, "File not found: "+filePath)
		}
		return nil, apierrors.Storage("Failed to stat file", err)
	}
	if info.IsDir() {
		return nil, apierrors.NewAPIError(400, apierrors.ErrNotAFile, "Path is not a file: "+filePath)
	}

	tmp := abs + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return nil, apierrors.Storage("Failed to write content", err)
	}
	if err := os.Rename(tmp, abs); err != nil {
		_ = os.Remove(tmp)
		return nil, apierrors.Storage("Failed to replace file", err)
	}

	info, err = os.Stat(abs)
	if err != nil {
		return nil, apierrors.Storage("Failed to stat updated file", err)
	}
	rel := relOf(projectAbs, abs)
	item := &models.FileSystemItem{
		ID:           s.registerPath(projectAbs, rel),
		Name:         filepath.Base(abs),
		Type:         models.ItemTypeFile,
		Path:         rel,
		Content:      content,
		LastModified: info.ModTime(),
		Size:         info.Size(),
	}
	s.afterMutation(projectAbs, "update", rel)
	return item, nil
}

// RenameItem renames a file or folder in place, preserving its manifest ID
// and the IDs of everything beneath it.
func (s *Service) RenameItem(projectPath, oldPath, newName string) (*models.FileSystemItem, error) {
	projectAbs, err := s.resolver.Resolve(projectPath)
	if err != nil {
		return nil, err
	}
	oldAbs, err := s.resolver.ResolveItem(projectAbs, oldPath)
	if err != nil {
		return nil, err
	}
	newAbs, err := s.resolver.ResolveItem(projectAbs, NormalizePath(filepath.Join(filepath.Dir(oldPath), newName)))
	if err != nil {
		return nil, err
	}
	lock := s.manifests.Lock(projectAbs)
	lock.Lock()
	defer lock.Unlock()

	if _, err := os.Stat(oldAbs); err != nil {
		if os.IsNotExist(err) {
			return nil, apierrors.NotFound(apierrors.ErrItemNotFound, "Item not found: "+oldPath)
		}
		return nil, apierrors.Storage("Failed to stat item", err)
	}
	if _, err := os.Stat(newAbs); err == nil {
		return nil, apierrors.Conflict(apierrors.ErrItemExists, "Item already exists: "+newName)
	}
	if err := os.Rename(oldAbs, newAbs); err != nil {
		return nil, apierrors.Storage("Failed to rename item", err)
	}

	oldRel := relOf(projectAbs, oldAbs)
	newRel := relOf(projectAbs, newAbs)
	s.rewriteManifestPaths(projectAbs, oldRel, newRel)

	item, err := s.itemAt(projectAbs, newAbs)
	if err != nil {
		return nil, err
	}
	s.afterMutation(projectAbs, "rename", newRel)
	return item, nil
}

// DeleteItem removes a file or folder (recursively) and drops the matching
// manifest entries.
func (s *Service) DeleteItem(projectPath, itemPath string) error {
	projectAbs, err := s.resolver.Resolve(projectPath)
	if err != nil {
		return err
	}
	abs, err := s.resolver.ResolveItem(projectAbs, itemPath)
	if err != nil {
		return err
	}
	lock := s.manifests.Lock(projectAbs)
	lock.Lock()
	defer lock.Unlock()

	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return apierrors.NotFound(apierrors.ErrItemNotFound, "Item not found: "+itemPath)
		}
		return apierrors.Storage("Failed to stat item", err)
	}
	if err := os.RemoveAll(abs); err != nil {
		return apierrors.Storage("Failed to delete item", err)
	}

	rel := relOf(projectAbs, abs)
	manifest := s.manifests.Load(projectAbs)
	changed := false
	for id, p := range manifest {
		if p == rel || strings.HasPrefix(p, rel+"/") {
			delete(manifest, id)
			changed = true
		}
	}
	if changed {
		s.manifests.Save(projectAbs, manifest)
	}
	s.afterMutation(projectAbs, "delete", rel)
	return nil
}

// MoveItem moves a file or folder under a new parent, preserving its base
// name. targetParentPath "" means the project root.
func (s *Service) MoveItem(projectPath, itemPath, targetParentPath string) (*models.FileSystemItem, error) {
	projectAbs, err := s.resolver.Resolve(projectPath)
	if err != nil {
		return nil, err
	}
	itemAbs, err := s.resolver.ResolveItem(projectAbs, itemPath)
	if err != nil {
		return nil, err
	}
	targetAbs, err := s.targetDir(projectAbs, targetParentPath)
	if err != nil {
		return nil, err
	}
	lock := s.manifests.Lock(projectAbs)
	lock.Lock()
	defer lock.Unlock()

	if _, err := os.Stat(itemAbs); err != nil {
		if os.IsNotExist(err) {
			return nil, apierrors.NotFound(apierrors.ErrItemNotFound, "Item not found: "+itemPath)
		}
		return nil, apierrors.Storage("Failed to stat item", err)
	}
	if info, err := os.Stat(targetAbs); err != nil || !info.IsDir() {
		target := targetParentPath
		if target == "" {
			target = "root"
		}
		return nil, apierrors.NotFound(apierrors.ErrTargetNotFound, "Target directory not found: "+target)
	}

	name := filepath.Base(itemAbs)
	newAbs := filepath.Join(targetAbs, name)
	if _, err := os.Stat(newAbs); err == nil {
		return nil, apierrors.Conflict(apierrors.ErrItemExists, "Item already exists at destination: "+name)
	}
	if err := os.Rename(itemAbs, newAbs); err != nil {
		return nil, apierrors.Storage("Failed to move item", err)
	}

	oldRel := relOf(projectAbs, itemAbs)
	newRel := relOf(projectAbs, newAbs)
	s.rewriteManifestPaths(projectAbs, oldRel, newRel)

	item, err := s.itemAt(projectAbs, newAbs)
	if err != nil {
		return nil, err
	}
	s.afterMutation(projectAbs, "move", newRel)
	return item, nil
}

// ImportFiles batch-creates files under an optional parent. Collisions and
// per-file failures are collected; the batch succeeds when at least one
// file landed.
func (s *Service) ImportFiles(projectPath string, files []models.ImportFile, parentPath string) ([]*models.FileSystemItem, []string, error) {
	projectAbs, err := s.resolver.Resolve(projectPath)
	if err != nil {
		return nil, nil, err
	}
	lock := s.manifests.Lock(projectAbs)
	lock.Lock()
	defer lock.Unlock()

	dir, err := s.targetDir(projectAbs, parentPath)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, apierrors.Storage("Failed to create parent directory", err)
	}

	var imported []*models.FileSystemItem
	var importErrors []string
	for _, f := range files {
		sanitized := SanitizeName(f.Name)
		if sanitized == "" {
			importErrors = append(importErrors, "File name is empty after sanitization: "+f.Name)
			continue
		}
		finalName := s.ensureExtension(sanitized)
		filePath := filepath.Join(dir, finalName)
		if _, err := os.Stat(filePath); err == nil {
			importErrors = append(importErrors, "File already exists: "+finalName)
			continue
		}
		if err := os.WriteFile(filePath, []byte(f.Content), 0o644); err != nil {
			importErrors = append(importErrors, fmt.Sprintf("Failed to import %s: %v", f.Name, err))
			continue
		}
		info, err := os.Stat(filePath)
		if err != nil {
			importErrors = append(importErrors, fmt.Sprintf("Failed to import %s: %v", f.Name, err))
			continue
		}
		rel := relOf(projectAbs, filePath)
		imported = append(imported, &models.FileSystemItem{
			ID:           s.registerPath(projectAbs, rel),
			Name:         finalName,
			Type:         models.ItemTypeFile,
			Path:         rel,
			Content:      f.Content,
			LastModified: info.ModTime(),
			Size:         info.Size(),
		})
	}

	if len(imported) == 0 && len(importErrors) > 0 {
		return nil, importErrors, apierrors.NewAPIError(409, apierrors.ErrImportFailed, "Import failed: "+strings.Join(importErrors, ", "))
	}
	s.afterMutation(projectAbs, "import", fmt.Sprintf("%d files", len(imported)))
	return imported, importErrors, nil
}

// itemAt builds a FileSystemItem for an existing path, re-reading content
// for files (with encoding recovery) and re-scanning children for folders.
// Caller holds the project lock.
func (s *Service) itemAt(projectAbs, abs string) (*models.FileSystemItem, error) {
	info, err := os.Stat(abs)
	if err != nil {
		return nil, apierrors.Storage("Failed to stat item", err)
	}
	rel := relOf(projectAbs, abs)
	manifest := s.manifests.Load(projectAbs)
	byPath := manifest.reverse()

	id := byPath[rel]
	if id == "" {
		id = NewItemID()
	}
	item := &models.FileSystemItem{
		ID:           id,
		Name:         filepath.Base(abs),
		Path:         rel,
		LastModified: info.ModTime(),
		Size:         info.Size(),
	}
	if info.IsDir() {
		item.Type = models.ItemTypeFolder
		item.Size = 0
		item.Children = s.scanner.Scan(abs, rel, func(r string) string { return byPath[r] })
	} else {
		item.Type = models.ItemTypeFile
		item.Content = s.scanner.ReadFileContent(abs, item.Name, info.Size())
	}
	return item, nil
}

// registerPath ensures the manifest has an ID for rel and returns it.
// Caller holds the project lock.
func (s *Service) registerPath(projectAbs, rel string) string {
	manifest := s.manifests.Load(projectAbs)
	for id, p := range manifest {
		if p == rel {
			return id
		}
	}
	id := NewItemID()
	manifest[id] = rel
	s.manifests.Save(projectAbs, manifest)
	return id
}

// rewriteManifestPaths repoints the entry at oldRel to newRel along with
// every descendant entry, preserving each one's relative suffix. Caller
// holds the project lock.
func (s *Service) rewriteManifestPaths(projectAbs, oldRel, newRel string) {
	manifest := s.manifests.Load(projectAbs)
	changed := false
	for id, p := range manifest {
		switch {
		case p == oldRel:
			manifest[id] = newRel
			changed = true
		case strings.HasPrefix(p, oldRel+"/"):
			manifest[id] = newRel + strings.TrimPrefix(p, oldRel)
			changed = true
		}
	}
	if changed {
		s.manifests.Save(projectAbs, manifest)
	}
}

// afterMutation records history and drops cached structures for a project.
func (s *Service) afterMutation(projectAbs, operation, itemPath string) {
	if s.versions != nil {
		s.versions.CommitChange(operation, itemPath)
	}
	if s.cache != nil {
		s.cache.Invalidate(projectAbs)
	}
}

// reverse builds a path-to-ID lookup for a manifest.
func (m Manifest) reverse() map[string]string {
	byPath := make(map[string]string, len(m))
	for id, p := range m {
		byPath[p] = id
	}
	return byPath
}
