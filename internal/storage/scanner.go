package storage

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/maruel/ksid"

	"github.com/lagsuite/ghosthq/internal/models"
)

// Scanner walks project directories and mirrors them into FileSystemItem
// trees. Each call re-reads the filesystem; nothing is cached here.
type Scanner struct {
	cfg *Config
}

// NewScanner creates a scanner with the given policy config.
func NewScanner(cfg *Config) *Scanner {
	return &Scanner{cfg: cfg}
}

// NewItemID returns a fresh opaque item ID.
func NewItemID() string {
	return ksid.NewID().String()
}

// Scan recursively reads dirAbs and returns its immediate children as
// items, depth-first. relPrefix is the forward-slash path of dirAbs
// relative to the project root ("" for the root itself).
//
// idFor assigns the stable ID for a given relative path; pass nil to mint
// a fresh ID per item. Dotfiles (including the manifest side-car) and
// Thumbs.db are skipped. Symlinks are not followed; a symlinked directory
// would otherwise allow infinite recursion.
//
// Per-entry failures degrade to placeholders or skipped entries rather
// than aborting the walk.
func (s *Scanner) Scan(dirAbs, relPrefix string, idFor func(rel string) string) []*models.FileSystemItem {
	entries, err := os.ReadDir(dirAbs)
	if err != nil {
		slog.Error("Failed to read directory", "dir", dirAbs, "err", err)
		return nil
	}

	items := make([]*models.FileSystemItem, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || name == "Thumbs.db" {
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			slog.Debug("Skipping symlink", "dir", dirAbs, "name", name)
			continue
		}

		fullPath := filepath.Join(dirAbs, name)
		info, err := entry.Info()
		if err != nil {
			slog.Warn("Failed to stat entry", "path", fullPath, "err", err)
			continue
		}

		rel := name
		if relPrefix != "" {
			rel = relPrefix + "/" + name
		}
		id := ""
		if idFor != nil {
			id = idFor(rel)
		}
		if id == "" {
			id = NewItemID()
		}

		item := &models.FileSystemItem{
			ID:           id,
			Name:         name,
			Path:         rel,
			LastModified: info.ModTime(),
			Size:         info.Size(),
		}

		if entry.IsDir() {
			item.Type = models.ItemTypeFolder
			item.Size = 0
			item.Children = s.Scan(fullPath, rel, idFor)
		} else {
			item.Type = models.ItemTypeFile
			item.Content = s.ReadFileContent(fullPath, name, info.Size())
		}
		items = append(items, item)
	}
	return items
}

// ReadFileContent reads a file's content under the text policy: content is
// returned when the extension is in the allow-list, the extension is
// empty, or the file is below the size threshold. Everything else gets a
// binary placeholder. Read failures yield an error placeholder embedding
// the filename instead of propagating.
func (s *Scanner) ReadFileContent(fullPath, name string, size int64) string {
	ext := strings.ToLower(filepath.Ext(name))
	if !s.cfg.IsTextExtension(ext) && ext != "" && size >= s.cfg.MaxTextFileSize {
		return "[Binary file: " + name + "]"
	}
	raw, err := os.ReadFile(fullPath)
	if err != nil {
		slog.Warn("Failed to read file content", "path", fullPath, "err", err)
		return "[Error reading file: " + name + "]"
	}
	return DecodeText(raw)
}
