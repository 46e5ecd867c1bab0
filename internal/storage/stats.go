package storage

import (
	"path/filepath"
	"strings"

	"github.com/lagsuite/ghosthq/internal/models"
)

// Aggregate computes summary statistics over an already-scanned item tree.
// Pure function of the tree; it never touches the filesystem.
//
// Word counts split file content on whitespace and count non-empty tokens.
// The file-type histogram is keyed by lowercased extension, with "" for
// extensionless files.
func Aggregate(items []*models.FileSystemItem) models.ProjectStats {
	stats := models.ProjectStats{FileTypes: make(map[string]int)}
	aggregateInto(&stats, items)
	return stats
}

func aggregateInto(stats *models.ProjectStats, items []*models.FileSystemItem) {
	for _, item := range items {
		if item.Type == models.ItemTypeFolder {
			stats.TotalFolders++
			aggregateInto(stats, item.Children)
			continue
		}
		stats.TotalFiles++
		ext := strings.ToLower(filepath.Ext(item.Name))
		stats.FileTypes[ext]++
		if item.Content != "" {
			stats.TotalCharacters += len([]rune(item.Content))
			stats.TotalWords += countWords(item.Content)
		}
	}
}

func countWords(s string) int {
	return len(strings.Fields(s))
}
