package storage

import (
	"testing"

	"github.com/lagsuite/ghosthq/internal/models"
)

func TestAggregate(t *testing.T) {
	items := []*models.FileSystemItem{
		{
			Name:    "cap1.md",
			Type:    models.ItemTypeFile,
			Content: "uno dos tres cuatro cinco seis siete ocho nueve diez",
		},
		{
			Name: "capitulos",
			Type: models.ItemTypeFolder,
			Children: []*models.FileSystemItem{
				{
					Name:    "cap2.TXT",
					Type:    models.ItemTypeFile,
					Content: "a b c d e f g h i j k l m n o",
				},
			},
		},
	}

	stats := Aggregate(items)
	if stats.TotalFiles != 2 {
		t.Errorf("expected 2 files, got %d", stats.TotalFiles)
	}
	if stats.TotalFolders != 1 {
		t.Errorf("expected 1 folder, got %d", stats.TotalFolders)
	}
	if stats.TotalWords != 25 {
		t.Errorf("expected 25 words, got %d", stats.TotalWords)
	}
	if stats.FileTypes[".md"] != 1 || stats.FileTypes[".txt"] != 1 {
		t.Errorf("unexpected file type histogram: %v", stats.FileTypes)
	}
}

func TestAggregate_CountsRunesNotBytes(t *testing.T) {
	items := []*models.FileSystemItem{
		{Name: "n.md", Type: models.ItemTypeFile, Content: "ñandú"},
	}
	stats := Aggregate(items)
	if stats.TotalCharacters != 5 {
		t.Errorf("expected 5 characters, got %d", stats.TotalCharacters)
	}
	if stats.TotalWords != 1 {
		t.Errorf("expected 1 word, got %d", stats.TotalWords)
	}
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil)
	if stats.TotalFiles != 0 || stats.TotalFolders != 0 || stats.TotalWords != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
	if stats.FileTypes == nil {
		t.Error("expected an initialized file type map")
	}
}

func TestAggregate_ExtensionlessFiles(t *testing.T) {
	items := []*models.FileSystemItem{
		{Name: "LICENSE", Type: models.ItemTypeFile, Content: "x"},
	}
	stats := Aggregate(items)
	if stats.FileTypes[""] != 1 {
		t.Errorf("expected extensionless bucket, got %v", stats.FileTypes)
	}
}
