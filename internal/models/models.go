// Package models defines the core data structures used throughout the application.
package models

import "time"

// ItemType distinguishes files from folders in a project tree.
type ItemType string

const (
	// ItemTypeFile represents a regular file.
	ItemTypeFile ItemType = "file"
	// ItemTypeFolder represents a directory.
	ItemTypeFolder ItemType = "folder"
)

// FileSystemItem is a file or folder node in a scanned project tree.
//
// Path is relative to the project root and always uses forward slashes.
// Content is set only for file items that were read as text; binary or
// unreadable files carry a placeholder string instead. Children is set only
// for folders and mirrors the immediate filesystem children at scan time.
type FileSystemItem struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Type         ItemType          `json:"type"`
	Path         string            `json:"path"`
	Content      string            `json:"content,omitempty"`
	Children     []*FileSystemItem `json:"children,omitempty"`
	LastModified time.Time         `json:"lastModified"`
	Size         int64             `json:"size"`
}

// ProjectStats holds aggregate counts over a scanned project tree.
type ProjectStats struct {
	TotalFiles      int            `json:"totalFiles"`
	TotalFolders    int            `json:"totalFolders"`
	TotalWords      int            `json:"totalWords"`
	TotalCharacters int            `json:"totalCharacters"`
	FileTypes       map[string]int `json:"fileTypes"`
}

// ProjectStructure is the full read-through projection of a project
// directory. It is recomputed on every scan and never persisted.
type ProjectStructure struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Path     string            `json:"path"`
	Items    []*FileSystemItem `json:"items"`
	Stats    ProjectStats      `json:"stats"`
	LastSync time.Time         `json:"lastSync"`
}

// ProjectType classifies a project by its top-level content directory.
type ProjectType string

const (
	// ProjectTypeBook is a long-form manuscript under libros/.
	ProjectTypeBook ProjectType = "book"
	// ProjectTypeScript is a video script under scripts/.
	ProjectTypeScript ProjectType = "script"
	// ProjectTypeBlog is a blog post under blog_posts/.
	ProjectTypeBlog ProjectType = "blog"
)

// ProjectSummary is a lightweight listing entry for one project directory.
type ProjectSummary struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Type  ProjectType `json:"type"`
	Path  string      `json:"path"`
}

// ImportFile is one file in a batch import request.
type ImportFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Commit is one entry in a project's mutation history.
type Commit struct {
	Hash    string    `json:"hash"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
	When    time.Time `json:"when"`
}

// GenerationProgress tracks batch content generation state for one project.
// Owned by storage.ProgressStore; in-memory only, keyed by project path.
type GenerationProgress struct {
	ProjectPath      string    `json:"projectPath"`
	CurrentGenerated int       `json:"currentGenerated"`
	TargetCount      int       `json:"targetCount"`
	LastNumber       int       `json:"lastNumber"`
	Quality          float64   `json:"quality"`
	Notes            []string  `json:"notes,omitempty"`
	Updated          time.Time `json:"updated"`
}
