package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestVersionService(t *testing.T) (*VersionService, string) {
	t.Helper()
	root := t.TempDir()
	v, err := NewVersionService(root)
	if err != nil {
		t.Fatalf("failed to init version service: %v", err)
	}
	return v, root
}

func TestVersionService_InitAndReopen(t *testing.T) {
	root := t.TempDir()
	if _, err := NewVersionService(root); err != nil {
		t.Fatalf("failed to init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, ".git")); err != nil {
		t.Fatalf("repository not initialized: %v", err)
	}
	// Reopening an existing repository works.
	if _, err := NewVersionService(root); err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
}

func TestVersionService_CommitChangeAndHistory(t *testing.T) {
	v, root := newTestVersionService(t)

	dir := filepath.Join(root, "libros", "novela")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "cap1.md"), []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	v.CommitChange("create file", "libros/novela/cap1.md")

	if err := os.WriteFile(filepath.Join(dir, "cap1.md"), []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}
	v.CommitChange("update", "libros/novela/cap1.md")

	// A clean worktree commits nothing.
	v.CommitChange("update", "libros/novela/cap1.md")

	commits, err := v.History("", 0)
	if err != nil {
		t.Fatalf("failed to read history: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	// Newest first.
	if commits[0].Message != "update libros/novela/cap1.md" {
		t.Errorf("unexpected newest commit %q", commits[0].Message)
	}
	if commits[1].Message != "create file libros/novela/cap1.md" {
		t.Errorf("unexpected oldest commit %q", commits[1].Message)
	}
	if commits[0].Author != "ghosthq" {
		t.Errorf("unexpected author %q", commits[0].Author)
	}
	if commits[0].Hash == "" || commits[0].When.IsZero() {
		t.Errorf("incomplete commit metadata %+v", commits[0])
	}
}

func TestVersionService_HistoryLimit(t *testing.T) {
	v, root := newTestVersionService(t)
	for i := 0; i < 3; i++ {
		name := filepath.Join(root, "f"+string(rune('a'+i))+".md")
		if err := os.WriteFile(name, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		v.CommitChange("create file", filepath.Base(name))
	}

	commits, err := v.History("", 2)
	if err != nil {
		t.Fatalf("failed to read history: %v", err)
	}
	if len(commits) != 2 {
		t.Errorf("expected the limit to apply, got %d commits", len(commits))
	}
}

func TestVersionService_HistoryPathFilter(t *testing.T) {
	v, root := newTestVersionService(t)

	if err := os.MkdirAll(filepath.Join(root, "libros", "a"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "libros", "a", "cap1.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	v.CommitChange("create file", "libros/a/cap1.md")

	if err := os.MkdirAll(filepath.Join(root, "scripts", "b"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "scripts", "b", "guion.md"), []byte("y"), 0o644); err != nil {
		t.Fatal(err)
	}
	v.CommitChange("create file", "scripts/b/guion.md")

	commits, err := v.History("libros/a", 0)
	if err != nil {
		t.Fatalf("failed to read filtered history: %v", err)
	}
	if len(commits) != 1 {
		t.Fatalf("expected 1 commit for libros/a, got %d", len(commits))
	}
	if commits[0].Message != "create file libros/a/cap1.md" {
		t.Errorf("unexpected commit %q", commits[0].Message)
	}
}

func TestVersionService_HistoryEmptyRepo(t *testing.T) {
	v, _ := newTestVersionService(t)
	commits, err := v.History("", 0)
	if err != nil {
		t.Fatalf("expected empty history, got error %v", err)
	}
	if len(commits) != 0 {
		t.Errorf("expected no commits, got %d", len(commits))
	}
}
