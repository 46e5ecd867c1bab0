package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lagsuite/ghosthq/internal/storage"
)

func newTestHandlers(t *testing.T) (*ProjectHandler, *WorkspaceHandler, string) {
	t.Helper()
	root := t.TempDir()
	resolver, err := storage.NewResolver(root)
	if err != nil {
		t.Fatalf("failed to create resolver: %v", err)
	}
	svc := storage.NewService(resolver, storage.DefaultConfig(), nil, nil)
	return NewProjectHandler(svc, nil), NewWorkspaceHandler(svc), root
}

func TestProjectHandler_StructureByID(t *testing.T) {
	ph, _, root := newTestHandlers(t)
	if err := os.MkdirAll(filepath.Join(root, "libros", "mi_novela"), 0o755); err != nil {
		t.Fatal(err)
	}

	resp, err := ph.Structure(context.Background(), StructureRequest{ID: "mi_novela"})
	if err != nil {
		t.Fatalf("failed to look up by ID: %v", err)
	}
	if resp.Project.Name != "mi_novela" {
		t.Errorf("unexpected project %+v", resp.Project)
	}

	if _, err := ph.Structure(context.Background(), StructureRequest{}); err == nil {
		t.Error("expected an error when neither path nor ID is given")
	}
}

func TestProjectHandler_HistoryWithoutVersions(t *testing.T) {
	ph, _, _ := newTestHandlers(t)
	resp, err := ph.History(context.Background(), HistoryRequest{Path: "libros/novela"})
	if err != nil {
		t.Fatalf("expected empty history, got %v", err)
	}
	if resp.Commits == nil || len(resp.Commits) != 0 {
		t.Errorf("expected an empty commit list, got %v", resp.Commits)
	}
}

func TestWorkspaceHandler_OperationsRename(t *testing.T) {
	_, wh, root := newTestHandlers(t)
	if err := os.MkdirAll(filepath.Join(root, "libros", "novela"), 0o755); err != nil {
		t.Fatal(err)
	}

	create, err := wh.Operations(context.Background(), OperationRequest{
		Action:      "createFile",
		ProjectPath: "libros/novela",
		FileName:    "borrador.md",
		Content:     "texto",
	})
	if err != nil || !create.Success {
		t.Fatalf("create failed: %v %+v", err, create)
	}

	rename, err := wh.Operations(context.Background(), OperationRequest{
		Action:      "rename",
		ProjectPath: "libros/novela",
		OldPath:     "borrador.md",
		NewName:     "cap1.md",
	})
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if !rename.Success || rename.UpdatedStructure == nil {
		t.Errorf("unexpected rename result %+v", rename)
	}
	if _, err := os.Stat(filepath.Join(root, "libros", "novela", "cap1.md")); err != nil {
		t.Errorf("file not renamed: %v", err)
	}

	del, err := wh.Operations(context.Background(), OperationRequest{
		Action:      "delete",
		ProjectPath: "libros/novela",
		ItemPath:    "cap1.md",
	})
	if err != nil || !del.Success {
		t.Fatalf("delete failed: %v %+v", err, del)
	}
	if _, err := os.Stat(filepath.Join(root, "libros", "novela", "cap1.md")); !os.IsNotExist(err) {
		t.Error("file not deleted")
	}
}
