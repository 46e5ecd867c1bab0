package handlers

import (
	"context"

	apierrors "github.com/lagsuite/ghosthq/internal/errors"
	"github.com/lagsuite/ghosthq/internal/models"
	"github.com/lagsuite/ghosthq/internal/storage"
)

// ProjectHandler serves project listings and structure scans.
type ProjectHandler struct {
	svc      *storage.Service
	versions *storage.VersionService
}

// NewProjectHandler creates a new project handler. versions may be nil.
func NewProjectHandler(svc *storage.Service, versions *storage.VersionService) *ProjectHandler {
	return &ProjectHandler{svc: svc, versions: versions}
}

// ListProjectsRequest is the request for the project listing (empty).
type ListProjectsRequest struct{}

// ListProjects returns all projects grouped by content type.
func (h *ProjectHandler) ListProjects(ctx context.Context, req ListProjectsRequest) (*storage.ProjectList, error) {
	return h.svc.ListProjects(), nil
}

// StructureRequest identifies a project either by logical path or by ID.
type StructureRequest struct {
	Path string `query:"path" json:"projectPath"`
	ID   string `query:"id" json:"id"`
}

// StructureResponse wraps a scanned project structure.
type StructureResponse struct {
	Project *models.ProjectStructure `json:"project"`
}

// Structure scans a project directory and returns its full structure.
func (h *ProjectHandler) Structure(ctx context.Context, req StructureRequest) (*StructureResponse, error) {
	path := req.Path
	if path == "" {
		if req.ID == "" {
			return nil, apierrors.MissingField("path")
		}
		summary, err := h.svc.GetProject(req.ID)
		if err != nil {
			return nil, err
		}
		path = summary.Path
	}
	project, err := h.svc.Structure(path)
	if err != nil {
		return nil, err
	}
	return &StructureResponse{Project: project}, nil
}

// HistoryRequest asks for the mutation history of a project subtree.
type HistoryRequest struct {
	Path  string `query:"path"`
	Limit int    `query:"limit"`
}

// HistoryResponse lists commits, newest first.
type HistoryResponse struct {
	Commits []*models.Commit `json:"commits"`
}

// History returns the recorded mutation history for a project path.
func (h *ProjectHandler) History(ctx context.Context, req HistoryRequest) (*HistoryResponse, error) {
	if h.versions == nil {
		return &HistoryResponse{Commits: []*models.Commit{}}, nil
	}
	commits, err := h.versions.History(storage.StripRootPrefix(req.Path), req.Limit)
	if err != nil {
		return nil, apierrors.InternalWithError("Failed to read history", err)
	}
	if commits == nil {
		commits = []*models.Commit{}
	}
	return &HistoryResponse{Commits: commits}, nil
}
