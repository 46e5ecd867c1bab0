package handlers

import (
	"context"

	apierrors "github.com/lagsuite/ghosthq/internal/errors"
	"github.com/lagsuite/ghosthq/internal/models"
	"github.com/lagsuite/ghosthq/internal/storage"
)

// ProgressHandler exposes the generation progress store.
type ProgressHandler struct {
	store *storage.ProgressStore
}

// NewProgressHandler creates a new progress handler.
func NewProgressHandler(store *storage.ProgressStore) *ProgressHandler {
	return &ProgressHandler{store: store}
}

// GetProgressRequest queries the progress of one project.
type GetProgressRequest struct {
	Path      string `query:"path"`
	BatchSize int    `query:"batchSize"`
}

// GetProgressResponse holds the recorded progress plus whether another
// batch of the requested size still fits under the target.
type GetProgressResponse struct {
	Progress    *models.GenerationProgress `json:"progress"`
	CanGenerate bool                       `json:"canGenerate"`
}

// GetProgress returns the progress for a project. Progress is nil when
// nothing has been recorded yet; that is not an error.
func (h *ProgressHandler) GetProgress(ctx context.Context, req GetProgressRequest) (*GetProgressResponse, error) {
	if req.Path == "" {
		return nil, apierrors.MissingField("path")
	}
	batch := req.BatchSize
	if batch <= 0 {
		batch = 1
	}
	return &GetProgressResponse{
		Progress:    h.store.Get(req.Path),
		CanGenerate: h.store.CanGenerate(req.Path, batch),
	}, nil
}

// UpdateProgressRequest records a completed generation batch.
type UpdateProgressRequest struct {
	Path        string  `json:"path"`
	Generated   int     `json:"generated"`
	LastNumber  int     `json:"lastNumber"`
	TargetCount int     `json:"targetCount"`
	Quality     float64 `json:"quality"`
	Note        string  `json:"note"`
}

// UpdateProgressResponse returns the progress after the update.
type UpdateProgressResponse struct {
	Progress *models.GenerationProgress `json:"progress"`
}

// UpdateProgress adds a batch to a project's running progress.
func (h *ProgressHandler) UpdateProgress(ctx context.Context, req UpdateProgressRequest) (*UpdateProgressResponse, error) {
	if req.Path == "" {
		return nil, apierrors.MissingField("path")
	}
	pr := h.store.Update(req.Path, req.Generated, req.LastNumber, req.TargetCount, req.Quality, req.Note)
	return &UpdateProgressResponse{Progress: pr}, nil
}

// ResetProgressRequest clears progress for one project, or for all
// projects when Path is empty and All is true.
type ResetProgressRequest struct {
	Path string `query:"path"`
	All  bool   `query:"all"`
}

// ResetProgressResponse acknowledges the reset.
type ResetProgressResponse struct {
	Success bool `json:"success"`
}

// ResetProgress clears recorded progress.
func (h *ProgressHandler) ResetProgress(ctx context.Context, req ResetProgressRequest) (*ResetProgressResponse, error) {
	if req.All {
		h.store.ResetAll()
		return &ResetProgressResponse{Success: true}, nil
	}
	if req.Path == "" {
		return nil, apierrors.MissingField("path")
	}
	h.store.Reset(req.Path)
	return &ResetProgressResponse{Success: true}, nil
}
