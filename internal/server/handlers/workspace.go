package handlers

import (
	"context"
	"errors"
	"fmt"

	apierrors "github.com/lagsuite/ghosthq/internal/errors"
	"github.com/lagsuite/ghosthq/internal/models"
	"github.com/lagsuite/ghosthq/internal/storage"
)

// WorkspaceHandler serves the structural mutation operations.
type WorkspaceHandler struct {
	svc *storage.Service
}

// NewWorkspaceHandler creates a new workspace handler.
func NewWorkspaceHandler(svc *storage.Service) *WorkspaceHandler {
	return &WorkspaceHandler{svc: svc}
}

// MoveItemRequest moves an item identified by manifest ID.
type MoveItemRequest struct {
	ProjectRootPath string `json:"projectRootPath"`
	ItemID          string `json:"itemId"`
	TargetParentID  string `json:"targetParentId"`
}

// MoveItemResponse reports the move outcome plus the rescanned project.
type MoveItemResponse struct {
	Success        bool                     `json:"success"`
	UpdatedProject *models.ProjectStructure `json:"updatedProject"`
}

// MoveItem moves an item (and its manifest subtree) under a new parent.
func (h *WorkspaceHandler) MoveItem(ctx context.Context, req MoveItemRequest) (*MoveItemResponse, error) {
	if req.ProjectRootPath == "" {
		return nil, apierrors.MissingField("projectRootPath")
	}
	if req.ItemID == "" {
		return nil, apierrors.MissingField("itemId")
	}
	updated, err := h.svc.MoveItemByID(req.ProjectRootPath, req.ItemID, req.TargetParentID)
	if err != nil {
		return nil, err
	}
	return &MoveItemResponse{Success: true, UpdatedProject: updated}, nil
}

// OperationRequest is the action-dispatch envelope for file operations.
// Which fields matter depends on the action.
type OperationRequest struct {
	Action      string `json:"action"`
	ProjectPath string `json:"projectPath"`

	FileName   string `json:"fileName"`
	FolderName string `json:"folderName"`
	Content    string `json:"content"`
	ParentPath string `json:"parentPath"`

	FilePath string `json:"filePath"`

	OldPath string `json:"oldPath"`
	NewName string `json:"newName"`

	ItemPath         string `json:"itemPath"`
	TargetParentPath string `json:"targetParentPath"`

	Files []models.ImportFile `json:"files"`
}

// OperationResult is the tagged result of a file operation. Failed
// operations still produce HTTP 200; Success and Error carry the outcome.
type OperationResult struct {
	Success          bool                     `json:"success"`
	Message          string                   `json:"message"`
	Data             any                      `json:"data,omitempty"`
	Error            apierrors.ErrorCode      `json:"error,omitempty"`
	Errors           []string                 `json:"errors,omitempty"`
	UpdatedStructure *models.ProjectStructure `json:"updatedStructure,omitempty"`
}

// Operations dispatches a file operation by action name and returns its
// tagged result. Missing action/projectPath and unknown actions are the
// only request-level (HTTP 400) failures.
func (h *WorkspaceHandler) Operations(ctx context.Context, req OperationRequest) (*OperationResult, error) {
	if req.Action == "" || req.ProjectPath == "" {
		return nil, apierrors.MissingField("action and projectPath")
	}

	var result *OperationResult
	switch req.Action {
	case "getStructure":
		project, err := h.svc.Structure(req.ProjectPath)
		if err != nil {
			return nil, err
		}
		return &OperationResult{Success: true, Message: "Structure scanned", Data: project}, nil

	case "createFile":
		item, err := h.svc.CreateFile(req.ProjectPath, req.FileName, req.Content, req.ParentPath)
		result = operationResult(fmt.Sprintf("File created successfully: %s", req.FileName), item, err)

	case "createFolder":
		item, err := h.svc.CreateFolder(req.ProjectPath, req.FolderName, req.ParentPath)
		result = operationResult(fmt.Sprintf("Folder created successfully: %s", req.FolderName), item, err)

	case "updateContent":
		item, err := h.svc.UpdateFileContent(req.ProjectPath, req.FilePath, req.Content)
		result = operationResult("Content updated successfully", item, err)

	case "rename":
		item, err := h.svc.RenameItem(req.ProjectPath, req.OldPath, req.NewName)
		result = operationResult(fmt.Sprintf("Item renamed successfully: %s", req.NewName), item, err)

	case "delete":
		err := h.svc.DeleteItem(req.ProjectPath, req.ItemPath)
		result = operationResult("Item deleted successfully", nil, err)

	case "move":
		item, err := h.svc.MoveItem(req.ProjectPath, req.ItemPath, req.TargetParentPath)
		result = operationResult("Item moved successfully", item, err)

	case "import":
		imported, importErrors, err := h.svc.ImportFiles(req.ProjectPath, req.Files, req.ParentPath)
		result = operationResult(fmt.Sprintf("Imported %d files successfully", len(imported)), imported, err)
		result.Errors = importErrors
		if err == nil && len(importErrors) > 0 {
			result.Message = fmt.Sprintf("Imported %d files successfully (%d failed)", len(imported), len(importErrors))
		}

	default:
		return nil, apierrors.BadRequest("Unknown action: " + req.Action)
	}

	// Successful mutations also return the refreshed structure so the
	// editor can redraw without a second round trip.
	if result.Success {
		if project, err := h.svc.Structure(req.ProjectPath); err == nil {
			result.UpdatedStructure = project
		}
	}
	return result, nil
}

// operationResult folds a storage call into the tagged result shape.
// Typed API errors become {success: false, error: CODE}; anything else is
// an unexpected failure surfaced with the generic storage code.
func operationResult(successMessage string, data any, err error) *OperationResult {
	if err == nil {
		r := &OperationResult{Success: true, Message: successMessage}
		if data != nil {
			r.Data = data
		}
		return r
	}
	var ews apierrors.ErrorWithStatus
	if errors.As(err, &ews) {
		return &OperationResult{Success: false, Message: err.Error(), Error: ews.Code()}
	}
	return &OperationResult{Success: false, Message: err.Error(), Error: apierrors.ErrStorageError}
}
