package services

import (
	"context"

	"promptkit/internal/domain/models"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a new folder
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves a folder
	GetFolder(ctx context.Context, id, userID string) (*models.Folder, error)

	// GetFolderContents returns the folder page: subfolders, prompts and parent breadcrumb
	GetFolderContents(ctx context.Context, id, userID string) (*models.FolderContents, error)

	// ListFolders lists all folders of a user ordered by name
	ListFolders(ctx context.Context, userID string) ([]models.Folder, error)

	// ParentOptions returns the flattened parent picker for the folder form.
	// editingID excludes that folder and its descendants; empty for create.
	ParentOptions(ctx context.Context, userID, editingID string) ([]models.FlattenedFolder, error)

	// UpdateFolder renames, describes or moves a folder
	UpdateFolder(ctx context.Context, id string, req *UpdateFolderRequest) (*models.Folder, error)

	// DeleteFolder deletes a folder; its children and prompts are detached
	DeleteFolder(ctx context.Context, id, userID string) error
}

// OptionalString carries PATCH tri-state semantics without JSON tags:
//   - Present=false: leave unchanged
//   - Present=true, Value=nil: clear
//   - Present=true, Value set: replace
type OptionalString struct {
	Present bool
	Value   *string
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	UserID      string  `json:"-"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"` // null for root folders
}

// UpdateFolderRequest represents a folder update request
type UpdateFolderRequest struct {
	UserID      string
	Name        *string
	Description OptionalString
	ParentID    OptionalString // null or "" moves to root
}
