package models

import (
	"time"
)

type Folder struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	ParentID    *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsRoot reports whether the folder has no parent.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil || *f.ParentID == ""
}

// FlattenedFolder is a select-control entry derived from the folder list.
// DisplayName carries the indentation marker for child folders.
type FlattenedFolder struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	ParentID    *string `json:"parentId,omitempty"`
}

// FolderRef is the minimal id/name pair used for breadcrumbs.
type FolderRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FolderContents is a folder page: the folder, its direct subfolders,
// the prompts filed in it and the parent for breadcrumb navigation.
type FolderContents struct {
	Folder     *Folder    `json:"folder"`
	Parent     *FolderRef `json:"parent,omitempty"`
	Subfolders []Folder   `json:"subfolders"`
	Prompts    []Prompt   `json:"prompts"`
}
