package models

import (
	"time"
)

type Prompt struct {
	ID          string          `json:"id" db:"id"`
	UserID      string          `json:"user_id" db:"user_id"`
	FolderID    *string         `json:"folder_id" db:"folder_id"`
	Title       string          `json:"title" db:"title"`
	Content     string          `json:"content" db:"content"`
	Description *string         `json:"description,omitempty" db:"description"`
	IsPublic    bool            `json:"is_public" db:"is_public"`
	CopyCount   int             `json:"copy_count" db:"copy_count"`
	LikeCount   int             `json:"like_count" db:"like_count"` // Computed from prompt_likes
	ViewCount   int             `json:"view_count" db:"view_count"`
	CategoryIDs []string        `json:"category_ids"`
	Profile     *ProfileSummary `json:"profile"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// VisibleTo reports whether userID may read the prompt.
// Anonymous callers pass an empty userID.
func (p *Prompt) VisibleTo(userID string) bool {
	return p.IsPublic || (userID != "" && p.UserID == userID)
}

// Preview truncates Content to at most n runes.
func (p *Prompt) Preview(n int) {
	r := []rune(p.Content)
	if len(r) > n {
		p.Content = string(r[:n])
	}
}

// PromptQuery describes an explore/listing request.
// ViewerID is the caller; prompts of other users are only listed when public.
type PromptQuery struct {
	CategoryID string
	Search     string
	Sort       string
	Page       int
	PageSize   int
	UserID     string
	IsPublic   *bool
	ViewerID   string
}

// Offset returns the row offset for the requested page.
func (q *PromptQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// PromptPage is one page of listing results.
type PromptPage struct {
	Prompts     []Prompt `json:"prompts"`
	TotalCount  int      `json:"totalCount"`
	TotalPages  int      `json:"totalPages"`
	CurrentPage int      `json:"currentPage"`
}

// LikeStatus is the like state of a prompt for the caller.
type LikeStatus struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}
