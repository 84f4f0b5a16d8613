package models

import "time"

// ExtensionPrompt is the prompt shape served to the extension tabs.
// CategoryID/CategoryName refer to the first category attached.
type ExtensionPrompt struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	IsPublic     bool      `json:"is_public"`
	FolderID     *string   `json:"folder_id"`
	UserID       string    `json:"user_id"`
	CategoryID   *string   `json:"category_id"`
	CategoryName *string   `json:"category_name"`
}

// ExtensionPromptList is the body of the created/liked tab endpoints.
type ExtensionPromptList struct {
	Prompts []ExtensionPrompt `json:"prompts"`
	Count   int               `json:"count"`
}

// FilterTag is a selectable folder or category chip.
type FilterTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FilterOptions lists the tags a user can filter the extension tabs by.
type FilterOptions struct {
	Folders    []FilterTag `json:"folders"`
	Categories []FilterTag `json:"categories"`
}

// TokenValidation is the validate-token response.
type TokenValidation struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"userId,omitempty"`
	Error  string `json:"error,omitempty"`
}
