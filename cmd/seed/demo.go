package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"promptkit/internal/domain"
	"promptkit/internal/domain/models"
	"promptkit/internal/domain/services"
)

type demoFolder struct {
	name   string
	parent string // name of a root folder, "" for roots
}

type demoPrompt struct {
	title      string
	content    string
	folder     string
	categories []string
	public     bool
}

var demoFolders = []demoFolder{
	{name: "Work"},
	{name: "Personal"},
	{name: "Emails", parent: "Work"},
	{name: "Code Review", parent: "Work"},
}

var demoPrompts = []demoPrompt{
	{
		title:      "Polite follow-up",
		content:    "Write a short, friendly follow-up email to {{name}} about {{topic}}. Keep it under 120 words.",
		folder:     "Emails",
		categories: []string{"Writing", "Business"},
		public:     true,
	},
	{
		title:      "Explain this diff",
		content:    "Review the following diff. List bugs first, then style issues, then questions for the author.\n\n{{diff}}",
		folder:     "Code Review",
		categories: []string{"Coding"},
		public:     true,
	},
	{
		title:      "Weekly plan",
		content:    "Turn these notes into a prioritized plan for the week with one focus per day:\n\n{{notes}}",
		folder:     "Personal",
		categories: []string{"Productivity"},
	},
}

// seedDemoContent creates the demo folder tree and prompts through the
// services so validation and sanitizing apply. Re-running reuses folders
// that already exist.
func seedDemoContent(
	ctx context.Context,
	userID string,
	folderService services.FolderService,
	promptService services.PromptService,
	categories []models.Category,
) (int, error) {
	categoryIDs := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryIDs[c.Name] = c.ID
	}

	folderIDs := make(map[string]string)
	for _, f := range demoFolders {
		req := &services.CreateFolderRequest{UserID: userID, Name: f.name}
		if f.parent != "" {
			parentID := folderIDs[f.parent]
			req.ParentID = &parentID
		}

		folder, err := folderService.CreateFolder(ctx, req)
		var conflict *domain.ConflictError
		switch {
		case err == nil:
			folderIDs[f.name] = folder.ID
			log.Printf("  ✓ Folder %s", f.name)
		case errors.As(err, &conflict):
			folderIDs[f.name] = conflict.ResourceID
			log.Printf("  • Folder %s already exists", f.name)
		default:
			return 0, fmt.Errorf("folder %s: %w", f.name, err)
		}
	}

	created := 0
	for _, p := range demoPrompts {
		folderID := folderIDs[p.folder]
		req := &services.CreatePromptRequest{
			UserID:   userID,
			Title:    p.title,
			Content:  p.content,
			IsPublic: p.public,
			FolderID: &folderID,
		}
		for _, name := range p.categories {
			if id, ok := categoryIDs[name]; ok {
				req.CategoryIDs = append(req.CategoryIDs, id)
			}
		}

		if _, err := promptService.CreatePrompt(ctx, req); err != nil {
			return created, fmt.Errorf("prompt %q: %w", p.title, err)
		}
		created++
		log.Printf("  ✓ Prompt %q", p.title)
	}
	return created, nil
}
