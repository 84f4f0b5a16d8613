package postgres

import "fmt"

// Schema returns the DDL for all tables. Statements are idempotent.
//
// Folder and prompt foreign keys to folders use ON DELETE SET NULL so that
// deleting a folder detaches its children and prompts instead of failing.
func Schema(t *TableNames) []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			full_name TEXT,
			avatar_url TEXT,
			website TEXT,
			bio TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, t.Profiles),

		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL,
			parent_id UUID REFERENCES %s(id) ON DELETE SET NULL,
			name TEXT NOT NULL,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT %s_no_self_parent CHECK (parent_id IS NULL OR parent_id <> id),
			CONSTRAINT %s_unique_name UNIQUE NULLS NOT DISTINCT (user_id, parent_id, name)
		)`, t.Folders, t.Folders, t.Folders, t.Folders),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_user_idx ON %s(user_id)`, t.Folders, t.Folders),

		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL UNIQUE,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, t.Categories),

		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL,
			folder_id UUID REFERENCES %s(id) ON DELETE SET NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			description TEXT,
			is_public BOOLEAN NOT NULL DEFAULT FALSE,
			copy_count INTEGER NOT NULL DEFAULT 0,
			view_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, t.Prompts, t.Folders),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_user_idx ON %s(user_id)`, t.Prompts, t.Prompts),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_folder_idx ON %s(folder_id)`, t.Prompts, t.Prompts),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_public_idx ON %s(is_public, created_at DESC)`, t.Prompts, t.Prompts),

		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			prompt_id UUID NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			category_id UUID NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (prompt_id, category_id)
		)`, t.PromptCategories, t.Prompts, t.Categories),

		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			prompt_id UUID NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			user_id UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (prompt_id, user_id)
		)`, t.PromptLikes, t.Prompts),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_user_idx ON %s(user_id, created_at DESC)`, t.PromptLikes, t.PromptLikes),
	}
}

// DropStatements drops every table, dependents first.
func DropStatements(t *TableNames) []string {
	all := t.All()
	stmts := make([]string, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		stmts = append(stmts, fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, all[i]))
	}
	return stmts
}
