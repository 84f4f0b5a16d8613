package filter

import "promptkit/internal/domain/models"

// KnownTags are the folder and category ids offered as chips.
type KnownTags struct {
	Folders    map[string]struct{}
	Categories map[string]struct{}
}

// NewKnownTags indexes the ids of opts.
func NewKnownTags(opts models.FilterOptions) KnownTags {
	k := KnownTags{
		Folders:    make(map[string]struct{}, len(opts.Folders)),
		Categories: make(map[string]struct{}, len(opts.Categories)),
	}
	for _, f := range opts.Folders {
		k.Folders[f.ID] = struct{}{}
	}
	for _, c := range opts.Categories {
		k.Categories[c.ID] = struct{}{}
	}
	return k
}

// Has reports whether id is a known folder or category tag.
func (k KnownTags) Has(id string) bool {
	return k.isFolder(id) || k.isCategory(id)
}

func (k KnownTags) isFolder(id string) bool {
	_, ok := k.Folders[id]
	return ok
}

func (k KnownTags) isCategory(id string) bool {
	_, ok := k.Categories[id]
	return ok
}

// Prompts returns the prompts matching sel, preserving input order.
//
// With {all} the input is returned unchanged. Otherwise a prompt matches
// when its folder is an active known folder tag or its category is an
// active known category tag.
func Prompts(prompts []models.ExtensionPrompt, sel Selection, known KnownTags) []models.ExtensionPrompt {
	if sel.IsAll() {
		return prompts
	}

	out := make([]models.ExtensionPrompt, 0, len(prompts))
	for _, p := range prompts {
		if matches(p, sel, known) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p models.ExtensionPrompt, sel Selection, known KnownTags) bool {
	if p.FolderID != nil && sel.Has(*p.FolderID) && known.isFolder(*p.FolderID) {
		return true
	}
	if p.CategoryID != nil && sel.Has(*p.CategoryID) && known.isCategory(*p.CategoryID) {
		return true
	}
	return false
}
