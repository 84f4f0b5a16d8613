// Package folders derives select-control views from a user's flat folder list.
//
// Flatten produces the parent-picker ordering used by the folder and prompt
// forms: root folders first, then their direct children marked with an
// em-dash. Folders nested deeper than one level are left out unless the
// caller opts into WithRecursion. SelectableParents applies the cycle guard
// used when a folder is being moved.
package folders

import (
	"cmp"
	"slices"
	"strings"

	"promptkit/internal/domain/models"
)

// ChildPrefix marks one level of nesting in DisplayName.
const ChildPrefix = "— "

// DropReason explains why a folder is missing from the flattened output.
type DropReason string

const (
	// DropOrphan: parent_id points at a folder not in the list.
	DropOrphan DropReason = "orphan"
	// DropTooDeep: the parent is itself a child (depth >= 2).
	DropTooDeep DropReason = "too_deep"
	// DropUnreachable: no path to a root (cyclic parent chain).
	DropUnreachable DropReason = "unreachable"
)

// Dropped describes a folder excluded from the flattened output.
type Dropped struct {
	ID       string
	Name     string
	ParentID string
	Reason   DropReason
}

type options struct {
	recursive bool
}

// Option tunes flattening.
type Option func(*options)

// WithRecursion flattens the full hierarchy depth-first instead of stopping
// at depth one. Each level is sorted by name and DisplayName repeats
// ChildPrefix once per level.
func WithRecursion() Option {
	return func(o *options) { o.recursive = true }
}

// Flatten returns the display-ordered entries for folders.
func Flatten(folders []models.Folder, opts ...Option) []models.FlattenedFolder {
	entries, _ := FlattenReport(folders, opts...)
	return entries
}

// FlattenReport is Flatten plus the list of folders that were left out.
func FlattenReport(folders []models.Folder, opts ...Option) ([]models.FlattenedFolder, []Dropped) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	byID := make(map[string]*models.Folder, len(folders))
	for i := range folders {
		if _, seen := byID[folders[i].ID]; !seen {
			byID[folders[i].ID] = &folders[i]
		}
	}

	if o.recursive {
		return flattenRecursive(folders, byID)
	}
	return flattenShallow(folders, byID)
}

func flattenShallow(folders []models.Folder, byID map[string]*models.Folder) ([]models.FlattenedFolder, []Dropped) {
	var roots, children []models.Folder
	var dropped []Dropped

	for _, f := range folders {
		if f.IsRoot() {
			roots = append(roots, f)
			continue
		}
		parent, ok := byID[*f.ParentID]
		switch {
		case !ok:
			dropped = append(dropped, drop(f, DropOrphan))
		case !parent.IsRoot():
			dropped = append(dropped, drop(f, DropTooDeep))
		default:
			children = append(children, f)
		}
	}

	slices.SortStableFunc(roots, byName)
	slices.SortStableFunc(children, byName)

	entries := make([]models.FlattenedFolder, 0, len(roots)+len(children))
	for _, f := range roots {
		entries = append(entries, entry(f, 0))
	}
	for _, f := range children {
		entries = append(entries, entry(f, 1))
	}
	return entries, dropped
}

func flattenRecursive(folders []models.Folder, byID map[string]*models.Folder) ([]models.FlattenedFolder, []Dropped) {
	childrenOf := make(map[string][]models.Folder)
	var roots []models.Folder
	for _, f := range folders {
		if f.IsRoot() {
			roots = append(roots, f)
			continue
		}
		childrenOf[*f.ParentID] = append(childrenOf[*f.ParentID], f)
	}

	slices.SortStableFunc(roots, byName)
	for id := range childrenOf {
		slices.SortStableFunc(childrenOf[id], byName)
	}

	entries := make([]models.FlattenedFolder, 0, len(folders))
	visited := make(map[string]bool, len(folders))

	var walk func(f models.Folder, depth int)
	walk = func(f models.Folder, depth int) {
		if visited[f.ID] {
			return
		}
		visited[f.ID] = true
		entries = append(entries, entry(f, depth))
		for _, child := range childrenOf[f.ID] {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}

	var dropped []Dropped
	for _, f := range folders {
		if visited[f.ID] {
			continue
		}
		if _, ok := byID[*f.ParentID]; !ok {
			dropped = append(dropped, drop(f, DropOrphan))
		} else {
			dropped = append(dropped, drop(f, DropUnreachable))
		}
	}
	return entries, dropped
}

func entry(f models.Folder, depth int) models.FlattenedFolder {
	e := models.FlattenedFolder{
		ID:          f.ID,
		Name:        f.Name,
		DisplayName: strings.Repeat(ChildPrefix, depth) + f.Name,
	}
	if depth > 0 {
		parentID := *f.ParentID
		e.ParentID = &parentID
	}
	return e
}

func drop(f models.Folder, reason DropReason) Dropped {
	d := Dropped{ID: f.ID, Name: f.Name, Reason: reason}
	if f.ParentID != nil {
		d.ParentID = *f.ParentID
	}
	return d
}

// byName orders by name, then id so equal names stay deterministic.
func byName(a, b models.Folder) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
