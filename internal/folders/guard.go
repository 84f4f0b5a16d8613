package folders

import "promptkit/internal/domain/models"

// ParentIndex maps folder id to parent id ("" for roots).
type ParentIndex map[string]string

// NewParentIndex indexes the parent links of folders.
func NewParentIndex(folders []models.Folder) ParentIndex {
	idx := make(ParentIndex, len(folders))
	for _, f := range folders {
		if _, seen := idx[f.ID]; seen {
			continue
		}
		if f.IsRoot() {
			idx[f.ID] = ""
		} else {
			idx[f.ID] = *f.ParentID
		}
	}
	return idx
}

// IsDescendantOrSelf reports whether candidateID is targetID or one of its
// transitive descendants.
//
// The parent chain is followed at most len(idx) steps. A chain that does not
// reach a root or targetID within that bound is corrupt (cyclic) and is
// reported as a descendant so callers exclude it.
func (idx ParentIndex) IsDescendantOrSelf(candidateID, targetID string) bool {
	if candidateID == targetID {
		return true
	}
	if _, ok := idx[candidateID]; !ok {
		return false
	}

	current := candidateID
	for steps := 0; steps < len(idx); steps++ {
		parent, ok := idx[current]
		if !ok || parent == "" {
			return false
		}
		if parent == targetID {
			return true
		}
		current = parent
	}
	return true
}

// SelectableParents removes editingID and its descendants from entries.
// An empty editingID (create flow) returns entries unchanged.
func SelectableParents(entries []models.FlattenedFolder, idx ParentIndex, editingID string) []models.FlattenedFolder {
	if editingID == "" {
		return entries
	}

	selectable := make([]models.FlattenedFolder, 0, len(entries))
	for _, e := range entries {
		if idx.IsDescendantOrSelf(e.ID, editingID) {
			continue
		}
		selectable = append(selectable, e)
	}
	return selectable
}

// ParentOptions is the parent picker for a folder form: the flattened list
// with the cycle guard applied for editingID.
func ParentOptions(all []models.Folder, editingID string, opts ...Option) []models.FlattenedFolder {
	return SelectableParents(Flatten(all, opts...), NewParentIndex(all), editingID)
}
