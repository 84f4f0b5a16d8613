package folders

import (
	"testing"

	"promptkit/internal/domain/models"
)

func ptr(s string) *string { return &s }

func folder(id, name string, parentID ...string) models.Folder {
	f := models.Folder{ID: id, Name: name, UserID: "user-1"}
	if len(parentID) > 0 {
		f.ParentID = ptr(parentID[0])
	}
	return f
}

func displayNames(entries []models.FlattenedFolder) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.DisplayName
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFlatten_RootsThenChildrenAlphabetical(t *testing.T) {
	input := []models.Folder{
		folder("c2", "Zeta child", "r2"),
		folder("r1", "Writing"),
		folder("c1", "Blog", "r1"),
		folder("r2", "Coding"),
		folder("c3", "Apis", "r2"),
	}

	got := displayNames(Flatten(input))
	want := []string{"Coding", "Writing", "— Apis", "— Blog", "— Zeta child"}

	if !equalStrings(got, want) {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}
}

func TestFlatten_EntriesReferenceRootsInOutput(t *testing.T) {
	input := []models.Folder{
		folder("r1", "A"),
		folder("c1", "B", "r1"),
		folder("g1", "C", "c1"),      // depth 2
		folder("o1", "D", "missing"), // orphan
		folder("r2", "E"),
		folder("c2", "F", "r2"),
	}

	entries := Flatten(input)

	roots := make(map[string]bool)
	for _, e := range entries {
		if e.ParentID == nil {
			roots[e.ID] = true
		}
	}
	for _, e := range entries {
		if e.ParentID != nil && !roots[*e.ParentID] {
			t.Errorf("entry %s references %s which is not a root in the output", e.ID, *e.ParentID)
		}
	}

	seenChild := false
	for _, e := range entries {
		if e.ParentID != nil {
			seenChild = true
		} else if seenChild {
			t.Errorf("root %s appears after a child entry", e.ID)
		}
	}
}

func TestFlattenReport_DropsDeepAndOrphanFolders(t *testing.T) {
	input := []models.Folder{
		folder("r1", "Root"),
		folder("c1", "Child", "r1"),
		folder("g1", "Grandchild", "c1"),
		folder("o1", "Orphan", "gone"),
	}

	entries, dropped := FlattenReport(input)

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(entries), displayNames(entries))
	}

	reasons := make(map[string]DropReason)
	for _, d := range dropped {
		reasons[d.ID] = d.Reason
	}
	if reasons["g1"] != DropTooDeep {
		t.Errorf("g1 reason = %q, want %q", reasons["g1"], DropTooDeep)
	}
	if reasons["o1"] != DropOrphan {
		t.Errorf("o1 reason = %q, want %q", reasons["o1"], DropOrphan)
	}
}

func TestFlatten_ChildEntryFields(t *testing.T) {
	entries := Flatten([]models.Folder{
		folder("r1", "Root"),
		folder("c1", "Child", "r1"),
	})

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	root, child := entries[0], entries[1]
	if root.DisplayName != "Root" || root.ParentID != nil {
		t.Errorf("root entry = %+v", root)
	}
	if child.Name != "Child" {
		t.Errorf("child name = %q, want Child", child.Name)
	}
	if child.DisplayName != "— Child" {
		t.Errorf("child display name = %q, want %q", child.DisplayName, "— Child")
	}
	if child.ParentID == nil || *child.ParentID != "r1" {
		t.Errorf("child parent = %v, want r1", child.ParentID)
	}
}

func TestFlatten_EqualNamesOrderedByID(t *testing.T) {
	entries := Flatten([]models.Folder{
		folder("b", "Same"),
		folder("a", "Same"),
	})
	if entries[0].ID != "a" || entries[1].ID != "b" {
		t.Errorf("expected ids [a b], got [%s %s]", entries[0].ID, entries[1].ID)
	}
}

func TestFlatten_Empty(t *testing.T) {
	entries, dropped := FlattenReport(nil)
	if len(entries) != 0 || len(dropped) != 0 {
		t.Errorf("expected empty output, got %v / %v", entries, dropped)
	}
	if entries == nil {
		t.Error("entries should be an empty slice, not nil")
	}
}

func TestFlatten_EmptyParentIDIsRoot(t *testing.T) {
	f := folder("r1", "Root")
	f.ParentID = ptr("")
	entries := Flatten([]models.Folder{f})
	if len(entries) != 1 || entries[0].ParentID != nil {
		t.Errorf("empty parent id should be treated as root, got %+v", entries)
	}
}

func TestFlatten_WithRecursion(t *testing.T) {
	input := []models.Folder{
		folder("r2", "Beta"),
		folder("g1", "Deep", "c1"),
		folder("r1", "Alpha"),
		folder("c2", "Second", "r1"),
		folder("c1", "First", "r1"),
		folder("x1", "Loop A", "x2"),
		folder("x2", "Loop B", "x1"),
		folder("o1", "Orphan", "missing"),
	}

	entries, dropped := FlattenReport(input, WithRecursion())

	got := displayNames(entries)
	want := []string{"Alpha", "— First", "— — Deep", "— Second", "Beta"}
	if !equalStrings(got, want) {
		t.Errorf("recursive Flatten() = %v, want %v", got, want)
	}

	if entries[2].ParentID == nil || *entries[2].ParentID != "c1" {
		t.Errorf("deep entry parent = %v, want c1", entries[2].ParentID)
	}

	reasons := make(map[string]DropReason)
	for _, d := range dropped {
		reasons[d.ID] = d.Reason
	}
	if reasons["x1"] != DropUnreachable || reasons["x2"] != DropUnreachable {
		t.Errorf("cyclic folders should be unreachable, got %v", reasons)
	}
	if reasons["o1"] != DropOrphan {
		t.Errorf("o1 reason = %q, want orphan", reasons["o1"])
	}
}
