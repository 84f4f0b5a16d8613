package folders

import (
	"testing"

	"promptkit/internal/domain/models"
)

func ids(entries []models.FlattenedFolder) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestParentOptions_ExcludesSelfAndChild(t *testing.T) {
	all := []models.Folder{
		folder("A", "A"),
		folder("B", "B", "A"),
		folder("C", "C"),
	}

	got := ids(ParentOptions(all, "A"))
	if !equalStrings(got, []string{"C"}) {
		t.Errorf("ParentOptions(editing A) = %v, want [C]", got)
	}
}

func TestParentOptions_CreateFlowKeepsEverything(t *testing.T) {
	all := []models.Folder{
		folder("A", "A"),
		folder("B", "B", "A"),
	}

	got := ids(ParentOptions(all, ""))
	if !equalStrings(got, []string{"A", "B"}) {
		t.Errorf("ParentOptions(create) = %v, want [A B]", got)
	}
}

func TestParentOptions_EditingChild(t *testing.T) {
	all := []models.Folder{
		folder("A", "A"),
		folder("B", "B", "A"),
		folder("D", "D", "A"),
	}

	got := ids(ParentOptions(all, "B"))
	if !equalStrings(got, []string{"A", "D"}) {
		t.Errorf("ParentOptions(editing B) = %v, want [A D]", got)
	}
}

func TestIsDescendantOrSelf(t *testing.T) {
	idx := NewParentIndex([]models.Folder{
		folder("root", "root"),
		folder("child", "child", "root"),
		folder("grand", "grand", "child"),
		folder("other", "other"),
		folder("dangling", "dangling", "missing"),
	})

	tests := []struct {
		name      string
		candidate string
		target    string
		want      bool
	}{
		{name: "self", candidate: "root", target: "root", want: true},
		{name: "direct child", candidate: "child", target: "root", want: true},
		{name: "transitive descendant", candidate: "grand", target: "root", want: true},
		{name: "ancestor is not descendant", candidate: "root", target: "grand", want: false},
		{name: "unrelated root", candidate: "other", target: "root", want: false},
		{name: "dangling parent reaches no target", candidate: "dangling", target: "root", want: false},
		{name: "unknown candidate", candidate: "nope", target: "root", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.IsDescendantOrSelf(tt.candidate, tt.target); got != tt.want {
				t.Errorf("IsDescendantOrSelf(%q, %q) = %v, want %v", tt.candidate, tt.target, got, tt.want)
			}
		})
	}
}

func TestIsDescendantOrSelf_CycleFailsClosed(t *testing.T) {
	// x1 -> x2 -> x1 never reaches a root
	idx := NewParentIndex([]models.Folder{
		folder("x1", "x1", "x2"),
		folder("x2", "x2", "x1"),
		folder("t", "t"),
	})

	if !idx.IsDescendantOrSelf("x1", "t") {
		t.Error("a cyclic chain should be treated as a descendant (excluded)")
	}

	got := ids(SelectableParents(Flatten([]models.Folder{
		folder("x1", "x1", "x2"),
		folder("x2", "x2", "x1"),
		folder("t", "t"),
	}, WithRecursion()), idx, "t"))
	if len(got) != 0 {
		t.Errorf("expected no selectable parents, got %v", got)
	}
}

func TestIsDescendantOrSelf_LongChainWithinBound(t *testing.T) {
	var all []models.Folder
	all = append(all, folder(idFor(0), idFor(0)))
	for i := 1; i < 20; i++ {
		all = append(all, folder(idFor(i), idFor(i), idFor(i-1)))
	}
	all = append(all, folder("target", "target"))
	idx := NewParentIndex(all)

	if idx.IsDescendantOrSelf(idFor(19), "target") {
		t.Error("deepest folder of an unrelated chain should not be a descendant")
	}
	if !idx.IsDescendantOrSelf(idFor(19), idFor(0)) {
		t.Error("deepest folder should descend from the chain root")
	}
}

func idFor(i int) string {
	return "f" + string(rune('a'+i))
}
