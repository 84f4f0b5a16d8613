package catalog

import "testing"

func TestDefaultCategories(t *testing.T) {
	cats, err := DefaultCategories()
	if err != nil {
		t.Fatalf("DefaultCategories: %v", err)
	}
	if len(cats) == 0 {
		t.Fatal("expected at least one category")
	}
	if cats[0].Name != "Writing" {
		t.Errorf("first category = %q, want Writing", cats[0].Name)
	}
	for _, c := range cats {
		if c.ID != "" {
			t.Errorf("category %q should not carry an id", c.Name)
		}
		if c.Description == nil || *c.Description == "" {
			t.Errorf("category %q has no description", c.Name)
		}
	}
}
