package sorting

import (
	"strings"
	"testing"
)

func TestRegistry_Resolve(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	tests := []struct {
		key  string
		want string
	}{
		{key: "newest", want: "newest"},
		{key: "most_liked", want: "most_liked"},
		{key: "", want: Trending},
		{key: "random", want: Trending},
		{key: "'; DROP TABLE prompts; --", want: Trending},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := r.Resolve(tt.key).Key; got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestRegistry_OrderBy(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	tests := []struct {
		key  string
		want string
	}{
		{key: "trending", want: "p.copy_count DESC, p.created_at DESC, p.id ASC"},
		{key: "oldest", want: "p.created_at ASC, p.id ASC"},
		{key: "most_liked", want: "like_count DESC, p.created_at DESC, p.id ASC"},
		{key: "bogus", want: "p.copy_count DESC, p.created_at DESC, p.id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := r.OrderBy(tt.key); got != tt.want {
				t.Errorf("OrderBy(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestRegistry_OptionsInCatalogOrder(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	var keys []string
	for _, o := range r.Options() {
		keys = append(keys, o.Key)
	}
	want := "trending,newest,oldest,most_copied,most_liked,most_viewed"
	if got := strings.Join(keys, ","); got != want {
		t.Errorf("Options() keys = %s, want %s", got, want)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "missing default", yaml: "default: nope\noptions:\n  - key: a\n    order:\n      - {column: x, direction: asc}\n"},
		{name: "bad direction", yaml: "options:\n  - key: trending\n    order:\n      - {column: x, direction: sideways}\n"},
		{name: "no columns", yaml: "options:\n  - key: trending\n"},
		{name: "duplicate", yaml: "options:\n  - key: trending\n    order: [{column: x, direction: asc}]\n  - key: trending\n    order: [{column: y, direction: asc}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parse([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
