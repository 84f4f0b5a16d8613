package service

import "testing"

func TestTextSanitizer_Clean(t *testing.T) {
	s := NewTextSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Marketing", want: "Marketing"},
		{name: "trims", input: "  Blog  ", want: "Blog"},
		{name: "strips tags", input: "<b>Bold</b> name", want: "Bold name"},
		{name: "drops script", input: "<script>alert(1)</script>Safe", want: "Safe"},
		{name: "keeps ampersand", input: "Q&A", want: "Q&A"},
		{name: "keeps comparison", input: "a < b", want: "a < b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTextSanitizer_CleanPtr(t *testing.T) {
	s := NewTextSanitizer()

	if s.CleanPtr(nil) != nil {
		t.Error("nil should stay nil")
	}
	blank := "  <i></i> "
	if s.CleanPtr(&blank) != nil {
		t.Error("blank text should become nil")
	}
	text := "<p>hello</p>"
	if got := s.CleanPtr(&text); got == nil || *got != "hello" {
		t.Errorf("CleanPtr = %v", got)
	}
}
