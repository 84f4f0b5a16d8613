package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer strips markup from short user-supplied text (names,
// titles, descriptions). Prompt content is stored verbatim.
//
// Thread-safe for concurrent use.
type TextSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer creates a sanitizer that removes all HTML.
func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

// Clean removes tags and surrounding whitespace. Entities escaped by the
// policy are decoded again so "a & b" round-trips unchanged.
func (s *TextSanitizer) Clean(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

// CleanPtr is Clean for optional fields. Blank results become nil.
func (s *TextSanitizer) CleanPtr(text *string) *string {
	if text == nil {
		return nil
	}
	cleaned := s.Clean(*text)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
