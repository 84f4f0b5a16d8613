// Package filter narrows the extension prompt tabs by folder and category
// tags.
package filter

import "slices"

// All is the tag meaning "no filtering".
const All = "all"

// Selection is the set of active tags for one tab.
// It is never empty and All never coexists with another tag.
type Selection struct {
	tags map[string]struct{}
}

// NewSelection returns {all}.
func NewSelection() Selection {
	return Selection{tags: map[string]struct{}{All: {}}}
}

// SelectionOf builds a selection from tags, normalising it the same way
// successive clicks would. No tags yields {all}.
func SelectionOf(tags ...string) Selection {
	s := NewSelection()
	for _, tag := range tags {
		if !s.Has(tag) {
			s = s.Click(tag)
		}
	}
	return s
}

// Click applies a chip click and returns the new selection; s is not
// modified.
func (s Selection) Click(tag string) Selection {
	if tag == "" || tag == All {
		return NewSelection()
	}

	next := make(map[string]struct{}, len(s.tags)+1)
	for t := range s.tags {
		if t != All {
			next[t] = struct{}{}
		}
	}

	if _, active := next[tag]; active {
		delete(next, tag)
	} else {
		next[tag] = struct{}{}
	}

	if len(next) == 0 {
		return NewSelection()
	}
	return Selection{tags: next}
}

// Retain keeps the active tags for which keep returns true. Dropping the
// last tag reverts to {all}.
func (s Selection) Retain(keep func(tag string) bool) Selection {
	if s.IsAll() {
		return s
	}

	next := make(map[string]struct{}, len(s.tags))
	for t := range s.tags {
		if keep(t) {
			next[t] = struct{}{}
		}
	}
	if len(next) == 0 {
		return NewSelection()
	}
	return Selection{tags: next}
}

// IsAll reports whether no filtering is active.
func (s Selection) IsAll() bool {
	if len(s.tags) == 0 {
		return true
	}
	_, ok := s.tags[All]
	return ok
}

// Has reports whether tag is active.
func (s Selection) Has(tag string) bool {
	if len(s.tags) == 0 {
		return tag == All
	}
	_, ok := s.tags[tag]
	return ok
}

// Tags returns the active tags sorted.
func (s Selection) Tags() []string {
	if len(s.tags) == 0 {
		return []string{All}
	}
	tags := make([]string, 0, len(s.tags))
	for t := range s.tags {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return tags
}
