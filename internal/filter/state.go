package filter

import "fmt"

// Tab identifies an extension prompt list.
type Tab string

const (
	TabCreated Tab = "created"
	TabLiked   Tab = "liked"
)

// ParseTab validates a tab name.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabCreated, TabLiked:
		return Tab(s), nil
	default:
		return "", fmt.Errorf("unknown tab %q (want created or liked)", s)
	}
}

// State holds the selection of each tab.
type State struct {
	Created Selection
	Liked   Selection
}

// NewState starts both tabs at {all}.
func NewState() State {
	return State{Created: NewSelection(), Liked: NewSelection()}
}

// Selection returns the selection of tab.
func (s State) Selection(tab Tab) Selection {
	if tab == TabLiked {
		return s.Liked
	}
	return s.Created
}

// Action is a chip click on one tab.
type Action struct {
	Tab Tab
	Tag string
}

// Reduce applies a to s. Unknown tabs leave s unchanged.
func Reduce(s State, a Action) State {
	switch a.Tab {
	case TabCreated:
		s.Created = s.Created.Click(a.Tag)
	case TabLiked:
		s.Liked = s.Liked.Click(a.Tag)
	}
	return s
}

// Prune drops active tags that are no longer offered as chips, so a
// deleted folder cannot leave a tab filtered with nothing to click off.
func Prune(s State, known KnownTags) State {
	s.Created = s.Created.Retain(known.Has)
	s.Liked = s.Liked.Retain(known.Has)
	return s
}
