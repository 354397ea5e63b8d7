// Package search keeps the finder state over the mirror's flat file list.
package search

import (
	"github.com/samber/lo"

	"github.com/hayeah/dirproject/fzf"
	"github.com/hayeah/dirproject/mirror"
)

// Session is the query, mode, visibility and selection of one finder. Entries
// are matched by name; Node.Visible is written on every re-evaluation.
type Session struct {
	entries []*mirror.Node
	filter  *fzf.Filter

	// indexes into entries, -1 when unset
	selected int
	first    int
	last     int
}

// NewSession starts a session with every entry visible and nothing selected.
func NewSession(entries []*mirror.Node, mode fzf.Mode) *Session {
	s := &Session{
		entries:  entries,
		filter:   fzf.NewFilter(mode, labels(entries)),
		selected: -1,
	}
	s.apply()
	return s
}

func labels(entries []*mirror.Node) []string {
	return lo.Map(entries, func(n *mirror.Node, _ int) string { return n.Name })
}

// Query returns the raw query text.
func (s *Session) Query() string {
	return s.filter.Query()
}

// Mode returns the match strategy.
func (s *Session) Mode() fzf.Mode {
	return s.filter.Mode()
}

// OnQueryChanged re-evaluates visibility for text and clears the selection.
func (s *Session) OnQueryChanged(text string) {
	s.filter.Update(text)
	s.apply()
	s.selected = -1
}

// OnQueryCleared makes every entry visible and clears the selection.
func (s *Session) OnQueryCleared() {
	s.filter.Reset()
	s.apply()
	s.selected = -1
}

// SetMode switches the match strategy and re-applies the query.
func (s *Session) SetMode(mode fzf.Mode) {
	s.filter.SetMode(mode)
	s.apply()
	s.keepSelection()
}

// SetEntries replaces the entry list and re-applies the query. The selection
// follows its path if that entry is still present and visible.
func (s *Session) SetEntries(entries []*mirror.Node) {
	var selectedPath string
	if n, ok := s.Selected(); ok {
		selectedPath = n.FullPath
	}

	s.entries = entries
	s.filter.SetLabels(labels(entries))
	s.apply()

	s.selected = -1
	if selectedPath != "" {
		_, idx, found := lo.FindIndexOf(entries, func(n *mirror.Node) bool { return n.FullPath == selectedPath })
		if found && entries[idx].Visible {
			s.selected = idx
		}
	}
}

func (s *Session) keepSelection() {
	if s.selected >= 0 && !s.entries[s.selected].Visible {
		s.selected = -1
	}
}

// apply copies the filter's visibility onto the nodes and recomputes anchors.
func (s *Session) apply() {
	s.first, s.last = -1, -1
	for i, n := range s.entries {
		n.Visible = s.filter.Visible(i)
		if !n.Visible {
			continue
		}
		if s.first < 0 {
			s.first = i
		}
		s.last = i
	}
}

// Selected returns the selected entry.
func (s *Session) Selected() (*mirror.Node, bool) {
	if s.selected < 0 {
		return nil, false
	}
	return s.entries[s.selected], true
}

// SelectedIndex returns the position of the selected entry in Entries, or -1.
func (s *Session) SelectedIndex() int {
	return s.selected
}

// SelectFirstVisible selects the first visible entry. It reports false when
// nothing is visible.
func (s *Session) SelectFirstVisible() bool {
	if s.first < 0 {
		return false
	}
	s.selected = s.first
	return true
}

// SelectLastVisible selects the last visible entry.
func (s *Session) SelectLastVisible() bool {
	if s.last < 0 {
		return false
	}
	s.selected = s.last
	return true
}

// SelectNext moves to the next visible entry. Without a selection it selects
// the first visible one. At the end of the list the selection stays put.
func (s *Session) SelectNext() bool {
	if s.selected < 0 {
		return s.SelectFirstVisible()
	}
	for i := s.selected + 1; i < len(s.entries); i++ {
		if s.entries[i].Visible {
			s.selected = i
			return true
		}
	}
	return false
}

// SelectPrevious moves to the previous visible entry. Without a selection it
// selects the last visible one.
func (s *Session) SelectPrevious() bool {
	if s.selected < 0 {
		return s.SelectLastVisible()
	}
	for i := s.selected - 1; i >= 0; i-- {
		if s.entries[i].Visible {
			s.selected = i
			return true
		}
	}
	return false
}

// Entries returns every entry, visible or not.
func (s *Session) Entries() []*mirror.Node {
	return s.entries
}

// Visible returns the visible entries in order.
func (s *Session) Visible() []*mirror.Node {
	return lo.Filter(s.entries, func(n *mirror.Node, _ int) bool { return n.Visible })
}

// Counts returns the number of visible entries and the total.
func (s *Session) Counts() (visible, total int) {
	return s.filter.VisibleCount(), len(s.entries)
}
