package fzf

import (
	"slices"
	"strings"
)

// Match evaluates query against every label from scratch.
func Match(mode Mode, query string, labels []string) []bool {
	f := NewFilter(mode, labels)
	f.Update(query)
	return f.VisibleMask()
}

// Filter holds per-label visibility and cursor state between keystrokes. When a
// new query only extends the previous one, matching resumes from the cached
// cursors instead of starting over.
type Filter struct {
	mode   Mode
	labels []string

	query string
	units []string

	// cursors[i] is the byte offset where the last unit matched labels[i], or -1.
	cursors []int
	visible []bool
}

// NewFilter returns a filter with every label visible.
func NewFilter(mode Mode, labels []string) *Filter {
	f := &Filter{mode: mode}
	f.SetLabels(labels)
	return f
}

// Mode returns the current strategy.
func (f *Filter) Mode() Mode {
	return f.mode
}

// Query returns the last query passed to Update.
func (f *Filter) Query() string {
	return f.query
}

// SetMode switches strategy and re-evaluates the current query.
func (f *Filter) SetMode(mode Mode) {
	f.mode = mode
	q := f.query
	f.reset()
	f.Update(q)
}

// SetLabels replaces the label list and re-evaluates the current query.
func (f *Filter) SetLabels(labels []string) {
	f.labels = labels
	f.cursors = make([]int, len(labels))
	f.visible = make([]bool, len(labels))
	q := f.query
	f.reset()
	f.Update(q)
}

// Update evaluates query.
func (f *Filter) Update(query string) {
	units := Units(f.mode, query)

	switch {
	case f.mode == Exact && f.query != "" && strings.Contains(query, f.query):
		// a label containing query also contains the previous query
		for i, label := range f.labels {
			if !f.visible[i] {
				continue
			}
			if idx := strings.Index(label, query); idx >= 0 {
				f.cursors[i] = idx
			} else {
				f.visible[i] = false
				f.cursors[i] = -1
			}
		}
	case f.mode != Exact && isPrefix(f.units, units):
		f.advance(units[len(f.units):])
	default:
		f.reset()
		f.advance(units)
	}

	f.query = query
	f.units = units
}

// Reset makes every label visible and clears the query.
func (f *Filter) Reset() {
	f.reset()
	f.query = ""
	f.units = nil
}

func (f *Filter) reset() {
	for i := range f.labels {
		f.cursors[i] = -1
		f.visible[i] = true
	}
	f.units = nil
}

// advance matches each unit after the cursor of every still-visible label.
// A label that misses one unit stays hidden for the rest of the query.
func (f *Filter) advance(units []string) {
	for _, u := range units {
		for i, label := range f.labels {
			if !f.visible[i] {
				continue
			}
			from := f.cursors[i] + 1
			idx := strings.Index(label[from:], u)
			if idx < 0 {
				f.visible[i] = false
				continue
			}
			f.cursors[i] = from + idx
		}
	}
}

// Visible reports whether label i passes the current query.
func (f *Filter) Visible(i int) bool {
	return f.visible[i]
}

// Cursor returns the match position of label i for the last unit, or -1.
func (f *Filter) Cursor(i int) int {
	if !f.visible[i] {
		return -1
	}
	return f.cursors[i]
}

// VisibleMask returns a copy of the visibility of every label.
func (f *Filter) VisibleMask() []bool {
	return slices.Clone(f.visible)
}

// VisibleCount returns the number of visible labels.
func (f *Filter) VisibleCount() int {
	n := 0
	for _, v := range f.visible {
		if v {
			n++
		}
	}
	return n
}

// Len returns the number of labels.
func (f *Filter) Len() int {
	return len(f.labels)
}

func isPrefix(prefix, units []string) bool {
	return len(prefix) <= len(units) && slices.Equal(prefix, units[:len(prefix)])
}
