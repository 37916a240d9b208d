package model

// CollapseState maps a section title to whether its body is shown.
// Duplicate titles share one entry.
type CollapseState map[string]bool

// Reconcile derives the state for a freshly split document. Known titles
// keep their flag, new titles start closed except the first section, and
// titles that left the document are dropped. Sections are visited in
// order, so the last occurrence of a duplicate title decides its default.
func Reconcile(sections []Section, previous CollapseState) CollapseState {
	out := make(CollapseState, len(sections))
	for i, s := range sections {
		if open, ok := previous[s.Title]; ok {
			out[s.Title] = open
			continue
		}
		out[s.Title] = i == 0
	}
	return out
}

// Toggle flips the flag for title. An unknown title is treated as closed,
// so toggling it opens it.
func Toggle(state CollapseState, title string) CollapseState {
	out := state.Clone()
	out[title] = !out[title]
	return out
}

func SetAll(state CollapseState, open bool) CollapseState {
	out := make(CollapseState, len(state))
	for title := range state {
		out[title] = open
	}
	return out
}

func AnyOpen(state CollapseState) bool {
	for _, open := range state {
		if open {
			return true
		}
	}
	return false
}

// IsOpen reports the flag for title; stale or unknown titles read as closed.
func (s CollapseState) IsOpen(title string) bool {
	return s[title]
}

func (s CollapseState) Clone() CollapseState {
	out := make(CollapseState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// BulkActionLabel names what the global expand/collapse control does next.
func BulkActionLabel(state CollapseState) string {
	if AnyOpen(state) {
		return "Collapse all"
	}
	return "Expand all"
}
