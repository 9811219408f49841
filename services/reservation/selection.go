package reservation

// SelectionState models calendar range selection as pure data, independent of
// any rendering layer. A client drives it with events and reads Start/End
// back; Hover previews the range end while only the start is picked.
type SelectionState struct {
	Start string `json:"start,omitempty"` // "YYYY-MM-DD"
	End   string `json:"end,omitempty"`
	Hover string `json:"hover,omitempty"`
}

// Complete reports whether a full range has been selected.
func (s SelectionState) Complete() bool {
	return s.Start != "" && s.End != ""
}

// SelectionEvent is a calendar interaction.
type SelectionEvent interface {
	isSelectionEvent()
}

// DaySelected is a click/tap on a date.
type DaySelected struct{ Date string }

// DayHovered is a pointer move over a date.
type DayHovered struct{ Date string }

// SelectionCleared resets the selection.
type SelectionCleared struct{}

func (DaySelected) isSelectionEvent()      {}
func (DayHovered) isSelectionEvent()       {}
func (SelectionCleared) isSelectionEvent() {}

// ReduceSelection advances the selection state. Selecting before the current
// start, or selecting with a range already complete, restarts the selection
// at the chosen date. Dates compare lexically, which matches chronological
// order for the "YYYY-MM-DD" layout.
func ReduceSelection(s SelectionState, ev SelectionEvent) SelectionState {
	switch e := ev.(type) {
	case SelectionCleared:
		return SelectionState{}
	case DayHovered:
		if s.Start != "" && s.End == "" {
			s.Hover = e.Date
		}
		return s
	case DaySelected:
		if e.Date == "" {
			return s
		}
		switch {
		case s.Start == "" || s.Complete():
			return SelectionState{Start: e.Date}
		case e.Date <= s.Start:
			return SelectionState{Start: e.Date}
		default:
			return SelectionState{Start: s.Start, End: e.Date}
		}
	}
	return s
}
