package view

// Key is a normalized keyboard input for the graph interaction surface.
// UI layers translate their native key events into these values and must
// not forward events while a text input elsewhere on the screen has focus.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
	KeyShiftTab
	KeyEnter
	KeySpace
	KeyEscape
	KeyHome
	KeyEnd
)

// HandleKey applies one keyboard event to the state machine:
//
//   - arrows move focus spatially via the nearest-in-direction search
//   - Tab / Shift+Tab cycle focus through all nodes in order, wrapping
//   - Home / End jump to the first / last node
//   - Enter / Space select the focused node (or capture a path endpoint
//     while pathfinding mode is active)
//   - Escape clears the selection first; pressed again it clears focus
//
// Reports whether the event changed any state, so callers know when to
// recompute flags and redraw.
func (st *State) HandleKey(k Key) bool {
	switch k {
	case KeyUp:
		return st.MoveFocus(DirUp)
	case KeyDown:
		return st.MoveFocus(DirDown)
	case KeyLeft:
		return st.MoveFocus(DirLeft)
	case KeyRight:
		return st.MoveFocus(DirRight)
	case KeyTab:
		st.CycleFocus(false)
		return true
	case KeyShiftTab:
		st.CycleFocus(true)
		return true
	case KeyHome:
		st.FocusFirst()
		return true
	case KeyEnd:
		st.FocusLast()
		return true
	case KeyEnter, KeySpace:
		if st.focusedID == "" {
			return false
		}
		st.Click(st.focusedID)
		return true
	case KeyEscape:
		if st.selectedID != "" {
			st.selectedID = ""
			return true
		}
		if st.focusedID != "" {
			st.focusedID = ""
			return true
		}
		return false
	}
	return false
}
