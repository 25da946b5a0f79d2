package view

import (
	"math"
)

// Direction is a cardinal movement for spatial keyboard navigation.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// unit vector per direction; screen coordinates, y grows downward.
func (d Direction) vector() (x, y float64) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// nearestInDirection finds the node whose box center lies within the 90°
// cone opening toward the direction from the origin node, preferring the
// smallest Euclidean distance. Returns "" when no node lies in the cone.
//
// The cone test compares the displacement's component along the direction
// against its perpendicular component: a candidate counts only when it is
// more "ahead" than "beside".
func (st *State) nearestInDirection(fromID string, d Direction) string {
	from, ok := st.snapshot.Node(fromID)
	if !ok {
		return ""
	}
	fx, fy := st.result.Center(from)
	dirX, dirY := d.vector()

	best := ""
	bestDist := math.Inf(1)
	for _, n := range st.snapshot.Nodes {
		if n.ID == fromID {
			continue
		}
		x, y := st.result.Center(n)
		dx, dy := x-fx, y-fy
		along := dx*dirX + dy*dirY
		if along <= 0 {
			continue
		}
		perp := math.Abs(dx*dirY - dy*dirX)
		if perp > along {
			continue
		}
		if dist := math.Hypot(dx, dy); dist < bestDist {
			best = n.ID
			bestDist = dist
		}
	}
	return best
}

// MoveFocus moves keyboard focus to the nearest node in the given direction.
// With no focused node it focuses the first node; with no candidate in the
// cone it leaves focus unchanged. Reports whether focus moved.
func (st *State) MoveFocus(d Direction) bool {
	if st.focusedID == "" {
		if len(st.snapshot.Nodes) == 0 {
			return false
		}
		st.focusedID = st.snapshot.Nodes[0].ID
		return true
	}
	next := st.nearestInDirection(st.focusedID, d)
	if next == "" {
		return false
	}
	st.focusedID = next
	return true
}

// CycleFocus moves focus through all nodes in snapshot order, wrapping at
// both ends. reverse corresponds to Shift+Tab.
func (st *State) CycleFocus(reverse bool) {
	nodes := st.snapshot.Nodes
	if len(nodes) == 0 {
		return
	}
	current := -1
	for i, n := range nodes {
		if n.ID == st.focusedID {
			current = i
			break
		}
	}
	var next int
	switch {
	case current == -1 && reverse:
		next = len(nodes) - 1
	case current == -1:
		next = 0
	case reverse:
		next = (current - 1 + len(nodes)) % len(nodes)
	default:
		next = (current + 1) % len(nodes)
	}
	st.focusedID = nodes[next].ID
}

// FocusFirst and FocusLast implement Home/End.
func (st *State) FocusFirst() {
	if len(st.snapshot.Nodes) > 0 {
		st.focusedID = st.snapshot.Nodes[0].ID
	}
}

// FocusLast focuses the last node in the current ordering.
func (st *State) FocusLast() {
	if n := len(st.snapshot.Nodes); n > 0 {
		st.focusedID = st.snapshot.Nodes[n-1].ID
	}
}
