package view

import (
	charmlog "github.com/charmbracelet/log"

	"github.com/mlorenzen/decklog/pkg/graph"
	"github.com/mlorenzen/decklog/pkg/layout"
)

// Record fields consulted by the dimming filters.
const (
	FieldScope   = "scope"
	FieldSource  = "source"
	FieldProject = "project"
)

// NodeFlags is the derived per-node interaction state handed to the render
// surface. Flags carry no independent state: they are a pure function of the
// snapshot and the current State.
type NodeFlags struct {
	IsSelected bool `json:"isSelected,omitempty"`
	IsFocused  bool `json:"isFocused,omitempty"`
	IsHovered  bool `json:"isHovered,omitempty"`
	IsOnPath   bool `json:"isOnPath,omitempty"`
	IsDimmed   bool `json:"isDimmed,omitempty"`
}

// EdgeFlags is the derived per-edge interaction state.
type EdgeFlags struct {
	IsOnPath bool `json:"isOnPath,omitempty"`
	IsDimmed bool `json:"isDimmed,omitempty"`
}

// State is the interaction state machine for one graph view. It is built
// fresh for each snapshot and mutated only from the UI event loop; it never
// mutates the snapshot or the layout result it reads.
type State struct {
	snapshot *graph.Snapshot
	adj      graph.Adjacency
	result   layout.Result
	logger   *charmlog.Logger

	selectedID string
	focusedID  string
	hoveredID  string

	pathfinding bool
	pathStart   string
	pathEnd     string
	path        graph.Path

	scopeFilter   string
	sourceFilter  string
	projectFilter string

	searchQuery   string
	searchMatches []string
	searchIndex   int
}

// New creates the interaction state for a snapshot. The layout result must
// already contain a position for every node (interaction rendering depends
// on positions being present), so callers run layout.Compute first.
func New(s *graph.Snapshot, result layout.Result, logger *charmlog.Logger) *State {
	if logger == nil {
		logger = charmlog.Default()
	}
	return &State{
		snapshot: s,
		adj:      graph.BuildAdjacency(s),
		result:   result,
		logger:   logger,
	}
}

// SetLayout replaces the position assignment after a layout-algorithm
// switch. The snapshot is unchanged, so interaction state survives; any
// previous result is discarded outright, never merged.
func (st *State) SetLayout(result layout.Result) { st.result = result }

// Snapshot returns the structural graph this state is layered over.
func (st *State) Snapshot() *graph.Snapshot { return st.snapshot }

// Layout returns the current position assignment.
func (st *State) Layout() layout.Result { return st.result }

// Adjacency returns the derived adjacency index.
func (st *State) Adjacency() graph.Adjacency { return st.adj }

// =============================================================================
// Selection, Focus, Hover
// =============================================================================

// SelectedID returns the node opened for detail view, or "".
func (st *State) SelectedID() string { return st.selectedID }

// FocusedID returns the node under keyboard focus, or "".
func (st *State) FocusedID() string { return st.focusedID }

// HoveredID returns the node under the pointer, or "".
func (st *State) HoveredID() string { return st.hoveredID }

// Click handles a pointer click on a node. Outside pathfinding mode the node
// is selected for the detail view; inside it, the click is captured as a
// path endpoint instead.
func (st *State) Click(id string) {
	if !st.snapshot.Has(id) {
		st.logger.Warn("click on unknown node", "id", id)
		return
	}
	if st.pathfinding {
		st.captureEndpoint(id)
		return
	}
	st.selectedID = id
	st.focusedID = id
}

// CloseDetail clears the selection (explicit close of the detail panel).
func (st *State) CloseDetail() { st.selectedID = "" }

// Focus moves keyboard focus to the given node.
func (st *State) Focus(id string) {
	if id != "" && !st.snapshot.Has(id) {
		return
	}
	st.focusedID = id
}

// HoverEnter marks a node as hovered. Only derived flags change; hover must
// never trigger a re-layout, or the graph would flicker under the pointer.
func (st *State) HoverEnter(id string) {
	if !st.snapshot.Has(id) {
		return
	}
	st.hoveredID = id
}

// HoverLeave clears the hover state.
func (st *State) HoverLeave() { st.hoveredID = "" }

// =============================================================================
// Pathfinding Mode
// =============================================================================

// Pathfinding reports whether path-endpoint capture is active.
func (st *State) Pathfinding() bool { return st.pathfinding }

// PathEndpoints returns the captured start and end node IDs ("" if unset).
func (st *State) PathEndpoints() (start, end string) { return st.pathStart, st.pathEnd }

// Path returns the currently highlighted path (zero value when none).
func (st *State) Path() graph.Path { return st.path }

// SetPathfinding toggles pathfinding mode. Enabling begins a fresh endpoint
// capture; disabling resets every path-related flag and restores full
// opacity for path dimming.
func (st *State) SetPathfinding(on bool) {
	st.pathfinding = on
	st.pathStart = ""
	st.pathEnd = ""
	st.path = graph.Path{}
}

// captureEndpoint records the next clicked node as the path start, then the
// path end, and runs the pathfinder once both are set. An unreachable pair
// is a normal outcome: the path stays empty and no on-path flag is raised.
func (st *State) captureEndpoint(id string) {
	switch {
	case st.pathStart == "":
		st.pathStart = id
	case st.pathEnd == "" && id != st.pathStart:
		st.pathEnd = id
		st.path = graph.FindPath(st.snapshot, st.adj, st.pathStart, st.pathEnd)
	default:
		// Third click restarts the capture with a new start node.
		st.pathStart = id
		st.pathEnd = ""
		st.path = graph.Path{}
	}
}

// =============================================================================
// Filters
// =============================================================================

// SetScopeFilter dims decisions whose scope differs from the filter. Entity
// dimming is derived transitively: an entity stays lit only while connected
// to at least one matching decision. Empty clears the filter.
func (st *State) SetScopeFilter(v string) { st.scopeFilter = v }

// SetSourceFilter filters by the decision record's source field.
func (st *State) SetSourceFilter(v string) { st.sourceFilter = v }

// SetProjectFilter filters by the decision record's project field.
func (st *State) SetProjectFilter(v string) { st.projectFilter = v }

// ClearFilters removes all three record filters.
func (st *State) ClearFilters() {
	st.scopeFilter = ""
	st.sourceFilter = ""
	st.projectFilter = ""
}

// matchesFilter applies one record filter to one node. Decisions match on
// their own field; entities match transitively when any neighboring decision
// matches, since entity records carry none of the filtered fields.
func (st *State) matchesFilter(n graph.Node, field, want string) bool {
	if want == "" {
		return true
	}
	if n.IsDecision() {
		return n.Field(field) == want
	}
	for neighbor := range st.adj.Neighbors(n.ID) {
		if dn, ok := st.snapshot.Node(neighbor); ok && dn.IsDecision() && dn.Field(field) == want {
			return true
		}
	}
	return false
}

// =============================================================================
// Text Search
// =============================================================================

// Search sets the query, computes the case-insensitive substring matches in
// snapshot order, and focuses the first match. An empty query clears the
// search entirely.
func (st *State) Search(query string) {
	st.searchQuery = query
	st.searchMatches = nil
	st.searchIndex = 0
	if query == "" {
		return
	}
	st.searchMatches = matchLabels(st.snapshot, query)
	if len(st.searchMatches) > 0 {
		st.focusedID = st.searchMatches[0]
	}
}

// SearchQuery returns the active query ("" when search is inactive).
func (st *State) SearchQuery() string { return st.searchQuery }

// SearchMatches returns the matched node IDs in snapshot order.
func (st *State) SearchMatches() []string { return st.searchMatches }

// FindNext cycles focus to the next search match, wrapping at the end.
// Returns the newly focused node ID, or "" when there is no match.
func (st *State) FindNext() string {
	if len(st.searchMatches) == 0 {
		return ""
	}
	st.searchIndex = (st.searchIndex + 1) % len(st.searchMatches)
	st.focusedID = st.searchMatches[st.searchIndex]
	return st.focusedID
}

// =============================================================================
// Derived Flags
// =============================================================================

// Flags recomputes the full derived flag set for every node and edge from
// the current snapshot and interaction state. Call it after every discrete
// interaction event; the previous flag set is replaced wholesale.
func (st *State) Flags() (map[string]NodeFlags, map[string]EdgeFlags) {
	onPath := make(map[string]bool, len(st.path.NodeIDs))
	for _, id := range st.path.NodeIDs {
		onPath[id] = true
	}
	onPathEdge := make(map[string]bool, len(st.path.EdgeIDs))
	for _, id := range st.path.EdgeIDs {
		onPathEdge[id] = true
	}

	searchMatch := make(map[string]bool, len(st.searchMatches))
	for _, id := range st.searchMatches {
		searchMatch[id] = true
	}

	nodes := make(map[string]NodeFlags, len(st.snapshot.Nodes))
	for _, n := range st.snapshot.Nodes {
		f := NodeFlags{
			IsSelected: n.ID == st.selectedID,
			IsFocused:  n.ID == st.focusedID,
			IsHovered:  n.ID == st.hoveredID,
			IsOnPath:   onPath[n.ID],
		}

		// OR-to-dim: any active source that excludes the node dims it.
		dim := false
		if st.hoveredID != "" && n.ID != st.hoveredID && !st.adj.Connected(st.hoveredID, n.ID) {
			dim = true
		}
		if st.path.Exists() && !onPath[n.ID] {
			dim = true
		}
		if !st.matchesFilter(n, FieldScope, st.scopeFilter) {
			dim = true
		}
		if !st.matchesFilter(n, FieldSource, st.sourceFilter) {
			dim = true
		}
		if !st.matchesFilter(n, FieldProject, st.projectFilter) {
			dim = true
		}
		if st.searchQuery != "" && !searchMatch[n.ID] {
			dim = true
		}
		f.IsDimmed = dim
		nodes[n.ID] = f
	}

	edges := make(map[string]EdgeFlags, len(st.snapshot.Edges))
	for _, e := range st.snapshot.Edges {
		edges[e.ID] = EdgeFlags{
			IsOnPath: onPathEdge[e.ID],
			IsDimmed: (st.path.Exists() && !onPathEdge[e.ID]) ||
				nodes[e.Source].IsDimmed || nodes[e.Target].IsDimmed,
		}
	}
	return nodes, edges
}
