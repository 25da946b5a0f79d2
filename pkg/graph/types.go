package graph

import "slices"

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node kinds.
const (
	KindDecision = "decision"
	KindEntity   = "entity"
)

// Relationship kinds carried by edges. Unknown kinds are preserved verbatim;
// rendering falls back to a default style for them.
const (
	RelInvolves   = "INVOLVES"
	RelSimilarTo  = "SIMILAR_TO"
	RelSupersedes = "SUPERSEDES"
	RelDependsOn  = "DEPENDS_ON"
	RelConflicts  = "CONFLICTS_WITH"
	RelRelatedTo  = "RELATED_TO"
)

// Bounding boxes by node kind. Decision nodes are visually heavier and get a
// larger box; the box is a layout input, not a display concern.
const (
	DecisionWidth  = 180.0
	DecisionHeight = 60.0
	EntityWidth    = 120.0
	EntityHeight   = 40.0
)

// DefaultWeight is assumed for edges that arrive without a weight.
const DefaultWeight = 1.0

// =============================================================================
// Node
// =============================================================================

// Size is a node bounding box in layout units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SizeForKind returns the fixed bounding box for a node kind.
// Unknown kinds get the entity box.
func SizeForKind(kind string) Size {
	if kind == KindDecision {
		return Size{Width: DecisionWidth, Height: DecisionHeight}
	}
	return Size{Width: EntityWidth, Height: EntityHeight}
}

// Node is a structural graph node: a decision record or an entity
// (technology, concept, pattern) referenced by decisions.
//
// Node is a read-only value object once the snapshot is built. Positions and
// interaction flags live elsewhere (pkg/layout.Result and pkg/view.State)
// so that layout and interaction code never alias shared mutable state.
type Node struct {
	ID    string `json:"id"`
	Kind  string `json:"type"`
	Label string `json:"label"`
	Size  Size   `json:"size"`

	// Data is the opaque decision/entity record from the data layer. The
	// graph core only reads the scope/source/project fields (via Field) for
	// filter dimming; everything else passes through to the render contract.
	Data map[string]any `json:"data,omitempty"`
}

// IsDecision reports whether the node represents a decision record.
func (n Node) IsDecision() bool { return n.Kind == KindDecision }

// IsEntity reports whether the node represents an entity record.
func (n Node) IsEntity() bool { return n.Kind == KindEntity }

// Field returns the named string field from the node's record data.
// Missing or non-string fields return "".
func (n Node) Field(name string) string {
	if n.Data == nil {
		return ""
	}
	s, _ := n.Data[name].(string)
	return s
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed, typed relationship between two nodes. Navigation and
// adjacency treat edges as undirected; direction matters only for rendering
// and for the hierarchical layout.
type Edge struct {
	ID           string  `json:"id"`
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	Relationship string  `json:"relationship"`
	Weight       float64 `json:"weight"`
}

// Touches reports whether the edge connects a and b in either direction.
func (e Edge) Touches(a, b string) bool {
	return (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a)
}

// =============================================================================
// Snapshot
// =============================================================================

// Snapshot is one immutable structural graph, built from a single data fetch
// by the Adapter. A fresh fetch produces a fresh Snapshot; nothing is patched
// in place.
type Snapshot struct {
	Nodes []Node
	Edges []Edge

	byID map[string]int // node ID -> index into Nodes
}

// NewSnapshot builds a snapshot from already-validated nodes and edges.
// Most callers should use FromRaw instead, which validates and converts the
// wire format.
func NewSnapshot(nodes []Node, edges []Edge) *Snapshot {
	s := &Snapshot{
		Nodes: nodes,
		Edges: edges,
		byID:  make(map[string]int, len(nodes)),
	}
	for i, n := range nodes {
		s.byID[n.ID] = i
	}
	return s
}

// Node returns the node with the given ID and whether it exists.
func (s *Snapshot) Node(id string) (Node, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Node{}, false
	}
	return s.Nodes[i], true
}

// Has reports whether a node with the given ID exists in the snapshot.
func (s *Snapshot) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// NodeIDs returns all node IDs in snapshot order.
func (s *Snapshot) NodeIDs() []string {
	ids := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// Decisions returns the decision nodes in snapshot order.
func (s *Snapshot) Decisions() []Node {
	var out []Node
	for _, n := range s.Nodes {
		if n.IsDecision() {
			out = append(out, n)
		}
	}
	return out
}

// EdgesBetween returns the IDs of all edges connecting a and b in either
// direction. Relationships are stored directed but traversal is undirected,
// so both orientations are checked.
func (s *Snapshot) EdgesBetween(a, b string) []string {
	var ids []string
	for _, e := range s.Edges {
		if e.Touches(a, b) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Degree returns the number of edges touching the node in either direction.
func (s *Snapshot) Degree(id string) int {
	d := 0
	for _, e := range s.Edges {
		if e.Source == id || e.Target == id {
			d++
		}
	}
	return d
}

// SortedNodeIDs returns all node IDs sorted lexicographically. Used where a
// deterministic order is required independent of fetch order (DOT emission,
// cluster grid assignment).
func (s *Snapshot) SortedNodeIDs() []string {
	ids := s.NodeIDs()
	slices.Sort(ids)
	return ids
}
