package graph

// Adjacency maps each node ID to the set of directly connected node IDs.
// The index is symmetric: for every edge (s, t), t is a neighbor of s and
// s is a neighbor of t, regardless of the stored edge direction.
//
// Isolated nodes may have no entry; absence is treated as the empty set.
type Adjacency map[string]map[string]bool

// BuildAdjacency constructs the adjacency index from the snapshot's edges
// in O(E). Self edges produce a single self-neighbor entry.
func BuildAdjacency(s *Snapshot) Adjacency {
	adj := make(Adjacency, len(s.Nodes))
	add := func(from, to string) {
		set, ok := adj[from]
		if !ok {
			set = make(map[string]bool)
			adj[from] = set
		}
		set[to] = true
	}
	for _, e := range s.Edges {
		add(e.Source, e.Target)
		add(e.Target, e.Source)
	}
	return adj
}

// Neighbors returns the neighbor set for a node. The returned map may be nil
// (isolated node); callers must treat nil as empty and must not mutate it.
func (a Adjacency) Neighbors(id string) map[string]bool {
	return a[id]
}

// Connected reports whether a and b are directly connected by some edge.
func (a Adjacency) Connected(x, y string) bool {
	return a[x][y]
}

// Degree returns the number of distinct neighbors of a node.
func (a Adjacency) Degree(id string) int {
	return len(a[id])
}
