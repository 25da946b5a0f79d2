package graph

// unionFind is an iterative disjoint-set structure with path compression and
// union by size. Iterative find avoids recursion-depth issues on large
// graphs; compression plus size balancing keeps operations near-constant.
type unionFind struct {
	parent map[string]string
	size   map[string]int
}

func newUnionFind() *unionFind {
	return &unionFind{
		parent: make(map[string]string),
		size:   make(map[string]int),
	}
}

// add registers an element as its own singleton set if unseen.
func (u *unionFind) add(id string) {
	if _, ok := u.parent[id]; !ok {
		u.parent[id] = id
		u.size[id] = 1
	}
}

// find returns the set representative, compressing the path as it walks.
func (u *unionFind) find(id string) string {
	root := id
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[id] != root {
		id, u.parent[id] = u.parent[id], root
	}
	return root
}

// union merges the sets containing a and b, attaching the smaller under the
// larger root.
func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.size[ra] < u.size[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	u.size[ra] += u.size[rb]
}

// Components assigns every node in the snapshot a connected-component ID.
// Two nodes share an ID iff some edge path connects them (edge direction
// ignored). IDs are dense integers starting at 0, numbered in sorted node-ID
// order of each component's first member, so the assignment is deterministic
// for a fixed snapshot.
//
// The returned count is the number of distinct components; isolated nodes
// form components of size one.
func Components(s *Snapshot) (assignment map[string]int, count int) {
	uf := newUnionFind()
	for _, n := range s.Nodes {
		uf.add(n.ID)
	}
	for _, e := range s.Edges {
		uf.union(e.Source, e.Target)
	}

	assignment = make(map[string]int, len(s.Nodes))
	rootID := make(map[string]int)
	for _, id := range s.SortedNodeIDs() {
		root := uf.find(id)
		cid, ok := rootID[root]
		if !ok {
			cid = count
			rootID[root] = cid
			count++
		}
		assignment[id] = cid
	}
	return assignment, count
}
