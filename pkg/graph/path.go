package graph

import "slices"

// Path is the result of a shortest-path search: the node IDs from start to
// end inclusive, plus the IDs of the edges connecting consecutive path nodes.
//
// The zero value means "no path exists". Unreachability is a normal outcome,
// not an error; callers must treat an empty path as "unreachable".
type Path struct {
	NodeIDs []string
	EdgeIDs []string
}

// Exists reports whether a path was found.
func (p Path) Exists() bool { return len(p.NodeIDs) > 0 }

// Hops returns the path length in edges.
func (p Path) Hops() int {
	if len(p.NodeIDs) == 0 {
		return 0
	}
	return len(p.NodeIDs) - 1
}

// FindPath runs a breadth-first search from start to end over the adjacency
// index and returns the shortest path in hop count (not weighted distance).
//
// Guarantees:
//   - start == end yields the trivial single-node path [start]
//   - unreachable or unknown endpoints yield the zero Path
//   - the edge set contains, for each consecutive pair on the path, every
//     edge connecting that pair in either direction
func FindPath(s *Snapshot, adj Adjacency, start, end string) Path {
	if !s.Has(start) || !s.Has(end) {
		return Path{}
	}
	if start == end {
		return Path{NodeIDs: []string{start}}
	}

	// BFS with a parent chain; the first time end is reached the chain is
	// the shortest route.
	parent := map[string]string{start: ""}
	queue := []string{start}
	found := false
	for len(queue) > 0 && !found {
		current := queue[0]
		queue = queue[1:]
		// Deterministic expansion order keeps tie-broken paths stable
		// across runs.
		neighbors := make([]string, 0, len(adj.Neighbors(current)))
		for n := range adj.Neighbors(current) {
			neighbors = append(neighbors, n)
		}
		slices.Sort(neighbors)
		for _, n := range neighbors {
			if _, visited := parent[n]; visited {
				continue
			}
			parent[n] = current
			if n == end {
				found = true
				break
			}
			queue = append(queue, n)
		}
	}
	if !found {
		return Path{}
	}

	var nodeIDs []string
	for at := end; at != ""; at = parent[at] {
		nodeIDs = append(nodeIDs, at)
	}
	slices.Reverse(nodeIDs)

	var edgeIDs []string
	for i := 0; i+1 < len(nodeIDs); i++ {
		edgeIDs = append(edgeIDs, s.EdgesBetween(nodeIDs[i], nodeIDs[i+1])...)
	}
	return Path{NodeIDs: nodeIDs, EdgeIDs: edgeIDs}
}
