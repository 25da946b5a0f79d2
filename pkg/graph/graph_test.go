package graph

import (
	"math/rand"
	"testing"
)

// chain builds a snapshot A-B-C-... with entity nodes and one edge between
// consecutive letters.
func chain(ids ...string) *Snapshot {
	var nodes []Node
	for _, id := range ids {
		nodes = append(nodes, Node{ID: id, Kind: KindEntity, Label: id, Size: SizeForKind(KindEntity)})
	}
	var edges []Edge
	for i := 0; i+1 < len(ids); i++ {
		edges = append(edges, Edge{
			ID:           ids[i] + "-" + ids[i+1],
			Source:       ids[i],
			Target:       ids[i+1],
			Relationship: RelRelatedTo,
			Weight:       DefaultWeight,
		})
	}
	return NewSnapshot(nodes, edges)
}

func TestAdjacency_Symmetric(t *testing.T) {
	s := chain("a", "b", "c")
	adj := BuildAdjacency(s)

	for _, e := range s.Edges {
		if !adj.Connected(e.Source, e.Target) {
			t.Errorf("adjacency[%s] missing %s", e.Source, e.Target)
		}
		if !adj.Connected(e.Target, e.Source) {
			t.Errorf("adjacency[%s] missing %s", e.Target, e.Source)
		}
	}
}

func TestAdjacency_IsolatedNodeIsEmptySet(t *testing.T) {
	s := NewSnapshot([]Node{{ID: "lone", Kind: KindEntity}}, nil)
	adj := BuildAdjacency(s)

	if got := adj.Degree("lone"); got != 0 {
		t.Errorf("Degree(lone) = %d, want 0", got)
	}
	if adj.Connected("lone", "lone") {
		t.Error("isolated node reported as self-connected")
	}
}

func TestFindPath_Chain(t *testing.T) {
	s := chain("A", "B", "C", "D", "E")
	adj := BuildAdjacency(s)

	p := FindPath(s, adj, "A", "E")
	want := []string{"A", "B", "C", "D", "E"}
	if len(p.NodeIDs) != len(want) {
		t.Fatalf("path = %v, want %v", p.NodeIDs, want)
	}
	for i := range want {
		if p.NodeIDs[i] != want[i] {
			t.Fatalf("path = %v, want %v", p.NodeIDs, want)
		}
	}
	if len(p.EdgeIDs) != 4 {
		t.Errorf("len(EdgeIDs) = %d, want 4", len(p.EdgeIDs))
	}

	p = FindPath(s, adj, "A", "C")
	if p.Hops() != 2 {
		t.Errorf("FindPath(A, C) hops = %d, want 2", p.Hops())
	}
}

func TestFindPath_TrivialAndUnreachable(t *testing.T) {
	s := NewSnapshot([]Node{
		{ID: "a", Kind: KindEntity},
		{ID: "b", Kind: KindEntity},
	}, nil)
	adj := BuildAdjacency(s)

	p := FindPath(s, adj, "a", "a")
	if len(p.NodeIDs) != 1 || p.NodeIDs[0] != "a" {
		t.Errorf("FindPath(a, a) = %v, want [a]", p.NodeIDs)
	}
	if len(p.EdgeIDs) != 0 {
		t.Errorf("trivial path carries edges: %v", p.EdgeIDs)
	}

	p = FindPath(s, adj, "a", "b")
	if p.Exists() {
		t.Errorf("FindPath(a, b) = %v, want unreachable", p.NodeIDs)
	}

	p = FindPath(s, adj, "a", "ghost")
	if p.Exists() {
		t.Errorf("FindPath to unknown node = %v, want empty", p.NodeIDs)
	}
}

// bfsDistance is the brute-force ground truth for shortest hop distance.
// Returns -1 when unreachable.
func bfsDistance(adj Adjacency, start, end string) int {
	if start == end {
		return 0
	}
	dist := map[string]int{start: 0}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for n := range adj.Neighbors(cur) {
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[cur] + 1
			if n == end {
				return dist[n]
			}
			queue = append(queue, n)
		}
	}
	return -1
}

func TestFindPath_MatchesGroundTruthOnRandomGraphs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	letters := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

	for trial := 0; trial < 25; trial++ {
		var nodes []Node
		for _, id := range letters {
			nodes = append(nodes, Node{ID: id, Kind: KindEntity})
		}
		var edges []Edge
		for i := range letters {
			for j := i + 1; j < len(letters); j++ {
				if rng.Float64() < 0.2 {
					edges = append(edges, Edge{
						ID:     letters[i] + letters[j],
						Source: letters[i],
						Target: letters[j],
					})
				}
			}
		}
		s := NewSnapshot(nodes, edges)
		adj := BuildAdjacency(s)

		for _, from := range letters {
			for _, to := range letters {
				want := bfsDistance(adj, from, to)
				p := FindPath(s, adj, from, to)
				if want == -1 {
					if p.Exists() {
						t.Fatalf("trial %d: FindPath(%s,%s) found %v, want unreachable", trial, from, to, p.NodeIDs)
					}
					continue
				}
				if got := p.Hops(); got != want {
					t.Fatalf("trial %d: FindPath(%s,%s) hops = %d, want %d", trial, from, to, got, want)
				}
			}
		}
	}
}

func TestComponents_MatchesReachability(t *testing.T) {
	s := NewSnapshot(
		[]Node{
			{ID: "a", Kind: KindEntity}, {ID: "b", Kind: KindEntity},
			{ID: "c", Kind: KindEntity}, {ID: "d", Kind: KindEntity},
			{ID: "lone", Kind: KindEntity},
		},
		[]Edge{
			{ID: "e1", Source: "a", Target: "b"},
			{ID: "e2", Source: "c", Target: "d"},
		},
	)

	assignment, count := Components(s)

	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
	if assignment["a"] != assignment["b"] {
		t.Error("a and b should share a component")
	}
	if assignment["c"] != assignment["d"] {
		t.Error("c and d should share a component")
	}
	if assignment["a"] == assignment["c"] {
		t.Error("a and c should be in different components")
	}
	if assignment["lone"] == assignment["a"] || assignment["lone"] == assignment["c"] {
		t.Error("isolated node shares a component with an edge-connected node")
	}
}

func TestComponents_RandomGraphsAgainstBFS(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	letters := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	for trial := 0; trial < 30; trial++ {
		var nodes []Node
		for _, id := range letters {
			nodes = append(nodes, Node{ID: id, Kind: KindEntity})
		}
		var edges []Edge
		for i := range letters {
			for j := i + 1; j < len(letters); j++ {
				if rng.Float64() < 0.15 {
					edges = append(edges, Edge{ID: letters[i] + letters[j], Source: letters[i], Target: letters[j]})
				}
			}
		}
		s := NewSnapshot(nodes, edges)
		adj := BuildAdjacency(s)
		assignment, _ := Components(s)

		for _, x := range letters {
			for _, y := range letters {
				reachable := bfsDistance(adj, x, y) >= 0
				same := assignment[x] == assignment[y]
				if reachable != same {
					t.Fatalf("trial %d: %s/%s reachable=%v but sameComponent=%v", trial, x, y, reachable, same)
				}
			}
		}
	}
}

func TestComponents_Deterministic(t *testing.T) {
	s := chain("a", "b", "c")
	first, _ := Components(s)
	for i := 0; i < 5; i++ {
		again, _ := Components(s)
		for id, cid := range first {
			if again[id] != cid {
				t.Fatalf("run %d: component for %s changed %d → %d", i, id, cid, again[id])
			}
		}
	}
}

func TestSnapshot_EdgesBetween_BothDirections(t *testing.T) {
	s := NewSnapshot(
		[]Node{{ID: "a"}, {ID: "b"}},
		[]Edge{
			{ID: "fwd", Source: "a", Target: "b"},
			{ID: "rev", Source: "b", Target: "a"},
		},
	)

	ids := s.EdgesBetween("a", "b")
	if len(ids) != 2 {
		t.Errorf("EdgesBetween(a, b) = %v, want both orientations", ids)
	}
}
