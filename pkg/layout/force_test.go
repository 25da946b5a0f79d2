package layout

import (
	"math"
	"testing"

	"github.com/mlorenzen/decklog/pkg/graph"
)

func centerDistance(s *graph.Snapshot, r Result, a, b string) float64 {
	na, _ := s.Node(a)
	nb, _ := s.Node(b)
	ax, ay := r.Center(na)
	bx, by := r.Center(nb)
	return math.Hypot(ax-bx, ay-by)
}

func TestForce_SameSeedSameLayout(t *testing.T) {
	s := testSnapshot(
		[]string{"d1", "d2"},
		[]string{"e1", "e2", "e3"},
		[][2]string{{"d1", "e1"}, {"d1", "e2"}, {"d2", "e3"}, {"e2", "e3"}},
	)
	opts := testOptions()
	opts.Seed = 99

	first := Compute(s, AlgorithmForce, opts)
	again := Compute(s, AlgorithmForce, opts)

	for id, p := range first.Positions {
		if again.Positions[id] != p {
			t.Fatalf("position for %s changed across runs: %+v → %+v", id, p, again.Positions[id])
		}
	}
}

func TestForce_DifferentSeedsDiffer(t *testing.T) {
	s := testSnapshot([]string{"d1"}, []string{"e1", "e2"},
		[][2]string{{"d1", "e1"}, {"d1", "e2"}})

	a := testOptions()
	a.Seed = 1
	b := testOptions()
	b.Seed = 2

	ra := Compute(s, AlgorithmForce, a)
	rb := Compute(s, AlgorithmForce, b)

	same := true
	for id, p := range ra.Positions {
		if rb.Positions[id] != p {
			same = false
			break
		}
	}
	if same {
		t.Error("seeds 1 and 2 produced byte-identical layouts")
	}
}

func TestForce_DisconnectedPairKeepsMinimumSeparation(t *testing.T) {
	s := testSnapshot(nil, []string{"a", "b"}, nil)

	r := Compute(s, AlgorithmForce, testOptions())

	if d := centerDistance(s, r, "a", "b"); d < minSepEntity {
		t.Errorf("disconnected pair converged to distance %.1f, want >= %.1f", d, minSepEntity)
	}
}

func TestForce_DecisionPairKeepsLargerSeparation(t *testing.T) {
	s := testSnapshot([]string{"d1", "d2"}, nil, [][2]string{{"d1", "d2"}})

	r := Compute(s, AlgorithmForce, testOptions())

	if d := centerDistance(s, r, "d1", "d2"); d < minSepDecision {
		t.Errorf("decision pair at distance %.1f, want >= %.1f", d, minSepDecision)
	}
}

func TestForce_ComponentsStaySeparated(t *testing.T) {
	// Two 2-node components seeded into different grid cells should not end
	// up interleaved on top of each other.
	s := testSnapshot(nil, []string{"a1", "a2", "b1", "b2"},
		[][2]string{{"a1", "a2"}, {"b1", "b2"}})

	r := Compute(s, AlgorithmForce, testOptions())

	within := centerDistance(s, r, "a1", "a2")
	across := centerDistance(s, r, "a1", "b1")
	if across < within {
		t.Errorf("cross-component distance %.1f below intra-component distance %.1f", across, within)
	}
}

func TestForce_SelfEdgeIsHarmless(t *testing.T) {
	s := graph.NewSnapshot(
		[]graph.Node{{ID: "a", Kind: graph.KindEntity, Size: graph.SizeForKind(graph.KindEntity)}},
		[]graph.Edge{{ID: "loop", Source: "a", Target: "a"}},
	)

	r := Compute(s, AlgorithmForce, testOptions())

	p := r.Positions["a"]
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		t.Errorf("self edge produced NaN position %+v", p)
	}
}
