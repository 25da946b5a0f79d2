package layout

import (
	"math"
	"slices"

	"github.com/mlorenzen/decklog/pkg/graph"
)

// Radial layout constants.
const (
	radialMinRadius    = 180.0 // floor for the base ring radius
	radialPerDecision  = 60.0  // base radius growth per decision node
	radialInnerFactor  = 0.4   // decision ring as a fraction of the base radius
	radialRingSpacing  = 150.0 // radius increment per outer ring
	defaultRingEntries = 12    // entities per outer ring
)

// radialLayout places decisions near the center and entities on concentric
// outer rings ordered by connectivity degree (most-connected closest in).
//
// The base radius grows with the number of decisions so dense graphs get
// room; a single decision sits exactly at the center instead of on a
// degenerate one-node ring. Rings that receive no entities are skipped
// rather than dividing an angle step by zero.
func radialLayout(s *graph.Snapshot, opts Options) Result {
	capacity := opts.RingCapacity
	if capacity <= 0 {
		capacity = defaultRingEntries
	}

	adj := graph.BuildAdjacency(s)
	centers := make(map[string]Position, len(s.Nodes))

	var decisions, entities []string
	for _, id := range s.SortedNodeIDs() {
		n, _ := s.Node(id)
		if n.IsDecision() {
			decisions = append(decisions, id)
		} else {
			entities = append(entities, id)
		}
	}

	baseRadius := math.Max(radialMinRadius, radialPerDecision*float64(len(decisions)))

	// Decisions: single one at the exact center, otherwise evenly on an
	// inner ring.
	switch len(decisions) {
	case 0:
	case 1:
		centers[decisions[0]] = Position{}
	default:
		inner := baseRadius * radialInnerFactor
		step := 2 * math.Pi / float64(len(decisions))
		for i, id := range decisions {
			angle := float64(i) * step
			centers[id] = Position{X: inner * math.Cos(angle), Y: inner * math.Sin(angle)}
		}
	}

	// Entities ranked by descending degree, ID ascending on ties so the
	// ordering (and therefore the whole layout) is deterministic.
	slices.SortStableFunc(entities, func(a, b string) int {
		if d := adj.Degree(b) - adj.Degree(a); d != 0 {
			return d
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})

	for ring := 0; ring*capacity < len(entities); ring++ {
		start := ring * capacity
		end := min(start+capacity, len(entities))
		onRing := entities[start:end]
		if len(onRing) == 0 {
			continue
		}
		radius := baseRadius + float64(ring)*radialRingSpacing
		step := 2 * math.Pi / float64(len(onRing))
		// Stagger alternate rings by half a step so spokes don't align.
		phase := 0.0
		if ring%2 == 1 {
			phase = step / 2
		}
		for i, id := range onRing {
			angle := phase + float64(i)*step
			centers[id] = Position{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
		}
	}

	return Result{Algorithm: AlgorithmRadial, Positions: centersToTopLeft(s, centers)}
}
