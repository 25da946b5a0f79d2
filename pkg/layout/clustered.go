package layout

import (
	"math"
	"slices"

	"github.com/mlorenzen/decklog/pkg/graph"
)

// Clustered layout constants.
const (
	clusterCellW      = 580.0 // component grid cell width
	clusterCellH      = 500.0 // component grid cell height
	clusterHubRing    = 110.0 // radius for multiple hubs in one component
	clusterRingBase   = 120.0 // base radius of a private entity ring
	clusterRingGrowth = 7.0   // radius added per private entity
	clusterShareStep  = 24.0  // offset radius step for stacked shared entities
	clusterOrphanGap  = 170.0 // spacing of the orphan fallback grid
	goldenAngle       = 2.399963229728653
)

// clusterLayout groups nodes by connectivity and arranges each connected
// component in its own grid cell.
//
// Placement rules, in order:
//   - every decision node is a hub: a single hub sits at the component's
//     cell center, multiple hubs share an inner ring around it
//   - an entity connected to exactly one decision is "private" and goes on
//     a ring around that decision, radius scaling with the ring population
//   - an entity connected to several decisions is "shared" and goes at the
//     centroid of those decisions, nudged per index so stacked shared
//     entities never coincide exactly
//   - an entity connected to no decision is an "orphan" and goes on a
//     generously spaced fallback grid below the main layout
//
// A decision with no edges still owns its cell (component of size one).
// Fully deterministic: grid order, ring order, and offsets derive from
// sorted node IDs.
func clusterLayout(s *graph.Snapshot) Result {
	adj := graph.BuildAdjacency(s)
	components, componentCount := graph.Components(s)
	centers := make(map[string]Position, len(s.Nodes))

	// Sorted member lists per component; component IDs are already dense
	// and deterministic.
	members := make([][]string, componentCount)
	for _, id := range s.SortedNodeIDs() {
		c := components[id]
		members[c] = append(members[c], id)
	}

	// Hubs first: entity rings need final hub positions.
	for c, ids := range members {
		cx, cy := gridCell(c, componentCount, clusterCellW, clusterCellH)
		var hubs []string
		for _, id := range ids {
			if n, ok := s.Node(id); ok && n.IsDecision() {
				hubs = append(hubs, id)
			}
		}
		switch len(hubs) {
		case 0:
		case 1:
			centers[hubs[0]] = Position{X: cx, Y: cy}
		default:
			step := 2 * math.Pi / float64(len(hubs))
			for i, id := range hubs {
				angle := float64(i) * step
				centers[id] = Position{
					X: cx + clusterHubRing*math.Cos(angle),
					Y: cy + clusterHubRing*math.Sin(angle),
				}
			}
		}
	}

	// Classify entities by how many decisions they touch.
	privateByHub := make(map[string][]string)
	var shared, orphans []string
	sharedHubs := make(map[string][]string)
	for _, id := range s.SortedNodeIDs() {
		n, _ := s.Node(id)
		if !n.IsEntity() {
			continue
		}
		var decisions []string
		for neighbor := range adj.Neighbors(id) {
			if dn, ok := s.Node(neighbor); ok && dn.IsDecision() {
				decisions = append(decisions, neighbor)
			}
		}
		slices.Sort(decisions)
		switch len(decisions) {
		case 0:
			orphans = append(orphans, id)
		case 1:
			privateByHub[decisions[0]] = append(privateByHub[decisions[0]], id)
		default:
			shared = append(shared, id)
			sharedHubs[id] = decisions
		}
	}

	// Private rings around their hub.
	for hub, ring := range privateByHub {
		hubPos := centers[hub]
		radius := clusterRingBase + clusterRingGrowth*float64(len(ring))
		step := 2 * math.Pi / float64(len(ring))
		for i, id := range ring {
			angle := float64(i) * step
			centers[id] = Position{
				X: hubPos.X + radius*math.Cos(angle),
				Y: hubPos.Y + radius*math.Sin(angle),
			}
		}
	}

	// Shared entities at the centroid of their decisions, spiraled slightly
	// apart so that two shared entities with the same decisions never
	// overlap exactly.
	for i, id := range shared {
		var sx, sy float64
		hubs := sharedHubs[id]
		for _, hub := range hubs {
			sx += centers[hub].X
			sy += centers[hub].Y
		}
		count := float64(len(hubs))
		angle := float64(i) * goldenAngle
		offset := clusterShareStep * (1 + float64(i)*0.25)
		centers[id] = Position{
			X: sx/count + offset*math.Cos(angle),
			Y: sy/count + offset*math.Sin(angle),
		}
	}

	// Orphans on a fallback grid below everything placed so far.
	if len(orphans) > 0 {
		maxY := 0.0
		for _, p := range centers {
			maxY = math.Max(maxY, p.Y)
		}
		cols := int(math.Ceil(math.Sqrt(float64(len(orphans)))))
		for i, id := range orphans {
			col := i % cols
			row := i / cols
			centers[id] = Position{
				X: float64(col) * clusterOrphanGap,
				Y: maxY + clusterOrphanGap + float64(row)*clusterOrphanGap,
			}
		}
	}

	return Result{
		Algorithm: AlgorithmCluster,
		Positions: centersToTopLeft(s, centers),
		Clusters:  components,
	}
}
