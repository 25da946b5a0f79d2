package layout

import (
	"math"
	"math/rand/v2"

	"github.com/mlorenzen/decklog/pkg/graph"
)

// Force simulation constants. Tuned for graphs in the tens-to-hundreds of
// nodes range against the fixed node boxes in pkg/graph.
const (
	forceRepulsion  = 90000.0 // inverse-square repulsion scale
	forceSpring     = 0.02    // attraction toward edge rest length
	forceCohesion   = 0.012   // pull toward the component grid cell
	forceDamping    = 0.85    // velocity damping per iteration
	forceMaxStep    = 60.0    // displacement clamp per iteration
	forceCellSize   = 640.0   // component grid cell edge
	forceJitter     = 70.0    // initial radial jitter inside the cell
	minSepEntity    = 90.0    // minimum separation, entity-entity pair
	minSepDecision  = 150.0   // minimum separation when a decision is involved
	restLenMixed    = 150.0   // ideal edge length, entity-entity / entity-decision
	restLenDecision = 260.0   // ideal edge length, decision-decision
)

// forceLayout runs the iterative physics simulation.
//
// Initialization seeds every node near the center of its connected
// component's grid cell with a small seeded angular offset, so components
// start separated and the same seed reproduces the same picture. Each
// iteration recomputes displacements from scratch (no persisted momentum
// beyond damping), cooled by alpha = 1 - i/n:
//
//  1. all-pairs inverse-square repulsion with a kind-dependent minimum
//     separation (decisions are heavier and must not overlap entities)
//  2. spring attraction along every edge toward a kind-dependent rest length
//  3. cohesion pull toward the component's cell center
//
// O(n²·iterations); see the package comment for the documented scaling limit.
func forceLayout(s *graph.Snapshot, opts Options) Result {
	seed := opts.seed()
	rng := rand.New(rand.NewPCG(seed, seed))
	components, componentCount := graph.Components(s)

	// Centers of each component's grid cell.
	cellX := make([]float64, componentCount)
	cellY := make([]float64, componentCount)
	for c := 0; c < componentCount; c++ {
		cellX[c], cellY[c] = gridCell(c, componentCount, forceCellSize, forceCellSize)
	}

	// Work on parallel slices in snapshot order; map iteration order must
	// never influence the result.
	n := len(s.Nodes)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, node := range s.Nodes {
		c := components[node.ID]
		angle := rng.Float64() * 2 * math.Pi
		radius := rng.Float64() * forceJitter
		xs[i] = cellX[c] + radius*math.Cos(angle)
		ys[i] = cellY[c] + radius*math.Sin(angle)
	}

	edgeIdx := make([][2]int, 0, len(s.Edges))
	index := make(map[string]int, n)
	for i, node := range s.Nodes {
		index[node.ID] = i
	}
	for _, e := range s.Edges {
		si, ti := index[e.Source], index[e.Target]
		if si == ti {
			continue // self edges exert no force
		}
		edgeIdx = append(edgeIdx, [2]int{si, ti})
	}

	iterations := opts.iterations()
	dx := make([]float64, n)
	dy := make([]float64, n)

	for iter := 0; iter < iterations; iter++ {
		alpha := 1 - float64(iter)/float64(iterations)
		for i := range dx {
			dx[i], dy[i] = 0, 0
		}

		// Pairwise repulsion.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				vx, vy := xs[i]-xs[j], ys[i]-ys[j]
				dist := math.Hypot(vx, vy)
				if dist < 1e-6 {
					// Coincident points have no direction; nudge them apart
					// deterministically by index before dividing.
					vx, vy = float64(i-j), 1
					dist = math.Hypot(vx, vy)
				}
				minSep := minSepEntity
				if s.Nodes[i].IsDecision() || s.Nodes[j].IsDecision() {
					minSep = minSepDecision
				}
				force := forceRepulsion * alpha / (dist * dist)
				if dist < minSep {
					// Hard floor: push apart proportionally to the overlap,
					// not just the inverse square, so boxes separate even
					// late in the cooldown.
					force += (minSep - dist) * 0.5
				}
				ux, uy := vx/dist, vy/dist
				dx[i] += ux * force
				dy[i] += uy * force
				dx[j] -= ux * force
				dy[j] -= uy * force
			}
		}

		// Edge attraction toward the rest length.
		for _, e := range edgeIdx {
			i, j := e[0], e[1]
			vx, vy := xs[j]-xs[i], ys[j]-ys[i]
			dist := math.Hypot(vx, vy)
			if dist < 1e-6 {
				continue
			}
			rest := restLenMixed
			if s.Nodes[i].IsDecision() && s.Nodes[j].IsDecision() {
				rest = restLenDecision
			}
			force := (dist - rest) * forceSpring
			ux, uy := vx/dist, vy/dist
			dx[i] += ux * force
			dy[i] += uy * force
			dx[j] -= ux * force
			dy[j] -= uy * force
		}

		// Cohesion toward the component cell center.
		for i, node := range s.Nodes {
			c := components[node.ID]
			dx[i] += (cellX[c] - xs[i]) * forceCohesion * alpha
			dy[i] += (cellY[c] - ys[i]) * forceCohesion * alpha
		}

		// Damped integration with a step clamp to prevent oscillation.
		for i := 0; i < n; i++ {
			stepX := dx[i] * forceDamping
			stepY := dy[i] * forceDamping
			step := math.Hypot(stepX, stepY)
			if step > forceMaxStep {
				scale := forceMaxStep / step
				stepX *= scale
				stepY *= scale
			}
			xs[i] += stepX
			ys[i] += stepY
		}
	}

	centers := make(map[string]Position, n)
	for i, node := range s.Nodes {
		centers[node.ID] = Position{X: xs[i], Y: ys[i]}
	}
	return Result{Algorithm: AlgorithmForce, Positions: centersToTopLeft(s, centers)}
}
