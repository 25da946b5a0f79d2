package layout

import (
	"math"

	charmlog "github.com/charmbracelet/log"

	"github.com/mlorenzen/decklog/pkg/graph"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Algorithm names. AlgorithmForce is the fallback for unknown names.
const (
	AlgorithmForce     = "force"
	AlgorithmCluster   = "cluster"
	AlgorithmHierarchy = "hierarchy"
	AlgorithmRadial    = "radial"
)

// DefaultSeed is the fixed seed used when Options.Seed is zero, so repeated
// runs over the same snapshot reproduce the same force layout.
const DefaultSeed = uint64(42)

// DefaultIterations is the force simulation length.
const DefaultIterations = 300

// Margin is the minimum positive coordinate after the final translation;
// keeps all positions out of the negative quadrant.
const Margin = 40.0

// Algorithm describes one selectable layout strategy for UI surfaces
// (dropdowns, CLI help).
type Algorithm struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Algorithms returns the selectable strategies in presentation order.
func Algorithms() []Algorithm {
	return []Algorithm{
		{AlgorithmForce, "Force-directed", "Physics simulation pulling related nodes together"},
		{AlgorithmCluster, "Clustered", "Connected groups on a grid, entities ringed around decisions"},
		{AlgorithmHierarchy, "Hierarchical", "Layered top-down ranking of the relationship structure"},
		{AlgorithmRadial, "Radial", "Decisions at the center, entities on rings by connectivity"},
	}
}

// =============================================================================
// Types
// =============================================================================

// Position is a node's top-left corner in layout units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Result is the transient outcome of one layout computation: a full position
// assignment for every node in the snapshot plus the algorithm that produced
// it. Results are never persisted; a new snapshot or algorithm switch
// replaces the result wholesale.
type Result struct {
	Algorithm string              `json:"algorithm"`
	Positions map[string]Position `json:"positions"`

	// Clusters is the connected-component assignment; populated by the
	// cluster strategy only.
	Clusters map[string]int `json:"clusters,omitempty"`
}

// Center returns the center point of a node's bounding box.
func (r Result) Center(n graph.Node) (x, y float64) {
	p := r.Positions[n.ID]
	return p.X + n.Size.Width/2, p.Y + n.Size.Height/2
}

// Options tunes the layout strategies. The zero value selects sensible
// defaults for every field.
type Options struct {
	// Seed drives the force layout's pseudo-random initialization.
	// Zero selects DefaultSeed.
	Seed uint64

	// Iterations is the force simulation length. Zero selects
	// DefaultIterations.
	Iterations int

	// Direction is the hierarchy rank direction: "TB" (default), "LR",
	// "BT", or "RL".
	Direction string

	// RankSep and NodeSep are the hierarchy spacing between ranks and
	// between nodes within a rank, in layout units. Zero selects defaults.
	RankSep float64
	NodeSep float64

	// RingCapacity is the number of entities per radial ring.
	// Zero selects the default capacity.
	RingCapacity int

	// Layerizer computes the hierarchy placement. Nil selects the
	// Graphviz dot engine.
	Layerizer Layerizer

	// Logger receives fallback warnings. Nil selects charmlog.Default().
	Logger *charmlog.Logger
}

func (o Options) logger() *charmlog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return charmlog.Default()
}

func (o Options) seed() uint64 {
	if o.Seed == 0 {
		return DefaultSeed
	}
	return o.Seed
}

func (o Options) iterations() int {
	if o.Iterations <= 0 {
		return DefaultIterations
	}
	return o.Iterations
}

// =============================================================================
// Dispatcher
// =============================================================================

// Compute runs the named strategy over the snapshot and returns a position
// for every node. It is a pure function of its inputs: the same snapshot,
// name, and options yield the same result.
//
// Recovery rules (fail open, never error out):
//   - empty graph → empty result, no error
//   - unknown algorithm name → warn and fall back to force
//   - hierarchy engine failure → warn and fall back to force
func Compute(s *graph.Snapshot, algorithm string, opts Options) Result {
	if len(s.Nodes) == 0 {
		return Result{Algorithm: algorithm, Positions: map[string]Position{}}
	}

	switch algorithm {
	case AlgorithmForce:
		return forceLayout(s, opts)
	case AlgorithmCluster:
		return clusterLayout(s)
	case AlgorithmRadial:
		return radialLayout(s, opts)
	case AlgorithmHierarchy:
		r, err := hierarchyLayout(s, opts)
		if err != nil {
			opts.logger().Warn("hierarchy layout failed, falling back to force", "err", err)
			r = forceLayout(s, opts)
		}
		return r
	default:
		opts.logger().Warn("unknown layout algorithm, falling back to force", "algorithm", algorithm)
		r := forceLayout(s, opts)
		return r
	}
}

// =============================================================================
// Shared Geometry Helpers
// =============================================================================

// translateToMargin shifts all positions so the minimum x and y equal Margin.
// Every strategy ends with this so downstream code can assume non-negative
// coordinates.
func translateToMargin(positions map[string]Position) {
	if len(positions) == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	for _, p := range positions {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
	}
	for id, p := range positions {
		positions[id] = Position{X: p.X - minX + Margin, Y: p.Y - minY + Margin}
	}
}

// centersToTopLeft converts box-center coordinates to the top-left corner
// convention used by the render contract, then normalizes to the margin.
// Every strategy computes geometry on box centers and finishes here.
func centersToTopLeft(s *graph.Snapshot, centers map[string]Position) map[string]Position {
	positions := make(map[string]Position, len(centers))
	for _, n := range s.Nodes {
		c := centers[n.ID]
		positions[n.ID] = Position{X: c.X - n.Size.Width/2, Y: c.Y - n.Size.Height/2}
	}
	translateToMargin(positions)
	return positions
}

// gridCell returns the center of cell i on a coarse square grid with the
// given cell dimensions. The grid has ceil(sqrt(total)) columns.
func gridCell(i, total int, cellW, cellH float64) (x, y float64) {
	cols := int(math.Ceil(math.Sqrt(float64(total))))
	if cols < 1 {
		cols = 1
	}
	col := i % cols
	row := i / cols
	return float64(col)*cellW + cellW/2, float64(row)*cellH + cellH/2
}
