package layout

import (
	"context"

	"github.com/mlorenzen/decklog/pkg/graph"
)

// Hierarchy spacing defaults, in layout units.
const (
	defaultRankSep = 110.0
	defaultNodeSep = 50.0
)

// HierarchyOptions configures the delegated layering engine.
type HierarchyOptions struct {
	// Direction is the rank direction: "TB" (default), "LR", "BT", "RL".
	Direction string

	// RankSep is the spacing between consecutive ranks.
	RankSep float64

	// NodeSep is the spacing between nodes within a rank.
	NodeSep float64
}

func (o HierarchyOptions) direction() string {
	switch o.Direction {
	case "TB", "LR", "BT", "RL":
		return o.Direction
	}
	return "TB"
}

func (o HierarchyOptions) rankSep() float64 {
	if o.RankSep <= 0 {
		return defaultRankSep
	}
	return o.RankSep
}

func (o HierarchyOptions) nodeSep() float64 {
	if o.NodeSep <= 0 {
		return defaultNodeSep
	}
	return o.NodeSep
}

// Layerizer assigns ranked positions to a directed graph. Rank assignment
// and coordinate computation are a well-solved problem, so the engine is
// pluggable rather than hand-rolled; the default is Graphviz dot (see
// GraphvizLayerizer), which also breaks the cycles that mutual decision
// relationships can introduce.
//
// Implementations receive every node's bounding box via the snapshot and
// must return a box-center position for every node.
type Layerizer interface {
	Layerize(ctx context.Context, s *graph.Snapshot, opts HierarchyOptions) (map[string]Position, error)
}

// hierarchyLayout delegates to the configured Layerizer and converts the
// engine's box-center anchors to this system's top-left convention.
func hierarchyLayout(s *graph.Snapshot, opts Options) (Result, error) {
	layerizer := opts.Layerizer
	if layerizer == nil {
		layerizer = NewGraphvizLayerizer()
	}

	centers, err := layerizer.Layerize(context.Background(), s, HierarchyOptions{
		Direction: opts.Direction,
		RankSep:   opts.RankSep,
		NodeSep:   opts.NodeSep,
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Algorithm: AlgorithmHierarchy,
		Positions: centersToTopLeft(s, centers),
	}, nil
}
