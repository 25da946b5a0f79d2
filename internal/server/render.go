package server

import (
	"github.com/mlorenzen/decklog/pkg/graph"
	"github.com/mlorenzen/decklog/pkg/layout"
	"github.com/mlorenzen/decklog/pkg/view"
)

// RenderGraph is the outbound render contract: everything the dashboard
// needs to draw one layout without recomputing anything.
type RenderGraph struct {
	Algorithm string       `json:"algorithm"`
	Nodes     []RenderNode `json:"nodes"`
	Edges     []RenderEdge `json:"edges"`
}

// RenderNode is one positioned node with its derived interaction flags.
// Flags are all false in the initial contract; the client recomputes them
// as the user interacts.
type RenderNode struct {
	ID      string         `json:"id"`
	Kind    string         `json:"type"`
	Label   string         `json:"label"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Width   float64        `json:"width"`
	Height  float64        `json:"height"`
	Cluster *int           `json:"cluster,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Flags   view.NodeFlags `json:"flags"`
}

// RenderEdge is one styled edge.
type RenderEdge struct {
	ID           string         `json:"id"`
	Source       string         `json:"source"`
	Target       string         `json:"target"`
	Relationship string         `json:"relationship"`
	Weight       float64        `json:"weight"`
	Label        string         `json:"label,omitempty"`
	Style        view.EdgeStyle `json:"style"`
	Flags        view.EdgeFlags `json:"flags"`
}

// Render assembles the outbound contract for one computed layout.
func Render(snap *graph.Snapshot, result layout.Result) RenderGraph {
	st := view.New(snap, result, nil)
	nodeFlags, edgeFlags := st.Flags()

	out := RenderGraph{
		Algorithm: result.Algorithm,
		Nodes:     make([]RenderNode, 0, len(snap.Nodes)),
		Edges:     make([]RenderEdge, 0, len(snap.Edges)),
	}
	for _, n := range snap.Nodes {
		p := result.Positions[n.ID]
		rn := RenderNode{
			ID:     n.ID,
			Kind:   n.Kind,
			Label:  n.Label,
			X:      p.X,
			Y:      p.Y,
			Width:  n.Size.Width,
			Height: n.Size.Height,
			Data:   n.Data,
			Flags:  nodeFlags[n.ID],
		}
		if c, ok := result.Clusters[n.ID]; ok {
			cluster := c
			rn.Cluster = &cluster
		}
		out.Nodes = append(out.Nodes, rn)
	}
	for _, e := range snap.Edges {
		out.Edges = append(out.Edges, RenderEdge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			Relationship: e.Relationship,
			Weight:       e.Weight,
			Label:        view.EdgeLabel(e),
			Style:        view.StyleFor(e),
			Flags:        edgeFlags[e.ID],
		})
	}
	return out
}
