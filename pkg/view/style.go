package view

import (
	"fmt"

	"github.com/mlorenzen/decklog/pkg/graph"
)

// EdgeStyle is the visual treatment of one edge in the outbound render
// contract. One fixed style exists per relationship kind; unknown kinds get
// the default style.
type EdgeStyle struct {
	StrokeWidth float64 `json:"strokeWidth"`
	StrokeColor string  `json:"strokeColor"`
	DashPattern string  `json:"dashPattern,omitempty"`
	Animated    bool    `json:"animated,omitempty"`
}

// defaultEdgeStyle is the fallback for relationship kinds missing from the
// table.
var defaultEdgeStyle = EdgeStyle{StrokeWidth: 1.5, StrokeColor: "#9ca3af"}

// edgeStyles is the fixed style lookup table keyed by relationship kind.
var edgeStyles = map[string]EdgeStyle{
	graph.RelInvolves:   {StrokeWidth: 2, StrokeColor: "#64748b"},
	graph.RelSimilarTo:  {StrokeWidth: 1.5, StrokeColor: "#8b5cf6", DashPattern: "6 3"},
	graph.RelSupersedes: {StrokeWidth: 2.5, StrokeColor: "#f59e0b", Animated: true},
	graph.RelDependsOn:  {StrokeWidth: 2, StrokeColor: "#0ea5e9"},
	graph.RelConflicts:  {StrokeWidth: 2, StrokeColor: "#ef4444", DashPattern: "2 4"},
	graph.RelRelatedTo:  {StrokeWidth: 1.5, StrokeColor: "#94a3b8", DashPattern: "4 4"},
}

// StyleFor returns the edge's visual style. Stroke width is emphasized by
// the edge weight so heavily weighted similarity edges read stronger.
func StyleFor(e graph.Edge) EdgeStyle {
	s, ok := edgeStyles[e.Relationship]
	if !ok {
		s = defaultEdgeStyle
	}
	if e.Weight > 0 {
		s.StrokeWidth *= 0.5 + e.Weight/2
	}
	return s
}

// EdgeLabel returns the display label for an edge. Weighted similarity
// edges are labeled with their weight; other kinds have no label.
func EdgeLabel(e graph.Edge) string {
	if e.Relationship == graph.RelSimilarTo && e.Weight > 0 && e.Weight < 1 {
		return fmt.Sprintf("%.2f", e.Weight)
	}
	return ""
}
