package graph

import (
	"io"
	"testing"

	charmlog "github.com/charmbracelet/log"
)

func quietLogger() *charmlog.Logger {
	return charmlog.New(io.Discard)
}

func rawNode(id, kind string) RawNode {
	return RawNode{ID: id, Type: kind, Label: id}
}

func TestFromRaw_Basic(t *testing.T) {
	raw := RawSnapshot{
		Nodes: []RawNode{rawNode("d1", "decision"), rawNode("e1", "entity")},
		Edges: []RawEdge{{ID: "x1", Source: "d1", Target: "e1", Relationship: "INVOLVES"}},
	}

	s := FromRaw(raw, quietLogger())

	if len(s.Nodes) != 2 {
		t.Fatalf("len(Nodes) = %d, want 2", len(s.Nodes))
	}
	if len(s.Edges) != 1 {
		t.Fatalf("len(Edges) = %d, want 1", len(s.Edges))
	}
	if got := s.Edges[0].Weight; got != DefaultWeight {
		t.Errorf("missing weight defaulted to %v, want %v", got, DefaultWeight)
	}
}

func TestFromRaw_DropsDanglingEdges(t *testing.T) {
	raw := RawSnapshot{
		Nodes: []RawNode{rawNode("a", "decision")},
		Edges: []RawEdge{
			{ID: "ok-missing-target", Source: "a", Target: "ghost", Relationship: "INVOLVES"},
			{ID: "ok-missing-source", Source: "ghost", Target: "a", Relationship: "INVOLVES"},
		},
	}

	s := FromRaw(raw, quietLogger())

	if len(s.Edges) != 0 {
		t.Errorf("dangling edges survived conversion: %v", s.Edges)
	}
	if len(s.Nodes) != 1 {
		t.Errorf("len(Nodes) = %d, want 1", len(s.Nodes))
	}
}

func TestFromRaw_SizesByKind(t *testing.T) {
	raw := RawSnapshot{
		Nodes: []RawNode{rawNode("d", "decision"), rawNode("e", "entity")},
	}

	s := FromRaw(raw, quietLogger())

	d, _ := s.Node("d")
	e, _ := s.Node("e")
	if d.Size.Width <= e.Size.Width || d.Size.Height <= e.Size.Height {
		t.Errorf("decision box %+v not larger than entity box %+v", d.Size, e.Size)
	}
}

func TestFromRaw_GeneratesEdgeIDs(t *testing.T) {
	raw := RawSnapshot{
		Nodes: []RawNode{rawNode("a", "entity"), rawNode("b", "entity")},
		Edges: []RawEdge{{Source: "a", Target: "b", Relationship: "SIMILAR_TO"}},
	}

	s := FromRaw(raw, quietLogger())

	if len(s.Edges) != 1 || s.Edges[0].ID == "" {
		t.Errorf("edge without id was not assigned one: %+v", s.Edges)
	}
}

func TestFromRaw_ExplicitZeroWeight(t *testing.T) {
	zero := 0.0
	raw := RawSnapshot{
		Nodes: []RawNode{rawNode("a", "entity"), rawNode("b", "entity")},
		Edges: []RawEdge{{ID: "e", Source: "a", Target: "b", Relationship: "SIMILAR_TO", Weight: &zero}},
	}

	s := FromRaw(raw, quietLogger())

	if got := s.Edges[0].Weight; got != 0 {
		t.Errorf("explicit zero weight = %v, want 0", got)
	}
}

func TestFromRaw_DuplicateNodes(t *testing.T) {
	raw := RawSnapshot{
		Nodes: []RawNode{rawNode("a", "entity"), rawNode("a", "decision")},
	}

	s := FromRaw(raw, quietLogger())

	if len(s.Nodes) != 1 {
		t.Fatalf("len(Nodes) = %d, want 1", len(s.Nodes))
	}
	if s.Nodes[0].Kind != "entity" {
		t.Errorf("first occurrence should win, got kind %q", s.Nodes[0].Kind)
	}
}

func TestParseRaw_Invalid(t *testing.T) {
	if _, err := ParseRaw([]byte("{not json")); err == nil {
		t.Error("ParseRaw accepted malformed JSON")
	}
}
