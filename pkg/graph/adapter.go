package graph

import (
	"encoding/json"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// =============================================================================
// Raw Wire Format
// =============================================================================

// RawSnapshot is the inbound data contract from the data-fetching layer.
//
// The shape mirrors the REST API response:
//
//	{
//	  "nodes": [{"id", "type": "decision"|"entity", "label", "data", "has_embedding"?}],
//	  "edges": [{"id", "source", "target", "relationship", "weight"?}]
//	}
//
// Optional fields (edge id, weight, has_embedding) may be absent.
type RawSnapshot struct {
	Nodes []RawNode `json:"nodes"`
	Edges []RawEdge `json:"edges"`
}

// RawNode is a node as delivered by the data layer.
type RawNode struct {
	ID           string         `json:"id"`
	Type         string         `json:"type"`
	Label        string         `json:"label"`
	Data         map[string]any `json:"data,omitempty"`
	HasEmbedding bool           `json:"has_embedding,omitempty"`
}

// RawEdge is an edge as delivered by the data layer.
// Weight is a pointer so that "absent" and "0" can be distinguished;
// absent defaults to DefaultWeight.
type RawEdge struct {
	ID           string   `json:"id,omitempty"`
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	Relationship string   `json:"relationship"`
	Weight       *float64 `json:"weight,omitempty"`
}

// ParseRaw decodes a JSON graph snapshot in the wire format.
func ParseRaw(data []byte) (RawSnapshot, error) {
	var raw RawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return RawSnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return raw, nil
}

// =============================================================================
// Adapter - Wire Format → Snapshot
// =============================================================================

// FromRaw converts a raw wire snapshot into the structural graph model.
//
// Conversion rules:
//   - node sizes are assigned from the kind (decisions get the larger box)
//   - edges without an ID get a generated one
//   - edges without a weight get DefaultWeight
//   - edges referencing a node missing from the same snapshot are dropped
//     and logged at warn level; a dangling edge never fails the conversion
//
// A nil logger falls back to charmlog.Default().
func FromRaw(raw RawSnapshot, logger *charmlog.Logger) *Snapshot {
	if logger == nil {
		logger = charmlog.Default()
	}

	nodes := make([]Node, 0, len(raw.Nodes))
	seen := make(map[string]bool, len(raw.Nodes))
	for _, rn := range raw.Nodes {
		if rn.ID == "" {
			logger.Warn("dropping node without id", "label", rn.Label)
			continue
		}
		if seen[rn.ID] {
			logger.Warn("dropping duplicate node", "id", rn.ID)
			continue
		}
		seen[rn.ID] = true
		nodes = append(nodes, Node{
			ID:    rn.ID,
			Kind:  rn.Type,
			Label: rn.Label,
			Size:  SizeForKind(rn.Type),
			Data:  rn.Data,
		})
	}

	edges := make([]Edge, 0, len(raw.Edges))
	for _, re := range raw.Edges {
		if !seen[re.Source] || !seen[re.Target] {
			logger.Warn("dropping dangling edge",
				"id", re.ID, "source", re.Source, "target", re.Target)
			continue
		}
		id := re.ID
		if id == "" {
			id = uuid.NewString()
		}
		weight := DefaultWeight
		if re.Weight != nil {
			weight = *re.Weight
		}
		edges = append(edges, Edge{
			ID:           id,
			Source:       re.Source,
			Target:       re.Target,
			Relationship: re.Relationship,
			Weight:       weight,
		})
	}

	return NewSnapshot(nodes, edges)
}
