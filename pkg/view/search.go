package view

import (
	"strings"

	"github.com/mlorenzen/decklog/pkg/graph"
)

// matchLabels returns the IDs of nodes whose label contains the query,
// case-insensitively, in snapshot order.
func matchLabels(s *graph.Snapshot, query string) []string {
	needle := strings.ToLower(query)
	var matches []string
	for _, n := range s.Nodes {
		if strings.Contains(strings.ToLower(n.Label), needle) {
			matches = append(matches, n.ID)
		}
	}
	return matches
}
