// Package graph defines the structural graph model for decklog: decision and
// entity nodes, typed relationship edges, and the derived indexes that the
// layout and interaction layers are built on.
//
// The package separates three concerns:
//
//   - Snapshot: the immutable structural graph built from one data fetch.
//     Nodes and edges are value objects indexed by ID; a new fetch replaces
//     the snapshot wholesale (no incremental diffing).
//   - Adjacency: a symmetric node → neighbor-set index derived from edges,
//     feeding hover highlighting, pathfinding, and keyboard navigation.
//   - Components: iterative union-find over edges, assigning each node a
//     connected-component ID.
//
// Mutable per-interaction state (focus, hover, dimming) never lives on these
// types; it is owned by pkg/view and recomputed from the snapshot on every
// interaction event.
package graph
