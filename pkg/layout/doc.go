// Package layout computes 2-D node positions for a decision/entity graph.
//
// Four independent strategies operate over the same snapshot and produce a
// node → position assignment:
//
//   - force: iterative physics simulation (repulsion, edge attraction,
//     component cohesion) with seeded initialization
//   - cluster: union-find connected components on a coarse grid, decision
//     hubs with private entity rings, shared entities at centroids
//   - hierarchy: rank-based placement delegated to a directed-graph layering
//     engine (Graphviz dot) behind the Layerizer interface
//   - radial: concentric rings, decisions inside, entities ordered by degree
//
// Compute is the single entry point; it is a pure function of its inputs.
// The cluster, hierarchy, and radial strategies are fully deterministic; the
// force strategy is deterministic for a fixed seed and node order.
//
// Force layout cost is O(n²·iterations) from the all-pairs repulsion. That is
// acceptable for graphs up to a few hundred nodes, which covers the decision
// graphs this tool targets; no spatial index is used.
package layout
