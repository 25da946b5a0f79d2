// Package pkg provides the core libraries for decklog decision-graph
// layout and exploration.
//
// # Overview
//
// Decklog turns a knowledge-management snapshot (decision records and the
// entities they touch) into positioned, styled, explorable graphs. The pkg
// directory is organized around that flow:
//
//  1. [graph] - Structural model (snapshot, adapter, adjacency, paths,
//     connected components)
//  2. [layout] - Layout strategies (force, cluster, hierarchy, radial)
//  3. [view] - Interaction state machine (selection, focus, hover,
//     pathfinding, filters, search) and edge styling
//  4. [source] - Snapshot loading from files or the dashboard API
//  5. [cache] / [config] / [errors] / [buildinfo] - Supporting
//     infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	snapshot JSON (file or HTTP)
//	         ↓
//	source.Loader → graph.Snapshot
//	         ↓
//	layout.Compute → layout.Result (positions)
//	         ↓
//	view.State / internal/server.Render → render contract
//
// Snapshots are immutable: a fresh fetch builds a fresh Snapshot, a layout
// switch builds a fresh Result, and interaction flags are recomputed
// wholesale from the view state. Nothing is patched in place.
package pkg
