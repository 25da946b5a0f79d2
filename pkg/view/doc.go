// Package view owns the transient interaction state layered over a graph
// snapshot: selection, keyboard focus, hover, pathfinding mode, filters, and
// text search.
//
// The state machine is a set of orthogonal fields, not a single enum; hover
// can coexist with an active path and several filters. All derived node and
// edge flags (focused, hovered, dimmed, on-path) are recomputed wholesale
// from (snapshot, state) on every query; nothing is patched incrementally,
// which trades a little efficiency for freedom from stale-flag bugs.
//
// Dimming sources combine by logical OR: a node is dimmed when at least one
// active source (hover adjacency, path highlight, scope/source/project
// filter, search) excludes it. Clearing every source restores full opacity
// with no residual state. No source takes visual precedence over another;
// if product requirements ever need path highlighting to beat filter
// dimming, that precedence has to be decided here explicitly.
package view
