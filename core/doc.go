// Package core provides the foundational domain types and store contracts used
// by AgentMemory. It defines the core abstractions for:
//
//   - Episodes (immutable records of executed tasks with coarse fingerprints)
//   - Patterns (per-context action/outcome observations and their statistics)
//   - Suggestions (recommendations assembled from both memory stores)
//   - Snapshots (plain serializable representations used by the persistence layer)
//   - Pluggable store interfaces for episodic recall and semantic aggregation
//
// The package intentionally keeps implementation concerns (bounded storage,
// eviction discipline, snapshot codecs, the facade) out of scope, exposing
// small interfaces so backends can be swapped without touching calling code.
package core
