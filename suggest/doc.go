// Package suggest implements the recommendation layer on top of the episodic
// and semantic stores.
//
// # Core Responsibilities
//
// Suggestion:
//   - Best-action recommendation per task category
//   - Similar-episode evidence via fingerprint retrieval
//   - Evidence-volume confidence scoring in [0, 1]
//
// Analytics:
//   - Per-category insight rollups (volume, success rate, timing, best approach)
//   - Per-complexity-bucket rollups
//   - Improvement-area scans for weak categories and failing approaches
//   - Whole-store learning summary
//
// All operations are pure reads over the two stores. Absence of data yields
// empty results and zero confidence rather than errors, so callers can always
// render a suggestion.
package suggest
