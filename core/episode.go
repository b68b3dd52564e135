package core

import (
	"hash/fnv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// fingerprintBuckets is the modulus applied to the raw hash. Keeping the
// bucket space small makes nearby hashes meaningful as a crude distance proxy
// while preserving the collision-proneness callers are calibrated against.
const fingerprintBuckets = 100_000

// Well-known metadata keys written by the facade and read back by the
// suggestion engine. Callers may attach arbitrary additional keys.
const (
	MetaTaskID        = "task_id"
	MetaCategory      = "category"
	MetaApproach      = "approach"
	MetaSuccess       = "success"
	MetaExecutionTime = "execution_time"
	MetaComplexity    = "complexity"
	MetaNotes         = "notes"
)

// Conventional bucket values stored under MetaComplexity.
const (
	ComplexityLow    = "low"
	ComplexityMedium = "medium"
	ComplexityHigh   = "high"
)

// Episode is one recorded task execution. After storage it must be treated as
// immutable; only eviction removes it. It captures:
//   - Correlation (ID)
//   - What happened (State, Action, Outcome as free text)
//   - A coarse similarity bucket (Fingerprint)
//   - Open caller-supplied attributes (Metadata)
//   - High precision UTC timestamp
type Episode struct {
	ID          string         `json:"id"`
	State       string         `json:"state"`
	Action      string         `json:"action"`
	Outcome     string         `json:"outcome"`
	Timestamp   time.Time      `json:"timestamp"`
	Fingerprint int            `json:"fingerprint"`
	Metadata    map[string]any `json:"metadata"`
}

// NewEpisode builds an episode with a fresh ID and a computed fingerprint.
// A zero timestamp defaults to the creation time (UTC). The metadata map is
// copied so later caller mutation cannot leak into stored state.
func NewEpisode(state, action, outcome string, ts time.Time, metadata map[string]any) Episode {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return Episode{
		ID:          NewID(),
		State:       state,
		Action:      action,
		Outcome:     outcome,
		Timestamp:   ts.UTC(),
		Fingerprint: Fingerprint(state, action, outcome),
		Metadata:    cloneMetadata(metadata),
	}
}

// Clone returns a deep copy of the episode safe for independent mutation.
func (e Episode) Clone() Episode {
	cp := e
	cp.Metadata = cloneMetadata(e.Metadata)
	return cp
}

// MetaString returns the metadata value for key rendered as a string, or ""
// when the key is absent. Convenience for projections that only need text.
func (e Episode) MetaString(key string) string {
	v, ok := e.Metadata[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// MetaBool returns the metadata value for key as a bool, false when absent or
// not a bool.
func (e Episode) MetaBool(key string) bool {
	v, ok := e.Metadata[key]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// MetaFloat returns the metadata value for key as a float64 plus an existence
// flag. Integers are widened; JSON-decoded numbers arrive as float64 already.
func (e Episode) MetaFloat(key string) (float64, bool) {
	switch v := e.Metadata[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Fingerprint derives the deterministic similarity bucket for the given
// episode text. The inputs are lowercased, joined with single spaces and
// hashed with FNV-1a, then reduced modulo 100,000.
//
// This is a coarse bucketing key, NOT a semantic embedding: texts one
// character apart can land far away and unrelated texts can collide. Callers
// depend on exactly this behavior; swap in a real similarity strategy at the
// retrieval layer rather than changing this function.
func Fingerprint(state, action, outcome string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(state + " " + action + " " + outcome)))
	return int(h.Sum32() % fingerprintBuckets)
}

// NewID generates a new unique identifier for episodes.
//
// Returns a string representation of a new UUID.
func NewID() string { return uuid.NewString() }

// cloneMetadata copies a metadata map; nil maps become empty maps so stored
// episodes always expose a usable map.
func cloneMetadata(m map[string]any) map[string]any {
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
