package core

// EpisodicSnapshot is the plain serializable representation of an episodic
// store: its capacity plus the retained episodes in insertion order. Both
// snapshot codecs (structured and binary) operate on exactly this shape.
type EpisodicSnapshot struct {
	Capacity int       `json:"capacity"`
	Episodes []Episode `json:"episodes"`
}

// SemanticSnapshot is the plain serializable representation of a semantic
// store: ordered pattern history per context and the preference score table.
// Preference blend bookkeeping deliberately does not survive serialization;
// only the scores do.
type SemanticSnapshot struct {
	Patterns    map[string][]PatternEvent `json:"patterns"`
	Preferences map[string]float64        `json:"preferences"`
}

// EpisodicStore is a bounded, insertion-ordered log of task episodes with FIFO
// eviction at capacity. Query operations never fail; an empty store or an
// over-restrictive filter yields empty results. Short method names align with
// the other *Store interfaces.
type EpisodicStore interface {
	Add(e Episode)
	RetrieveSimilar(queryState string, k int, filter map[string]any) []Episode
	Recent(n int) []Episode
	SearchByAction(substr string) []Episode
	SearchByMetadata(criteria map[string]any) []Episode
	Count() int
	Capacity() int
	Clear()
	Snapshot() EpisodicSnapshot
}

// SemanticStore aggregates per-context action outcomes into success-rate
// statistics and maintains a weighted-preference table keyed by arbitrary
// strings. Write operations always succeed; reads over unseen contexts resolve
// to empty results.
type SemanticStore interface {
	RecordPattern(context, action string, success bool)
	UpdatePreference(key string, value, weight float64)
	BestAction(context string) (string, bool)
	ActionStatistics(context string) map[string]ActionStats
	Contexts() []string
	TotalSamples(context string) int
	Preference(key string) (float64, bool)
	Preferences() map[string]float64
	Clear()
	Snapshot() SemanticSnapshot
}
