package episodic

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/agentmemory/core"
)

// Default sizing applied when callers pass non-positive values.
const (
	// DefaultCapacity bounds a store constructed with New(0).
	DefaultCapacity = 100

	// DefaultSimilar is the result count for RetrieveSimilar when k <= 0.
	DefaultSimilar = 3

	// DefaultRecent is the result count for Recent when n <= 0.
	DefaultRecent = 5
)

// Store is a bounded, process‑local episode log. It offers:
//  1. Insertion‑ordered retention with FIFO eviction at capacity
//  2. Fingerprint‑distance retrieval of similar episodes
//  3. Linear substring and metadata scans
//
// Concurrency: protected by RWMutex.
// Retrieval: coarse numeric fingerprints, not embeddings. Episodes whose text
// differs by a single character can land in distant buckets; treat hits as
// recall candidates rather than guarantees.
type Store struct {
	mu       sync.RWMutex
	capacity int
	episodes []core.Episode
}

// New creates an empty store retaining at most capacity episodes. A
// non-positive capacity selects DefaultCapacity.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		episodes: make([]core.Episode, 0, capacity),
	}
}

// FromSnapshot rebuilds a store from a previously captured snapshot. Episodes
// are replayed in snapshot order; if the snapshot holds more episodes than its
// capacity admits, only the newest survive, matching what eviction would have
// produced.
func FromSnapshot(snap core.EpisodicSnapshot) *Store {
	s := New(snap.Capacity)
	for _, e := range snap.Episodes {
		s.Add(e)
	}
	return s
}

// Add appends an episode, evicting the single oldest entry once the bound is
// exceeded. The stored copy is detached from the caller's metadata map.
func (s *Store) Add(e core.Episode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.episodes = append(s.episodes, e.Clone())
	if len(s.episodes) > s.capacity {
		copy(s.episodes, s.episodes[1:])
		s.episodes = s.episodes[:len(s.episodes)-1]
	}
}

// RetrieveSimilar returns up to k episodes ranked by fingerprint distance to
// the query state, closest first. Equal distances keep insertion order. A
// non-positive k selects DefaultSimilar. When filter is non-empty, only
// episodes whose metadata contains every filter entry are ranked.
//
// The query is fingerprinted with empty action and outcome, so similarity is
// driven by the state text alone.
func (s *Store) RetrieveSimilar(queryState string, k int, filter map[string]any) []core.Episode {
	if k <= 0 {
		k = DefaultSimilar
	}
	qfp := core.Fingerprint(queryState, "", "")

	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]core.Episode, 0, len(s.episodes))
	for _, e := range s.episodes {
		if matchesMetadata(e, filter) {
			candidates = append(candidates, e)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return distance(candidates[i].Fingerprint, qfp) < distance(candidates[j].Fingerprint, qfp)
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return cloneAll(candidates)
}

// Recent returns the last n episodes in insertion order, oldest of the window
// first. A non-positive n selects DefaultRecent.
func (s *Store) Recent(n int) []core.Episode {
	if n <= 0 {
		n = DefaultRecent
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.episodes) {
		n = len(s.episodes)
	}
	return cloneAll(s.episodes[len(s.episodes)-n:])
}

// SearchByAction returns every episode whose action contains substr, compared
// case-insensitively, in insertion order. An empty substr matches everything.
func (s *Store) SearchByAction(substr string) []core.Episode {
	needle := strings.ToLower(substr)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Episode, 0)
	for _, e := range s.episodes {
		if strings.Contains(strings.ToLower(e.Action), needle) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// SearchByMetadata returns every episode whose metadata contains all given
// entries, in insertion order. Empty criteria match every episode.
func (s *Store) SearchByMetadata(criteria map[string]any) []core.Episode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Episode, 0)
	for _, e := range s.episodes {
		if matchesMetadata(e, criteria) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// Count reports the number of currently retained episodes.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.episodes)
}

// Capacity reports the retention bound. Immutable after construction.
func (s *Store) Capacity() int {
	return s.capacity
}

// Clear drops all retained episodes. The capacity bound is unchanged.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.episodes = make([]core.Episode, 0, s.capacity)
}

// Snapshot captures the capacity and retained episodes for serialization. The
// returned episodes are detached copies.
func (s *Store) Snapshot() core.EpisodicSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.EpisodicSnapshot{
		Capacity: s.capacity,
		Episodes: cloneAll(s.episodes),
	}
}

func matchesMetadata(e core.Episode, criteria map[string]any) bool {
	for k, want := range criteria {
		got, ok := e.Metadata[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func cloneAll(episodes []core.Episode) []core.Episode {
	out := make([]core.Episode, len(episodes))
	for i, e := range episodes {
		out[i] = e.Clone()
	}
	return out
}
