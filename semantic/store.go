package semantic

import (
	"sort"
	"sync"

	"github.com/hupe1980/agentmemory/core"
)

// preference keeps the blended score together with the accumulated evidence
// weight. Only the score survives serialization; seen restarts at 1 after a
// restore so old knowledge stays adjustable.
type preference struct {
	score float64
	seen  float64
}

// Store aggregates action outcomes per context and maintains a weighted
// preference table. It offers:
//  1. Ordered success/failure history per context string
//  2. Derived statistics: success rates, best action, sample counts
//  3. Preference scores blended with diminishing step size
//
// Concurrency: protected by RWMutex.
type Store struct {
	mu          sync.RWMutex
	patterns    map[string][]core.PatternEvent
	preferences map[string]preference
	patternCap  int
}

// Option defines a configuration function for customizing Store behavior.
type Option func(*Store)

// WithPatternCap bounds the retained event history per context. Once a
// context exceeds the cap its oldest events are dropped, so derived
// statistics cover the retained window rather than the full lifetime.
// Zero or negative keeps the history unbounded, which is the default.
func WithPatternCap(n int) Option {
	return func(s *Store) { s.patternCap = n }
}

// New creates an empty semantic store.
func New(opts ...Option) *Store {
	s := &Store{
		patterns:    make(map[string][]core.PatternEvent),
		preferences: make(map[string]preference),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// FromSnapshot rebuilds a store from a previously captured snapshot. Pattern
// histories are replayed in snapshot order; preference evidence weights are
// re-seeded to 1 since only scores are serialized.
func FromSnapshot(snap core.SemanticSnapshot, opts ...Option) *Store {
	s := New(opts...)
	for context, events := range snap.Patterns {
		for _, ev := range events {
			s.RecordPattern(context, ev.Action, ev.Success)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, score := range snap.Preferences {
		s.preferences[key] = preference{score: score, seen: 1}
	}
	return s
}

// RecordPattern appends one success/failure observation for an action within
// a context. Contexts and actions are opaque strings; callers choose the
// granularity (task category, approach name, tool id).
func (s *Store) RecordPattern(context, action string, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := append(s.patterns[context], core.PatternEvent{Action: action, Success: success})
	if s.patternCap > 0 && len(events) > s.patternCap {
		copy(events, events[1:])
		events = events[:len(events)-1]
	}
	s.patterns[context] = events
}

// UpdatePreference blends value into the score stored under key using a
// weighted running mean: (score*seen + value*weight) / (seen + weight). The
// first update adopts value outright; as evidence accumulates, each
// additional observation shifts the score less, and no update can push the
// score past the value it blends in. A non-positive weight counts as 1.
func (s *Store) UpdatePreference(key string, value, weight float64) {
	if weight <= 0 {
		weight = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.preferences[key]
	p.score = (p.score*p.seen + value*weight) / (p.seen + weight)
	p.seen += weight
	s.preferences[key] = p
}

// BestAction returns the action with the highest success rate in the given
// context. Rate ties prefer the action with more attempts; full ties prefer
// the action recorded first. The second return is false when the context has
// no history.
func (s *Store) BestAction(context string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := s.patterns[context]
	if len(events) == 0 {
		return "", false
	}

	type rollup struct {
		action    string
		total     int
		successes int
	}
	index := make(map[string]int)
	entries := make([]rollup, 0)
	for _, ev := range events {
		i, ok := index[ev.Action]
		if !ok {
			i = len(entries)
			index[ev.Action] = i
			entries = append(entries, rollup{action: ev.Action})
		}
		entries[i].total++
		if ev.Success {
			entries[i].successes++
		}
	}

	best := entries[0]
	for _, e := range entries[1:] {
		br := core.Rate(best.successes, best.total)
		er := core.Rate(e.successes, e.total)
		if er > br || (er == br && e.total > best.total) {
			best = e
		}
	}
	return best.action, true
}

// ActionStatistics returns per-action totals and success rates for a context.
// Unknown contexts yield an empty map.
func (s *Store) ActionStatistics(context string) map[string]core.ActionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]core.ActionStats)
	for _, ev := range s.patterns[context] {
		st := out[ev.Action]
		st.Total++
		if ev.Success {
			st.Successes++
		}
		out[ev.Action] = st
	}
	for action, st := range out {
		st.SuccessRate = core.Rate(st.Successes, st.Total)
		out[action] = st
	}
	return out
}

// Contexts returns all context strings with recorded history, sorted.
func (s *Store) Contexts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.patterns))
	for context := range s.patterns {
		out = append(out, context)
	}
	sort.Strings(out)
	return out
}

// TotalSamples reports the number of retained observations for a context.
func (s *Store) TotalSamples(context string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patterns[context])
}

// Preference returns the blended score stored under key. The second return
// is false when the key has never been updated.
func (s *Store) Preference(key string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.preferences[key]
	return p.score, ok
}

// Preferences returns a copy of the full key to score table.
func (s *Store) Preferences() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.preferences))
	for key, p := range s.preferences {
		out[key] = p.score
	}
	return out
}

// Clear drops all pattern history and preferences.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns = make(map[string][]core.PatternEvent)
	s.preferences = make(map[string]preference)
}

// Snapshot captures pattern histories and preference scores for
// serialization. The returned maps are detached copies.
func (s *Store) Snapshot() core.SemanticSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	patterns := make(map[string][]core.PatternEvent, len(s.patterns))
	for context, events := range s.patterns {
		cp := make([]core.PatternEvent, len(events))
		copy(cp, events)
		patterns[context] = cp
	}
	preferences := make(map[string]float64, len(s.preferences))
	for key, p := range s.preferences {
		preferences[key] = p.score
	}
	return core.SemanticSnapshot{Patterns: patterns, Preferences: preferences}
}
