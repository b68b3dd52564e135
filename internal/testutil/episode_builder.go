package testutil

import (
	"time"

	"github.com/hupe1980/agentmemory/core"
)

// EpisodeBuilder provides a fluent helper for constructing episodes in tests.
// Example:
//
//	ep := NewEpisodeBuilder().State("fix login bug").Action("tdd").Success(true).Build()
//
// Chain only the parts you need; sensible defaults are applied.
type EpisodeBuilder struct {
	id            string
	state         string
	action        string
	outcome       string
	timestamp     time.Time
	taskID        string
	category      string
	success       *bool
	executionTime float64
	complexity    string
	notes         string
	extra         map[string]any
}

// NewEpisodeBuilder creates a builder with default state "task".
func NewEpisodeBuilder() *EpisodeBuilder { return &EpisodeBuilder{state: "task"} }

// ID overrides the auto-generated episode ID (chainable). Use mainly in tests where determinism matters.
func (b *EpisodeBuilder) ID(id string) *EpisodeBuilder { b.id = id; return b }

// State sets the situation text the episode describes (chainable).
func (b *EpisodeBuilder) State(s string) *EpisodeBuilder { b.state = s; return b }

// Action sets the action text (chainable).
func (b *EpisodeBuilder) Action(a string) *EpisodeBuilder { b.action = a; return b }

// Outcome sets the outcome text (chainable). Left empty, Build derives
// "success" or "failure" from the Success flag.
func (b *EpisodeBuilder) Outcome(o string) *EpisodeBuilder { b.outcome = o; return b }

// Timestamp pins the episode timestamp (chainable). Unset timestamps default
// to the current time.
func (b *EpisodeBuilder) Timestamp(ts time.Time) *EpisodeBuilder { b.timestamp = ts; return b }

// TaskID sets the task correlation metadata (chainable).
func (b *EpisodeBuilder) TaskID(id string) *EpisodeBuilder { b.taskID = id; return b }

// Category sets the category metadata (chainable).
func (b *EpisodeBuilder) Category(c string) *EpisodeBuilder { b.category = c; return b }

// Success sets the success metadata flag (chainable).
func (b *EpisodeBuilder) Success(ok bool) *EpisodeBuilder { b.success = &ok; return b }

// ExecutionTime sets the duration metadata in seconds (chainable).
func (b *EpisodeBuilder) ExecutionTime(seconds float64) *EpisodeBuilder {
	b.executionTime = seconds
	return b
}

// Complexity sets the complexity bucket metadata (chainable).
func (b *EpisodeBuilder) Complexity(c string) *EpisodeBuilder { b.complexity = c; return b }

// Notes sets the notes metadata (chainable).
func (b *EpisodeBuilder) Notes(n string) *EpisodeBuilder { b.notes = n; return b }

// Meta sets an arbitrary metadata key/value pair (chainable).
func (b *EpisodeBuilder) Meta(key string, val any) *EpisodeBuilder {
	if b.extra == nil {
		b.extra = map[string]any{}
	}
	b.extra[key] = val
	return b
}

// Build returns a core.Episode with pre-populated metadata. Only the chained
// metadata fields appear in the map.
func (b *EpisodeBuilder) Build() core.Episode {
	outcome := b.outcome
	if outcome == "" && b.success != nil {
		if *b.success {
			outcome = "success"
		} else {
			outcome = "failure"
		}
	}

	metadata := map[string]any{}
	if b.taskID != "" {
		metadata[core.MetaTaskID] = b.taskID
	}
	if b.category != "" {
		metadata[core.MetaCategory] = b.category
	}
	if b.action != "" {
		metadata[core.MetaApproach] = b.action
	}
	if b.success != nil {
		metadata[core.MetaSuccess] = *b.success
	}
	if b.executionTime > 0 {
		metadata[core.MetaExecutionTime] = b.executionTime
	}
	if b.complexity != "" {
		metadata[core.MetaComplexity] = b.complexity
	}
	if b.notes != "" {
		metadata[core.MetaNotes] = b.notes
	}
	for k, v := range b.extra {
		metadata[k] = v
	}

	ep := core.NewEpisode(b.state, b.action, outcome, b.timestamp, metadata)
	if b.id != "" {
		ep.ID = b.id
	}

	return ep
}
