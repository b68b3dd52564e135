// Package agentmemory provides a high-level façade over the episodic and
// semantic memory stores, the suggestion engine and the snapshot codec,
// enabling agents to learn from past task executions. Most applications
// interact with this package by:
//  1. Creating a Memory via New() (optionally binding a storage directory)
//  2. Recording task executions as they complete (RecordTaskExecution)
//  3. Asking for an approach before starting similar work (SuggestApproach)
//  4. Persisting accumulated knowledge at checkpoints (Save)
//
// The façade delegates recommendation logic to suggest.Engine while keeping
// setup and usage ergonomics concise. All defaults are safe for local
// development and testing; unbound instances are purely in‑memory and their
// Save/Load calls are no‑ops.
package agentmemory

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/agentmemory/core"
	"github.com/hupe1980/agentmemory/episodic"
	"github.com/hupe1980/agentmemory/logging"
	"github.com/hupe1980/agentmemory/persist"
	"github.com/hupe1980/agentmemory/semantic"
	"github.com/hupe1980/agentmemory/suggest"
)

// successPreferenceWeight is the blend weight applied when a successful
// execution reinforces its category/approach preference. Heavier than the
// implicit baseline of 1 so wins accumulate influence faster.
const successPreferenceWeight = 1.5

// PreferenceKey returns the preference-table key under which a successful
// approach within a category is reinforced.
func PreferenceKey(category, approach string) string {
	return category + "/" + approach
}

// TaskExecution describes one completed task for recording.
type TaskExecution struct {
	// TaskID correlates the episode with the caller's task tracking.
	// Empty generates a fresh ID.
	TaskID string

	// Description is the free-text situation the task addressed.
	Description string

	// Category groups the task for pattern aggregation (e.g. "coding",
	// "analysis").
	Category string

	// Approach is the strategy that was applied.
	Approach string

	// Success records whether the approach worked.
	Success bool

	// ExecutionTime is the task duration in seconds; zero means unmeasured
	// and is omitted from the episode metadata.
	ExecutionTime float64

	// Complexity is the task's difficulty bucket; empty selects
	// core.ComplexityMedium.
	Complexity string

	// Notes carries optional free-text observations worth resurfacing with
	// similar future tasks.
	Notes string
}

// Options configures the Memory instance.
type Options struct {
	// EpisodicCapacity bounds the episode log. Non-positive selects
	// episodic.DefaultCapacity.
	EpisodicCapacity int

	// PatternCap optionally bounds per-category pattern history. Zero keeps
	// the history unbounded, which matches long-lived aggregation semantics.
	PatternCap int

	// StorageDir is the optional backing location for snapshots. Empty
	// disables persistence entirely: Save and Load become no-ops.
	StorageDir string

	// Format selects the snapshot encoding; empty selects
	// persist.FormatStructured.
	Format persist.Format

	// Stores (default to fresh in-memory implementations if not provided)
	EpisodicStore core.EpisodicStore
	SemanticStore core.SemanticStore

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// Callbacks are registered before any load-on-construct runs, so OnLoad
	// hooks observe the initial restore as well.
	Callbacks []Callback
}

// Memory is the high-level façade aggregating the two stores, the suggestion
// engine and the snapshot codec. Its compound operations (record, suggest,
// insight queries, save, load) are serialized by an internal guard so each
// appears atomic with respect to eviction and statistics computation.
type Memory struct {
	mu        sync.Mutex
	opts      Options
	episodic  core.EpisodicStore
	semantic  core.SemanticStore
	engine    *suggest.Engine
	codec     *persist.Codec
	callbacks *CallbackManager

	*loggerAdapter
}

// New creates a new Memory instance with optional overrides. Any unset store
// is initialized with an in-memory implementation. When Options.StorageDir is
// set, a load runs immediately; load failures at construction are logged and
// leave the instance empty rather than failing startup. An unsupported
// Options.Format is the only construction error.
func New(optFns ...func(o *Options)) (*Memory, error) {
	opts := Options{
		Format: persist.FormatStructured,
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Format == "" {
		opts.Format = persist.FormatStructured
	}
	codec, err := persist.NewCodec(opts.Format)
	if err != nil {
		return nil, err
	}

	if opts.EpisodicStore == nil {
		opts.EpisodicStore = episodic.New(opts.EpisodicCapacity)
	}
	if opts.SemanticStore == nil {
		var semOpts []semantic.Option
		if opts.PatternCap > 0 {
			semOpts = append(semOpts, semantic.WithPatternCap(opts.PatternCap))
		}
		opts.SemanticStore = semantic.New(semOpts...)
	}

	m := &Memory{
		opts:          opts,
		episodic:      opts.EpisodicStore,
		semantic:      opts.SemanticStore,
		engine:        suggest.NewEngine(opts.EpisodicStore, opts.SemanticStore),
		codec:         codec,
		callbacks:     NewCallbackManager(),
		loggerAdapter: newLoggerAdapter(opts.Logger),
	}
	for _, cb := range opts.Callbacks {
		m.callbacks.RegisterCallback(cb)
	}

	if opts.StorageDir != "" {
		if err := m.Load(context.Background()); err != nil {
			m.LogError("initial snapshot load failed, starting empty: %v", err)
		}
	}

	return m, nil
}

// RecordTaskExecution writes one episode into the episodic store and one
// pattern observation into the semantic store; successful executions also
// reinforce the category/approach preference. The returned episode is the
// stored record. BeforeRecord callbacks run first and may veto the recording
// by returning an error.
func (m *Memory) RecordTaskExecution(ctx context.Context, exec TaskExecution) (core.Episode, error) {
	if exec.TaskID == "" {
		exec.TaskID = core.NewID()
	}
	if exec.Complexity == "" {
		exec.Complexity = core.ComplexityMedium
	}

	cbCtx := &CallbackContext{CallbackType: CallbackBeforeRecord, Execution: &exec}
	if err := m.callbacks.ExecuteCallbacks(ctx, CallbackBeforeRecord, cbCtx); err != nil {
		return core.Episode{}, err
	}

	outcome := "failure"
	if exec.Success {
		outcome = "success"
	}
	if exec.Notes != "" {
		outcome = outcome + ": " + exec.Notes
	}

	metadata := map[string]any{
		core.MetaTaskID:     exec.TaskID,
		core.MetaCategory:   exec.Category,
		core.MetaApproach:   exec.Approach,
		core.MetaSuccess:    exec.Success,
		core.MetaComplexity: exec.Complexity,
	}
	if exec.ExecutionTime > 0 {
		metadata[core.MetaExecutionTime] = exec.ExecutionTime
	}
	if exec.Notes != "" {
		metadata[core.MetaNotes] = exec.Notes
	}
	episode := core.NewEpisode(exec.Description, exec.Approach, outcome, time.Time{}, metadata)

	m.mu.Lock()
	m.episodic.Add(episode)
	m.semantic.RecordPattern(exec.Category, exec.Approach, exec.Success)
	if exec.Success {
		m.semantic.UpdatePreference(PreferenceKey(exec.Category, exec.Approach), 1.0, successPreferenceWeight)
	}
	m.mu.Unlock()

	m.LogDebug("memory recorded episode task_id=%s category=%s approach=%s success=%t", exec.TaskID, exec.Category, exec.Approach, exec.Success)

	cbCtx = &CallbackContext{CallbackType: CallbackAfterRecord, Execution: &exec, Episode: &episode}
	if err := m.callbacks.ExecuteCallbacks(ctx, CallbackAfterRecord, cbCtx); err != nil {
		return episode, err
	}
	return episode, nil
}

// SuggestApproach answers "what approach should I use for this task" from
// accumulated history. It never fails for lack of data; an unseen category
// yields an empty recommendation with zero confidence. An error is only
// possible from AfterSuggest callbacks.
func (m *Memory) SuggestApproach(ctx context.Context, taskDescription, category string) (core.Suggestion, error) {
	m.mu.Lock()
	sg := m.engine.Suggest(taskDescription, category)
	m.mu.Unlock()

	m.LogDebug("memory suggestion category=%s recommended=%q confidence=%.2f similar=%d", category, sg.RecommendedAction, sg.Confidence, len(sg.SimilarTasks))

	cbCtx := &CallbackContext{CallbackType: CallbackAfterSuggest, Suggestion: &sg}
	if err := m.callbacks.ExecuteCallbacks(ctx, CallbackAfterSuggest, cbCtx); err != nil {
		return sg, err
	}
	return sg, nil
}

// CategoryInsights returns one analytic rollup per recorded category.
func (m *Memory) CategoryInsights() []core.CategoryInsight {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.CategoryInsights()
}

// ComplexityPatterns returns success and timing rollups grouped by task
// complexity bucket.
func (m *Memory) ComplexityPatterns() map[string]core.ComplexityStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.ComplexityPatterns()
}

// ImprovementAreas flags weak categories and repeatedly failing approaches.
func (m *Memory) ImprovementAreas() []core.ImprovementArea {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.ImprovementAreas()
}

// LearningSummary condenses both stores into headline numbers.
func (m *Memory) LearningSummary() core.LearningSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Summary()
}

// Save persists both stores into the configured storage directory. Unbound
// instances skip silently. The guard is held across snapshot and write so
// the two files always originate from one consistent state. OnSave callbacks
// fire after a successful write.
func (m *Memory) Save(ctx context.Context) error {
	if m.opts.StorageDir == "" {
		m.LogDebug("snapshot save skipped: no storage location configured")
		return nil
	}

	start := time.Now()
	m.mu.Lock()
	err := m.codec.SaveBundle(m.opts.StorageDir, m.episodic.Snapshot(), m.semantic.Snapshot())
	m.mu.Unlock()
	if err != nil {
		m.LogError("snapshot save failed dir=%s: %v", m.opts.StorageDir, err)
		return err
	}
	m.LogDebug("snapshot saved dir=%s format=%s duration=%s", m.opts.StorageDir, m.codec.Format(), time.Since(start))

	cbCtx := &CallbackContext{CallbackType: CallbackOnSave, Dir: m.opts.StorageDir}
	return m.callbacks.ExecuteCallbacks(ctx, CallbackOnSave, cbCtx)
}

// Load replaces the live store contents with whatever snapshots the storage
// directory holds. Unbound instances skip silently; missing files leave the
// corresponding store untouched; corrupt files surface an error with the
// stores unchanged. OnLoad callbacks fire after a successful restore.
//
// Restoration replays snapshots through the store interfaces, so injected
// store implementations are preserved and the live episodic capacity applies
// (an oversized snapshot keeps its newest episodes).
func (m *Memory) Load(ctx context.Context) error {
	if m.opts.StorageDir == "" {
		m.LogDebug("snapshot load skipped: no storage location configured")
		return nil
	}

	start := time.Now()
	m.mu.Lock()
	bundle, err := m.codec.LoadBundle(m.opts.StorageDir)
	if err == nil {
		if bundle.HasEpisodic {
			m.restoreEpisodic(bundle.Episodic)
		}
		if bundle.HasSemantic {
			m.restoreSemantic(bundle.Semantic)
		}
	}
	m.mu.Unlock()
	if err != nil {
		m.LogError("snapshot load failed dir=%s: %v", m.opts.StorageDir, err)
		return err
	}
	m.LogDebug("snapshot loaded dir=%s format=%s episodic=%t semantic=%t duration=%s", m.opts.StorageDir, m.codec.Format(), bundle.HasEpisodic, bundle.HasSemantic, time.Since(start))

	cbCtx := &CallbackContext{CallbackType: CallbackOnLoad, Dir: m.opts.StorageDir}
	return m.callbacks.ExecuteCallbacks(ctx, CallbackOnLoad, cbCtx)
}

// Episodic exposes the underlying episode log for direct queries (recent
// episodes, substring and metadata search). Single store calls are safe; for
// reads that must be consistent with concurrent recordings, prefer the
// façade's own operations.
func (m *Memory) Episodic() core.EpisodicStore {
	return m.episodic
}

// Semantic exposes the underlying pattern and preference store.
func (m *Memory) Semantic() core.SemanticStore {
	return m.semantic
}

// StorageDir returns the configured backing location; empty means unbound.
func (m *Memory) StorageDir() string {
	return m.opts.StorageDir
}

// Format returns the snapshot encoding in use.
func (m *Memory) Format() persist.Format {
	return m.codec.Format()
}

// restoreEpisodic replays an episodic snapshot into the live store. Caller
// holds the guard.
func (m *Memory) restoreEpisodic(snap core.EpisodicSnapshot) {
	m.episodic.Clear()
	for _, e := range snap.Episodes {
		m.episodic.Add(e)
	}
}

// restoreSemantic replays a semantic snapshot into the live store. Preference
// scores are re-adopted with baseline weight, matching snapshot semantics
// where only scores survive serialization. Caller holds the guard.
func (m *Memory) restoreSemantic(snap core.SemanticSnapshot) {
	m.semantic.Clear()
	for context, events := range snap.Patterns {
		for _, ev := range events {
			m.semantic.RecordPattern(context, ev.Action, ev.Success)
		}
	}
	for key, score := range snap.Preferences {
		m.semantic.UpdatePreference(key, score, 1)
	}
}
