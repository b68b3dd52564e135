package suggest

import (
	"sort"

	"github.com/hupe1980/agentmemory/core"
)

const (
	// defaultSimilarTasks is how many similar episodes back a suggestion.
	defaultSimilarTasks = 5

	// fullConfidenceSamples is the evidence volume at which confidence
	// saturates at 1.0.
	fullConfidenceSamples = 15.0

	// lowSuccessThreshold flags a category as an improvement area when its
	// overall success rate falls below it.
	lowSuccessThreshold = 0.7

	// failingMinAttempts and failingRateThreshold flag a (category, action)
	// pair once it has enough attempts and fails more often than not.
	failingMinAttempts   = 3
	failingRateThreshold = 0.5
)

// Engine composes the two stores into the recommendation surface. It holds
// references only; both stores remain owned by the caller.
type Engine struct {
	episodic core.EpisodicStore
	semantic core.SemanticStore
}

// NewEngine creates an engine reading from the given stores.
func NewEngine(episodic core.EpisodicStore, semantic core.SemanticStore) *Engine {
	return &Engine{
		episodic: episodic,
		semantic: semantic,
	}
}

// Confidence maps evidence volume to a score in [0, 1]: a linear ramp that
// saturates at fullConfidenceSamples recorded attempts. Zero evidence means
// zero confidence.
func Confidence(samples int) float64 {
	if samples <= 0 {
		return 0
	}
	c := float64(samples) / fullConfidenceSamples
	if c > 1 {
		c = 1
	}
	return c
}

// Suggest answers "what approach should I use for this task". The
// recommendation comes from the category's best-performing action, the
// supporting evidence from fingerprint-similar episodes, and the confidence
// from how many attempts the category has accumulated. An unseen category
// yields an empty recommendation with zero confidence, never an error.
func (e *Engine) Suggest(taskDescription, category string) core.Suggestion {
	sg := core.Suggestion{
		SimilarTasks:       make([]core.SimilarTask, 0, defaultSimilarTasks),
		ApproachStatistics: e.semantic.ActionStatistics(category),
		Confidence:         Confidence(e.semantic.TotalSamples(category)),
	}
	if best, ok := e.semantic.BestAction(category); ok {
		sg.RecommendedAction = best
	}
	for _, ep := range e.episodic.RetrieveSimilar(taskDescription, defaultSimilarTasks, nil) {
		sg.SimilarTasks = append(sg.SimilarTasks, core.SimilarTask{
			TaskID:   ep.MetaString(core.MetaTaskID),
			Approach: ep.MetaString(core.MetaApproach),
			Success:  ep.MetaBool(core.MetaSuccess),
			Notes:    ep.MetaString(core.MetaNotes),
		})
	}
	return sg
}

// CategoryInsights returns one rollup per recorded category, sorted by
// category name. Task volume, success rate and best approach come from the
// lifetime pattern history; average execution time comes from the episodes
// still retained in the bounded log, so it reflects recent behavior.
func (e *Engine) CategoryInsights() []core.CategoryInsight {
	execTimes := make(map[string][]float64)
	for _, ep := range e.episodic.SearchByMetadata(nil) {
		category := ep.MetaString(core.MetaCategory)
		if category == "" {
			continue
		}
		if v, ok := ep.MetaFloat(core.MetaExecutionTime); ok {
			execTimes[category] = append(execTimes[category], v)
		}
	}

	insights := make([]core.CategoryInsight, 0)
	for _, category := range e.semantic.Contexts() {
		total, successes := 0, 0
		for _, st := range e.semantic.ActionStatistics(category) {
			total += st.Total
			successes += st.Successes
		}
		insight := core.CategoryInsight{
			Category:         category,
			TotalTasks:       total,
			SuccessRate:      core.Rate(successes, total),
			AvgExecutionTime: mean(execTimes[category]),
		}
		if best, ok := e.semantic.BestAction(category); ok {
			insight.BestApproach = best
		}
		insights = append(insights, insight)
	}
	return insights
}

// ComplexityPatterns groups the retained episodes by their complexity
// metadata and rolls up volume, success rate and average execution time per
// bucket. Only observed buckets appear; episodes without complexity metadata
// are skipped.
func (e *Engine) ComplexityPatterns() map[string]core.ComplexityStats {
	out := make(map[string]core.ComplexityStats)
	times := make(map[string][]float64)
	for _, ep := range e.episodic.SearchByMetadata(nil) {
		bucket := ep.MetaString(core.MetaComplexity)
		if bucket == "" {
			continue
		}
		st := out[bucket]
		st.Total++
		if ep.MetaBool(core.MetaSuccess) {
			st.Successes++
		}
		out[bucket] = st
		if v, ok := ep.MetaFloat(core.MetaExecutionTime); ok {
			times[bucket] = append(times[bucket], v)
		}
	}
	for bucket, st := range out {
		st.SuccessRate = core.Rate(st.Successes, st.Total)
		st.AvgExecutionTime = mean(times[bucket])
		out[bucket] = st
	}
	return out
}

// ImprovementAreas scans the lifetime pattern history for weak spots: whole
// categories whose success rate is below lowSuccessThreshold, and individual
// (category, action) pairs that keep failing despite repeated attempts. Weak
// categories come first, then failing approaches; both groups are sorted by
// category and action, so output order is stable across runs.
func (e *Engine) ImprovementAreas() []core.ImprovementArea {
	var categories, approaches []core.ImprovementArea
	for _, context := range e.semantic.Contexts() {
		stats := e.semantic.ActionStatistics(context)
		total, successes := 0, 0
		actions := make([]string, 0, len(stats))
		for action, st := range stats {
			total += st.Total
			successes += st.Successes
			actions = append(actions, action)
		}
		if rate := core.Rate(successes, total); total > 0 && rate < lowSuccessThreshold {
			categories = append(categories, core.ImprovementArea{
				Kind:        core.AreaLowSuccessCategory,
				Category:    context,
				SuccessRate: rate,
				Attempts:    total,
			})
		}
		sort.Strings(actions)
		for _, action := range actions {
			st := stats[action]
			if st.Total >= failingMinAttempts && 1-st.SuccessRate > failingRateThreshold {
				approaches = append(approaches, core.ImprovementArea{
					Kind:        core.AreaFailingApproach,
					Category:    context,
					Action:      action,
					SuccessRate: st.SuccessRate,
					Attempts:    st.Total,
				})
			}
		}
	}
	return append(categories, approaches...)
}

// Summary condenses both stores into headline numbers: how many episodes the
// bounded log retains, how many observations the pattern history has
// accumulated, and the overall success rate across every category.
func (e *Engine) Summary() core.LearningSummary {
	contexts := e.semantic.Contexts()
	samples, successes := 0, 0
	for _, context := range contexts {
		for _, st := range e.semantic.ActionStatistics(context) {
			samples += st.Total
			successes += st.Successes
		}
	}
	return core.LearningSummary{
		RetainedEpisodes:   e.episodic.Count(),
		LifetimeSamples:    samples,
		Categories:         len(contexts),
		OverallSuccessRate: core.Rate(successes, samples),
		TrackedPreferences: len(e.semantic.Preferences()),
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
