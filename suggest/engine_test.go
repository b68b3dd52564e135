package suggest

import (
	"fmt"
	"testing"
	"time"

	"github.com/hupe1980/agentmemory/core"
	"github.com/hupe1980/agentmemory/episodic"
	"github.com/hupe1980/agentmemory/semantic"
	"github.com/stretchr/testify/assert"
)

func addEpisode(s *episodic.Store, taskID, description, approach string, success bool, md map[string]any) {
	meta := map[string]any{
		core.MetaTaskID:   taskID,
		core.MetaApproach: approach,
		core.MetaSuccess:  success,
	}
	for k, v := range md {
		meta[k] = v
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	s.Add(core.NewEpisode(description, approach, outcome, time.Time{}, meta))
}

// -------------------- Suggest Tests --------------------

func TestEngine_Suggest_NoHistory(t *testing.T) {
	eng := NewEngine(episodic.New(10), semantic.New())

	sg := eng.Suggest("brand new task", "unseen-category")
	assert.Empty(t, sg.RecommendedAction)
	assert.Equal(t, 0.0, sg.Confidence)
	assert.Empty(t, sg.SimilarTasks)
	assert.Empty(t, sg.ApproachStatistics)
}

func TestEngine_Suggest_WithHistory(t *testing.T) {
	epi := episodic.New(10)
	sem := semantic.New()
	eng := NewEngine(epi, sem)

	sem.RecordPattern("coding", "tdd", true)
	sem.RecordPattern("coding", "tdd", true)
	sem.RecordPattern("coding", "cowboy", false)
	addEpisode(epi, "t-1", "implement rate limiter", "tdd", true, map[string]any{core.MetaNotes: "token bucket worked"})

	sg := eng.Suggest("implement rate limiter", "coding")
	assert.Equal(t, "tdd", sg.RecommendedAction)
	assert.InDelta(t, 3.0/15.0, sg.Confidence, 1e-9)
	assert.Len(t, sg.SimilarTasks, 1)
	assert.Equal(t, core.SimilarTask{
		TaskID:   "t-1",
		Approach: "tdd",
		Success:  true,
		Notes:    "token bucket worked",
	}, sg.SimilarTasks[0])
	assert.Equal(t, 3, sg.ApproachStatistics["tdd"].Total+sg.ApproachStatistics["cowboy"].Total)
}

func TestEngine_Suggest_SimilarTasksCapped(t *testing.T) {
	epi := episodic.New(20)
	sem := semantic.New()
	eng := NewEngine(epi, sem)

	for i := 0; i < 8; i++ {
		addEpisode(epi, fmt.Sprintf("t-%d", i), "summarize meeting notes", "bullet list", true, nil)
	}
	sg := eng.Suggest("summarize meeting notes", "writing")
	assert.Len(t, sg.SimilarTasks, 5)
}

// -------------------- Confidence Tests --------------------

func TestConfidence_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, Confidence(0))
	assert.Equal(t, 0.0, Confidence(-3))
	assert.InDelta(t, 1.0/15.0, Confidence(1), 1e-9)
	assert.Equal(t, 1.0, Confidence(15))
	assert.Equal(t, 1.0, Confidence(200))
}

func TestConfidence_Monotonic(t *testing.T) {
	prev := Confidence(0)
	for samples := 1; samples <= 40; samples++ {
		c := Confidence(samples)
		assert.GreaterOrEqual(t, c, prev, "confidence dropped at %d samples", samples)
		assert.LessOrEqual(t, c, 1.0)
		prev = c
	}
}

// -------------------- Analytics Tests --------------------

func TestEngine_CategoryInsights(t *testing.T) {
	epi := episodic.New(10)
	sem := semantic.New()
	eng := NewEngine(epi, sem)

	sem.RecordPattern("coding", "tdd", true)
	sem.RecordPattern("coding", "tdd", true)
	sem.RecordPattern("coding", "cowboy", false)
	sem.RecordPattern("analysis", "survey", true)
	addEpisode(epi, "t-1", "fix flaky test", "tdd", true,
		map[string]any{core.MetaCategory: "coding", core.MetaExecutionTime: 2.0})
	addEpisode(epi, "t-2", "fix build", "cowboy", false,
		map[string]any{core.MetaCategory: "coding", core.MetaExecutionTime: 4.0})

	insights := eng.CategoryInsights()
	assert.Len(t, insights, 2)

	// sorted by category name
	analysis, coding := insights[0], insights[1]
	assert.Equal(t, "analysis", analysis.Category)
	assert.Equal(t, 1, analysis.TotalTasks)
	assert.Equal(t, 1.0, analysis.SuccessRate)
	assert.Equal(t, "survey", analysis.BestApproach)
	assert.Equal(t, 0.0, analysis.AvgExecutionTime)

	assert.Equal(t, "coding", coding.Category)
	assert.Equal(t, 3, coding.TotalTasks)
	assert.InDelta(t, 2.0/3.0, coding.SuccessRate, 1e-9)
	assert.Equal(t, "tdd", coding.BestApproach)
	assert.InDelta(t, 3.0, coding.AvgExecutionTime, 1e-9)
}

func TestEngine_ComplexityPatterns(t *testing.T) {
	epi := episodic.New(10)
	eng := NewEngine(epi, semantic.New())

	addEpisode(epi, "t-1", "task", "a", true,
		map[string]any{core.MetaComplexity: "low", core.MetaExecutionTime: 1.0})
	addEpisode(epi, "t-2", "task", "a", false,
		map[string]any{core.MetaComplexity: "low", core.MetaExecutionTime: 3.0})
	addEpisode(epi, "t-3", "task", "a", true,
		map[string]any{core.MetaComplexity: "high"})
	addEpisode(epi, "t-4", "task", "a", true, nil) // no complexity recorded

	buckets := eng.ComplexityPatterns()
	assert.Len(t, buckets, 2)

	low := buckets["low"]
	assert.Equal(t, 2, low.Total)
	assert.Equal(t, 1, low.Successes)
	assert.Equal(t, 0.5, low.SuccessRate)
	assert.InDelta(t, 2.0, low.AvgExecutionTime, 1e-9)

	high := buckets["high"]
	assert.Equal(t, 1, high.Total)
	assert.Equal(t, 1.0, high.SuccessRate)
	assert.Equal(t, 0.0, high.AvgExecutionTime)
}

func TestEngine_ImprovementAreas(t *testing.T) {
	sem := semantic.New()
	eng := NewEngine(episodic.New(10), sem)

	// deployment keeps failing with the same approach
	sem.RecordPattern("deployment", "big bang", false)
	sem.RecordPattern("deployment", "big bang", false)
	sem.RecordPattern("deployment", "big bang", true)
	// research fails but with too few attempts per approach to flag one
	sem.RecordPattern("research", "skim", false)
	sem.RecordPattern("research", "skim", false)
	// writing is healthy
	sem.RecordPattern("writing", "outline", true)
	sem.RecordPattern("writing", "outline", true)
	sem.RecordPattern("writing", "outline", true)

	areas := eng.ImprovementAreas()
	assert.Len(t, areas, 3)

	assert.Equal(t, core.AreaLowSuccessCategory, areas[0].Kind)
	assert.Equal(t, "deployment", areas[0].Category)
	assert.InDelta(t, 1.0/3.0, areas[0].SuccessRate, 1e-9)
	assert.Equal(t, 3, areas[0].Attempts)

	assert.Equal(t, core.AreaLowSuccessCategory, areas[1].Kind)
	assert.Equal(t, "research", areas[1].Category)
	assert.Equal(t, 0.0, areas[1].SuccessRate)

	assert.Equal(t, core.AreaFailingApproach, areas[2].Kind)
	assert.Equal(t, "deployment", areas[2].Category)
	assert.Equal(t, "big bang", areas[2].Action)
	assert.Equal(t, 3, areas[2].Attempts)
}

func TestEngine_ImprovementAreas_HealthyHistory(t *testing.T) {
	sem := semantic.New()
	eng := NewEngine(episodic.New(10), sem)
	for i := 0; i < 5; i++ {
		sem.RecordPattern("coding", "tdd", true)
	}
	assert.Empty(t, eng.ImprovementAreas())
}

func TestEngine_Summary(t *testing.T) {
	epi := episodic.New(2)
	sem := semantic.New()
	eng := NewEngine(epi, sem)

	assert.Equal(t, core.LearningSummary{}, eng.Summary())

	for i, success := range []bool{true, true, false} {
		addEpisode(epi, fmt.Sprintf("t-%d", i), "task", "approach", success, nil)
		sem.RecordPattern("coding", "approach", success)
	}
	sem.UpdatePreference("coding/approach", 1.0, 1.5)
	sem.UpdatePreference("tone", 0.5, 1.0)

	sum := eng.Summary()
	assert.Equal(t, 2, sum.RetainedEpisodes) // eviction trimmed the log
	assert.Equal(t, 3, sum.LifetimeSamples)  // aggregates keep full history
	assert.Equal(t, 1, sum.Categories)
	assert.InDelta(t, 2.0/3.0, sum.OverallSuccessRate, 1e-9)
	assert.Equal(t, 2, sum.TrackedPreferences)
}
