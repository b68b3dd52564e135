package core

// SimilarTask is the caller-facing projection of an episode retrieved as
// supporting evidence for a suggestion. Fields are pulled from the episode's
// metadata; absent keys project to zero values.
type SimilarTask struct {
	TaskID   string `json:"task_id"`
	Approach string `json:"approach"`
	Success  bool   `json:"success"`
	Notes    string `json:"notes,omitempty"`
}

// Suggestion is the answer to "what approach should I use for this task".
// Absence of history yields zero values rather than errors: no recommended
// action, confidence 0.0, empty evidence. Callers can always render it.
type Suggestion struct {
	RecommendedAction  string                 `json:"recommended_action,omitempty"`
	Confidence         float64                `json:"confidence"`
	SimilarTasks       []SimilarTask          `json:"similar_tasks"`
	ApproachStatistics map[string]ActionStats `json:"approach_statistics"`
}

// CategoryInsight aggregates everything known about a single task category.
// TotalTasks and SuccessRate come from the lifetime pattern history;
// AvgExecutionTime is computed over the retained episodic window only, since
// execution times live in episode metadata.
type CategoryInsight struct {
	Category         string  `json:"category"`
	TotalTasks       int     `json:"total_tasks"`
	SuccessRate      float64 `json:"success_rate"`
	AvgExecutionTime float64 `json:"avg_execution_time"`
	BestApproach     string  `json:"best_approach,omitempty"`
}

// ComplexityStats is the rollup for one complexity bucket (low/medium/high).
type ComplexityStats struct {
	Total            int     `json:"total"`
	Successes        int     `json:"successes"`
	SuccessRate      float64 `json:"success_rate"`
	AvgExecutionTime float64 `json:"avg_execution_time"`
}

// Improvement area kinds reported by the analytics scan.
const (
	// AreaLowSuccessCategory flags a category whose overall success rate is
	// below the 0.7 threshold.
	AreaLowSuccessCategory = "low_success_category"
	// AreaFailingApproach flags a (category, action) pair with at least three
	// attempts and a failure rate above 0.5.
	AreaFailingApproach = "failing_approach"
)

// ImprovementArea marks a category or approach that underperforms. Action is
// empty for category-level findings.
type ImprovementArea struct {
	Kind        string  `json:"kind"`
	Category    string  `json:"category"`
	Action      string  `json:"action,omitempty"`
	SuccessRate float64 `json:"success_rate"`
	Attempts    int     `json:"attempts"`
}

// LearningSummary is a cross-cutting snapshot of accumulated experience.
type LearningSummary struct {
	RetainedEpisodes   int     `json:"retained_episodes"`
	LifetimeSamples    int     `json:"lifetime_samples"`
	Categories         int     `json:"categories"`
	OverallSuccessRate float64 `json:"overall_success_rate"`
	TrackedPreferences int     `json:"tracked_preferences"`
}
