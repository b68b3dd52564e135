package core

// PatternEvent is one (action, success) observation recorded under a context.
// The per-context sequence is ordered and append-only; there is no eviction by
// default, so pattern history grows for the lifetime of the store.
type PatternEvent struct {
	Action  string `json:"action"`
	Success bool   `json:"success"`
}

// ActionStats is the per-action rollup within a single context.
type ActionStats struct {
	Total       int     `json:"total"`
	Successes   int     `json:"successes"`
	SuccessRate float64 `json:"success_rate"`
}

// Rate computes successes/total, returning 0 for an empty rollup.
func Rate(successes, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(successes) / float64(total)
}
