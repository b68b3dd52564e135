package semantic

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/hupe1980/agentmemory/core"
)

// Interface compliance (compile-time assertions)
var _ core.SemanticStore = (*Store)(nil)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestStore_RecordPatternAndStatistics(t *testing.T) {
	s := New()
	s.RecordPattern("coding", "tdd", true)
	s.RecordPattern("coding", "tdd", true)
	s.RecordPattern("coding", "tdd", false)
	s.RecordPattern("coding", "cowboy", false)

	stats := s.ActionStatistics("coding")
	if len(stats) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(stats))
	}
	tdd := stats["tdd"]
	if tdd.Total != 3 || tdd.Successes != 2 || !almostEqual(tdd.SuccessRate, 2.0/3.0) {
		t.Fatalf("unexpected tdd stats: %+v", tdd)
	}
	cowboy := stats["cowboy"]
	if cowboy.Total != 1 || cowboy.Successes != 0 || cowboy.SuccessRate != 0 {
		t.Fatalf("unexpected cowboy stats: %+v", cowboy)
	}
	if got := s.ActionStatistics("unknown"); len(got) != 0 {
		t.Fatalf("unknown context should yield empty stats, got %#v", got)
	}
}

func TestStore_BestAction(t *testing.T) {
	s := New()
	if _, ok := s.BestAction("empty"); ok {
		t.Fatalf("expected no best action for unknown context")
	}

	// outline: 1/2 success, checklist: 2/2 success
	s.RecordPattern("writing", "outline", true)
	s.RecordPattern("writing", "outline", false)
	s.RecordPattern("writing", "checklist", true)
	s.RecordPattern("writing", "checklist", true)

	best, ok := s.BestAction("writing")
	if !ok || best != "checklist" {
		t.Fatalf("expected checklist, got %q (ok=%v)", best, ok)
	}
}

func TestStore_BestAction_RateTiePrefersMoreAttempts(t *testing.T) {
	s := New()
	// both at 100%, veteran has more attempts
	s.RecordPattern("ops", "rookie", true)
	s.RecordPattern("ops", "veteran", true)
	s.RecordPattern("ops", "veteran", true)

	best, ok := s.BestAction("ops")
	if !ok || best != "veteran" {
		t.Fatalf("expected veteran on rate tie, got %q", best)
	}
}

func TestStore_BestAction_FullTiePrefersFirstRecorded(t *testing.T) {
	s := New()
	s.RecordPattern("ops", "alpha", true)
	s.RecordPattern("ops", "beta", true)

	best, ok := s.BestAction("ops")
	if !ok || best != "alpha" {
		t.Fatalf("expected first-recorded alpha on full tie, got %q", best)
	}
}

func TestStore_UpdatePreference_Blend(t *testing.T) {
	s := New()
	s.UpdatePreference("tone/formal", 1.0, 1.0)
	if v, ok := s.Preference("tone/formal"); !ok || v != 1.0 {
		t.Fatalf("first update should adopt value, got %v (ok=%v)", v, ok)
	}

	s.UpdatePreference("tone/formal", 0.0, 1.0)
	v1, _ := s.Preference("tone/formal")
	if !almostEqual(v1, 0.5) {
		t.Fatalf("expected 0.5 after second update, got %v", v1)
	}

	s.UpdatePreference("tone/formal", 0.0, 1.0)
	v2, _ := s.Preference("tone/formal")
	if !almostEqual(v2, 1.0/3.0) {
		t.Fatalf("expected 1/3 after third update, got %v", v2)
	}
	// step size shrinks as evidence accumulates
	if math.Abs(v1-v2) >= math.Abs(1.0-v1) {
		t.Fatalf("expected diminishing steps: %v then %v", math.Abs(1.0-v1), math.Abs(v1-v2))
	}
}

func TestStore_UpdatePreference_WeightScalesInfluence(t *testing.T) {
	light := New()
	light.UpdatePreference("k", 1.0, 1.0)
	light.UpdatePreference("k", 0.0, 1.0)

	heavy := New()
	heavy.UpdatePreference("k", 1.0, 1.0)
	heavy.UpdatePreference("k", 0.0, 3.0)

	lv, _ := light.Preference("k")
	hv, _ := heavy.Preference("k")
	if hv >= lv {
		t.Fatalf("heavier update should pull further toward 0: light=%v heavy=%v", lv, hv)
	}
	if hv < 0 {
		t.Fatalf("blend overshot the target value: %v", hv)
	}
}

func TestStore_UpdatePreference_NonPositiveWeight(t *testing.T) {
	s := New()
	s.UpdatePreference("k", 0.8, 0)
	s.UpdatePreference("k", 0.4, -2)
	v, ok := s.Preference("k")
	if !ok || !almostEqual(v, 0.6) {
		t.Fatalf("non-positive weights should count as 1, got %v", v)
	}
}

func TestStore_ContextsAndSamples(t *testing.T) {
	s := New()
	s.RecordPattern("writing", "outline", true)
	s.RecordPattern("analysis", "survey", false)
	s.RecordPattern("analysis", "survey", true)

	contexts := s.Contexts()
	if len(contexts) != 2 || contexts[0] != "analysis" || contexts[1] != "writing" {
		t.Fatalf("expected sorted contexts [analysis writing], got %v", contexts)
	}
	if s.TotalSamples("analysis") != 2 || s.TotalSamples("writing") != 1 {
		t.Fatalf("unexpected sample counts: %d/%d", s.TotalSamples("analysis"), s.TotalSamples("writing"))
	}
	if s.TotalSamples("unknown") != 0 {
		t.Fatalf("unknown context should have 0 samples")
	}
}

func TestStore_PreferencesCopyIsolation(t *testing.T) {
	s := New()
	s.UpdatePreference("style", 0.9, 1.0)
	prefs := s.Preferences()
	prefs["style"] = 0.1
	if v, _ := s.Preference("style"); v != 0.9 {
		t.Fatalf("returned preferences map shares memory with store")
	}
}

func TestStore_Clear(t *testing.T) {
	s := New()
	s.RecordPattern("coding", "tdd", true)
	s.UpdatePreference("k", 1.0, 1.0)
	s.Clear()
	if len(s.Contexts()) != 0 {
		t.Fatalf("expected no contexts after clear")
	}
	if _, ok := s.Preference("k"); ok {
		t.Fatalf("expected no preferences after clear")
	}
}

func TestStore_SnapshotRoundTrip(t *testing.T) {
	s := New()
	s.RecordPattern("coding", "tdd", true)
	s.RecordPattern("coding", "tdd", false)
	s.RecordPattern("writing", "outline", true)
	s.UpdatePreference("tone/formal", 0.75, 2.0)

	snap := s.Snapshot()
	if len(snap.Patterns) != 2 || len(snap.Patterns["coding"]) != 2 {
		t.Fatalf("unexpected snapshot patterns: %+v", snap.Patterns)
	}
	if !almostEqual(snap.Preferences["tone/formal"], 0.75) {
		t.Fatalf("unexpected snapshot preference: %v", snap.Preferences["tone/formal"])
	}
	// mutation safety (snapshot is a copy)
	snap.Patterns["coding"][0].Success = false
	if s.ActionStatistics("coding")["tdd"].Successes != 1 {
		t.Fatalf("snapshot mutation reached the store")
	}

	restored := FromSnapshot(s.Snapshot())
	if restored.TotalSamples("coding") != 2 || restored.TotalSamples("writing") != 1 {
		t.Fatalf("restore lost pattern history")
	}
	best, ok := restored.BestAction("writing")
	if !ok || best != "outline" {
		t.Fatalf("restore lost best action, got %q", best)
	}
	if v, ok := restored.Preference("tone/formal"); !ok || !almostEqual(v, 0.75) {
		t.Fatalf("restore lost preference score, got %v", v)
	}
	// restored preferences stay adjustable (evidence weight re-seeded, not frozen)
	restored.UpdatePreference("tone/formal", 0.0, 1.0)
	if v, _ := restored.Preference("tone/formal"); v >= 0.75 {
		t.Fatalf("restored preference did not move on update: %v", v)
	}
}

func TestStore_WithPatternCap(t *testing.T) {
	s := New(WithPatternCap(3))
	s.RecordPattern("coding", "old", false)
	s.RecordPattern("coding", "new", true)
	s.RecordPattern("coding", "new", true)
	s.RecordPattern("coding", "new", true) // evicts the old failure

	if s.TotalSamples("coding") != 3 {
		t.Fatalf("expected capped history of 3, got %d", s.TotalSamples("coding"))
	}
	stats := s.ActionStatistics("coding")
	if _, ok := stats["old"]; ok {
		t.Fatalf("evicted event still visible in stats")
	}
	if stats["new"].Total != 3 {
		t.Fatalf("unexpected retained stats: %+v", stats["new"])
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()
	wg := sync.WaitGroup{}
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			context := fmt.Sprintf("ctx %d", i%5)
			s.RecordPattern(context, "approach", i%2 == 0)
			s.UpdatePreference("shared", float64(i%2), 1.0)
			s.BestAction(context)
			s.Contexts()
		}(i)
	}
	wg.Wait()
	total := 0
	for _, context := range s.Contexts() {
		total += s.TotalSamples(context)
	}
	if total != 25 {
		t.Fatalf("expected 25 recorded events, got %d", total)
	}
}
