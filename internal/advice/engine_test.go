package advice

import (
	"math"
	"testing"

	"github.com/blackwell-systems/scrollwatch/internal/insight"
)

// --- Engine.Run ---

func TestEngineRun_EmptyContext(t *testing.T) {
	engine := NewEngine()
	ctx := &Context{}
	advice := engine.Run(ctx)
	// With an empty context, most rules produce nothing. JournalHygiene
	// fires on HonestyScore 0 even with an empty context.
	if len(advice) != 1 {
		t.Fatalf("expected 1 advice from an empty context, got %d", len(advice))
	}
	if advice[0].Category != "honesty" {
		t.Errorf("expected category %q, got %q", "honesty", advice[0].Category)
	}
	// No active days, so nothing to reclaim.
	if advice[0].ImpactScore != 0 {
		t.Errorf("expected impact score 0 with zero active days, got %f", advice[0].ImpactScore)
	}
}

func TestEngineRun_ReturnsSortedByImpactScore(t *testing.T) {
	engine := NewEngine()
	ctx := &Context{
		GoalMinutes:          120,
		RecordCount:          14,
		DaysActive:           7,
		DailyAvg:             200,
		TotalMinutes:         1400,
		LateNightFrequency:   0.4,
		IntentDriftFrequency: 0.5,
		IntentionRate:        0.4,
		RepeatedOpens:        5,
		HonestyScore:         70,
		TopApps:              []insight.AppUsage{{Name: "instagram", Minutes: 900}},
	}
	advice := engine.Run(ctx)
	if len(advice) < 5 {
		t.Fatalf("expected a heavy week to trigger at least 5 rules, got %d", len(advice))
	}
	for i := 1; i < len(advice); i++ {
		if advice[i].ImpactScore > advice[i-1].ImpactScore {
			t.Errorf("advice not sorted: index %d (%.2f) > index %d (%.2f)",
				i, advice[i].ImpactScore, i-1, advice[i-1].ImpactScore)
		}
	}
}

func TestEngineRun_CoversManyCategories(t *testing.T) {
	engine := NewEngine()
	ctx := &Context{
		GoalMinutes:          120,
		RecordCount:          14,
		DaysActive:           7,
		DailyAvg:             200,
		TotalMinutes:         1400,
		LateNightFrequency:   0.4,
		IntentDriftFrequency: 0.5,
		IntentionRate:        0.4,
		RepeatedOpens:        5,
		HonestyScore:         70,
		TopApps:              []insight.AppUsage{{Name: "instagram", Minutes: 900}},
	}
	advice := engine.Run(ctx)

	categories := make(map[string]bool)
	for _, a := range advice {
		categories[a.Category] = true
	}
	for _, cat := range []string{"sleep", "usage", "intention", "honesty", "focus"} {
		if !categories[cat] {
			t.Errorf("expected category %q in advice, got categories: %v", cat, categories)
		}
	}
}

func TestEngineRun_NoRules(t *testing.T) {
	engine := &Engine{rules: nil}
	ctx := &Context{HonestyScore: 10}
	advice := engine.Run(ctx)
	if len(advice) != 0 {
		t.Fatalf("expected 0 advice from engine with no rules, got %d", len(advice))
	}
}

func TestEngineRun_CustomRule(t *testing.T) {
	customRule := func(ctx *Context) []Advice {
		return []Advice{
			{
				Category:    "custom",
				Priority:    PriorityCritical,
				Title:       "Custom advice",
				Description: "This is a custom rule",
				ImpactScore: 100.0,
			},
		}
	}
	engine := &Engine{rules: []Rule{customRule}}
	ctx := &Context{}
	advice := engine.Run(ctx)
	if len(advice) != 1 {
		t.Fatalf("expected 1 advice, got %d", len(advice))
	}
	if advice[0].Category != "custom" {
		t.Errorf("expected category %q, got %q", "custom", advice[0].Category)
	}
}

// --- NewEngine ---

func TestNewEngine_HasAllRules(t *testing.T) {
	engine := NewEngine()
	// NewEngine registers 8 built-in rules.
	expectedCount := 8
	if len(engine.rules) != expectedCount {
		t.Errorf("expected %d rules, got %d", expectedCount, len(engine.rules))
	}
}

// --- Rank ---

func TestRank_SortedDescending(t *testing.T) {
	input := []Advice{
		{Title: "low", ImpactScore: 1.0},
		{Title: "high", ImpactScore: 10.0},
		{Title: "mid", ImpactScore: 5.0},
	}
	sorted := Rank(input)
	if len(sorted) != 3 {
		t.Fatalf("expected 3 advice, got %d", len(sorted))
	}
	if sorted[0].Title != "high" {
		t.Errorf("expected first to be %q, got %q", "high", sorted[0].Title)
	}
	if sorted[1].Title != "mid" {
		t.Errorf("expected second to be %q, got %q", "mid", sorted[1].Title)
	}
	if sorted[2].Title != "low" {
		t.Errorf("expected third to be %q, got %q", "low", sorted[2].Title)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	input := []Advice{
		{Title: "low", ImpactScore: 1.0},
		{Title: "high", ImpactScore: 10.0},
	}
	_ = Rank(input)
	if input[0].Title != "low" {
		t.Error("Rank mutated the input slice")
	}
}

func TestRank_EmptySlice(t *testing.T) {
	sorted := Rank(nil)
	if len(sorted) != 0 {
		t.Fatalf("expected 0 advice, got %d", len(sorted))
	}
}

func TestRank_EqualScoresKeepOrder(t *testing.T) {
	input := []Advice{
		{Title: "a", ImpactScore: 5.0},
		{Title: "b", ImpactScore: 5.0},
		{Title: "c", ImpactScore: 5.0},
	}
	sorted := Rank(input)
	if len(sorted) != 3 {
		t.Fatalf("expected 3 advice, got %d", len(sorted))
	}
	for i, want := range []string{"a", "b", "c"} {
		if sorted[i].Title != want {
			t.Errorf("index %d: expected %q, got %q", i, want, sorted[i].Title)
		}
	}
}

// --- ComputeImpact ---

func TestComputeImpact_BasicFormula(t *testing.T) {
	// (10 * 0.5 * 3.0) / 5.0 = 3.0
	result := ComputeImpact(10, 0.5, 3.0, 5.0)
	if math.Abs(result-3.0) > 0.001 {
		t.Errorf("expected 3.0, got %f", result)
	}
}

func TestComputeImpact_ZeroEffort(t *testing.T) {
	result := ComputeImpact(10, 0.5, 3.0, 0.0)
	if result != 0 {
		t.Errorf("expected 0 for zero effort, got %f", result)
	}
}

func TestComputeImpact_NegativeEffort(t *testing.T) {
	result := ComputeImpact(10, 0.5, 3.0, -1.0)
	if result != 0 {
		t.Errorf("expected 0 for negative effort, got %f", result)
	}
}

func TestComputeImpact_ZeroDays(t *testing.T) {
	result := ComputeImpact(0, 0.5, 3.0, 5.0)
	if result != 0 {
		t.Errorf("expected 0 for zero days, got %f", result)
	}
}

func TestComputeImpact_LargeValues(t *testing.T) {
	// (365 * 1.0 * 60.0) / 10.0 = 2190.0
	result := ComputeImpact(365, 1.0, 60.0, 10.0)
	if math.Abs(result-2190.0) > 0.001 {
		t.Errorf("expected 2190.0, got %f", result)
	}
}

// --- Priority constants ---

func TestPriorityOrdering(t *testing.T) {
	if PriorityCritical >= PriorityHigh {
		t.Error("PriorityCritical should be numerically less than PriorityHigh")
	}
	if PriorityHigh >= PriorityMedium {
		t.Error("PriorityHigh should be numerically less than PriorityMedium")
	}
	if PriorityMedium >= PriorityLow {
		t.Error("PriorityMedium should be numerically less than PriorityLow")
	}
}
