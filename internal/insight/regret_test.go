package insight

import (
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/scrollwatch/internal/journal"
)

func TestScoreRegret_FactorTiers(t *testing.T) {
	// Each case flips exactly one factor above a tier boundary; the base
	// signals contribute nothing.
	base := RegretSignals{RiskTrend: RiskTrendStable, HonestyScore: 100}

	tests := []struct {
		name      string
		mutate    func(*RegretSignals)
		wantScore int
		wantTypes RegretTypes
	}{
		{"no signals", func(s *RegretSignals) {}, 0, RegretTypes{}},
		{"daily avg top tier", func(s *RegretSignals) { s.DailyAvg = 250 }, 30, RegretTypes{AttentionDrain: 20, Burnout: 10}},
		{"daily avg mid tier", func(s *RegretSignals) { s.DailyAvg = 200 }, 20, RegretTypes{AttentionDrain: 15, Burnout: 5}},
		{"daily avg low tier", func(s *RegretSignals) { s.DailyAvg = 120 }, 10, RegretTypes{AttentionDrain: 10}},
		{"daily avg below tiers", func(s *RegretSignals) { s.DailyAvg = 119 }, 0, RegretTypes{}},
		{"late night top tier", func(s *RegretSignals) { s.LateNightFrequency = 0.5 }, 25, RegretTypes{Burnout: 20, HabitualScrolling: 5}},
		{"late night mid tier", func(s *RegretSignals) { s.LateNightFrequency = 0.3 }, 15, RegretTypes{Burnout: 15}},
		{"late night low tier", func(s *RegretSignals) { s.LateNightFrequency = 0.15 }, 8, RegretTypes{Burnout: 8}},
		{"drift top tier", func(s *RegretSignals) { s.IntentDriftFrequency = 0.6 }, 25, RegretTypes{AttentionDrain: 5, HabitualScrolling: 20}},
		{"drift mid tier", func(s *RegretSignals) { s.IntentDriftFrequency = 0.4 }, 15, RegretTypes{HabitualScrolling: 15}},
		{"drift low tier", func(s *RegretSignals) { s.IntentDriftFrequency = 0.2 }, 8, RegretTypes{HabitualScrolling: 8}},
		{"rising trend", func(s *RegretSignals) { s.RiskTrend = RiskTrendIncreasing }, 10, RegretTypes{AttentionDrain: 5, Burnout: 5}},
		{"flat but already high", func(s *RegretSignals) { s.RiskTrend = RiskTrendStableHigh }, 5, RegretTypes{HabitualScrolling: 5}},
		{"honesty below 60", func(s *RegretSignals) { s.HonestyScore = 59 }, 10, RegretTypes{HabitualScrolling: 5}},
		{"honesty below 80", func(s *RegretSignals) { s.HonestyScore = 79 }, 5, RegretTypes{}},
		{"honesty at 80", func(s *RegretSignals) { s.HonestyScore = 80 }, 0, RegretTypes{}},
	}

	for _, tt := range tests {
		sig := base
		tt.mutate(&sig)
		got := ScoreRegret(sig)
		if got.RegretScore != tt.wantScore {
			t.Errorf("%s: score = %d, want %d", tt.name, got.RegretScore, tt.wantScore)
		}
		if got.RegretTypes != tt.wantTypes {
			t.Errorf("%s: types = %+v, want %+v", tt.name, got.RegretTypes, tt.wantTypes)
		}
	}
}

func TestScoreRegret_EveryFactorMaxed(t *testing.T) {
	sig := RegretSignals{
		DailyAvg:             300,
		LateNightFrequency:   0.5,
		IntentDriftFrequency: 0.6,
		RiskTrend:            RiskTrendIncreasing,
		HonestyScore:         50,
	}
	got := ScoreRegret(sig)

	if got.RegretScore != 100 {
		t.Errorf("score = %d, want 100", got.RegretScore)
	}
	if got.RegretLevel != "high" {
		t.Errorf("level = %q, want high", got.RegretLevel)
	}
	// Burnout collects from the usage, late-night and trend factors and
	// edges out the other two accumulators.
	want := RegretTypes{AttentionDrain: 30, Burnout: 35, HabitualScrolling: 30}
	if got.RegretTypes != want {
		t.Errorf("types = %+v, want %+v", got.RegretTypes, want)
	}
	if got.DominantType != RegretBurnout {
		t.Errorf("dominant = %q, want %q", got.DominantType, RegretBurnout)
	}
}

func TestRegretLevel_Thresholds(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "low"},
		{39, "low"},
		{40, "medium"},
		{69, "medium"},
		{70, "high"},
		{100, "high"},
	}
	for _, tt := range tests {
		if got := regretLevel(tt.score); got != tt.want {
			t.Errorf("regretLevel(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestDominantRegretType_TieBreak(t *testing.T) {
	// Burnout and habitual scrolling both sit at 8; the earlier
	// declaration wins the tie.
	sig := RegretSignals{
		LateNightFrequency:   0.15,
		IntentDriftFrequency: 0.2,
		RiskTrend:            RiskTrendStable,
		HonestyScore:         100,
	}
	if got := ScoreRegret(sig).DominantType; got != RegretBurnout {
		t.Errorf("dominant = %q, want %q", got, RegretBurnout)
	}

	if got := dominantRegretType(RegretTypes{}); got != RegretAttentionDrain {
		t.Errorf("all-zero dominant = %q, want %q", got, RegretAttentionDrain)
	}
}

func TestRegretNarrative_SubstitutesProjections(t *testing.T) {
	got := regretNarrative(RegretAttentionDrain, "high", 240)
	if !strings.Contains(got, "240 minutes") {
		t.Errorf("narrative missing daily minutes: %q", got)
	}
	// 240 minutes a day projects to 1460 hours a year.
	if !strings.Contains(got, "1460 hours") {
		t.Errorf("narrative missing yearly hours: %q", got)
	}
}

func TestRegretNarrative_CoversEveryCombination(t *testing.T) {
	dominants := []string{RegretAttentionDrain, RegretBurnout, RegretHabitualScrolling}
	levels := []string{"low", "medium", "high"}
	seen := make(map[string]bool)

	for _, d := range dominants {
		for _, l := range levels {
			got := regretNarrative(d, l, 100)
			if got == "" {
				t.Fatalf("narrative for (%s, %s) is empty", d, l)
			}
			if strings.Contains(got, "%!") {
				t.Errorf("narrative for (%s, %s) has a formatting error: %q", d, l, got)
			}
			if seen[got] {
				t.Errorf("narrative for (%s, %s) duplicates another combination", d, l)
			}
			seen[got] = true
		}
	}
}

func TestRegretNarrative_UnknownKeyFallsBack(t *testing.T) {
	got := regretNarrative("nonsense", "nonsense", 60)
	want := regretNarrative(RegretAttentionDrain, "low", 60)
	if got != want {
		t.Errorf("fallback narrative = %q, want %q", got, want)
	}
}

func TestRegretRecommendations_Gates(t *testing.T) {
	sig := RegretSignals{
		DailyAvg:             200,
		LateNightFrequency:   0.4,
		IntentDriftFrequency: 0.5,
		RiskTrend:            RiskTrendStable,
		HonestyScore:         100,
		RepeatedOpens:        6,
	}
	got := ScoreRegret(sig)

	// Five gates open: late-night cutoff, intention naming, daily budget,
	// burnout protection (accumulator at 20) and the repeated-opens note.
	if len(got.Recommendations) != 5 {
		t.Fatalf("got %d recommendations, want 5: %v", len(got.Recommendations), got.Recommendations)
	}
	joined := strings.Join(got.Recommendations, "\n")
	for _, frag := range []string{"hard cutoff", "Name what you're looking for", "daily budget", "last hour before sleep", "6 days"} {
		if !strings.Contains(joined, frag) {
			t.Errorf("recommendations missing %q:\n%s", frag, joined)
		}
	}
}

func TestRegretRecommendations_FallbackWhenQuiet(t *testing.T) {
	got := ScoreRegret(RegretSignals{RiskTrend: RiskTrendStable, HonestyScore: 100})
	if len(got.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want the single fallback: %v", len(got.Recommendations), got.Recommendations)
	}
	if !strings.Contains(got.Recommendations[0], "Keep logging") {
		t.Errorf("fallback = %q", got.Recommendations[0])
	}
}

func TestAnalyzeRegret_EmptyRecords(t *testing.T) {
	got := AnalyzeRegret(nil, time.UTC)
	if got.RegretScore != 0 || got.RegretLevel != "low" {
		t.Errorf("empty journal = score %d level %q, want 0 low", got.RegretScore, got.RegretLevel)
	}
	if got.Narrative == "" {
		t.Errorf("empty journal should still get a narrative")
	}
	if len(got.Recommendations) != 1 {
		t.Errorf("empty journal recommendations = %v, want the single fallback", got.Recommendations)
	}
}

func TestBuildRegretSignals_TrendDerivation(t *testing.T) {
	climbing := days("instagram", "2026-08-01", 10, 10, 200, 200)
	if got := BuildRegretSignals(climbing, time.UTC).RiskTrend; got != RiskTrendIncreasing {
		t.Errorf("climbing journal trend = %q, want %q", got, RiskTrendIncreasing)
	}

	flatHeavy := days("instagram", "2026-08-01", 400, 400, 400, 400, 400, 400, 400)
	if got := BuildRegretSignals(flatHeavy, time.UTC).RiskTrend; got != RiskTrendStableHigh {
		t.Errorf("flat heavy journal trend = %q, want %q", got, RiskTrendStableHigh)
	}

	flatLight := days("instagram", "2026-08-01", 60, 60, 60, 60, 60, 60, 60)
	if got := BuildRegretSignals(flatLight, time.UTC).RiskTrend; got != RiskTrendStable {
		t.Errorf("flat light journal trend = %q, want %q", got, RiskTrendStable)
	}
}

func TestBuildRegretSignals_Averages(t *testing.T) {
	records := []journal.UsageRecord{
		rec("instagram", 30, "2026-08-01"),
		rec("twitter", 60, "2026-08-01"),
		rec("instagram", 90, "2026-08-02"),
	}
	sig := BuildRegretSignals(records, time.UTC)

	// 180 minutes across two distinct days.
	if sig.DailyAvg != 90 {
		t.Errorf("daily avg = %v, want 90", sig.DailyAvg)
	}
	if sig.RepeatedOpens != 1 {
		t.Errorf("repeated opens = %d, want 1", sig.RepeatedOpens)
	}
	if sig.HonestyScore != 100 {
		t.Errorf("honesty = %d, want 100", sig.HonestyScore)
	}
}
