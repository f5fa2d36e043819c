package insight

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/blackwell-systems/scrollwatch/internal/journal"
)

// mirrorGroup accumulates the per-intention numbers before classification.
type mirrorGroup struct {
	intention    string
	totalCount   int
	foundCount   int
	totalMinutes float64
	lateNight    int
	perDay       map[string]int
}

// AnalyzeMirror holds stated intentions up against their logged outcomes.
// Only records that carry both an intention and an answered outcome
// participate; everything else has nothing to mirror. loc is the timezone
// for late-night evaluation, nil meaning process local.
//
// Each intention group is classified by the first matching pattern:
// mostly-not-found, long sessions that rarely deliver, or a late-night
// habit. Groups matching nothing produce no insight.
func AnalyzeMirror(records []journal.UsageRecord, loc *time.Location) []MirrorInsight {
	groups := make(map[string]*mirrorGroup)
	var order []string

	for _, r := range records {
		if !r.HasIntention() || r.FoundIt == journal.FoundUnknown {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(r.Intention))
		g, ok := groups[key]
		if !ok {
			g = &mirrorGroup{intention: key, perDay: make(map[string]int)}
			groups[key] = g
			order = append(order, key)
		}
		g.totalCount++
		g.totalMinutes += r.MinutesSpent
		g.perDay[r.Date]++
		if r.FoundIt == journal.FoundYes {
			g.foundCount++
		}
		if IsLateNight(r, loc) {
			g.lateNight++
		}
	}

	var insights []MirrorInsight
	for _, key := range order {
		if ins, ok := classifyMirrorGroup(groups[key]); ok {
			insights = append(insights, ins)
		}
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Count > insights[j].Count
	})
	return insights
}

// classifyMirrorGroup applies the pattern rules in priority order. The
// rules are mutually exclusive; a group gets at most one insight.
func classifyMirrorGroup(g *mirrorGroup) (MirrorInsight, bool) {
	foundItRate := float64(g.foundCount) / float64(g.totalCount)
	avgMinutes := g.totalMinutes / float64(g.totalCount)

	repeated := 0
	for _, n := range g.perDay {
		if n > 1 {
			repeated++
		}
	}

	ins := MirrorInsight{
		Intention:      g.intention,
		Count:          g.totalCount,
		FoundItRate:    round3(foundItRate),
		AvgMinutes:     round2(avgMinutes),
		LateNightCount: g.lateNight,
		RepeatedOpens:  repeated,
	}

	switch {
	case foundItRate < 0.5 && g.totalCount >= 3:
		ins.Pattern = PatternNotFound
		ins.Message = fmt.Sprintf(
			"You opened an app to %s %d times, and found what you were looking for only %d%% of the time.",
			g.intention, g.totalCount, int(math.Round(foundItRate*100)))
	case avgMinutes > 60 && foundItRate < 0.7:
		ins.Pattern = PatternLongSessionNotFound
		ins.Message = fmt.Sprintf(
			"Sessions meant to %s run about %d minutes each and still miss the mark %d%% of the time.",
			g.intention, int(math.Round(avgMinutes)), int(math.Round((1-foundItRate)*100)))
	case g.lateNight > 0 && float64(g.lateNight)/float64(g.totalCount) > 0.4:
		ins.Pattern = PatternLateNight
		ins.Message = fmt.Sprintf(
			"%d of your %d sessions to %s happened late at night, the hours least likely to deliver it.",
			g.lateNight, g.totalCount, g.intention)
	default:
		return MirrorInsight{}, false
	}

	return ins, true
}
