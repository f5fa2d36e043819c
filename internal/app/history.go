package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scrollwatch/internal/output"
	"github.com/blackwell-systems/scrollwatch/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved score snapshots over time",
	Long: `List the score snapshots written by 'scrollwatch report --save' in
chronological order, and show the metric deltas between the two most
recent ones. Risk and regret improve downward, honesty improves upward;
the trend arrows know the difference.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum snapshots to show (0 = all)")
	rootCmd.AddCommand(historyCmd)
}

// scoreDirection maps snapshot metrics to whether higher values are better.
var scoreDirection = map[string]bool{
	"total_minutes": false,
	"days_active":   true,
	"risk_score":    false,
	"honesty_score": true,
	"regret_score":  false,
}

// scoreShortName returns a compact label for the delta table.
func scoreShortName(name string) string {
	short := map[string]string{
		"total_minutes": "Minutes (week)",
		"days_active":   "Days active",
		"risk_score":    "Risk",
		"honesty_score": "Honesty",
		"regret_score":  "Regret",
	}
	if s, ok := short[name]; ok {
		return s
	}
	return name
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, _, err := setupCommand()
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	snapshots, err := db.ListScoreSnapshots(historyLimit)
	if err != nil {
		return fmt.Errorf("loading snapshots: %w", err)
	}

	// Oldest first, so the table reads top to bottom chronologically.
	for i, j := 0, len(snapshots)-1; i < j; i, j = i+1, j-1 {
		snapshots[i], snapshots[j] = snapshots[j], snapshots[i]
	}

	var diff *store.SnapshotDiff
	if n := len(snapshots); n >= 2 {
		prev, curr := &snapshots[n-2], &snapshots[n-1]
		diff = &store.SnapshotDiff{
			Previous: prev,
			Current:  curr,
			Deltas:   snapshotDeltas(prev, curr),
		}
	}

	if flagJSON {
		return writeJSON(map[string]any{"snapshots": snapshots, "diff": diff})
	}

	if len(snapshots) == 0 {
		fmt.Println("No snapshots yet. Run 'scrollwatch report --save' to record one.")
		return nil
	}

	fmt.Println(output.Section("Score History"))
	fmt.Println()

	tbl := output.NewTable("#", "Taken", "Minutes", "Active", "Risk", "Honesty", "Regret")
	for _, s := range snapshots {
		tbl.AddRow(
			fmt.Sprintf("%d", s.ID),
			s.TakenAt.Local().Format("Jan 02 15:04"),
			fmt.Sprintf("%.0f", s.TotalMinutes),
			fmt.Sprintf("%d/%d", s.DaysActive, s.PeriodDays),
			fmt.Sprintf("%d %s", s.RiskScore, s.RiskLevel),
			fmt.Sprintf("%d", s.HonestyScore),
			fmt.Sprintf("%d %s", s.RegretScore, s.RegretLevel),
		)
	}
	tbl.Print()

	if diff == nil {
		fmt.Println()
		fmt.Printf(" %s\n", output.StyleMuted.Render("One snapshot so far. Save another later to see trends."))
		return nil
	}

	fmt.Println(output.Section("Since Last Snapshot"))
	fmt.Println()
	fmt.Printf(" %s\n\n", output.StyleMuted.Render(fmt.Sprintf(
		"#%d (%s) against #%d (%s)",
		diff.Current.ID, diff.Current.TakenAt.Local().Format("Jan 02 15:04"),
		diff.Previous.ID, diff.Previous.TakenAt.Local().Format("Jan 02 15:04"))))

	dtbl := output.NewTable("Score", "Previous", "Current", "Trend")
	for _, d := range diff.Deltas {
		dtbl.AddRow(
			scoreShortName(d.Name),
			fmt.Sprintf("%.0f", d.Previous),
			fmt.Sprintf("%.0f", d.Current),
			output.TrendArrow(d.Delta, scoreDirection[d.Name]),
		)
	}
	dtbl.Print()
	return nil
}

// snapshotDeltas compares two snapshots metric by metric, in display order.
func snapshotDeltas(prev, curr *store.ScoreSnapshot) []store.ScoreDelta {
	pairs := []struct {
		name       string
		prevV, cur float64
	}{
		{"total_minutes", prev.TotalMinutes, curr.TotalMinutes},
		{"days_active", float64(prev.DaysActive), float64(curr.DaysActive)},
		{"risk_score", float64(prev.RiskScore), float64(curr.RiskScore)},
		{"honesty_score", float64(prev.HonestyScore), float64(curr.HonestyScore)},
		{"regret_score", float64(prev.RegretScore), float64(curr.RegretScore)},
	}

	deltas := make([]store.ScoreDelta, 0, len(pairs))
	for _, p := range pairs {
		delta := p.cur - p.prevV

		direction := "unchanged"
		if delta != 0 {
			improved := (delta > 0) == scoreDirection[p.name]
			if improved {
				direction = "improved"
			} else {
				direction = "regressed"
			}
		}

		deltas = append(deltas, store.ScoreDelta{
			Name:      p.name,
			Previous:  p.prevV,
			Current:   p.cur,
			Delta:     delta,
			Direction: direction,
		})
	}
	return deltas
}
