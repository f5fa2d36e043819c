package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scrollwatch/internal/insight"
	"github.com/blackwell-systems/scrollwatch/internal/output"
)

var compareDays int

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare your first logged days against your latest",
	Long: `Slice the journal into two windows, the first N days on record and the
most recent N, and compare them metric by metric: daily volume,
late-night frequency, risk, and honesty. This is the before/after view
for anyone mid-detox.`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().IntVar(&compareDays, "days", 0, "Window length in days (default: comparison_days from config)")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, loc, err := setupCommand()
	if err != nil {
		return err
	}

	days := compareDays
	if days <= 0 {
		days = cfg.ComparisonDays
	}

	// The comparison slices its own windows from the full journal.
	records, err := windowRecords(cfg, loc, 0)
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	result := insight.CompareWindows(records, days, loc)

	if flagJSON {
		if result == nil {
			return writeJSON(map[string]any{"comparison": nil, "reason": "insufficient data"})
		}
		return writeJSON(result)
	}

	if result == nil {
		fmt.Printf("Not enough data to compare two %d-day windows yet. Keep logging.\n", days)
		return nil
	}

	renderComparison(result)
	return nil
}

func renderComparison(r *insight.ComparisonResult) {
	fmt.Println(output.Section(fmt.Sprintf("Then vs Now (%d-day windows)", r.DaysCompared)))
	fmt.Println()

	tbl := output.NewTable("Metric", "First window", "Last window", "Change")
	tbl.AddRow(
		"Daily minutes",
		fmt.Sprintf("%.0f", r.Before.AvgDailyMinutes),
		fmt.Sprintf("%.0f", r.After.AvgDailyMinutes),
		output.TrendArrow(r.Changes.DailyUsage, false),
	)
	tbl.AddRow(
		"Late-night rate",
		fmt.Sprintf("%.0f%%", r.Before.LateNightFrequency*100),
		fmt.Sprintf("%.0f%%", r.After.LateNightFrequency*100),
		output.TrendArrow(r.Changes.LateNightUsage*100, false),
	)
	tbl.AddRow(
		"Risk score",
		fmt.Sprintf("%d", r.Before.RiskScore),
		fmt.Sprintf("%d", r.After.RiskScore),
		output.TrendArrow(r.Changes.RiskScore, false),
	)
	tbl.AddRow(
		"Honesty score",
		fmt.Sprintf("%d", r.Before.HonestyScore),
		fmt.Sprintf("%d", r.After.HonestyScore),
		output.TrendArrow(r.Changes.HonestyScore, true),
	)
	tbl.Print()

	fmt.Println()
	fmt.Printf(" %s\n", output.StyleMuted.Render(fmt.Sprintf(
		"First window: %d active days, %.0f min total · Last window: %d active days, %.0f min total",
		r.Before.DaysActive, r.Before.TotalMinutes, r.After.DaysActive, r.After.TotalMinutes)))
}
