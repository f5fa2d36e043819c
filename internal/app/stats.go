package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scrollwatch/internal/insight"
	"github.com/blackwell-systems/scrollwatch/internal/journal"
	"github.com/blackwell-systems/scrollwatch/internal/output"
	"github.com/blackwell-systems/scrollwatch/internal/store"
)

var (
	statsPeriod string
	statsSeries bool
	statsDays   int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated usage statistics",
	Long: `Aggregate the journal into usage statistics for a period: today's
breakdown, the trailing week with a trend, or the trailing month.
With --series, show the per-bucket time series instead.

Examples:
  scrollwatch stats                      # this week
  scrollwatch stats --period daily       # today's entries
  scrollwatch stats --period monthly
  scrollwatch stats --series             # one bucket per day
  scrollwatch stats --series --period weekly`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsPeriod, "period", "weekly", "Aggregation period: daily, weekly, monthly")
	statsCmd.Flags().BoolVar(&statsSeries, "series", false, "Show the bucketed time series instead of a summary")
	statsCmd.Flags().IntVar(&statsDays, "days", 0, "Override the summary window to the last N days")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, loc, err := setupCommand()
	if err != nil {
		return err
	}

	period, err := journal.ParsePeriod(statsPeriod)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if statsSeries {
		return runStatsSeries(db, period)
	}

	switch period {
	case journal.PeriodDaily:
		today := todayDate(loc)
		records, err := db.ListRecords(today, today)
		if err != nil {
			return fmt.Errorf("reading journal: %w", err)
		}
		stats := insight.ComputeDailyStats(records)
		if flagJSON {
			return writeJSON(map[string]any{"date": today, "stats": stats})
		}
		renderDailyStats(today, stats)

	case journal.PeriodWeekly:
		window := 7
		if statsDays > 0 {
			window = statsDays
		}
		records, err := db.ListRecords(sinceDate(window, loc), "")
		if err != nil {
			return fmt.Errorf("reading journal: %w", err)
		}
		stats := insight.ComputeWeeklyStats(records)
		if flagJSON {
			return writeJSON(stats)
		}
		renderWeeklyStats(stats, window)

	case journal.PeriodMonthly:
		window := 30
		if statsDays > 0 {
			window = statsDays
		}
		records, err := db.ListRecords(sinceDate(window, loc), "")
		if err != nil {
			return fmt.Errorf("reading journal: %w", err)
		}
		stats := insight.ComputeMonthlyStats(records)
		if flagJSON {
			return writeJSON(stats)
		}
		renderMonthlyStats(stats, window)
	}

	return nil
}

// writeJSON is the shared indent-encoded stdout writer for --json output.
func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runStatsSeries(db *store.DB, period journal.Period) error {
	records, err := db.ListAllRecords()
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}
	points := insight.ComputeTimeSeries(records, period)

	if flagJSON {
		return writeJSON(map[string]any{"period": period, "points": points})
	}

	if len(points) == 0 {
		fmt.Println("No journal entries yet. Use 'scrollwatch log <app> <minutes>' to start.")
		return nil
	}

	fmt.Println(output.Section(fmt.Sprintf("Usage Series (%s)", period)))
	fmt.Println()

	// Scale bars against the busiest bucket.
	var max float64
	for _, p := range points {
		if p.Minutes > max {
			max = p.Minutes
		}
	}

	tbl := output.NewTable("Bucket", "Minutes", "")
	for _, p := range points {
		tbl.AddRow(p.Date, fmt.Sprintf("%.0f", p.Minutes), usageBar(p.Minutes, max, 24))
	}
	tbl.Print()
	return nil
}

// usageBar renders a proportional bar for a series bucket.
func usageBar(minutes, max float64, width int) string {
	if max <= 0 {
		return ""
	}
	filled := int(minutes / max * float64(width))
	if filled < 1 && minutes > 0 {
		filled = 1
	}
	return output.StyleMuted.Render(strings.Repeat("█", filled))
}

func renderDailyStats(date string, s insight.DailyStats) {
	fmt.Println(output.Section("Today (" + date + ")"))

	if s.AppCount == 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render("Nothing logged today"))
		return
	}

	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Total logged"),
		output.StyleValue.Render(fmt.Sprintf("%.0f min", s.TotalMinutes)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Avg per entry"),
		output.StyleValue.Render(fmt.Sprintf("%.0f min", s.AverageMinutes)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Apps"),
		output.StyleValue.Render(fmt.Sprintf("%d", s.AppCount)))

	renderAppBreakdown(s.Apps, s.TotalMinutes)
}

func renderWeeklyStats(s insight.WeeklyStats, window int) {
	fmt.Println(output.Section(fmt.Sprintf("Last %d Days", window)))

	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Total logged"),
		output.StyleValue.Render(fmt.Sprintf("%.0f min", s.TotalMinutes)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Daily average"),
		output.StyleValue.Render(fmt.Sprintf("%.0f min", s.AverageDailyMinutes)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Days active"),
		output.StyleValue.Render(fmt.Sprintf("%d/%d", s.DaysActive, window)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Trend"),
		output.StyleValue.Render(string(s.Trend)))

	renderAppBreakdown(s.Apps, s.TotalMinutes)
}

func renderMonthlyStats(s insight.MonthlyStats, window int) {
	fmt.Println(output.Section(fmt.Sprintf("Last %d Days", window)))

	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Total logged"),
		output.StyleValue.Render(fmt.Sprintf("%.0f min", s.TotalMinutes)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Daily average"),
		output.StyleValue.Render(fmt.Sprintf("%.0f min", s.AverageDailyMinutes)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Days active"),
		output.StyleValue.Render(fmt.Sprintf("%d/%d", s.DaysActive, window)))
}

// renderAppBreakdown prints the per-app share list under a stats summary.
func renderAppBreakdown(apps []insight.AppUsage, total float64) {
	if len(apps) == 0 {
		return
	}
	fmt.Printf("\n %s\n", output.StyleMuted.Render("By app:"))
	for _, a := range apps {
		share := ""
		if total > 0 {
			share = fmt.Sprintf("(%.0f%%)", a.Minutes/total*100)
		}
		fmt.Printf("   %s %s %s\n",
			output.StyleLabel.Render(a.Name),
			output.StyleValue.Render(fmt.Sprintf("%.0f min", a.Minutes)),
			output.StyleMuted.Render(share))
	}
}
