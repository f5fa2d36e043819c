package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scrollwatch/internal/journal"
	"github.com/blackwell-systems/scrollwatch/internal/output"
	"github.com/blackwell-systems/scrollwatch/internal/report"
	"github.com/blackwell-systems/scrollwatch/internal/store"
)

var (
	reportDays int
	reportSave bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run every analysis and render one combined report",
	Long: `Run the full analysis suite in one pass: weekly stats, risk, honesty,
projected regret, mirror insights, the before/after comparison, and
ranked advice. With --save, the computed scores are also written to the
snapshot history for 'scrollwatch history' to track over time.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().IntVar(&reportDays, "days", 0, "Limit the source records to the last N days (default: whole journal)")
	reportCmd.Flags().BoolVar(&reportSave, "save", false, "Save the computed scores as a snapshot")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, loc, err := setupCommand()
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	var records []journal.UsageRecord
	if reportDays > 0 {
		records, err = db.ListRecords(sinceDate(reportDays, loc), "")
	} else {
		records, err = db.ListAllRecords()
	}
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	rep, err := report.Build(cmd.Context(), records, cfg.GoalMinutes, loc)
	if err != nil {
		return fmt.Errorf("building report: %w", err)
	}

	if reportSave {
		id, err := db.CreateScoreSnapshot(&store.ScoreSnapshot{
			PeriodDays:   report.WeekWindowDays,
			TotalMinutes: rep.Week.TotalMinutes,
			DaysActive:   rep.Week.DaysActive,
			RiskScore:    rep.Risk.Score,
			RiskLevel:    rep.Risk.Level,
			HonestyScore: rep.Honesty,
			RegretScore:  rep.Regret.RegretScore,
			RegretLevel:  rep.Regret.RegretLevel,
			Version:      appVersion,
		})
		if err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
		// Keep stdout parseable in --json mode.
		fmt.Fprintf(os.Stderr, "Saved snapshot #%d. See 'scrollwatch history'.\n", id)
	}

	if flagJSON {
		return writeJSON(rep)
	}

	fmt.Println(output.Section("Report"))
	fmt.Printf(" %s\n", output.StyleMuted.Render(fmt.Sprintf(
		"Generated %s over %d journal entries", rep.GeneratedAt.Format("2006-01-02 15:04"), len(records))))

	renderWeeklyStats(rep.Week, report.WeekWindowDays)
	renderRisk(rep.Risk)
	renderHonesty(rep.Honesty)
	renderRegret(rep.Regret)
	renderMirror(rep.Mirror)

	if rep.Compare != nil {
		renderComparison(rep.Compare)
	} else {
		fmt.Println(output.Section("Then vs Now"))
		fmt.Printf(" %s\n", output.StyleMuted.Render("Not enough history to compare windows yet"))
	}

	renderAdvice(rep.Advice, "Advice")
	return nil
}
