// Package app contains the Cobra command tree for scrollwatch.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scrollwatch/internal/advice"
	"github.com/blackwell-systems/scrollwatch/internal/config"
	"github.com/blackwell-systems/scrollwatch/internal/insight"
	"github.com/blackwell-systems/scrollwatch/internal/journal"
	"github.com/blackwell-systems/scrollwatch/internal/output"
	"github.com/blackwell-systems/scrollwatch/internal/store"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "scrollwatch",
	Short: "A behavioral mirror for your screen time",
	Long: `scrollwatch is a self-tracking journal for app usage. You log the
minutes you spend in each app by hand, and scrollwatch turns the journal
into daily and weekly stats, a behavioral risk score, an honesty score
for the journal itself, and plain-language feedback about what your
usage patterns are doing to you.

Run 'scrollwatch' with no arguments for a dashboard of the current week.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/scrollwatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}

// setupCommand loads configuration, applies the output flags, and resolves
// the reporting timezone. Every subcommand starts here.
func setupCommand() (*config.Config, *time.Location, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	output.AutoColor()
	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, fmt.Errorf("resolving timezone %q: %w", cfg.Timezone, err)
	}
	return cfg, loc, nil
}

// sinceDate returns the first date of the trailing n-day window ending
// today, in DateLayout form.
func sinceDate(n int, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc).AddDate(0, 0, -(n - 1)).Format(journal.DateLayout)
}

// todayDate returns today's date in DateLayout form.
func todayDate(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc).Format(journal.DateLayout)
}

// windowRecords opens the journal and returns the trailing n-day window.
// A non-positive n means the whole journal.
func windowRecords(cfg *config.Config, loc *time.Location, n int) ([]journal.UsageRecord, error) {
	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if n <= 0 {
		return db.ListAllRecords()
	}
	return db.ListRecords(sinceDate(n, loc), "")
}

// dashboard is the JSON shape of the root command output.
type dashboard struct {
	Version      string              `json:"version"`
	Week         insight.WeeklyStats `json:"week"`
	TodayMinutes float64             `json:"today_minutes"`
	Risk         insight.RiskScore   `json:"risk"`
	HonestyScore int                 `json:"honesty_score"`
	Advice       []advice.Advice     `json:"advice"`
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, loc, err := setupCommand()
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	week, err := db.ListRecords(sinceDate(7, loc), "")
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	today := todayDate(loc)
	var todayMinutes float64
	for _, r := range week {
		if r.Date == today {
			todayMinutes += r.MinutesSpent
		}
	}

	stats := insight.ComputeWeeklyStats(week)
	risk := insight.CalculateRiskScore(week)
	honesty := insight.CalculateHonestyScore(week)

	tips := advice.NewEngine().Run(advice.BuildContext(week, cfg.GoalMinutes, loc))
	if len(tips) > 3 {
		tips = tips[:3]
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dashboard{
			Version:      appVersion,
			Week:         stats,
			TodayMinutes: todayMinutes,
			Risk:         risk,
			HonestyScore: honesty,
			Advice:       tips,
		})
	}

	fmt.Println("scrollwatch", appVersion)

	if len(week) == 0 {
		fmt.Println()
		fmt.Println(" The journal is empty for this week.")
		fmt.Println(" Log your first entry:  scrollwatch log instagram 45")
		fmt.Println(" Then come back here for stats, scores, and advice.")
		return nil
	}

	fmt.Println(output.Section("This Week"))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Total logged"),
		output.StyleValue.Render(fmt.Sprintf("%.0f min", stats.TotalMinutes)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Daily average"),
		output.StyleValue.Render(fmt.Sprintf("%.0f min", stats.AverageDailyMinutes)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Days active"),
		output.StyleValue.Render(fmt.Sprintf("%d/7", stats.DaysActive)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Trend"),
		output.StyleValue.Render(string(stats.Trend)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Today"),
		output.StyleValue.Render(fmt.Sprintf("%.0f min", todayMinutes)))

	fmt.Println(output.Section("Scores"))
	fmt.Printf(" %s %s  %s\n",
		output.StyleLabel.Render("Risk"),
		output.ScoreBar(float64(risk.Score), 20, false),
		output.StyleBold.Render(risk.Category))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Honesty"),
		output.ScoreBar(float64(honesty), 20, true))

	renderAdvice(tips, "Advice")

	fmt.Println()
	fmt.Printf(" %s\n", output.StyleMuted.Render("Use 'scrollwatch report' for the full picture, 'scrollwatch --help' for commands"))
	return nil
}

// renderAdvice prints a ranked advice list under the given section title.
// Shared by the dashboard and the report command.
func renderAdvice(tips []advice.Advice, title string) {
	fmt.Println(output.Section(title))

	if len(tips) == 0 {
		fmt.Println()
		fmt.Println(" Nothing to flag. Keep logging.")
		return
	}

	fmt.Println()
	for i, a := range tips {
		fmt.Printf(" #%d %s %s\n", i+1, stylePriority(a.Priority, priorityToLabel(a.Priority)), output.StyleBold.Render(a.Title))
		fmt.Printf("    Impact: %.1f  |  Category: %s\n", a.ImpactScore, a.Category)
		fmt.Printf("    %s\n", a.Description)
		fmt.Println()
	}
}

func priorityToLabel(priority int) string {
	switch priority {
	case advice.PriorityCritical:
		return "[CRITICAL]"
	case advice.PriorityHigh:
		return "[HIGH]"
	case advice.PriorityMedium:
		return "[MEDIUM]"
	case advice.PriorityLow:
		return "[LOW]"
	default:
		return "[UNKNOWN]"
	}
}

func stylePriority(priority int, label string) string {
	switch priority {
	case advice.PriorityCritical, advice.PriorityHigh:
		return output.StyleError.Render(label)
	case advice.PriorityMedium:
		return output.StyleWarning.Render(label)
	default:
		return output.StyleMuted.Render(label)
	}
}
