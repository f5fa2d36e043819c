package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scrollwatch/internal/journal"
	"github.com/blackwell-systems/scrollwatch/internal/output"
	"github.com/blackwell-systems/scrollwatch/internal/store"
)

var (
	logDate      string
	logIntention string
	logFound     bool
	logNotFound  bool
	logAt        string
	logReplace   bool
	logList      bool
	logDays      int
	logApp       string
)

var logCmd = &cobra.Command{
	Use:   "log [app] [minutes]",
	Short: "Log time spent in an app",
	Long: `Record one journal entry: an app name and the minutes you spent in it.
Each app gets one entry per calendar day; logging the same app twice on
one day fails unless --replace is given.

Examples:
  scrollwatch log instagram 45
  scrollwatch log twitter 30 --intention "check replies" --not-found
  scrollwatch log youtube 90 --date 2026-08-20 --at 23:15
  scrollwatch log instagram 50 --replace
  scrollwatch log --list
  scrollwatch log --list --days 7 --app instagram`,
	Args: cobra.ArbitraryArgs,
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "Day to log for, YYYY-MM-DD (default: today)")
	logCmd.Flags().StringVar(&logIntention, "intention", "", "What you opened the app for")
	logCmd.Flags().BoolVar(&logFound, "found", false, "You found what you came for")
	logCmd.Flags().BoolVar(&logNotFound, "not-found", false, "You did not find what you came for")
	logCmd.Flags().StringVar(&logAt, "at", "", "Clock time of the session, HH:MM (default: now, when logging for today)")
	logCmd.Flags().BoolVar(&logReplace, "replace", false, "Overwrite an existing entry for the same app and day")
	logCmd.Flags().BoolVar(&logList, "list", false, "List journal entries")
	logCmd.Flags().IntVar(&logDays, "days", 0, "Filter --list to the last N days")
	logCmd.Flags().StringVar(&logApp, "app", "", "Filter --list to one app")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	cfg, loc, err := setupCommand()
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if logList {
		return runLogList(db, loc)
	}

	if len(args) < 2 {
		return fmt.Errorf("usage: scrollwatch log <app> <minutes> [flags]\nUse --list to view the journal")
	}

	minutes, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("minutes must be a number, got %q", args[1])
	}

	if logFound && logNotFound {
		return fmt.Errorf("--found and --not-found are mutually exclusive")
	}
	found := journal.FoundUnknown
	switch {
	case logFound:
		found = journal.FoundYes
	case logNotFound:
		found = journal.FoundNo
	}

	date := logDate
	if date == "" {
		date = todayDate(loc)
	}

	createdAt, err := resolveLoggedAt(date, logAt, loc)
	if err != nil {
		return err
	}

	rec := journal.Normalize(journal.UsageRecord{
		AppName:      args[0],
		MinutesSpent: minutes,
		Date:         date,
		CreatedAt:    createdAt,
		Intention:    logIntention,
		FoundIt:      found,
	})
	if err := journal.Validate(rec); err != nil {
		return err
	}

	saved, err := db.InsertRecord(rec, logReplace)
	if errors.Is(err, store.ErrDuplicateDay) {
		return fmt.Errorf("already logged %s for %s; rerun with --replace to overwrite", rec.AppName, rec.Date)
	}
	if err != nil {
		return fmt.Errorf("saving record: %w", err)
	}

	fmt.Printf("Logged %s: %.0f min on %s", saved.AppName, saved.MinutesSpent, saved.Date)
	if saved.Intention != "" {
		fmt.Printf(" (for %q)", saved.Intention)
	}
	if saved.FoundIt == journal.FoundNo {
		fmt.Printf(" · not found")
	}
	fmt.Println()
	return nil
}

// resolveLoggedAt turns the --at clock time into a timestamp on the logged
// day. Without --at, entries for today are stamped now and entries for past
// days carry no timestamp, so late-night detection never guesses.
func resolveLoggedAt(date, at string, loc *time.Location) (*time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	if at == "" {
		if date != todayDate(loc) {
			return nil, nil
		}
		now := time.Now().In(loc)
		return &now, nil
	}

	clock, err := parseClock(at)
	if err != nil {
		return nil, err
	}
	day, err := time.ParseInLocation(journal.DateLayout, date, loc)
	if err != nil {
		return nil, fmt.Errorf("date must be %s: %w", journal.DateLayout, err)
	}
	t := day.Add(clock)
	return &t, nil
}

// parseClock parses an HH:MM string into an offset from midnight.
func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("time must be HH:MM (24-hour), got %q", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// runLogList queries and displays journal entries.
func runLogList(db *store.DB, loc *time.Location) error {
	from := ""
	if logDays > 0 {
		from = sinceDate(logDays, loc)
	}

	records, err := db.ListRecords(from, "")
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	if logApp != "" {
		want := strings.ToLower(strings.TrimSpace(logApp))
		filtered := records[:0]
		for _, r := range records {
			if strings.ToLower(r.AppName) == want {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No journal entries yet. Use 'scrollwatch log <app> <minutes>' to start.")
		return nil
	}

	fmt.Println(output.Section("Journal"))
	fmt.Println()

	tbl := output.NewTable("Date", "App", "Minutes", "At", "Intention", "Found")
	for _, r := range records {
		at := ""
		if r.CreatedAt != nil {
			at = r.CreatedAt.In(timeLocOrLocal(loc)).Format("15:04")
		}
		foundStr := ""
		if r.FoundIt != journal.FoundUnknown {
			foundStr = r.FoundIt.String()
		}
		tbl.AddRow(r.Date, r.AppName, fmt.Sprintf("%.0f", r.MinutesSpent), at, r.Intention, foundStr)
	}
	tbl.Print()

	var total float64
	apps := make(map[string]bool)
	for _, r := range records {
		total += r.MinutesSpent
		apps[strings.ToLower(r.AppName)] = true
	}
	fmt.Println()
	fmt.Printf(" %s\n", output.StyleBold.Render(fmt.Sprintf(
		"Totals: %.0f min · %d entries · %d apps", total, len(records), len(apps))))
	return nil
}

// timeLocOrLocal resolves the nil-means-local convention for display.
func timeLocOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
