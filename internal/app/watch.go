package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scrollwatch/internal/config"
	"github.com/blackwell-systems/scrollwatch/internal/store"
	"github.com/blackwell-systems/scrollwatch/internal/watcher"
)

var (
	watchDaemon   bool
	watchInterval string
	watchStop     bool
	watchQuiet    bool
	watchOnce     bool
	watchLimit    int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the journal and alert on bad patterns",
	Long: `Run a monitor that periodically re-reads the journal and alerts when
something changes for the worse: the risk level escalates, the honesty
score drops, a late-night session appears, today's usage spikes past
your weekly average, or the daily limit is blown. Alerts go to desktop
notifications and the terminal.

Thresholds come from config: watch.risk_alert, watch.honesty_floor, and
goal_minutes as the daily limit.

Examples:
  scrollwatch watch                    # run in foreground (ctrl-c to stop)
  scrollwatch watch --daemon           # run in background, write PID file
  scrollwatch watch --interval 5m      # check every 5 minutes
  scrollwatch watch --limit 90         # alert past 90 minutes today
  scrollwatch watch --once             # single check, for cron
  scrollwatch watch --stop             # stop the background daemon`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "Run in background mode (write PID file, log to file)")
	watchCmd.Flags().StringVar(&watchInterval, "interval", "", "Check interval as duration string (default: watch.interval from config)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "Stop a running background daemon")
	watchCmd.Flags().BoolVar(&watchQuiet, "quiet", false, "Suppress terminal output, only send notifications")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "Run a single check and exit")
	watchCmd.Flags().IntVar(&watchLimit, "limit", 0, "Daily minutes limit for the critical alert (default: goal_minutes from config)")
	rootCmd.AddCommand(watchCmd)
}

// pidFilePath returns the path to the daemon PID file.
func pidFilePath() string {
	return filepath.Join(config.ConfigDir(), "watch.pid")
}

// logFilePath returns the path to the daemon log file.
func logFilePath() string {
	return filepath.Join(config.ConfigDir(), "watch.log")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchStop {
		return stopDaemon()
	}

	cfg, loc, err := setupCommand()
	if err != nil {
		return err
	}

	interval, err := resolveWatchInterval(cfg)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if watchOnce {
		return runOnce(cfg, db, loc, interval)
	}
	if watchDaemon {
		return runDaemon(cfg, db, loc, interval)
	}
	return runForeground(cfg, db, loc, interval)
}

// resolveWatchInterval takes the flag when given, the config otherwise,
// and rejects anything that would hammer the database.
func resolveWatchInterval(cfg *config.Config) (time.Duration, error) {
	raw := watchInterval
	if raw == "" {
		interval, err := cfg.WatchInterval()
		if err != nil {
			return 0, fmt.Errorf("invalid watch.interval %q in config: %w", cfg.Watch.Interval, err)
		}
		return interval, nil
	}

	interval, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q: %w", raw, err)
	}
	if interval < 30*time.Second {
		return 0, fmt.Errorf("interval must be at least 30s, got %s", interval)
	}
	return interval, nil
}

// newWatcher builds the watcher with thresholds from config and flags.
func newWatcher(cfg *config.Config, db *store.DB, loc *time.Location, interval time.Duration, alertFn func(watcher.Alert)) *watcher.Watcher {
	w := watcher.New(db, loc, interval, alertFn)
	w.RiskAlert = cfg.Watch.RiskAlert
	w.HonestyFloor = cfg.Watch.HonestyFloor
	w.DailyLimit = cfg.GoalMinutes
	if watchLimit > 0 {
		w.DailyLimit = watchLimit
	}
	return w
}

// runOnce performs a single check cycle, for cron jobs and scripts.
func runOnce(cfg *config.Config, db *store.DB, loc *time.Location, interval time.Duration) error {
	w := newWatcher(cfg, db, loc, interval, nil)

	alerts := w.Check()
	for _, a := range alerts {
		_ = watcher.Notify(a)
		if !watchQuiet {
			printAlert(a)
		}
	}

	if len(alerts) == 0 && !watchQuiet {
		fmt.Printf("[%s] %s No alerts\n", time.Now().Format("15:04:05"), checkMark())
	}
	return nil
}

// runForeground runs the watcher in the foreground with live terminal output.
func runForeground(cfg *config.Config, db *store.DB, loc *time.Location, interval time.Duration) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)
	go func() {
		<-sigCh
		cancel()
	}()

	if !watchQuiet {
		fmt.Printf("scrollwatch watching... (checking every %s)\n", interval)
	}

	alertFn := func(a watcher.Alert) {
		_ = watcher.Notify(a)
		if !watchQuiet {
			printAlert(a)
		}
	}

	w := newWatcher(cfg, db, loc, interval, alertFn)

	// Show the baseline before the loop takes over.
	initial, err := w.Snapshot()
	if err != nil {
		return fmt.Errorf("initial snapshot failed: %w", err)
	}
	if !watchQuiet {
		fmt.Printf("[%s] %s Baseline: %d entries, %.0f min today, week risk %d (%s)\n",
			time.Now().Format("15:04:05"),
			checkMark(),
			initial.RecordCount,
			initial.TodayMinutes,
			initial.RiskScore,
			initial.RiskLevel)
	}

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		if !watchQuiet {
			fmt.Println("\nStopped.")
		}
		return nil
	}
	return err
}

// runDaemon sets up PID and log files, then runs the watcher. The actual
// backgrounding should be done by the caller (nohup, &, a service unit)
// since Go cannot reliably fork.
func runDaemon(cfg *config.Config, db *store.DB, loc *time.Location, interval time.Duration) error {
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	// Check for an existing daemon.
	if pid, err := readPID(); err == nil {
		if processExists(pid) {
			return fmt.Errorf("daemon already running (PID %d). Use --stop to stop it", pid)
		}
		// Stale PID file, remove it.
		_ = os.Remove(pidFilePath())
	}

	pid := os.Getpid()
	if err := os.WriteFile(pidFilePath(), []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer func() { _ = os.Remove(pidFilePath()) }()

	logFile, err := os.OpenFile(logFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger := zerolog.New(logFile).With().Timestamp().Logger()
	if flagVerbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)
	go func() {
		<-sigCh
		cancel()
	}()

	logger.Info().Int("pid", pid).Str("interval", interval.String()).Msg("watch daemon started")

	alertFn := func(a watcher.Alert) {
		_ = watcher.Notify(a)
		logAlert(logger, a)
	}

	w := newWatcher(cfg, db, loc, interval, alertFn)

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info().Msg("watch daemon stopped")
		return nil
	}
	return err
}

// logAlert writes one alert to the daemon log at a level matching its severity.
func logAlert(logger zerolog.Logger, a watcher.Alert) {
	var ev *zerolog.Event
	switch a.Level {
	case "critical":
		ev = logger.Error()
	case "warning":
		ev = logger.Warn()
	default:
		ev = logger.Info()
	}
	ev.Str("alert", a.Level).Str("title", a.Title).Msg(a.Message)
}

// readPID reads the daemon PID from the PID file.
func readPID() (int, error) {
	data, err := os.ReadFile(pidFilePath())
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(string(data))
}

// printAlert formats and prints an alert to the terminal.
func printAlert(a watcher.Alert) {
	timestamp := a.Time.Format("15:04:05")
	icon := alertIcon(a.Level)
	fmt.Printf("[%s] %s %s\n", timestamp, icon, a.Title)
	if a.Message != "" {
		fmt.Printf("         %s\n", a.Message)
	}
}

// alertIcon returns the terminal indicator for an alert level.
func alertIcon(level string) string {
	switch level {
	case "critical":
		return "\xf0\x9f\x94\xb4" // red circle
	case "warning":
		return "\xe2\x9a\xa0\xef\xb8\x8f" // warning sign
	case "info":
		return "\xe2\x9c\x93" // check mark
	default:
		return " "
	}
}

// checkMark returns a terminal check mark indicator.
func checkMark() string {
	return "\xe2\x9c\x93"
}
