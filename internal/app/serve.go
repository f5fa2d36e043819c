package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scrollwatch/internal/api"
	"github.com/blackwell-systems/scrollwatch/internal/store"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API",
	Long: `Serve the journal and its analyses over HTTP for shortcuts, scripts,
and phone automations. The API binds to localhost by default; set
serve.token (or SCROLLWATCH_SERVE_TOKEN) to require a bearer token on
the /api/v1 routes. /health and /metrics stay open.

Examples:
  scrollwatch serve
  scrollwatch serve --addr 0.0.0.0:8600
  SCROLLWATCH_SERVE_TOKEN=secret scrollwatch serve`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: serve.addr from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// A .env beside the process can provide SCROLLWATCH_ variables,
	// most usefully the serve token.
	_ = godotenv.Load()

	cfg, loc, err := setupCommand()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Serve.Addr = serveAddr
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	logger := serveLogger()
	if flagVerbose {
		logger = logger.Level(zerolog.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	srv := api.New(cfg, db, loc, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)
	go func() {
		<-sigCh
		cancel()
	}()

	return srv.Run(ctx)
}

// serveLogger writes human-readable lines on a terminal and JSON when the
// stream is redirected.
func serveLogger() zerolog.Logger {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
