// Package api serves the journal and its analyses over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/blackwell-systems/scrollwatch/internal/config"
	"github.com/blackwell-systems/scrollwatch/internal/store"
)

// Server is the scrollwatch HTTP API.
type Server struct {
	cfg    *config.Config
	db     *store.DB
	loc    *time.Location
	logger zerolog.Logger
	engine *gin.Engine
	httpd  *http.Server
}

// New assembles the API server. loc is the timezone for window arithmetic;
// nil means process local. Callers choose the gin mode before constructing.
func New(cfg *config.Config, db *store.DB, loc *time.Location, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		db:     db,
		loc:    loc,
		logger: logger.With().Str("component", "api").Logger(),
	}
	s.engine = s.buildRouter()
	s.httpd = &http.Server{
		Addr:         cfg.Serve.Addr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	if token := s.cfg.Serve.Token; token != "" {
		v1.Use(bearerAuth(token))
	}

	v1.GET("/records", s.handleListRecords)
	v1.POST("/records", s.handleCreateRecord)
	v1.DELETE("/records/:id", s.handleDeleteRecord)
	v1.GET("/apps", s.handleListApps)

	v1.GET("/stats/daily", s.handleStatsDaily)
	v1.GET("/stats/weekly", s.handleStatsWeekly)
	v1.GET("/stats/monthly", s.handleStatsMonthly)
	v1.GET("/stats/series", s.handleStatsSeries)

	v1.GET("/scores/risk", s.handleRiskScore)
	v1.GET("/scores/honesty", s.handleHonestyScore)

	v1.GET("/analysis/regret", s.handleRegret)
	v1.GET("/analysis/mirror", s.handleMirror)
	v1.GET("/analysis/compare", s.handleCompare)

	v1.GET("/report", s.handleReport)

	return r
}

// Router exposes the assembled handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpd.Addr).Msg("api listening")
		if err := s.httpd.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info().Msg("api shutting down")
	return s.httpd.Shutdown(shutdownCtx)
}
