package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blackwell-systems/scrollwatch/internal/insight"
	"github.com/blackwell-systems/scrollwatch/internal/journal"
	"github.com/blackwell-systems/scrollwatch/internal/report"
	"github.com/blackwell-systems/scrollwatch/internal/store"
)

// Default analysis windows, in days. Risk is defined over a week; the
// slower scores read a month of context.
const (
	defaultRiskDays    = 7
	defaultHonestyDays = 30
	defaultRegretDays  = 30
	defaultMirrorDays  = 30
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListRecords(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(journal.DateLayout, d); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
			return
		}
	}

	records, err := s.db.ListRecords(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}

func (s *Server) handleCreateRecord(c *gin.Context) {
	var rec journal.UsageRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// IDs are minted server-side.
	rec.ID = ""
	if rec.Date == "" {
		rec.Date = s.today()
	}
	rec = journal.Normalize(rec)
	if err := journal.Validate(rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	replace := c.Query("replace") == "true"
	saved, err := s.db.InsertRecord(rec, replace)
	if errors.Is(err, store.ErrDuplicateDay) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "a record for this app and day already exists; pass replace=true to overwrite",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recordsLogged.Inc()
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) handleDeleteRecord(c *gin.Context) {
	id := c.Param("id")
	err := s.db.DeleteRecord(id)
	if errors.Is(err, store.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}

// handleListApps serves the app-name index, for client-side pickers.
func (s *Server) handleListApps(c *gin.Context) {
	apps, err := s.db.DistinctApps()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"apps": apps, "count": len(apps)})
}

func (s *Server) handleStatsDaily(c *gin.Context) {
	today := s.today()
	records, err := s.db.ListRecords(today, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": today, "stats": insight.ComputeDailyStats(records)})
}

func (s *Server) handleStatsWeekly(c *gin.Context) {
	records, ok := s.recordsForDays(c, 7)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, insight.ComputeWeeklyStats(records))
}

func (s *Server) handleStatsMonthly(c *gin.Context) {
	records, ok := s.recordsForDays(c, 30)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, insight.ComputeMonthlyStats(records))
}

func (s *Server) handleStatsSeries(c *gin.Context) {
	period, err := journal.ParsePeriod(c.DefaultQuery("period", "daily"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, dbErr := s.db.ListAllRecords()
	if dbErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": dbErr.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"period": period,
		"points": insight.ComputeTimeSeries(records, period),
	})
}

func (s *Server) handleRiskScore(c *gin.Context) {
	days, ok := parseDays(c, defaultRiskDays)
	if !ok {
		return
	}
	records, ok := s.recordsForDays(c, days)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, insight.CalculateRiskScore(records))
}

func (s *Server) handleHonestyScore(c *gin.Context) {
	days, ok := parseDays(c, defaultHonestyDays)
	if !ok {
		return
	}
	records, ok := s.recordsForDays(c, days)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"honesty_score": insight.CalculateHonestyScore(records),
		"days":          days,
	})
}

func (s *Server) handleRegret(c *gin.Context) {
	days, ok := parseDays(c, defaultRegretDays)
	if !ok {
		return
	}
	records, ok := s.recordsForDays(c, days)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, insight.AnalyzeRegret(records, s.loc))
}

func (s *Server) handleMirror(c *gin.Context) {
	days, ok := parseDays(c, defaultMirrorDays)
	if !ok {
		return
	}
	records, ok := s.recordsForDays(c, days)
	if !ok {
		return
	}
	insights := insight.AnalyzeMirror(records, s.loc)
	c.JSON(http.StatusOK, gin.H{"insights": insights, "count": len(insights)})
}

func (s *Server) handleCompare(c *gin.Context) {
	days, ok := parseDays(c, s.cfg.ComparisonDays)
	if !ok {
		return
	}

	records, err := s.db.ListAllRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := insight.CompareWindows(records, days, s.loc)
	if result == nil {
		c.JSON(http.StatusOK, gin.H{"comparison": nil, "reason": "insufficient data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comparison": result})
}

func (s *Server) handleReport(c *gin.Context) {
	records, err := s.db.ListAllRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rep, err := report.Build(c.Request.Context(), records, s.cfg.GoalMinutes, s.loc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rep)
}

// today is the current calendar day in the server timezone.
func (s *Server) today() string {
	loc := s.loc
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc).Format(journal.DateLayout)
}

// recordsForDays loads the trailing n-day window ending today. On a store
// error it writes the response and reports false.
func (s *Server) recordsForDays(c *gin.Context, n int) ([]journal.UsageRecord, bool) {
	loc := s.loc
	if loc == nil {
		loc = time.Local
	}
	from := time.Now().In(loc).AddDate(0, 0, -(n - 1)).Format(journal.DateLayout)

	records, err := s.db.ListRecords(from, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return records, true
}

// parseDays reads the optional days query parameter. On a bad value it
// writes the response and reports false.
func parseDays(c *gin.Context, fallback int) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
		return 0, false
	}
	return n, true
}
