package insight

import (
	"time"

	"github.com/blackwell-systems/scrollwatch/internal/journal"
)

// Late-night window boundaries, wall-clock hours.
const (
	lateNightStartHour = 22
	lateNightEndHour   = 6
)

// IsLateNight reports whether a record was logged between 22:00 and 06:00
// wall-clock in loc. Records without a logging timestamp are never
// late-night; the calendar day alone says nothing about the hour. A nil loc
// means the process local zone.
func IsLateNight(r journal.UsageRecord, loc *time.Location) bool {
	if r.CreatedAt == nil {
		return false
	}
	if loc == nil {
		loc = time.Local
	}
	h := r.CreatedAt.In(loc).Hour()
	return h >= lateNightStartHour || h < lateNightEndHour
}

// lateNightFrequency is the fraction of records logged late-night. The
// denominator is all records, so untimestamped entries dilute the signal
// instead of being guessed at.
func lateNightFrequency(records []journal.UsageRecord, loc *time.Location) float64 {
	if len(records) == 0 {
		return 0
	}
	count := 0
	for _, r := range records {
		if IsLateNight(r, loc) {
			count++
		}
	}
	return float64(count) / float64(len(records))
}

// intentDriftFrequency is the fraction of intention-tagged records where the
// user reported not finding what they came for. Tagged records with no
// outcome answer stay in the denominator: an unanswered intention is not
// drift, but it is an intention.
func intentDriftFrequency(records []journal.UsageRecord) float64 {
	tagged, drifted := 0, 0
	for _, r := range records {
		if !r.HasIntention() {
			continue
		}
		tagged++
		if r.FoundIt == journal.FoundNo {
			drifted++
		}
	}
	if tagged == 0 {
		return 0
	}
	return float64(drifted) / float64(tagged)
}

// repeatedOpenDays counts distinct calendar days carrying more than one
// record, a proxy for opening apps again and again on the same day.
func repeatedOpenDays(records []journal.UsageRecord) int {
	perDay := make(map[string]int)
	for _, r := range records {
		perDay[r.Date]++
	}
	days := 0
	for _, n := range perDay {
		if n > 1 {
			days++
		}
	}
	return days
}

// lastNDays returns the records dated within n days of the newest parseable
// date in the set. Records with unparseable dates are excluded.
func lastNDays(records []journal.UsageRecord, n int) []journal.UsageRecord {
	var last time.Time
	found := false
	for _, r := range records {
		if d, ok := r.Day(); ok && (!found || d.After(last)) {
			last = d
			found = true
		}
	}
	if !found {
		return nil
	}

	var out []journal.UsageRecord
	for _, r := range records {
		d, ok := r.Day()
		if !ok {
			continue
		}
		if int(last.Sub(d)/(24*time.Hour)) < n {
			out = append(out, r)
		}
	}
	return out
}
