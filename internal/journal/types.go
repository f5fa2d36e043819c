// Package journal defines the usage-record domain model: the manually logged
// entries (app, minutes, day, optional intention and outcome) that every
// analysis in scrollwatch is derived from, plus the codecs that move records
// in and out of the journal.
package journal

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for record dates. Records carry
// no time component on the date itself; the optional CreatedAt timestamp
// preserves the moment of logging.
const DateLayout = "2006-01-02"

// MaxAppNameLen bounds the app name field.
const MaxAppNameLen = 100

// MaxIntentionLen bounds the free-text intention field.
const MaxIntentionLen = 200

// MaxMinutesPerDay is the largest accepted minutes value for a single day.
const MaxMinutesPerDay = 1440

// FoundIt records whether the user reported finding what they opened the app
// for. It is deliberately three-valued: most records carry no answer at all,
// and "no answer" must stay distinct from "no".
type FoundIt int

const (
	FoundUnknown FoundIt = iota
	FoundYes
	FoundNo
)

// String returns the canonical wire form.
func (f FoundIt) String() string {
	switch f {
	case FoundYes:
		return "yes"
	case FoundNo:
		return "no"
	default:
		return "unknown"
	}
}

// ParseFoundIt accepts the canonical forms plus the boolean spellings used by
// older journal exports. Unrecognized input maps to FoundUnknown.
func ParseFoundIt(s string) FoundIt {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "y", "1", "found":
		return FoundYes
	case "no", "false", "n", "0":
		return FoundNo
	default:
		return FoundUnknown
	}
}

// MarshalJSON encodes the canonical string form.
func (f FoundIt) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON accepts strings, JSON booleans, and null. Older exports wrote
// found_it as a bare boolean; missing and null both mean unknown.
func (f *FoundIt) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "null":
		*f = FoundUnknown
		return nil
	case "true":
		*f = FoundYes
		return nil
	case "false":
		*f = FoundNo
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("found_it: %w", err)
	}
	*f = ParseFoundIt(s)
	return nil
}

// UsageRecord is one manually logged day of usage for one app. Uniqueness per
// (app, date) is enforced by the store, not by this type.
type UsageRecord struct {
	ID           string     `json:"id,omitempty"`
	AppName      string     `json:"app_name"`
	MinutesSpent float64    `json:"minutes_spent"`
	Date         string     `json:"date"` // calendar day, DateLayout
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	Intention    string     `json:"intention,omitempty"`
	FoundIt      FoundIt    `json:"found_it"`
}

// Day parses the record's calendar day. The bool is false when the date does
// not parse; analyses exclude such records from date arithmetic rather than
// failing.
func (r UsageRecord) Day() (time.Time, bool) {
	t, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// HasIntention reports whether the record carries a non-empty intention.
func (r UsageRecord) HasIntention() bool {
	return strings.TrimSpace(r.Intention) != ""
}

// Period selects a bucketing granularity for stats and time series.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod maps user input to a Period.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "d":
		return PeriodDaily, nil
	case "weekly", "week", "w":
		return PeriodWeekly, nil
	case "monthly", "month", "m":
		return PeriodMonthly, nil
	default:
		return "", fmt.Errorf("unknown period %q (want daily, weekly, or monthly)", s)
	}
}
