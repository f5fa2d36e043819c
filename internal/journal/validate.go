package journal

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Normalize trims whitespace from the text fields and truncates the intention
// to its maximum length. It does not touch numeric fields; out-of-range
// numbers are a validation error, not something to silently repair.
func Normalize(r UsageRecord) UsageRecord {
	r.AppName = strings.TrimSpace(r.AppName)
	r.Intention = strings.TrimSpace(r.Intention)
	if utf8.RuneCountInString(r.Intention) > MaxIntentionLen {
		runes := []rune(r.Intention)
		r.Intention = string(runes[:MaxIntentionLen])
	}
	return r
}

// Validate checks the field constraints on a record. It is called at the
// store and API boundaries; records that reach the analysis layer are assumed
// valid.
func Validate(r UsageRecord) error {
	name := strings.TrimSpace(r.AppName)
	if name == "" {
		return fmt.Errorf("app name is required")
	}
	if utf8.RuneCountInString(name) > MaxAppNameLen {
		return fmt.Errorf("app name exceeds %d characters", MaxAppNameLen)
	}
	if r.MinutesSpent < 0 || r.MinutesSpent > MaxMinutesPerDay {
		return fmt.Errorf("minutes must be between 0 and %d, got %.2f", MaxMinutesPerDay, r.MinutesSpent)
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("date must be %s: %w", DateLayout, err)
	}
	if utf8.RuneCountInString(r.Intention) > MaxIntentionLen {
		return fmt.Errorf("intention exceeds %d characters", MaxIntentionLen)
	}
	return nil
}
