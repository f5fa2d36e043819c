package journal

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ParseWarning flags a value that was coerced or skipped during import.
// Imports never fail on bad values; they repair what they can and report it.
type ParseWarning struct {
	Line    int    `json:"line"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (w ParseWarning) String() string {
	if w.Field == "" {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return fmt.Sprintf("line %d: %s: %s", w.Line, w.Field, w.Message)
}

// recordWire mirrors UsageRecord but keeps minutes raw so that non-numeric
// values coerce to 0 with a warning instead of aborting the whole import.
type recordWire struct {
	ID           string          `json:"id"`
	AppName      string          `json:"app_name"`
	MinutesSpent json.RawMessage `json:"minutes_spent"`
	Date         string          `json:"date"`
	CreatedAt    *time.Time      `json:"created_at"`
	Intention    string          `json:"intention"`
	FoundIt      FoundIt         `json:"found_it"`
}

// DecodeJSONLines reads one JSON record per line. Blank lines are ignored,
// malformed lines and coerced fields are reported as warnings, and the
// returned records are normalized but not yet validated.
func DecodeJSONLines(r io.Reader) ([]UsageRecord, []ParseWarning, error) {
	var records []UsageRecord
	var warnings []ParseWarning

	scanner := bufio.NewScanner(r)
	// Allow long lines; intentions are capped but exports may carry extras.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var w recordWire
		if err := json.Unmarshal(line, &w); err != nil {
			warnings = append(warnings, ParseWarning{Line: lineNo, Message: "malformed JSON, line skipped"})
			continue
		}

		minutes, warn := coerceMinutes(w.MinutesSpent)
		if warn != "" {
			warnings = append(warnings, ParseWarning{Line: lineNo, Field: "minutes_spent", Message: warn})
		}

		records = append(records, Normalize(UsageRecord{
			ID:           w.ID,
			AppName:      w.AppName,
			MinutesSpent: minutes,
			Date:         strings.TrimSpace(w.Date),
			CreatedAt:    w.CreatedAt,
			Intention:    w.Intention,
			FoundIt:      w.FoundIt,
		}))
	}
	return records, warnings, scanner.Err()
}

// coerceMinutes extracts a float from a raw JSON value, accepting numbers and
// numeric strings. Anything else becomes 0 with a warning message.
func coerceMinutes(raw json.RawMessage) (float64, string) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, "missing, coerced to 0"
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, ""
		}
	}
	return 0, fmt.Sprintf("non-numeric value %s, coerced to 0", string(raw))
}

// EncodeJSONLines writes one JSON record per line.
func EncodeJSONLines(w io.Writer, records []UsageRecord) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// csvHeader is the column order for CSV import and export.
var csvHeader = []string{"app", "minutes", "date", "created_at", "intention", "found_it"}

// DecodeCSV reads records from CSV with the canonical header. A leading
// header row is detected and skipped; short rows and bad values are repaired
// with warnings.
func DecodeCSV(r io.Reader) ([]UsageRecord, []ParseWarning, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows, warn per row instead

	var records []UsageRecord
	var warnings []ParseWarning

	lineNo := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return records, warnings, fmt.Errorf("reading csv: %w", err)
		}
		lineNo++

		if lineNo == 1 && isCSVHeader(row) {
			continue
		}
		if len(row) < 3 {
			warnings = append(warnings, ParseWarning{Line: lineNo, Message: fmt.Sprintf("expected at least 3 columns, got %d, row skipped", len(row))})
			continue
		}

		minutes, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			warnings = append(warnings, ParseWarning{Line: lineNo, Field: "minutes", Message: fmt.Sprintf("non-numeric value %q, coerced to 0", row[1])})
			minutes = 0
		}

		rec := UsageRecord{
			AppName:      row[0],
			MinutesSpent: minutes,
			Date:         strings.TrimSpace(row[2]),
		}
		if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
			if t, err := time.Parse(time.RFC3339, strings.TrimSpace(row[3])); err == nil {
				rec.CreatedAt = &t
			} else {
				warnings = append(warnings, ParseWarning{Line: lineNo, Field: "created_at", Message: "unparseable timestamp dropped"})
			}
		}
		if len(row) > 4 {
			rec.Intention = row[4]
		}
		if len(row) > 5 {
			rec.FoundIt = ParseFoundIt(row[5])
		}

		records = append(records, Normalize(rec))
	}
	return records, warnings, nil
}

func isCSVHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(row[0]), "app") ||
		strings.EqualFold(strings.TrimSpace(row[0]), "app_name")
}

// EncodeCSV writes records with the canonical header.
func EncodeCSV(w io.Writer, records []UsageRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		createdAt := ""
		if r.CreatedAt != nil {
			createdAt = r.CreatedAt.Format(time.RFC3339)
		}
		row := []string{
			r.AppName,
			strconv.FormatFloat(r.MinutesSpent, 'f', -1, 64),
			r.Date,
			createdAt,
			r.Intention,
			r.FoundIt.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
