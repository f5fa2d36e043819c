package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scrollwatch/internal/journal"
	"github.com/blackwell-systems/scrollwatch/internal/store"
)

var (
	importFormat  string
	importReplace bool
	exportFormat  string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import journal records from a file",
	Long: `Read records from a JSON-lines or CSV file into the journal. Rows that
cannot be parsed are reported and skipped; rows that collide with an
existing (app, day) entry are skipped unless --replace is given.

Examples:
  scrollwatch import journal.jsonl
  scrollwatch import screentime.csv --replace
  scrollwatch import export.txt --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the journal to a file or stdout",
	Long: `Write every journal record as JSON lines or CSV. With no file argument
the records go to stdout, ready for piping.

Examples:
  scrollwatch export journal.jsonl
  scrollwatch export usage.csv
  scrollwatch export --format csv | head`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "", "Input format: json or csv (default: by file extension)")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Overwrite existing entries on (app, day) collisions")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Output format: json or csv (default: by file extension)")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

// detectFormat resolves the codec from an explicit flag or the file
// extension. An empty path with no flag means JSON lines.
func detectFormat(path, flag string) (string, error) {
	switch strings.ToLower(flag) {
	case "json", "csv":
		return strings.ToLower(flag), nil
	case "":
	default:
		return "", fmt.Errorf("unknown format %q: use json or csv", flag)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv", nil
	default:
		return "json", nil
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, _, err := setupCommand()
	if err != nil {
		return err
	}

	format, err := detectFormat(args[0], importFormat)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer func() { _ = f.Close() }()

	var records []journal.UsageRecord
	var warnings []journal.ParseWarning
	if format == "csv" {
		records, warnings, err = journal.DecodeCSV(f)
	} else {
		records, warnings, err = journal.DecodeJSONLines(f)
	}
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[0], err)
	}

	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.String())
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	var imported, duplicates, invalid int
	for _, r := range records {
		r = journal.Normalize(r)
		if err := journal.Validate(r); err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s/%s: %v\n", r.AppName, r.Date, err)
			invalid++
			continue
		}
		if _, err := db.InsertRecord(r, importReplace); err != nil {
			if errors.Is(err, store.ErrDuplicateDay) {
				duplicates++
				continue
			}
			return fmt.Errorf("saving %s/%s: %w", r.AppName, r.Date, err)
		}
		imported++
	}

	if flagJSON {
		return writeJSON(map[string]int{
			"imported":   imported,
			"duplicates": duplicates,
			"invalid":    invalid,
			"warnings":   len(warnings),
		})
	}

	fmt.Printf("Imported %d records from %s", imported, args[0])
	var notes []string
	if duplicates > 0 {
		notes = append(notes, fmt.Sprintf("%d duplicates skipped; use --replace to overwrite", duplicates))
	}
	if invalid > 0 {
		notes = append(notes, fmt.Sprintf("%d invalid rows skipped", invalid))
	}
	if len(notes) > 0 {
		fmt.Printf(" (%s)", strings.Join(notes, ", "))
	}
	fmt.Println()
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, _, err := setupCommand()
	if err != nil {
		return err
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	format, err := detectFormat(path, exportFormat)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	records, err := db.ListAllRecords()
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if format == "csv" {
		err = journal.EncodeCSV(w, records)
	} else {
		err = journal.EncodeJSONLines(w, records)
	}
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}

	if path != "" {
		fmt.Printf("Exported %d records to %s\n", len(records), path)
	}
	return nil
}
