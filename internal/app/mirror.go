package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scrollwatch/internal/insight"
	"github.com/blackwell-systems/scrollwatch/internal/output"
)

var mirrorDays int

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Hold your stated intentions up against what happened",
	Long: `Group journal entries by intention and surface the mismatches: the
intentions that rarely found what they came for, the ones that turned
into long sessions anyway, and the ones that keep showing up after
midnight. Each insight is one sentence of your own data read back
to you.`,
	RunE: runMirror,
}

func init() {
	mirrorCmd.Flags().IntVar(&mirrorDays, "days", 30, "Number of days to analyze")
	rootCmd.AddCommand(mirrorCmd)
}

func runMirror(cmd *cobra.Command, args []string) error {
	cfg, loc, err := setupCommand()
	if err != nil {
		return err
	}

	records, err := windowRecords(cfg, loc, mirrorDays)
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	insights := insight.AnalyzeMirror(records, loc)
	if flagJSON {
		return writeJSON(map[string]any{"insights": insights, "count": len(insights)})
	}

	renderMirror(insights)
	return nil
}

func renderMirror(insights []insight.MirrorInsight) {
	fmt.Println(output.Section("Mirror"))
	fmt.Println()

	if len(insights) == 0 {
		fmt.Println(" No mismatch patterns found. Your intentions and outcomes line up.")
		fmt.Println(" (Or you are not tagging entries; add --intention when you log.)")
		return
	}

	for _, ins := range insights {
		fmt.Printf(" %s %s\n",
			output.StyleBold.Render(fmt.Sprintf("%q", ins.Intention)),
			output.StyleMuted.Render(fmt.Sprintf("(%d sessions, found it %.0f%% of the time)", ins.Count, ins.FoundItRate*100)))
		fmt.Printf("   %s\n", ins.Message)

		detail := fmt.Sprintf("avg %.0f min", ins.AvgMinutes)
		if ins.LateNightCount > 0 {
			detail += fmt.Sprintf(" · %d late-night", ins.LateNightCount)
		}
		if ins.RepeatedOpens > 0 {
			detail += fmt.Sprintf(" · reopened on %d days", ins.RepeatedOpens)
		}
		fmt.Printf("   %s\n", output.StyleMuted.Render(detail))
		fmt.Println()
	}
}
