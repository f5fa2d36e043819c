package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scrollwatch/internal/insight"
	"github.com/blackwell-systems/scrollwatch/internal/output"
)

var honestyDays int

var honestyCmd = &cobra.Command{
	Use:   "honesty",
	Short: "Score how trustworthy the journal looks",
	Long: `Compute the 0-100 honesty score for the journal itself. The score
drops for gaps between logged days, suspiciously round numbers, and
implausible daily totals. A self-report tracker is only as useful as
the journal is honest.`,
	RunE: runHonesty,
}

func init() {
	honestyCmd.Flags().IntVar(&honestyDays, "days", 30, "Number of days to score")
	rootCmd.AddCommand(honestyCmd)
}

func runHonesty(cmd *cobra.Command, args []string) error {
	cfg, loc, err := setupCommand()
	if err != nil {
		return err
	}

	records, err := windowRecords(cfg, loc, honestyDays)
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	score := insight.CalculateHonestyScore(records)
	if flagJSON {
		return writeJSON(map[string]any{"honesty_score": score, "days": honestyDays})
	}

	renderHonesty(score)
	fmt.Printf("\n %s\n",
		output.StyleMuted.Render(fmt.Sprintf("Scored over the last %d days (%d entries)", honestyDays, len(records))))
	if score < 100 {
		fmt.Printf(" %s\n",
			output.StyleMuted.Render("Gaps, round numbers, and implausible totals lower this. Log daily, including zero days."))
	}
	return nil
}

func renderHonesty(score int) {
	fmt.Println(output.Section("Honesty"))

	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Score"),
		output.ScoreBar(float64(score), 20, true))
}
