package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scrollwatch/internal/insight"
	"github.com/blackwell-systems/scrollwatch/internal/output"
)

var riskDays int

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Score behavioral risk from recent usage",
	Long: `Compute the 0-100 behavioral risk score over a trailing window of the
journal. The score weighs daily volume, late-night sessions, intention
drift, and compulsive reopening. It is a usage-intensity heuristic, not
a diagnosis.`,
	RunE: runRisk,
}

func init() {
	riskCmd.Flags().IntVar(&riskDays, "days", 7, "Number of days to score")
	rootCmd.AddCommand(riskCmd)
}

func runRisk(cmd *cobra.Command, args []string) error {
	cfg, loc, err := setupCommand()
	if err != nil {
		return err
	}

	records, err := windowRecords(cfg, loc, riskDays)
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	score := insight.CalculateRiskScore(records)
	if flagJSON {
		return writeJSON(score)
	}

	renderRisk(score)
	fmt.Printf("\n %s\n",
		output.StyleMuted.Render(fmt.Sprintf("Scored over the last %d days (%d entries)", riskDays, len(records))))
	return nil
}

func renderRisk(score insight.RiskScore) {
	fmt.Println(output.Section("Risk"))

	fmt.Printf(" %s %s  %s\n",
		output.StyleLabel.Render("Score"),
		output.ScoreBar(float64(score.Score), 20, false),
		output.StyleBold.Render(score.Category))
}
