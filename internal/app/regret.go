package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scrollwatch/internal/insight"
	"github.com/blackwell-systems/scrollwatch/internal/output"
)

var regretDays int

var regretCmd = &cobra.Command{
	Use:   "regret",
	Short: "Project how much of your usage you will regret",
	Long: `Analyze the journal for regret signals: attention drain from sessions
that never found what they came for, burnout from late-night volume, and
habitual scrolling from compulsive reopens. Produces a 0-100 score, the
dominant pattern, and a narrative written back to you in plain terms.`,
	RunE: runRegret,
}

func init() {
	regretCmd.Flags().IntVar(&regretDays, "days", 30, "Number of days to analyze")
	rootCmd.AddCommand(regretCmd)
}

func runRegret(cmd *cobra.Command, args []string) error {
	cfg, loc, err := setupCommand()
	if err != nil {
		return err
	}

	records, err := windowRecords(cfg, loc, regretDays)
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	analysis := insight.AnalyzeRegret(records, loc)
	if flagJSON {
		return writeJSON(analysis)
	}

	renderRegret(analysis)
	return nil
}

func renderRegret(a insight.RegretAnalysis) {
	fmt.Println(output.Section("Projected Regret"))

	fmt.Printf(" %s %s  %s\n",
		output.StyleLabel.Render("Score"),
		output.ScoreBar(float64(a.RegretScore), 20, false),
		output.StyleBold.Render(a.RegretLevel))
	if a.DominantType != "" {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Dominant pattern"),
			output.StyleValue.Render(regretTypeLabel(a.DominantType)))
	}

	fmt.Printf("\n %s\n", output.StyleMuted.Render("Signals:"))
	fmt.Printf("   %s %s\n",
		output.StyleLabel.Render("Attention drain"),
		output.StyleValue.Render(fmt.Sprintf("%d", a.RegretTypes.AttentionDrain)))
	fmt.Printf("   %s %s\n",
		output.StyleLabel.Render("Burnout"),
		output.StyleValue.Render(fmt.Sprintf("%d", a.RegretTypes.Burnout)))
	fmt.Printf("   %s %s\n",
		output.StyleLabel.Render("Habitual scrolling"),
		output.StyleValue.Render(fmt.Sprintf("%d", a.RegretTypes.HabitualScrolling)))

	if a.Narrative != "" {
		fmt.Println()
		fmt.Printf(" %s\n", a.Narrative)
	}

	if len(a.Recommendations) > 0 {
		fmt.Printf("\n %s\n", output.StyleMuted.Render("Try:"))
		for _, r := range a.Recommendations {
			fmt.Printf("   • %s\n", r)
		}
	}
}

// regretTypeLabel maps the machine regret type names to display form.
func regretTypeLabel(t string) string {
	switch t {
	case insight.RegretAttentionDrain:
		return "attention drain"
	case insight.RegretBurnout:
		return "burnout"
	case insight.RegretHabitualScrolling:
		return "habitual scrolling"
	default:
		return t
	}
}
