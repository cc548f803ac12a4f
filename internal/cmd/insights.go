package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/strrl/cleantime/internal/insights"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Analyze relapse and mood history for patterns",
	Long: `Analyze relapse and mood history: the current risk level, the hours and
triggers relapses cluster around, and trends in logged moods. Most insights need
at least three entries of history.`,
	Args: cobra.NoArgs,
	RunE: runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	s, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	profile, err := s.LoadProfile(ctx)
	if err != nil {
		return err
	}
	moods, err := s.LoadMoods(ctx)
	if err != nil {
		return err
	}

	engine := insights.NewEngine(cfg.Insights, clk)
	report := engine.AnalyzeRelapses(profile)
	moodInsights := engine.AnalyzeMoods(moods)

	fmt.Fprintf(out, "Risk level: %s (%d relapses in the last %d days)\n\n",
		report.Risk, report.RecentRelapses, cfg.Insights.RiskWindowDays)

	printInsights(out, "Relapse patterns", report.Insights)
	printInsights(out, "Mood trends", moodInsights)
	if len(moods) < cfg.Insights.MinHistory {
		fmt.Fprintf(out, "Log at least %d moods to see mood trends.\n", cfg.Insights.MinHistory)
	}
	return nil
}

func printInsights(out io.Writer, heading string, items []insights.Insight) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "%s\n", heading)
	for _, in := range items {
		fmt.Fprintf(out, "  [%s] %s\n", in.Priority, in.Title)
		fmt.Fprintf(out, "      %s\n", in.Description)
	}
	fmt.Fprintln(out)
}
