package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/strrl/cleantime/internal/dashboard"
	"github.com/strrl/cleantime/internal/insights"
	"github.com/strrl/cleantime/internal/output"
	"github.com/strrl/cleantime/internal/progress"
	"github.com/strrl/cleantime/internal/recovery"
)

var reportOut string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a markdown recovery report",
	Long: `Write a markdown report with clean time, savings, health recovery, the current
risk level, every insight and the latest relapses to ` + output.ReportFilename + `.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportOut, "out", "o", ".", "Directory to write the report into")
}

func runReport(cmd *cobra.Command, args []string) error {
	s, closeStore, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	engine := insights.NewEngine(cfg.Insights, clk)

	var (
		profile      recovery.Profile
		relapses     insights.RelapseReport
		moodInsights []insights.Insight
		st           progress.State
	)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		p, err := s.LoadProfile(ctx)
		if err != nil {
			return err
		}
		profile = p
		relapses = engine.AnalyzeRelapses(p)
		return nil
	})
	g.Go(func() error {
		moods, err := s.LoadMoods(ctx)
		if err != nil {
			return err
		}
		moodInsights = engine.AnalyzeMoods(moods)
		return nil
	})
	g.Go(func() error {
		loaded, err := s.LoadProgress(ctx)
		if err != nil {
			return err
		}
		st = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to gather report data: %w", err)
	}

	path, err := output.NewGenerator(reportOut).Generate(output.Report{
		Snapshot:     dashboard.Build(profile, st, clk),
		Relapses:     relapses,
		MoodInsights: moodInsights,
		History:      profile.RelapseHistory,
		Progress:     st,
	})
	if err != nil {
		return err
	}

	log.Info("report written", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}
