package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/strrl/cleantime/internal/dashboard"
	"github.com/strrl/cleantime/internal/progress"
	"github.com/strrl/cleantime/internal/recovery"
	"github.com/strrl/cleantime/internal/store"
)

var (
	dashboardWatch    bool
	dashboardInterval time.Duration
	dashboardJSON     bool
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show clean time, savings and health recovery",
	Long: `Show clean time, savings, substance avoided and health recovery. Achievements
reached since the last look are unlocked. With --watch the counter refreshes
until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().BoolVarP(&dashboardWatch, "watch", "w", false, "Refresh continuously until interrupted")
	dashboardCmd.Flags().DurationVar(&dashboardInterval, "interval", time.Second, "Refresh interval for --watch")
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "Print the snapshot as JSON")
}

func runDashboard(cmd *cobra.Command, args []string) error {
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
	st, err := s.LoadProgress(ctx)
	if err != nil {
		return err
	}

	snap := dashboard.Build(profile, st, clk)
	st, unlocked, err := unlockAchievements(ctx, s, st, snap)
	if err != nil {
		return err
	}

	if dashboardJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	printUnlocked(out, unlocked)
	if err := dashboard.Render(out, snap); err != nil {
		return err
	}
	if !dashboardWatch {
		return nil
	}
	if dashboardInterval <= 0 {
		return fmt.Errorf("--interval must be positive, got %s", dashboardInterval)
	}
	return watchDashboard(ctx, out, s, profile, st)
}

// unlockAchievements persists achievements reached by snap and returns the
// updated state with the newly unlocked ones.
func unlockAchievements(ctx context.Context, s *store.Store, st progress.State, snap dashboard.Snapshot) (progress.State, []progress.Achievement, error) {
	next, unlocked := progress.EvaluateAchievements(st, snap.CleanDays, snap.Savings, snap.GeneratedAt)
	if len(unlocked) == 0 {
		return st, nil, nil
	}
	if err := s.SaveProgress(ctx, next); err != nil {
		return st, nil, err
	}
	log.Info("achievements unlocked", "count", len(unlocked))
	return next, unlocked, nil
}

// watchDashboard redraws every interval and unlocks achievements as their
// thresholds pass.
func watchDashboard(ctx context.Context, out io.Writer, s *store.Store, profile recovery.Profile, st progress.State) error {
	ticker := time.NewTicker(dashboardInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := refreshDashboard(ctx, out, s, profile, &st); err != nil {
				return err
			}
		}
	}
}

func refreshDashboard(ctx context.Context, out io.Writer, s *store.Store, profile recovery.Profile, st *progress.State) error {
	snap := dashboard.Build(profile, *st, clk)
	next, unlocked, err := unlockAchievements(ctx, s, *st, snap)
	if err != nil {
		return err
	}
	*st = next

	fmt.Fprint(out, "\033[H\033[2J")
	printUnlocked(out, unlocked)
	return dashboard.Render(out, snap)
}

func printUnlocked(out io.Writer, unlocked []progress.Achievement) {
	for _, a := range unlocked {
		fmt.Fprintf(out, "Achievement unlocked: %s. %s\n", a.Title, a.Description)
	}
	if len(unlocked) > 0 {
		fmt.Fprintln(out)
	}
}
