package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strrl/cleantime/internal/dashboard"
	"github.com/strrl/cleantime/internal/progress"
)

var missionsCmd = &cobra.Command{
	Use:   "missions",
	Short: "List daily and weekly missions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		st, err := s.LoadProgress(cmd.Context())
		if err != nil {
			return err
		}

		now := clk.Now()
		out := cmd.OutOrStdout()
		printLevel(cmd, st)
		for _, kind := range []progress.MissionKind{progress.MissionDaily, progress.MissionWeekly} {
			fmt.Fprintf(out, "\n%s missions\n", capitalize(string(kind)))
			for _, m := range progress.Missions {
				if m.Kind != kind {
					continue
				}
				fmt.Fprintf(out, "  %s %-16s %4d XP  %s\n", checkbox(st.MissionCompleted(m, now)), m.ID, m.XPReward, m.Title)
			}
		}
		fmt.Fprintf(out, "\n%d XP still available in this period\n", st.AvailableXP(now))
		return nil
	},
}

var missionsCompleteCmd = &cobra.Command{
	Use:   "complete <mission-id>",
	Short: "Mark a mission as completed and collect its XP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		st, err := s.LoadProgress(cmd.Context())
		if err != nil {
			return err
		}
		before := progress.Level(st.XP)

		next, err := progress.CompleteMission(st, args[0], clk.Now())
		if err != nil {
			return err
		}
		if err := s.SaveProgress(cmd.Context(), next); err != nil {
			return err
		}

		m, _ := progress.FindMission(args[0])
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Mission completed: %s (+%d XP)\n", m.Title, m.XPReward)
		if after := progress.Level(next.XP); after > before {
			fmt.Fprintf(out, "Level up! You reached level %d.\n", after)
		}
		return nil
	},
}

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "List rewards you can redeem with XP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		st, err := s.LoadProgress(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printLevel(cmd, st)
		fmt.Fprintln(out)
		for _, r := range progress.Rewards {
			fmt.Fprintf(out, "  %s %-16s %5d XP  %s\n", checkbox(st.RewardUnlocked(r.ID)), r.ID, r.XPCost, r.Name)
		}
		return nil
	},
}

var rewardsRedeemCmd = &cobra.Command{
	Use:   "redeem <reward-id>",
	Short: "Spend XP to unlock a reward",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		st, err := s.LoadProgress(cmd.Context())
		if err != nil {
			return err
		}
		next, err := progress.Redeem(st, args[0])
		if err != nil {
			return err
		}
		if err := s.SaveProgress(cmd.Context(), next); err != nil {
			return err
		}

		r, _ := progress.FindReward(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "Reward unlocked: %s (-%d XP, %d XP left)\n", r.Name, r.XPCost, next.XP)
		return nil
	},
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and unlock the ones you have reached",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
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
		st, _, err = unlockAchievements(ctx, s, st, snap)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, a := range progress.Achievements {
			fmt.Fprintf(out, "  %s %-9s %s: %s\n", checkbox(st.AchievementUnlocked(a.ID)), a.ID, a.Title, a.Description)
		}
		return nil
	},
}

func printLevel(cmd *cobra.Command, st progress.State) {
	info := progress.Describe(st.XP)
	fmt.Fprintf(cmd.OutOrStdout(), "Level %d, %d XP (%.0f%% of the way, %d XP to next level)\n",
		info.Level, info.XP, info.Progress, info.ToNext)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func init() {
	rootCmd.AddCommand(missionsCmd)
	rootCmd.AddCommand(rewardsCmd)
	rootCmd.AddCommand(achievementsCmd)

	missionsCmd.AddCommand(missionsCompleteCmd)
	rewardsCmd.AddCommand(rewardsRedeemCmd)
}
