package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strrl/cleantime/internal/recovery"
	"github.com/strrl/cleantime/internal/signals"
	"github.com/strrl/cleantime/internal/store"
)

var (
	relapseNotes   string
	relapseMood    string
	relapseTrigger string
	moodNotes      string
)

var relapseCmd = &cobra.Command{
	Use:   "relapse",
	Short: "Register a relapse and restart the clean-time counter",
	Long: `Register a relapse now. The clean-time counter restarts, unlocked achievements
are reset, and the event joins the history used for insights. XP and rewards
are kept. Without --trigger, a trigger is inferred from --notes when possible.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		out := cmd.OutOrStdout()
		trigger := strings.TrimSpace(relapseTrigger)
		if trigger == "" {
			if inferred, ok := signals.NewDetector().InferTrigger(relapseNotes); ok {
				trigger = string(inferred)
				fmt.Fprintf(out, "Trigger detected from notes: %s\n", trigger)
			}
		}

		event, err := s.RegisterRelapse(cmd.Context(), store.RelapseInput{
			Notes:   relapseNotes,
			Mood:    relapseMood,
			Trigger: trigger,
		}, clk.Now())
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Relapse registered on %s at %s.\n", event.Date, event.Time)
		fmt.Fprintln(out, "A relapse is part of the process. Your counter starts again now.")
		return nil
	},
}

var moodCmd = &cobra.Command{
	Use:       "mood <" + strings.Join(moodNames(), "|") + ">",
	Short:     "Log how you are feeling",
	Args:      cobra.ExactArgs(1),
	ValidArgs: moodNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		mood := recovery.Mood(strings.ToLower(args[0]))

		s, closeStore, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		entry, err := s.AddMood(cmd.Context(), mood, moodNotes, clk.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Mood logged: %s (%s %s)\n", recovery.ValidMoods[entry.Mood], entry.Date, entry.Time)
		return nil
	},
}

func moodNames() []string {
	names := make([]string, 0, len(recovery.ValidMoods))
	for m := range recovery.ValidMoods {
		names = append(names, string(m))
	}
	sort.Strings(names)
	return names
}

func init() {
	rootCmd.AddCommand(relapseCmd)
	rootCmd.AddCommand(moodCmd)

	relapseCmd.Flags().StringVar(&relapseNotes, "notes", "", "What happened")
	relapseCmd.Flags().StringVar(&relapseMood, "mood", "", "How you felt")
	relapseCmd.Flags().StringVar(&relapseTrigger, "trigger", "", "What triggered it, e.g. stress or party")

	moodCmd.Flags().StringVar(&moodNotes, "notes", "", "Optional notes")
}
