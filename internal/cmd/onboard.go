package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/strrl/cleantime/internal/recovery"
)

var (
	initStart        string
	initCurrency     string
	initDailyCost    float64
	initGramsPerUse  float64
	initPotency      float64
	initPricePerGram float64
	initFrequency    float64
	initPeriod       string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up your profile and start the clean-time counter",
	Long: `Set up your profile: when you stopped, how much you used to spend and how
often you used. Running init again replaces the profile but keeps mood entries
and progress.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initStart, "start", "", "When you stopped, YYYY-MM-DD or RFC3339 (default: now)")
	initCmd.Flags().StringVar(&initCurrency, "currency", "", "Currency code for savings (default: from config)")
	initCmd.Flags().Float64Var(&initDailyCost, "daily-cost", 0, "Average amount spent per day")
	initCmd.Flags().Float64Var(&initGramsPerUse, "grams-per-use", 0, "Grams per use")
	initCmd.Flags().Float64Var(&initPotency, "potency", 0, "THC potency in percent")
	initCmd.Flags().Float64Var(&initPricePerGram, "price-per-gram", 0, "Price paid per gram")
	initCmd.Flags().Float64Var(&initFrequency, "frequency", 1, "Uses per period")
	initCmd.Flags().StringVar(&initPeriod, "period", string(recovery.PeriodDay), "Frequency period: day, week or month")
}

func runInit(cmd *cobra.Command, args []string) error {
	start := clk.Now()
	if initStart != "" {
		parsed, err := parseStart(initStart)
		if err != nil {
			return fmt.Errorf("invalid --start %q: expected YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC3339", initStart)
		}
		start = parsed
	}

	period := recovery.FrequencyPeriod(strings.ToLower(initPeriod))
	if !period.IsValid() {
		return fmt.Errorf("invalid --period %q: expected day, week or month", initPeriod)
	}
	for name, v := range map[string]float64{
		"daily-cost":     initDailyCost,
		"grams-per-use":  initGramsPerUse,
		"potency":        initPotency,
		"price-per-gram": initPricePerGram,
		"frequency":      initFrequency,
	} {
		if v < 0 {
			return fmt.Errorf("--%s must not be negative", name)
		}
	}
	if initPotency > 100 {
		return fmt.Errorf("--potency is a percentage, got %v", initPotency)
	}

	currency := initCurrency
	if currency == "" {
		currency = cfg.Currency
	}

	s, closeStore, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	profile := recovery.Profile{
		StartDate:       start,
		Currency:        strings.ToUpper(currency),
		DailyCost:       initDailyCost,
		GramsPerUse:     initGramsPerUse,
		THCPotency:      initPotency,
		PricePerGram:    initPricePerGram,
		FrequencyAmount: initFrequency,
		FrequencyPeriod: period,
	}
	if err := s.Init(cmd.Context(), profile); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Profile saved. Counting clean time from %s.\n", start.Format("2006-01-02 15:04"))
	return nil
}

// parseStart reads a bare --start date as local midnight.
func parseStart(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(recovery.DateLayout, s, time.Local); err == nil {
		return t, nil
	}
	return recovery.ParseTimestamp(s)
}
