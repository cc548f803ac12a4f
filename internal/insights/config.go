package insights

import "fmt"

type Config struct {
	MinHistory int `yaml:"min_history"`

	RiskWindowDays    int `yaml:"risk_window_days"`
	HighRiskRelapses  int `yaml:"high_risk_relapses"`
	HotHourCount      int `yaml:"hot_hour_count"`
	HotHourSpan       int `yaml:"hot_hour_span"`
	AchievementAvgGap int `yaml:"achievement_avg_gap_days"`

	MoodRecentWindow   int     `yaml:"mood_recent_window"`
	MorningStartHour   int     `yaml:"morning_start_hour"`
	MorningEndHour     int     `yaml:"morning_end_hour"`
	MorningMinEntries  int     `yaml:"morning_min_entries"`
	MorningPositivePct float64 `yaml:"morning_positive_pct"`
	AnxietyWindow      int     `yaml:"anxiety_window"`
	AnxietyMinEntries  int     `yaml:"anxiety_min_entries"`
}

func DefaultConfig() Config {
	return Config{
		MinHistory: 3,

		RiskWindowDays:    7,
		HighRiskRelapses:  3,
		HotHourCount:      2,
		HotHourSpan:       2,
		AchievementAvgGap: 7,

		MoodRecentWindow:   7,
		MorningStartHour:   6,
		MorningEndHour:     12,
		MorningMinEntries:  3,
		MorningPositivePct: 60,
		AnxietyWindow:      3,
		AnxietyMinEntries:  2,
	}
}

func (c Config) Validate() error {
	positive := map[string]int{
		"min_history":              c.MinHistory,
		"risk_window_days":         c.RiskWindowDays,
		"high_risk_relapses":       c.HighRiskRelapses,
		"hot_hour_count":           c.HotHourCount,
		"mood_recent_window":       c.MoodRecentWindow,
		"morning_min_entries":      c.MorningMinEntries,
		"anxiety_window":           c.AnxietyWindow,
		"anxiety_min_entries":      c.AnxietyMinEntries,
		"achievement_avg_gap_days": c.AchievementAvgGap,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("insights.%s must be positive, got %d", name, v)
		}
	}
	if c.MorningStartHour < 0 || c.MorningEndHour > 24 || c.MorningStartHour >= c.MorningEndHour {
		return fmt.Errorf("invalid morning window %d-%d", c.MorningStartHour, c.MorningEndHour)
	}
	if c.MorningPositivePct < 0 || c.MorningPositivePct > 100 {
		return fmt.Errorf("insights.morning_positive_pct must be within 0-100, got %v", c.MorningPositivePct)
	}
	return nil
}
