package insights

import (
	"fmt"
	"math"

	"github.com/strrl/cleantime/internal/recovery"
)

// Each mood rule fires independently of the others.
var moodRules = []moodRule{
	{name: "positive_trend", evaluate: positiveTrendRule},
	{name: "better_mornings", evaluate: betterMorningsRule},
	{name: "elevated_anxiety", evaluate: elevatedAnxietyRule},
}

func positiveTrendRule(in *moodInput) []Insight {
	recent := headMoods(in.entries, in.cfg.MoodRecentWindow)
	positive, negative := 0, 0
	for _, e := range recent {
		switch {
		case e.Mood.IsPositive():
			positive++
		case e.Mood.IsNegative():
			negative++
		}
	}
	if positive <= negative {
		return nil
	}

	return []Insight{{
		Category: CategoryMoodTrend,
		Priority: PriorityLow,
		Title:    "Positive trend",
		Description: fmt.Sprintf("Your mood is improving! %d%% of your latest entries were positive.",
			percent(positive, len(recent))),
	}}
}

func betterMorningsRule(in *moodInput) []Insight {
	mornings, positive := 0, 0
	for _, e := range in.entries {
		hour, ok := recovery.ParseHour(e.Time)
		if !ok || hour < in.cfg.MorningStartHour || hour >= in.cfg.MorningEndHour {
			continue
		}
		mornings++
		if e.Mood.IsPositive() {
			positive++
		}
	}
	if mornings < in.cfg.MorningMinEntries {
		return nil
	}

	pct := percent(positive, mornings)
	if float64(pct) <= in.cfg.MorningPositivePct {
		return nil
	}

	return []Insight{{
		Category:    CategoryPattern,
		Priority:    PriorityMedium,
		Title:       "Positive mornings",
		Description: fmt.Sprintf("You tend to feel better in the morning (%d%% positive mood).", pct),
	}}
}

func elevatedAnxietyRule(in *moodInput) []Insight {
	anxious := 0
	for _, e := range headMoods(in.entries, in.cfg.AnxietyWindow) {
		if e.Mood.IsAnxious() {
			anxious++
		}
	}
	if anxious < in.cfg.AnxietyMinEntries {
		return nil
	}

	return []Insight{{
		Category:    CategoryRisk,
		Priority:    PriorityHigh,
		Title:       "Elevated risk level",
		Description: "You've been feeling anxious often. Consider using SOS mode or breathing techniques.",
	}}
}

func headMoods(entries []recovery.MoodEntry, n int) []recovery.MoodEntry {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
