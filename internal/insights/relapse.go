package insights

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/strrl/cleantime/internal/recovery"
)

const day = 24 * time.Hour

var relapseRules = []relapseRule{
	{
		name:     "risk_level",
		evaluate: riskLevelRule,
	},
	{
		name:       "hot_hours",
		minHistory: func(cfg Config) int { return cfg.MinHistory },
		evaluate:   hotHoursRule,
	},
	{
		name:     "top_trigger",
		evaluate: topTriggerRule,
	},
	{
		name:     "progress",
		evaluate: progressRule,
	},
}

func riskLevelRule(in *relapseInput) []Insight {
	level, recent := ClassifyRisk(in.profile.RelapseHistory, in.now, in.cfg)
	in.report.Risk = level
	in.report.RecentRelapses = recent

	switch level {
	case RiskHigh:
		return []Insight{{
			Category: CategoryRisk,
			Priority: PriorityHigh,
			Title:    "High risk level",
			Description: fmt.Sprintf("You had %d relapses in the last %d days. Your risk level is high. "+
				"Consider using SOS mode or talking to someone you trust.", recent, in.cfg.RiskWindowDays),
		}}
	case RiskMedium:
		return []Insight{{
			Category:    CategoryRisk,
			Priority:    PriorityMedium,
			Title:       "Moderate risk level",
			Description: "You had recent relapses. Stay alert to your triggers and use the tools available to you.",
		}}
	default:
		return []Insight{{
			Category:    CategoryRisk,
			Priority:    PriorityLow,
			Title:       "Low risk level",
			Description: "Congratulations! You're keeping good control. Keep it up!",
		}}
	}
}

func hotHoursRule(in *relapseInput) []Insight {
	hours := HotHours(in.profile.RelapseHistory, in.cfg.HotHourCount)
	in.report.HotHours = hours
	if len(hours) == 0 {
		return nil
	}

	return []Insight{{
		Category: CategoryPattern,
		Priority: PriorityHigh,
		Title:    "Highest risk hours",
		Description: fmt.Sprintf("You tend to relapse between %dh and %dh. Get ready before that window "+
			"with breathing techniques or distractions.", hours[0], hours[0]+in.cfg.HotHourSpan),
	}}
}

func topTriggerRule(in *relapseInput) []Insight {
	trigger, count := TopTrigger(in.profile.RelapseHistory)
	if count == 0 {
		return nil
	}
	in.report.TopTrigger = trigger

	return []Insight{{
		Category: CategoryPattern,
		Priority: PriorityMedium,
		Title:    "Main trigger identified",
		Description: fmt.Sprintf("Your most common trigger is: %q. Try to avoid these situations "+
			"or prepare better for them.", trigger),
	}}
}

func progressRule(in *relapseInput) []Insight {
	avg := AverageDaysBetweenRelapses(in.profile.StartDate, len(in.profile.RelapseHistory), in.now)
	if avg <= float64(in.cfg.AchievementAvgGap) {
		return nil
	}

	return []Insight{{
		Category: CategoryAchievement,
		Priority: PriorityLow,
		Title:    "Excellent progress",
		Description: fmt.Sprintf("On average you go %d days between relapses. That's incredible progress!",
			int(math.Round(avg))),
	}}
}

// ClassifyRisk counts relapses dated within the trailing window (whole days
// since the event date, inclusive) and maps the count to a risk level.
// Events with unparsable dates are ignored.
func ClassifyRisk(history []recovery.RelapseEvent, now time.Time, cfg Config) (RiskLevel, int) {
	recent := 0
	for _, ev := range history {
		date, ok := recovery.ParseDate(ev.Date)
		if !ok {
			continue
		}
		if wholeDaysBetween(date, now) <= cfg.RiskWindowDays {
			recent++
		}
	}

	switch {
	case recent >= cfg.HighRiskRelapses:
		return RiskHigh, recent
	case recent >= 1:
		return RiskMedium, recent
	default:
		return RiskLow, recent
	}
}

// HotHours returns up to n hours of day ordered by relapse count, ties broken
// by ascending hour. Events with malformed times are skipped.
func HotHours(history []recovery.RelapseEvent, n int) []int {
	counts := make(map[int]int)
	for _, ev := range history {
		if hour, ok := recovery.ParseHour(ev.Time); ok {
			counts[hour]++
		}
	}

	hours := make([]int, 0, len(counts))
	for h := range counts {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool {
		if counts[hours[i]] != counts[hours[j]] {
			return counts[hours[i]] > counts[hours[j]]
		}
		return hours[i] < hours[j]
	})

	if len(hours) > n {
		hours = hours[:n]
	}
	return hours
}

// TopTrigger returns the most frequent non-empty trigger. On ties the trigger
// seen first in history wins.
func TopTrigger(history []recovery.RelapseEvent) (string, int) {
	counts := make(map[string]int)
	var order []string
	for _, ev := range history {
		if ev.Trigger == "" {
			continue
		}
		if counts[ev.Trigger] == 0 {
			order = append(order, ev.Trigger)
		}
		counts[ev.Trigger]++
	}

	var top string
	best := 0
	for _, trigger := range order {
		if counts[trigger] > best {
			top, best = trigger, counts[trigger]
		}
	}
	return top, best
}

// AverageDaysBetweenRelapses divides whole days since start by the number of
// relapses. With no relapses the whole elapsed period counts as one interval.
func AverageDaysBetweenRelapses(start time.Time, relapses int, now time.Time) float64 {
	daysSinceStart := float64(wholeDaysBetween(start, now))
	if relapses == 0 {
		return daysSinceStart
	}
	return daysSinceStart / float64(relapses)
}

func wholeDaysBetween(from, to time.Time) int {
	return int(math.Floor(float64(to.Sub(from)) / float64(day)))
}
