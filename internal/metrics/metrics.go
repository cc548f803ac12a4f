package metrics

import (
	"math"
	"strconv"
	"time"

	"github.com/strrl/cleantime/internal/clock"
	"github.com/strrl/cleantime/internal/recovery"
)

const (
	daysPerWeek  = 7
	daysPerMonth = 30
	daysPerYear  = 365
)

type ElapsedLabel struct {
	Value  string `json:"value"`
	Unit   string `json:"unit"`
	Detail string `json:"detail"`
}

type granularity struct {
	below    float64
	count    func(days float64) float64
	singular string
	plural   string
	detail   string
}

// Checked in order; the last entry catches everything else.
var granularities = []granularity{
	{below: 1.0 / 24, count: func(d float64) float64 { return d * 24 * 60 }, singular: "minute", plural: "minutes", detail: "Every minute counts!"},
	{below: 1, count: func(d float64) float64 { return d * 24 }, singular: "hour", plural: "hours", detail: "Keep going strong!"},
	{below: daysPerWeek, count: func(d float64) float64 { return d }, singular: "day", plural: "days", detail: "You're doing really well!"},
	{below: daysPerMonth, count: func(d float64) float64 { return d / daysPerWeek }, singular: "week", plural: "weeks", detail: "Incredible progress!"},
	{below: daysPerYear, count: func(d float64) float64 { return d / daysPerMonth }, singular: "month", plural: "months", detail: "You're an inspiration!"},
	{below: math.Inf(1), count: func(d float64) float64 { return d / daysPerYear }, singular: "year", plural: "years", detail: "An extraordinary achievement!"},
}

// ElapsedCleanDays returns fractional days between the reference instant
// (last relapse if any, else start) and clk.Now(). Negative results are
// returned as-is.
func ElapsedCleanDays(start time.Time, lastRelapse *time.Time, clk clock.Clock) float64 {
	ref := start
	if lastRelapse != nil {
		ref = *lastRelapse
	}
	return clk.Now().Sub(ref).Hours() / 24
}

func FormatElapsed(days float64) ElapsedLabel {
	g := granularities[len(granularities)-1]
	for _, candidate := range granularities {
		if days < candidate.below {
			g = candidate
			break
		}
	}

	value := int(math.Floor(g.count(days)))

	unit := g.plural
	if value == 1 {
		unit = g.singular
	}

	return ElapsedLabel{
		Value:  strconv.Itoa(value),
		Unit:   unit,
		Detail: g.detail,
	}
}

func TotalSavings(days, dailyCost float64) float64 {
	return days * dailyCost
}

// DailyUseFrequency converts a consumption frequency to uses per day. Months
// are approximated as 30 days.
func DailyUseFrequency(amount float64, period recovery.FrequencyPeriod) float64 {
	switch period {
	case recovery.PeriodWeek:
		return amount / daysPerWeek
	case recovery.PeriodMonth:
		return amount / daysPerMonth
	default:
		return amount
	}
}

func MassAvoided(days, massPerUse, usesPerDay float64) float64 {
	return days * massPerUse * usesPerDay
}

// PotencyMassAvoided returns milligrams of active compound in gramsAvoided.
func PotencyMassAvoided(gramsAvoided, potencyPercent float64) float64 {
	return gramsAvoided * 1000 * (potencyPercent / 100)
}

func UsesAvoided(days, usesPerDay float64) int {
	return int(math.Floor(days * usesPerDay))
}
