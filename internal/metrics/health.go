package metrics

import "math"

type HealthKey string

const (
	HealthLungs   HealthKey = "lungs"
	HealthEnergy  HealthKey = "energy"
	HealthFocus   HealthKey = "focus"
	HealthMood    HealthKey = "mood"
	HealthSleep   HealthKey = "sleep"
	HealthClarity HealthKey = "clarity"
)

const maxHealthPercent = 100

type HealthMetric struct {
	Key     HealthKey `json:"key"`
	Label   string    `json:"label"`
	Percent float64   `json:"percent"`
}

// Illustrative recovery curves: percent points gained per clean day.
var healthRates = []struct {
	key   HealthKey
	label string
	rate  float64
}{
	{HealthLungs, "Lungs", 2},
	{HealthEnergy, "Energy", 3},
	{HealthFocus, "Focus", 2.5},
	{HealthMood, "Mood", 1.5},
	{HealthSleep, "Sleep", 2},
	{HealthClarity, "Clarity", 2.8},
}

func HealthMetrics(days float64) []HealthMetric {
	out := make([]HealthMetric, 0, len(healthRates))
	for _, r := range healthRates {
		out = append(out, HealthMetric{
			Key:     r.key,
			Label:   r.label,
			Percent: math.Min(maxHealthPercent, days*r.rate),
		})
	}
	return out
}

func AverageHealthScore(metrics []HealthMetric) float64 {
	if len(metrics) == 0 {
		return 0
	}
	var total float64
	for _, m := range metrics {
		total += m.Percent
	}
	return total / float64(len(metrics))
}
