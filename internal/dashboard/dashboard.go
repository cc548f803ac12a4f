package dashboard

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/strrl/cleantime/internal/clock"
	"github.com/strrl/cleantime/internal/metrics"
	"github.com/strrl/cleantime/internal/progress"
	"github.com/strrl/cleantime/internal/recovery"
)

type Snapshot struct {
	GeneratedAt   time.Time              `json:"generatedAt"`
	CleanDays     float64                `json:"cleanDays"`
	Elapsed       metrics.ElapsedLabel   `json:"elapsed"`
	Currency      string                 `json:"currency"`
	Savings       float64                `json:"savings"`
	UsesPerDay    float64                `json:"usesPerDay"`
	GramsAvoided  float64                `json:"gramsAvoided"`
	THCAvoidedMg  float64                `json:"thcAvoidedMg"`
	UsesAvoided   int                    `json:"usesAvoided"`
	Health        []metrics.HealthMetric `json:"health"`
	HealthAverage float64                `json:"healthAverage"`
	TotalRelapses int                    `json:"totalRelapses"`
	Level         progress.LevelInfo     `json:"level"`
}

// Build derives every dashboard figure from p at clk.Now(). A reference time
// in the future reads as zero clean days.
func Build(p recovery.Profile, st progress.State, clk clock.Clock) Snapshot {
	now := clk.Now()
	days := metrics.ElapsedCleanDays(p.StartDate, p.LastRelapseDate, clock.Fixed(now))
	if days < 0 {
		days = 0
	}

	usesPerDay := metrics.DailyUseFrequency(p.FrequencyAmount, p.FrequencyPeriod)
	grams := metrics.MassAvoided(days, p.GramsPerUse, usesPerDay)
	health := metrics.HealthMetrics(days)

	return Snapshot{
		GeneratedAt:   now,
		CleanDays:     days,
		Elapsed:       metrics.FormatElapsed(days),
		Currency:      p.Currency,
		Savings:       metrics.TotalSavings(days, p.DailyCost),
		UsesPerDay:    usesPerDay,
		GramsAvoided:  grams,
		THCAvoidedMg:  metrics.PotencyMassAvoided(grams, p.THCPotency),
		UsesAvoided:   metrics.UsesAvoided(days, usesPerDay),
		Health:        health,
		HealthAverage: metrics.AverageHealthScore(health),
		TotalRelapses: p.TotalRelapses,
		Level:         progress.Describe(st.XP),
	}
}

// CleanDuration renders the exact counter shown under the headline label.
func (s Snapshot) CleanDuration() string {
	total := time.Duration(s.CleanDays * 24 * float64(time.Hour)).Round(time.Second)
	days := int(total / (24 * time.Hour))
	total -= time.Duration(days) * 24 * time.Hour
	h := int(total / time.Hour)
	m := int(total % time.Hour / time.Minute)
	sec := int(total % time.Minute / time.Second)
	return fmt.Sprintf("%dd %02dh %02dm %02ds", days, h, m, sec)
}

func Render(w io.Writer, s Snapshot) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Clean for %s %s (%s)\n", s.Elapsed.Value, s.Elapsed.Unit, s.CleanDuration())
	fmt.Fprintf(&b, "%s\n\n", s.Elapsed.Detail)
	fmt.Fprintf(&b, "Saved:          %s %.2f\n", s.Currency, s.Savings)
	fmt.Fprintf(&b, "Uses avoided:   %d\n", s.UsesAvoided)
	fmt.Fprintf(&b, "Grams avoided:  %.2f g\n", s.GramsAvoided)
	fmt.Fprintf(&b, "THC avoided:    %.0f mg\n", s.THCAvoidedMg)
	fmt.Fprintf(&b, "Relapses:       %d\n", s.TotalRelapses)
	fmt.Fprintf(&b, "Level:          %d (%d XP, %d to next)\n\n", s.Level.Level, s.Level.XP, s.Level.ToNext)

	fmt.Fprintf(&b, "Health recovery (average %.0f%%)\n", s.HealthAverage)
	for _, h := range s.Health {
		fmt.Fprintf(&b, "  %-8s %s %3.0f%%\n", h.Label, bar(h.Percent, 20), h.Percent)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func bar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
