package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/strrl/cleantime/internal/clock"
	"github.com/strrl/cleantime/internal/recovery"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestElapsedCleanDays_UsesStartWithoutRelapse(t *testing.T) {
	start := testNow.AddDate(0, 0, -30)
	got := ElapsedCleanDays(start, nil, clock.Fixed(testNow))
	if got != 30 {
		t.Fatalf("expected 30 days, got %v", got)
	}
}

func TestElapsedCleanDays_LastRelapseSupersedesStart(t *testing.T) {
	start := testNow.AddDate(0, 0, -30)
	relapse := testNow.Add(-36 * time.Hour)
	got := ElapsedCleanDays(start, &relapse, clock.Fixed(testNow))
	if got != 1.5 {
		t.Fatalf("expected 1.5 days, got %v", got)
	}
}

func TestElapsedCleanDays_NegativeIsNotClamped(t *testing.T) {
	future := testNow.Add(48 * time.Hour)
	got := ElapsedCleanDays(future, nil, clock.Fixed(testNow))
	if got != -2 {
		t.Fatalf("expected -2 days, got %v", got)
	}
}

func TestElapsedCleanDays_ReadsClockEachCall(t *testing.T) {
	start := testNow
	calls := 0
	clk := clock.Func(func() time.Time {
		calls++
		return testNow.Add(time.Duration(calls) * 24 * time.Hour)
	})
	first := ElapsedCleanDays(start, nil, clk)
	second := ElapsedCleanDays(start, nil, clk)
	if first != 1 || second != 2 {
		t.Fatalf("expected 1 then 2 days, got %v then %v", first, second)
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		days  float64
		value string
		unit  string
	}{
		{0, "0", "minutes"},
		{0.5 / 24, "30", "minutes"},
		{1.0 / (24 * 60), "1", "minute"},
		{1.0 / 24, "1", "hour"},
		{0.5, "12", "hours"},
		{1, "1", "day"},
		{6.99, "6", "days"},
		{7, "1", "week"},
		{29, "4", "weeks"},
		{30, "1", "month"},
		{364, "12", "months"},
		{365, "1", "year"},
		{800, "2", "years"},
	}
	for _, tc := range cases {
		got := FormatElapsed(tc.days)
		if got.Value != tc.value || got.Unit != tc.unit {
			t.Errorf("FormatElapsed(%v) = %s %s; want %s %s", tc.days, got.Value, got.Unit, tc.value, tc.unit)
		}
		if got.Detail == "" {
			t.Errorf("FormatElapsed(%v) has no detail", tc.days)
		}
	}
}

func TestFormatElapsed_DetailIsFixedPerBucket(t *testing.T) {
	if FormatElapsed(2).Detail != FormatElapsed(5).Detail {
		t.Fatal("expected the same detail inside the day bucket")
	}
	if FormatElapsed(2).Detail == FormatElapsed(8).Detail {
		t.Fatal("expected day and week buckets to differ")
	}
}

func TestTotalSavings(t *testing.T) {
	if got := TotalSavings(10, 5.5); got != 55.0 {
		t.Fatalf("expected 55, got %v", got)
	}
	if got := TotalSavings(-2, 10); got != -20 {
		t.Fatalf("expected negative days to propagate, got %v", got)
	}
}

func TestDailyUseFrequency(t *testing.T) {
	if got := DailyUseFrequency(3, recovery.PeriodDay); got != 3 {
		t.Errorf("day: got %v", got)
	}
	if got := DailyUseFrequency(14, recovery.PeriodWeek); got != 2 {
		t.Errorf("week: got %v", got)
	}
	if got := DailyUseFrequency(30, recovery.PeriodMonth); got != 1 {
		t.Errorf("month: got %v", got)
	}
	if got := DailyUseFrequency(4, recovery.FrequencyPeriod("fortnight")); got != 4 {
		t.Errorf("unknown period should pass amount through, got %v", got)
	}
}

func TestMassAndPotency(t *testing.T) {
	grams := MassAvoided(10, 0.5, 2)
	if grams != 10 {
		t.Fatalf("expected 10g, got %v", grams)
	}
	if mg := PotencyMassAvoided(grams, 20); mg != 2000 {
		t.Fatalf("expected 2000mg, got %v", mg)
	}
}

func TestUsesAvoided(t *testing.T) {
	if got := UsesAvoided(10.5, 2); got != 21 {
		t.Fatalf("expected 21, got %d", got)
	}
	if got := UsesAvoided(0.9, 1); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestHealthMetrics_Rates(t *testing.T) {
	want := map[HealthKey]float64{
		HealthLungs:   20,
		HealthEnergy:  30,
		HealthFocus:   25,
		HealthMood:    15,
		HealthSleep:   20,
		HealthClarity: 28,
	}
	got := HealthMetrics(10)
	if len(got) != len(want) {
		t.Fatalf("expected %d metrics, got %d", len(want), len(got))
	}
	for _, m := range got {
		if math.Abs(m.Percent-want[m.Key]) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", m.Key, want[m.Key], m.Percent)
		}
		if m.Label == "" {
			t.Errorf("%s has no label", m.Key)
		}
	}
}

func TestHealthMetrics_MonotonicAndBounded(t *testing.T) {
	prev := HealthMetrics(0)
	for d := 0.25; d <= 120; d += 0.25 {
		cur := HealthMetrics(d)
		for i := range cur {
			if cur[i].Percent < prev[i].Percent {
				t.Fatalf("%s decreased at day %v", cur[i].Key, d)
			}
			if cur[i].Percent < 0 || cur[i].Percent > 100 {
				t.Fatalf("%s out of range at day %v: %v", cur[i].Key, d, cur[i].Percent)
			}
		}
		prev = cur
	}
	for _, m := range prev {
		if m.Percent != 100 {
			t.Errorf("%s should be capped at 100 after 120 days, got %v", m.Key, m.Percent)
		}
	}
}

func TestAverageHealthScore(t *testing.T) {
	if got := AverageHealthScore(nil); got != 0 {
		t.Fatalf("expected 0 for no metrics, got %v", got)
	}
	got := AverageHealthScore(HealthMetrics(100))
	if got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}

func TestEndToEnd_ThirtyDaysNoRelapse(t *testing.T) {
	days := ElapsedCleanDays(testNow.AddDate(0, 0, -30), nil, clock.Fixed(testNow))
	if math.Abs(days-30) > 1e-9 {
		t.Fatalf("expected 30 days, got %v", days)
	}
	if got := TotalSavings(days, 10); math.Abs(got-300) > 1e-9 {
		t.Fatalf("expected 300 saved, got %v", got)
	}
	label := FormatElapsed(days)
	if label.Value != "1" || label.Unit != "month" {
		t.Fatalf("expected 1 month, got %s %s", label.Value, label.Unit)
	}
	for _, m := range HealthMetrics(days) {
		if m.Key == HealthEnergy && m.Percent != 90 {
			t.Fatalf("expected energy 90, got %v", m.Percent)
		}
	}
}
