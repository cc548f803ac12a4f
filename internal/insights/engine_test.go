package insights

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/strrl/cleantime/internal/clock"
	"github.com/strrl/cleantime/internal/recovery"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(DefaultConfig(), clock.Fixed(testNow))
}

func relapseAt(daysAgo int, hhmm string, trigger string) recovery.RelapseEvent {
	return recovery.RelapseEvent{
		ID:      "r",
		Date:    testNow.AddDate(0, 0, -daysAgo).Format(recovery.DateLayout),
		Time:    hhmm,
		Trigger: trigger,
	}
}

func countCategory(list []Insight, c Category) int {
	n := 0
	for _, in := range list {
		if in.Category == c {
			n++
		}
	}
	return n
}

func findTitle(list []Insight, title string) (Insight, bool) {
	for _, in := range list {
		if in.Title == title {
			return in, true
		}
	}
	return Insight{}, false
}

func TestAnalyzeRelapses_HighRisk(t *testing.T) {
	e := newTestEngine(t)
	profile := recovery.Profile{
		StartDate: testNow.AddDate(0, 0, -60),
		RelapseHistory: []recovery.RelapseEvent{
			relapseAt(1, "18:00:00", ""),
			relapseAt(3, "19:00:00", ""),
			relapseAt(6, "20:00:00", ""),
		},
	}

	report := e.AnalyzeRelapses(profile)
	if report.Risk != RiskHigh {
		t.Fatalf("expected high risk, got %s", report.Risk)
	}
	if report.RecentRelapses != 3 {
		t.Fatalf("expected 3 recent relapses, got %d", report.RecentRelapses)
	}
	if n := countCategory(report.Insights, CategoryRisk); n != 1 {
		t.Fatalf("expected exactly one risk insight, got %d", n)
	}
	risk, ok := findTitle(report.Insights, "High risk level")
	if !ok || risk.Priority != PriorityHigh {
		t.Fatalf("expected high priority risk insight, got %+v", report.Insights)
	}
	if !strings.Contains(risk.Description, "3 relapses") {
		t.Fatalf("expected the count in the description: %q", risk.Description)
	}
}

func TestAnalyzeRelapses_LowRiskWhenOnlyOldRelapses(t *testing.T) {
	e := newTestEngine(t)
	profile := recovery.Profile{
		StartDate:      testNow.AddDate(0, 0, -20),
		RelapseHistory: []recovery.RelapseEvent{relapseAt(10, "10:00:00", "")},
	}

	report := e.AnalyzeRelapses(profile)
	if report.Risk != RiskLow {
		t.Fatalf("expected low risk, got %s", report.Risk)
	}
	if n := countCategory(report.Insights, CategoryRisk); n != 1 {
		t.Fatalf("expected exactly one risk insight, got %d", n)
	}
	if _, ok := findTitle(report.Insights, "Low risk level"); !ok {
		t.Fatalf("expected low risk insight, got %+v", report.Insights)
	}
}

func TestClassifyRisk_WindowBoundaryIsInclusive(t *testing.T) {
	cfg := DefaultConfig()

	level, recent := ClassifyRisk([]recovery.RelapseEvent{relapseAt(7, "10:00:00", "")}, testNow, cfg)
	if level != RiskMedium || recent != 1 {
		t.Fatalf("day 7 should count: got %s/%d", level, recent)
	}

	level, recent = ClassifyRisk([]recovery.RelapseEvent{relapseAt(8, "10:00:00", "")}, testNow, cfg)
	if level != RiskLow || recent != 0 {
		t.Fatalf("day 8 should not count: got %s/%d", level, recent)
	}
}

func TestClassifyRisk_SkipsUnparsableDates(t *testing.T) {
	history := []recovery.RelapseEvent{
		{Date: "yesterday"},
		relapseAt(0, "10:00:00", ""),
	}
	level, recent := ClassifyRisk(history, testNow, DefaultConfig())
	if level != RiskMedium || recent != 1 {
		t.Fatalf("expected medium/1, got %s/%d", level, recent)
	}
}

func TestHotHours_TiesBreakByAscendingHour(t *testing.T) {
	var history []recovery.RelapseEvent
	for _, hh := range []string{"18:10:00", "18:20:00", "18:30:00", "20:00:00", "20:05:00", "14:00:00"} {
		history = append(history, relapseAt(1, hh, ""))
	}
	if got := HotHours(history, 2); !reflect.DeepEqual(got, []int{18, 20}) {
		t.Fatalf("expected [18 20], got %v", got)
	}

	history = nil
	for _, hh := range []string{"09:00", "09:30", "07:00", "07:15", "03:00"} {
		history = append(history, relapseAt(1, hh, ""))
	}
	if got := HotHours(history, 2); !reflect.DeepEqual(got, []int{7, 9}) {
		t.Fatalf("expected [7 9], got %v", got)
	}
}

func TestHotHours_SkipsMalformedTimes(t *testing.T) {
	history := []recovery.RelapseEvent{
		relapseAt(1, "late", ""),
		relapseAt(1, "", ""),
		relapseAt(1, "18:00:00", ""),
	}
	if got := HotHours(history, 2); !reflect.DeepEqual(got, []int{18}) {
		t.Fatalf("expected [18], got %v", got)
	}
}

func TestAnalyzeRelapses_HotHourRuleNeedsThreeEvents(t *testing.T) {
	e := newTestEngine(t)
	profile := recovery.Profile{
		StartDate: testNow.AddDate(0, 0, -60),
		RelapseHistory: []recovery.RelapseEvent{
			relapseAt(30, "18:00:00", ""),
			relapseAt(20, "18:00:00", ""),
		},
	}
	report := e.AnalyzeRelapses(profile)
	if _, ok := findTitle(report.Insights, "Highest risk hours"); ok {
		t.Fatal("hot hour rule should not run below three events")
	}

	profile.RelapseHistory = append(profile.RelapseHistory, relapseAt(15, "19:00:00", ""))
	report = e.AnalyzeRelapses(profile)
	in, ok := findTitle(report.Insights, "Highest risk hours")
	if !ok {
		t.Fatal("expected hot hour insight with three events")
	}
	if in.Priority != PriorityHigh || !strings.Contains(in.Description, "18h and 20h") {
		t.Fatalf("unexpected hot hour insight: %+v", in)
	}
}

func TestTopTrigger(t *testing.T) {
	history := []recovery.RelapseEvent{
		relapseAt(1, "10:00", "stress"),
		relapseAt(1, "10:00", "party"),
		relapseAt(1, "10:00", ""),
		relapseAt(1, "10:00", "party"),
		relapseAt(1, "10:00", "stress"),
	}
	trigger, count := TopTrigger(history)
	if trigger != "stress" || count != 2 {
		t.Fatalf("expected first-seen stress/2, got %s/%d", trigger, count)
	}

	if trigger, count := TopTrigger([]recovery.RelapseEvent{relapseAt(1, "10:00", "")}); trigger != "" || count != 0 {
		t.Fatalf("expected no trigger, got %s/%d", trigger, count)
	}
}

func TestAnalyzeRelapses_TriggerInsight(t *testing.T) {
	e := newTestEngine(t)
	profile := recovery.Profile{
		StartDate:      testNow.AddDate(0, 0, -60),
		RelapseHistory: []recovery.RelapseEvent{relapseAt(40, "10:00", "boredom")},
	}
	report := e.AnalyzeRelapses(profile)
	in, ok := findTitle(report.Insights, "Main trigger identified")
	if !ok || in.Priority != PriorityMedium || !strings.Contains(in.Description, `"boredom"`) {
		t.Fatalf("expected trigger insight, got %+v", report.Insights)
	}
	if report.TopTrigger != "boredom" {
		t.Fatalf("expected top trigger recorded, got %q", report.TopTrigger)
	}
}

func TestAnalyzeRelapses_ProgressInsight(t *testing.T) {
	e := newTestEngine(t)

	profile := recovery.Profile{
		StartDate: testNow.AddDate(0, 0, -30),
		RelapseHistory: []recovery.RelapseEvent{
			relapseAt(25, "10:00", ""),
			relapseAt(12, "10:00", ""),
		},
	}
	in, ok := findTitle(e.AnalyzeRelapses(profile).Insights, "Excellent progress")
	if !ok || in.Category != CategoryAchievement || in.Priority != PriorityLow {
		t.Fatal("expected progress insight for a 15 day average")
	}
	if !strings.Contains(in.Description, "15 days") {
		t.Fatalf("expected rounded average in description: %q", in.Description)
	}

	profile.StartDate = testNow.AddDate(0, 0, -10)
	if _, ok := findTitle(e.AnalyzeRelapses(profile).Insights, "Excellent progress"); ok {
		t.Fatal("a 5 day average should not produce a progress insight")
	}

	profile = recovery.Profile{StartDate: testNow.AddDate(0, 0, -30)}
	if _, ok := findTitle(e.AnalyzeRelapses(profile).Insights, "Excellent progress"); !ok {
		t.Fatal("no relapses over 30 days should count as one long interval")
	}
}

func TestAverageDaysBetweenRelapses(t *testing.T) {
	start := testNow.Add(-(30*24 + 5) * time.Hour)
	if got := AverageDaysBetweenRelapses(start, 0, testNow); got != 30 {
		t.Fatalf("expected floor of elapsed days, got %v", got)
	}
	if got := AverageDaysBetweenRelapses(start, 4, testNow); got != 7.5 {
		t.Fatalf("expected 7.5, got %v", got)
	}
}

func TestAnalyzeRelapses_ContentIsDeterministic(t *testing.T) {
	e := newTestEngine(t)
	profile := recovery.Profile{
		StartDate: testNow.AddDate(0, 0, -90),
		RelapseHistory: []recovery.RelapseEvent{
			relapseAt(40, "21:00", "stress"),
			relapseAt(5, "21:30", "stress"),
			relapseAt(2, "22:00", "party"),
		},
	}

	first := e.AnalyzeRelapses(profile)
	second := e.AnalyzeRelapses(profile)
	if len(first.Insights) != len(second.Insights) {
		t.Fatalf("insight count changed: %d vs %d", len(first.Insights), len(second.Insights))
	}
	for i := range first.Insights {
		a, b := first.Insights[i], second.Insights[i]
		if a.Category != b.Category || a.Priority != b.Priority || a.Title != b.Title || a.Description != b.Description {
			t.Fatalf("insight %d content changed: %+v vs %+v", i, a, b)
		}
		if a.ID == "" || a.ID == b.ID {
			t.Fatalf("expected fresh ids per run, got %q and %q", a.ID, b.ID)
		}
		if !a.GeneratedAt.Equal(testNow) {
			t.Fatalf("expected generatedAt from the clock, got %v", a.GeneratedAt)
		}
	}
}

func TestAnalyzeRelapses_DoesNotMutateHistory(t *testing.T) {
	e := newTestEngine(t)
	history := []recovery.RelapseEvent{
		relapseAt(3, "20:00", "a"),
		relapseAt(2, "18:00", "b"),
		relapseAt(1, "19:00", "b"),
	}
	snapshot := append([]recovery.RelapseEvent(nil), history...)
	e.AnalyzeRelapses(recovery.Profile{StartDate: testNow.AddDate(0, 0, -10), RelapseHistory: history})
	if !reflect.DeepEqual(history, snapshot) {
		t.Fatal("history was modified")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	cfg := DefaultConfig()
	cfg.RiskWindowDays = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero risk window")
	}

	cfg = DefaultConfig()
	cfg.MorningStartHour, cfg.MorningEndHour = 12, 6
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for inverted morning window")
	}
}
