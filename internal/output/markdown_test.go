package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/strrl/cleantime/internal/clock"
	"github.com/strrl/cleantime/internal/dashboard"
	"github.com/strrl/cleantime/internal/insights"
	"github.com/strrl/cleantime/internal/progress"
	"github.com/strrl/cleantime/internal/recovery"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testReport() Report {
	profile := recovery.Profile{
		StartDate:       testNow.AddDate(0, 0, -30),
		Currency:        "BRL",
		DailyCost:       10,
		FrequencyAmount: 1,
		FrequencyPeriod: recovery.PeriodDay,
	}
	st, _ := progress.EvaluateAchievements(progress.State{XP: 600}, 30, 300, testNow)
	return Report{
		Snapshot: dashboard.Build(profile, st, clock.Fixed(testNow)),
		Relapses: insights.RelapseReport{
			Risk:           insights.RiskMedium,
			RecentRelapses: 1,
			Insights: []insights.Insight{
				{Category: insights.CategoryPattern, Title: "Main trigger identified", Priority: insights.PriorityMedium, Description: "stress"},
				{Category: insights.CategoryRisk, Title: "Moderate risk level", Priority: insights.PriorityMedium, Description: "careful"},
				{Category: insights.CategoryPattern, Title: "Highest risk hours", Priority: insights.PriorityHigh, Description: "evenings"},
			},
		},
		MoodInsights: []insights.Insight{
			{Category: insights.CategoryMoodTrend, Title: "Positive trend", Priority: insights.PriorityLow, Description: "nice"},
		},
		History: []recovery.RelapseEvent{
			{ID: "1", Date: "2025-06-01", Time: "22:00:00", Trigger: "party", Notes: "line one\nline | two"},
			{ID: "2", Date: "2025-06-10", Time: "21:00:00"},
		},
		Progress: st,
	}
}

func TestRender(t *testing.T) {
	out := Render(testReport())

	for _, want := range []string{
		"# Recovery report",
		"**1 month**",
		"BRL 300.00",
		"**Level:** Medium (1 relapses",
		"### Mood trend",
		"| 2025-06-01 | 22:00:00 | party | line one line / two |",
		"| 2025-06-10 | 21:00:00 | - | - |",
		"**Level 2** with 600 XP",
		"- One month: A whole month!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	// Higher priority first within a category, categories in first-seen order.
	hot := strings.Index(out, "Highest risk hours")
	trigger := strings.Index(out, "Main trigger identified")
	risk := strings.Index(out, "Moderate risk level")
	if !(hot < trigger && trigger < risk) {
		t.Errorf("unexpected insight ordering: hot %d, trigger %d, risk %d", hot, trigger, risk)
	}

	// Most recent relapse first.
	if strings.Index(out, "2025-06-10") > strings.Index(out, "2025-06-01") {
		t.Error("recent relapses should be listed newest first")
	}
}

func TestRender_NoInsights(t *testing.T) {
	r := testReport()
	r.Relapses.Insights = nil
	r.MoodInsights = nil
	r.History = nil
	out := Render(r)
	if !strings.Contains(out, "Not enough history yet") {
		t.Errorf("expected empty-state message:\n%s", out)
	}
	if strings.Contains(out, "## Recent relapses") {
		t.Error("recent relapses section should be omitted without history")
	}
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	path, err := NewGenerator(dir).Generate(testReport())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if filepath.Base(path) != ReportFilename {
		t.Fatalf("unexpected filename %s", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.HasPrefix(string(raw), "# Recovery report") {
		t.Fatalf("unexpected content:\n%s", raw)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"ansiedade à noite", 10, "ansiedade ..."},
		{"ação", 2, "aç..."},
		{"a|b\nc", 10, "a/b c"},
	}
	for _, tc := range cases {
		got := truncate(tc.in, tc.max)
		if got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8", tc.in, tc.max)
		}
	}
}
