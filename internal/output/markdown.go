package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/strrl/cleantime/internal/dashboard"
	"github.com/strrl/cleantime/internal/insights"
	"github.com/strrl/cleantime/internal/progress"
	"github.com/strrl/cleantime/internal/recovery"
)

const (
	ReportFilename    = "cleantime-report.md"
	recentRelapseRows = 5
	notesMaxLen       = 120
)

type Report struct {
	Snapshot     dashboard.Snapshot
	Relapses     insights.RelapseReport
	MoodInsights []insights.Insight
	History      []recovery.RelapseEvent
	Progress     progress.State
}

type Generator struct {
	outputDir string
}

func NewGenerator(outputDir string) *Generator {
	return &Generator{
		outputDir: outputDir,
	}
}

// Generate writes the report and returns its path.
func (g *Generator) Generate(r Report) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(g.outputDir, ReportFilename)
	if err := os.WriteFile(filename, []byte(Render(r)), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return filename, nil
}

func Render(r Report) string {
	s := r.Snapshot
	var sb strings.Builder

	sb.WriteString("# Recovery report\n\n")
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", s.GeneratedAt.Format("2006-01-02 15:04")))

	sb.WriteString("## Clean time\n\n")
	sb.WriteString(fmt.Sprintf("**%s %s** (%s). %s\n\n", s.Elapsed.Value, s.Elapsed.Unit, s.CleanDuration(), s.Elapsed.Detail))
	sb.WriteString(fmt.Sprintf("- **Saved:** %s %.2f\n", s.Currency, s.Savings))
	sb.WriteString(fmt.Sprintf("- **Uses avoided:** %d\n", s.UsesAvoided))
	sb.WriteString(fmt.Sprintf("- **Grams avoided:** %.2f\n", s.GramsAvoided))
	sb.WriteString(fmt.Sprintf("- **THC avoided:** %.0f mg\n", s.THCAvoidedMg))
	sb.WriteString(fmt.Sprintf("- **Total relapses:** %d\n\n", s.TotalRelapses))

	sb.WriteString("## Health recovery\n\n")
	sb.WriteString("| Area | Recovered |\n|---|---|\n")
	for _, h := range s.Health {
		sb.WriteString(fmt.Sprintf("| %s | %.0f%% |\n", h.Label, h.Percent))
	}
	sb.WriteString(fmt.Sprintf("| **Average** | **%.0f%%** |\n\n", s.HealthAverage))

	sb.WriteString("## Risk\n\n")
	sb.WriteString(fmt.Sprintf("**Level:** %s (%d relapses in the recent window)\n\n", capitalize(string(r.Relapses.Risk)), r.Relapses.RecentRelapses))

	all := append(append([]insights.Insight(nil), r.Relapses.Insights...), r.MoodInsights...)
	writeInsights(&sb, all)
	writeRecentRelapses(&sb, r.History)
	writeProgress(&sb, s.Level, r.Progress)

	return sb.String()
}

var priorityRank = map[insights.Priority]int{
	insights.PriorityHigh:   0,
	insights.PriorityMedium: 1,
	insights.PriorityLow:    2,
}

func groupInsights(items []insights.Insight) (map[insights.Category][]insights.Insight, []insights.Category) {
	grouped := make(map[insights.Category][]insights.Insight)
	var order []insights.Category
	for _, item := range items {
		if _, ok := grouped[item.Category]; !ok {
			order = append(order, item.Category)
		}
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped, order
}

func writeInsights(sb *strings.Builder, items []insights.Insight) {
	sb.WriteString("## Insights\n\n")
	if len(items) == 0 {
		sb.WriteString("Not enough history yet. Keep logging relapses and moods to unlock insights.\n\n")
		return
	}

	grouped, order := groupInsights(items)
	for _, category := range order {
		group := grouped[category]
		sort.SliceStable(group, func(i, j int) bool {
			return priorityRank[group[i].Priority] < priorityRank[group[j].Priority]
		})

		sb.WriteString(fmt.Sprintf("### %s\n\n", capitalize(strings.ReplaceAll(string(category), "-", " "))))
		for _, in := range group {
			sb.WriteString(fmt.Sprintf("- **%s** (%s): %s\n", in.Title, in.Priority, in.Description))
		}
		sb.WriteString("\n")
	}
}

func writeRecentRelapses(sb *strings.Builder, history []recovery.RelapseEvent) {
	if len(history) == 0 {
		return
	}
	sb.WriteString("## Recent relapses\n\n")
	sb.WriteString("| Date | Time | Trigger | Notes |\n|---|---|---|---|\n")

	start := len(history) - recentRelapseRows
	if start < 0 {
		start = 0
	}
	for i := len(history) - 1; i >= start; i-- {
		e := history[i]
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			e.Date,
			e.Time,
			emptyFallback(e.Trigger, "-"),
			emptyFallback(truncate(e.Notes, notesMaxLen), "-"),
		))
	}
	sb.WriteString("\n")
}

func writeProgress(sb *strings.Builder, level progress.LevelInfo, st progress.State) {
	sb.WriteString("## Progress\n\n")
	sb.WriteString(fmt.Sprintf("**Level %d** with %d XP, %d XP to the next level.\n\n", level.Level, level.XP, level.ToNext))

	if len(st.Achievements) == 0 {
		return
	}
	sb.WriteString("**Achievements:**\n\n")
	for _, a := range progress.Achievements {
		if st.AchievementUnlocked(a.ID) {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", a.Title, a.Description))
		}
	}
	sb.WriteString("\n")
}

func emptyFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// truncate flattens s onto one line for table cells.
func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "/")
	if runes := []rune(s); len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return s
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
