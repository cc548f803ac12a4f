package insights

import (
	"time"

	"github.com/google/uuid"

	"github.com/strrl/cleantime/internal/clock"
	"github.com/strrl/cleantime/internal/recovery"
)

// Engine runs fixed-threshold rules over a relapse or mood history. It holds
// no state between calls.
type Engine struct {
	config Config
	clock  clock.Clock
	newID  func() string
}

func NewEngine(cfg Config, clk clock.Clock) *Engine {
	if clk == nil {
		clk = clock.System
	}
	return &Engine{
		config: cfg,
		clock:  clk,
		newID:  uuid.NewString,
	}
}

type relapseInput struct {
	cfg     Config
	now     time.Time
	profile *recovery.Profile
	report  *RelapseReport
}

type relapseRule struct {
	name       string
	minHistory func(cfg Config) int
	evaluate   func(in *relapseInput) []Insight
}

type moodInput struct {
	cfg     Config
	entries []recovery.MoodEntry
}

type moodRule struct {
	name     string
	evaluate func(in *moodInput) []Insight
}

// AnalyzeRelapses classifies the current risk level and emits the relapse
// insight feed. Exactly one risk insight is always present.
func (e *Engine) AnalyzeRelapses(profile recovery.Profile) RelapseReport {
	now := e.clock.Now()
	report := RelapseReport{}
	in := &relapseInput{
		cfg:     e.config,
		now:     now,
		profile: &profile,
		report:  &report,
	}

	for _, rule := range relapseRules {
		if rule.minHistory != nil && len(profile.RelapseHistory) < rule.minHistory(e.config) {
			continue
		}
		report.Insights = append(report.Insights, e.stamp(rule.evaluate(in), now)...)
	}

	return report
}

// AnalyzeMoods expects entries most-recent-first, as they are stored.
func (e *Engine) AnalyzeMoods(entries []recovery.MoodEntry) []Insight {
	if len(entries) < e.config.MinHistory {
		return nil
	}

	now := e.clock.Now()
	in := &moodInput{cfg: e.config, entries: entries}

	var out []Insight
	for _, rule := range moodRules {
		out = append(out, e.stamp(rule.evaluate(in), now)...)
	}
	return out
}

func (e *Engine) stamp(drafts []Insight, now time.Time) []Insight {
	for i := range drafts {
		drafts[i].ID = e.newID()
		drafts[i].GeneratedAt = now
	}
	return drafts
}
