package insights

import (
	"time"
)

type Category string

const (
	CategoryPattern     Category = "pattern"
	CategoryRisk        Category = "risk"
	CategoryAchievement Category = "achievement"
	CategoryMoodTrend   Category = "mood-trend"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Insight is recomputed on every analysis. ID and GeneratedAt are fresh each
// time; everything else depends only on the input history and the clock.
type Insight struct {
	ID          string    `json:"id"`
	Category    Category  `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	GeneratedAt time.Time `json:"generatedAt"`
}

type RelapseReport struct {
	Risk           RiskLevel
	RecentRelapses int
	HotHours       []int
	TopTrigger     string
	Insights       []Insight
}
