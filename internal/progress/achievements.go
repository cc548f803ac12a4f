package progress

import "time"

type AchievementKind string

const (
	AchievementTime    AchievementKind = "time"
	AchievementSavings AchievementKind = "savings"
)

type Achievement struct {
	ID              string
	Title           string
	Description     string
	Kind            AchievementKind
	DaysRequired    float64
	SavingsRequired float64
}

var Achievements = []Achievement{
	{ID: "1h", Title: "First hour", Description: "You completed your first clean hour!", Kind: AchievementTime, DaysRequired: 0.042},
	{ID: "6h", Title: "Six hours", Description: "Six hours of strength!", Kind: AchievementTime, DaysRequired: 0.25},
	{ID: "12h", Title: "Half a day", Description: "Half a day done!", Kind: AchievementTime, DaysRequired: 0.5},
	{ID: "24h", Title: "First day", Description: "A whole day of determination!", Kind: AchievementTime, DaysRequired: 1},
	{ID: "3d", Title: "Three days", Description: "Three days of progress!", Kind: AchievementTime, DaysRequired: 3},
	{ID: "1w", Title: "One week", Description: "A full week!", Kind: AchievementTime, DaysRequired: 7},
	{ID: "2w", Title: "Two weeks", Description: "Two weeks of transformation!", Kind: AchievementTime, DaysRequired: 14},
	{ID: "1m", Title: "One month", Description: "A whole month!", Kind: AchievementTime, DaysRequired: 30},
	{ID: "3m", Title: "Three months", Description: "Three months of victories!", Kind: AchievementTime, DaysRequired: 90},
	{ID: "6m", Title: "Six months", Description: "Half a year of achievements!", Kind: AchievementTime, DaysRequired: 180},
	{ID: "1y", Title: "One year", Description: "ONE YEAR CLEAN!", Kind: AchievementTime, DaysRequired: 365},

	{ID: "save100", Title: "Saved 100", Description: "Your first hundred saved!", Kind: AchievementSavings, SavingsRequired: 100},
	{ID: "save500", Title: "Saved 500", Description: "Five hundred put aside!", Kind: AchievementSavings, SavingsRequired: 500},
	{ID: "save1000", Title: "Saved 1000", Description: "A thousand saved!", Kind: AchievementSavings, SavingsRequired: 1000},
}

func (s State) AchievementUnlocked(id string) bool {
	for _, u := range s.Achievements {
		if u.AchievementID == id {
			return true
		}
	}
	return false
}

func (a Achievement) reached(days, savings float64) bool {
	switch a.Kind {
	case AchievementTime:
		return days >= a.DaysRequired
	case AchievementSavings:
		return savings >= a.SavingsRequired
	}
	return false
}

// EvaluateAchievements unlocks every achievement reached by the given clean
// days and savings. Already unlocked achievements stay unlocked.
func EvaluateAchievements(s State, days, savings float64, now time.Time) (State, []Achievement) {
	next := s.clone()
	var unlocked []Achievement
	for _, a := range Achievements {
		if next.AchievementUnlocked(a.ID) || !a.reached(days, savings) {
			continue
		}
		next.Achievements = append(next.Achievements, Unlock{AchievementID: a.ID, UnlockedAt: now})
		unlocked = append(unlocked, a)
	}
	return next, unlocked
}

// ResetAchievements clears unlocked achievements after a relapse.
func ResetAchievements(s State) State {
	next := s.clone()
	next.Achievements = nil
	return next
}
