package progress

import (
	"fmt"
	"time"
)

type MissionKind string

const (
	MissionDaily  MissionKind = "daily"
	MissionWeekly MissionKind = "weekly"
)

type Mission struct {
	ID          string
	Title       string
	Description string
	Kind        MissionKind
	XPReward    int
	Category    string
}

var Missions = []Mission{
	{"daily_wait", "Wait 5 minutes", "When the urge hits, wait 5 minutes before using", MissionDaily, 50, "delay"},
	{"daily_juice", "Swap for a juice", "Replace one use with a natural juice or smoothie", MissionDaily, 75, "substitute"},
	{"daily_morning", "Skip the first hour", "Avoid using right after waking up", MissionDaily, 100, "delay"},
	{"daily_cant_stop", "Open \"Can't stop\"", "Visit the \"Can't stop\" tools at least once", MissionDaily, 30, "engage"},
	{"daily_mood", "Log your mood", "Record how you're feeling today", MissionDaily, 40, "track"},
	{"weekly_clean", "Relapse-free week", "Go 7 days without registering a relapse", MissionWeekly, 500, "delay"},
	{"weekly_recipes", "Recipe master", "Try 3 different alternative recipes", MissionWeekly, 300, "substitute"},
	{"weekly_engaged", "Fully engaged", "Complete all daily missions for 5 days", MissionWeekly, 400, "engage"},
	{"weekly_tracker", "Consistent tracker", "Log your mood every day of the week", MissionWeekly, 250, "track"},
}

func FindMission(id string) (Mission, bool) {
	for _, m := range Missions {
		if m.ID == id {
			return m, true
		}
	}
	return Mission{}, false
}

// MissionCompleted reports whether m counts as done at now. Daily missions
// reset every calendar day, weekly missions every ISO week.
func (s State) MissionCompleted(m Mission, now time.Time) bool {
	for _, c := range s.Completions {
		if c.MissionID != m.ID {
			continue
		}
		if samePeriod(m.Kind, c.CompletedAt, now) {
			return true
		}
	}
	return false
}

// AvailableXP sums the rewards of missions still open at now.
func (s State) AvailableXP(now time.Time) int {
	total := 0
	for _, m := range Missions {
		if !s.MissionCompleted(m, now) {
			total += m.XPReward
		}
	}
	return total
}

func CompleteMission(s State, id string, now time.Time) (State, error) {
	m, ok := FindMission(id)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownMission, id)
	}
	if s.MissionCompleted(m, now) {
		return s, fmt.Errorf("%w: %s", ErrMissionCompleted, id)
	}

	next := s.clone()
	next.XP += m.XPReward
	next.Completions = append(next.Completions, Completion{MissionID: m.ID, CompletedAt: now})
	return next, nil
}

func samePeriod(kind MissionKind, a, b time.Time) bool {
	if kind == MissionWeekly {
		ay, aw := a.ISOWeek()
		by, bw := b.ISOWeek()
		return ay == by && aw == bw
	}
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
