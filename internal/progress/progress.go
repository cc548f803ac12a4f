// Package progress holds the gamification layer: experience points, levels,
// missions, rewards and achievements. Every operation takes a State and
// returns a new one; callers persist the result.
package progress

import (
	"errors"
	"time"
)

const XPPerLevel = 500

var (
	ErrUnknownMission   = errors.New("unknown mission")
	ErrMissionCompleted = errors.New("mission already completed")
	ErrUnknownReward    = errors.New("unknown reward")
	ErrRewardUnlocked   = errors.New("reward already unlocked")
	ErrInsufficientXP   = errors.New("not enough XP")
)

type Completion struct {
	MissionID   string    `json:"missionId"`
	CompletedAt time.Time `json:"completedAt"`
}

type Unlock struct {
	AchievementID string    `json:"achievementId"`
	UnlockedAt    time.Time `json:"unlockedAt"`
}

type State struct {
	XP              int          `json:"xp"`
	Completions     []Completion `json:"completions"`
	UnlockedRewards []string     `json:"unlockedRewards"`
	Achievements    []Unlock     `json:"achievements"`
}

func (s State) clone() State {
	out := State{XP: s.XP}
	out.Completions = append([]Completion(nil), s.Completions...)
	out.UnlockedRewards = append([]string(nil), s.UnlockedRewards...)
	out.Achievements = append([]Unlock(nil), s.Achievements...)
	return out
}

func Level(xp int) int {
	return xp/XPPerLevel + 1
}

func XPToNextLevel(xp int) int {
	return Level(xp)*XPPerLevel - xp
}

// LevelProgress is the percentage of the current level already earned.
func LevelProgress(xp int) float64 {
	return float64(xp%XPPerLevel) / XPPerLevel * 100
}

type LevelInfo struct {
	XP       int     `json:"xp"`
	Level    int     `json:"level"`
	ToNext   int     `json:"toNext"`
	Progress float64 `json:"progress"`
}

func Describe(xp int) LevelInfo {
	return LevelInfo{
		XP:       xp,
		Level:    Level(xp),
		ToNext:   XPToNextLevel(xp),
		Progress: LevelProgress(xp),
	}
}
