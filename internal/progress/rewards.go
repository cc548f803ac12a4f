package progress

import (
	"fmt"
	"slices"
)

type Reward struct {
	ID          string
	Name        string
	Description string
	XPCost      int
}

var Rewards = []Reward{
	{"badge_warrior", "Warrior badge", "Exclusive badge for dedicated warriors", 500},
	{"badge_champion", "Champion badge", "For true recovery champions", 1000},
	{"card_gradient", "Gradient card", "Special gradient style for your share card", 300},
	{"card_gold", "Gold card", "Premium gold share card", 750},
	{"frame_silver", "Silver frame", "Silver profile frame", 400},
	{"frame_gold", "Gold frame", "Gold profile frame", 800},
	{"theme_ocean", "Ocean theme", "Calming ocean color theme", 600},
	{"theme_sunset", "Sunset theme", "Warm sunset color theme", 600},
	{"icon_star", "Star icon", "Star icon next to your name", 200},
	{"icon_fire", "Fire icon", "Fire icon next to your name", 200},
}

func FindReward(id string) (Reward, bool) {
	for _, r := range Rewards {
		if r.ID == id {
			return r, true
		}
	}
	return Reward{}, false
}

func (s State) RewardUnlocked(id string) bool {
	return slices.Contains(s.UnlockedRewards, id)
}

// Redeem spends XP on a reward. Spending XP can lower the level.
func Redeem(s State, id string) (State, error) {
	r, ok := FindReward(id)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownReward, id)
	}
	if s.RewardUnlocked(id) {
		return s, fmt.Errorf("%w: %s", ErrRewardUnlocked, id)
	}
	if s.XP < r.XPCost {
		return s, fmt.Errorf("%w: need %d, have %d", ErrInsufficientXP, r.XPCost, s.XP)
	}

	next := s.clone()
	next.XP -= r.XPCost
	next.UnlockedRewards = append(next.UnlockedRewards, r.ID)
	return next, nil
}
