package bot

import (
	"settlers/internal/bot/goals"
	"settlers/internal/domain"
)

// ResourceStrategy is the binary save-or-spend decision for a turn.
type ResourceStrategy string

const (
	StrategySave  ResourceStrategy = "save"
	StrategySpend ResourceStrategy = "spend"
	StrategyTrade ResourceStrategy = "trade"
)

// ShouldSaveResources decides whether to bank resources for the goal.
// The rule is strictly conservative: save only when the goal's resource
// deficit is exactly zero, meaning it is buildable this turn. Hoarding
// toward a goal that cannot pay off immediately stalls the game, so every
// other case answers spend.
func ShouldSaveResources(have domain.ResourceSet, goal *goals.Goal) bool {
	if goal == nil {
		return false
	}
	return goal.ResourceDeficit(have) == 0
}
