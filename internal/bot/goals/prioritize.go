package goals

import (
	"settlers/internal/domain"
)

// expansionKinds are the goal kinds subject to the turn-based urgency
// multiplier; the longer the game runs, the harder the bot pushes to
// finish it.
var expansionKinds = map[Kind]bool{
	KindSettlement: true,
	KindCity:       true,
	KindRoad:       true,
}

// prioritize recomputes every active goal's effective priority from its
// base: victory boost near the winning score, near-completion boost, and
// the turn-based urgency multiplier, clamped to 0..100.
func (m *Manager) prioritize(state *domain.GameState, player *domain.Player) {
	urgency := m.tuning.UrgencyFor(state.Turn)

	for _, g := range m.goals {
		priority := g.BasePriority

		if g.Type == TypeVictory && player.Score >= domain.WinningScore-2 {
			priority += m.tuning.VictoryBoost
		}

		if deficit := g.ResourceDeficit(player.Resources); deficit <= m.tuning.NearCompletionBand {
			priority += m.tuning.NearCompletionBoost
		}

		if expansionKinds[g.Kind] {
			priority *= urgency
		}

		if priority > 100 {
			priority = 100
		}
		if priority < 0 {
			priority = 0
		}
		g.Priority = priority
	}
}
