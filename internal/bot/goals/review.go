package goals

import (
	"settlers/internal/domain"
)

// review walks the active set, completing goals whose target condition now
// holds and abandoning goals that can no longer be achieved.
func (m *Manager) review(state *domain.GameState, player *domain.Player) {
	for _, g := range m.snapshotGoals() {
		if m.isCompleted(g, state, player) {
			m.complete(g)
			continue
		}
		if reason, infeasible := m.infeasibleReason(g, state, player); infeasible {
			m.abandon(g, reason)
		}
	}
}

// snapshotGoals copies the active set so review can mutate the arena while
// iterating.
func (m *Manager) snapshotGoals() []*Goal {
	out := make([]*Goal, 0, len(m.goals))
	for _, g := range m.goals {
		out = append(out, g)
	}
	return out
}

func (m *Manager) isCompleted(g *Goal, state *domain.GameState, player *domain.Player) bool {
	board := state.Board
	switch g.Kind {
	case KindSettlement:
		v := board.Vertex(g.Requirements.Vertex)
		return v != nil && v.Owner == m.playerID && v.Building != domain.NoBuilding
	case KindCity:
		v := board.Vertex(g.Requirements.Vertex)
		return v != nil && v.Owner == m.playerID && v.Building == domain.City
	case KindRoad:
		e := board.Edge(g.Requirements.Edge)
		return e != nil && e.HasRoad && e.Owner == m.playerID
	case KindDevCard:
		return player.DevCards > g.BaselineDevCards
	case KindAcquire:
		return g.ResourceDeficit(player.Resources) == 0
	case KindVictory:
		return player.Score >= domain.WinningScore
	default:
		return false
	}
}

// infeasibleReason applies the goal-kind-specific feasibility predicate.
// Completion has already been ruled out when this runs.
func (m *Manager) infeasibleReason(g *Goal, state *domain.GameState, player *domain.Player) (string, bool) {
	board := state.Board
	switch g.Kind {
	case KindSettlement:
		v := board.Vertex(g.Requirements.Vertex)
		if v == nil {
			return "target vertex missing", true
		}
		if v.Building != domain.NoBuilding && v.Owner != m.playerID {
			return "target vertex occupied", true
		}
		if player.SettlementsLeft == 0 {
			return "no settlements left", true
		}
	case KindCity:
		v := board.Vertex(g.Requirements.Vertex)
		if v == nil {
			return "target vertex missing", true
		}
		if v.Owner != m.playerID || v.Building != domain.Settlement {
			return "no upgradable settlement at target", true
		}
		if player.CitiesLeft == 0 {
			return "no cities left", true
		}
	case KindRoad:
		e := board.Edge(g.Requirements.Edge)
		if e == nil {
			return "target edge missing", true
		}
		if e.HasRoad && e.Owner != m.playerID {
			return "target edge occupied", true
		}
		if player.RoadsLeft == 0 {
			return "no roads left", true
		}
	case KindDevCard:
		if g.TargetTurn > 0 && state.Turn > g.TargetTurn {
			return "purchase window passed", true
		}
	}
	return "", false
}
