package strategy

import (
	"fmt"
	"sort"

	"settlers/internal/domain"
)

// RobberTarget is a scored robber-placement decision.
type RobberTarget struct {
	Hex       domain.HexID
	Score     float64
	Reasoning string
}

// StealTarget is a scored steal-victim decision.
type StealTarget struct {
	PlayerID  string
	Score     float64
	Reasoning string
}

// ChooseRobberHex scores every placeable hex by blocked production value
// plus pressure on the score leaders and crowded tiles. Falls back to the
// first legal hex when no opponent occupies any.
func ChooseRobberHex(state *domain.GameState, playerID string, w RobberWeights) *RobberTarget {
	if state == nil || state.Board == nil {
		return nil
	}
	board := state.Board
	current := board.RobberHex()
	topTwo := TopTwoRanked(state)

	hexIDs := make([]domain.HexID, 0, len(board.Hexes))
	for id := range board.Hexes {
		hexIDs = append(hexIDs, id)
	}
	sort.Slice(hexIDs, func(i, j int) bool { return hexIDs[i] < hexIDs[j] })

	var best *RobberTarget
	var fallback *RobberTarget
	for _, id := range hexIDs {
		hex := board.Hexes[id]
		if hex.ID == current {
			continue
		}
		resource, produces := domain.TerrainResource(hex.Terrain)
		if !produces {
			continue
		}
		if fallback == nil {
			fallback = &RobberTarget{Hex: hex.ID, Reasoning: fmt.Sprintf("fallback: first legal hex %d", hex.ID)}
		}

		opponents := 0
		rankedOpponents := 0
		for _, owner := range board.HexOwners(hex.ID) {
			if owner == playerID {
				continue
			}
			opponents++
			if topTwo[owner] {
				rankedOpponents++
			}
		}
		if opponents == 0 {
			continue
		}

		crowd := float64(opponents - 1)
		if crowd < 0 {
			crowd = 0
		}
		score := float64(domain.PipValue(hex.Token))*ScarcityMultiplier(board, resource) +
			w.TopTwoBonus*float64(rankedOpponents) +
			w.CrowdBonus*crowd

		if best == nil || score > best.Score {
			best = &RobberTarget{
				Hex:   hex.ID,
				Score: score,
				Reasoning: fmt.Sprintf("block %s on hex %d (token %d, %d opponents, %d ranked)",
					resource, hex.ID, hex.Token, opponents, rankedOpponents),
			}
		}
	}

	if best != nil {
		return best
	}
	return fallback
}

// ChooseStealTarget picks the richest sensible victim among players
// adjacent to the robber hex. Falls back to the first adjacent player
// holding anything.
func ChooseStealTarget(state *domain.GameState, playerID string, w StealWeights) *StealTarget {
	if state == nil || state.Board == nil {
		return nil
	}
	robber := state.Board.RobberHex()
	if robber == domain.NoHex {
		return nil
	}
	topTwo := TopTwoRanked(state)

	var best *StealTarget
	var fallback *StealTarget
	for _, owner := range state.Board.HexOwners(robber) {
		if owner == playerID {
			continue
		}
		target := state.Player(owner)
		if target == nil {
			continue
		}
		total := target.Resources.Total()
		if total == 0 {
			continue
		}
		if fallback == nil {
			fallback = &StealTarget{PlayerID: owner, Reasoning: fmt.Sprintf("fallback: first adjacent player %s", owner)}
		}

		score := 0.0
		if topTwo[owner] {
			score += w.TopTwoBonus
		}
		wealth := float64(total) * w.ResourceFactor
		if wealth > w.ResourceCap {
			wealth = w.ResourceCap
		}
		score += wealth
		score += w.LikelihoodFactor * resourceLikelihood(target)

		if best == nil || score > best.Score {
			best = &StealTarget{
				PlayerID:  owner,
				Score:     score,
				Reasoning: fmt.Sprintf("steal from %s (%d cards, ranked=%v)", owner, total, topTwo[owner]),
			}
		}
	}

	if best != nil {
		return best
	}
	return fallback
}
