package strategy

import (
	"sort"

	"settlers/internal/domain"
)

// ScarcityMultiplier weighs a resource by how few hexes on this board
// produce it. A resource produced by fewer hexes than average scores
// above 1.0, clamped to [0.5, 2.0].
func ScarcityMultiplier(board *domain.Board, r domain.Resource) float64 {
	if board == nil {
		return 1.0
	}
	total := 0
	for _, res := range domain.ResourceTypes {
		total += board.ProductionCount(res)
	}
	if total == 0 {
		return 1.0
	}
	count := board.ProductionCount(r)
	if count == 0 {
		return 2.0
	}
	average := float64(total) / float64(len(domain.ResourceTypes))
	multiplier := average / float64(count)
	if multiplier < 0.5 {
		multiplier = 0.5
	}
	if multiplier > 2.0 {
		multiplier = 2.0
	}
	return multiplier
}

// TopTwoRanked returns the ids of the two highest-scoring players.
// Ties resolve by seat order so the result is deterministic.
func TopTwoRanked(state *domain.GameState) map[string]bool {
	players := state.PlayersInOrder()
	if len(players) == 0 {
		// Snapshot without seat order still needs a deterministic walk.
		for id := range state.Players {
			players = append(players, state.Players[id])
		}
		sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	}
	sort.SliceStable(players, func(i, j int) bool { return players[i].Score > players[j].Score })

	out := make(map[string]bool, 2)
	for i, p := range players {
		if i >= 2 {
			break
		}
		out[p.ID] = true
	}
	return out
}

// resourceLikelihood estimates how likely a player is to hold useful
// resources, normalized from their built settlement and city counts.
func resourceLikelihood(p *domain.Player) float64 {
	if p == nil {
		return 0
	}
	settlements := 5 - p.SettlementsLeft
	cities := 4 - p.CitiesLeft
	if settlements < 0 {
		settlements = 0
	}
	if cities < 0 {
		cities = 0
	}
	likelihood := (float64(settlements) + 2*float64(cities)) / 13.0
	if likelihood > 1 {
		likelihood = 1
	}
	return likelihood
}

// vertexScarcityScore sums scarcity multipliers for the resources a vertex
// touches, rewarding spots that tap board-wide shortages.
func vertexScarcityScore(board *domain.Board, id domain.VertexID) float64 {
	score := 0.0
	for _, r := range board.VertexResources(id) {
		score += 2 * ScarcityMultiplier(board, r)
	}
	return score
}
