package strategy

import (
	"fmt"
	"sort"

	"settlers/internal/domain"
)

// SettlementChoice is a scored initial-placement decision.
type SettlementChoice struct {
	Vertex    domain.VertexID
	Score     float64
	Reasoning string
}

// RoadChoice is a scored setup-road decision.
type RoadChoice struct {
	Edge      domain.EdgeID
	Score     float64
	Reasoning string
}

// ChooseSetupSettlement picks the best legal vertex for an initial
// settlement. The first placement weighs raw pip production over
// scarcity 70/30; the second shifts to 60/40 to diversify income.
func ChooseSetupSettlement(state *domain.GameState, playerID string, legal []domain.VertexID, w SetupWeights, first bool) *SettlementChoice {
	if state == nil || state.Board == nil || len(legal) == 0 {
		return nil
	}

	pipWeight, scarcityWeight := w.SecondPipWeight, w.SecondScarcityWeight
	round := "second"
	if first {
		pipWeight, scarcityWeight = w.FirstPipWeight, w.FirstScarcityWeight
		round = "first"
	}

	sorted := append([]domain.VertexID(nil), legal...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var best *SettlementChoice
	for _, v := range sorted {
		pips := float64(state.Board.VertexPips(v))
		scarcity := vertexScarcityScore(state.Board, v)
		score := pipWeight*pips + scarcityWeight*scarcity
		if best == nil || score > best.Score {
			best = &SettlementChoice{
				Vertex: v,
				Score:  score,
				Reasoning: fmt.Sprintf("%s settlement at vertex %d: %.1f pips, %.1f scarcity (weights %.0f/%.0f)",
					round, v, pips, scarcity, pipWeight*100, scarcityWeight*100),
			}
		}
	}
	return best
}

// ChooseSetupRoad picks the setup road whose far endpoint promises the
// most future settlement value, blending number value and resource
// diversity 50/50 and preferring edges that leave the fresh settlement.
func ChooseSetupRoad(state *domain.GameState, playerID string, legal []domain.EdgeID, w SetupWeights) *RoadChoice {
	if state == nil || state.Board == nil || len(legal) == 0 {
		return nil
	}

	sorted := append([]domain.EdgeID(nil), legal...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var best *RoadChoice
	for _, eid := range sorted {
		edge := state.Board.Edge(eid)
		if edge == nil {
			continue
		}
		score, target := roadExpansionScore(state.Board, playerID, edge, w)
		if best == nil || score > best.Score {
			best = &RoadChoice{
				Edge:      eid,
				Score:     score,
				Reasoning: fmt.Sprintf("road on edge %d toward vertex %d (expansion value %.1f)", eid, target, score),
			}
		}
	}
	return best
}

// roadExpansionScore rates the better endpoint of an edge as a future
// settlement site. Endpoints already built on score zero.
func roadExpansionScore(board *domain.Board, playerID string, edge *domain.Edge, w SetupWeights) (float64, domain.VertexID) {
	bestScore := 0.0
	bestVertex := domain.NoVertex
	for _, vid := range edge.Vertices {
		v := board.Vertex(vid)
		if v == nil {
			continue
		}
		if v.Building != domain.NoBuilding && v.Owner != playerID {
			continue
		}
		// Walking onward from our own settlement is fine; landing on it is not.
		if v.Building != domain.NoBuilding {
			continue
		}
		pips := float64(board.VertexPips(vid))
		diversity := float64(len(board.VertexResources(vid)))
		score := w.RoadNumberWeight*pips + w.RoadDiversityWeight*2*diversity
		if score > bestScore {
			bestScore = score
			bestVertex = vid
		}
	}
	return bestScore, bestVertex
}

// SettlementsPlaced counts the player's built settlements from remaining
// stock; the engine deals each player five pieces.
func SettlementsPlaced(p *domain.Player) int {
	if p == nil {
		return 0
	}
	placed := 5 - p.SettlementsLeft
	if placed < 0 {
		return 0
	}
	return placed
}

// RoadsPlaced counts the player's built roads from remaining stock (15 dealt).
func RoadsPlaced(p *domain.Player) int {
	if p == nil {
		return 0
	}
	placed := 15 - p.RoadsLeft
	if placed < 0 {
		return 0
	}
	return placed
}
