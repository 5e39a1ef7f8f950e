package goals

import (
	"fmt"
	"sort"
	"strings"

	"settlers/internal/domain"
)

// generate derives this cycle's goal candidates. Victory-path steps and
// bottlenecks come from the engine's analysis; expansion, city-upgrade and
// strategic-road scanning always run so the planner never stalls waiting
// for an analysis that favors them.
func (m *Manager) generate(state *domain.GameState, player *domain.Player) {
	m.generateFromAnalysis(state, player)
	m.generateExpansion(state, player)
	m.generateCityUpgrades(state, player)
	m.generateStrategicRoads(state, player)
}

func (m *Manager) generateFromAnalysis(state *domain.GameState, player *domain.Player) {
	if m.engine == nil {
		return
	}
	analysis := m.engine.AnalyzeVictoryPath(state, m.playerID)
	if analysis == nil {
		return
	}

	for rank, step := range analysis.Steps {
		g := m.goalFromStep(state, player, step, rank)
		if g == nil {
			continue
		}
		m.insert(g)
	}

	for _, bottleneck := range analysis.Bottlenecks {
		r, ok := bottleneckResource(bottleneck)
		if !ok {
			continue
		}
		m.insert(&Goal{
			ID:           acquireGoalID(r),
			Kind:         KindAcquire,
			Type:         TypeStrategic,
			BasePriority: m.tuning.BottleneckPriority,
			Status:       StatusActive,
			CreatedTurn:  state.Turn,
			Requirements: Requirements{Resources: domain.ResourceSet{r: 1}},
			Value:        1,
			Description:  fmt.Sprintf("Relieve %s bottleneck", r),
		})
	}
}

func (m *Manager) goalFromStep(state *domain.GameState, player *domain.Player, step domain.VictoryStep, rank int) *Goal {
	priority := m.tuning.VictoryStepBase - float64(rank)*m.tuning.VictoryStepDecay
	goalType := TypeTactical
	if player.Score >= domain.WinningScore-2 {
		goalType = TypeVictory
	}

	base := Goal{
		Type:         goalType,
		BasePriority: priority,
		Status:       StatusActive,
		CreatedTurn:  state.Turn,
		Value:        float64(step.VPGain),
		Description:  step.Description,
	}

	switch step.Kind {
	case domain.BuildSettlement:
		if step.Vertex == domain.NoVertex {
			return nil
		}
		base.ID = settlementGoalID(step.Vertex)
		base.Kind = KindSettlement
		base.Requirements = Requirements{
			Resources:   domain.CostOf(domain.BuildSettlement),
			Settlements: 1,
			Vertex:      step.Vertex,
			Edge:        domain.NoEdge,
		}
	case domain.BuildCity:
		if step.Vertex == domain.NoVertex {
			return nil
		}
		base.ID = cityGoalID(step.Vertex)
		base.Kind = KindCity
		base.Requirements = Requirements{
			Resources: domain.CostOf(domain.BuildCity),
			Cities:    1,
			Vertex:    step.Vertex,
			Edge:      domain.NoEdge,
		}
	case domain.BuildRoad:
		if step.Edge == domain.NoEdge {
			return nil
		}
		base.ID = roadGoalID(step.Edge)
		base.Kind = KindRoad
		base.Requirements = Requirements{
			Resources: domain.CostOf(domain.BuildRoad),
			Roads:     1,
			Vertex:    domain.NoVertex,
			Edge:      step.Edge,
		}
	case domain.BuildDevCard:
		base.ID = devCardGoalID(state.Turn)
		base.Kind = KindDevCard
		base.Requirements = Requirements{
			Resources: domain.CostOf(domain.BuildDevCard),
			Vertex:    domain.NoVertex,
			Edge:      domain.NoEdge,
		}
		base.BaselineDevCards = player.DevCards
		base.TargetTurn = state.Turn + 5
	default:
		return nil
	}
	return &base
}

// generateExpansion scores every legal settlement vertex and keeps the
// best few as expansion goals.
func (m *Manager) generateExpansion(state *domain.GameState, player *domain.Player) {
	if m.engine == nil || player.SettlementsLeft == 0 {
		return
	}
	legal := m.engine.LegalSettlementVertices(state, m.playerID)
	if len(legal) == 0 {
		return
	}

	type candidate struct {
		vertex domain.VertexID
		score  float64
	}
	candidates := make([]candidate, 0, len(legal))
	for _, v := range legal {
		pips := state.Board.VertexPips(v)
		diversity := len(state.Board.VertexResources(v))
		candidates = append(candidates, candidate{
			vertex: v,
			score:  float64(pips) + 2*float64(diversity),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].vertex < candidates[j].vertex
	})

	limit := m.tuning.MaxExpansionGoals
	if limit <= 0 || limit > len(candidates) {
		limit = len(candidates)
	}
	for _, c := range candidates[:limit] {
		m.insert(&Goal{
			ID:           settlementGoalID(c.vertex),
			Kind:         KindSettlement,
			Type:         TypeStrategic,
			BasePriority: m.tuning.ExpansionBase + c.score/2,
			Status:       StatusActive,
			CreatedTurn:  state.Turn,
			Requirements: Requirements{
				Resources:   domain.CostOf(domain.BuildSettlement),
				Settlements: 1,
				Vertex:      c.vertex,
				Edge:        domain.NoEdge,
			},
			Value:       1,
			Description: fmt.Sprintf("Settle vertex %d", c.vertex),
		})
	}
}

// generateCityUpgrades turns every owned settlement into a candidate city
// goal; the city cost table and upgrade value make these self-ranking.
func (m *Manager) generateCityUpgrades(state *domain.GameState, player *domain.Player) {
	if player.CitiesLeft == 0 || state.Board == nil {
		return
	}
	for _, id := range sortedVertexIDs(state.Board) {
		v := state.Board.Vertices[id]
		if v.Owner != m.playerID || v.Building != domain.Settlement {
			continue
		}
		pips := state.Board.VertexPips(v.ID)
		m.insert(&Goal{
			ID:           cityGoalID(v.ID),
			Kind:         KindCity,
			Type:         TypeStrategic,
			BasePriority: m.tuning.CityUpgradeBase + float64(pips)/2,
			Status:       StatusActive,
			CreatedTurn:  state.Turn,
			Requirements: Requirements{
				Resources: domain.CostOf(domain.BuildCity),
				Cities:    1,
				Vertex:    v.ID,
				Edge:      domain.NoEdge,
			},
			Value:       1,
			Description: fmt.Sprintf("Upgrade settlement at vertex %d to city", v.ID),
		})
	}
}

// generateStrategicRoads proposes roads that extend the network toward an
// open settlement spot: a legal edge whose far vertex is empty and clear
// of the distance rule.
func (m *Manager) generateStrategicRoads(state *domain.GameState, player *domain.Player) {
	if m.engine == nil || player.RoadsLeft == 0 || state.Board == nil {
		return
	}
	for _, e := range m.engine.LegalRoadEdges(state, m.playerID) {
		edge := state.Board.Edge(e)
		if edge == nil {
			continue
		}
		opportunity := domain.NoVertex
		for _, vid := range edge.Vertices {
			if opensSettlementSpot(state.Board, vid) {
				opportunity = vid
				break
			}
		}
		if opportunity == domain.NoVertex {
			continue
		}
		pips := state.Board.VertexPips(opportunity)
		m.insert(&Goal{
			ID:           roadGoalID(e),
			Kind:         KindRoad,
			Type:         TypeTactical,
			BasePriority: m.tuning.StrategicRoadBase + float64(pips)/2,
			Status:       StatusActive,
			CreatedTurn:  state.Turn,
			Requirements: Requirements{
				Resources: domain.CostOf(domain.BuildRoad),
				Roads:     1,
				Vertex:    domain.NoVertex,
				Edge:      e,
			},
			Value:       0.5,
			Description: fmt.Sprintf("Road on edge %d toward vertex %d", e, opportunity),
		})
	}
}

// opensSettlementSpot reports whether the vertex is empty and all its
// neighbors are unbuilt, satisfying the distance rule.
func opensSettlementSpot(board *domain.Board, id domain.VertexID) bool {
	v := board.Vertex(id)
	if v == nil || v.Building != domain.NoBuilding {
		return false
	}
	for _, eid := range v.Edges {
		e := board.Edge(eid)
		if e == nil {
			continue
		}
		for _, nid := range e.Vertices {
			if nid == id {
				continue
			}
			if n := board.Vertex(nid); n != nil && n.Building != domain.NoBuilding {
				return false
			}
		}
	}
	return true
}

func sortedVertexIDs(board *domain.Board) []domain.VertexID {
	ids := make([]domain.VertexID, 0, len(board.Vertices))
	for id := range board.Vertices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// bottleneckResource parses analyzer bottleneck strings like "ore shortage".
func bottleneckResource(s string) (domain.Resource, bool) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return "", false
	}
	for _, r := range domain.ResourceTypes {
		if fields[0] == string(r) {
			return r, true
		}
	}
	return "", false
}
