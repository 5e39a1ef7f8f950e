package enginetest

import (
	"context"
	"math/rand"
	"sync"

	"settlers/internal/domain"
	"settlers/internal/ports"
)

// Engine is a scriptable double for the authoritative rules engine. It
// applies submitted actions naively (no dice, no full legality checking)
// and records everything it processed so tests can assert on the exact
// action stream a bot produced.
type Engine struct {
	mu        sync.Mutex
	state     *domain.GameState
	analyses  map[string]*domain.VictoryAnalysis
	rejects   map[domain.ActionType]string
	processed []domain.GameAction
	rng       *rand.Rand
}

var _ ports.GameEngine = (*Engine)(nil)

// New wraps a starting snapshot. The engine owns the state from here on;
// callers read it back through Snapshot.
func New(state *domain.GameState) *Engine {
	return &Engine{
		state:    state,
		analyses: make(map[string]*domain.VictoryAnalysis),
		rejects:  make(map[domain.ActionType]string),
	}
}

// SetAnalysis scripts the victory-path analysis returned for a player.
func (e *Engine) SetAnalysis(playerID string, analysis *domain.VictoryAnalysis) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.analyses[playerID] = analysis
}

// EnableDice makes roll actions produce resources from the given source.
// Without it rolls only move the phase forward, which keeps unit tests
// deterministic.
func (e *Engine) EnableDice(rng *rand.Rand) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rng = rng
}

// Reject makes every subsequent action of the given type fail with the
// given reason.
func (e *Engine) Reject(t domain.ActionType, reason string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rejects[t] = reason
}

// Processed returns a copy of every action submitted so far, in order.
func (e *Engine) Processed() []domain.GameAction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.GameAction(nil), e.processed...)
}

// SetState swaps the authoritative snapshot, for tests that steer the
// game between turns.
func (e *Engine) SetState(state *domain.GameState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = state
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() *domain.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return CloneState(e.state)
}

// ProcessAction records the action, applies its naive effect, and returns
// the updated snapshot. Scripted rejections fail without applying.
func (e *Engine) ProcessAction(_ context.Context, _ *domain.GameState, action domain.GameAction) ports.ActionResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.processed = append(e.processed, action)
	if reason, ok := e.rejects[action.Type]; ok {
		return ports.ActionResult{Success: false, Err: reason}
	}

	player := e.state.Player(action.PlayerID)
	if player == nil {
		return ports.ActionResult{Success: false, Err: "unknown player"}
	}

	switch action.Type {
	case domain.ActionRoll:
		e.applyRoll(player)

	case domain.ActionBuild:
		if err := e.applyBuild(player, action); err != "" {
			return ports.ActionResult{Success: false, Err: err}
		}

	case domain.ActionBuyDevCard:
		cost := domain.CostOf(domain.BuildDevCard)
		if !player.Resources.Covers(cost) {
			return ports.ActionResult{Success: false, Err: "cannot afford dev card"}
		}
		player.Resources.Subtract(cost)
		player.DevCards++

	case domain.ActionDiscard:
		player.Resources.Subtract(action.Discard)
		e.state.Phase = domain.PhaseMoveRobber

	case domain.ActionMoveRobber:
		e.applyRobberMove(action)

	case domain.ActionSteal:
		e.applySteal(player, action.Target)
		e.state.Phase = domain.PhaseActions

	case domain.ActionTradeBank:
		if !player.Resources.Covers(action.Give) {
			return ports.ActionResult{Success: false, Err: "cannot cover bank trade"}
		}
		player.Resources.Subtract(action.Give)
		player.Resources.Add(action.Get)

	case domain.ActionTradeOffer:
		target := e.state.Player(action.Target)
		if target == nil || !target.Resources.Covers(action.Get) || !player.Resources.Covers(action.Give) {
			return ports.ActionResult{Success: false, Err: "trade declined"}
		}
		player.Resources.Subtract(action.Give)
		player.Resources.Add(action.Get)
		target.Resources.Subtract(action.Get)
		target.Resources.Add(action.Give)

	case domain.ActionEndTurn:
		e.advanceTurn()

	default:
		return ports.ActionResult{Success: false, Err: "unsupported action"}
	}

	if player.Score >= domain.WinningScore {
		e.state.Phase = domain.PhaseEnded
	}
	return ports.ActionResult{Success: true, NewState: CloneState(e.state)}
}

// LegalSettlementVertices applies the empty-vertex distance rule; outside
// the setup phases the vertex must also touch one of the player's roads.
func (e *Engine) LegalSettlementVertices(state *domain.GameState, playerID string) []domain.VertexID {
	if state == nil || state.Board == nil {
		return nil
	}
	board := state.Board
	setup := state.Phase == domain.PhaseSetup1 || state.Phase == domain.PhaseSetup2

	var out []domain.VertexID
	for _, id := range sortedVertexIDs(board) {
		v := board.Vertices[id]
		if v.Building != domain.NoBuilding {
			continue
		}
		if neighborOccupied(board, v) {
			continue
		}
		if !setup && !touchesOwnRoad(board, v, playerID) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// LegalRoadEdges lists free edges connected to the player's network.
func (e *Engine) LegalRoadEdges(state *domain.GameState, playerID string) []domain.EdgeID {
	if state == nil || state.Board == nil {
		return nil
	}
	board := state.Board

	var out []domain.EdgeID
	for _, id := range sortedEdgeIDs(board) {
		edge := board.Edges[id]
		if edge.HasRoad {
			continue
		}
		if edgeConnected(board, edge, playerID) {
			out = append(out, id)
		}
	}
	return out
}

// AnalyzeVictoryPath returns the scripted analysis, or nil.
func (e *Engine) AnalyzeVictoryPath(_ *domain.GameState, playerID string) *domain.VictoryAnalysis {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.analyses[playerID]
}

func (e *Engine) applyBuild(player *domain.Player, action domain.GameAction) string {
	board := e.state.Board
	setup := e.state.Phase == domain.PhaseSetup1 || e.state.Phase == domain.PhaseSetup2

	pay := func(kind domain.BuildKind) string {
		if setup {
			return ""
		}
		cost := domain.CostOf(kind)
		if !player.Resources.Covers(cost) {
			return "cannot afford " + string(kind)
		}
		player.Resources.Subtract(cost)
		return ""
	}

	switch action.Build {
	case domain.BuildSettlement:
		v := board.Vertex(action.Vertex)
		if v == nil || v.Building != domain.NoBuilding {
			return "vertex unavailable"
		}
		if err := pay(domain.BuildSettlement); err != "" {
			return err
		}
		v.Building = domain.Settlement
		v.Owner = player.ID
		player.SettlementsLeft--
		player.Score++

	case domain.BuildCity:
		v := board.Vertex(action.Vertex)
		if v == nil || v.Building != domain.Settlement || v.Owner != player.ID {
			return "no settlement to upgrade"
		}
		if err := pay(domain.BuildCity); err != "" {
			return err
		}
		v.Building = domain.City
		player.CitiesLeft--
		player.SettlementsLeft++
		player.Score++

	case domain.BuildRoad:
		edge := board.Edge(action.Edge)
		if edge == nil || edge.HasRoad {
			return "edge unavailable"
		}
		if err := pay(domain.BuildRoad); err != "" {
			return err
		}
		edge.HasRoad = true
		edge.Owner = player.ID
		player.RoadsLeft--
		if setup {
			e.advanceSetup()
		}

	default:
		return "unknown build kind"
	}
	return ""
}

// applyRoll advances to the actions phase, producing resources when dice
// are enabled. A seven routes through discard or robber movement for the
// current player only.
func (e *Engine) applyRoll(roller *domain.Player) {
	if e.rng == nil {
		e.state.Phase = domain.PhaseActions
		return
	}

	roll := e.rng.Intn(6) + e.rng.Intn(6) + 2
	if roll == 7 {
		if roller.Resources.Total() > 7 {
			e.state.Phase = domain.PhaseDiscard
		} else {
			e.state.Phase = domain.PhaseMoveRobber
		}
		return
	}

	board := e.state.Board
	for _, h := range board.Hexes {
		if h.Token != roll || h.Robber {
			continue
		}
		resource, produces := domain.TerrainResource(h.Terrain)
		if !produces {
			continue
		}
		for _, vid := range h.Vertices {
			v := board.Vertex(vid)
			if v == nil || v.Building == domain.NoBuilding {
				continue
			}
			owner := e.state.Player(v.Owner)
			if owner == nil {
				continue
			}
			yield := 1
			if v.Building == domain.City {
				yield = 2
			}
			owner.Resources[resource] += yield
		}
	}
	e.state.Phase = domain.PhaseActions
}

// advanceSetup moves the placement turn after a setup road, flipping the
// rounds: seat order for the first, reverse seat order for the second.
func (e *Engine) advanceSetup() {
	round := 1
	order := e.state.Order
	if e.state.Phase == domain.PhaseSetup2 {
		round = 2
		order = make([]string, len(e.state.Order))
		for i, id := range e.state.Order {
			order[len(order)-1-i] = id
		}
	}

	for _, id := range order {
		p := e.state.Players[id]
		if p == nil {
			continue
		}
		if 5-p.SettlementsLeft < round || 15-p.RoadsLeft < round {
			e.state.CurrentPlayer = id
			return
		}
	}

	if round == 1 {
		e.state.Phase = domain.PhaseSetup2
		e.state.CurrentPlayer = e.state.Order[len(e.state.Order)-1]
		return
	}
	e.state.Phase = domain.PhaseRoll
	e.state.CurrentPlayer = e.state.Order[0]
}

func (e *Engine) applyRobberMove(action domain.GameAction) {
	board := e.state.Board
	for _, h := range board.Hexes {
		h.Robber = h.ID == action.Hex
	}
	// Move to steal only when an adjacent opponent has something to lose.
	for _, owner := range board.HexOwners(action.Hex) {
		if owner == action.PlayerID {
			continue
		}
		if p := e.state.Player(owner); p != nil && p.Resources.Total() > 0 {
			e.state.Phase = domain.PhaseSteal
			return
		}
	}
	e.state.Phase = domain.PhaseActions
}

func (e *Engine) applySteal(thief *domain.Player, targetID string) {
	victim := e.state.Player(targetID)
	if victim == nil {
		return
	}
	for _, r := range domain.ResourceTypes {
		if victim.Resources[r] > 0 {
			victim.Resources[r]--
			thief.Resources[r]++
			return
		}
	}
}

func (e *Engine) advanceTurn() {
	order := e.state.Order
	if len(order) == 0 {
		return
	}
	idx := 0
	for i, id := range order {
		if id == e.state.CurrentPlayer {
			idx = i
			break
		}
	}
	next := (idx + 1) % len(order)
	e.state.CurrentPlayer = order[next]
	if next == 0 {
		e.state.Turn++
	}
	e.state.Phase = domain.PhaseRoll
}

func neighborOccupied(board *domain.Board, v *domain.Vertex) bool {
	for _, eid := range v.Edges {
		edge := board.Edge(eid)
		if edge == nil {
			continue
		}
		for _, vid := range edge.Vertices {
			if vid == v.ID {
				continue
			}
			if n := board.Vertex(vid); n != nil && n.Building != domain.NoBuilding {
				return true
			}
		}
	}
	return false
}

func touchesOwnRoad(board *domain.Board, v *domain.Vertex, playerID string) bool {
	for _, eid := range v.Edges {
		if edge := board.Edge(eid); edge != nil && edge.HasRoad && edge.Owner == playerID {
			return true
		}
	}
	return false
}

func edgeConnected(board *domain.Board, edge *domain.Edge, playerID string) bool {
	for _, vid := range edge.Vertices {
		v := board.Vertex(vid)
		if v == nil {
			continue
		}
		if v.Building != domain.NoBuilding && v.Owner == playerID {
			return true
		}
		// Building by another player on the endpoint cuts the network.
		if v.Building != domain.NoBuilding {
			continue
		}
		for _, eid := range v.Edges {
			if eid == edge.ID {
				continue
			}
			if other := board.Edge(eid); other != nil && other.HasRoad && other.Owner == playerID {
				return true
			}
		}
	}
	return false
}
