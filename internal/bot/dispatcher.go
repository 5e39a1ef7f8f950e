package bot

import (
	"go.uber.org/zap"

	"settlers/internal/bot/strategy"
	"settlers/internal/domain"
)

// NextAction is the pure decision query: given a snapshot, return the
// action the bot would take, or nil when no action applies. It never
// submits anything to the engine.
func (b *Bot) NextAction(state *domain.GameState) *domain.GameAction {
	if state == nil || len(state.Players) == 0 {
		return nil
	}
	switch state.Phase {
	case domain.PhaseSetup1, domain.PhaseSetup2:
		return b.setupAction(state, state.Phase)
	case domain.PhaseRoll:
		return &domain.GameAction{Type: domain.ActionRoll, PlayerID: b.cfg.PlayerID, Vertex: domain.NoVertex, Edge: domain.NoEdge, Hex: domain.NoHex}
	case domain.PhaseDiscard:
		return b.discardAction(state)
	case domain.PhaseMoveRobber:
		return b.robberAction(state)
	case domain.PhaseSteal:
		return b.stealAction(state)
	case domain.PhaseActions:
		return b.goalAction(state)
	default:
		return nil
	}
}

// setupAction places the pending settlement for the round, then its
// paired road.
func (b *Bot) setupAction(state *domain.GameState, phase domain.Phase) *domain.GameAction {
	player := state.Player(b.cfg.PlayerID)
	if player == nil {
		return nil
	}
	wanted := 1
	if phase == domain.PhaseSetup2 {
		wanted = 2
	}

	if strategy.SettlementsPlaced(player) < wanted {
		legal := b.engine.LegalSettlementVertices(state, b.cfg.PlayerID)
		choice := strategy.ChooseSetupSettlement(state, b.cfg.PlayerID, legal, b.tuning.Strategy.Setup, phase == domain.PhaseSetup1)
		if choice == nil {
			return nil
		}
		b.tracer.Event("setup.settlement", zap.Int("vertex", int(choice.Vertex)), zap.String("reason", choice.Reasoning))
		return &domain.GameAction{Type: domain.ActionBuild, PlayerID: b.cfg.PlayerID, Build: domain.BuildSettlement, Vertex: choice.Vertex, Edge: domain.NoEdge, Hex: domain.NoHex}
	}

	if strategy.RoadsPlaced(player) < wanted {
		legal := b.engine.LegalRoadEdges(state, b.cfg.PlayerID)
		choice := strategy.ChooseSetupRoad(state, b.cfg.PlayerID, legal, b.tuning.Strategy.Setup)
		if choice == nil {
			return nil
		}
		b.tracer.Event("setup.road", zap.Int("edge", int(choice.Edge)), zap.String("reason", choice.Reasoning))
		return &domain.GameAction{Type: domain.ActionBuild, PlayerID: b.cfg.PlayerID, Build: domain.BuildRoad, Vertex: domain.NoVertex, Edge: choice.Edge, Hex: domain.NoHex}
	}
	return nil
}

func (b *Bot) discardAction(state *domain.GameState) *domain.GameAction {
	rec := strategy.PlanDiscard(state, b.cfg.PlayerID, b.tuning.Strategy)
	b.tracer.Event("discard.plan", zap.Int("count", rec.Discard.Total()), zap.String("reason", rec.Reasoning))
	if rec.Discard.Total() == 0 {
		return nil
	}
	return &domain.GameAction{Type: domain.ActionDiscard, PlayerID: b.cfg.PlayerID, Discard: rec.Discard, Vertex: domain.NoVertex, Edge: domain.NoEdge, Hex: domain.NoHex}
}

func (b *Bot) robberAction(state *domain.GameState) *domain.GameAction {
	target := strategy.ChooseRobberHex(state, b.cfg.PlayerID, b.tuning.Strategy.Robber)
	if target == nil {
		return nil
	}
	b.tracer.Event("robber.move", zap.Int("hex", int(target.Hex)), zap.String("reason", target.Reasoning))
	return &domain.GameAction{Type: domain.ActionMoveRobber, PlayerID: b.cfg.PlayerID, Hex: target.Hex, Vertex: domain.NoVertex, Edge: domain.NoEdge}
}

func (b *Bot) stealAction(state *domain.GameState) *domain.GameAction {
	target := strategy.ChooseStealTarget(state, b.cfg.PlayerID, b.tuning.Strategy.Steal)
	if target == nil {
		return nil
	}
	b.tracer.Event("steal.target", zap.String("victim", target.PlayerID), zap.String("reason", target.Reasoning))
	return &domain.GameAction{Type: domain.ActionSteal, PlayerID: b.cfg.PlayerID, Target: target.PlayerID, Vertex: domain.NoVertex, Edge: domain.NoEdge, Hex: domain.NoHex}
}

// goalAction runs the goal/plan pipeline for the main action phase, then
// falls through to opportunistic builds and trades when the plan signals
// spend with no direct action.
func (b *Bot) goalAction(state *domain.GameState) *domain.GameAction {
	plan := b.planner.PlanTurn(state, b.cfg.PlayerID)

	if len(plan.Actions) > 0 {
		action := plan.Actions[0].Action
		return &action
	}
	if plan.ResourceStrategy == StrategySave {
		action := plan.FallbackActions[0].Action
		return &action
	}

	if action := b.opportunisticBuild(state, plan); action != nil {
		return action
	}
	if action := b.tradeToward(state, plan); action != nil {
		return action
	}

	action := plan.FallbackActions[0].Action
	return &action
}

// opportunisticBuild spends surplus resources on the best affordable
// build without touching what the top goal still needs.
func (b *Bot) opportunisticBuild(state *domain.GameState, plan *TurnPlan) *domain.GameAction {
	player := state.Player(b.cfg.PlayerID)
	if player == nil {
		return nil
	}
	surplus := domain.CurrentResources(state, b.cfg.PlayerID).Clone()
	if plan.Goal != nil && plan.Goal.Requirements.Resources != nil {
		surplus.Subtract(plan.Goal.Requirements.Resources)
	}

	for _, kind := range domain.RankBuildOptions(surplus) {
		if !domain.StockFor(player, kind) {
			continue
		}
		switch kind {
		case domain.BuildSettlement:
			legal := b.engine.LegalSettlementVertices(state, b.cfg.PlayerID)
			choice := strategy.ChooseSetupSettlement(state, b.cfg.PlayerID, legal, b.tuning.Strategy.Setup, false)
			if choice == nil {
				continue
			}
			b.tracer.Event("build.opportunistic", zap.String("kind", "settlement"), zap.Int("vertex", int(choice.Vertex)))
			return &domain.GameAction{Type: domain.ActionBuild, PlayerID: b.cfg.PlayerID, Build: kind, Vertex: choice.Vertex, Edge: domain.NoEdge, Hex: domain.NoHex}
		case domain.BuildCity:
			vertex := b.bestOwnedSettlement(state)
			if vertex == domain.NoVertex {
				continue
			}
			b.tracer.Event("build.opportunistic", zap.String("kind", "city"), zap.Int("vertex", int(vertex)))
			return &domain.GameAction{Type: domain.ActionBuild, PlayerID: b.cfg.PlayerID, Build: kind, Vertex: vertex, Edge: domain.NoEdge, Hex: domain.NoHex}
		case domain.BuildRoad:
			legal := b.engine.LegalRoadEdges(state, b.cfg.PlayerID)
			choice := strategy.ChooseSetupRoad(state, b.cfg.PlayerID, legal, b.tuning.Strategy.Setup)
			if choice == nil || choice.Score == 0 {
				// A road that opens nothing is wasted surplus.
				continue
			}
			b.tracer.Event("build.opportunistic", zap.String("kind", "road"), zap.Int("edge", int(choice.Edge)))
			return &domain.GameAction{Type: domain.ActionBuild, PlayerID: b.cfg.PlayerID, Build: kind, Vertex: domain.NoVertex, Edge: choice.Edge, Hex: domain.NoHex}
		case domain.BuildDevCard:
			b.tracer.Event("build.opportunistic", zap.String("kind", "devcard"))
			return &domain.GameAction{Type: domain.ActionBuyDevCard, PlayerID: b.cfg.PlayerID, Build: kind, Vertex: domain.NoVertex, Edge: domain.NoEdge, Hex: domain.NoHex}
		}
	}
	return nil
}

// tradeToward emits the first viable offer from the escalation ladder
// aimed at the most-needed resource.
func (b *Bot) tradeToward(state *domain.GameState, plan *TurnPlan) *domain.GameAction {
	needed, _, ok := strategy.MostNeededResource(state, b.cfg.PlayerID)
	if !ok {
		return nil
	}
	var goalCost domain.ResourceSet
	if plan.Goal != nil {
		goalCost = plan.Goal.Requirements.Resources
	}
	offers := strategy.GenerateOffers(state, b.cfg.PlayerID, needed, goalCost, b.tuning.Strategy.Trade)
	if len(offers) == 0 {
		return nil
	}

	offer := offers[0]
	b.tracer.Event("trade.offer", zap.String("type", string(offer.Type)), zap.String("reason", offer.Reasoning))
	switch offer.Type {
	case strategy.TradePlayer:
		return &domain.GameAction{Type: domain.ActionTradeOffer, PlayerID: b.cfg.PlayerID, Target: offer.TargetPlayerID, Give: offer.Offering, Get: offer.Requesting, Vertex: domain.NoVertex, Edge: domain.NoEdge, Hex: domain.NoHex}
	default:
		return &domain.GameAction{Type: domain.ActionTradeBank, PlayerID: b.cfg.PlayerID, Give: offer.Offering, Get: offer.Requesting, Vertex: domain.NoVertex, Edge: domain.NoEdge, Hex: domain.NoHex}
	}
}

// bestOwnedSettlement returns the player's highest-producing settlement
// vertex, the natural city upgrade site.
func (b *Bot) bestOwnedSettlement(state *domain.GameState) domain.VertexID {
	if state.Board == nil {
		return domain.NoVertex
	}
	best := domain.NoVertex
	bestPips := -1
	for id, v := range state.Board.Vertices {
		if v.Owner != b.cfg.PlayerID || v.Building != domain.Settlement {
			continue
		}
		pips := state.Board.VertexPips(id)
		if pips > bestPips || (pips == bestPips && (best == domain.NoVertex || id < best)) {
			best = id
			bestPips = pips
		}
	}
	return best
}
